package client

import (
	"fmt"

	"github.com/kube-rca/llm-service/internal/config"
	"github.com/kube-rca/llm-service/internal/llm"
)

const (
	BackendGenAI = "genai"
	BackendTGI   = "tgi"
)

// NewRuntime picks the model runtime named by LLM_BACKEND.
func NewRuntime(cfg config.ModelConfig) (llm.Runtime, error) {
	switch cfg.Backend {
	case BackendGenAI, "":
		return NewGenAIRuntime(cfg), nil
	case BackendTGI:
		if cfg.TGIURL == "" {
			return nil, fmt.Errorf("missing TGI_URL")
		}
		return NewTGIRuntime(cfg), nil
	default:
		return nil, fmt.Errorf("unknown LLM_BACKEND %q", cfg.Backend)
	}
}
