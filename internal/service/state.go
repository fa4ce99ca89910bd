package service

import (
	"context"
	"errors"

	"github.com/kube-rca/llm-service/internal/llm"
	"github.com/kube-rca/llm-service/internal/model"
)

// State is the model load outcome decided once at process start.
// It is never mutated afterwards; copies are safe to share between goroutines.
type State struct {
	ModelName string
	Loaded    bool
	LoadError string

	tokenizer llm.Tokenizer
	model     llm.Model
}

// Initialize loads the tokenizer and model once. It never fails: a load error
// is captured in the returned State and the service runs in unavailable mode.
func Initialize(ctx context.Context, rt llm.Runtime, modelID string) State {
	if rt == nil {
		return Unavailable(modelID, errors.New("no model runtime configured"))
	}
	tokenizer, m, err := rt.Load(ctx, modelID)
	if err != nil {
		return Unavailable(modelID, err)
	}
	if tokenizer == nil || m == nil {
		return Unavailable(modelID, errors.New("model runtime returned no tokenizer or model"))
	}
	return State{ModelName: modelID, Loaded: true, tokenizer: tokenizer, model: m}
}

// Unavailable builds a State for a model that could not be loaded.
func Unavailable(modelID string, err error) State {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return State{ModelName: modelID, LoadError: msg}
}

// Status - 헬스체크 응답
func (s State) Status() model.HealthResponse {
	resp := model.HealthResponse{Model: s.ModelName, Loaded: s.Loaded}
	if !s.Loaded {
		loadErr := s.LoadError
		resp.Error = &loadErr
	}
	return resp
}
