package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kube-rca/llm-service/internal/config"
	"github.com/kube-rca/llm-service/internal/llm"
	"github.com/kube-rca/llm-service/internal/metrics"
	"github.com/kube-rca/llm-service/internal/model"
	"github.com/kube-rca/llm-service/internal/template"
)

type InferenceService struct {
	state        State
	instruction  string
	maxNewTokens int
	metrics      *metrics.Metrics
}

type Option func(*InferenceService)

func WithInstruction(tpl string) Option {
	return func(s *InferenceService) {
		if tpl != "" {
			s.instruction = tpl
		}
	}
}

func WithMaxNewTokens(n int) Option {
	return func(s *InferenceService) {
		if n > 0 {
			s.maxNewTokens = n
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *InferenceService) {
		s.metrics = m
	}
}

func NewInferenceService(state State, opts ...Option) *InferenceService {
	s := &InferenceService{
		state:        state,
		instruction:  template.DefaultInstruction,
		maxNewTokens: config.DefaultMaxNewTokens,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics.SetModelLoaded(state.Loaded)
	return s
}

func (s *InferenceService) State() State {
	return s.state
}

// Metrics returns the collectors the service records into, or nil.
func (s *InferenceService) Metrics() *metrics.Metrics {
	return s.metrics
}

// Query renders the instruction with the incident text, generates at most
// maxNewTokens and returns only the decoded continuation.
func (s *InferenceService) Query(ctx context.Context, prompt string) (string, error) {
	if !s.state.Loaded {
		s.metrics.ObserveQuery(metrics.OutcomeUnavailable)
		return "", &UnavailableError{Reason: s.state.LoadError}
	}

	answer, err := s.generate(ctx, prompt)
	if err != nil {
		s.metrics.ObserveQuery(metrics.OutcomeError)
		return "", &InferenceError{Err: err}
	}
	s.metrics.ObserveQuery(metrics.OutcomeSuccess)
	return answer, nil
}

func (s *InferenceService) generate(ctx context.Context, prompt string) (string, error) {
	messages := []llm.Message{{
		Role:    llm.RoleUser,
		Content: template.RenderPrompt(s.instruction, &template.IncidentData{Description: prompt}),
	}}

	input, err := s.state.tokenizer.ApplyChatTemplate(ctx, messages, true)
	if err != nil {
		return "", fmt.Errorf("apply chat template: %w", err)
	}

	started := time.Now()
	output, err := s.state.model.Generate(ctx, input, s.maxNewTokens)
	s.metrics.ObserveGeneration(time.Since(started))
	if err != nil {
		return "", err
	}

	// 프롬프트 부분은 제외하고 새로 생성된 토큰만 디코딩
	if len(output) <= len(input) {
		return "", nil
	}
	return strings.TrimSpace(s.state.tokenizer.Decode(output[len(input):], true)), nil
}

// Classify runs Query and maps the answer onto a service label.
func (s *InferenceService) Classify(ctx context.Context, prompt string) (*model.ClassifyResponse, error) {
	answer, err := s.Query(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &model.ClassifyResponse{
		Response: answer,
		Label:    string(ParseLabel(answer)),
	}, nil
}
