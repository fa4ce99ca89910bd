// Package llmtest provides an in-memory llm.Runtime for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/kube-rca/llm-service/internal/llm"
)

// Runtime loads a Model that answers every prompt with Reply, or fails with
// GenerateErr. LoadErr makes Load fail.
type Runtime struct {
	Reply       string
	GenerateErr error
	LoadErr     error

	mu           sync.Mutex
	lastInput    llm.Sequence
	lastMaxNew   int
	loadedModels []string
}

func (r *Runtime) Load(_ context.Context, modelID string) (llm.Tokenizer, llm.Model, error) {
	r.mu.Lock()
	r.loadedModels = append(r.loadedModels, modelID)
	r.mu.Unlock()
	if r.LoadErr != nil {
		return nil, nil, r.LoadErr
	}
	return llm.TemplateTokenizer{}, &model{rt: r}, nil
}

// LastInput returns the sequence passed to the most recent Generate call.
func (r *Runtime) LastInput() (llm.Sequence, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastInput, r.lastMaxNew
}

func (r *Runtime) LoadedModels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.loadedModels...)
}

type model struct {
	rt *Runtime
}

func (m *model) Generate(_ context.Context, input llm.Sequence, maxNewTokens int) (llm.Sequence, error) {
	m.rt.mu.Lock()
	m.rt.lastInput = input
	m.rt.lastMaxNew = maxNewTokens
	m.rt.mu.Unlock()

	if m.rt.GenerateErr != nil {
		return nil, m.rt.GenerateErr
	}
	out := make(llm.Sequence, 0, len(input)+2)
	out = append(out, input...)
	return append(out,
		llm.Token{ID: -1, Text: m.rt.Reply},
		llm.Token{ID: -1, Text: llm.EndOfTurn, Special: true},
	), nil
}
