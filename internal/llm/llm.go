// Package llm defines the boundary to a pretrained causal language model runtime.
//
// The service only needs three things from a runtime: load a tokenizer and model
// by id, generate a continuation for a tokenized prompt and decode tokens back to
// text. Tokenization, attention and sampling stay inside the runtime.
package llm

import (
	"context"
	"strings"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

type Message struct {
	Role    Role
	Content string
}

// Token is one unit of a model sequence. Backends that tokenize server-side may
// use ID -1 and carry whole text segments.
type Token struct {
	ID      int32
	Text    string
	Special bool
}

type Sequence []Token

type Tokenizer interface {
	ApplyChatTemplate(ctx context.Context, messages []Message, addGenerationPrompt bool) (Sequence, error)
	Decode(seq Sequence, skipSpecialTokens bool) string
}

// Model generates a continuation. The returned sequence starts with the input.
type Model interface {
	Generate(ctx context.Context, input Sequence, maxNewTokens int) (Sequence, error)
}

type Runtime interface {
	Load(ctx context.Context, modelID string) (Tokenizer, Model, error)
}

// DecodeText joins token texts, optionally dropping special tokens.
func DecodeText(seq Sequence, skipSpecialTokens bool) string {
	var b strings.Builder
	for _, tok := range seq {
		if skipSpecialTokens && tok.Special {
			continue
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}
