package llm

import (
	"context"
	"strings"
)

// Gemma turn markers
const (
	BOS         = "<bos>"
	StartOfTurn = "<start_of_turn>"
	EndOfTurn   = "<end_of_turn>"
)

var specialTokens = map[string]struct{}{
	BOS:         {},
	StartOfTurn: {},
	EndOfTurn:   {},
	"<eos>":     {},
	"<pad>":     {},
}

// IsSpecial reports whether text is one of the chat template control tokens.
func IsSpecial(text string) bool {
	_, ok := specialTokens[text]
	return ok
}

// ChatTemplate renders messages in the Gemma instruction-tuned turn format:
//
//	<bos><start_of_turn>user\n{content}<end_of_turn>\n<start_of_turn>model\n
type ChatTemplate struct{}

func (ChatTemplate) Render(messages []Message, addGenerationPrompt bool) Sequence {
	seq := Sequence{{ID: -1, Text: BOS, Special: true}}
	for _, msg := range messages {
		seq = append(seq,
			Token{ID: -1, Text: StartOfTurn, Special: true},
			Token{ID: -1, Text: string(turnRole(msg.Role)) + "\n"},
			Token{ID: -1, Text: strings.TrimSpace(msg.Content)},
			Token{ID: -1, Text: EndOfTurn, Special: true},
			Token{ID: -1, Text: "\n"},
		)
	}
	if addGenerationPrompt {
		seq = append(seq,
			Token{ID: -1, Text: StartOfTurn, Special: true},
			Token{ID: -1, Text: string(RoleModel) + "\n"},
		)
	}
	return seq
}

func turnRole(role Role) Role {
	if role == "assistant" {
		return RoleModel
	}
	return role
}

// ParseTurns recovers completed turns from a rendered sequence. An open turn
// left by the generation prompt is dropped.
func ParseTurns(seq Sequence) []Message {
	var (
		turns  []Message
		inTurn bool
		body   strings.Builder
	)
	for _, tok := range seq {
		switch {
		case tok.Special && tok.Text == StartOfTurn:
			inTurn = true
			body.Reset()
		case tok.Special && tok.Text == EndOfTurn:
			if inTurn {
				role, content, _ := strings.Cut(body.String(), "\n")
				turns = append(turns, Message{Role: Role(strings.TrimSpace(role)), Content: content})
			}
			inTurn = false
		case tok.Special:
		default:
			if inTurn {
				body.WriteString(tok.Text)
			}
		}
	}
	return turns
}

// TemplateTokenizer is used by backends that tokenize on the server side.
type TemplateTokenizer struct {
	Template ChatTemplate
}

func (t TemplateTokenizer) ApplyChatTemplate(_ context.Context, messages []Message, addGenerationPrompt bool) (Sequence, error) {
	return t.Template.Render(messages, addGenerationPrompt), nil
}

func (TemplateTokenizer) Decode(seq Sequence, skipSpecialTokens bool) string {
	return DecodeText(seq, skipSpecialTokens)
}
