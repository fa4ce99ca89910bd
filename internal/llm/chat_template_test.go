package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatTemplateRender(t *testing.T) {
	seq := ChatTemplate{}.Render([]Message{{Role: RoleUser, Content: "  Czy to pilne?  "}}, true)

	assert.Equal(t,
		"<bos><start_of_turn>user\nCzy to pilne?<end_of_turn>\n<start_of_turn>model\n",
		DecodeText(seq, false))
	assert.Equal(t, "user\nCzy to pilne?\nmodel\n", DecodeText(seq, true))
}

func TestChatTemplateRenderAssistantRole(t *testing.T) {
	seq := ChatTemplate{}.Render([]Message{{Role: "assistant", Content: "OK"}}, false)

	assert.Equal(t, "<bos><start_of_turn>model\nOK<end_of_turn>\n", DecodeText(seq, false))
}

func TestParseTurns(t *testing.T) {
	messages := []Message{
		{Role: RoleUser, Content: "pożar w budynku"},
		{Role: RoleModel, Content: "SŁUŻBY RATUNKOWE"},
		{Role: RoleUser, Content: "a teraz?\ndruga linia"},
	}
	seq := ChatTemplate{}.Render(messages, true)

	assert.Equal(t, messages, ParseTurns(seq))
}

func TestParseTurnsEmpty(t *testing.T) {
	assert.Empty(t, ParseTurns(nil))
	assert.Empty(t, ParseTurns(Sequence{{Text: "bez znaczników"}}))
}

func TestTemplateTokenizer(t *testing.T) {
	tok := TemplateTokenizer{}
	seq, err := tok.ApplyChatTemplate(context.Background(), []Message{{Role: RoleUser, Content: "x"}}, false)
	require.NoError(t, err)

	assert.Equal(t, "user\nx\n", tok.Decode(seq, true))
	assert.True(t, IsSpecial(EndOfTurn))
	assert.False(t, IsSpecial("model"))
}
