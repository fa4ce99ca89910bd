package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kube-rca/llm-service/internal/llm"
	"github.com/kube-rca/llm-service/internal/llm/llmtest"
	"github.com/kube-rca/llm-service/internal/metrics"
	"github.com/kube-rca/llm-service/internal/template"
)

const modelID = "google/gemma-3-1b-it"

func TestInitialize(t *testing.T) {
	t.Run("loaded", func(t *testing.T) {
		rt := &llmtest.Runtime{Reply: "SŁUŻBY MIEJSKIE"}
		state := Initialize(context.Background(), rt, modelID)

		assert.True(t, state.Loaded)
		assert.Empty(t, state.LoadError)
		assert.Equal(t, []string{modelID}, rt.LoadedModels())

		status := state.Status()
		assert.True(t, status.Loaded)
		assert.Nil(t, status.Error)
		assert.Equal(t, modelID, status.Model)
	})

	t.Run("load failure is captured", func(t *testing.T) {
		state := Initialize(context.Background(), &llmtest.Runtime{LoadErr: errors.New("401 Unauthorized")}, modelID)

		assert.False(t, state.Loaded)
		assert.Equal(t, "401 Unauthorized", state.LoadError)
		require.NotNil(t, state.Status().Error)
		assert.Equal(t, "401 Unauthorized", *state.Status().Error)
	})

	t.Run("nil runtime", func(t *testing.T) {
		state := Initialize(context.Background(), nil, modelID)
		assert.False(t, state.Loaded)
		assert.NotEmpty(t, state.LoadError)
	})
}

func TestQuery(t *testing.T) {
	rt := &llmtest.Runtime{Reply: "  SŁUŻBY RATUNKOWE\n"}
	svc := NewInferenceService(Initialize(context.Background(), rt, modelID), WithMetrics(metrics.New()))

	got, err := svc.Query(context.Background(), "pożar w budynku, ludzie uwięzieni")
	require.NoError(t, err)

	assert.Equal(t, "SŁUŻBY RATUNKOWE", got)
	assert.NotContains(t, got, "Przeanalizuj zgloszenie")

	input, maxNew := rt.LastInput()
	assert.Equal(t, 40, maxNew)
	turns := llm.ParseTurns(input)
	require.Len(t, turns, 1)
	assert.Equal(t, llm.RoleUser, turns[0].Role)
	assert.Equal(t,
		template.RenderPrompt(template.DefaultInstruction, &template.IncidentData{Description: "pożar w budynku, ludzie uwięzieni"}),
		turns[0].Content)
}

func TestQueryOptions(t *testing.T) {
	rt := &llmtest.Runtime{Reply: "ok"}
	svc := NewInferenceService(Initialize(context.Background(), rt, modelID),
		WithMaxNewTokens(8), WithInstruction("Opis: {{incident.description}}"))

	_, err := svc.Query(context.Background(), "dziura w drodze")
	require.NoError(t, err)

	input, maxNew := rt.LastInput()
	assert.Equal(t, 8, maxNew)
	assert.Equal(t, "Opis: dziura w drodze", llm.ParseTurns(input)[0].Content)
}

func TestQueryUnavailable(t *testing.T) {
	svc := NewInferenceService(Unavailable(modelID, errors.New("couldn't connect to model hub")))

	_, err := svc.Query(context.Background(), "cokolwiek")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrModelUnavailable)
	assert.Equal(t, "couldn't connect to model hub", err.Error())
}

func TestQueryUnavailableWithoutReason(t *testing.T) {
	svc := NewInferenceService(Unavailable(modelID, nil))

	_, err := svc.Query(context.Background(), "x")
	assert.EqualError(t, err, ErrModelUnavailable.Error())
}

func TestQueryGenerationFailure(t *testing.T) {
	boom := errors.New("CUDA out of memory")
	rt := &llmtest.Runtime{GenerateErr: boom}
	svc := NewInferenceService(Initialize(context.Background(), rt, modelID))

	_, err := svc.Query(context.Background(), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInference)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "CUDA out of memory", err.Error())

	// 실패 이후 요청은 정상 처리
	rt.GenerateErr = nil
	rt.Reply = "SŁUŻBY MIEJSKIE"
	got, err := svc.Query(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "SŁUŻBY MIEJSKIE", got)
}

type shortModel struct{}

func (shortModel) Generate(context.Context, llm.Sequence, int) (llm.Sequence, error) {
	return llm.Sequence{{Text: "obcięte"}}, nil
}

type shortRuntime struct{}

func (shortRuntime) Load(context.Context, string) (llm.Tokenizer, llm.Model, error) {
	return llm.TemplateTokenizer{}, shortModel{}, nil
}

func TestQueryOutputShorterThanInput(t *testing.T) {
	svc := NewInferenceService(Initialize(context.Background(), shortRuntime{}, modelID))

	got, err := svc.Query(context.Background(), "x")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClassify(t *testing.T) {
	rt := &llmtest.Runtime{Reply: "Służby ratunkowe"}
	svc := NewInferenceService(Initialize(context.Background(), rt, modelID))

	resp, err := svc.Classify(context.Background(), "wypadek, ranni")
	require.NoError(t, err)
	assert.Equal(t, "Służby ratunkowe", resp.Response)
	assert.Equal(t, string(LabelEmergency), resp.Label)

	_, err = NewInferenceService(Unavailable(modelID, errors.New("down"))).Classify(context.Background(), "x")
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestInferenceServiceMetrics(t *testing.T) {
	state := Initialize(context.Background(), &llmtest.Runtime{}, modelID)

	assert.Nil(t, NewInferenceService(state).Metrics())

	m := metrics.New()
	assert.Same(t, m, NewInferenceService(state, WithMetrics(m)).Metrics())
}
