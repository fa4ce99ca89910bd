package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kube-rca/llm-service/internal/config"
	"github.com/kube-rca/llm-service/internal/llm"
	"github.com/kube-rca/llm-service/internal/llm/llmtest"
)

func withRuntime(t *testing.T, rt llm.Runtime, err error) {
	t.Helper()
	prev := newRuntime
	newRuntime = func(config.ModelConfig) (llm.Runtime, error) { return rt, err }
	t.Cleanup(func() { newRuntime = prev })
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	classifyRaw = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestClassifyCommand(t *testing.T) {
	withRuntime(t, &llmtest.Runtime{Reply: "SŁUŻBY RATUNKOWE"}, nil)

	out, err := runRoot(t, "classify", "pożar", "w", "budynku")
	require.NoError(t, err)
	assert.Equal(t, "label: SŁUŻBY RATUNKOWE\nresponse: SŁUŻBY RATUNKOWE\n", out)
}

func TestClassifyCommandRaw(t *testing.T) {
	withRuntime(t, &llmtest.Runtime{Reply: "Służby miejskie"}, nil)

	out, err := runRoot(t, "classify", "--raw", "dziura w drodze")
	require.NoError(t, err)
	assert.Equal(t, "Służby miejskie\n", out)
}

func TestClassifyCommandUnavailable(t *testing.T) {
	withRuntime(t, nil, errors.New(`unknown LLM_BACKEND "onnx"`))

	_, err := runRoot(t, "classify", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown LLM_BACKEND "onnx"`)
}

func TestLoadService(t *testing.T) {
	cfg := config.Load()
	cfg.Model.MaxNewTokens = 12

	rt := &llmtest.Runtime{Reply: "ok"}
	withRuntime(t, rt, nil)

	svc := loadService(context.Background(), cfg, zap.NewNop(), nil)
	require.True(t, svc.State().Loaded)

	_, err := svc.Query(context.Background(), "x")
	require.NoError(t, err)
	_, maxNew := rt.LastInput()
	assert.Equal(t, 12, maxNew)
	assert.Equal(t, []string{cfg.Model.Name}, rt.LoadedModels())
}
