package cmd

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kube-rca/llm-service/internal/client"
	"github.com/kube-rca/llm-service/internal/config"
	"github.com/kube-rca/llm-service/internal/metrics"
	"github.com/kube-rca/llm-service/internal/service"
)

// newRuntime is swapped in tests.
var newRuntime = client.NewRuntime

var rootCmd = &cobra.Command{
	Use:   "llm-service",
	Short: "Incident report classification service",
	Long:  "Classifies incident reports as SŁUŻBY RATUNKOWE or SŁUŻBY MIEJSKIE with a pretrained language model.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// .env는 선택 사항
		_ = godotenv.Load()
	},
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, classifyCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

// loadService loads the model once and wraps the outcome in an InferenceService.
// A load failure is logged and leaves the service in unavailable mode.
func loadService(ctx context.Context, cfg config.Config, log *zap.Logger, m *metrics.Metrics) *service.InferenceService {
	var state service.State

	rt, err := newRuntime(cfg.Model)
	if err != nil {
		state = service.Unavailable(cfg.Model.Name, err)
	} else {
		loadCtx, cancel := context.WithTimeout(ctx, cfg.Model.LoadTimeout)
		state = service.Initialize(loadCtx, rt, cfg.Model.Name)
		cancel()
	}

	if state.Loaded {
		log.Info("model loaded", zap.String("model", state.ModelName), zap.String("backend", cfg.Model.Backend))
	} else {
		log.Warn("model not available, queries will be rejected",
			zap.String("model", state.ModelName),
			zap.String("backend", cfg.Model.Backend),
			zap.String("error", state.LoadError),
		)
	}

	return service.NewInferenceService(state,
		service.WithMaxNewTokens(cfg.Model.MaxNewTokens),
		service.WithMetrics(m),
	)
}
