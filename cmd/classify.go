package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kube-rca/llm-service/internal/config"
	"github.com/kube-rca/llm-service/internal/logger"
)

var classifyRaw bool

var classifyCmd = &cobra.Command{
	Use:   "classify <incident description>",
	Short: "Classify a single incident report and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyRaw, "raw", false, "Print only the model answer")
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := logger.New(cfg.Log)
	defer func() { _ = log.Sync() }()

	svc := loadService(cmd.Context(), cfg, log, nil)

	resp, err := svc.Classify(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	if classifyRaw {
		fmt.Fprintln(cmd.OutOrStdout(), resp.Response)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "label: %s\nresponse: %s\n", resp.Label, resp.Response)
	return nil
}
