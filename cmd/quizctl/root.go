package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"style-finder/internal/app"
	"style-finder/internal/config"
	"style-finder/internal/domain"
	"style-finder/internal/service"
)

var rootCmd = &cobra.Command{
	Use:           "quizctl",
	Short:         "Management style questionnaire from the terminal",
	Long:          "quizctl lists the question catalog, scores saved responses and runs the questionnaire interactively.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("catalog", "", "Path to the question workbook (overrides CATALOG_PATH)")
	rootCmd.PersistentFlags().String("output", "", "Directory for report artifacts (overrides OUTPUT_DIR)")
	rootCmd.PersistentFlags().String("policy", "", "Aggregation policy: group-identity or round-robin (overrides AGGREGATION_POLICY)")

	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(takeCmd)
}

// loadConfig applies flag overrides on top of the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("catalog"); v != "" {
		cfg.CatalogPath = v
		cfg.CatalogDatabaseURL = ""
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.OutputDir = v
	}
	if v, _ := cmd.Flags().GetString("policy"); v != "" {
		cfg.AggregationPolicy = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	svc    *service.AssessmentService
}

func newRuntime(ctx context.Context, cmd *cobra.Command) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	catalog, err := app.LoadCatalog(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	svc, err := app.NewAssessmentService(cfg, logger, catalog, nil, nil)
	if err != nil {
		return nil, err
	}
	return &runtime{cfg: cfg, logger: logger, svc: svc}, nil
}

type secretChecker interface {
	Authorize(secret string) error
}

// authorize uses the configured secret, or asks for one when only a hash is configured.
func authorize(gate secretChecker, configured string, r *bufio.Reader, w io.Writer) (string, error) {
	secret := configured
	if secret == "" {
		var err error
		if secret, err = prompt(r, w, "Access secret: "); err != nil {
			return "", err
		}
	}
	if err := gate.Authorize(secret); err != nil {
		return "", err
	}
	return secret, nil
}

func printReport(w io.Writer, rep domain.Report) {
	fmt.Fprintf(w, "\nStyle: %s (%d)\n\n", rep.Result.Style, rep.Result.Score)
	fmt.Fprintf(w, "%-14s %s\n", "Style", "Score")
	for _, row := range rep.Table {
		fmt.Fprintf(w, "%-14s %d\n", row.Style, row.Score)
	}
	fmt.Fprintf(w, "\n%s\n\n", rep.Description)
	for _, warning := range rep.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	if rep.ChartPath != "" {
		fmt.Fprintf(w, "chart:    %s\n", rep.ChartPath)
	}
	fmt.Fprintf(w, "document: %s\n", rep.DocumentPath)
}
