package main

import (
	"fmt"
	"os"

	"github.com/skillswap-api/internal/access"
	"github.com/skillswap-api/internal/config"
	"github.com/skillswap-api/internal/models"
	"github.com/skillswap-api/internal/notify"
	"github.com/skillswap-api/internal/service"
	"github.com/skillswap-api/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	reportType   string
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write an admin report of the starting state to stdout",
	Long: `Builds the marketplace from the configured seed and writes one of the
admin reports (user-activity, swap-statistics, feedback-logs) to stdout.`,
	Example: "  skillswap report --report swap-statistics --format csv",
	Args:    cobra.NoArgs,
	RunE:    runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportType, "report", string(models.ReportUserActivity), "report to generate")
	reportCmd.Flags().StringVar(&reportFormat, "format", "csv", "output format: csv, json or ndjson")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Keep stdout for the report itself
	log := logger.NewWithWriter(cfg.Log, os.Stderr)

	repos, err := bootstrap(log, cfg)
	if err != nil {
		return err
	}

	feed := notify.NewFeed(cfg.Notify.HistorySize, log)
	services := service.NewServices(repos, feed, cfg, log)

	return services.Export.StreamReport(cmd.Context(), access.Admin("cli"), cmd.OutOrStdout(), models.ReportType(reportType), reportFormat)
}
