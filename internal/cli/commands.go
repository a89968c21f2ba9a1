package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ajaydixit/finsight/config"
	"github.com/ajaydixit/finsight/internal/client"
	"github.com/ajaydixit/finsight/internal/display"
	"github.com/ajaydixit/finsight/internal/i18n"
	"github.com/ajaydixit/finsight/internal/workflow"
)

const version = "1.0.0"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	// Resolve configuration once at startup
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "finsight",
		Short: "FinSight - SME financial health analysis client",
		Long: `FinSight submits a financial statement export (CSV, XLSX or PDF) to the
analysis service and shows the assessment: credit readiness, summary
metrics, a cashflow forecast and an AI-written narrative.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.Debug = true
			}
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: start the interactive scan loop
			session, err := NewInteractiveSession(cfg)
			if err != nil {
				return err
			}
			return session.Start(cmd.Context())
		},
	}

	rootCmd.AddCommand(newAnalyzeCmd(cfg))
	rootCmd.AddCommand(newHistoryCmd(cfg))
	rootCmd.AddCommand(newConfigCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")

	return rootCmd
}

// newAnalyzeCmd creates the non-interactive analyze command
func newAnalyzeCmd(cfg *config.Config) *cobra.Command {
	var (
		businessType string
		language     string
		withReport   bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <statement-file>",
		Short: "Submit a statement file for analysis",
		Long: `Submit a single statement export and print the analysis result.
Example: finsight analyze statement.csv --business-type=Retail --language=en`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if businessType != "" {
				cfg.BusinessType = businessType
			}
			if language != "" {
				cfg.Language = language
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runAnalyze(cmd.Context(), cfg, args[0], withReport)
		},
	}

	cmd.Flags().StringVar(&businessType, "business-type", "", "Business category (default Retail)")
	cmd.Flags().StringVar(&language, "language", "", "Report language: en or hi (default en)")
	cmd.Flags().BoolVar(&withReport, "report", false, "Also generate the investor report")

	return cmd
}

func runAnalyze(ctx context.Context, cfg *config.Config, path string, withReport bool) error {
	lang, err := i18n.Parse(cfg.Language)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read statement file: %w", err)
	}

	apiClient := client.New(cfg)
	flow := workflow.New(apiClient, cfg.BusinessType, cfg.Language)
	renderer := display.NewRenderer(lang)

	if err := flow.SelectFile(filepath.Base(path), data); err != nil {
		return err
	}

	if err := flow.Submit(ctx); err != nil {
		renderer.Failure(err)
		return err
	}
	renderer.Result(flow.Result(), flow.ScanID())

	if withReport {
		report, err := apiClient.GenerateReport(ctx, flow.Result())
		if err != nil {
			renderer.Failure(err)
			return err
		}
		renderer.InvestorReport(report)
	}
	return nil
}

// newHistoryCmd creates the history command
func newHistoryCmd(cfg *config.Config) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past analyses recorded by the service",
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := i18n.Parse(cfg.Language)
			if err != nil {
				return err
			}

			entries, err := client.New(cfg).History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			display.NewRenderer(lang).History(entries)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to fetch")

	return cmd
}

// newConfigCmd creates the config command
func newConfigCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("API base URL:       %s\n", cfg.APIBaseURL)
			fmt.Printf("Request timeout:    %s\n", cfg.Timeout)
			fmt.Printf("Business category:  %s\n", cfg.BusinessType)
			fmt.Printf("Language:           %s\n", cfg.Language)
			fmt.Printf("Debug:              %t\n", cfg.Debug)
		},
	}
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("FinSight v%s\n", version)
		},
	}
}
