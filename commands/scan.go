package commands

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/K0NGR3SS/colrisk/internal/aws"
	"github.com/K0NGR3SS/colrisk/internal/config"
	"github.com/K0NGR3SS/colrisk/internal/models"
	"github.com/K0NGR3SS/colrisk/internal/notifications"
	"github.com/K0NGR3SS/colrisk/internal/report"
	"github.com/K0NGR3SS/colrisk/internal/scanner"
	"github.com/K0NGR3SS/colrisk/internal/table"
	"github.com/K0NGR3SS/colrisk/internal/ui"
)

const (
	exitLoadFailure   = 1
	exitExportFailure = 2
)

var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Classify every column of a data file and write the risk reports",
	Long: `Loads a delimited file (local path or s3://bucket/key), detects its encoding, classifies each
column and writes security_risk_analysis.csv and security_risk_analysis.pdf.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadScanConfig(cmd)
		if err != nil {
			pterm.Error.Printf("Config: %v\n", err)
			os.Exit(exitLoadFailure)
		}

		input := cfg.Input
		if len(args) == 1 {
			input = args[0]
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		noBanner, _ := cmd.Flags().GetBool("no-banner")
		jsonOut := cfg.OutputFormat == "json"
		log := ui.NewLogger(verbose)

		// stdout carries only the JSON document in json mode
		var status io.Writer = os.Stdout
		if jsonOut {
			status = os.Stderr
		}

		if !noBanner && !jsonOut {
			ui.PrintBanner(Version)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		var fetcher table.ObjectFetcher
		if strings.HasPrefix(input, "s3://") {
			log.Debug("initializing AWS client", log.Args("region", cfg.AWS.Region, "endpoint", cfg.AWS.Endpoint))
			awsClient, err := aws.NewClient(ctx, cfg.AWS.Region, cfg.AWS.Endpoint)
			if err != nil {
				pterm.Error.WithWriter(status).Printf("Error initializing AWS client: %v\n", err)
				os.Exit(exitLoadFailure)
			}
			fetcher = awsClient
		}

		var spinner *pterm.SpinnerPrinter
		if !jsonOut {
			spinner = ui.StartSpinner("Loading " + input + "...")
		}

		scan, err := analyze(ctx, cfg, input, fetcher, spinner, log)
		if spinner != nil {
			if err != nil {
				spinner.Fail("Analysis failed")
			} else {
				spinner.Success("Classified ", len(scan.Findings), " columns")
			}
		}
		if err != nil {
			pterm.Error.WithWriter(status).Printf("%v\n", err)
			os.Exit(exitLoadFailure)
		}

		if err := publish(cfg, scan, log, os.Stdout, status); err != nil {
			os.Exit(exitExportFailure)
		}
	},
}

// analyze loads input and classifies every column.
func analyze(ctx context.Context, cfg *config.Config, input string, fetcher table.ObjectFetcher, spinner *pterm.SpinnerPrinter, log *pterm.Logger) (models.Scan, error) {
	tbl, err := table.Load(ctx, input, table.Options{
		Delimiter: cfg.DelimiterRune(),
		Encoding:  cfg.Encoding,
		Fetcher:   fetcher,
	})
	if err != nil {
		return models.Scan{}, err
	}
	log.Debug("table loaded", log.Args("source", tbl.Source, "encoding", tbl.Encoding, "columns", len(tbl.Columns), "rows", tbl.Rows()))

	classifier := scanner.NewClassifier(cfg.Catalog(), cfg.Thresholds)
	findings, err := scanner.New(classifier, cfg.SampleSize).Scan(ctx, tbl, spinner)
	if err != nil {
		return models.Scan{}, err
	}

	return models.Scan{
		ID:       uuid.NewString(),
		Source:   tbl.Source,
		Encoding: tbl.Encoding,
		Rows:     tbl.Rows(),
		Findings: findings,
	}, nil
}

// publish writes the reports, prints the findings to stdout and posts the
// Slack summary. Progress lines go to status. The returned error is the
// export failure, if any; display and Slack problems are only reported.
func publish(cfg *config.Config, scan models.Scan, log *pterm.Logger, stdout, status io.Writer) error {
	exportErr := exportReports(cfg, scan, log, status)

	visible := models.FilterByMinRisk(scan.Findings, cfg.MinRiskLevel())
	if cfg.OutputFormat == "json" {
		shown := scan
		shown.Findings = visible
		if err := ui.PrintJSON(stdout, shown); err != nil {
			pterm.Error.WithWriter(status).Printf("Writing JSON: %v\n", err)
		}
	} else {
		ui.PrintFindings(stdout, visible)
	}

	if cfg.Slack.WebhookURL != "" {
		notifier := notifications.NewSlackNotifier(cfg.Slack.WebhookURL, cfg.Slack.Channel)
		notice := scan
		notice.Findings = visible
		if err := notifier.SendFindings(notice); err != nil {
			pterm.Warning.WithWriter(status).Printf("Slack notification failed: %v\n", err)
		} else {
			log.Debug("slack notification sent", log.Args("channel", cfg.Slack.Channel))
		}
	}

	return exportErr
}

// exportReports runs every exporter even when an earlier one fails.
func exportReports(cfg *config.Config, scan models.Scan, log *pterm.Logger, status io.Writer) error {
	targets := []struct {
		exporter report.Exporter
		name     string
	}{
		{report.CSVExporter{}, cfg.CSVReport},
		{report.PDFExporter{}, cfg.PDFReport},
	}

	var errs []error
	for _, t := range targets {
		path := filepath.Join(cfg.OutputDir, t.name)
		if err := t.exporter.Export(path, scan); err != nil {
			pterm.Error.WithWriter(status).Printf("%v\n", err)
			errs = append(errs, err)
			continue
		}
		log.Debug("report written", log.Args("format", t.exporter.Format(), "path", path))
		pterm.Success.WithWriter(status).Printf("Wrote %s\n", path)
	}
	return errors.Join(errs...)
}

func loadScanConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(path, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("out-dir") {
		cfg.OutputDir, _ = flags.GetString("out-dir")
	}
	if flags.Changed("sample-size") {
		cfg.SampleSize, _ = flags.GetInt("sample-size")
	}
	if flags.Changed("format") {
		cfg.OutputFormat, _ = flags.GetString("format")
	}
	if flags.Changed("min-risk") {
		raw, _ := flags.GetString("min-risk")
		cfg.MinRisk = strings.ToUpper(raw)
	}
	if flags.Changed("delimiter") {
		cfg.Delimiter, _ = flags.GetString("delimiter")
	}
	if flags.Changed("encoding") {
		cfg.Encoding, _ = flags.GetString("encoding")
	}
	if flags.Changed("region") {
		cfg.AWS.Region, _ = flags.GetString("region")
	}
	if flags.Changed("s3-endpoint") {
		cfg.AWS.Endpoint, _ = flags.GetString("s3-endpoint")
	}
	if flags.Changed("slack-webhook") {
		cfg.Slack.WebhookURL, _ = flags.GetString("slack-webhook")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func init() {
	scanCmd.Flags().StringP("out-dir", "o", ".", "Directory for the CSV and PDF reports")
	scanCmd.Flags().IntP("sample-size", "n", scanner.DefaultSampleSize, "Example values kept per column")
	scanCmd.Flags().StringP("format", "f", "table", "Terminal output (table|json)")
	scanCmd.Flags().String("min-risk", "LOW", "Only show columns at or above this level (LOW|MEDIUM|HIGH|CRITICAL)")
	scanCmd.Flags().StringP("delimiter", "d", "", `Field delimiter; sniffed when empty ("\t" for tab)`)
	scanCmd.Flags().StringP("encoding", "e", "", "Force a text encoding instead of detecting it")
	scanCmd.Flags().StringP("region", "r", "us-east-1", "AWS region for s3:// inputs")
	scanCmd.Flags().String("s3-endpoint", "", "S3-compatible endpoint URL for s3:// inputs")
	scanCmd.Flags().String("slack-webhook", "", "Post a summary to this Slack webhook")

	rootCmd.AddCommand(scanCmd)
}
