package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"proxybench/report"
	"proxybench/storage"
	"proxybench/visualisation"
)

var serveMetricsAddr string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [batch-id]",
	Short: "Parse a batch of wrk reports and generate comparison outputs",
	Long: `Selects one benchmark batch from the results directory (the latest one
unless a batch id is given), parses and normalizes every report, prints the
summary table and writes the dashboard and Parquet artifacts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&serveMetricsAddr, "serve-metrics", "", "Serve the batch for Prometheus scraping on this address (e.g. :9100)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	pattern := filepath.Join(resultsDir, "*"+scenario+"*.txt")
	candidates, err := filepath.Glob(pattern)
	if err != nil {
		return errors.Wrapf(err, "globbing %s", pattern)
	}

	var id string
	if len(args) == 1 {
		id = args[0]
	}
	files := report.SelectBatch(candidates, id)

	batch := id
	if batch == "" {
		batch = report.LatestBatchID(files)
	}

	results, err := report.LoadBatch(files)
	if err != nil {
		return errors.Wrapf(err, "no results matching %s", pattern)
	}

	styles, err := loadStyles()
	if err != nil {
		return err
	}

	visualisation.PrintSummary(os.Stdout, batch, results)

	dash := visualisation.BuildDashboard(results, styles, batch)
	dashPath := filepath.Join(outputDir, "dashboard.json")
	if err := visualisation.WriteDashboard(dashPath, dash); err != nil {
		return err
	}
	log.Infof("wrote %s", dashPath)

	parquetPath, err := storage.WriteBatch(outputDir, batch, results)
	if err != nil {
		return err
	}
	log.Infof("wrote %s", parquetPath)

	if serveMetricsAddr != "" {
		exporter := storage.NewExporter(prometheus.NewRegistry())
		exporter.Publish(batch, results)
		log.Infof("serving metrics on %s", serveMetricsAddr)
		return exporter.StartServer(serveMetricsAddr)
	}

	return nil
}
