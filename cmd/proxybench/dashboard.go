package main

import (
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"proxybench/report"
	"proxybench/visualisation"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard [batch-id]",
	Short: "Regenerate the Grafana dashboard for a batch without re-running the full analysis",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
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

	dashPath := filepath.Join(outputDir, "dashboard.json")
	if err := visualisation.WriteDashboard(dashPath, visualisation.BuildDashboard(results, styles, batch)); err != nil {
		return err
	}
	log.Infof("wrote %s", dashPath)
	return nil
}
