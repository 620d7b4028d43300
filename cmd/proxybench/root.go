package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"proxybench/visualisation"
)

var (
	resultsDir string
	outputDir  string
	scenario   string
	stylesPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "proxybench",
	Short: "Parse and compare wrk benchmark results across reverse proxies",
	Long: `proxybench turns wrk reports and paired CPU/memory logs into normalized,
unit-consistent comparison data: a console summary table, a Grafana
dashboard, a Parquet archive and an optional Prometheus export.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&resultsDir, "results", "results", "Directory containing wrk reports and metrics logs")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output", "charts", "Output directory for generated artifacts")
	rootCmd.PersistentFlags().StringVar(&scenario, "scenario", "", "Only consider reports whose file name contains this token")
	rootCmd.PersistentFlags().StringVar(&stylesPath, "styles", "", "Styles config file mapping subjects to chart colors")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func loadStyles() (*visualisation.StyleMap, error) {
	if stylesPath == "" {
		return visualisation.DefaultStyles(), nil
	}
	return visualisation.LoadStyles(stylesPath)
}
