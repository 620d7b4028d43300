package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"proxybench/monitor"
)

var (
	collectSubject  string
	collectInterval time.Duration
	collectDuration time.Duration
	collectOut      string
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Sample CPU and memory usage into a metrics log",
	Long: `Samples system CPU and memory usage at a fixed interval and appends the
samples to the metrics log that analyze pairs with the subject's wrk report.
Runs until the duration elapses or a SIGINT/SIGTERM arrives.`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().StringVar(&collectSubject, "subject", "", "Subject under test (e.g. nginx)")
	collectCmd.Flags().DurationVar(&collectInterval, "interval", time.Second, "Sampling interval")
	collectCmd.Flags().DurationVar(&collectDuration, "duration", 0, "Stop after this long (0 means run until signalled)")
	collectCmd.Flags().StringVar(&collectOut, "out", "", "Metrics file path (default derives from subject, scenario and current time)")
	collectCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	out := collectOut
	if out == "" {
		scen := scenario
		if scen == "" {
			scen = "bench"
		}
		name := fmt.Sprintf("%s_%s_%s_metrics.csv", collectSubject, scen, time.Now().Format("20060102_150405"))
		out = filepath.Join(resultsDir, name)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}

	rec, err := monitor.NewCSVRecorder(out)
	if err != nil {
		return err
	}
	defer rec.Close()

	m := monitor.New()
	// Prime the CPU counters so the first recorded sample is a real delta.
	if _, err := m.Sample(); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var deadline <-chan time.Time
	if collectDuration > 0 {
		deadline = time.After(collectDuration)
	}

	log.Infof("collecting metrics for %s into %s every %v", collectSubject, out, collectInterval)

	ticker := time.NewTicker(collectInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s, err := m.Sample()
			if err != nil {
				log.WithError(err).Warn("sample failed")
				continue
			}
			if err := rec.Record(s); err != nil {
				return err
			}
		case <-sigChan:
			log.Info("received shutdown signal, stopping collection")
			return nil
		case <-deadline:
			log.Info("collection duration elapsed")
			return nil
		}
	}
}
