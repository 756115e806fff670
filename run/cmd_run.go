package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	threepg "github.com/xiaxiaoyunyl36/3PG-model"
	"github.com/xiaxiaoyunyl36/3PG-model/config"
	"github.com/xiaxiaoyunyl36/3PG-model/forcing"
)

var (
	workers     int
	summary     bool
	saveGob     bool
	saveBins    bool
	metricsFile string
)

var runCmd = &cobra.Command{
	Use:   "run <control.yaml>...",
	Short: "Simulate one or more stands",
	Long:  "Runs every control file as an independent stand. Several files are run in parallel.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStands,
}

func init() {
	runCmd.Flags().IntVarP(&workers, "workers", "j", -1, "concurrent stands (default THREEPG_WORKERS, 0 for one per file)")
	runCmd.Flags().BoolVar(&summary, "summary", false, "print annual summaries")
	runCmd.Flags().BoolVar(&saveGob, "gob", false, "also dump records to <output>.gob")
	runCmd.Flags().BoolVar(&saveBins, "bins", false, "also write each column to <output>.<name>.bin")
	runCmd.Flags().StringVar(&metricsFile, "metrics", "", "prometheus textfile (default THREEPG_METRICS_FILE)")
}

// stand an open output for one control file
type stand struct {
	job  threepg.Job
	out  string
	cols []threepg.Column
	f    *os.File
	w    *threepg.CSVWriter
}

func outputPath(ctrl string, c *config.Config) string {
	if c.IO.Output != "" {
		return c.IO.Output
	}
	return strings.TrimSuffix(ctrl, filepath.Ext(ctrl)) + ".out.csv"
}

func openStand(ctrl string) (*stand, error) {
	c, err := config.Load(ctrl)
	if err != nil {
		return nil, err
	}
	if c.IO.Input == "" {
		return nil, fmt.Errorf("%s: IO.input not set", ctrl)
	}
	clim, err := forcing.Open(c.IO.Input)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctrl, err)
	}
	cols, err := threepg.Select(c.Output.Variables)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctrl, err)
	}
	s := &stand{out: outputPath(ctrl, c), cols: cols}
	if s.f, err = os.Create(s.out); err != nil {
		return nil, err
	}
	s.w = threepg.NewCSVWriter(s.f, cols)
	s.job = threepg.Job{Name: ctrl, Config: c, Climate: clim, Sink: s.w}
	return s, nil
}

func (s *stand) close() error {
	if err := s.w.Flush(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}

func runStands(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stands := make([]*stand, 0, len(args))
	defer func() {
		for _, s := range stands {
			if err := s.close(); err != nil {
				logger.Error("close output", zap.String("file", s.out), zap.Error(err))
			}
		}
	}()
	jobs := make([]threepg.Job, 0, len(args))
	for _, a := range args {
		s, err := openStand(a)
		if err != nil {
			return err
		}
		stands = append(stands, s)
		jobs = append(jobs, s.job)
	}

	if workers < 0 {
		workers = rt.Workers
	}
	if metricsFile == "" {
		metricsFile = rt.MetricsFile
	}
	met := threepg.NewMetrics()

	tt := time.Now()
	logger.Info("starting", zap.Int("stands", len(jobs)), zap.Int("workers", workers))
	res, err := threepg.RunBatch(ctx, jobs, workers, threepg.WithLogger(logger), threepg.WithMetrics(met))
	if metricsFile != "" {
		if merr := met.WriteTextfile(metricsFile); merr != nil {
			logger.Warn("metrics textfile", zap.String("file", metricsFile), zap.Error(merr))
		}
	}
	if err != nil {
		return err
	}
	logger.Info("run complete", zap.Duration("elapsed", time.Since(tt)))

	for i, s := range stands {
		if err := writeExtras(s, res[i]); err != nil {
			return err
		}
		if summary {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", s.job.Name)
			threepg.PrintSummary(cmd.OutOrStdout(), threepg.Summarize(res[i]))
		}
	}
	return nil
}

func writeExtras(s *stand, recs []threepg.Record) error {
	prfx := strings.TrimSuffix(s.out, filepath.Ext(s.out))
	if saveGob {
		if err := threepg.SaveGob(prfx+".gob", recs); err != nil {
			return err
		}
	}
	if saveBins {
		if err := threepg.SaveBins(prfx+".", recs, s.cols); err != nil {
			return err
		}
	}
	return nil
}
