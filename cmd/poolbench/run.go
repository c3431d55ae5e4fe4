package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/felixge/fgprof"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hemal-shah/poolkit/internal/stress"
	"github.com/hemal-shah/poolkit/pooled"
)

var errCorrupted = errors.New("workers observed foreign state")

type runFlags struct {
	workers  int
	cycles   int
	capacity int
	maxFill  int
	shape    string
	profile  string
}

func newRunCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run concurrent acquire/use/close cycles against one shape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStress(cmd, g, f)
		},
	}
	cmd.Flags().IntVar(&f.workers, "workers", 100, "concurrent workers")
	cmd.Flags().IntVar(&f.cycles, "cycles", 10000, "cycles per worker")
	cmd.Flags().IntVar(&f.capacity, "capacity", 16, "pool capacity for the shape, 0 uses the configuration")
	cmd.Flags().IntVar(&f.maxFill, "max-fill", 8, "largest number of entries written per cycle")
	cmd.Flags().StringVar(&f.shape, "shape", pooled.ShapeSequence, fmt.Sprintf("one of %v", stress.Shapes))
	cmd.Flags().StringVar(&f.profile, "profile", "", "write an fgprof wall-clock profile to this file")
	return cmd
}

func runStress(cmd *cobra.Command, g *globalFlags, f *runFlags) error {
	if !slices.Contains(stress.Shapes, f.shape) {
		return fmt.Errorf("%w: %q", stress.ErrUnknownShape, f.shape)
	}

	logger, err := g.logger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if f.capacity > 0 {
		overrides := make(map[string]int, len(cfg.Overrides)+1)
		for k, v := range cfg.Overrides {
			overrides[k] = v
		}
		overrides[f.shape] = f.capacity
		cfg.Overrides = overrides
	}

	registry, err := pooled.NewRegistry(cfg, pooled.WithLogger(logger))
	if err != nil {
		return err
	}

	if f.profile != "" {
		out, err := os.Create(f.profile)
		if err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		defer out.Close()
		stop := fgprof.Start(out, fgprof.FormatPprof)
		defer func() {
			if err := stop(); err != nil {
				logger.Warn("Failed to write profile", zap.String("path", f.profile), zap.Error(err))
			}
		}()
	}

	report, err := stress.NewRunner(registry, stress.WithLogger(logger)).Run(cmd.Context(), stress.Config{
		Workers: f.workers,
		Cycles:  f.cycles,
		Shape:   f.shape,
		MaxFill: f.maxFill,
	})
	if err != nil {
		return err
	}

	if g.json {
		err = writeJSON(cmd.OutOrStdout(), report)
	} else {
		err = writeReport(cmd.OutOrStdout(), report)
	}
	if err != nil {
		return err
	}
	if !report.OK() {
		return fmt.Errorf("%w: %d of %d cycles", errCorrupted, report.Corruptions, report.Operations)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeReport(w io.Writer, r stress.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "run\t%s\n", r.RunID)
	fmt.Fprintf(tw, "shape\t%s\n", r.Shape)
	fmt.Fprintf(tw, "workers\t%d\n", r.Workers)
	fmt.Fprintf(tw, "cycles\t%d\n", r.Cycles)
	fmt.Fprintf(tw, "operations\t%d\n", r.Operations)
	fmt.Fprintf(tw, "corruptions\t%d\n", r.Corruptions)
	fmt.Fprintf(tw, "duration\t%s\n", r.Duration)
	fmt.Fprintf(tw, "pool\t%s\n", r.Pool.Name)
	fmt.Fprintf(tw, "capacity\t%d\n", r.Pool.Capacity)
	fmt.Fprintf(tw, "idle\t%d\n", r.Pool.Idle)
	fmt.Fprintf(tw, "created\t%d\n", r.Pool.Created)
	fmt.Fprintf(tw, "reused\t%d\n", r.Pool.Reused)
	fmt.Fprintf(tw, "released\t%d\n", r.Pool.Released)
	fmt.Fprintf(tw, "dropped\t%d\n", r.Pool.Dropped)
	return tw.Flush()
}
