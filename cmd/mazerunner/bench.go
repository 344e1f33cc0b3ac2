package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/lvmaze/mazegen"
	"github.com/katalvlaran/lvmaze/sim"
)

// benchSummary aggregates the final runs of a batch.
type benchSummary struct {
	Mazes      int
	Failed     int
	FirstMean  float64
	FirstStd   float64
	FinalMean  float64
	FinalStd   float64
	RatioMean  float64 // final moves / optimal
	RatioWorst float64
	ScoreMean  float64
}

func runBench(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dim, _ := cmd.Flags().GetInt("dim")
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetInt64("seed")
	loops, _ := cmd.Flags().GetInt("loops")
	if count < 1 {
		return fmt.Errorf("bench: --count must be positive, got %d", count)
	}
	log, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	opts, err := simOptions(cfg)
	if err != nil {
		return err
	}

	reports := make([]sim.Report, 0, count)
	for i := 0; i < count; i++ {
		layout, err := mazegen.Generate(dim,
			mazegen.WithSeed(seed+int64(i)),
			mazegen.WithLoops(loops),
			mazegen.WithOpenGoal())
		if err != nil {
			return err
		}
		s, err := sim.New(layout, append(opts, sim.WithLogger(log))...)
		if err != nil {
			return err
		}
		rep, err := s.Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("maze seed %d: %w", seed+int64(i), err)
		}
		reports = append(reports, rep)
	}
	printSummary(cmd.OutOrStdout(), dim, summarize(reports))

	return nil
}

// summarize computes mean and standard deviation over the reports whose
// every run reached the goal.
func summarize(reports []sim.Report) benchSummary {
	var first, final, ratio, score []float64
	sum := benchSummary{Mazes: len(reports)}
	for _, rep := range reports {
		ok := len(rep.Runs) > 0 && rep.Optimal > 0
		for _, r := range rep.Runs {
			ok = ok && r.Reached
		}
		if !ok {
			sum.Failed++
			continue
		}
		first = append(first, float64(rep.Runs[0].Moves))
		final = append(final, float64(rep.Final().Moves))
		ratio = append(ratio, float64(rep.Final().Moves)/float64(rep.Optimal))
		score = append(score, rep.Score)
	}
	if len(final) == 0 {
		return sum
	}
	sum.FirstMean, sum.FirstStd = meanStd(first)
	sum.FinalMean, sum.FinalStd = meanStd(final)
	sum.RatioMean = stat.Mean(ratio, nil)
	sum.RatioWorst = floats.Max(ratio)
	sum.ScoreMean = stat.Mean(score, nil)
	return sum
}

// meanStd is stat.MeanStdDev with a zero deviation for single samples.
func meanStd(xs []float64) (float64, float64) {
	if len(xs) < 2 {
		return stat.Mean(xs, nil), 0
	}
	return stat.MeanStdDev(xs, nil)
}

func printSummary(w io.Writer, dim int, s benchSummary) {
	fmt.Fprintf(w, "%d mazes %dx%d, %d failed\n", s.Mazes, dim, dim, s.Failed)
	fmt.Fprintf(w, "  first run   %7.1f ± %.1f moves\n", s.FirstMean, s.FirstStd)
	fmt.Fprintf(w, "  final run   %7.1f ± %.1f moves\n", s.FinalMean, s.FinalStd)
	fmt.Fprintf(w, "  final/opt   %7.3f mean, %.3f worst\n", s.RatioMean, s.RatioWorst)
	fmt.Fprintf(w, "  score       %7.3f mean\n", s.ScoreMean)
}
