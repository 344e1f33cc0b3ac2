package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvmaze/config"
	"github.com/katalvlaran/lvmaze/explore"
	"github.com/katalvlaran/lvmaze/mazefile"
	"github.com/katalvlaran/lvmaze/navigator"
	"github.com/katalvlaran/lvmaze/runlog"
	"github.com/katalvlaran/lvmaze/sim"
)

var errNoMaze = errors.New("mazerunner: no maze file, pass one or set maze.path")

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Maze.Path = args[0]
	}
	if p, _ := cmd.Flags().GetString("policy"); p != "" {
		cfg.Robot.Policy = p
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Maze.Path == "" {
		return errNoMaze
	}
	log, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	layout, err := mazefile.Load(cfg.Maze.Path)
	if err != nil {
		return err
	}
	opts, err := simOptions(cfg)
	if err != nil {
		return err
	}
	s, err := sim.New(layout, append(opts, sim.WithLogger(log))...)
	if err != nil {
		return err
	}
	rep, err := s.Run(cmd.Context())
	if err != nil {
		return err
	}

	if cfg.Store.Path != "" {
		if err := storeReport(cmd, cfg, mazeName(cfg.Maze.Path), rep); err != nil {
			return err
		}
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	printReport(cmd.OutOrStdout(), mazeName(cfg.Maze.Path), rep)

	return nil
}

// simOptions translates the robot and run sections into simulator options.
func simOptions(cfg *config.Config) ([]sim.Option, error) {
	reset, err := navigator.ParseResetPolicy(cfg.Run.ResetPolicy)
	if err != nil {
		return nil, err
	}
	navOpts := []navigator.Option{
		navigator.WithResetPolicy(reset),
		navigator.WithMaxStep(cfg.Robot.MaxStep),
	}
	if cfg.Robot.Policy == config.PolicyRandom {
		navOpts = append(navOpts, navigator.WithPolicy(explore.NewRandom(cfg.Robot.Seed)))
	}
	return []sim.Option{
		sim.WithMoveLimit(cfg.Run.MoveLimit),
		sim.WithRuns(cfg.Run.Runs),
		sim.WithSensorRange(cfg.Robot.SensorRange),
		sim.WithNavigatorOptions(navOpts...),
	}, nil
}

func storeReport(cmd *cobra.Command, cfg *config.Config, name string, rep sim.Report) error {
	st, err := runlog.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	simID := runlog.NewSimID()
	for _, r := range rep.Runs {
		_, err := st.Insert(cmd.Context(), runlog.Record{
			SimID:    simID,
			Maze:     name,
			Dim:      rep.Dim,
			Run:      r.Run,
			Moves:    r.Moves,
			Retreats: r.Retreats,
			Reached:  r.Reached,
			Optimal:  rep.Optimal,
			Policy:   cfg.Robot.Policy,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func mazeName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func printReport(w io.Writer, name string, rep sim.Report) {
	fmt.Fprintf(w, "maze %s (%dx%d), optimal path %d\n", name, rep.Dim, rep.Dim, rep.Optimal)
	for _, r := range rep.Runs {
		status := "reached goal"
		if !r.Reached {
			status = "move limit"
		}
		fmt.Fprintf(w, "  run %d: %4d moves, %3d retreats, %s\n", r.Run, r.Moves, r.Retreats, status)
	}
	fmt.Fprintf(w, "score %.3f\n", rep.Score)
}
