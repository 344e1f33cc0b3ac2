// Command mazerunner simulates a maze-solving agent driven by the
// incremental D* Lite planner.
//
//	mazerunner run mazes/test_maze_01.txt
//	mazerunner bench --dim 16 --count 20
//	mazerunner gen --dim 12 --seed 7 --out maze.txt
//	mazerunner history --maze test_maze_01
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvmaze/config"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mazerunner",
		Short: "Simulate an agent exploring an unknown maze with D* Lite",
		Long: `mazerunner drives a simulated agent from the corner of a maze into the
central goal region. Walls are discovered from three distance sensors and
the shortest-path plan is repaired incrementally after every move.

A run ends when the goal is reached; the next run starts from the corner
with the walls learned so far (reset_policy: keep) or from scratch.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringP("config", "c", "", "YAML configuration file (default: built-in settings)")

	runCmd := &cobra.Command{
		Use:   "run [maze-file]",
		Short: "Run the configured number of runs on one maze",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRun,
	}
	runCmd.Flags().Bool("json", false, "Print the report as JSON")
	runCmd.Flags().String("policy", "", "Override robot.policy: planner|random")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the agent on a batch of generated mazes and summarize",
		RunE:  runBench,
	}
	benchCmd.Flags().Int("dim", 16, "Maze dimension")
	benchCmd.Flags().Int("count", 10, "Number of mazes")
	benchCmd.Flags().Int64("seed", 1, "Seed of the first maze; later mazes use seed+i")
	benchCmd.Flags().Int("loops", 0, "Extra walls removed after carving")

	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a maze file",
		RunE:  runGen,
	}
	genCmd.Flags().Int("dim", 16, "Maze dimension")
	genCmd.Flags().Int64("seed", 1, "Generator seed")
	genCmd.Flags().Int("loops", 0, "Extra walls removed after carving")
	genCmd.Flags().String("out", "", "Output path (default: stdout)")

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List stored runs",
		RunE:  runHistory,
	}
	historyCmd.Flags().String("maze", "", "Only runs of this maze")
	historyCmd.Flags().Int("limit", 20, "Maximum rows (0 for all)")
	historyCmd.Flags().String("store", "", "Override store.path")

	rootCmd.AddCommand(runCmd, benchCmd, genCmd, historyCmd)
	return rootCmd
}

// loadConfig reads --config, or the defaults when it is empty.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// newLogger builds the slog logger described by cfg, writing to w.
func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	switch cfg.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("%w: log.format %q", config.ErrInvalid, cfg.Format)
}
