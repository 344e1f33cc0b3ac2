package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvmaze/runlog"
)

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := cfg.Store.Path
	if p, _ := cmd.Flags().GetString("store"); p != "" {
		path = p
	}
	if path == "" {
		return fmt.Errorf("history: no store, set store.path or --store")
	}
	maze, _ := cmd.Flags().GetString("maze")
	limit, _ := cmd.Flags().GetInt("limit")

	st, err := runlog.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	recs, err := st.List(cmd.Context(), maze, limit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tMAZE\tRUN\tMOVES\tOPTIMAL\tREACHED\tPOLICY\tSIM")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%t\t%s\t%s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.Maze, r.Run, r.Moves, r.Optimal, r.Reached, r.Policy, r.SimID.String()[:8])
	}
	return tw.Flush()
}
