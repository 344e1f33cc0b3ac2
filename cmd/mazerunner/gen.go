package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvmaze/mazefile"
	"github.com/katalvlaran/lvmaze/mazegen"
)

func runGen(cmd *cobra.Command, _ []string) error {
	dim, _ := cmd.Flags().GetInt("dim")
	seed, _ := cmd.Flags().GetInt64("seed")
	loops, _ := cmd.Flags().GetInt("loops")
	out, _ := cmd.Flags().GetString("out")
	if loops < 0 {
		loops = 0
	}

	layout, err := mazegen.Generate(dim,
		mazegen.WithSeed(seed),
		mazegen.WithLoops(loops),
		mazegen.WithOpenGoal())
	if err != nil {
		return err
	}
	if out == "" {
		return mazefile.Write(cmd.OutOrStdout(), layout)
	}
	return mazefile.Save(out, layout)
}
