package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pastryforge/pastryforge/internal/generate"
)

func newGenerateCmd() *cobra.Command {
	opts := generate.Options{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Emit a synthetic command script for use as simulator input",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Write(os.Stdout)
		},
	}

	cmd.Flags().Uint32Var(&opts.Period, "period", 5, "truck period P")
	cmd.Flags().Uint64Var(&opts.Capacity, "capacity", 200, "truck capacity C")
	cmd.Flags().IntVar(&opts.Ticks, "ticks", 100, "number of restock/order lines to emit after the add_recipe lines")
	cmd.Flags().Float64Var(&opts.OrderRate, "rate", 2, "Poisson lambda bounding each order's quantity")
	cmd.Flags().IntVar(&opts.RestockEvery, "restock-every", 5, "emit a restock line every N ticks")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "random seed for reproducible scripts")

	return cmd
}
