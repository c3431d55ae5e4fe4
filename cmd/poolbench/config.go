package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hemal-shah/poolkit/config"
	"github.com/hemal-shah/poolkit/pooled"
)

type shapeCapacity struct {
	Shape    string `json:"shape"`
	Capacity int    `json:"capacity"`
}

func newConfigCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the capacity every shape's pools get",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			capacities := effectiveCapacities(cfg)
			if g.json {
				return writeJSON(cmd.OutOrStdout(), capacities)
			}
			return writeCapacities(cmd.OutOrStdout(), capacities)
		},
	}
}

func effectiveCapacities(cfg config.Pools) []shapeCapacity {
	out := make([]shapeCapacity, 0, len(pooled.Shapes)+1)
	for _, shape := range pooled.Shapes {
		out = append(out, shapeCapacity{Shape: shape, Capacity: cfg.Capacity(shape)})
	}
	return append(out, shapeCapacity{Shape: pooled.ShapeBuffer, Capacity: cfg.BufferCapacity()})
}

func writeCapacities(w io.Writer, capacities []shapeCapacity) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range capacities {
		fmt.Fprintf(tw, "%s\t%d\n", c.Shape, c.Capacity)
	}
	return tw.Flush()
}
