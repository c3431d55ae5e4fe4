// Command poolbench stress tests the pooled containers and prints pool statistics.
//
// Usage:
//
//	poolbench run --workers 100 --cycles 10000 --capacity 16 --shape sequence
//	poolbench run --shape linked_map --json --profile wall.pprof
//	poolbench config --config pools.yaml
//
// run exits with a non-zero status when any worker observed state written by another.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hemal-shah/poolkit/config"
)

type globalFlags struct {
	configPath string
	json       bool
	verbose    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "poolbench",
		Short:         "Stress test bounded container pools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "YAML file with pool capacities")
	root.PersistentFlags().BoolVar(&g.json, "json", false, "print JSON instead of text")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "development logging at debug level")

	root.AddCommand(newRunCmd(g), newConfigCmd(g))
	return root
}

func (g *globalFlags) logger() (*zap.Logger, error) {
	if g.verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func (g *globalFlags) loadConfig() (config.Pools, error) {
	return config.Load(g.configPath)
}
