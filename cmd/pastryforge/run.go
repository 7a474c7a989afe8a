package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/pastryforge/pastryforge/internal/bakery"
	"github.com/pastryforge/pastryforge/internal/cli"
	uberconfig "github.com/pastryforge/pastryforge/internal/config"
	"github.com/pastryforge/pastryforge/internal/telemetry"
)

func newRunCmd() *cobra.Command {
	var snapshotPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation, reading commands from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(os.Stdin, os.Stdout, snapshotPath)
		},
	}
	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "write a final-state JSON snapshot to this path on EOF")
	return cmd
}

// runSimulation wires the application with fx.New:
// fx.Provide constructors for config/logger/dispatcher, then fx.Invoke a
// runner whose OnStart hook drains stdin to EOF and calls Shutdowner to end
// the run. The "serve forever" HTTP lifecycle becomes "run to EOF" here.
func runSimulation(stdin *os.File, stdout *os.File, snapshotPath string) error {
	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	period, capacity, err := cli.ParseHeader(scanner)
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}

	var dispatcher *bakery.Dispatcher

	app := fx.New(
		fx.NopLogger,
		fx.Provide(func() uberconfig.Env { return uberconfig.LookupEnv() }),
		fx.Provide(func(env uberconfig.Env) uberconfig.RuntimeConfig {
			return uberconfig.MustLoad(env)
		}),
		fx.Provide(func(rc uberconfig.RuntimeConfig) *logrus.Logger {
			return telemetry.NewLogger(rc.LogLevel)
		}),
		fx.Provide(func(rc uberconfig.RuntimeConfig, log *logrus.Logger) *bakery.Dispatcher {
			hashCfg := bakery.HashConfig{BlockSize: rc.HashBlockSize, LoadFactor: rc.HashLoadFactor}
			d := bakery.NewDispatcher(period, capacity, hashCfg, logrus.NewEntry(log))
			dispatcher = d
			return d
		}),
		fx.Provide(cli.NewRunner),
		fx.Invoke(func(lifecycle fx.Lifecycle, shutdowner fx.Shutdowner, runner *cli.Runner) {
			lifecycle.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go func() {
						_ = runner.Run(scanner, stdout)
						_ = shutdowner.Shutdown()
					}()
					return nil
				},
				OnStop: func(context.Context) error { return nil },
			})
		}),
	)

	startCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}
	<-app.Done()
	if err := app.Stop(context.Background()); err != nil {
		return err
	}

	if snapshotPath != "" && dispatcher != nil {
		return writeSnapshot(dispatcher, snapshotPath)
	}
	return nil
}
