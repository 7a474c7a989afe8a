package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/pastryforge/pastryforge/internal/inspect"
)

func newInspectCmd() *cobra.Command {
	var file string
	var port int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Serve a frozen post-run snapshot for offline debugging",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			return serveInspect(file, port)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to a --snapshot file written by run")
	cmd.Flags().IntVar(&port, "port", 8090, "listen port")
	return cmd
}

func serveInspect(file string, port int) error {
	snapshot, err := inspect.LoadSnapshot(file)
	if err != nil {
		return err
	}

	app := fx.New(
		fx.NopLogger,
		fx.Supply(inspect.Config{Port: port}, snapshot),
		fx.Provide(inspect.New),
		fx.Invoke(inspect.Start),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return app.Stop(context.Background())
}
