// Package main provides the entry point for the planning engine API server
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/ayurplan/engine/internal/infrastructure/container"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "ayurplan",
	Short: "Ayurvedic nutrition planning engine",
	Long: `ayurplan serves the nutrition aggregation, compliance scoring, meal
suggestion and diet chart APIs. Running it without a subcommand starts the
HTTP server; migrate and seed prepare the database.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(configPath(cmd))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./config.yaml, ./config/config.yaml or /etc/ayurplan/config.yaml)")
	rootCmd.AddCommand(versionCmd)
}

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}

func serve(path string) error {
	app := fx.New(
		fx.NopLogger,
		fx.Supply(container.ConfigPath(path)),
		container.Module,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	startCtx, startCancel := context.WithTimeout(ctx, 30*time.Second)
	defer startCancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}

	exitCode := 0
	select {
	case <-ctx.Done():
	case sig := <-app.Wait():
		exitCode = sig.ExitCode
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := app.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop application gracefully: %w", err)
	}
	if exitCode != 0 {
		return fmt.Errorf("server exited with code %d", exitCode)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
