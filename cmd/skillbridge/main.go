package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/skillbridge-backend/internal/app"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "skillbridge",
		Short:         "SkillBridge LMS backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath)
		},
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and websocket server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(configPath)
			if err != nil {
				return err
			}
			defer log.Sync()
			return app.Migrate(cmd.Context(), cfg, log)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Load the demo dataset and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(configPath)
			if err != nil {
				return err
			}
			defer log.Sync()
			report, err := app.Seed(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			fmt.Printf("seeded %d users, %d modules\n", report.UsersCreated, report.ModulesCreated)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", cfg.AppName, cfg.Version)
			return nil
		},
	})

	return cmd
}

func setup(configPath string) (app.Config, *logger.Logger, error) {
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return app.Config{}, nil, err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return app.Config{}, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

func serve(configPath string) error {
	cfg, log, err := setup(configPath)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("Startup failed", "error", err)
		return err
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Server stopped", "error", err)
		return err
	}
	log.Info("Server stopped")
	return nil
}
