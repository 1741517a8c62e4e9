package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agenthub-io/agenthub/app"
	"github.com/agenthub-io/agenthub/config"
	sentrypkg "github.com/agenthub-io/agenthub/internal/sentry"
	"github.com/agenthub-io/agenthub/log"
	"github.com/agenthub-io/agenthub/session"
)

var (
	version    = "0.1.0"
	serverFlag string
	rootCmd    = &cobra.Command{
		Use:   "agenthub",
		Short: "agenthub - Terminal client for the agent hub: sign in, configure the scrum master, chat.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg := config.LoadConfig()
			if serverFlag != "" {
				cfg.ServerURL = serverFlag
			}

			if err := sentrypkg.Init(version, cfg.IsTelemetryEnabled()); err != nil {
				// Non-fatal: sentry failure should not prevent startup
				_ = err
			}
			defer sentrypkg.Flush()
			defer sentrypkg.RecoverPanic()

			log.Initialize(cfg.IsTelemetryEnabled())
			defer log.Close()

			sentrypkg.SetContext(cfg.ServerURL, false)

			return app.Run(ctx, cfg)
		},
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Discard the locally stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(false)
			defer log.Close()

			cfg := config.LoadConfig()
			repo, err := session.NewRepository(cfg)
			if err != nil {
				return fmt.Errorf("failed to open session store: %w", err)
			}
			defer repo.Close()

			if err := repo.Clear(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			fmt.Println("Session cleared")
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(false)
			defer log.Close()

			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)

			if logPath, err := log.Path(); err == nil {
				fmt.Printf("Log: %s\n", logPath)
			}

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of agenthub",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("agenthub version %s\n", version)
		},
	}
)

func init() {
	rootCmd.Flags().StringVarP(&serverFlag, "server", "s", "",
		"Backend URL (overrides the configured server_url)")

	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
	}
}
