// Package main is the entry point for the btw CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flemzord/btw/internal/config"
	"github.com/flemzord/btw/pkg/app"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "btw",
		Short:         "Expose project-aware tools to LLM clients over MCP",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("config", "c", "", "Path to configuration file")
	root.PersistentFlags().String("project", "", "Explicit project file path")
	root.PersistentFlags().StringP("workdir", "w", "", "Working directory (sandbox root)")
	root.PersistentFlags().String("provider", "", "Override the session provider")
	root.PersistentFlags().String("tools", "", "Override the tool selection (all, none, or tokens)")

	root.AddCommand(
		versionCmd(),
		serveCmd(),
		toolsCmd(),
		contextCmd(),
		askCmd(),
		initCmd(),
		configCmd(),
	)
	return root
}

// runParams collects the shared flags into application parameters.
func runParams(cmd *cobra.Command) app.RunParams {
	configPath, _ := cmd.Flags().GetString("config")
	projectFile, _ := cmd.Flags().GetString("project")
	workDir, _ := cmd.Flags().GetString("workdir")
	provider, _ := cmd.Flags().GetString("provider")
	tools, _ := cmd.Flags().GetString("tools")

	return app.RunParams{
		ConfigPath:  configPath,
		ProjectFile: projectFile,
		WorkDir:     workDir,
		Provider:    provider,
		Tools:       tools,
		Version:     version,
		Commit:      commit,
		Date:        date,
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("btw %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the resolved session as an MCP server on stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Serve(runParams(cmd))
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <path>",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}

			fmt.Println("Configuration OK")
			if cfg.Defaults.Provider != "" {
				fmt.Printf("  default provider: %s\n", cfg.Defaults.Provider)
			}
			if cfg.Audit.Enabled {
				fmt.Printf("  audit: %s\n", cfg.Audit.Path)
			}
			if cfg.Debug.Enabled {
				fmt.Printf("  debug server: %s\n", cfg.Debug.Addr)
			}
			if cfg.Telemetry.Enabled {
				fmt.Printf("  telemetry: %s\n", cfg.Telemetry.Endpoint)
			}
			return nil
		},
	})
	return cmd
}
