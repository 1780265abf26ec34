package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/flemzord/btw/internal/tool"
	"github.com/flemzord/btw/pkg/app"
)

func toolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List registered tools and their availability",
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := runParams(cmd)
			a, err := app.Setup(params)
			if err != nil {
				return err
			}

			reg, err := app.BuildRegistry(a.WorkDir, "", time.Now())
			if err != nil {
				return err
			}

			for _, d := range reg.All() {
				instance, available := d.New()
				marker := "available"
				if !available {
					marker = "unavailable"
				}

				fmt.Printf("%-16s %-8s %-12s %s\n", d.Name, d.Group, marker, hintSummary(d.Hints))
				if available {
					fmt.Printf("%-16s %s\n", "", instance.Description())
				}
			}
			return nil
		},
	}
}

// hintSummary renders the set capability hints as a compact token list.
func hintSummary(h tool.Hints) string {
	var parts []string
	if h.ReadOnly != nil && *h.ReadOnly {
		parts = append(parts, "read-only")
	}
	if h.Idempotent != nil && *h.Idempotent {
		parts = append(parts, "idempotent")
	}
	if h.OpenWorld != nil && *h.OpenWorld {
		parts = append(parts, "open-world")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}

func contextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "context",
		Short: "Print the resolved session configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := runParams(cmd)
			a, err := app.Setup(params)
			if err != nil {
				return err
			}

			cfg, active, err := a.ResolveSession(params)
			if err != nil {
				return err
			}

			fmt.Printf("provider: %s\n", cfg.Client.Provider())
			fmt.Printf("model: %s\n", cfg.Client.Model())
			if cfg.ProjectPath != "" {
				fmt.Printf("project: %s\n", cfg.ProjectPath)
			} else {
				fmt.Println("project: (none)")
			}
			fmt.Printf("tools: %s\n", cfg.Tools.String())

			if len(active) > 0 {
				fmt.Println("active tools:")
				for _, t := range active {
					fmt.Printf("  %s (%s)\n", t.Name, t.Group)
				}
			}

			if cfg.Prompt != "" {
				fmt.Println("\ninstructions:")
				for _, line := range strings.Split(cfg.Prompt, "\n") {
					fmt.Printf("  %s\n", line)
				}
			}
			return nil
		},
	}
}

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <text>",
		Short: "Send a one-shot prompt through the resolved session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := runParams(cmd)
			a, err := app.Setup(params)
			if err != nil {
				return err
			}

			cfg, _, err := a.ResolveSession(params)
			if err != nil {
				return err
			}

			reply, err := cfg.Client.Complete(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			fmt.Println(reply)
			return nil
		},
	}
}
