package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/flemzord/btw/internal/project"
	"github.com/flemzord/btw/internal/tool"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a project file interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			workDir, _ := cmd.Flags().GetString("workdir")
			if workDir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				workDir = wd
			}

			path := filepath.Join(workDir, project.DefaultName)
			if _, err := os.Stat(path); err == nil {
				overwrite := false
				confirm := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("%s already exists. Overwrite?", project.DefaultName)).
						Value(&overwrite),
				))
				if err := confirm.Run(); err != nil {
					return initRunError(err)
				}
				if !overwrite {
					fmt.Println("Aborted.")
					return nil
				}
			}

			var (
				provider     string
				model        string
				groups       []string
				instructions string
			)

			groupOptions := make([]huh.Option[string], 0, len(tool.Groups))
			for _, g := range tool.Groups {
				groupOptions = append(groupOptions, huh.NewOption(g, g).Selected(true))
			}

			form := huh.NewForm(
				huh.NewGroup(
					huh.NewSelect[string]().
						Title("Provider").
						Options(
							huh.NewOption("Anthropic", "anthropic"),
							huh.NewOption("OpenAI", "openai"),
						).
						Value(&provider),
					huh.NewInput().
						Title("Model").
						Placeholder("leave empty for the provider default").
						Value(&model),
					huh.NewMultiSelect[string]().
						Title("Tool groups").
						Options(groupOptions...).
						Value(&groups),
					huh.NewText().
						Title("Project instructions").
						Placeholder("Guidance injected into every session").
						Value(&instructions),
				),
			)
			if err := form.Run(); err != nil {
				return initRunError(err)
			}

			content := renderProjectFile(provider, model, groups, instructions)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}

			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}
}

func initRunError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		fmt.Println("Aborted.")
		return nil
	}
	return err
}

// renderProjectFile builds the project file content from the wizard
// answers. Selecting every group keeps tools unrestricted; selecting
// none disables them.
func renderProjectFile(provider, model string, groups []string, instructions string) string {
	var b strings.Builder

	b.WriteString("---\n")
	fmt.Fprintf(&b, "provider: %s\n", provider)
	if model != "" {
		fmt.Fprintf(&b, "model: %s\n", model)
	}
	switch {
	case len(groups) == 0:
		b.WriteString("tools: none\n")
	case len(groups) == len(tool.Groups):
		// All groups selected: omit the key, everything stays enabled.
	default:
		b.WriteString("tools:\n")
		for _, g := range groups {
			fmt.Fprintf(&b, "  - %s\n", g)
		}
	}
	b.WriteString("---\n")

	if instructions = strings.TrimSpace(instructions); instructions != "" {
		b.WriteString("\n")
		b.WriteString(instructions)
		b.WriteString("\n")
	}

	return b.String()
}
