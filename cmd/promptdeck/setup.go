package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/config"
	"github.com/promptdeck/promptdeck/internal/scope"
	"github.com/promptdeck/promptdeck/internal/sysaccess"
	"github.com/promptdeck/promptdeck/internal/toolconfig"
)

func newSetupCmd() *cobra.Command {
	var scopeFlag string

	cmd := &cobra.Command{
		Use:   "setup <tool>",
		Short: "Create a tool namespace directory",
		Long:  "Create the directory layout and default config.json for a tool namespace (.claude or .codex).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, ok := config.ParseTool(args[0])
			if !ok {
				return fmt.Errorf("invalid tool: %s (valid values: claude, codex)", args[0])
			}

			sc, err := scope.Parse(scopeFlag)
			if err != nil {
				return err
			}

			projectRoot := ""
			if sc == scope.Project {
				projectRoot, err = os.Getwd()
				if err != nil {
					return err
				}
			}

			mgr := toolconfig.NewManager(sysaccess.NewOS())
			root, err := mgr.Setup(tool, sc, projectRoot)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s namespace at %s\n", tool, root)
			return nil
		},
	}

	cmd.Flags().StringVar(&scopeFlag, "scope", "user", "Scope: user or project")

	return cmd
}
