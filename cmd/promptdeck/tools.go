package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/clitools"
	"github.com/promptdeck/promptdeck/internal/config"
	"github.com/promptdeck/promptdeck/internal/sysaccess"
)

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Manage the external AI CLIs",
	}

	cmd.AddCommand(newToolsStatusCmd())
	cmd.AddCommand(newToolsInstallCmd())
	cmd.AddCommand(newToolsUpdateCmd())

	return cmd
}

func newToolsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show installation status of each tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr := clitools.NewManager(sysaccess.NewOS())

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Tool", "Binary", "Installed", "Version"})

			for _, def := range clitools.Definitions() {
				version, err := mgr.Version(def.Tool)
				installed := "yes"
				if err != nil {
					installed = "no"
					version = "-"
				}
				t.AppendRow(table.Row{string(def.Tool), def.Binary, installed, version})
			}

			t.Render()
			return nil
		},
	}
}

func newToolsInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install <tool>",
		Short: "Install a tool globally via npm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, ok := config.ParseTool(args[0])
			if !ok {
				return fmt.Errorf("invalid tool: %s (valid values: claude, codex)", args[0])
			}

			mgr := clitools.NewManager(sysaccess.NewOS())
			if err := mgr.Install(tool); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Installed %s\n", tool)
			return nil
		},
	}
}

func newToolsUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <tool>",
		Short: "Update a tool's global npm installation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, ok := config.ParseTool(args[0])
			if !ok {
				return fmt.Errorf("invalid tool: %s (valid values: claude, codex)", args[0])
			}

			mgr := clitools.NewManager(sysaccess.NewOS())
			if err := mgr.Update(tool); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", tool)
			return nil
		},
	}
}
