package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "promptdeck",
	Short: "promptdeck - A prompt catalog for AI coding assistants",
	Long:  "promptdeck manages prompts and commands for claude and codex, backed by a SQLite catalog and Markdown files in each tool's namespace.",
}

func init() {
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newProjectCmd())
	rootCmd.AddCommand(newSetupCmd())
	rootCmd.AddCommand(newToolsCmd())
	rootCmd.AddCommand(newMCPCmd())
	rootCmd.AddCommand(newVersionCmd())
}
