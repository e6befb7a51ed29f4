package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/config"
	"github.com/promptdeck/promptdeck/internal/filestore"
	"github.com/promptdeck/promptdeck/internal/scope"
	"github.com/promptdeck/promptdeck/internal/syncer"
	"github.com/promptdeck/promptdeck/internal/sysaccess"
)

func newSyncCmd() *cobra.Command {
	var toolFlag string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Scan tool namespaces into the catalog",
		Long:  "Scan the Markdown files under each tool namespace and add any records the catalog does not know yet. Catalog entries are never overwritten.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tools := []config.Tool{config.ToolClaude, config.ToolCodex}
			if toolFlag != "" {
				tool, ok := config.ParseTool(toolFlag)
				if !ok {
					return fmt.Errorf("invalid tool: %s (valid values: claude, codex)", toolFlag)
				}
				tools = []config.Tool{tool}
			}

			workingDir, err := os.Getwd()
			if err != nil {
				workingDir = "."
			}

			var roots []syncer.Root
			for _, tool := range tools {
				roots = append(roots,
					syncer.Root{Path: config.PromptsDir(tool, scope.User, ""), Scope: scope.User},
					syncer.Root{Path: config.PromptsDir(tool, scope.Project, workingDir), Scope: scope.Project},
				)
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			files := filestore.New(sysaccess.NewOS())
			ctx := context.Background()

			records, err := syncer.New(store, files, catalog.KindPrompt, roots).Sync(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Catalog holds %d prompt(s)\n", len(records))
			return nil
		},
	}

	cmd.Flags().StringVar(&toolFlag, "tool", "", "Limit the scan to one tool: claude or codex")

	return cmd
}
