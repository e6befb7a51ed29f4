package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/scope"
)

func newAddCmd() *cobra.Command {
	var (
		filePath    string
		description string
		category    string
		scopeFlag   string
		kindFlag    string
		tools       []string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a prompt to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			sc, err := scope.Parse(scopeFlag)
			if err != nil {
				return err
			}
			kind, err := parseKindFlag(kindFlag)
			if err != nil {
				return err
			}

			content, err := readContent(cmd, filePath)
			if err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			ctx := context.Background()
			svc := deckService(store, kind)

			if existing, err := svc.FindByNameScope(ctx, name, sc); err != nil {
				return err
			} else if existing != nil {
				return fmt.Errorf("%s '%s' already exists in %s scope", kind, name, sc)
			}

			rec := catalog.Record{
				Name:        name,
				Description: description,
				Content:     content,
				Scope:       sc,
			}
			if strings.TrimSpace(category) != "" {
				c := category
				rec.Category = &c
			}
			if len(tools) > 0 {
				rec.AllowedTools = tools
			}

			created, err := svc.Create(ctx, rec)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), created.FilePath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Read content from file instead of stdin")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Add description metadata")
	cmd.Flags().StringVar(&category, "category", "", "Assign a category")
	cmd.Flags().StringVar(&scopeFlag, "scope", "user", "Scope: user or project")
	cmd.Flags().StringVar(&kindFlag, "kind", "prompt", "Record kind: prompt or command")
	cmd.Flags().StringSliceVar(&tools, "tools", nil, "Allowed tools (comma separated)")

	return cmd
}
