package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/scope"
)

func newSearchCmd() *cobra.Command {
	var (
		format    string
		scopeFlag string
		kindFlag  string
		category  string
		sortBy    string
		sortOrder string
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search prompts by text, scope, and category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			scopeFilter, err := scope.ParseFilter(scopeFlag)
			if err != nil {
				return err
			}
			kind, err := parseKindFlag(kindFlag)
			if err != nil {
				return err
			}

			opts := catalog.SearchOptions{
				Query:     query,
				Scope:     scopeFilter,
				SortBy:    sortBy,
				SortOrder: sortOrder,
			}
			if cmd.Flags().Changed("category") {
				c := category
				opts.Category = &c
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			ctx := context.Background()
			records, err := deckService(store, kind).Search(ctx, opts)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return outputJSON(cmd, records)
			case "table":
				outputTable(cmd, records)
				return nil
			default:
				return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	cmd.Flags().StringVar(&scopeFlag, "scope", "", "Scope filter: user, project, or all")
	cmd.Flags().StringVar(&kindFlag, "kind", "prompt", "Record kind: prompt or command")
	cmd.Flags().StringVar(&category, "category", "", "Category filter (empty matches records without one)")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort key: name, createdAt, or updatedAt")
	cmd.Flags().StringVar(&sortOrder, "order", "", "Sort direction: asc or desc")

	return cmd
}
