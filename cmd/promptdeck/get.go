package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/scope"
)

func newGetCmd() *cobra.Command {
	var (
		scopeFlag string
		kindFlag  string
	)

	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Print a prompt's content",
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

			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			ctx := context.Background()
			rec, err := deckService(store, kind).FindByNameScope(ctx, name, sc)
			if err != nil {
				return err
			}
			if rec == nil {
				return fmt.Errorf("%s not found: %s", kind, name)
			}

			fmt.Fprintln(cmd.OutOrStdout(), rec.Content)
			return nil
		},
	}

	cmd.Flags().StringVar(&scopeFlag, "scope", "user", "Scope: user or project")
	cmd.Flags().StringVar(&kindFlag, "kind", "prompt", "Record kind: prompt or command")

	return cmd
}
