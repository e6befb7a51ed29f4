package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/scope"
	"github.com/promptdeck/promptdeck/internal/services"
)

func newDeleteCmd() *cobra.Command {
	var (
		force     bool
		scopeFlag string
		kindFlag  string
	)

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a prompt from the catalog",
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

			if !force {
				message := fmt.Sprintf("Delete %s '%s' and its file? (y/N) ", kind, name)
				ok, err := confirm(cmd, message)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled")
					return nil
				}
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

			rec, err := svc.FindByNameScope(ctx, name, sc)
			if err != nil {
				return err
			}
			if rec == nil {
				return fmt.Errorf("%s not found: %s", kind, name)
			}

			if err := svc.Delete(ctx, rec.ID); err != nil {
				// The row may be gone even when the backing file could not
				// be removed; downgrade a pure cleanup failure to a warning.
				var cleanup *services.FileCleanupError
				if errors.As(err, &cleanup) {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: file not removed: %s\n", cleanup.Path)
				}
				if cleanup == nil || err.Error() != cleanup.Error() {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted '%s'\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")
	cmd.Flags().StringVar(&scopeFlag, "scope", "user", "Scope: user or project")
	cmd.Flags().StringVar(&kindFlag, "kind", "prompt", "Record kind: prompt or command")

	return cmd
}
