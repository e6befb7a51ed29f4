package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/filestore"
	"github.com/promptdeck/promptdeck/internal/scope"
	"github.com/promptdeck/promptdeck/internal/sysaccess"
	"github.com/promptdeck/promptdeck/internal/transfer"
)

func newImportCmd() *cobra.Command {
	var scopeFlag string

	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Import prompts from a bundle, Markdown file, or folder",
		Long:  "Import a JSON bundle, a single Markdown file, or a folder of Markdown files. Records matching an existing name and scope are updated in place; everything else is added.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			sc, err := scope.Parse(scopeFlag)
			if err != nil {
				return err
			}

			info, err := os.Stat(path)
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

			files := filestore.New(sysaccess.NewOS())
			engine := transfer.NewEngine(store, files)
			ctx := context.Background()

			var (
				imported []catalog.Record
				runErr   error
			)
			switch {
			case info.IsDir():
				imported, runErr = engine.ImportFolder(ctx, path, sc)
			case strings.EqualFold(filepath.Ext(path), ".json"):
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				bundle, err := transfer.UnmarshalBundle(data)
				if err != nil {
					return err
				}
				imported, runErr = engine.Import(ctx, bundle)
			default:
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				imported, runErr = engine.ImportMarkdown(ctx, string(data), filepath.Base(path))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d record(s)\n", len(imported))

			var partial *transfer.PartialImportError
			if errors.As(runErr, &partial) {
				for _, failure := range partial.Failures {
					fmt.Fprintf(cmd.ErrOrStderr(), "Skipped '%s': %v\n", failure.Name, failure.Err)
				}
				return nil
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&scopeFlag, "scope", "user", "Scope for folder imports: user or project")

	return cmd
}
