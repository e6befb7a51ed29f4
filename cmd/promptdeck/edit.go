package main

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/database"
	"github.com/promptdeck/promptdeck/internal/scope"
)

func newEditCmd() *cobra.Command {
	var (
		scopeFlag string
		kindFlag  string
	)

	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Edit a prompt with $EDITOR",
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
			svc := deckService(store, kind)

			rec, err := svc.FindByNameScope(ctx, name, sc)
			if err != nil {
				return err
			}
			if rec == nil {
				return fmt.Errorf("%s not found: %s", kind, name)
			}

			currentContent := []byte(rec.Content)

			tempDir, err := os.MkdirTemp("", "promptdeck-edit-")
			if err != nil {
				return err
			}
			defer os.RemoveAll(tempDir)

			tempFile := filepath.Join(tempDir, name+".md")
			if err := os.WriteFile(tempFile, currentContent, 0600); err != nil {
				return err
			}

			editor := os.Getenv("EDITOR")
			if editor == "" {
				editor = os.Getenv("VISUAL")
			}
			if editor == "" {
				editor = "vi"
			}

			editorCmd := exec.Command(editor, tempFile)
			editorCmd.Stdin = os.Stdin
			editorCmd.Stdout = os.Stdout
			editorCmd.Stderr = os.Stderr

			if err := editorCmd.Run(); err != nil {
				return fmt.Errorf("editor exited with error: %w", err)
			}

			editedContent, err := os.ReadFile(tempFile)
			if err != nil {
				return err
			}

			// Content comparison via SHA256 to skip no-op saves
			currentHash := sha256.Sum256(currentContent)
			editedHash := sha256.Sum256(editedContent)

			if currentHash == editedHash {
				fmt.Fprintln(cmd.OutOrStdout(), "No changes made")
				return nil
			}

			content := string(editedContent)
			if _, err := svc.Update(ctx, rec.ID, database.RecordUpdate{Content: &content}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated '%s'\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&scopeFlag, "scope", "user", "Scope: user or project")
	cmd.Flags().StringVar(&kindFlag, "kind", "prompt", "Record kind: prompt or command")

	return cmd
}
