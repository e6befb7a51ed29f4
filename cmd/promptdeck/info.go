package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/scope"
)

func newInfoCmd() *cobra.Command {
	var (
		format    string
		scopeFlag string
		kindFlag  string
	)

	cmd := &cobra.Command{
		Use:   "info <name>",
		Short: "Show prompt metadata",
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

			switch format {
			case "json":
				return outputInfoJSON(cmd, rec)
			case "table":
				outputInfoTable(cmd, rec)
				return nil
			default:
				return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	cmd.Flags().StringVar(&scopeFlag, "scope", "user", "Scope: user or project")
	cmd.Flags().StringVar(&kindFlag, "kind", "prompt", "Record kind: prompt or command")

	return cmd
}

type infoOutputEntry struct {
	ID           string   `json:"id"`
	Kind         string   `json:"kind"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Scope        string   `json:"scope"`
	Category     *string  `json:"category,omitempty"`
	FilePath     string   `json:"filePath,omitempty"`
	AllowedTools []string `json:"allowedTools,omitempty"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

func outputInfoJSON(cmd *cobra.Command, rec *catalog.Record) error {
	output := infoOutputEntry{
		ID:           rec.ID,
		Kind:         string(rec.Kind),
		Name:         rec.Name,
		Description:  rec.Description,
		Scope:        string(rec.Scope),
		Category:     rec.Category,
		FilePath:     rec.FilePath,
		AllowedTools: rec.AllowedTools,
		CreatedAt:    rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    rec.UpdatedAt.Format(time.RFC3339),
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func outputInfoTable(cmd *cobra.Command, rec *catalog.Record) {
	// Key-value pair format for a single record
	fmt.Fprintf(cmd.OutOrStdout(), "ID:           %s\n", rec.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Kind:         %s\n", rec.Kind)
	fmt.Fprintf(cmd.OutOrStdout(), "Name:         %s\n", rec.Name)
	fmt.Fprintf(cmd.OutOrStdout(), "Description:  %s\n", rec.Description)
	fmt.Fprintf(cmd.OutOrStdout(), "Scope:        %s\n", rec.Scope)

	category := ""
	if rec.Category != nil {
		category = *rec.Category
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Category:     %s\n", category)
	fmt.Fprintf(cmd.OutOrStdout(), "File Path:    %s\n", rec.FilePath)

	if len(rec.AllowedTools) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Tools:        %s\n", strings.Join(rec.AllowedTools, ", "))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created At:   %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(cmd.OutOrStdout(), "Updated At:   %s\n", rec.UpdatedAt.Format("2006-01-02 15:04:05"))
}
