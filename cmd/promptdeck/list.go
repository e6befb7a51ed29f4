package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/scope"
)

func newListCmd() *cobra.Command {
	var (
		format    string
		scopeFlag string
		kindFlag  string
		category  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List prompts in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scopeFilter, err := scope.ParseFilter(scopeFlag)
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

			opts := catalog.SearchOptions{Scope: scopeFilter}
			if cmd.Flags().Changed("category") {
				c := category
				opts.Category = &c
			}

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

	return cmd
}

type listOutputEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Scope       string `json:"scope"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	FilePath    string `json:"filePath,omitempty"`
	UpdatedAt   string `json:"updatedAt"`
}

func outputJSON(cmd *cobra.Command, records []catalog.Record) error {
	var output []listOutputEntry

	for _, rec := range records {
		item := listOutputEntry{
			ID:          rec.ID,
			Name:        rec.Name,
			Scope:       string(rec.Scope),
			Description: rec.Description,
			FilePath:    rec.FilePath,
			UpdatedAt:   rec.UpdatedAt.Format(time.RFC3339),
		}
		if rec.Category != nil {
			item.Category = *rec.Category
		}
		output = append(output, item)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func getTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	// Default width if terminal size cannot be determined
	return 80
}

// wrapString wraps a string to fit within maxWidth, accounting for multi-byte
// characters.
func wrapString(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return s
	}

	s = strings.TrimSpace(s)
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	var result strings.Builder
	var currentLine strings.Builder
	currentWidth := 0

	for _, r := range s {
		charWidth := runewidth.RuneWidth(r)

		if currentWidth+charWidth > maxWidth {
			if currentWidth > 0 {
				result.WriteString(currentLine.String())
				result.WriteString("\n")
				currentLine.Reset()
				currentWidth = 0
			}
		}

		currentLine.WriteRune(r)
		currentWidth += charWidth
	}

	if currentLine.Len() > 0 {
		result.WriteString(currentLine.String())
	}

	return result.String()
}

// columnWidths holds the calculated widths for each column.
type columnWidths struct {
	name         int
	scope        int
	category     int
	updated      int
	useShortDate bool
	description  int
}

// calculateColumnWidths determines column widths from the terminal width and
// the data. Name gets priority and displays on a single line; description
// absorbs the remaining space.
func calculateColumnWidths(termWidth int, records []catalog.Record) columnWidths {
	const numColumns = 5

	// Reserve space for table borders and padding (roughly 3 chars per column)
	borderPadding := numColumns * 3
	availableWidth := termWidth - borderPadding

	maxNameWidth := 0
	maxCategoryWidth := 0
	for _, rec := range records {
		if w := runewidth.StringWidth(rec.Name); w > maxNameWidth {
			maxNameWidth = w
		}
		if rec.Category != nil {
			if w := runewidth.StringWidth(*rec.Category); w > maxCategoryWidth {
				maxCategoryWidth = w
			}
		}
	}

	nameWidth := maxNameWidth
	if nameWidth < 10 {
		nameWidth = 10
	}
	// Cap only extreme names so one entry cannot break the layout.
	if nameWidth > 60 {
		nameWidth = 60
	}

	categoryWidth := maxCategoryWidth
	if categoryWidth < 8 {
		categoryWidth = 8
	}
	if categoryWidth > 30 {
		categoryWidth = 30
	}

	scopeWidth := 7    // "project"
	updatedWidth := 19 // "2006-01-02 15:04:05"

	descWidth := availableWidth - nameWidth - scopeWidth - categoryWidth - updatedWidth

	// Too narrow: drop to an abbreviated date to win back space.
	useShortDate := false
	if descWidth < 20 {
		updatedWidth = 11 // "01-02 15:04"
		useShortDate = true
		descWidth = availableWidth - nameWidth - scopeWidth - categoryWidth - updatedWidth
	}

	if descWidth < 15 {
		descWidth = 15
	}

	return columnWidths{
		name:         nameWidth,
		scope:        scopeWidth,
		category:     categoryWidth,
		updated:      updatedWidth,
		useShortDate: useShortDate,
		description:  descWidth,
	}
}

func outputTable(cmd *cobra.Command, records []catalog.Record) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)

	termWidth := getTerminalWidth()
	widths := calculateColumnWidths(termWidth, records)

	// Content is wrapped/truncated manually before it reaches the table:
	// go-pretty's WidthMax doesn't handle multi-byte characters correctly.
	t.AppendHeader(table.Row{"Name", "Scope", "Category", "Updated", "Description"})

	for _, rec := range records {
		var updated string
		if widths.useShortDate {
			updated = rec.UpdatedAt.Format("01-02 15:04")
		} else {
			updated = rec.UpdatedAt.Format("2006-01-02 15:04:05")
		}

		category := ""
		if rec.Category != nil {
			category = *rec.Category
		}

		t.AppendRow(table.Row{
			wrapString(rec.Name, widths.name),
			string(rec.Scope),
			wrapString(category, widths.category),
			updated,
			runewidth.Truncate(rec.Description, widths.description, "..."),
		})
	}

	t.Render()
}
