// Package promptfile encodes and decodes the on-disk Markdown representation
// of a catalog record: an optional frontmatter block delimited by "---" lines
// followed by the record body.
package promptfile

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/scope"
)

const delimiter = "---"

// DefaultCategory is written when a record has no category of its own.
const DefaultCategory = "general"

// DecodeError reports a file that could not be parsed into a record. Callers
// are expected to skip the file and continue.
type DecodeError struct {
	FileName string
	Reason   string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("promptfile: cannot decode %s: %s", e.FileName, e.Reason)
}

// Encode renders rec as frontmatter plus body. The frontmatter carries
// description, category (defaulted to "general") and the comma-joined allowed
// tools when present; the body follows after a blank line, verbatim.
func Encode(rec *catalog.Record) string {
	var b strings.Builder
	b.WriteString(delimiter + "\n")
	fmt.Fprintf(&b, "description: \"%s\"\n", rec.Description)
	fmt.Fprintf(&b, "category: \"%s\"\n", rec.CategoryOrDefault(DefaultCategory))
	if len(rec.AllowedTools) > 0 {
		fmt.Fprintf(&b, "tools: \"%s\"\n", strings.Join(rec.AllowedTools, ", "))
	}
	b.WriteString(delimiter + "\n\n")
	b.WriteString(rec.Content)
	return b.String()
}

// Decode parses text into a record. The record's name is derived from
// fileName with the ".md" suffix stripped; the file system, not the
// frontmatter, is authoritative for the name. When the text does not open
// with a "---" line the whole text is treated as body with no frontmatter.
// Unrecognized frontmatter keys are retained in the record's Extra map.
//
// The returned record carries user scope and a deterministic id derived from
// its name; callers that know better (project scans, imports) overwrite both.
func Decode(text, fileName, basePath string) (*catalog.Record, error) {
	name := strings.TrimSuffix(fileName, ".md")
	if name == "" {
		return nil, &DecodeError{FileName: fileName, Reason: "empty record name"}
	}

	front, body := splitFrontmatter(text)

	rec := &catalog.Record{
		ID:          catalog.StableID(catalog.KindPrompt, scope.User, name),
		Kind:        catalog.KindPrompt,
		Name:        name,
		Description: "Prompt " + name,
		Content:     body,
		Scope:       scope.User,
		FilePath:    path.Join(basePath, fileName),
		Arguments:   []catalog.Argument{},
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	for key, value := range front {
		switch key {
		case "description":
			rec.Description = value
		case "category":
			category := value
			rec.Category = &category
		case "tools":
			rec.AllowedTools = splitTools(value)
		default:
			if rec.Extra == nil {
				rec.Extra = map[string]string{}
			}
			rec.Extra[key] = value
		}
	}

	if rec.Category == nil {
		category := DefaultCategory
		rec.Category = &category
	}

	return rec, nil
}

// splitFrontmatter separates the frontmatter key/value pairs from the body.
// A missing or unterminated opening delimiter means the entire text is body.
func splitFrontmatter(text string) (map[string]string, string) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != delimiter {
		return nil, strings.TrimSpace(text)
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == delimiter {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, strings.TrimSpace(text)
	}

	front := make(map[string]string)
	for _, line := range lines[1:end] {
		colon := strings.Index(line, ":")
		if colon <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:colon])
		value := stripQuotes(strings.TrimSpace(line[colon+1:]))
		front[key] = value
	}

	body := strings.TrimSpace(strings.Join(lines[end+1:], "\n"))
	return front, body
}

func stripQuotes(value string) string {
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

func splitTools(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	tools := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tools = append(tools, trimmed)
		}
	}
	return tools
}
