package promptfile

import (
	"reflect"
	"strings"
	"testing"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/scope"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	category := "deploy"
	rec := &catalog.Record{
		Name:         "release",
		Description:  "cut a release",
		Content:      "Run the release checklist.\n\n1. tag\n2. push",
		Scope:        scope.User,
		Category:     &category,
		AllowedTools: []string{"Bash", "Read", "Write"},
	}

	decoded, err := Decode(Encode(rec), rec.Name+".md", "/tmp/prompts")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if decoded.Content != rec.Content {
		t.Fatalf("content mismatch:\n got %q\nwant %q", decoded.Content, rec.Content)
	}
	if decoded.Description != rec.Description {
		t.Fatalf("description mismatch: got %q want %q", decoded.Description, rec.Description)
	}
	if decoded.Category == nil || *decoded.Category != category {
		t.Fatalf("category mismatch: got %v want %q", decoded.Category, category)
	}
	if !reflect.DeepEqual(decoded.AllowedTools, rec.AllowedTools) {
		t.Fatalf("tools mismatch: got %v want %v", decoded.AllowedTools, rec.AllowedTools)
	}
	if decoded.Name != "release" {
		t.Fatalf("name should come from the file name, got %q", decoded.Name)
	}
}

func TestEncodeOmitsEmptyTools(t *testing.T) {
	rec := &catalog.Record{Name: "x", Description: "d", Content: "body"}
	text := Encode(rec)
	if strings.Contains(text, "tools:") {
		t.Fatalf("tools line should be omitted when empty:\n%s", text)
	}
	if !strings.Contains(text, "category: \"general\"") {
		t.Fatalf("absent category should encode as general:\n%s", text)
	}
}

func TestDecodeWithoutFrontmatter(t *testing.T) {
	text := "Just a plain prompt body.\nSecond line."

	rec, err := Decode(text, "plain.md", "/base")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if rec.Content != text {
		t.Fatalf("whole text should become content, got %q", rec.Content)
	}
	if rec.Name != "plain" {
		t.Fatalf("expected name plain, got %q", rec.Name)
	}
	if rec.Category == nil || *rec.Category != DefaultCategory {
		t.Fatalf("expected default category, got %v", rec.Category)
	}
}

func TestDecodeUnterminatedFrontmatterIsBody(t *testing.T) {
	text := "---\ndescription: \"half open\"\nno closing delimiter"

	rec, err := Decode(text, "broken.md", "/base")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !strings.HasPrefix(rec.Content, "---") {
		t.Fatalf("unterminated frontmatter should be kept as body, got %q", rec.Content)
	}
}

func TestDecodeRetainsUnknownKeys(t *testing.T) {
	text := "---\ndescription: \"d\"\nmodel: 'opus'\npriority: high\n---\n\nbody"

	rec, err := Decode(text, "extra.md", "/base")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if rec.Extra["model"] != "opus" {
		t.Fatalf("single quotes should be stripped, got %q", rec.Extra["model"])
	}
	if rec.Extra["priority"] != "high" {
		t.Fatalf("unknown key lost: %v", rec.Extra)
	}
	if rec.Description != "d" {
		t.Fatalf("known key should map to the field, got %q", rec.Description)
	}
}

func TestDecodeStableIdentity(t *testing.T) {
	text := "---\ndescription: \"d\"\n---\n\nbody"

	first, err := Decode(text, "same.md", "/base")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	second, err := Decode(text, "same.md", "/base")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("ids differ across decodes: %s vs %s", first.ID, second.ID)
	}
}

func TestDecodeEmptyNameFails(t *testing.T) {
	if _, err := Decode("body", ".md", "/base"); err == nil {
		t.Fatal("expected error for empty record name")
	}
}
