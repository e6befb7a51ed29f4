// Package search filters and orders catalog records. It is a pure function
// of its inputs and performs no I/O.
package search

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/scope"
)

// Search returns the subset of records matching opts, ordered per its sort
// options. All supplied predicates are ANDed: scope, then category, then the
// case-insensitive substring query against name, description and content.
// Sorting is stable; ties keep their relative input order. The default order
// is updatedAt descending.
func Search(records []catalog.Record, opts catalog.SearchOptions) []catalog.Record {
	result := make([]catalog.Record, 0, len(records))
	for _, rec := range records {
		if !matchScope(rec, opts.Scope) {
			continue
		}
		if !matchCategory(rec, opts.Category) {
			continue
		}
		if !matchQuery(rec, opts.Query) {
			continue
		}
		result = append(result, rec)
	}

	sortRecords(result, opts)
	return result
}

func matchScope(rec catalog.Record, filter string) bool {
	if filter == "" || filter == scope.All {
		return true
	}
	return string(rec.Scope) == filter
}

// matchCategory treats an empty-string filter as "no category": it selects
// records whose category is absent or empty.
func matchCategory(rec catalog.Record, filter *string) bool {
	if filter == nil {
		return true
	}
	if *filter == "" {
		return rec.Category == nil || *rec.Category == ""
	}
	return rec.Category != nil && *rec.Category == *filter
}

func matchQuery(rec catalog.Record, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(rec.Name), q) ||
		strings.Contains(strings.ToLower(rec.Description), q) ||
		strings.Contains(strings.ToLower(rec.Content), q)
}

func sortRecords(records []catalog.Record, opts catalog.SearchOptions) {
	sortBy := opts.SortBy
	order := opts.SortOrder
	if sortBy == "" {
		sortBy = "updatedAt"
		if order == "" {
			order = "desc"
		}
	}
	if order == "" {
		order = "asc"
	}

	var less func(a, b catalog.Record) bool
	switch sortBy {
	case "name":
		coll := collate.New(language.Und)
		less = func(a, b catalog.Record) bool {
			return coll.CompareString(a.Name, b.Name) < 0
		}
	case "createdAt":
		less = func(a, b catalog.Record) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	default:
		less = func(a, b catalog.Record) bool {
			return a.UpdatedAt.Before(b.UpdatedAt)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if order == "desc" {
			return less(records[j], records[i])
		}
		return less(records[i], records[j])
	})
}

// Categories returns the distinct categories present in records, with ""
// standing in for records that have none. The result is unordered.
func Categories(records []catalog.Record) []string {
	seen := map[string]bool{}
	for _, rec := range records {
		if rec.Category == nil {
			seen[""] = true
			continue
		}
		seen[*rec.Category] = true
	}

	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	return categories
}
