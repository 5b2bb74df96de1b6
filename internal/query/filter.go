// Package query normalizes untrusted list-endpoint parameters into a safe,
// allow-listed filter specification. Column names in a Spec only ever come
// from a Schema, never from client input.
package query

import (
	"fmt"
	"strings"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// MatchKind selects how a declared field filters.
type MatchKind int

const (
	MatchExact MatchKind = iota
	MatchSubstring
)

// Field declares one filterable field: the column it maps to and how it
// matches.
type Field struct {
	Column string
	Kind   MatchKind
}

// Schema is the per-resource allow-list the builder dispatches against.
type Schema struct {
	// Fields maps API filter names to their column and match kind.
	Fields map[string]Field
	// SearchColumns are OR-combined for the free-text search parameter.
	SearchColumns []string
	// Sortable maps accepted sort names to columns.
	Sortable map[string]string
	// DefaultSortColumn is used when no sort field is supplied.
	DefaultSortColumn string
	// OwnerColumn scopes visibility for non-admin callers.
	OwnerColumn string
}

// Input is the raw, partially-trusted parameter set of a list request.
type Input struct {
	Page      int
	PageSize  int
	Search    string
	SortBy    string
	SortOrder string
	Filters   map[string]string
}

const defaultPageSize = 10

// Spec is the normalized filter specification. Equality and Substring are
// keyed by column name.
type Spec struct {
	Equality      map[string]any
	Substring     map[string]string
	SearchTerm    string
	SearchColumns []string
	SortColumn    string
	SortDir       Direction
	Page          int
	PageSize      int
}

// Build validates in against schema and produces a Spec. Scalar values are
// trimmed; values empty after trimming are treated as not provided. Unknown
// filter fields, unknown sort fields and unknown sort directions are
// rejected.
func Build(schema Schema, in Input) (*Spec, error) {
	spec := &Spec{
		Equality:  make(map[string]any),
		Substring: make(map[string]string),
		Page:      in.Page,
		PageSize:  in.PageSize,
	}
	if spec.Page < 1 {
		spec.Page = 1
	}
	if spec.PageSize < 1 {
		spec.PageSize = defaultPageSize
	}

	for name, raw := range in.Filters {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		field, ok := schema.Fields[name]
		if !ok {
			return nil, fmt.Errorf("unknown filter field %q", name)
		}
		switch field.Kind {
		case MatchSubstring:
			spec.Substring[field.Column] = value
		default:
			spec.Equality[field.Column] = value
		}
	}

	if term := strings.TrimSpace(in.Search); term != "" {
		spec.SearchTerm = term
		spec.SearchColumns = schema.SearchColumns
	}

	sortBy := strings.TrimSpace(in.SortBy)
	if sortBy == "" {
		spec.SortColumn = schema.DefaultSortColumn
	} else {
		column, ok := schema.Sortable[sortBy]
		if !ok {
			return nil, fmt.Errorf("unknown sort field %q", sortBy)
		}
		spec.SortColumn = column
	}

	switch strings.ToUpper(strings.TrimSpace(in.SortOrder)) {
	case "", string(Desc):
		spec.SortDir = Desc
	case string(Asc):
		spec.SortDir = Asc
	default:
		return nil, fmt.Errorf("unknown sort direction %q", in.SortOrder)
	}

	return spec, nil
}

// ScopeToOwner merges an owner equality filter, restricting visibility to a
// single owner's records.
func (s *Spec) ScopeToOwner(column string, ownerID int64) {
	s.Equality[column] = ownerID
}

// HasFilters reports whether any filter condition is active.
func (s *Spec) HasFilters() bool {
	return len(s.Equality) > 0 || len(s.Substring) > 0 || s.SearchTerm != ""
}

// Offset returns the row offset for the requested page.
func (s *Spec) Offset() int {
	return (s.Page - 1) * s.PageSize
}

// TotalPages returns the page count for total matching records.
func (s *Spec) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + s.PageSize - 1) / s.PageSize
}
