package repository

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spec-kit/resume-server/internal/query"
)

// buildWhere renders a normalized filter spec into a WHERE clause with
// positional args. Column names come exclusively from the Spec, which the
// query builder filled from a schema allow-list. Conditions are emitted in
// sorted column order so generated SQL is deterministic.
func buildWhere(spec *query.Spec) (string, []any) {
	clauses := []string{"1=1"}
	args := make([]any, 0, len(spec.Equality)+len(spec.Substring)+1)

	for _, column := range sortedKeysAny(spec.Equality) {
		args = append(args, spec.Equality[column])
		clauses = append(clauses, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	for _, column := range sortedKeys(spec.Substring) {
		args = append(args, "%"+strings.ToLower(spec.Substring[column])+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE $%d", column, len(args)))
	}

	if spec.SearchTerm != "" && len(spec.SearchColumns) > 0 {
		args = append(args, "%"+strings.ToLower(spec.SearchTerm)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		parts := make([]string, 0, len(spec.SearchColumns))
		for _, column := range spec.SearchColumns {
			parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE %s", column, placeholder))
		}
		clauses = append(clauses, "("+strings.Join(parts, " OR ")+")")
	}

	return strings.Join(clauses, " AND "), args
}

// orderAndPage renders the ORDER BY / LIMIT / OFFSET tail. Ties are broken
// by id ascending so pagination stays deterministic across pages.
func orderAndPage(spec *query.Spec) string {
	return fmt.Sprintf(" ORDER BY %s %s, id ASC LIMIT %d OFFSET %d",
		spec.SortColumn, spec.SortDir, spec.PageSize, spec.Offset())
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeysAny(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
