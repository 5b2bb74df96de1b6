package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() Schema {
	return Schema{
		Fields: map[string]Field{
			"status":        {Column: "status", Kind: MatchExact},
			"candidateName": {Column: "candidate_name", Kind: MatchSubstring},
		},
		SearchColumns:     []string{"resume_name", "candidate_name"},
		Sortable:          map[string]string{"uploadTime": "upload_time", "aiScore": "ai_score"},
		DefaultSortColumn: "upload_time",
		OwnerColumn:       "user_id",
	}
}

func TestBuildDefaults(t *testing.T) {
	spec, err := Build(testSchema(), Input{})
	require.NoError(t, err)

	assert.Equal(t, 1, spec.Page)
	assert.Equal(t, 10, spec.PageSize)
	assert.Equal(t, "upload_time", spec.SortColumn)
	assert.Equal(t, Desc, spec.SortDir)
	assert.False(t, spec.HasFilters())
}

func TestBuildTrimsAndOmitsEmptyValues(t *testing.T) {
	spec, err := Build(testSchema(), Input{
		Search: "   ",
		Filters: map[string]string{
			"status":        "  pending ",
			"candidateName": "   ",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"status": "pending"}, spec.Equality)
	assert.Empty(t, spec.Substring)
	assert.Empty(t, spec.SearchTerm)
	assert.Empty(t, spec.SearchColumns)
}

func TestBuildSubstringField(t *testing.T) {
	spec, err := Build(testSchema(), Input{
		Filters: map[string]string{"candidateName": "Zhang"},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"candidate_name": "Zhang"}, spec.Substring)
	assert.True(t, spec.HasFilters())
}

func TestBuildRejectsUnknownFilterField(t *testing.T) {
	_, err := Build(testSchema(), Input{
		Filters: map[string]string{"passwordHash": "x"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown filter field")
}

func TestBuildRejectsUnknownSortField(t *testing.T) {
	_, err := Build(testSchema(), Input{SortBy: "password_hash"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sort field")
}

func TestBuildRejectsUnknownSortDirection(t *testing.T) {
	_, err := Build(testSchema(), Input{SortOrder: "sideways"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sort direction")
}

func TestBuildSortMapping(t *testing.T) {
	spec, err := Build(testSchema(), Input{SortBy: " aiScore ", SortOrder: "asc"})
	require.NoError(t, err)

	assert.Equal(t, "ai_score", spec.SortColumn)
	assert.Equal(t, Asc, spec.SortDir)
}

func TestBuildSearchActivatesColumns(t *testing.T) {
	spec, err := Build(testSchema(), Input{Search: " golang "})
	require.NoError(t, err)

	assert.Equal(t, "golang", spec.SearchTerm)
	assert.Equal(t, []string{"resume_name", "candidate_name"}, spec.SearchColumns)
}

func TestScopeToOwner(t *testing.T) {
	spec, err := Build(testSchema(), Input{})
	require.NoError(t, err)

	spec.ScopeToOwner("user_id", 42)
	assert.Equal(t, int64(42), spec.Equality["user_id"])
}

func TestPagination(t *testing.T) {
	spec, err := Build(testSchema(), Input{Page: 2, PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, 10, spec.Offset())
	assert.Equal(t, 3, spec.TotalPages(25))
	assert.Equal(t, 0, spec.TotalPages(0))
	assert.Equal(t, 1, spec.TotalPages(1))
}

func TestPaginationClampsInvalidValues(t *testing.T) {
	spec, err := Build(testSchema(), Input{Page: -3, PageSize: 0})
	require.NoError(t, err)

	assert.Equal(t, 1, spec.Page)
	assert.Equal(t, 10, spec.PageSize)
	assert.Equal(t, 0, spec.Offset())
}
