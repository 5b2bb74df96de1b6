package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/resume-server/internal/query"
)

func TestBuildWhereEmptySpec(t *testing.T) {
	spec, err := query.Build(query.Schema{DefaultSortColumn: "created_at"}, query.Input{})
	require.NoError(t, err)

	where, args := buildWhere(spec)
	assert.Equal(t, "1=1", where)
	assert.Empty(t, args)
}

func TestBuildWhereCombinesConditions(t *testing.T) {
	spec, err := query.Build(ResumeFilterSchema, query.Input{
		Search: "Go",
		Filters: map[string]string{
			"status":        "pending",
			"candidateName": "Zhang",
		},
	})
	require.NoError(t, err)
	spec.ScopeToOwner("user_id", 7)

	where, args := buildWhere(spec)

	assert.Equal(t,
		"1=1 AND status=$1 AND user_id=$2 AND LOWER(candidate_name) LIKE $3"+
			" AND (LOWER(resume_name) LIKE $4 OR LOWER(candidate_name) LIKE $4 OR LOWER(email) LIKE $4 OR LOWER(phone) LIKE $4)",
		where)
	assert.Equal(t, []any{"pending", int64(7), "%zhang%", "%go%"}, args)
}

func TestBuildWhereIsDeterministic(t *testing.T) {
	spec, err := query.Build(PositionFilterSchema, query.Input{
		Filters: map[string]string{
			"workType":   "full-time",
			"department": "R&D",
			"status":     "published",
		},
	})
	require.NoError(t, err)

	first, firstArgs := buildWhere(spec)
	for i := 0; i < 20; i++ {
		where, args := buildWhere(spec)
		assert.Equal(t, first, where)
		assert.Equal(t, firstArgs, args)
	}
}

func TestOrderAndPage(t *testing.T) {
	spec, err := query.Build(ResumeFilterSchema, query.Input{Page: 3, PageSize: 25, SortOrder: "asc"})
	require.NoError(t, err)

	assert.Equal(t, " ORDER BY upload_time ASC, id ASC LIMIT 25 OFFSET 50", orderAndPage(spec))
}

func TestOrderAndPageDefaults(t *testing.T) {
	spec, err := query.Build(PositionFilterSchema, query.Input{})
	require.NoError(t, err)

	assert.Equal(t, " ORDER BY created_at DESC, id ASC LIMIT 10 OFFSET 0", orderAndPage(spec))
}
