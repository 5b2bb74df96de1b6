package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/resume-server/internal/domain"
	"github.com/spec-kit/resume-server/internal/query"
)

func userPrincipal(id int64) *Principal {
	return &Principal{User: &domain.User{ID: id, Role: domain.RoleUser, IsActive: true}}
}

func adminPrincipal(id int64) *Principal {
	return &Principal{User: &domain.User{ID: id, Role: domain.RoleAdmin, IsActive: true}}
}

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name    string
		caller  *Principal
		ownerID int64
		want    bool
	}{
		{"owner reads own record", userPrincipal(7), 7, true},
		{"user denied on another's record", userPrincipal(7), 9, false},
		{"admin reads anyone's record", adminPrincipal(1), 9, true},
		{"nil principal denied", nil, 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccess(tt.caller, tt.ownerID))
		})
	}
}

func TestScopeVisibilityRestrictsRegularUsers(t *testing.T) {
	spec, err := query.Build(query.Schema{DefaultSortColumn: "created_at"}, query.Input{})
	require.NoError(t, err)

	ScopeVisibility(userPrincipal(7), spec, "user_id")
	assert.Equal(t, int64(7), spec.Equality["user_id"])
}

func TestScopeVisibilitySkipsAdmins(t *testing.T) {
	spec, err := query.Build(query.Schema{DefaultSortColumn: "created_at"}, query.Input{})
	require.NoError(t, err)

	ScopeVisibility(adminPrincipal(1), spec, "user_id")
	assert.NotContains(t, spec.Equality, "user_id")
}
