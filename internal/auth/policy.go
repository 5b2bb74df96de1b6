package auth

import (
	"github.com/spec-kit/resume-server/internal/query"
)

// CanAccess is the ownership gate: a caller may touch a resource iff they
// are admin or they own it. Callers load the target record first and pass
// its stored owner id; a client-supplied one is never trusted.
func CanAccess(p *Principal, ownerID int64) bool {
	if p == nil {
		return false
	}
	return p.IsAdmin() || p.ID() == ownerID
}

// ScopeVisibility restricts list results to the caller's own records unless
// the caller is admin. The scope is merged into the filter spec so it is
// applied by the query itself, not as a post-hoc check.
func ScopeVisibility(p *Principal, spec *query.Spec, ownerColumn string) {
	if p == nil || p.IsAdmin() {
		return
	}
	spec.ScopeToOwner(ownerColumn, p.ID())
}
