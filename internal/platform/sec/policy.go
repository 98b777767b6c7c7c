// Copyright (c) 2026 Kritika. All rights reserved.

package sec

// # Authorization Policy
//
// One explicit predicate per resource family keeps the allow/deny matrix
// auditable in a single place instead of scattering role checks across
// handlers. All predicates are pure functions over (claims, target) and
// tolerate nil claims (anonymous requests).

// IsAdminEquivalent reports whether the actor carries admin-level authority.
//
// Two independent signals grant it: the `admin` role, or the staff escalation
// flag. Either one is sufficient.
func IsAdminEquivalent(claims *AuthClaims) bool {
	if claims == nil {
		return false
	}
	return UserRole(claims.Role) == RoleAdmin || claims.Staff
}

// CanWriteCatalog decides create/update/delete access on Category, Genre
// and Title. Reads are open to everyone, so only writes consult this.
func CanWriteCatalog(claims *AuthClaims) bool {
	return IsAdminEquivalent(claims)
}

// CanModifyContribution decides update/delete access on a specific Review or
// Comment instance owned by authorID.
//
// Allowed when the actor is the author, a moderator, or admin-equivalent.
// Creation is not covered here: it only requires authentication.
func CanModifyContribution(claims *AuthClaims, authorID string) bool {
	if claims == nil {
		return false
	}
	if claims.UserID == authorID {
		return true
	}
	return UserRole(claims.Role) == RoleModerator || IsAdminEquivalent(claims)
}

// CanManageUsers decides access to the admin user CRUD surface
// (everything under /users except the /users/me self-service path).
func CanManageUsers(claims *AuthClaims) bool {
	return IsAdminEquivalent(claims)
}

// CanAssignRole decides whether the actor may change an account's role,
// including their own. Non-admin self-edits silently keep the stored role.
func CanAssignRole(claims *AuthClaims) bool {
	return IsAdminEquivalent(claims)
}
