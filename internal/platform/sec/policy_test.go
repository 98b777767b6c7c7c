// Copyright (c) 2026 Kritika. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kritika-app/kritika/internal/platform/sec"
)

func claims(userID, role string, staff bool) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: userID, Role: role, Staff: staff}
}

/*
TestPolicy_IsAdminEquivalent verifies the two independent admin signals:
the role enum and the staff escalation flag, combined with OR semantics.
*/
func TestPolicy_IsAdminEquivalent(t *testing.T) {
	tests := []struct {
		name    string
		actor   *sec.AuthClaims
		isAdmin bool
	}{
		{"anonymous", nil, false},
		{"plain_user", claims("u1", "user", false), false},
		{"moderator", claims("u1", "moderator", false), false},
		{"admin_role", claims("u1", "admin", false), true},
		{"staff_flag_only", claims("u1", "user", true), true},
		{"staff_moderator", claims("u1", "moderator", true), true},
		{"admin_and_staff", claims("u1", "admin", true), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isAdmin, sec.IsAdminEquivalent(tt.actor))
			assert.Equal(t, tt.isAdmin, sec.CanWriteCatalog(tt.actor))
			assert.Equal(t, tt.isAdmin, sec.CanManageUsers(tt.actor))
		})
	}
}

/*
TestPolicy_CanModifyContribution covers the full mutate matrix for reviews
and comments: author match, moderator role, admin role, and the staff flag.
*/
func TestPolicy_CanModifyContribution(t *testing.T) {
	const ownerID = "owner-1"

	tests := []struct {
		name    string
		actor   *sec.AuthClaims
		allowed bool
	}{
		{"anonymous", nil, false},
		{"author", claims(ownerID, "user", false), true},
		{"other_user", claims("stranger", "user", false), false},
		{"moderator", claims("stranger", "moderator", false), true},
		{"admin", claims("stranger", "admin", false), true},
		{"staff_user", claims("stranger", "user", true), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, sec.CanModifyContribution(tt.actor, ownerID))
		})
	}
}

/*
TestRole_Valid checks that only the three enum values are accepted.
*/
func TestRole_Valid(t *testing.T) {
	assert.True(t, sec.UserRole("user").Valid())
	assert.True(t, sec.UserRole("moderator").Valid())
	assert.True(t, sec.UserRole("admin").Valid())
	assert.False(t, sec.UserRole("superuser").Valid())
	assert.False(t, sec.UserRole("").Valid())
}
