// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package sec

// # User Groups

// UserGroup represents the authorization group granted to an account.
//
// Unlike a ranked role hierarchy, groups are flat attributes: access to a
// resource is decided by allow-list membership plus an unconditional admin
// override, never by comparing levels.
type UserGroup string

const (
	// Unrestricted system access, bypasses every allow-list check
	GroupAdmin UserGroup = "admin"

	// Default group for standard registered members
	GroupUser UserGroup = "user"

	// Restricted group for limited-trust accounts
	GroupGuest UserGroup = "guest"
)

// Groups returns the closed set of valid group names.
func Groups() []string {
	return []string{string(GroupAdmin), string(GroupUser), string(GroupGuest)}
}

// IsValid reports whether the group is one of the closed enum values.
func (g UserGroup) IsValid() bool {
	switch g {
	case GroupAdmin, GroupUser, GroupGuest:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the group carries the admin override.
func (g UserGroup) IsAdmin() bool {
	return g == GroupAdmin
}
