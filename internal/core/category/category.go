// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

/*
Package category defines the category aggregate of the Stockroom catalogue.

A category groups products and carries the allow-list of user groups that may
access it. The allow-list always contains "admin" — normalization on every
create and update enforces this, so a category can never lock administrators
out.
*/
package category

import (
	"time"

	"github.com/mkotelnikov/stockroom/internal/platform/sec"
)

// Category groups products and drives access control via its allow-list.
type Category struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	AllowedGroups []string  `json:"allowedGroups"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Field names used in validation messages.
const (
	FieldName          = "name"
	FieldAllowedGroups = "allowedGroups"
)

// NormalizeAllowedGroups returns the canonical allow-list: duplicates removed,
// order preserved, admin always present. A nil or empty input collapses to the
// default-deny list ["admin"].
func NormalizeAllowedGroups(groups []string) []string {
	if len(groups) == 0 {
		return []string{string(sec.GroupAdmin)}
	}

	seen := make(map[string]struct{}, len(groups)+1)
	normalized := make([]string, 0, len(groups)+1)

	for _, group := range groups {
		if _, duplicate := seen[group]; duplicate {
			continue
		}
		seen[group] = struct{}{}
		normalized = append(normalized, group)
	}

	if _, hasAdmin := seen[string(sec.GroupAdmin)]; !hasAdmin {
		normalized = append(normalized, string(sec.GroupAdmin))
	}

	return normalized
}

// ValidAllowedGroups reports whether every entry is a known group label.
func ValidAllowedGroups(groups []string) bool {
	for _, group := range groups {
		if !sec.UserGroup(group).IsValid() {
			return false
		}
	}
	return true
}
