// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

/*
Package access implements attribute-based access control over the resource tree.

A category carries an allow-list of user groups; a product inherits access
transitively from the category it references. Admins bypass every allow-list.

# Architecture

The evaluator only READS resources. It is wired between the authentication
middleware (which resolves the actor) and the business handlers, both as a
plain evaluator API and as chi middleware guards.
*/
package access

import (
	"context"
	"time"
)

// Category is the minimal projection the evaluator needs: the identifier and
// the group allow-list. The full entity lives in the resource domain.
type Category struct {
	ID            string
	AllowedGroups []string
}

// Product is the minimal projection the evaluator needs. CategoryID is nil
// for uncategorized products.
type Product struct {
	ID         string
	CategoryID *string
}

// ResourceStore provides the read-only resource lookups the evaluator runs on.
//
// Both finders return (nil, nil) when the resource is absent; a non-nil error
// strictly means the store itself failed.
type ResourceStore interface {
	FindCategory(context context.Context, id string) (*Category, error)
	FindProduct(context context.Context, id string) (*Product, error)
}

// lookupTimeout caps each evaluator-side store read. Access checks run on the
// hot path of every guarded request and must never hang on a slow store.
const lookupTimeout = 5 * time.Second
