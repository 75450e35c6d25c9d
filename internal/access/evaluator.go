// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package access

import (
	"context"

	"github.com/mkotelnikov/stockroom/internal/platform/apperr"
	"github.com/mkotelnikov/stockroom/internal/platform/sec"
)

// Evaluator decides whether an actor may touch a category or product.
//
// # Fail-Closed Policy
//
// Every path that cannot prove access denies it. A store failure surfaces as
// an internal error, never as an allow. A product referencing a category that
// no longer exists is Forbidden, not NotFound: absence of the allow-list means
// access cannot be proven.
type Evaluator struct {
	store ResourceStore
}

// NewEvaluator constructs an [Evaluator] over the given resource store.
func NewEvaluator(store ResourceStore) *Evaluator {
	return &Evaluator{store: store}
}

/*
CategoryAccess decides whether the actor may touch the category.

Description: Admins bypass the allow-list; everyone else must carry a group
present in the category's allowedGroups.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims (nil for anonymous requests)
  - categoryID: string

Returns:
  - error: nil on allow; Unauthorized, Forbidden, NotFound or Internal on deny
*/
func (evaluator *Evaluator) CategoryAccess(context context.Context, actor *sec.AuthClaims, categoryID string) error {
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}

	if sec.UserGroup(actor.Group).IsAdmin() {
		return nil
	}

	category, err := evaluator.fetchCategory(context, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return apperr.NotFound("Category")
	}

	if !groupAllowed(actor.Group, category.AllowedGroups) {
		return apperr.Forbidden("Access to this category is not permitted")
	}

	return nil
}

/*
ProductAccess decides whether the actor may touch the product.

Description: Access derives transitively from the product's category. A
product with no category reference is open to any authenticated actor. A
product whose referenced category is missing is denied: the allow-list that
would prove access does not exist.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims (nil for anonymous requests)
  - productID: string

Returns:
  - error: nil on allow; Unauthorized, Forbidden, NotFound or Internal on deny
*/
func (evaluator *Evaluator) ProductAccess(context context.Context, actor *sec.AuthClaims, productID string) error {
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}

	if sec.UserGroup(actor.Group).IsAdmin() {
		return nil
	}

	product, err := evaluator.fetchProduct(context, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return apperr.NotFound("Product")
	}

	// Uncategorized products are open to every authenticated actor.
	if product.CategoryID == nil || *product.CategoryID == "" {
		return nil
	}

	category, err := evaluator.fetchCategory(context, *product.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		// The reference is dangling. Forbidden, not NotFound: the product
		// exists, but access through its category cannot be proven.
		return apperr.Forbidden("Access to this product is not permitted")
	}

	if !groupAllowed(actor.Group, category.AllowedGroups) {
		return apperr.Forbidden("Access to this product is not permitted")
	}

	return nil
}

/*
ProductCreation decides whether the actor may create a product.

Description: A new product has no id yet, so the check runs on the category
reference from the request body. Creating an uncategorized product is an
admin-only operation.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims (nil for anonymous requests)
  - categoryID: *string (nil or empty when no category was submitted)

Returns:
  - error: nil on allow; Unauthorized, Forbidden, NotFound or Internal on deny
*/
func (evaluator *Evaluator) ProductCreation(context context.Context, actor *sec.AuthClaims, categoryID *string) error {
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}

	isAdmin := sec.UserGroup(actor.Group).IsAdmin()

	// No category submitted: only admins may create floating products,
	// because an uncategorized product is readable by everyone.
	if categoryID == nil || *categoryID == "" {
		if !isAdmin {
			return apperr.Forbidden("Creating a product without a category requires admin access")
		}
		return nil
	}

	category, err := evaluator.fetchCategory(context, *categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return apperr.NotFound("Category")
	}

	if isAdmin {
		return nil
	}

	if !groupAllowed(actor.Group, category.AllowedGroups) {
		return apperr.Forbidden("Access to this category is not permitted")
	}

	return nil
}

// fetchCategory reads a category fail-closed: store errors become Internal.
func (evaluator *Evaluator) fetchCategory(ctx context.Context, id string) (*Category, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	category, err := evaluator.store.FindCategory(lookupCtx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return category, nil
}

// fetchProduct reads a product fail-closed: store errors become Internal.
func (evaluator *Evaluator) fetchProduct(ctx context.Context, id string) (*Product, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	product, err := evaluator.store.FindProduct(lookupCtx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return product, nil
}

// groupAllowed reports whether the actor's group appears in the allow-list.
func groupAllowed(group string, allowedGroups []string) bool {
	for _, allowed := range allowedGroups {
		if allowed == group {
			return true
		}
	}
	return false
}
