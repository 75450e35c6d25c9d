// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package access_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkotelnikov/stockroom/internal/access"
	"github.com/mkotelnikov/stockroom/internal/platform/apperr"
	"github.com/mkotelnikov/stockroom/internal/platform/sec"
)

// fakeResourceStore serves categories and products from maps, optionally
// failing every lookup.
type fakeResourceStore struct {
	categories map[string]*access.Category
	products   map[string]*access.Product
	failWith   error
}

func (store *fakeResourceStore) FindCategory(_ context.Context, id string) (*access.Category, error) {
	if store.failWith != nil {
		return nil, store.failWith
	}
	return store.categories[id], nil
}

func (store *fakeResourceStore) FindProduct(_ context.Context, id string) (*access.Product, error) {
	if store.failWith != nil {
		return nil, store.failWith
	}
	return store.products[id], nil
}

func actorIn(group string) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: "actor-" + group, Group: group}
}

func strPtr(value string) *string { return &value }

// newMatrixStore builds the fixture used across the table tests:
//
//	c-users    allow-list [user admin]
//	c-admins   allow-list [admin]
//	p-in-users     -> c-users
//	p-in-admins    -> c-admins
//	p-floating     -> no category
//	p-dangling     -> category that no longer exists
func newMatrixStore() *fakeResourceStore {
	return &fakeResourceStore{
		categories: map[string]*access.Category{
			"c-users":  {ID: "c-users", AllowedGroups: []string{"user", "admin"}},
			"c-admins": {ID: "c-admins", AllowedGroups: []string{"admin"}},
		},
		products: map[string]*access.Product{
			"p-in-users":  {ID: "p-in-users", CategoryID: strPtr("c-users")},
			"p-in-admins": {ID: "p-in-admins", CategoryID: strPtr("c-admins")},
			"p-floating":  {ID: "p-floating"},
			"p-dangling":  {ID: "p-dangling", CategoryID: strPtr("c-gone")},
		},
	}
}

func TestEvaluator_CategoryAccess(t *testing.T) {
	evaluator := access.NewEvaluator(newMatrixStore())

	testCases := []struct {
		name         string
		actor        *sec.AuthClaims
		categoryID   string
		expectedCode string
	}{
		{name: "anonymous is unauthorized", actor: nil, categoryID: "c-users", expectedCode: apperr.CodeUnauthorized},
		{name: "admin bypasses the allow-list", actor: actorIn("admin"), categoryID: "c-admins", expectedCode: ""},
		{name: "admin bypass skips existence check", actor: actorIn("admin"), categoryID: "c-gone", expectedCode: ""},
		{name: "listed group is allowed", actor: actorIn("user"), categoryID: "c-users", expectedCode: ""},
		{name: "unlisted group is forbidden", actor: actorIn("user"), categoryID: "c-admins", expectedCode: apperr.CodeForbidden},
		{name: "guest is forbidden on user category", actor: actorIn("guest"), categoryID: "c-users", expectedCode: apperr.CodeForbidden},
		{name: "missing category is not found", actor: actorIn("user"), categoryID: "c-gone", expectedCode: apperr.CodeNotFound},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			err := evaluator.CategoryAccess(context.Background(), testCase.actor, testCase.categoryID)

			if testCase.expectedCode == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperr.IsCode(err, testCase.expectedCode), "got %v", err)
			}
		})
	}
}

func TestEvaluator_ProductAccess(t *testing.T) {
	evaluator := access.NewEvaluator(newMatrixStore())

	testCases := []struct {
		name         string
		actor        *sec.AuthClaims
		productID    string
		expectedCode string
	}{
		{name: "anonymous is unauthorized", actor: nil, productID: "p-in-users", expectedCode: apperr.CodeUnauthorized},
		{name: "admin bypasses everything", actor: actorIn("admin"), productID: "p-in-admins", expectedCode: ""},
		{name: "transitive allow via category", actor: actorIn("user"), productID: "p-in-users", expectedCode: ""},
		{name: "transitive deny via category", actor: actorIn("user"), productID: "p-in-admins", expectedCode: apperr.CodeForbidden},
		{name: "guest denied via category", actor: actorIn("guest"), productID: "p-in-users", expectedCode: apperr.CodeForbidden},
		{name: "uncategorized product is open to guests", actor: actorIn("guest"), productID: "p-floating", expectedCode: ""},
		{name: "uncategorized product is open to users", actor: actorIn("user"), productID: "p-floating", expectedCode: ""},
		{name: "missing product is not found", actor: actorIn("user"), productID: "p-gone", expectedCode: apperr.CodeNotFound},
		{name: "dangling category reference is forbidden not notfound", actor: actorIn("user"), productID: "p-dangling", expectedCode: apperr.CodeForbidden},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			err := evaluator.ProductAccess(context.Background(), testCase.actor, testCase.productID)

			if testCase.expectedCode == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperr.IsCode(err, testCase.expectedCode), "got %v", err)
			}
		})
	}
}

func TestEvaluator_ProductCreation(t *testing.T) {
	evaluator := access.NewEvaluator(newMatrixStore())

	testCases := []struct {
		name         string
		actor        *sec.AuthClaims
		categoryID   *string
		expectedCode string
	}{
		{name: "anonymous is unauthorized", actor: nil, categoryID: nil, expectedCode: apperr.CodeUnauthorized},
		{name: "uncategorized creation requires admin", actor: actorIn("user"), categoryID: nil, expectedCode: apperr.CodeForbidden},
		{name: "admin may create uncategorized", actor: actorIn("admin"), categoryID: nil, expectedCode: ""},
		{name: "empty category id counts as uncategorized", actor: actorIn("user"), categoryID: strPtr(""), expectedCode: apperr.CodeForbidden},
		{name: "listed group may create in category", actor: actorIn("user"), categoryID: strPtr("c-users"), expectedCode: ""},
		{name: "unlisted group is forbidden", actor: actorIn("user"), categoryID: strPtr("c-admins"), expectedCode: apperr.CodeForbidden},
		{name: "missing category is not found", actor: actorIn("user"), categoryID: strPtr("c-gone"), expectedCode: apperr.CodeNotFound},
		{name: "missing category is not found even for admin", actor: actorIn("admin"), categoryID: strPtr("c-gone"), expectedCode: apperr.CodeNotFound},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			err := evaluator.ProductCreation(context.Background(), testCase.actor, testCase.categoryID)

			if testCase.expectedCode == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperr.IsCode(err, testCase.expectedCode), "got %v", err)
			}
		})
	}
}

func TestEvaluator_StoreFailureFailsClosed(t *testing.T) {
	store := newMatrixStore()
	store.failWith = errors.New("connection reset")
	evaluator := access.NewEvaluator(store)

	assert.True(t, apperr.IsCode(
		evaluator.CategoryAccess(context.Background(), actorIn("user"), "c-users"),
		apperr.CodeInternal))
	assert.True(t, apperr.IsCode(
		evaluator.ProductAccess(context.Background(), actorIn("user"), "p-in-users"),
		apperr.CodeInternal))
	assert.True(t, apperr.IsCode(
		evaluator.ProductCreation(context.Background(), actorIn("user"), strPtr("c-users")),
		apperr.CodeInternal))

	// Admin bypass precedes the store lookup, so it still allows.
	assert.NoError(t, evaluator.CategoryAccess(context.Background(), actorIn("admin"), "c-users"))
}
