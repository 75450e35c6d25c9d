// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresResourceStore implements [ResourceStore] with read-only lookups
// against the core schema.
type PostgresResourceStore struct {
	pool *pgxpool.Pool
}

// NewResourceStore creates a new PostgreSQL-backed [ResourceStore].
func NewResourceStore(pool *pgxpool.Pool) *PostgresResourceStore {
	return &PostgresResourceStore{pool: pool}
}

/*
FindCategory looks up a category's allow-list projection.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Category: nil when the category does not exist
  - error: Execution errors only
*/
func (store *PostgresResourceStore) FindCategory(context context.Context, id string) (*Category, error) {
	const query = "SELECT id, allowedgroups FROM core.category WHERE id = $1"

	category := &Category{}
	err := store.pool.QueryRow(context, query, id).Scan(&category.ID, &category.AllowedGroups)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("access_store_find_category_failed: %w", err)
	}

	return category, nil
}

/*
FindProduct looks up a product's category-reference projection.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Product: nil when the product does not exist
  - error: Execution errors only
*/
func (store *PostgresResourceStore) FindProduct(context context.Context, id string) (*Product, error) {
	const query = "SELECT id, categoryid FROM core.product WHERE id = $1"

	product := &Product{}
	err := store.pool.QueryRow(context, query, id).Scan(&product.ID, &product.CategoryID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("access_store_find_product_failed: %w", err)
	}

	return product, nil
}
