// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package product

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkotelnikov/stockroom/internal/platform/dberr"
	"github.com/mkotelnikov/stockroom/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, product *Product) error {
	const query = `
		INSERT INTO core.product (id, name, description, categoryid, quantity, price, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		product.ID,
		product.Name,
		product.Description,
		product.CategoryID,
		product.Quantity,
		product.Price,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Product")
	}

	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Product, error) {
	const query = `
		SELECT id, name, description, categoryid, quantity, price, createdat, updatedat
		FROM core.product
		WHERE id = $1`

	product := &Product{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.CategoryID,
		&product.Quantity,
		&product.Price,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Product")
	}

	return product, nil
}

func (repository *PostgresRepository) List(context context.Context, params pagination.Params) ([]*Product, int, error) {
	const countQuery = "SELECT COUNT(*) FROM core.product"

	var total int
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("product_repo_count_failed: %w", err)
	}

	const query = `
		SELECT id, name, description, categoryid, quantity, price, createdat, updatedat
		FROM core.product
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.db.Query(context, query, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("product_repo_list_failed: %w", err)
	}
	defer rows.Close()

	products := make([]*Product, 0)
	for rows.Next() {
		product := &Product{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.CategoryID,
			&product.Quantity,
			&product.Price,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("product_repo_list_scan_failed: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("product_repo_list_rows_failed: %w", err)
	}

	return products, total, nil
}

func (repository *PostgresRepository) Update(context context.Context, product *Product) error {
	const query = `
		UPDATE core.product
		SET name = $2, description = $3, categoryid = $4, quantity = $5, price = $6, updatedat = $7
		WHERE id = $1`

	product.UpdatedAt = time.Now()
	tag, err := repository.db.Exec(context, query,
		product.ID,
		product.Name,
		product.Description,
		product.CategoryID,
		product.Quantity,
		product.Price,
		product.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Product")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Product")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM core.product WHERE id = $1"

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Product")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Product")
	}

	return nil
}
