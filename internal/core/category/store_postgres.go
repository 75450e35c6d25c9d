// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package category

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkotelnikov/stockroom/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	const query = `
		INSERT INTO core.category (id, name, description, allowedgroups, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		category.ID,
		category.Name,
		category.Description,
		category.AllowedGroups,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Category")
	}

	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Category, error) {
	const query = `
		SELECT id, name, description, allowedgroups, createdat, updatedat
		FROM core.category
		WHERE id = $1`

	category := &Category{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.AllowedGroups,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Category")
	}

	return category, nil
}

func (repository *PostgresRepository) List(context context.Context) ([]*Category, error) {
	const query = `
		SELECT id, name, description, allowedgroups, createdat, updatedat
		FROM core.category
		ORDER BY name`

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("category_repo_list_failed: %w", err)
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		category := &Category{}
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Description,
			&category.AllowedGroups,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("category_repo_list_scan_failed: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("category_repo_list_rows_failed: %w", err)
	}

	return categories, nil
}

func (repository *PostgresRepository) Update(context context.Context, category *Category) error {
	const query = `
		UPDATE core.category
		SET name = $2, description = $3, allowedgroups = $4, updatedat = $5
		WHERE id = $1`

	category.UpdatedAt = time.Now()
	tag, err := repository.db.Exec(context, query,
		category.ID,
		category.Name,
		category.Description,
		category.AllowedGroups,
		category.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Category")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Category")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM core.category WHERE id = $1"

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Category")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Category")
	}

	return nil
}
