// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package product

import (
	"context"
	"log/slog"

	"github.com/mkotelnikov/stockroom/internal/platform/apperr"
	"github.com/mkotelnikov/stockroom/pkg/pagination"
	"github.com/mkotelnikov/stockroom/pkg/uuid"
)

// Service implements product use cases over the repository.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateInput carries the fields accepted when creating a product.
type CreateInput struct {
	Name        string
	Description *string
	CategoryID  *string
	Quantity    int
	Price       float64
}

// Create persists a new product. Category access has already been evaluated
// by the creation guard; existence of the reference is part of that check.
func (service *Service) Create(context context.Context, input CreateInput) (*Product, error) {
	product := &Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  normalizeCategoryID(input.CategoryID),
		Quantity:    input.Quantity,
		Price:       input.Price,
	}

	if err := service.repo.Create(context, product); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "product_created",
		slog.String("product_id", product.ID),
		slog.String("name", product.Name),
	)

	return product, nil
}

func (service *Service) Get(context context.Context, id string) (*Product, error) {
	return service.repo.FindByID(context, id)
}

// List returns one page of products plus the total count.
func (service *Service) List(context context.Context, params pagination.Params) ([]*Product, pagination.Meta, error) {
	products, total, err := service.repo.List(context, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return products, pagination.NewMeta(params, total), nil
}

// UpdateInput is the typed field table for partial product updates. Each entry
// is a pointer: nil means "leave as is". JSON fields outside this table are
// ignored by decoding, never rejected.
type UpdateInput struct {
	Name        *string
	Description *string
	CategoryID  *string
	Quantity    *int
	Price       *float64
}

// Update applies a partial update driven by the field table. An input that
// changes nothing is rejected rather than silently writing an identical row.
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Product, error) {
	product, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	// Each applier mutates one field and reports its own validity.
	appliers := []struct {
		submitted bool
		apply     func() *apperr.AppError
	}{
		{input.Name != nil, func() *apperr.AppError {
			if *input.Name == "" {
				return apperr.ValidationError("name must not be empty")
			}
			product.Name = *input.Name
			return nil
		}},
		{input.Description != nil, func() *apperr.AppError {
			product.Description = input.Description
			return nil
		}},
		{input.CategoryID != nil, func() *apperr.AppError {
			product.CategoryID = normalizeCategoryID(input.CategoryID)
			return nil
		}},
		{input.Quantity != nil, func() *apperr.AppError {
			if *input.Quantity < 0 {
				return apperr.ValidationError("quantity must not be negative")
			}
			product.Quantity = *input.Quantity
			return nil
		}},
		{input.Price != nil, func() *apperr.AppError {
			if *input.Price < 0 {
				return apperr.ValidationError("price must not be negative")
			}
			product.Price = *input.Price
			return nil
		}},
	}

	applied := 0
	for _, entry := range appliers {
		if !entry.submitted {
			continue
		}
		if err := entry.apply(); err != nil {
			return nil, err
		}
		applied++
	}

	if applied == 0 {
		return nil, apperr.ValidationError("No updatable fields were provided")
	}

	if err := service.repo.Update(context, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (service *Service) Delete(context context.Context, id string) error {
	return service.repo.Delete(context, id)
}

// normalizeCategoryID collapses an empty reference to nil so "no category"
// has exactly one stored representation.
func normalizeCategoryID(categoryID *string) *string {
	if categoryID == nil || *categoryID == "" {
		return nil
	}
	return categoryID
}
