// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package category

import (
	"context"
	"log/slog"

	"github.com/mkotelnikov/stockroom/internal/platform/apperr"
	"github.com/mkotelnikov/stockroom/pkg/uuid"
)

// Service implements category use cases over the repository.
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

// CreateInput carries the fields accepted when creating a category.
type CreateInput struct {
	Name          string
	Description   *string
	AllowedGroups []string
}

// Create persists a new category with a normalized allow-list.
func (service *Service) Create(context context.Context, input CreateInput) (*Category, error) {
	if !ValidAllowedGroups(input.AllowedGroups) {
		return nil, apperr.ValidationError("allowedGroups contains an unknown group label")
	}

	category := &Category{
		ID:            uuid.New(),
		Name:          input.Name,
		Description:   input.Description,
		AllowedGroups: NormalizeAllowedGroups(input.AllowedGroups),
	}

	if err := service.repo.Create(context, category); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "category_created",
		slog.String("category_id", category.ID),
		slog.String("name", category.Name),
	)

	return category, nil
}

func (service *Service) Get(context context.Context, id string) (*Category, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) List(context context.Context) ([]*Category, error) {
	return service.repo.List(context)
}

// UpdateInput carries the patchable category fields. Nil means "leave as is".
type UpdateInput struct {
	Name          *string
	Description   *string
	AllowedGroups *[]string
}

// Update applies a partial update. An input that changes nothing is rejected.
// A submitted allow-list is re-normalized so admin can never be removed.
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Category, error) {
	if input.Name == nil && input.Description == nil && input.AllowedGroups == nil {
		return nil, apperr.ValidationError("No updatable fields were provided")
	}

	category, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperr.ValidationError("name must not be empty")
		}
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = input.Description
	}
	if input.AllowedGroups != nil {
		if !ValidAllowedGroups(*input.AllowedGroups) {
			return nil, apperr.ValidationError("allowedGroups contains an unknown group label")
		}
		category.AllowedGroups = NormalizeAllowedGroups(*input.AllowedGroups)
	}

	if err := service.repo.Update(context, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (service *Service) Delete(context context.Context, id string) error {
	return service.repo.Delete(context, id)
}
