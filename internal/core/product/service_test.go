// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package product_test

import (
	"context"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkotelnikov/stockroom/internal/core/product"
	"github.com/mkotelnikov/stockroom/internal/platform/apperr"
	"github.com/mkotelnikov/stockroom/pkg/pagination"
)

type fakeRepository struct {
	products map[string]*product.Product
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{products: make(map[string]*product.Product)}
}

func (repo *fakeRepository) Create(_ context.Context, p *product.Product) error {
	clone := *p
	repo.products[p.ID] = &clone
	return nil
}

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*product.Product, error) {
	p, found := repo.products[id]
	if !found {
		return nil, apperr.NotFound("Product")
	}
	clone := *p
	return &clone, nil
}

func (repo *fakeRepository) List(_ context.Context, params pagination.Params) ([]*product.Product, int, error) {
	ids := make([]string, 0, len(repo.products))
	for id := range repo.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	page := make([]*product.Product, 0)
	for index, id := range ids {
		if index < params.Offset || len(page) >= params.Limit {
			continue
		}
		clone := *repo.products[id]
		page = append(page, &clone)
	}
	return page, len(ids), nil
}

func (repo *fakeRepository) Update(_ context.Context, p *product.Product) error {
	if _, found := repo.products[p.ID]; !found {
		return apperr.NotFound("Product")
	}
	clone := *p
	repo.products[p.ID] = &clone
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id string) error {
	if _, found := repo.products[id]; !found {
		return apperr.NotFound("Product")
	}
	delete(repo.products, id)
	return nil
}

func newTestService() (*product.Service, *fakeRepository) {
	repo := newFakeRepository()
	return product.NewService(repo, slog.Default()), repo
}

func strPtr(value string) *string { return &value }

func intPtr(value int) *int { return &value }

func floatPtr(value float64) *float64 { return &value }

func TestService_Create(t *testing.T) {
	t.Run("persists the product and assigns an id", func(t *testing.T) {
		service, repo := newTestService()

		created, err := service.Create(context.Background(), product.CreateInput{
			Name:       "Pallet jack",
			CategoryID: strPtr("c-equipment"),
			Quantity:   4,
			Price:      329.99,
		})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)

		stored, found := repo.products[created.ID]
		require.True(t, found)
		assert.Equal(t, "Pallet jack", stored.Name)
		require.NotNil(t, stored.CategoryID)
		assert.Equal(t, "c-equipment", *stored.CategoryID)
	})

	t.Run("empty category reference is stored as none", func(t *testing.T) {
		service, repo := newTestService()

		created, err := service.Create(context.Background(), product.CreateInput{
			Name:       "Loose bolt",
			CategoryID: strPtr(""),
		})
		require.NoError(t, err)
		assert.Nil(t, repo.products[created.ID].CategoryID)
	})
}

func TestService_Update(t *testing.T) {
	seed := func(t *testing.T) (*product.Service, *fakeRepository, string) {
		t.Helper()
		service, repo := newTestService()
		created, err := service.Create(context.Background(), product.CreateInput{
			Name:        "Forklift",
			Description: strPtr("Electric, 2 ton"),
			CategoryID:  strPtr("c-equipment"),
			Quantity:    2,
			Price:       18500,
		})
		require.NoError(t, err)
		return service, repo, created.ID
	}

	t.Run("changes only the submitted fields", func(t *testing.T) {
		service, _, id := seed(t)

		updated, err := service.Update(context.Background(), id, product.UpdateInput{
			Quantity: intPtr(3),
			Price:    floatPtr(17900),
		})
		require.NoError(t, err)

		assert.Equal(t, 3, updated.Quantity)
		assert.Equal(t, 17900.0, updated.Price)
		assert.Equal(t, "Forklift", updated.Name)
		require.NotNil(t, updated.CategoryID)
		assert.Equal(t, "c-equipment", *updated.CategoryID)
	})

	t.Run("clears the category reference via an empty value", func(t *testing.T) {
		service, repo, id := seed(t)

		_, err := service.Update(context.Background(), id, product.UpdateInput{
			CategoryID: strPtr(""),
		})
		require.NoError(t, err)
		assert.Nil(t, repo.products[id].CategoryID)
	})

	t.Run("rejects an update with no fields", func(t *testing.T) {
		service, _, id := seed(t)

		_, err := service.Update(context.Background(), id, product.UpdateInput{})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})

	t.Run("rejects an empty name without touching the row", func(t *testing.T) {
		service, repo, id := seed(t)

		_, err := service.Update(context.Background(), id, product.UpdateInput{
			Name:     strPtr(""),
			Quantity: intPtr(99),
		})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
		assert.Equal(t, 2, repo.products[id].Quantity)
	})

	t.Run("rejects negative quantity and price", func(t *testing.T) {
		service, _, id := seed(t)

		_, err := service.Update(context.Background(), id, product.UpdateInput{Quantity: intPtr(-1)})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))

		_, err = service.Update(context.Background(), id, product.UpdateInput{Price: floatPtr(-0.01)})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})

	t.Run("missing product yields not found", func(t *testing.T) {
		service, _, _ := seed(t)

		_, err := service.Update(context.Background(), "missing", product.UpdateInput{
			Quantity: intPtr(1),
		})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})
}

func TestService_List(t *testing.T) {
	service, _ := newTestService()

	for index := 0; index < 5; index++ {
		_, err := service.Create(context.Background(), product.CreateInput{
			Name: "Crate",
		})
		require.NoError(t, err)
	}

	products, meta, err := service.List(context.Background(), pagination.Params{Limit: 2, Offset: 4})
	require.NoError(t, err)

	assert.Len(t, products, 1)
	assert.Equal(t, 5, meta.Total)
	assert.Equal(t, 2, meta.Limit)
	assert.Equal(t, 4, meta.Offset)
}

func TestService_Delete(t *testing.T) {
	service, _ := newTestService()

	created, err := service.Create(context.Background(), product.CreateInput{Name: "Drum"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))

	_, err = service.Get(context.Background(), created.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}
