// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package product

import (
	"context"

	"github.com/mkotelnikov/stockroom/pkg/pagination"
)

// Repository defines the data access contract for products.
type Repository interface {
	Create(context context.Context, product *Product) error
	FindByID(context context.Context, id string) (*Product, error)
	List(context context.Context, params pagination.Params) ([]*Product, int, error)
	Update(context context.Context, product *Product) error
	Delete(context context.Context, id string) error
}
