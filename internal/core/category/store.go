// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package category

import "context"

// Repository defines the data access contract for categories.
type Repository interface {
	Create(context context.Context, category *Category) error
	FindByID(context context.Context, id string) (*Category, error)
	List(context context.Context) ([]*Category, error)
	Update(context context.Context, category *Category) error
	Delete(context context.Context, id string) error
}
