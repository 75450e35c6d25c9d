// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

/*
Package product defines the product aggregate of the Stockroom catalogue.

A product optionally references a category; access control derives from that
reference and is enforced by the access evaluator, not here. An uncategorized
product is visible to every authenticated actor.
*/
package product

import "time"

// Product is a single stocked item.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CategoryID  *string   `json:"categoryId,omitempty"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Field names used in validation messages.
const (
	FieldName     = "name"
	FieldQuantity = "quantity"
	FieldPrice    = "price"
)
