// Package store is the persistence boundary of the directory. The
// reconciler only ever sees this interface, so a failing or recording
// stub can stand in for Postgres in tests, and every remote failure is
// an explicit error return the caller decides how to absorb.
package store

import (
	"context"

	"quicksupply/internal/model"
)

// Store is the record CRUD surface the directory core depends on.
type Store interface {
	// FetchAll returns every supplier with its nested products.
	FetchAll(ctx context.Context) ([]model.Supplier, error)

	// InsertSupplier persists a new supplier and returns it with the
	// durable identifier assigned by the database.
	InsertSupplier(ctx context.Context, s model.Supplier) (model.Supplier, error)

	// UpdateSupplier replaces the supplier fields of an existing row.
	UpdateSupplier(ctx context.Context, s model.Supplier) error

	// DeleteProductsBySupplier removes all products owned by a supplier.
	DeleteProductsBySupplier(ctx context.Context, supplierID string) error

	// InsertProducts persists a batch of products.
	InsertProducts(ctx context.Context, products []model.Product) error
}

// OrderStore is the read-only order surface used by the buyer profile.
type OrderStore interface {
	OrdersByBuyer(ctx context.Context, buyerID string) ([]model.Order, error)
}
