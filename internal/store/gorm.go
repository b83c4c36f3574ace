package store

import (
	"context"
	"errors"
	"time"

	"quicksupply/internal/model"
	"quicksupply/prometheus"

	"gorm.io/gorm"
)

// ErrUnavailable is returned by every operation when the store was
// constructed without a live connection. The reconciler absorbs it the
// same way it absorbs a network failure.
var ErrUnavailable = errors.New("store: database unavailable")

// GormStore implements Store and OrderStore on a gorm connection. A nil
// connection is a valid degraded state: every call fails with
// ErrUnavailable.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm connection, which may be nil.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// FetchAll returns every supplier with its nested products.
func (s *GormStore) FetchAll(ctx context.Context) ([]model.Supplier, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}
	defer prometheus.TrackDBOperation("query")(time.Now())

	var suppliers []model.Supplier
	result := s.db.WithContext(ctx).Preload("Products").Find(&suppliers)
	if result.Error != nil {
		return nil, result.Error
	}
	return suppliers, nil
}

// InsertSupplier persists a new supplier row.
func (s *GormStore) InsertSupplier(ctx context.Context, supplier model.Supplier) (model.Supplier, error) {
	if s.db == nil {
		return model.Supplier{}, ErrUnavailable
	}
	defer prometheus.TrackDBOperation("insert")(time.Now())

	// Products are written separately so the parent insert decides
	// referential validity.
	supplier.Products = nil
	result := s.db.WithContext(ctx).Create(&supplier)
	if result.Error != nil {
		return model.Supplier{}, result.Error
	}
	return supplier, nil
}

// UpdateSupplier replaces the supplier fields of an existing row.
func (s *GormStore) UpdateSupplier(ctx context.Context, supplier model.Supplier) error {
	if s.db == nil {
		return ErrUnavailable
	}
	defer prometheus.TrackDBOperation("update")(time.Now())

	updates := map[string]interface{}{
		"name":                supplier.Name,
		"industry":            supplier.Industry,
		"category":            supplier.Category,
		"location":            supplier.Location,
		"description":         supplier.Description,
		"contact_email":       supplier.ContactEmail,
		"image_url":           supplier.ImageURL,
		"established_year":    supplier.EstablishedYear,
		"employee_count":      supplier.EmployeeCount,
		"factory_size":        supplier.FactorySize,
		"production_capacity": supplier.ProductionCapacity,
		"business_type":       supplier.BusinessType,
		"certifications":      supplier.Certifications,
		"export_markets":      supplier.ExportMarkets,
	}

	result := s.db.WithContext(ctx).Model(&model.Supplier{}).
		Where("id = ?", supplier.ID).
		Updates(updates)
	return result.Error
}

// DeleteProductsBySupplier removes all products owned by a supplier.
func (s *GormStore) DeleteProductsBySupplier(ctx context.Context, supplierID string) error {
	if s.db == nil {
		return ErrUnavailable
	}
	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := s.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Delete(&model.Product{})
	return result.Error
}

// InsertProducts persists a batch of products.
func (s *GormStore) InsertProducts(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}
	if s.db == nil {
		return ErrUnavailable
	}
	defer prometheus.TrackDBOperation("insert")(time.Now())

	result := s.db.WithContext(ctx).Create(&products)
	return result.Error
}

// OrdersByBuyer returns the buyer's orders newest first, with the
// supplier name preloaded for display.
func (s *GormStore) OrdersByBuyer(ctx context.Context, buyerID string) ([]model.Order, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}
	defer prometheus.TrackDBOperation("query")(time.Now())

	var orders []model.Order
	result := s.db.WithContext(ctx).
		Preload("Supplier").
		Where("buyer_id = ?", buyerID).
		Order("created_at desc").
		Find(&orders)
	if result.Error != nil {
		return nil, result.Error
	}
	return orders, nil
}
