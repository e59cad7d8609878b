package repository

import (
	"context"
	"errors"

	"inventory/internal/domain/entity"
)

// ErrProductNotFound is returned when no product matches the requested ID.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines persistence operations for catalog products.
// Each call is a single atomic store operation.
type ProductRepository interface {
	// Create persists a new product and fills in the generated ID and timestamps.
	Create(ctx context.Context, product *entity.Product) error

	// FindAll returns every product ordered by ID.
	FindAll(ctx context.Context) ([]*entity.Product, error)

	// FindByID retrieves a single product.
	FindByID(ctx context.Context, id int64) (*entity.Product, error)

	// FindByIDForUpdate retrieves a product and locks its row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error)

	// Update writes every mutable column of the product.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes the product. It returns ErrProductNotFound when nothing was deleted.
	Delete(ctx context.Context, id int64) error
}
