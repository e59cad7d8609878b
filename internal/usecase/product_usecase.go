package usecase

import (
	"context"
	"io"

	"inventory/internal/domain/entity"
	"inventory/internal/domain/service"
)

// ImageUpload is an image file received from a client.
type ImageUpload struct {
	Filename    string // Client-supplied name. Only its extension is kept.
	ContentType string
	Size        int64
	Content     io.Reader
}

// CreateProductInput defines the data required to create a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	Image       *ImageUpload
}

// UpdateProductInput is a sparse update plus an optional replacement image.
type UpdateProductInput struct {
	Patch entity.ProductPatch
	Image *ImageUpload
}

// ProductUsecase defines catalog operations.
type ProductUsecase interface {
	Create(ctx context.Context, input CreateProductInput) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Get(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, id int64, input UpdateProductInput) (*entity.Product, error)
	Delete(ctx context.Context, id int64) error
}

// ImageUsecase serves stored product images.
type ImageUsecase interface {
	// Open returns the image stored under name. The caller closes Body.
	Open(ctx context.Context, name string) (*service.StoredImage, error)
}
