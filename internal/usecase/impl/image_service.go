package impl

import (
	"context"

	"inventory/internal/domain/service"
	"inventory/internal/errors"
	"inventory/internal/usecase"
)

type imageService struct {
	images service.ImageStorage
}

// NewImageService exposes stored product images to the delivery layer.
func NewImageService(images service.ImageStorage) usecase.ImageUsecase {
	return &imageService{images: images}
}

func (srv *imageService) Open(ctx context.Context, name string) (*service.StoredImage, error) {
	image, err := srv.images.Open(ctx, name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open image")
	}

	return image, nil
}
