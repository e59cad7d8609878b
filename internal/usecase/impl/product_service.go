package impl

import (
	"context"
	"log/slog"
	"strings"

	"inventory/config"
	deliverycontext "inventory/internal/delivery/context"
	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/repository"
	"inventory/internal/domain/service"
	"inventory/internal/errors"
	"inventory/internal/usecase"
	"inventory/internal/util"

	"go.uber.org/fx"
)

// productService implements the ProductUsecase interface.
type productService struct {
	txManager           repository.TransactionManager
	productRepo         repository.ProductRepository
	images              service.ImageStorage
	maxImageBytes       int64
	retainImageOnDelete bool
	logger              *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	Images      service.ImageStorage
	Config      *config.Config
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	srv := &productService{
		txManager:   params.TxManager,
		productRepo: params.ProductRepo,
		images:      params.Images,
		logger:      params.Logger,
	}
	if params.Config != nil && params.Config.Storage != nil {
		srv.maxImageBytes = params.Config.Storage.MaxImageBytes
		srv.retainImageOnDelete = params.Config.Storage.RetainImageOnDelete
	}

	return srv
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create validates the input before touching storage. The image is stored first;
// when the insert fails the stored image is removed again.
func (srv *productService) Create(ctx context.Context, input usecase.CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
	}
	if err := product.Validate(); err != nil {
		return nil, validationError(err)
	}

	if input.Image != nil {
		ref, err := srv.storeImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		product.ImageURL = &ref
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		if product.ImageURL != nil {
			srv.removeImage(ctx, *product.ImageURL, "create_failed")
		}
		srv.log(ctx).Error("Failed to create product", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.Int64("productID", product.ID))

	return product, nil
}

func (srv *productService) List(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

func (srv *productService) Get(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapProductLookupError(err, id)
	}

	return product, nil
}

// Update applies the present fields of the patch. Every constraint is checked on the
// merged candidate before anything is written, so a rejected update changes nothing.
func (srv *productService) Update(ctx context.Context, id int64, input usecase.UpdateProductInput) (*entity.Product, error) {
	current, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapProductLookupError(err, id)
	}

	if input.Patch.IsEmpty() && input.Image == nil {
		return current, nil
	}

	if err := input.Patch.ApplyTo(current).Validate(); err != nil {
		return nil, validationError(err)
	}

	var newRef *string
	if input.Image != nil {
		ref, err := srv.storeImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		newRef = &ref
	}

	var (
		updated     *entity.Product
		previousRef *string
	)
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		locked, err := productRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return mapProductLookupError(err, id)
		}

		candidate := input.Patch.ApplyTo(locked)
		if newRef != nil {
			candidate.ImageURL = newRef
		}
		if err := candidate.Validate(); err != nil {
			return validationError(err)
		}

		if err := productRepo.Update(ctx, candidate); err != nil {
			return mapProductLookupError(err, id)
		}

		previousRef = locked.ImageURL
		updated = candidate

		return nil
	})
	if err != nil {
		if newRef != nil {
			srv.removeImage(ctx, *newRef, "update_failed")
		}
		srv.log(ctx).Warn("Product update rejected", slog.Int64("productID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute product update transaction")
	}

	if newRef != nil && previousRef != nil && *previousRef != *newRef {
		srv.removeImage(ctx, *previousRef, "replaced")
	}

	return updated, nil
}

// Delete removes the product row, then its image unless images are retained.
func (srv *productService) Delete(ctx context.Context, id int64) error {
	var deleted *entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		product, err := productRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return mapProductLookupError(err, id)
		}
		if err := productRepo.Delete(ctx, id); err != nil {
			return mapProductLookupError(err, id)
		}
		deleted = product

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute product delete transaction")
	}

	srv.log(ctx).Info("Product deleted", slog.Int64("productID", id))

	if deleted.ImageURL != nil && !srv.retainImageOnDelete {
		srv.removeImage(ctx, *deleted.ImageURL, "product_deleted")
	}

	return nil
}

func (srv *productService) storeImage(ctx context.Context, image *usecase.ImageUpload) (string, error) {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(image.ContentType)), "image/") {
		return "", errors.WithStack(domainerrors.ErrInvalidImage.WithDetails("content type " + image.ContentType))
	}
	if srv.maxImageBytes > 0 && image.Size > srv.maxImageBytes {
		return "", errors.WithStack(domainerrors.ErrImageTooLarge.WithDetails("image exceeds "+util.FormatBytes(srv.maxImageBytes)))
	}

	ref, err := srv.images.Store(ctx, image.Content, image.Filename, image.ContentType)
	if err != nil {
		srv.log(ctx).Error("Failed to store product image", slog.Any("error", err))

		return "", errors.Wrap(err, "failed to store product image")
	}

	return ref, nil
}

// removeImage is best effort. The outcome is logged and never returned.
func (srv *productService) removeImage(ctx context.Context, ref, reason string) {
	result := srv.images.Remove(context.WithoutCancel(ctx), ref)

	attrs := []slog.Attr{
		slog.String("reference", ref),
		slog.String("reason", reason),
		slog.String("status", result.Status.String()),
	}
	switch {
	case result.OK():
		srv.log(ctx).LogAttrs(ctx, slog.LevelDebug, "Product image removed", attrs...)
	case result.Status == service.RemoveStatusSkipped:
		srv.log(ctx).LogAttrs(ctx, slog.LevelWarn, "Product image is not managed by storage", attrs...)
	default:
		attrs = append(attrs, slog.Any("error", result.Err))
		srv.log(ctx).LogAttrs(ctx, slog.LevelWarn, "Failed to remove product image", attrs...)
	}
}

func mapProductLookupError(err error, id int64) error {
	if errors.Is(err, repository.ErrProductNotFound) {
		return errors.Wrapf(domainerrors.ErrProductNotFound, "product %d", id)
	}

	return errors.Wrapf(err, "product %d", id)
}

func validationError(err error) error {
	if constraintErr, ok := errors.AsType[*entity.ConstraintError](err); ok {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(constraintErr.Error()))
	}

	return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(err.Error()))
}
