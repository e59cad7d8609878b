package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/repository"
	"inventory/internal/domain/service"
	mockRepo "inventory/internal/mocks/repository"
	mockSvc "inventory/internal/mocks/service"
	"inventory/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// productServiceFixtures holds all test dependencies for product service tests.
type productServiceFixtures struct {
	service     usecase.ProductUsecase
	txManager   *mockRepo.MockTransactionManager
	productRepo *mockRepo.MockProductRepository
	images      *mockSvc.MockImageStorage
}

func createTestProductService(t *testing.T, retainImageOnDelete bool) productServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	images := mockSvc.NewMockImageStorage(t)

	service := NewProductService(ProductServiceParams{
		TxManager:   txManager,
		ProductRepo: productRepo,
		Images:      images,
		Config:      newTestConfig(retainImageOnDelete),
		Logger:      newDiscardLogger(),
	})

	return productServiceFixtures{
		service:     service,
		txManager:   txManager,
		productRepo: productRepo,
		images:      images,
	}
}

func newImageUpload(filename, contentType string) *usecase.ImageUpload {
	return &usecase.ImageUpload{
		Filename:    filename,
		ContentType: contentType,
		Size:        4,
		Content:     strings.NewReader("data"),
	}
}

func existingProduct() *entity.Product {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	return &entity.Product{
		ID:          5,
		Name:        "Widget",
		Description: "A widget",
		Price:       10,
		Quantity:    3,
		ImageURL:    strPtr("/static/images/old.png"),
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestProductService_Create_WithImage(t *testing.T) {
	fx := createTestProductService(t, false)
	ctx := context.Background()
	upload := newImageUpload("photo.PNG", "image/png")

	fx.images.EXPECT().Store(ctx, upload.Content, "photo.PNG", "image/png").Return("/static/images/new.png", nil)
	fx.productRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Product")).
		Run(func(_ context.Context, product *entity.Product) {
			product.ID = 1
		}).
		Return(nil)

	product, err := fx.service.Create(ctx, usecase.CreateProductInput{
		Name:        "Widget",
		Description: "A widget",
		Price:       9.99,
		Quantity:    0,
		Image:       upload,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), product.ID)
	require.NotNil(t, product.ImageURL)
	assert.Equal(t, "/static/images/new.png", *product.ImageURL)
}

func TestProductService_Create_ValidationRejectsBeforeAnyIO(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.CreateProductInput
		field string
	}{
		{"zero price", usecase.CreateProductInput{Name: "A", Description: "d", Price: 0, Quantity: 1}, "price"},
		{"negative price", usecase.CreateProductInput{Name: "A", Description: "d", Price: -1, Quantity: 1}, "price"},
		{"negative quantity", usecase.CreateProductInput{Name: "A", Description: "d", Price: 1, Quantity: -1}, "quantity"},
		{"empty name", usecase.CreateProductInput{Name: "", Description: "d", Price: 1}, "name"},
		{"long name", usecase.CreateProductInput{Name: strings.Repeat("x", 101), Description: "d", Price: 1}, "name"},
		{"long description", usecase.CreateProductInput{Name: "A", Description: strings.Repeat("x", 501), Price: 1}, "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestProductService(t, false)
			tt.input.Image = newImageUpload("a.png", "image/png")

			product, err := fx.service.Create(context.Background(), tt.input)

			assert.Nil(t, product)
			require.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

			var appErr domainerrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Contains(t, appErr.Details(), tt.field)
		})
	}
}

func TestProductService_Create_RejectsNonImageContentType(t *testing.T) {
	fx := createTestProductService(t, false)

	_, err := fx.service.Create(context.Background(), usecase.CreateProductInput{
		Name:        "Widget",
		Description: "A widget",
		Price:       1,
		Image:       newImageUpload("notes.txt", "text/plain"),
	})

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidImage))
}

func TestProductService_Create_RejectsOversizedImage(t *testing.T) {
	fx := createTestProductService(t, false)
	upload := newImageUpload("big.png", "image/png")
	upload.Size = 2 << 20

	_, err := fx.service.Create(context.Background(), usecase.CreateProductInput{
		Name: "Widget", Description: "A widget", Price: 1, Image: upload,
	})

	assert.True(t, errors.Is(err, domainerrors.ErrImageTooLarge))
}

func TestProductService_Create_PersistFailureRemovesStoredImage(t *testing.T) {
	fx := createTestProductService(t, false)
	ctx := context.Background()
	upload := newImageUpload("a.png", "image/png")

	fx.images.EXPECT().Store(ctx, upload.Content, "a.png", "image/png").Return("/static/images/orphan.png", nil)
	fx.productRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Product")).Return(errors.New("insert failed"))
	fx.images.EXPECT().Remove(mock.Anything, "/static/images/orphan.png").
		Return(service.RemoveResult{Reference: "/static/images/orphan.png", Status: service.RemoveStatusDeleted})

	_, err := fx.service.Create(ctx, usecase.CreateProductInput{
		Name: "Widget", Description: "A widget", Price: 1, Image: upload,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert failed")
}

func TestProductService_Get(t *testing.T) {
	fx := createTestProductService(t, false)
	ctx := context.Background()

	fx.productRepo.EXPECT().FindByID(ctx, int64(5)).Return(existingProduct(), nil)
	fx.productRepo.EXPECT().FindByID(ctx, int64(6)).Return(nil, repository.ErrProductNotFound)

	product, err := fx.service.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Widget", product.Name)

	_, err = fx.service.Get(ctx, 6)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestProductService_List(t *testing.T) {
	fx := createTestProductService(t, false)
	ctx := context.Background()
	products := []*entity.Product{{ID: 1}, {ID: 2}}

	fx.productRepo.EXPECT().FindAll(ctx).Return(products, nil)

	listed, err := fx.service.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, products, listed)
}

func TestProductService_Update_MissingProductMutatesNothing(t *testing.T) {
	fx := createTestProductService(t, false)
	ctx := context.Background()

	fx.productRepo.EXPECT().FindByID(ctx, int64(99)).Return(nil, repository.ErrProductNotFound)

	_, err := fx.service.Update(ctx, 99, usecase.UpdateProductInput{
		Patch: entity.ProductPatch{Quantity: entity.Some(1)},
		Image: newImageUpload("a.png", "image/png"),
	})

	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestProductService_Update_MissingProductWinsOverInvalidPatch(t *testing.T) {
	fx := createTestProductService(t, false)
	ctx := context.Background()

	fx.productRepo.EXPECT().FindByID(ctx, int64(99)).Return(nil, repository.ErrProductNotFound)

	_, err := fx.service.Update(ctx, 99, usecase.UpdateProductInput{
		Patch: entity.ProductPatch{Price: entity.Some(-10.0)},
	})

	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
	assert.False(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestProductService_Update_AppliesOnlyPresentFields(t *testing.T) {
	fx := createTestProductService(t, false)
	ctx := context.Background()

	fx.productRepo.EXPECT().FindByID(ctx, int64(5)).Return(existingProduct(), nil)
	expectTx(t, ctx, fx.txManager, func(factory *mockRepo.MockRepositoryFactory) {
		txProductRepo := mockRepo.NewMockProductRepository(t)
		factory.EXPECT().ProductRepo().Return(txProductRepo)
		txProductRepo.EXPECT().FindByIDForUpdate(ctx, int64(5)).Return(existingProduct(), nil)
		txProductRepo.EXPECT().
			Update(ctx, mock.AnythingOfType("*entity.Product")).
			Run(func(_ context.Context, product *entity.Product) {
				assert.Equal(t, "Widget", product.Name)
				assert.Equal(t, "A widget", product.Description)
				assert.InDelta(t, 10.0, product.Price, 0)
				assert.Equal(t, 20, product.Quantity)
				assert.Equal(t, "/static/images/old.png", *product.ImageURL)
			}).
			Return(nil)
	})

	updated, err := fx.service.Update(ctx, 5, usecase.UpdateProductInput{
		Patch: entity.ProductPatch{Quantity: entity.Some(20)},
	})

	require.NoError(t, err)
	assert.Equal(t, 20, updated.Quantity)
	assert.Equal(t, "Widget", updated.Name)
}

func TestProductService_Update_ZeroQuantityIsApplied(t *testing.T) {
	fx := createTestProductService(t, false)
	ctx := context.Background()

	fx.productRepo.EXPECT().FindByID(ctx, int64(5)).Return(existingProduct(), nil)
	expectTx(t, ctx, fx.txManager, func(factory *mockRepo.MockRepositoryFactory) {
		txProductRepo := mockRepo.NewMockProductRepository(t)
		factory.EXPECT().ProductRepo().Return(txProductRepo)
		txProductRepo.EXPECT().FindByIDForUpdate(ctx, int64(5)).Return(existingProduct(), nil)
		txProductRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Product")).Return(nil)
	})

	updated, err := fx.service.Update(ctx, 5, usecase.UpdateProductInput{
		Patch: entity.ProductPatch{Quantity: entity.Some(0)},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)
}

func TestProductService_Update_InvalidFieldLeavesStoreUntouched(t *testing.T) {
	tests := []struct {
		name  string
		patch entity.ProductPatch
	}{
		{"zero price", entity.ProductPatch{Price: entity.Some(0.0), Quantity: entity.Some(4)}},
		{"negative quantity", entity.ProductPatch{Quantity: entity.Some(-1)}},
		{"empty name", entity.ProductPatch{Name: entity.Some("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestProductService(t, false)
			fx.productRepo.EXPECT().FindByID(mock.Anything, int64(5)).Return(existingProduct(), nil)

			_, err := fx.service.Update(context.Background(), 5, usecase.UpdateProductInput{
				Patch: tt.patch,
				Image: newImageUpload("a.png", "image/png"),
			})

			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
		})
	}
}

func TestProductService_Update_EmptyPatchReturnsCurrent(t *testing.T) {
	fx := createTestProductService(t, false)
	ctx := context.Background()
	current := existingProduct()

	fx.productRepo.EXPECT().FindByID(ctx, int64(5)).Return(current, nil)

	updated, err := fx.service.Update(ctx, 5, usecase.UpdateProductInput{})

	require.NoError(t, err)
	assert.Same(t, current, updated)
}

func TestProductService_Update_ReplacesImageAndRemovesPrevious(t *testing.T) {
	fx := createTestProductService(t, false)
	ctx := context.Background()
	upload := newImageUpload("b.jpg", "image/jpeg")

	fx.productRepo.EXPECT().FindByID(ctx, int64(5)).Return(existingProduct(), nil)
	fx.images.EXPECT().Store(ctx, upload.Content, "b.jpg", "image/jpeg").Return("/static/images/new.jpg", nil)
	expectTx(t, ctx, fx.txManager, func(factory *mockRepo.MockRepositoryFactory) {
		txProductRepo := mockRepo.NewMockProductRepository(t)
		factory.EXPECT().ProductRepo().Return(txProductRepo)
		txProductRepo.EXPECT().FindByIDForUpdate(ctx, int64(5)).Return(existingProduct(), nil)
		txProductRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Product")).Return(nil)
	})
	fx.images.EXPECT().Remove(mock.Anything, "/static/images/old.png").
		Return(service.RemoveResult{Reference: "/static/images/old.png", Status: service.RemoveStatusNotFound})

	updated, err := fx.service.Update(ctx, 5, usecase.UpdateProductInput{Image: upload})

	require.NoError(t, err)
	assert.Equal(t, "/static/images/new.jpg", *updated.ImageURL)
}

func TestProductService_Update_PreviousImageRemovalFailureIsNotPropagated(t *testing.T) {
	fx := createTestProductService(t, false)
	ctx := context.Background()
	upload := newImageUpload("b.jpg", "image/jpeg")

	fx.productRepo.EXPECT().FindByID(ctx, int64(5)).Return(existingProduct(), nil)
	fx.images.EXPECT().Store(ctx, upload.Content, "b.jpg", "image/jpeg").Return("/static/images/new.jpg", nil)
	expectTx(t, ctx, fx.txManager, func(factory *mockRepo.MockRepositoryFactory) {
		txProductRepo := mockRepo.NewMockProductRepository(t)
		factory.EXPECT().ProductRepo().Return(txProductRepo)
		txProductRepo.EXPECT().FindByIDForUpdate(ctx, int64(5)).Return(existingProduct(), nil)
		txProductRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Product")).Return(nil)
	})
	fx.images.EXPECT().Remove(mock.Anything, "/static/images/old.png").
		Return(service.RemoveResult{Reference: "/static/images/old.png", Status: service.RemoveStatusFailed, Err: errors.New("permission denied")})

	_, err := fx.service.Update(ctx, 5, usecase.UpdateProductInput{Image: upload})

	assert.NoError(t, err)
}

func TestProductService_Update_PersistFailureKeepsOldImage(t *testing.T) {
	fx := createTestProductService(t, false)
	ctx := context.Background()
	upload := newImageUpload("b.jpg", "image/jpeg")

	fx.productRepo.EXPECT().FindByID(ctx, int64(5)).Return(existingProduct(), nil)
	fx.images.EXPECT().Store(ctx, upload.Content, "b.jpg", "image/jpeg").Return("/static/images/new.jpg", nil)
	expectTx(t, ctx, fx.txManager, func(factory *mockRepo.MockRepositoryFactory) {
		txProductRepo := mockRepo.NewMockProductRepository(t)
		factory.EXPECT().ProductRepo().Return(txProductRepo)
		txProductRepo.EXPECT().FindByIDForUpdate(ctx, int64(5)).Return(existingProduct(), nil)
		txProductRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Product")).Return(errors.New("write failed"))
	})
	// Only the freshly stored blob is removed; old.png must stay.
	fx.images.EXPECT().Remove(mock.Anything, "/static/images/new.jpg").
		Return(service.RemoveResult{Reference: "/static/images/new.jpg", Status: service.RemoveStatusDeleted})

	_, err := fx.service.Update(ctx, 5, usecase.UpdateProductInput{
		Patch: entity.ProductPatch{Name: entity.Some("Renamed")},
		Image: upload,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "write failed")
}

func TestProductService_Update_DeletedConcurrently(t *testing.T) {
	fx := createTestProductService(t, false)
	ctx := context.Background()

	fx.productRepo.EXPECT().FindByID(ctx, int64(5)).Return(existingProduct(), nil)
	expectTx(t, ctx, fx.txManager, func(factory *mockRepo.MockRepositoryFactory) {
		txProductRepo := mockRepo.NewMockProductRepository(t)
		factory.EXPECT().ProductRepo().Return(txProductRepo)
		txProductRepo.EXPECT().FindByIDForUpdate(ctx, int64(5)).Return(nil, repository.ErrProductNotFound)
	})

	_, err := fx.service.Update(ctx, 5, usecase.UpdateProductInput{
		Patch: entity.ProductPatch{Price: entity.Some(12.5)},
	})

	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestProductService_Delete_RemovesImage(t *testing.T) {
	fx := createTestProductService(t, false)
	ctx := context.Background()

	expectTx(t, ctx, fx.txManager, func(factory *mockRepo.MockRepositoryFactory) {
		txProductRepo := mockRepo.NewMockProductRepository(t)
		factory.EXPECT().ProductRepo().Return(txProductRepo)
		txProductRepo.EXPECT().FindByIDForUpdate(ctx, int64(5)).Return(existingProduct(), nil)
		txProductRepo.EXPECT().Delete(ctx, int64(5)).Return(nil)
	})
	fx.images.EXPECT().Remove(mock.Anything, "/static/images/old.png").
		Return(service.RemoveResult{Reference: "/static/images/old.png", Status: service.RemoveStatusDeleted})

	assert.NoError(t, fx.service.Delete(ctx, 5))
}

func TestProductService_Delete_RetainsImageWhenConfigured(t *testing.T) {
	fx := createTestProductService(t, true)
	ctx := context.Background()

	expectTx(t, ctx, fx.txManager, func(factory *mockRepo.MockRepositoryFactory) {
		txProductRepo := mockRepo.NewMockProductRepository(t)
		factory.EXPECT().ProductRepo().Return(txProductRepo)
		txProductRepo.EXPECT().FindByIDForUpdate(ctx, int64(5)).Return(existingProduct(), nil)
		txProductRepo.EXPECT().Delete(ctx, int64(5)).Return(nil)
	})

	assert.NoError(t, fx.service.Delete(ctx, 5))
}

func TestProductService_Delete_NotFound(t *testing.T) {
	fx := createTestProductService(t, false)
	ctx := context.Background()

	expectTx(t, ctx, fx.txManager, func(factory *mockRepo.MockRepositoryFactory) {
		txProductRepo := mockRepo.NewMockProductRepository(t)
		factory.EXPECT().ProductRepo().Return(txProductRepo)
		txProductRepo.EXPECT().FindByIDForUpdate(ctx, int64(404)).Return(nil, repository.ErrProductNotFound)
	})

	err := fx.service.Delete(ctx, 404)

	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}
