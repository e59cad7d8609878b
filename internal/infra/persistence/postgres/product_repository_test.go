package postgres

import (
	"context"
	"testing"
	"time"

	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productColumns = []string{"id", "name", "description", "price", "quantity", "image_url", "created_at", "updated_at"}

func strPtr(s string) *string { return &s }

func TestProductRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(`INSERT INTO "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	product := &entity.Product{Name: "Widget", Description: "A widget", Price: 9.5, Quantity: 3, ImageURL: strPtr("/static/images/a.png")}
	err := repo.Create(context.Background(), product)

	require.NoError(t, err)
	assert.Equal(t, int64(11), product.ID)
	assert.False(t, product.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Create_CheckViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(`INSERT INTO "products"`).
		WillReturnError(&pgconn.PgError{Code: sqlStateCheckViolation, ConstraintName: "products_price_check"})

	err := repo.Create(context.Background(), &entity.Product{Name: "Widget", Description: "A widget", Price: 1, Quantity: 1})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestProductRepository_Create_NumericOutOfRange(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(`INSERT INTO "products"`).
		WillReturnError(&pgconn.PgError{Code: sqlStateNumericRange, Message: "integer out of range"})

	err := repo.Create(context.Background(), &entity.Product{Name: "Widget", Description: "A widget", Price: 1, Quantity: 1})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestProductRepository_FindAll_OrderedByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "products" ORDER BY id ASC`).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(int64(1), "A", "first", 1.5, 1, nil, now, now).
			AddRow(int64(2), "B", "second", 2.5, 0, "/static/images/b.jpg", now, now))

	products, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Nil(t, products[0].ImageURL)
	require.NotNil(t, products[1].ImageURL)
	assert.Equal(t, "/static/images/b.jpg", *products[1].ImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_FindAll_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "products"`).WillReturnRows(sqlmock.NewRows(productColumns))

	products, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestProductRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(productColumns))

	product, err := repo.FindByID(context.Background(), 404)

	assert.Nil(t, product)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestProductRepository_FindByIDForUpdate_LocksRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(productColumns).AddRow(int64(5), "A", "d", 1.0, 2, nil, now, now))

	product, err := repo.FindByIDForUpdate(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, int64(5), product.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectExec(`UPDATE "products" SET .*"quantity"=.* WHERE id = `).
		WillReturnResult(sqlmock.NewResult(0, 1))

	product := &entity.Product{ID: 5, Name: "A", Description: "d", Price: 1, Quantity: 20}
	err := repo.Update(context.Background(), product)

	require.NoError(t, err)
	assert.False(t, product.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update_NoRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectExec(`UPDATE "products"`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &entity.Product{ID: 5, Name: "A", Description: "d", Price: 1})

	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestProductRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectExec(`DELETE FROM "products" WHERE "products"."id" = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "products"`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), 5))
	assert.ErrorIs(t, repo.Delete(context.Background(), 5), repository.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_CommitAndRollback(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTransactionManager(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(productColumns).AddRow(int64(5), "A", "d", 1.0, 2, nil, now, now))
	mock.ExpectCommit()

	err := tm.Execute(context.Background(), func(f repository.RepositoryFactory) error {
		_, err := f.ProductRepo().FindByIDForUpdate(context.Background(), 5)

		return err
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()

	businessErr := errors.New("boom")
	err = tm.Execute(context.Background(), func(f repository.RepositoryFactory) error {
		assert.NotNil(t, f.UserRepo())

		return businessErr
	})
	assert.ErrorIs(t, err, businessErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_CommitFailure(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTransactionManager(db)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	err := tm.Execute(context.Background(), func(repository.RepositoryFactory) error { return nil })

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTransactionFailed))
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
