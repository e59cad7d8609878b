package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"inventory/config"
	"inventory/internal/domain/repository"
	mockRepo "inventory/internal/mocks/repository"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(retainImageOnDelete bool) *config.Config {
	return &config.Config{
		Storage: &config.StorageConfig{
			PublicPath:          "/static/images",
			MaxImageBytes:       1 << 20,
			RetainImageOnDelete: retainImageOnDelete,
		},
	}
}

// expectTx makes txManager run the transaction body against a fresh factory mock
// and return whatever the body returns.
func expectTx(t *testing.T, ctx context.Context, txManager *mockRepo.MockTransactionManager, setup func(factory *mockRepo.MockRepositoryFactory)) {
	t.Helper()

	txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			setup(factory)

			return fn(factory)
		}).
		Once()
}

func strPtr(s string) *string {
	return &s
}
