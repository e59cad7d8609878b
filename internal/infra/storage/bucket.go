package storage

import (
	"context"
	"log/slog"

	"inventory/config"
	"inventory/internal/domain/lifecycle"
	"inventory/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Registered bucket URL schemes: file://, mem:// and s3://.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

// BucketParams defines the required parameters
type BucketParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewBucket opens the image bucket described by storage.bucketUrl, scoped to storage.prefix.
func NewBucket(params BucketParams) (*blob.Bucket, error) {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(ctx, params.Config.Storage.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %q", params.Config.Storage.BucketURL)
	}

	if prefix := params.Config.Storage.Prefix; prefix != "" {
		bucket = blob.PrefixedBucket(bucket, prefix)
	}

	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Fails fast on bad credentials or a missing bucket.
			if _, err := bucket.IsAccessible(ctx); err != nil {
				return errors.Wrap(err, "image bucket is not accessible")
			}
			params.Logger.Info("Image bucket opened", slog.String("prefix", params.Config.Storage.Prefix))

			return nil
		},
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return bucket, nil
}
