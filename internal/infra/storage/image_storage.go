package storage

import (
	"context"
	"io"
	"log/slog"
	"path"
	"regexp"
	"strings"

	"inventory/config"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/service"
	"inventory/internal/errors"
	"inventory/internal/infra/metrics"
	"inventory/internal/util"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

const defaultExtension = ".jpg"

var plainExtension = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

type blobImageStorage struct {
	bucket     *blob.Bucket
	publicPath string
	maxBytes   int64
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// ImageStorageParams defines the required parameters
type ImageStorageParams struct {
	fx.In

	Bucket  *blob.Bucket
	Config  *config.Config
	Metrics *metrics.Metrics `optional:"true"`
	Logger  *slog.Logger
}

// NewBlobImageStorage returns an ImageStorage backed by a gocloud.dev bucket.
func NewBlobImageStorage(params ImageStorageParams) service.ImageStorage {
	return &blobImageStorage{
		bucket:     params.Bucket,
		publicPath: strings.TrimRight(params.Config.Storage.PublicPath, "/"),
		maxBytes:   params.Config.Storage.MaxImageBytes,
		metrics:    params.Metrics,
		logger:     params.Logger,
	}
}

func (s *blobImageStorage) Store(ctx context.Context, content io.Reader, suggestedName, contentType string) (string, error) {
	name := uuid.NewString() + extensionOf(suggestedName)

	// Cancelling the writer context before Close discards the partial blob.
	writeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	writer, err := s.bucket.NewWriter(writeCtx, name, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		s.metrics.ObserveImage("store", "failed")

		return "", domainerrors.ErrImageStoreFailed.WrapMessage(err.Error())
	}

	reader := content
	if s.maxBytes > 0 {
		reader = io.LimitReader(content, s.maxBytes+1)
	}

	written, err := io.Copy(writer, reader)
	if err != nil {
		cancel()
		_ = writer.Close()
		s.metrics.ObserveImage("store", "failed")

		return "", domainerrors.ErrImageStoreFailed.WrapMessage(err.Error())
	}
	if s.maxBytes > 0 && written > s.maxBytes {
		cancel()
		_ = writer.Close()
		s.metrics.ObserveImage("store", "too_large")

		return "", errors.WithStack(domainerrors.ErrImageTooLarge.WithDetails("image exceeds "+util.FormatBytes(s.maxBytes)))
	}

	if err := writer.Close(); err != nil {
		s.metrics.ObserveImage("store", "failed")

		return "", domainerrors.ErrImageStoreFailed.WrapMessage(err.Error())
	}

	s.metrics.ObserveImage("store", "ok")

	return s.publicPath + "/" + name, nil
}

func (s *blobImageStorage) Remove(ctx context.Context, reference string) service.RemoveResult {
	result := service.RemoveResult{Reference: reference}

	name, ok := s.nameFromReference(reference)
	if !ok {
		result.Status = service.RemoveStatusSkipped
		s.metrics.ObserveImage("remove", result.Status.String())

		return result
	}

	err := s.bucket.Delete(ctx, name)
	switch {
	case err == nil:
		result.Status = service.RemoveStatusDeleted
	case gcerrors.Code(err) == gcerrors.NotFound:
		result.Status = service.RemoveStatusNotFound
	default:
		result.Status = service.RemoveStatusFailed
		result.Err = err
	}
	s.metrics.ObserveImage("remove", result.Status.String())

	return result
}

func (s *blobImageStorage) Open(ctx context.Context, name string) (*service.StoredImage, error) {
	if !validName(name) {
		return nil, errors.WithStack(domainerrors.ErrImageNotFound)
	}

	reader, err := s.bucket.NewReader(ctx, name, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, errors.WithStack(domainerrors.ErrImageNotFound)
		}

		return nil, errors.Wrapf(err, "failed to open image %q", name)
	}

	return &service.StoredImage{
		Body:        reader,
		ContentType: reader.ContentType(),
		Size:        reader.Size(),
	}, nil
}

func (s *blobImageStorage) nameFromReference(reference string) (string, bool) {
	name, found := strings.CutPrefix(reference, s.publicPath+"/")
	if !found || !validName(name) {
		return "", false
	}

	return name, true
}

// validName accepts only flat names produced by Store.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

func extensionOf(suggestedName string) string {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(suggestedName, `\`, "/")))
	if !plainExtension.MatchString(ext) {
		return defaultExtension
	}

	return ext
}
