package blob

import (
	"context"
	"io"
	"log/slog"
	"time"

	"cloud.google.com/go/storage"

	apperrors "github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/internal/errors"
)

type googleCloudStorage struct {
	storage *storage.Client
	bucket  *storage.BucketHandle
}

func NewGoogleCloudStorage(bucketName string) (ArchiveStorage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	storage, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	return &googleCloudStorage{bucket: storage.Bucket(bucketName), storage: storage}, nil
}

func (b *googleCloudStorage) UploadBlob(ctx context.Context, path string, content io.Reader) error {
	// Ensure the archive upload completes even when the parent context goes away.
	uploadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Minute)
	defer cancel()

	obj := b.bucket.Object(path)
	w := obj.NewWriter(uploadCtx)
	defer w.Close()

	start := time.Now()
	if _, err := io.Copy(w, content); err != nil {
		return apperrors.New(apperrors.ErrCodeInternal, "failed to stream to GCS", err)
	}

	if err := w.Close(); err != nil {
		return apperrors.New(apperrors.ErrCodeInternal, "failed to finalize GCS upload", err)
	}

	slog.Info("Archived source file",
		"path", path,
		"totalSecond", time.Since(start).Seconds(),
	)

	return nil
}

func (b *googleCloudStorage) Shutdown(ctx context.Context) error {
	return b.storage.Close()
}
