package blob

import (
	"context"
	"io"
)

// ArchiveStorage keeps a copy of successfully ingested source files.
type ArchiveStorage interface {
	UploadBlob(ctx context.Context, path string, content io.Reader) error
	Shutdown(ctx context.Context) error
}
