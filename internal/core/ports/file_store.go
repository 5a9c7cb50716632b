package ports

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// FileUpload is one file handed over by the routing layer for storage.
type FileUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// FileStore uploads files in a batch and returns their stored metadata in
// input order. If the store rejects any file, the whole batch fails with an
// UploadFailedError enumerating the rejected files; callers never persist a
// partial upload.
type FileStore interface {
	UploadBatch(ctx context.Context, folder string, files []FileUpload) ([]order.StoredFile, error)
}
