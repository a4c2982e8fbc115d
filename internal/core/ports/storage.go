package ports

import (
	"context"

	"github.com/interviewsim/interview-api/internal/core/domain"
)

// BlobStorage is the boundary to the external file store. The bucket is
// configuration of the implementation, not a parameter of the calls.
type BlobStorage interface {
	// UploadFile stores the file and returns its dereferenceable URL.
	UploadFile(ctx context.Context, file domain.FileUpload) (string, error)
	// DeleteFileByURL removes the blob the URL points at and reports whether
	// the delete succeeded. URLs that do not belong to the store yield
	// (false, nil).
	DeleteFileByURL(ctx context.Context, fileURL string) (bool, error)
}
