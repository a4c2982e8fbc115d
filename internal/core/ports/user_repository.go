package ports

import (
	"context"

	"github.com/interviewsim/interview-api/internal/core/domain"
)

// UserRepository defines the persistence surface for users and the admin
// credential lookup. Lookups return domain.ErrUserNotFound when no record
// matches; the service decides how that surfaces to callers.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByIDAndEmail(ctx context.Context, id int64, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	DeleteByID(ctx context.Context, id int64) error

	// ClearResumeURL blanks the resume path on any user referencing the URL.
	// A URL no user references is not an error.
	ClearResumeURL(ctx context.Context, fileURL string) error
	AllResumeURLs(ctx context.Context) ([]string, error)

	// FindAdminByCredentials matches email and password exactly as stored;
	// comparison semantics are owned by the repository. Returns
	// domain.ErrInvalidCredentials when nothing matches.
	FindAdminByCredentials(ctx context.Context, email, password string) (*domain.Admin, error)
}

// InterviewRepository covers the slice of interview persistence the account
// service touches: report-path cleanup and batch listing.
type InterviewRepository interface {
	ClearReportURL(ctx context.Context, fileURL string) error
	AllReportURLs(ctx context.Context) ([]string, error)
}
