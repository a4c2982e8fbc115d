package ports

import (
	"context"

	"github.com/interviewsim/interview-api/internal/core/domain"
)

// RegisterInput carries everything needed to create an account. Resume is
// optional; nil means the account starts without one.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Resume   *domain.FileUpload
}

// AdminUpdateInput is the admin-side update envelope. Password and Resume are
// optional; nil leaves the stored value untouched.
type AdminUpdateInput struct {
	UserID   int64
	Name     string
	Email    string
	Password *string
	Resume   *domain.FileUpload
}

type UserService interface {
	GetUserByEmail(ctx context.Context, email string) (domain.UserDTO, error)
	GetUserByID(ctx context.Context, id int64) (domain.UserDTO, error)
	GetUserByIDAndEmail(ctx context.Context, id int64, email string) (domain.UserDTO, error)
	GetAllUsers(ctx context.Context) ([]domain.UserDTO, error)

	Register(ctx context.Context, input RegisterInput) (domain.UserDTO, error)
	UpdateUser(ctx context.Context, dto domain.UserDTO) error
	UpdateUserByAdmin(ctx context.Context, input AdminUpdateInput) error
	UpdateUserResume(ctx context.Context, userID int64, resume *domain.FileUpload) error

	DeleteUser(ctx context.Context, id int64) (bool, error)
	DeleteFile(ctx context.Context, fileURL, fileType string, interviewID *int64) (bool, error)

	LoginAdmin(ctx context.Context, email, password string) (string, error)

	GetAllResumeURLs(ctx context.Context) ([]string, error)
	GetAllReportURLs(ctx context.Context) ([]string, error)
}
