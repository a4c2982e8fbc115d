package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/interviewsim/interview-api/internal/core/domain"
	"github.com/interviewsim/interview-api/internal/core/ports"
)

// UserService implements the account lifecycle: queries, registration,
// self/admin updates, resume and report blob cleanup, and admin login.
// Every operation is a linear sequence of at most one repository read, one
// blob call and one repository write; failures propagate to the caller
// without retries or compensation.
type UserService struct {
	users      ports.UserRepository
	interviews ports.InterviewRepository
	storage    ports.BlobStorage
	jwtSecret  string
	log        zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	interviews ports.InterviewRepository,
	storage ports.BlobStorage,
	jwtSecret string,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		users:      users,
		interviews: interviews,
		storage:    storage,
		jwtSecret:  jwtSecret,
		log:        log,
	}
}

// --- Account queries -------------------------------------------------------

// GetUserByEmail returns the projection for the account holding the email.
// Absence surfaces as ErrIdentityNotFound so unauthenticated callers cannot
// distinguish "no such user" from "not yours".
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (domain.UserDTO, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return domain.UserDTO{}, identityErr(err)
	}
	return user.DTO(), nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (domain.UserDTO, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return domain.UserDTO{}, identityErr(err)
	}
	return user.DTO(), nil
}

func (s *UserService) GetUserByIDAndEmail(ctx context.Context, id int64, email string) (domain.UserDTO, error) {
	user, err := s.users.FindByIDAndEmail(ctx, id, email)
	if err != nil {
		return domain.UserDTO{}, identityErr(err)
	}
	return user.DTO(), nil
}

// GetAllUsers lists every account in store order. An empty list is a valid
// result, never an error.
func (s *UserService) GetAllUsers(ctx context.Context) ([]domain.UserDTO, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]domain.UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, u.DTO())
	}
	return dtos, nil
}

// identityErr converts repository not-found into the identity-conflated kind
// and lets everything else through untouched.
func identityErr(err error) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.ErrIdentityNotFound
	}
	return err
}

// --- Registration ----------------------------------------------------------

// Register creates an account with a hashed password and an optional resume.
// The email conflict check is a read-before-write; the unique index on the
// users collection closes the remaining race at insert time. If the insert
// fails after a successful resume upload, the uploaded blob is not rolled
// back.
func (s *UserService) Register(ctx context.Context, input ports.RegisterInput) (domain.UserDTO, error) {
	_, err := s.users.FindByEmail(ctx, input.Email)
	if err == nil {
		return domain.UserDTO{}, domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.UserDTO{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserDTO{}, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:      input.Name,
		Email:     input.Email,
		Password:  string(hash),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if input.Resume != nil {
		url, err := s.storage.UploadFile(ctx, *input.Resume)
		if err != nil {
			return domain.UserDTO{}, err
		}
		user.ResumePath = url
	}

	created, err := s.users.Insert(ctx, user)
	if err != nil {
		return domain.UserDTO{}, err
	}

	s.log.Info().Int64("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created.DTO(), nil
}

// --- Updates ---------------------------------------------------------------

// UpdateUser persists the caller-supplied projection verbatim. The id/email
// pairing is trusted as already verified by the caller; the stored password
// hash survives because the mapped entity carries an empty password.
func (s *UserService) UpdateUser(ctx context.Context, dto domain.UserDTO) error {
	user := dto.Entity()
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, &user); err != nil {
		return err
	}
	s.log.Info().Int64("user_id", user.ID).Msg("user updated")
	return nil
}

// UpdateUserByAdmin applies name and email unconditionally, the password only
// when supplied, and the resume only when a file is supplied (deleting the
// prior blob first).
func (s *UserService) UpdateUserByAdmin(ctx context.Context, input ports.AdminUpdateInput) error {
	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return err
	}

	if user.Email != input.Email {
		other, err := s.users.FindByEmail(ctx, input.Email)
		if err == nil && other.ID != input.UserID {
			return domain.ErrEmailTaken
		}
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
	}

	user.Name = input.Name
	user.Email = input.Email

	if input.Password != nil && *input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.Password = string(hash)
	}

	if input.Resume != nil {
		if err := s.replaceResume(ctx, user, input.Resume); err != nil {
			return err
		}
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user updated by admin")
	return nil
}

// UpdateUserResume swaps the stored resume for the uploaded file. The old
// blob is deleted before the new one is uploaded: a brief window with no
// resume is preferred over leaking orphaned blobs.
func (s *UserService) UpdateUserResume(ctx context.Context, userID int64, resume *domain.FileUpload) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if resume != nil {
		if err := s.replaceResume(ctx, user, resume); err != nil {
			return err
		}
	}

	user.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, user)
}

// replaceResume deletes the current blob (if any), uploads the new file and
// rewrites the resume path on the entity. The caller persists.
func (s *UserService) replaceResume(ctx context.Context, user *domain.User, resume *domain.FileUpload) error {
	if user.ResumePath != "" {
		if _, err := s.storage.DeleteFileByURL(ctx, user.ResumePath); err != nil {
			return err
		}
	}
	url, err := s.storage.UploadFile(ctx, *resume)
	if err != nil {
		return err
	}
	user.ResumePath = url
	return nil
}

// --- Deletion --------------------------------------------------------------

// DeleteUser removes the account and its resume blob. A missing account is
// reported as (false, nil): idempotent delete, not an exceptional condition.
func (s *UserService) DeleteUser(ctx context.Context, id int64) (bool, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}

	if user.ResumePath != "" {
		if _, err := s.storage.DeleteFileByURL(ctx, user.ResumePath); err != nil {
			return false, err
		}
	}

	if err := s.users.DeleteByID(ctx, id); err != nil {
		return false, err
	}

	s.log.Info().Int64("user_id", id).Msg("user deleted")
	return true, nil
}

// DeleteFile removes a blob by URL and, on success, blanks whichever record
// still references it. Blob deletion and metadata cleanup are not
// transactional; the boolean reports the blob deletion only.
func (s *UserService) DeleteFile(ctx context.Context, fileURL, fileType string, interviewID *int64) (bool, error) {
	deleted, err := s.storage.DeleteFileByURL(ctx, fileURL)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	switch fileType {
	case domain.FileTypeResume:
		if err := s.users.ClearResumeURL(ctx, fileURL); err != nil {
			return deleted, err
		}
	case domain.FileTypeReport:
		if err := s.interviews.ClearReportURL(ctx, fileURL); err != nil {
			return deleted, err
		}
	}

	evt := s.log.Info().Str("file_url", fileURL).Str("file_type", fileType)
	if interviewID != nil {
		evt = evt.Int64("interview_id", *interviewID)
	}
	evt.Msg("file deleted")
	return deleted, nil
}

// --- Admin authentication --------------------------------------------------

// LoginAdmin matches the credentials exactly as stored and issues an HS256
// token carrying the admin's id, stored password value and email. No expiry,
// refresh or revocation exists at this layer.
func (s *UserService) LoginAdmin(ctx context.Context, email, password string) (string, error) {
	admin, err := s.users.FindAdminByCredentials(ctx, email, password)
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"sub":   admin.ID,
		"email": admin.Email,
		"pwd":   admin.Password,
		"role":  "admin",
		"iat":   time.Now().UTC().Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	s.log.Info().Int64("admin_id", admin.ID).Msg("admin logged in")
	return token, nil
}

// --- Listing helpers -------------------------------------------------------

// GetAllResumeURLs lists the non-empty resume URLs; consumed by batch
// cleanup tooling.
func (s *UserService) GetAllResumeURLs(ctx context.Context) ([]string, error) {
	return s.users.AllResumeURLs(ctx)
}

func (s *UserService) GetAllReportURLs(ctx context.Context) ([]string, error) {
	return s.interviews.AllReportURLs(ctx)
}
