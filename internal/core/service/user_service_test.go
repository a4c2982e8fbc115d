package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/interviewsim/interview-api/internal/core/domain"
	"github.com/interviewsim/interview-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[int64]*domain.User
	admins    []*domain.Admin
	nextID    int64
	insertErr error
	inserts   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDAndEmail(_ context.Context, id int64, email string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || u.Email != email {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	var all []*domain.User
	for id := int64(1); id < r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			all = append(all, cloneUser(u))
		}
	}
	return all, nil
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	r.inserts++
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	clone := cloneUser(user)
	clone.ID = r.nextID
	r.nextID++
	r.users[clone.ID] = cloneUser(clone)
	return clone, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	existing, ok := r.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	clone := cloneUser(user)
	if clone.Password == "" {
		clone.Password = existing.Password
	}
	r.users[user.ID] = clone
	return nil
}

func (r *stubUserRepo) DeleteByID(_ context.Context, id int64) error {
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) ClearResumeURL(_ context.Context, fileURL string) error {
	for _, u := range r.users {
		if u.ResumePath == fileURL {
			u.ResumePath = ""
		}
	}
	return nil
}

func (r *stubUserRepo) AllResumeURLs(_ context.Context) ([]string, error) {
	var urls []string
	for _, u := range r.users {
		if u.ResumePath != "" {
			urls = append(urls, u.ResumePath)
		}
	}
	return urls, nil
}

func (r *stubUserRepo) FindAdminByCredentials(_ context.Context, email, password string) (*domain.Admin, error) {
	for _, a := range r.admins {
		if a.Email == email && a.Password == password {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

type stubInterviewRepo struct {
	reportURLs []string
	cleared    []string
}

func (r *stubInterviewRepo) ClearReportURL(_ context.Context, fileURL string) error {
	r.cleared = append(r.cleared, fileURL)
	return nil
}

func (r *stubInterviewRepo) AllReportURLs(_ context.Context) ([]string, error) {
	return r.reportURLs, nil
}

// stubStorage records blob calls in order so tests can assert
// delete-before-upload sequencing.
type stubStorage struct {
	calls     []string
	uploads   int
	deleteOK  bool
	deleteErr error
	uploadErr error
}

func newStubStorage() *stubStorage {
	return &stubStorage{deleteOK: true}
}

func (s *stubStorage) UploadFile(_ context.Context, file domain.FileUpload) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.uploads++
	s.calls = append(s.calls, "upload:"+file.Name)
	return fmt.Sprintf("https://bucket/%s", file.Name), nil
}

func (s *stubStorage) DeleteFileByURL(_ context.Context, fileURL string) (bool, error) {
	if s.deleteErr != nil {
		return false, s.deleteErr
	}
	s.calls = append(s.calls, "delete:"+fileURL)
	return s.deleteOK, nil
}

func newTestService(repo *stubUserRepo, interviews *stubInterviewRepo, storage *stubStorage) *UserService {
	return NewUserService(repo, interviews, storage, "secret", zerolog.Nop())
}

func mustRegister(t *testing.T, svc *UserService, name, email, password string, resume *domain.FileUpload) domain.UserDTO {
	t.Helper()
	dto, err := svc.Register(context.Background(), registerInput(name, email, password, resume))
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return dto
}

func registerInput(name, email, password string, resume *domain.FileUpload) ports.RegisterInput {
	return ports.RegisterInput{Name: name, Email: email, Password: password, Resume: resume}
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

func TestGetUserByEmail_NotFoundIsIdentityError(t *testing.T) {
	svc := newTestService(newStubUserRepo(), &stubInterviewRepo{}, newStubStorage())

	_, err := svc.GetUserByEmail(context.Background(), "ghost@x.com")
	if !errors.Is(err, domain.ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
}

func TestGetAllUsers_EmptyIsValid(t *testing.T) {
	svc := newTestService(newStubUserRepo(), &stubInterviewRepo{}, newStubStorage())

	dtos, err := svc.GetAllUsers(context.Background())
	if err != nil {
		t.Fatalf("GetAllUsers: %v", err)
	}
	if len(dtos) != 0 {
		t.Fatalf("expected empty list, got %d", len(dtos))
	}
}

func TestGetUserByIDAndEmail_MismatchedPair(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, &stubInterviewRepo{}, newStubStorage())
	dto := mustRegister(t, svc, "Dana", "dana@x.com", "pw1", nil)

	if _, err := svc.GetUserByIDAndEmail(context.Background(), dto.ID, "other@x.com"); !errors.Is(err, domain.ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
	got, err := svc.GetUserByIDAndEmail(context.Background(), dto.ID, "dana@x.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.Email != "dana@x.com" {
		t.Fatalf("unexpected dto: %+v", got)
	}
}

// ---------------------------------------------------------------------------
// Registration
// ---------------------------------------------------------------------------

func TestRegister_HashesPasswordAndStartsWithoutResume(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, &stubInterviewRepo{}, newStubStorage())

	dto := mustRegister(t, svc, "Dana", "dana@x.com", "pw1", nil)
	if dto.ResumePath != "" {
		t.Fatalf("expected empty resume path, got %q", dto.ResumePath)
	}

	stored := repo.users[dto.ID]
	if stored.Password == "pw1" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegister_DuplicateEmailNeverInserts(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, &stubInterviewRepo{}, newStubStorage())
	mustRegister(t, svc, "Dana", "dana@x.com", "pw1", nil)

	inserts := repo.inserts
	_, err := svc.Register(context.Background(), registerInput("Dana2", "dana@x.com", "pw2", nil))
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if repo.inserts != inserts {
		t.Fatalf("insert was called on duplicate email")
	}
}

func TestRegister_WithResumeUploadsBeforeInsert(t *testing.T) {
	repo := newStubUserRepo()
	storage := newStubStorage()
	svc := newTestService(repo, &stubInterviewRepo{}, storage)

	resume := &domain.FileUpload{Name: "cv.pdf", Content: strings.NewReader("%PDF")}
	dto := mustRegister(t, svc, "Eli", "eli@x.com", "pw", resume)

	if dto.ResumePath != "https://bucket/cv.pdf" {
		t.Fatalf("unexpected resume path: %q", dto.ResumePath)
	}
	if storage.uploads != 1 {
		t.Fatalf("expected one upload, got %d", storage.uploads)
	}
}

// ---------------------------------------------------------------------------
// Updates
// ---------------------------------------------------------------------------

func TestUpdateUser_MapsDTOVerbatimAndKeepsPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, &stubInterviewRepo{}, newStubStorage())
	dto := mustRegister(t, svc, "Dana", "dana@x.com", "pw1", nil)
	hashed := repo.users[dto.ID].Password

	dto.Name = "Dana R."
	if err := svc.UpdateUser(context.Background(), dto); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	stored := repo.users[dto.ID]
	if stored.Name != "Dana R." {
		t.Fatalf("name not updated: %q", stored.Name)
	}
	if stored.Password != hashed {
		t.Fatalf("password hash was clobbered")
	}
}

func TestUpdateUserByAdmin_EmailConflict(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, &stubInterviewRepo{}, newStubStorage())
	a := mustRegister(t, svc, "A", "a@x.com", "pw", nil)
	mustRegister(t, svc, "B", "b@x.com", "pw", nil)

	err := svc.UpdateUserByAdmin(context.Background(), adminUpdate(a.ID, "A", "b@x.com", nil, nil))
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// Keeping the address the caller already owns is not a conflict.
	if err := svc.UpdateUserByAdmin(context.Background(), adminUpdate(a.ID, "A2", "a@x.com", nil, nil)); err != nil {
		t.Fatalf("same-owner email rejected: %v", err)
	}
	if repo.users[a.ID].Name != "A2" {
		t.Fatalf("name not applied")
	}
}

func TestUpdateUserByAdmin_MissingUser(t *testing.T) {
	svc := newTestService(newStubUserRepo(), &stubInterviewRepo{}, newStubStorage())

	err := svc.UpdateUserByAdmin(context.Background(), adminUpdate(99, "X", "x@x.com", nil, nil))
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateUserByAdmin_OptionalPasswordAndResume(t *testing.T) {
	repo := newStubUserRepo()
	storage := newStubStorage()
	svc := newTestService(repo, &stubInterviewRepo{}, storage)
	dto := mustRegister(t, svc, "Dana", "dana@x.com", "pw1", nil)
	oldHash := repo.users[dto.ID].Password

	// No password, no file: hash and resume untouched.
	if err := svc.UpdateUserByAdmin(context.Background(), adminUpdate(dto.ID, "Dana", "dana@x.com", nil, nil)); err != nil {
		t.Fatalf("UpdateUserByAdmin: %v", err)
	}
	if repo.users[dto.ID].Password != oldHash {
		t.Fatalf("password changed without a new one supplied")
	}

	newPw := "pw2"
	resume := &domain.FileUpload{Name: "new.pdf", Content: strings.NewReader("x")}
	if err := svc.UpdateUserByAdmin(context.Background(), adminUpdate(dto.ID, "Dana", "dana@x.com", &newPw, resume)); err != nil {
		t.Fatalf("UpdateUserByAdmin: %v", err)
	}
	stored := repo.users[dto.ID]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("pw2")); err != nil {
		t.Fatalf("new password not applied: %v", err)
	}
	if stored.ResumePath != "https://bucket/new.pdf" {
		t.Fatalf("resume path not applied: %q", stored.ResumePath)
	}
}

func adminUpdate(id int64, name, email string, password *string, resume *domain.FileUpload) ports.AdminUpdateInput {
	return ports.AdminUpdateInput{UserID: id, Name: name, Email: email, Password: password, Resume: resume}
}

// ---------------------------------------------------------------------------
// Resume lifecycle
// ---------------------------------------------------------------------------

func TestUpdateUserResume_DeletesOldBlobBeforeUpload(t *testing.T) {
	repo := newStubUserRepo()
	storage := newStubStorage()
	svc := newTestService(repo, &stubInterviewRepo{}, storage)

	old := &domain.FileUpload{Name: "old.pdf", Content: strings.NewReader("x")}
	dto := mustRegister(t, svc, "R", "r@x.com", "pw", old)
	if dto.ResumePath != "https://bucket/old.pdf" {
		t.Fatalf("setup: unexpected resume path %q", dto.ResumePath)
	}
	storage.calls = nil

	newFile := &domain.FileUpload{Name: "new.pdf", Content: strings.NewReader("y")}
	if err := svc.UpdateUserResume(context.Background(), dto.ID, newFile); err != nil {
		t.Fatalf("UpdateUserResume: %v", err)
	}

	want := []string{"delete:https://bucket/old.pdf", "upload:new.pdf"}
	if len(storage.calls) != len(want) || storage.calls[0] != want[0] || storage.calls[1] != want[1] {
		t.Fatalf("unexpected storage call sequence: %v", storage.calls)
	}
	if repo.users[dto.ID].ResumePath != "https://bucket/new.pdf" {
		t.Fatalf("persisted resume path: %q", repo.users[dto.ID].ResumePath)
	}
}

func TestUpdateUserResume_MissingUser(t *testing.T) {
	svc := newTestService(newStubUserRepo(), &stubInterviewRepo{}, newStubStorage())

	file := &domain.FileUpload{Name: "cv.pdf", Content: strings.NewReader("x")}
	if err := svc.UpdateUserResume(context.Background(), 7, file); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Deletion
// ---------------------------------------------------------------------------

func TestDeleteUser_ReleasesResumeBlob(t *testing.T) {
	repo := newStubUserRepo()
	storage := newStubStorage()
	svc := newTestService(repo, &stubInterviewRepo{}, storage)

	resume := &domain.FileUpload{Name: "cv.pdf", Content: strings.NewReader("x")}
	dto := mustRegister(t, svc, "D", "d@x.com", "pw", resume)
	storage.calls = nil

	deleted, err := svc.DeleteUser(context.Background(), dto.ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteUser = (%v, %v)", deleted, err)
	}
	if len(storage.calls) != 1 || storage.calls[0] != "delete:https://bucket/cv.pdf" {
		t.Fatalf("expected one delete for the resume URL, got %v", storage.calls)
	}
	if _, err := svc.GetUserByID(context.Background(), dto.ID); !errors.Is(err, domain.ErrIdentityNotFound) {
		t.Fatalf("expected lookup to fail after delete, got %v", err)
	}
}

func TestDeleteUser_MissingIsFalseNotError(t *testing.T) {
	svc := newTestService(newStubUserRepo(), &stubInterviewRepo{}, newStubStorage())

	deleted, err := svc.DeleteUser(context.Background(), 404)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted {
		t.Fatalf("expected false for missing user")
	}
}

func TestDeleteFile_ClearsMatchingReferences(t *testing.T) {
	repo := newStubUserRepo()
	interviews := &stubInterviewRepo{}
	storage := newStubStorage()
	svc := newTestService(repo, interviews, storage)

	resume := &domain.FileUpload{Name: "cv.pdf", Content: strings.NewReader("x")}
	dto := mustRegister(t, svc, "D", "d@x.com", "pw", resume)

	ok, err := svc.DeleteFile(context.Background(), "https://bucket/cv.pdf", domain.FileTypeResume, nil)
	if err != nil || !ok {
		t.Fatalf("DeleteFile = (%v, %v)", ok, err)
	}
	if repo.users[dto.ID].ResumePath != "" {
		t.Fatalf("resume reference not cleared")
	}

	id := int64(3)
	ok, err = svc.DeleteFile(context.Background(), "https://bucket/report.pdf", domain.FileTypeReport, &id)
	if err != nil || !ok {
		t.Fatalf("DeleteFile = (%v, %v)", ok, err)
	}
	if len(interviews.cleared) != 1 || interviews.cleared[0] != "https://bucket/report.pdf" {
		t.Fatalf("report reference not cleared: %v", interviews.cleared)
	}
}

func TestDeleteFile_SurfacesStorageBoolean(t *testing.T) {
	repo := newStubUserRepo()
	storage := newStubStorage()
	storage.deleteOK = false
	svc := newTestService(repo, &stubInterviewRepo{}, storage)

	ok, err := svc.DeleteFile(context.Background(), "https://elsewhere/f.pdf", domain.FileTypeResume, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected false when the blob delete reports failure")
	}
}

// ---------------------------------------------------------------------------
// Admin authentication
// ---------------------------------------------------------------------------

func TestLoginAdmin_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	repo.admins = append(repo.admins, &domain.Admin{ID: 1, Email: "admin@x.com", Password: "stored"})
	svc := newTestService(repo, &stubInterviewRepo{}, newStubStorage())

	token, err := svc.LoginAdmin(context.Background(), "admin@x.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if token != "" {
		t.Fatalf("token issued on failed login")
	}
}

func TestLoginAdmin_TokenEmbedsIdentity(t *testing.T) {
	repo := newStubUserRepo()
	repo.admins = append(repo.admins, &domain.Admin{ID: 7, Email: "admin@x.com", Password: "stored"})
	svc := newTestService(repo, &stubInterviewRepo{}, newStubStorage())

	token, err := svc.LoginAdmin(context.Background(), "admin@x.com", "stored")
	if err != nil {
		t.Fatalf("LoginAdmin: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["email"] != "admin@x.com" {
		t.Fatalf("email claim missing: %v", claims)
	}
	if sub, _ := claims["sub"].(float64); int64(sub) != 7 {
		t.Fatalf("sub claim missing: %v", claims)
	}
	if claims["role"] != "admin" {
		t.Fatalf("role claim missing: %v", claims)
	}
}

// ---------------------------------------------------------------------------
// Listing helpers
// ---------------------------------------------------------------------------

func TestListingHelpers_PassThrough(t *testing.T) {
	repo := newStubUserRepo()
	interviews := &stubInterviewRepo{reportURLs: []string{"https://bucket/r1.pdf"}}
	svc := newTestService(repo, interviews, newStubStorage())

	resume := &domain.FileUpload{Name: "cv.pdf", Content: strings.NewReader("x")}
	mustRegister(t, svc, "D", "d@x.com", "pw", resume)

	resumes, err := svc.GetAllResumeURLs(context.Background())
	if err != nil || len(resumes) != 1 {
		t.Fatalf("GetAllResumeURLs = (%v, %v)", resumes, err)
	}
	reports, err := svc.GetAllReportURLs(context.Background())
	if err != nil || len(reports) != 1 || reports[0] != "https://bucket/r1.pdf" {
		t.Fatalf("GetAllReportURLs = (%v, %v)", reports, err)
	}
}
