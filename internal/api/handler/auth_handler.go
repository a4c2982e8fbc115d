package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/interviewsim/interview-api/internal/api/metrics"
	"github.com/interviewsim/interview-api/internal/core/domain"
	"github.com/interviewsim/interview-api/internal/core/ports"
)

// AuthHandler handles registration and admin login.
type AuthHandler struct {
	users ports.UserService
}

func NewAuthHandler(users ports.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Register creates a new account from a multipart form.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       mpfd
// @Produce      json
// @Param        name      formData  string  true   "Display name"
// @Param        email     formData  string  true   "Email address"
// @Param        password  formData  string  true   "Password (min 6 characters)"
// @Param        resume    formData  file    false  "Resume file"
// @Success      201  {object}  userResponse
// @Failure      400  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&form); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	resume, closer, err := optionalFormFile(c, "resume")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid resume upload"})
	}
	if closer != nil {
		defer closer.Close()
	}

	dto, err := h.users.Register(c.Request().Context(), ports.RegisterInput{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Resume:   resume,
	})
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.WithLabelValues(strconv.FormatBool(resume != nil)).Inc()
	if resume != nil {
		metrics.ResumeUploadsTotal.Inc()
	}
	return c.JSON(http.StatusCreated, toUserResponse(dto))
}

// AdminLogin authenticates the admin credential and returns a signed token.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      adminLoginRequest  true  "Admin credentials"
// @Success      200   {object}  adminLoginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /v1/auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	token, err := h.users.LoginAdmin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.AdminLoginsTotal.WithLabelValues("denied").Inc()
		return err
	}

	metrics.AdminLoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, adminLoginResponse{Token: token})
}

// optionalFormFile extracts an optional upload from the multipart form. A
// missing file is not an error; the caller closes the returned closer when
// one is present.
func optionalFormFile(c echo.Context, field string) (*domain.FileUpload, io.Closer, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		// Absent file or non-multipart body; both mean "no upload".
		return nil, nil, nil
	}
	src, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &domain.FileUpload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     src,
	}, src, nil
}

func toUserResponse(dto domain.UserDTO) userResponse {
	return userResponse{
		ID:         dto.ID,
		Name:       dto.Name,
		Email:      dto.Email,
		ResumePath: dto.ResumePath,
	}
}
