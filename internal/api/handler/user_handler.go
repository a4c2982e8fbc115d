package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/interviewsim/interview-api/internal/api/metrics"
	"github.com/interviewsim/interview-api/internal/core/domain"
	"github.com/interviewsim/interview-api/internal/core/ports"
)

// UserHandler handles account queries and updates.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /v1/users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	dtos, err := h.users.GetAllUsers(c.Request().Context())
	if err != nil {
		return err
	}
	resp := make([]userResponse, 0, len(dtos))
	for _, dto := range dtos {
		resp = append(resp, toUserResponse(dto))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /v1/users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id  path      int  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	dto, err := h.users.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(dto))
}

// Find handles GET /v1/users/find?email=&id=. With only an email it looks up
// by email; with both it requires the pair to match.
//
// @Summary      Find a user by email, or by id+email pair
// @Tags         users
// @Produce      json
// @Param        email  query     string  true   "Email address"
// @Param        id     query     int     false  "User id; when set, both must match"
// @Success      200    {object}  userResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Router       /v1/users/find [get]
func (h *UserHandler) Find(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "email is required"})
	}

	ctx := c.Request().Context()
	if rawID := c.QueryParam("id"); rawID != "" {
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
		}
		dto, err := h.users.GetUserByIDAndEmail(ctx, id, email)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toUserResponse(dto))
	}

	dto, err := h.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(dto))
}

// Update handles PUT /v1/users/:id — the self-update path. The body is
// persisted verbatim; identity verification happened upstream.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateUserRequest  true  "Profile fields"
// @Success      204   "updated"
// @Failure      400   {object}  errorResponse
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	err = h.users.UpdateUser(c.Request().Context(), domain.UserDTO{
		ID:         id,
		Name:       req.Name,
		Email:      req.Email,
		ResumePath: req.ResumePath,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateResume handles PUT /v1/users/:id/resume (multipart, file field
// "resume").
//
// @Summary      Replace a user's resume
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Param        id      path      int   true  "User id"
// @Param        resume  formData  file  true  "New resume file"
// @Success      204  "updated"
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id}/resume [put]
func (h *UserHandler) UpdateResume(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	resume, closer, err := optionalFormFile(c, "resume")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid resume upload"})
	}
	if closer != nil {
		defer closer.Close()
	}

	if err := h.users.UpdateUserResume(c.Request().Context(), id, resume); err != nil {
		return err
	}
	if resume != nil {
		metrics.ResumeUploadsTotal.Inc()
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/users/:id. Deleting a missing user reports
// deleted=false rather than an error.
//
// @Summary      Delete a user and release their resume blob
// @Tags         users
// @Produce      json
// @Param        id  path      int  true  "User id"
// @Success      200  {object}  deleteResponse
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	deleted, err := h.users.DeleteUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	result := "missing"
	if deleted {
		result = "deleted"
	}
	metrics.UsersDeletedTotal.WithLabelValues(result).Inc()
	return c.JSON(http.StatusOK, deleteResponse{Deleted: deleted})
}

// AdminUpdate handles PUT /v1/admin/users/:id (multipart, optional password
// and resume).
//
// @Summary      Update any user as admin
// @Tags         admin
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      int     true   "User id"
// @Param        name      formData  string  true   "Display name"
// @Param        email     formData  string  true   "Email address"
// @Param        password  formData  string  false  "New password"
// @Param        resume    formData  file    false  "New resume file"
// @Success      204  "updated"
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/admin/users/{id} [put]
func (h *UserHandler) AdminUpdate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var form adminUpdateForm
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

	input := ports.AdminUpdateInput{
		UserID: id,
		Name:   form.Name,
		Email:  form.Email,
		Resume: resume,
	}
	if form.Password != "" {
		input.Password = &form.Password
	}

	if err := h.users.UpdateUserByAdmin(c.Request().Context(), input); err != nil {
		return err
	}
	if resume != nil {
		metrics.ResumeUploadsTotal.Inc()
	}
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	return id, nil
}
