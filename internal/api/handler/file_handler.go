package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/interviewsim/interview-api/internal/api/metrics"
	"github.com/interviewsim/interview-api/internal/core/domain"
	"github.com/interviewsim/interview-api/internal/core/ports"
)

// FileHandler exposes the blob cleanup operations used by admin tooling.
type FileHandler struct {
	users ports.UserService
}

func NewFileHandler(users ports.UserService) *FileHandler {
	return &FileHandler{users: users}
}

// Delete handles DELETE /v1/admin/files?url=&type=&interview_id=.
//
// @Summary      Delete a stored file and clear records referencing it
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        url           query     string  true   "Blob URL"
// @Param        type          query     string  true   "File type"  Enums(resume, report)
// @Param        interview_id  query     int     false  "Interview id, for report deletions"
// @Success      200  {object}  deleteResponse
// @Failure      400  {object}  errorResponse
// @Router       /v1/admin/files [delete]
func (h *FileHandler) Delete(c echo.Context) error {
	fileURL := c.QueryParam("url")
	fileType := c.QueryParam("type")
	if fileURL == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "url is required"})
	}
	if fileType != domain.FileTypeResume && fileType != domain.FileTypeReport {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "type must be resume or report"})
	}

	var interviewID *int64
	if raw := c.QueryParam("interview_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid interview_id"})
		}
		interviewID = &id
	}

	deleted, err := h.users.DeleteFile(c.Request().Context(), fileURL, fileType, interviewID)
	if err != nil {
		return err
	}

	result := "skipped"
	if deleted {
		result = "deleted"
	}
	metrics.FileDeletesTotal.WithLabelValues(fileType, result).Inc()
	return c.JSON(http.StatusOK, deleteResponse{Deleted: deleted})
}

// ResumeURLs handles GET /v1/admin/resume-urls.
//
// @Summary      List every stored resume URL
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  urlListResponse
// @Router       /v1/admin/resume-urls [get]
func (h *FileHandler) ResumeURLs(c echo.Context) error {
	urls, err := h.users.GetAllResumeURLs(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, urlListResponse{URLs: urls})
}

// ReportURLs handles GET /v1/admin/report-urls.
//
// @Summary      List every stored report URL
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  urlListResponse
// @Router       /v1/admin/report-urls [get]
func (h *FileHandler) ReportURLs(c echo.Context) error {
	urls, err := h.users.GetAllReportURLs(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, urlListResponse{URLs: urls})
}
