package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/praxis-events/registration-api/internal/models"
	"github.com/praxis-events/registration-api/internal/service"
	"github.com/praxis-events/registration-api/pkg/response"
)

type exportService interface {
	Export(ctx context.Context, format string, status models.RegistrationStatus) (*service.ExportResult, error)
}

type statsService interface {
	StatusCounts(ctx context.Context) ([]models.StatusCount, error)
}

// ExportHandler serves admin exports and the status-count summary.
type ExportHandler struct {
	exports exportService
	stats   statsService
}

// NewExportHandler constructs the handler.
func NewExportHandler(exports exportService, stats statsService) *ExportHandler {
	return &ExportHandler{exports: exports, stats: stats}
}

// Export godoc
// @Summary Export registrations as CSV or PDF
// @Tags Registrations
// @Produce octet-stream
// @Param format query string false "csv or pdf"
// @Param status query string false "Status filter"
// @Success 200 {file} binary
// @Router /registrations/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	status := models.RegistrationStatus(strings.TrimSpace(c.Query("status")))
	result, err := h.exports.Export(c.Request.Context(), c.Query("format"), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

// Stats godoc
// @Summary Per-status registration counts
// @Tags Registrations
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /registrations/stats [get]
func (h *ExportHandler) Stats(c *gin.Context) {
	counts, err := h.stats.StatusCounts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, counts, nil)
}
