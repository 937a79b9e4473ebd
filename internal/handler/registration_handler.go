package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/praxis-events/registration-api/internal/dto"
	"github.com/praxis-events/registration-api/internal/models"
	"github.com/praxis-events/registration-api/internal/service"
	appErrors "github.com/praxis-events/registration-api/pkg/errors"
	"github.com/praxis-events/registration-api/pkg/response"
)

type registrationService interface {
	Submit(ctx context.Context, req dto.CreateRegistrationRequest, upload service.RegistrationUpload) (*models.Registration, error)
	Transition(ctx context.Context, id, target, notes string) (*models.Registration, error)
	List(ctx context.Context, filter models.RegistrationFilter) ([]dto.RegistrationSummary, error)
	Get(ctx context.Context, id string) (*models.Registration, error)
	DownloadProof(ctx context.Context, id string) (*service.ProofDownload, error)
}

// RegistrationHandler manages the public intake and admin review endpoints.
type RegistrationHandler struct {
	service registrationService
}

// NewRegistrationHandler constructs the handler.
func NewRegistrationHandler(service registrationService) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

// Submit godoc
// @Summary Submit a registration with payment proof
// @Tags Registrations
// @Accept multipart/form-data
// @Produce json
// @Param member_flag formData string true "Membership flag"
// @Param interest_flag formData string true "Interest flag"
// @Param title formData string true "Title"
// @Param first_name formData string true "First name"
// @Param last_name formData string true "Last name"
// @Param company formData string false "Company"
// @Param po_box formData string false "P.O. Box"
// @Param city formData string false "City"
// @Param telephone formData string true "Telephone"
// @Param email formData string true "Email"
// @Param practice_track formData string true "Practice track"
// @Param payment_method formData string true "Payment method"
// @Param consent formData string true "Consent flag"
// @Param payment_proof formData file true "Payment proof"
// @Success 201 {object} response.Envelope
// @Router /registrations [post]
func (h *RegistrationHandler) Submit(c *gin.Context) {
	var req dto.CreateRegistrationRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Please complete all required fields."))
		return
	}

	fileHeader, err := c.FormFile("payment_proof")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Payment proof is required."))
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file"))
		return
	}
	defer src.Close()

	reader, ok := src.(io.ReadSeeker)
	if !ok {
		buf, readErr := io.ReadAll(src)
		if readErr != nil {
			response.Error(c, appErrors.Wrap(readErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to buffer file"))
			return
		}
		reader = bytes.NewReader(buf)
	}

	upload := service.RegistrationUpload{
		Filename:    fileHeader.Filename,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     reader,
	}
	reg, err := h.service.Submit(c.Request.Context(), req, upload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.IntakeResponse{RegistrationID: reg.ID})
}

// List godoc
// @Summary List registrations
// @Tags Registrations
// @Produce json
// @Param status query string false "Status filter"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /registrations [get]
func (h *RegistrationHandler) List(c *gin.Context) {
	filter := models.RegistrationFilter{}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		filter.Status = models.RegistrationStatus(status)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	filter.Limit = limit
	filter.Offset = (page - 1) * limit

	summaries, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	pagination := &models.Pagination{Page: page, PageSize: limit, Count: len(summaries)}
	response.JSON(c, http.StatusOK, summaries, pagination)
}

// Get godoc
// @Summary Get a registration
// @Tags Registrations
// @Produce json
// @Param id path string true "Registration ID"
// @Success 200 {object} response.Envelope
// @Router /registrations/{id} [get]
func (h *RegistrationHandler) Get(c *gin.Context) {
	reg, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reg, nil)
}

// UpdateStatus godoc
// @Summary Transition a registration to a new status
// @Tags Registrations
// @Accept json
// @Produce json
// @Param id path string true "Registration ID"
// @Param payload body dto.UpdateStatusRequest true "Target status and notes"
// @Success 200 {object} response.Envelope
// @Router /registrations/{id}/status [patch]
func (h *RegistrationHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.ErrInvalidStatus)
		return
	}
	reg, err := h.service.Transition(c.Request.Context(), c.Param("id"), req.Status, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reg, nil)
}

// DownloadProof godoc
// @Summary Stream the uploaded payment proof
// @Tags Registrations
// @Produce octet-stream
// @Param id path string true "Registration ID"
// @Success 200 {file} binary
// @Router /registrations/{id}/file [get]
func (h *RegistrationHandler) DownloadProof(c *gin.Context) {
	result, err := h.service.DownloadProof(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer result.File.Close() //nolint:errcheck
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, result.SizeBytes, result.ContentType, result.File, nil)
}
