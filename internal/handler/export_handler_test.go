package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/praxis-events/registration-api/internal/models"
	"github.com/praxis-events/registration-api/internal/service"
	appErrors "github.com/praxis-events/registration-api/pkg/errors"
)

type exportServiceStub struct {
	format string
	status models.RegistrationStatus
	result *service.ExportResult
	err    error
}

func (s *exportServiceStub) Export(_ context.Context, format string, status models.RegistrationStatus) (*service.ExportResult, error) {
	s.format = format
	s.status = status
	return s.result, s.err
}

type statsServiceStub struct {
	counts []models.StatusCount
	err    error
}

func (s *statsServiceStub) StatusCounts(_ context.Context) ([]models.StatusCount, error) {
	return s.counts, s.err
}

func TestExportStreamsCSVAttachment(t *testing.T) {
	exports := &exportServiceStub{result: &service.ExportResult{
		Content:     []byte("Reference,Status\nreg-1,Payment Verified\n"),
		Filename:    "registrations_20260314.csv",
		ContentType: "text/csv",
	}}
	h := NewExportHandler(exports, &statsServiceStub{})

	req := httptest.NewRequest(http.MethodGet, "/registrations/export?format=csv&status=Payment%20Verified", nil)
	c, w := newTestContext(t, req)

	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "csv", exports.format)
	require.Equal(t, models.StatusPaymentVerified, exports.status)
	require.Equal(t, `attachment; filename="registrations_20260314.csv"`, w.Header().Get("Content-Disposition"))
	require.Contains(t, w.Body.String(), "reg-1")
}

func TestExportUnknownFormatRejected(t *testing.T) {
	exports := &exportServiceStub{err: appErrors.Clone(appErrors.ErrValidation, "unsupported export format")}
	h := NewExportHandler(exports, &statsServiceStub{})

	req := httptest.NewRequest(http.MethodGet, "/registrations/export?format=xlsx", nil)
	c, w := newTestContext(t, req)

	h.Export(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "unsupported export format")
}

func TestStatsReturnsCounts(t *testing.T) {
	stats := &statsServiceStub{counts: []models.StatusCount{
		{Status: models.StatusPendingVerification, Count: 4},
	}}
	h := NewExportHandler(&exportServiceStub{}, stats)

	req := httptest.NewRequest(http.MethodGet, "/registrations/stats", nil)
	c, w := newTestContext(t, req)

	h.Stats(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Pending Verification")
	require.Contains(t, w.Body.String(), `"count":4`)
}
