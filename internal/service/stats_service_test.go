package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/praxis-events/registration-api/internal/models"
	appErrors "github.com/praxis-events/registration-api/pkg/errors"
)

type statsCounterStub struct {
	counts []models.StatusCount
	err    error
	calls  int
}

func (s *statsCounterStub) CountByStatus(_ context.Context) ([]models.StatusCount, error) {
	s.calls++
	return s.counts, s.err
}

func TestStatusCountsZeroFillsAllStatuses(t *testing.T) {
	repo := &statsCounterStub{counts: []models.StatusCount{
		{Status: models.StatusPendingVerification, Count: 4},
		{Status: models.StatusPaymentVerified, Count: 2},
	}}
	svc := NewStatsService(repo, nil, 0, true, nil)

	counts, err := svc.StatusCounts(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, len(models.AllowedStatuses))

	byStatus := make(map[models.RegistrationStatus]int64, len(counts))
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	require.Equal(t, int64(4), byStatus[models.StatusPendingVerification])
	require.Equal(t, int64(2), byStatus[models.StatusPaymentVerified])
	require.Equal(t, int64(0), byStatus[models.StatusPaymentRejected])
	require.Equal(t, int64(0), byStatus[models.StatusCancelled])
}

func TestStatusCountsRepositoryError(t *testing.T) {
	repo := &statsCounterStub{err: context.DeadlineExceeded}
	svc := NewStatsService(repo, nil, 0, false, nil)

	_, err := svc.StatusCounts(context.Background())
	require.Error(t, err)
	require.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestStatusCountsHitsRepositoryWithoutCache(t *testing.T) {
	repo := &statsCounterStub{}
	svc := NewStatsService(repo, nil, 0, true, nil)

	_, err := svc.StatusCounts(context.Background())
	require.NoError(t, err)
	_, err = svc.StatusCounts(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, repo.calls)
}
