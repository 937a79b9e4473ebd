package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/praxis-events/registration-api/internal/models"
)

func newRegistrationRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func registrationRows(reg models.Registration) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "status", "member_flag", "interest_flag", "title", "first_name", "last_name",
		"company", "po_box", "city", "telephone", "email", "practice_track", "payment_method", "consent",
		"payment_file_name", "payment_file_path", "admin_notes", "created_at",
	}).AddRow(
		reg.ID, reg.Status, reg.MemberFlag, reg.InterestFlag, reg.Title, reg.FirstName, reg.LastName,
		reg.Company, reg.POBox, reg.City, reg.Telephone, reg.Email, reg.PracticeTrack, reg.PaymentMethod, reg.Consent,
		reg.PaymentFileName, reg.PaymentFilePath, reg.AdminNotes, reg.CreatedAt,
	)
}

func TestRegistrationRepositoryCreateAndGet(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()

	repo := NewRegistrationRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO registrations")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	reg := &models.Registration{
		ID:              "reg-1",
		Status:          models.StatusPendingVerification,
		MemberFlag:      "yes",
		InterestFlag:    "yes",
		Title:           "Mr.",
		FirstName:       "Ann",
		LastName:        "Lee",
		Telephone:       "555-0100",
		Email:           "ann@example.com",
		PracticeTrack:   "Civil",
		PaymentMethod:   "Bank Transfer",
		Consent:         "on",
		PaymentFileName: "receipt.pdf",
		PaymentFilePath: "reg-1.pdf",
	}
	require.NoError(t, repo.Create(context.Background(), reg))
	require.False(t, reg.CreatedAt.IsZero())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, status, member_flag")).
		WithArgs(reg.ID).
		WillReturnRows(registrationRows(*reg))

	found, err := repo.GetByID(context.Background(), reg.ID)
	require.NoError(t, err)
	require.Equal(t, reg.ID, found.ID)
	require.Equal(t, models.StatusPendingVerification, found.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryGetMissing(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()

	repo := NewRegistrationRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, status, member_flag")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRegistrationRepositoryListStatusFilter(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()

	repo := NewRegistrationRepository(db)
	reg := models.Registration{
		ID:        "reg-2",
		Status:    models.StatusPaymentVerified,
		FirstName: "Ben",
		LastName:  "Okoye",
		CreatedAt: time.Now(),
	}
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, status, member_flag")).
		WithArgs(models.StatusPaymentVerified).
		WillReturnRows(registrationRows(reg))

	records, err := repo.List(context.Background(), models.RegistrationFilter{Status: models.StatusPaymentVerified})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "reg-2", records[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryListEmpty(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()

	repo := NewRegistrationRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, status, member_flag")).
		WithArgs(models.StatusPaymentVerified).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	records, err := repo.List(context.Background(), models.RegistrationFilter{Status: models.StatusPaymentVerified})
	require.NoError(t, err)
	require.NotNil(t, records)
	require.Empty(t, records)
}

func TestRegistrationRepositoryUpdateStatusAndNotes(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()

	repo := NewRegistrationRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE registrations SET status = $2, admin_notes = $3")).
		WithArgs("reg-1", models.StatusPaymentVerified, "checked").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatusAndNotes(context.Background(), "reg-1", models.StatusPaymentVerified, "checked"))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE registrations SET status = $2, admin_notes = $3")).
		WithArgs("missing", models.StatusPaymentVerified, "").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.UpdateStatusAndNotes(context.Background(), "missing", models.StatusPaymentVerified, "")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRegistrationRepositoryCountByStatus(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()

	repo := NewRegistrationRepository(db)
	rows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow(models.StatusPendingVerification, 3).
		AddRow(models.StatusPaymentVerified, 1)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*)")).
		WillReturnRows(rows)

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 2)
	require.Equal(t, int64(3), counts[0].Count)
}
