package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/praxis-events/registration-api/internal/models"
)

// RegistrationRepository handles registration persistence.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository constructs the repository.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

const registrationColumns = `id, status, member_flag, interest_flag, title, first_name, last_name,
       company, po_box, city, telephone, email, practice_track, payment_method, consent,
       payment_file_name, payment_file_path, admin_notes, created_at`

// Create stores a new registration row. The caller assigns the id before
// the file is written so the row and the file share the same key.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO registrations
	(id, status, member_flag, interest_flag, title, first_name, last_name,
	 company, po_box, city, telephone, email, practice_track, payment_method, consent,
	 payment_file_name, payment_file_path, admin_notes, created_at)
	VALUES (:id, :status, :member_flag, :interest_flag, :title, :first_name, :last_name,
	 :company, :po_box, :city, :telephone, :email, :practice_track, :payment_method, :consent,
	 :payment_file_name, :payment_file_path, :admin_notes, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, reg); err != nil {
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

// GetByID retrieves one registration row.
func (r *RegistrationRepository) GetByID(ctx context.Context, id string) (*models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	var reg models.Registration
	if err := r.db.GetContext(ctx, &reg, query, id); err != nil {
		return nil, err
	}
	return &reg, nil
}

// List returns registrations newest-created first, optionally filtered by
// status.
func (r *RegistrationRepository) List(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, error) {
	builder := strings.Builder{}
	builder.WriteString(`SELECT ` + registrationColumns + ` FROM registrations`)
	args := make([]interface{}, 0, 1)

	if filter.Status != "" {
		args = append(args, filter.Status)
		builder.WriteString(" WHERE status = $1")
	}
	builder.WriteString(" ORDER BY created_at DESC")

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	builder.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset))

	records := make([]models.Registration, 0)
	if err := r.db.SelectContext(ctx, &records, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return records, nil
}

// UpdateStatusAndNotes persists the workflow transition. Only status and
// admin notes are mutable after creation.
func (r *RegistrationRepository) UpdateStatusAndNotes(ctx context.Context, id string, status models.RegistrationStatus, notes string) error {
	const query = `UPDATE registrations SET status = $2, admin_notes = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, notes)
	if err != nil {
		return fmt.Errorf("update registration status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check registration update rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountByStatus aggregates row counts per workflow status.
func (r *RegistrationRepository) CountByStatus(ctx context.Context) ([]models.StatusCount, error) {
	const query = `SELECT status, COUNT(*) AS count FROM registrations GROUP BY status`
	counts := make([]models.StatusCount, 0)
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	return counts, nil
}
