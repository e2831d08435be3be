package repository

import (
	"context"
	"time"

	"github.com/gastrohub-dev/gastrohub/backend/internal/domain"
)

func (r *Repository) CreateAbsence(absence *domain.Absence) error {
	query := `
		INSERT INTO absences (business_id, staff_id, start_date, end_date, status, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{absence.BusinessID, absence.StaffID, absence.StartDate, absence.EndDate, absence.Status, absence.Reason}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&absence.ID, &absence.CreatedAt, &absence.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAbsenceByID(id int64) (*domain.Absence, error) {
	query := `
		SELECT business_id, staff_id, start_date, end_date, status, reason, created_at, version
		FROM absences WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	absence := &domain.Absence{
		ID: id,
	}

	dst := []any{&absence.BusinessID, &absence.StaffID, &absence.StartDate, &absence.EndDate, &absence.Status, &absence.Reason, &absence.CreatedAt, &absence.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return absence, nil
}

// GetApprovedAbsencesOnDate implements the scheduling.AbsenceRepository
// port. The date bounds are inclusive on both ends.
func (r *Repository) GetApprovedAbsencesOnDate(businessID int64, staffID int64, date time.Time) ([]*domain.Absence, error) {
	query := `
		SELECT id, start_date, end_date, status, reason, created_at, version
		FROM absences
		WHERE business_id = $1
		  AND staff_id = $2
		  AND status = $3
		  AND start_date <= $4
		  AND end_date >= $4
		ORDER BY start_date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, businessID, staffID, domain.AbsenceStatusApproved, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	absences := []*domain.Absence{}
	for rows.Next() {
		absence := &domain.Absence{BusinessID: businessID, StaffID: staffID}
		dst := []any{&absence.ID, &absence.StartDate, &absence.EndDate, &absence.Status, &absence.Reason, &absence.CreatedAt, &absence.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		absences = append(absences, absence)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return absences, nil
}

func (r *Repository) GetAbsencesByBusiness(businessID int64) ([]*domain.Absence, error) {
	query := `
		SELECT id, staff_id, start_date, end_date, status, reason, created_at, version
		FROM absences WHERE business_id = $1
		ORDER BY start_date DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	absences := []*domain.Absence{}
	for rows.Next() {
		absence := &domain.Absence{BusinessID: businessID}
		dst := []any{&absence.ID, &absence.StaffID, &absence.StartDate, &absence.EndDate, &absence.Status, &absence.Reason, &absence.CreatedAt, &absence.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		absences = append(absences, absence)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return absences, nil
}

func (r *Repository) UpdateAbsenceStatus(absence *domain.Absence) error {
	query := `
		UPDATE absences
		SET
			status = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, absence.Status, absence.ID, absence.Version).Scan(&absence.Version); err != nil {
		return err
	}

	return nil
}
