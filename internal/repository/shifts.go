package repository

import (
	"context"
	"time"

	"github.com/gastrohub-dev/gastrohub/backend/internal/domain"
)

func (r *Repository) CreateShift(shift *domain.Shift) error {
	query := `
		INSERT INTO shifts (business_id, staff_id, start_time, end_time, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{shift.BusinessID, shift.StaffID, shift.StartTime, shift.EndTime, shift.Notes}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	query := `
		SELECT s.business_id, s.staff_id, s.start_time, s.end_time, s.notes, s.created_at, s.version, sm.full_name
		FROM shifts s
		JOIN staff_members sm ON sm.id = s.staff_id
		WHERE s.id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	shift := &domain.Shift{
		ID: id,
	}

	dst := []any{&shift.BusinessID, &shift.StaffID, &shift.StartTime, &shift.EndTime, &shift.Notes, &shift.CreatedAt, &shift.Version, &shift.StaffName}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return shift, nil
}

// GetOverlappingShifts implements the scheduling.ShiftRepository port with
// the reduced half-open interval test: an existing row collides exactly
// when start_time < $end AND end_time > $start.
func (r *Repository) GetOverlappingShifts(businessID int64, staffID int64, start time.Time, end time.Time, excludeShiftID *int64) ([]*domain.Shift, error) {
	query := `
		SELECT s.id, s.start_time, s.end_time, s.notes, s.created_at, s.version, sm.full_name
		FROM shifts s
		JOIN staff_members sm ON sm.id = s.staff_id
		WHERE s.business_id = $1
		  AND s.staff_id = $2
		  AND s.start_time < $3
		  AND s.end_time > $4
		  AND ($5::bigint IS NULL OR s.id <> $5)
		ORDER BY s.start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, businessID, staffID, end, start, excludeShiftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := []*domain.Shift{}
	for rows.Next() {
		shift := &domain.Shift{BusinessID: businessID, StaffID: staffID}
		dst := []any{&shift.ID, &shift.StartTime, &shift.EndTime, &shift.Notes, &shift.CreatedAt, &shift.Version, &shift.StaffName}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) GetShiftsByBusiness(businessID int64, staffID *int64) ([]*domain.Shift, error) {
	query := `
		SELECT s.id, s.staff_id, s.start_time, s.end_time, s.notes, s.created_at, s.version, sm.full_name
		FROM shifts s
		JOIN staff_members sm ON sm.id = s.staff_id
		WHERE s.business_id = $1
		  AND ($2::bigint IS NULL OR s.staff_id = $2)
		ORDER BY s.start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, businessID, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := []*domain.Shift{}
	for rows.Next() {
		shift := &domain.Shift{BusinessID: businessID}
		dst := []any{&shift.ID, &shift.StaffID, &shift.StartTime, &shift.EndTime, &shift.Notes, &shift.CreatedAt, &shift.Version, &shift.StaffName}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) UpdateShift(shift *domain.Shift) error {
	query := `
		UPDATE shifts
		SET
			start_time = $1,
			end_time = $2,
			notes = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{shift.StartTime, shift.EndTime, shift.Notes, shift.ID, shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(id int64) error {
	query := `
		DELETE FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
