package repository

import (
	"context"
	"time"

	"github.com/gastrohub-dev/gastrohub/backend/internal/domain"
)

func (r *Repository) CreateStaffMember(staff *domain.StaffMember) error {
	query := `
		INSERT INTO staff_members (business_id, full_name, email, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{staff.BusinessID, staff.FullName, staff.Email, staff.Role}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&staff.ID, &staff.IsActive, &staff.CreatedAt, &staff.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetStaffMemberByID(id int64) (*domain.StaffMember, error) {
	query := `
		SELECT business_id, full_name, email, role, is_active, created_at, version
		FROM staff_members WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	staff := &domain.StaffMember{
		ID: id,
	}

	dst := []any{&staff.BusinessID, &staff.FullName, &staff.Email, &staff.Role, &staff.IsActive, &staff.CreatedAt, &staff.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return staff, nil
}

func (r *Repository) GetStaffMembersByBusiness(businessID int64) ([]*domain.StaffMember, error) {
	query := `
		SELECT id, full_name, email, role, is_active, created_at, version
		FROM staff_members WHERE business_id = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []*domain.StaffMember{}
	for rows.Next() {
		staff := &domain.StaffMember{BusinessID: businessID}
		dst := []any{&staff.ID, &staff.FullName, &staff.Email, &staff.Role, &staff.IsActive, &staff.CreatedAt, &staff.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		members = append(members, staff)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}

func (r *Repository) UpdateStaffMember(staff *domain.StaffMember) error {
	query := `
		UPDATE staff_members
		SET
			full_name = $1,
			email = $2,
			role = $3,
			is_active = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{staff.FullName, staff.Email, staff.Role, staff.IsActive, staff.ID, staff.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&staff.Version); err != nil {
		return err
	}

	return nil
}
