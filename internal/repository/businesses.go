package repository

import (
	"context"
	"time"

	"github.com/gastrohub-dev/gastrohub/backend/internal/domain"
)

func (r *Repository) CreateBusiness(business *domain.Business) error {
	query := `
		INSERT INTO businesses (owner_id, name, address, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{business.OwnerID, business.Name, business.Address, business.Phone}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&business.ID, &business.CreatedAt, &business.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetBusinessByID(id int64) (*domain.Business, error) {
	query := `
		SELECT owner_id, name, address, phone, created_at, version
		FROM businesses WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	business := &domain.Business{
		ID: id,
	}

	dst := []any{&business.OwnerID, &business.Name, &business.Address, &business.Phone, &business.CreatedAt, &business.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return business, nil
}

func (r *Repository) GetBusinessesByOwner(ownerID int64) ([]*domain.Business, error) {
	query := `
		SELECT id, name, address, phone, created_at, version
		FROM businesses WHERE owner_id = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	businesses := []*domain.Business{}
	for rows.Next() {
		business := &domain.Business{OwnerID: ownerID}
		dst := []any{&business.ID, &business.Name, &business.Address, &business.Phone, &business.CreatedAt, &business.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		businesses = append(businesses, business)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return businesses, nil
}

func (r *Repository) UpdateBusiness(business *domain.Business) error {
	query := `
		UPDATE businesses
		SET
			name = $1,
			address = $2,
			phone = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{business.Name, business.Address, business.Phone, business.ID, business.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&business.Version); err != nil {
		return err
	}

	return nil
}
