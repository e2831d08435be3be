package repository

import (
	"context"
	"time"

	"github.com/gastrohub-dev/gastrohub/backend/internal/domain"
)

func (r *Repository) CreateOwner(owner *domain.Owner) error {
	query := `
		INSERT INTO owners (email, password_hash, full_name, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{owner.Email, owner.PasswordHash, owner.FullName, owner.IsAdmin}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&owner.ID, &owner.CreatedAt, &owner.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetOwnerByID(id int64) (*domain.Owner, error) {
	query := `
		SELECT email, password_hash, full_name, is_admin, created_at, version
		FROM owners WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	owner := &domain.Owner{
		ID: id,
	}

	dst := []any{&owner.Email, &owner.PasswordHash, &owner.FullName, &owner.IsAdmin, &owner.CreatedAt, &owner.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return owner, nil
}

func (r *Repository) GetOwnerByEmail(email string) (*domain.Owner, error) {
	query := `
		SELECT id, password_hash, full_name, is_admin, created_at, version
		FROM owners WHERE email = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	owner := &domain.Owner{
		Email: email,
	}

	dst := []any{&owner.ID, &owner.PasswordHash, &owner.FullName, &owner.IsAdmin, &owner.CreatedAt, &owner.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, err
	}

	return owner, nil
}

func (r *Repository) UpdateOwner(owner *domain.Owner) error {
	query := `
		UPDATE owners
		SET
			email = $1,
			password_hash = $2,
			full_name = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{owner.Email, owner.PasswordHash, owner.FullName, owner.ID, owner.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&owner.CreatedAt, &owner.Version); err != nil {
		return err
	}

	return nil
}
