package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gastrohub-dev/gastrohub/backend/internal/domain"
	"github.com/gastrohub-dev/gastrohub/backend/internal/subdomain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

func (r *Repository) CreateAppConfiguration(cfg *domain.AppConfiguration) error {
	query := `
		INSERT INTO app_configurations (public_id, business_id, owner_id, name, template)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_archived, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	cfg.PublicID = uuid.NewString()

	args := []any{cfg.PublicID, cfg.BusinessID, cfg.OwnerID, cfg.Name, cfg.Template}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&cfg.ID, &cfg.IsArchived, &cfg.CreatedAt, &cfg.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAppConfigurationByID(id int64) (*domain.AppConfiguration, error) {
	query := `
		SELECT public_id, business_id, owner_id, name, template, subdomain, is_archived, created_at, version
		FROM app_configurations WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	cfg := &domain.AppConfiguration{
		ID: id,
	}

	dst := []any{&cfg.PublicID, &cfg.BusinessID, &cfg.OwnerID, &cfg.Name, &cfg.Template, &cfg.Subdomain, &cfg.IsArchived, &cfg.CreatedAt, &cfg.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (r *Repository) GetAppConfigurationsByOwner(ownerID int64) ([]*domain.AppConfiguration, error) {
	query := `
		SELECT id, public_id, business_id, name, template, subdomain, is_archived, created_at, version
		FROM app_configurations WHERE owner_id = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	configs := []*domain.AppConfiguration{}
	for rows.Next() {
		cfg := &domain.AppConfiguration{OwnerID: ownerID}
		dst := []any{&cfg.ID, &cfg.PublicID, &cfg.BusinessID, &cfg.Name, &cfg.Template, &cfg.Subdomain, &cfg.IsArchived, &cfg.CreatedAt, &cfg.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return configs, nil
}

// GetPendingClaim implements half of the subdomain.ClaimRepository port:
// an unarchived draft configuration that has the subdomain selected.
func (r *Repository) GetPendingClaim(sub string) (*domain.AppConfiguration, error) {
	query := `
		SELECT id, public_id, business_id, owner_id, name, template, subdomain, is_archived, created_at, version
		FROM app_configurations
		WHERE subdomain = $1 AND is_archived = FALSE
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	cfg := &domain.AppConfiguration{}
	dst := []any{&cfg.ID, &cfg.PublicID, &cfg.BusinessID, &cfg.OwnerID, &cfg.Name, &cfg.Template, &cfg.Subdomain, &cfg.IsArchived, &cfg.CreatedAt, &cfg.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, sub).Scan(dst...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ReserveSubdomain writes the pending claim onto the configuration. The
// committed-claim re-check and the update share one transaction, and the
// unique indexes on app_configurations.subdomain and web_apps.subdomain
// back the check: a unique violation is reported as ErrSubdomainTaken so
// concurrent reservations never silently overwrite each other.
func (r *Repository) ReserveSubdomain(configID int64, ownerID int64, sub string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var committedOwnerID int64
	err = tx.QueryRowContext(ctx, `SELECT owner_id FROM web_apps WHERE subdomain = $1`, sub).Scan(&committedOwnerID)
	switch {
	case err == nil:
		if committedOwnerID != ownerID {
			return subdomain.ErrSubdomainTaken
		}
	case errors.Is(err, sql.ErrNoRows):
	default:
		return err
	}

	query := `
		UPDATE app_configurations
		SET
			subdomain = $1,
			version = version + 1
		WHERE id = $2 AND owner_id = $3 AND is_archived = FALSE
	`

	result, err := tx.ExecContext(ctx, query, sub, configID, ownerID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "app_configurations_subdomain_key" {
			return subdomain.ErrSubdomainTaken
		}
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

// ArchiveAppConfiguration archives a draft and clears its pending claim,
// releasing the subdomain for others.
func (r *Repository) ArchiveAppConfiguration(cfg *domain.AppConfiguration) error {
	query := `
		UPDATE app_configurations
		SET
			is_archived = TRUE,
			subdomain = NULL,
			version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, cfg.ID, cfg.Version).Scan(&cfg.Version); err != nil {
		return err
	}

	cfg.IsArchived = true
	cfg.Subdomain = nil

	return nil
}
