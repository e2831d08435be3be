package repository

import (
	"context"
	"errors"
	"time"

	"github.com/gastrohub-dev/gastrohub/backend/internal/domain"
	"github.com/gastrohub-dev/gastrohub/backend/internal/subdomain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// GetCommittedClaim implements the other half of the
// subdomain.ClaimRepository port: a published app holding the subdomain.
func (r *Repository) GetCommittedClaim(sub string) (*domain.WebApp, error) {
	query := `
		SELECT id, public_id, configuration_id, business_id, owner_id, published_at, version
		FROM web_apps WHERE subdomain = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	app := &domain.WebApp{
		Subdomain: sub,
	}

	dst := []any{&app.ID, &app.PublicID, &app.ConfigurationID, &app.BusinessID, &app.OwnerID, &app.PublishedAt, &app.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, sub).Scan(dst...); err != nil {
		return nil, err
	}

	return app, nil
}

func (r *Repository) GetWebAppByConfigurationID(configID int64) (*domain.WebApp, error) {
	query := `
		SELECT id, public_id, business_id, owner_id, subdomain, published_at, version
		FROM web_apps WHERE configuration_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	app := &domain.WebApp{
		ConfigurationID: configID,
	}

	dst := []any{&app.ID, &app.PublicID, &app.BusinessID, &app.OwnerID, &app.Subdomain, &app.PublishedAt, &app.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, configID).Scan(dst...); err != nil {
		return nil, err
	}

	return app, nil
}

// PublishConfiguration promotes a pending claim to a committed one: it
// inserts the web_apps row for the configuration's subdomain in the same
// transaction that marks the draft published. A unique violation on the
// subdomain column means someone else committed it first.
func (r *Repository) PublishConfiguration(cfg *domain.AppConfiguration, app *domain.WebApp) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	app.PublicID = uuid.NewString()
	app.ConfigurationID = cfg.ID
	app.BusinessID = cfg.BusinessID
	app.OwnerID = cfg.OwnerID

	query := `
		INSERT INTO web_apps (public_id, configuration_id, business_id, owner_id, subdomain)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (configuration_id) DO UPDATE
		SET subdomain = EXCLUDED.subdomain, public_id = web_apps.public_id
		RETURNING id, public_id, published_at, version
	`

	args := []any{app.PublicID, app.ConfigurationID, app.BusinessID, app.OwnerID, app.Subdomain}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&app.ID, &app.PublicID, &app.PublishedAt, &app.Version); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "web_apps_subdomain_key" {
			return subdomain.ErrSubdomainTaken
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE app_configurations SET version = version + 1 WHERE id = $1`, cfg.ID); err != nil {
		return err
	}

	return tx.Commit()
}
