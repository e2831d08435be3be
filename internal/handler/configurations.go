package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/gastrohub-dev/gastrohub/backend/internal/domain"
	"github.com/gastrohub-dev/gastrohub/backend/internal/subdomain"
)

func (h *Handler) CreateConfiguration(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BusinessID int64  `json:"businessId" validate:"required"`
		Name       string `json:"name" validate:"required"`
		Template   string `json:"template" validate:"required,oneof=classic modern bistro"`
		Subdomain  string `json:"subdomain"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	business, ok := h.requireBusinessOwnership(w, r, req.BusinessID)
	if !ok {
		return
	}

	cfg := &domain.AppConfiguration{
		BusinessID: business.ID,
		OwnerID:    business.OwnerID,
		Name:       req.Name,
		Template:   req.Template,
	}

	if err := h.repository.CreateAppConfiguration(cfg); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// a subdomain supplied at creation time is a convenience, the claim
	// still goes through the allocator
	if req.Subdomain != "" {
		result, err := h.allocator.Reserve(req.Subdomain, business.OwnerID, cfg.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if result.OK {
			cfg.Subdomain = &result.Subdomain
		}
	}

	h.successResponse(w, r, "configuration created", cfg)
}

func (h *Handler) GetMyConfigurations(w http.ResponseWriter, r *http.Request) {
	sub, err := h.ownerID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	configs, err := h.repository.GetAppConfigurationsByOwner(sub)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "configurations", configs)
}

func (h *Handler) GetConfiguration(w http.ResponseWriter, r *http.Request) {
	cfg := r.Context().Value(ConfigurationCtx).(*domain.AppConfiguration)

	h.successResponse(w, r, "configuration", cfg)
}

func (h *Handler) PublishConfiguration(w http.ResponseWriter, r *http.Request) {
	cfg := r.Context().Value(ConfigurationCtx).(*domain.AppConfiguration)

	if cfg.IsArchived {
		h.errorResponse(w, r, "configuration is archived")
		return
	}
	if cfg.Subdomain == nil {
		h.errorResponse(w, r, "configuration has no subdomain reserved")
		return
	}

	app := &domain.WebApp{
		Subdomain: *cfg.Subdomain,
	}

	if err := h.repository.PublishConfiguration(cfg, app); err != nil {
		switch {
		case errors.Is(err, subdomain.ErrSubdomainTaken):
			h.errorResponse(w, r, "the subdomain was claimed by someone else, please pick another one")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	owner, err := h.repository.GetOwnerByID(cfg.OwnerID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		h.internalServerError(w, r, err)
		return
	}

	if owner != nil {
		if err := h.publishNotification(domain.NotificationMessage{
			Type: "app_published",
			To:   owner.Email,
			Data: domain.AppPublishedMailData{
				FullName:   owner.FullName,
				AppName:    cfg.Name,
				FullDomain: h.fullDomain(app.Subdomain),
			},
		}); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	// automation endpoints (n8n and friends) get the machine-readable event
	if err := h.publishNotification(domain.NotificationMessage{
		Type: "webhook",
		Data: domain.WebhookEvent{
			ID:    uuid.NewString(),
			Event: "app.published",
			Payload: map[string]any{
				"appId":      app.PublicID,
				"configId":   cfg.PublicID,
				"businessId": cfg.BusinessID,
				"subdomain":  app.Subdomain,
				"fullDomain": h.fullDomain(app.Subdomain),
			},
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "configuration published", app)
}

func (h *Handler) ArchiveConfiguration(w http.ResponseWriter, r *http.Request) {
	cfg := r.Context().Value(ConfigurationCtx).(*domain.AppConfiguration)

	if cfg.IsArchived {
		h.errorResponse(w, r, "configuration is already archived")
		return
	}

	if err := h.repository.ArchiveAppConfiguration(cfg); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "configuration archived", cfg)
}
