package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
)

type subdomainAvailabilityResponse struct {
	Available   bool     `json:"available"`
	Reason      string   `json:"reason,omitempty"`
	Error       string   `json:"error,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	FullDomain  string   `json:"fullDomain,omitempty"`
}

type subdomainReserveResponse struct {
	Success    bool   `json:"success"`
	Subdomain  string `json:"subdomain,omitempty"`
	FullDomain string `json:"fullDomain,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (h *Handler) fullDomain(sub string) string {
	return fmt.Sprintf("%s.%s", sub, h.config.Platform.BaseDomain)
}

func (h *Handler) ValidateSubdomain(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subdomain string `json:"subdomain" validate:"required"`
		UserID    *int64 `json:"userId"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	sub, err := h.ownerID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	// the session decides who is asking; a mismatching body userId is a
	// client bug, not an identity
	if req.UserID != nil && *req.UserID != sub {
		h.errorResponse(w, r, "userId does not match the current session")
		return
	}

	result, err := h.allocator.CheckAvailability(req.Subdomain, &sub)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	resp := subdomainAvailabilityResponse{
		Available:   result.Available,
		Reason:      result.Reason,
		Error:       result.Detail,
		Suggestions: result.Suggestions,
	}
	if result.Available {
		resp.FullDomain = h.fullDomain(result.Subdomain)
	}

	h.writeJSON(w, r, http.StatusOK, resp)
}

func (h *Handler) ReserveSubdomain(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subdomain string `json:"subdomain" validate:"required"`
		UserID    *int64 `json:"userId"`
		ConfigID  int64  `json:"configId" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	sub, err := h.ownerID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if req.UserID != nil && *req.UserID != sub {
		h.errorResponse(w, r, "userId does not match the current session")
		return
	}

	// the configuration must exist and belong to the requester before the
	// allocator is allowed to write
	cfg, err := h.repository.GetAppConfigurationByID(req.ConfigID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "configuration not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	if cfg.OwnerID != sub || cfg.IsArchived {
		h.errorResponse(w, r, "configuration not found")
		return
	}

	result, err := h.allocator.Reserve(req.Subdomain, sub, cfg.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if !result.OK {
		h.writeJSON(w, r, http.StatusOK, subdomainReserveResponse{
			Success: false,
			Error:   result.Detail,
		})
		return
	}

	h.writeJSON(w, r, http.StatusOK, subdomainReserveResponse{
		Success:    true,
		Subdomain:  result.Subdomain,
		FullDomain: h.fullDomain(result.Subdomain),
	})
}
