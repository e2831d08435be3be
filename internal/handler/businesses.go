package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gastrohub-dev/gastrohub/backend/internal/domain"
)

func (h *Handler) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name" validate:"required"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
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

	business := &domain.Business{
		OwnerID: sub,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	}

	if err := h.repository.CreateBusiness(business); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "business created", business)
}

func (h *Handler) GetMyBusinesses(w http.ResponseWriter, r *http.Request) {
	sub, err := h.ownerID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	businesses, err := h.repository.GetBusinessesByOwner(sub)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "businesses", businesses)
}

func (h *Handler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)

	h.successResponse(w, r, "business", business)
}

func (h *Handler) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)

	var req struct {
		Name    *string `json:"name"`
		Address *string `json:"address"`
		Phone   *string `json:"phone"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		business.Name = *req.Name
	}
	if req.Address != nil {
		business.Address = *req.Address
	}
	if req.Phone != nil {
		business.Phone = *req.Phone
	}

	if err := h.repository.UpdateBusiness(business); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "business updated", business)
}
