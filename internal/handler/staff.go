package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gastrohub-dev/gastrohub/backend/internal/domain"
)

func (h *Handler) CreateStaffMember(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)

	var req struct {
		FullName string `json:"fullName" validate:"required"`
		Email    string `json:"email" validate:"omitempty,email"`
		Role     string `json:"role" validate:"required,oneof=service kitchen manager"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	staff := &domain.StaffMember{
		BusinessID: business.ID,
		FullName:   req.FullName,
		Email:      req.Email,
		Role:       domain.StaffRole(req.Role),
	}

	if err := h.repository.CreateStaffMember(staff); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "staff member created", staff)
}

func (h *Handler) GetStaffMembers(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)

	members, err := h.repository.GetStaffMembersByBusiness(business.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "staff members", members)
}

func (h *Handler) UpdateStaffMember(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)

	staffIDParam := chi.URLParam(r, "staffID")
	staffID, err := strconv.ParseInt(staffIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid staff id")
		return
	}

	staff, ok := h.requireStaffInBusiness(w, r, business.ID, staffID)
	if !ok {
		return
	}

	var req struct {
		FullName *string `json:"fullName"`
		Email    *string `json:"email" validate:"omitempty,email"`
		Role     *string `json:"role" validate:"omitempty,oneof=service kitchen manager"`
		IsActive *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.FullName != nil {
		staff.FullName = *req.FullName
	}
	if req.Email != nil {
		staff.Email = *req.Email
	}
	if req.Role != nil {
		staff.Role = domain.StaffRole(*req.Role)
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateStaffMember(staff); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "staff member updated", staff)
}
