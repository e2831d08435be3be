package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gastrohub-dev/gastrohub/backend/internal/domain"
)

const absenceDateLayout = "2006-01-02"

func (h *Handler) CreateAbsence(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)

	var req struct {
		StaffID   int64  `json:"staffId" validate:"required"`
		StartDate string `json:"startDate" validate:"required"`
		EndDate   string `json:"endDate" validate:"required"`
		Reason    string `json:"reason"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, ok := h.requireStaffInBusiness(w, r, business.ID, req.StaffID); !ok {
		return
	}

	startDate, err := time.Parse(absenceDateLayout, req.StartDate)
	if err != nil {
		h.errorResponse(w, r, "invalid start date, expected YYYY-MM-DD")
		return
	}
	endDate, err := time.Parse(absenceDateLayout, req.EndDate)
	if err != nil {
		h.errorResponse(w, r, "invalid end date, expected YYYY-MM-DD")
		return
	}
	if endDate.Before(startDate) {
		h.errorResponse(w, r, "end date must not be before start date")
		return
	}

	absence := &domain.Absence{
		BusinessID: business.ID,
		StaffID:    req.StaffID,
		StartDate:  startDate,
		EndDate:    endDate,
		Status:     domain.AbsenceStatusPending,
		Reason:     req.Reason,
	}

	if err := h.repository.CreateAbsence(absence); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "absence created", absence)
}

func (h *Handler) GetAbsences(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)

	absences, err := h.repository.GetAbsencesByBusiness(business.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "absences", absences)
}

func (h *Handler) UpdateAbsenceStatus(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)

	absenceIDParam := chi.URLParam(r, "absenceID")
	absenceID, err := strconv.ParseInt(absenceIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid absence id")
		return
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	absence, err := h.repository.GetAbsenceByID(absenceID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "absence not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	if absence.BusinessID != business.ID {
		h.errorResponse(w, r, "absence not found")
		return
	}

	absence.Status = domain.AbsenceStatus(req.Status)

	if err := h.repository.UpdateAbsenceStatus(absence); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "absence status updated", absence)
}
