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

type shiftWindowRequest struct {
	BusinessID int64  `json:"businessId" validate:"required"`
	StaffID    int64  `json:"staffId" validate:"required"`
	StartTime  string `json:"startTime" validate:"required"`
	EndTime    string `json:"endTime" validate:"required"`
}

// parseWindow turns the request's ISO-8601 timestamps into a validated
// window. start < end is enforced here so the checker's precondition holds.
func (h *Handler) parseWindow(w http.ResponseWriter, r *http.Request, req shiftWindowRequest) (start time.Time, end time.Time, ok bool) {
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		h.errorResponse(w, r, "invalid start time, expected ISO-8601")
		return start, end, false
	}
	end, err = time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		h.errorResponse(w, r, "invalid end time, expected ISO-8601")
		return start, end, false
	}
	if !start.Before(end) {
		h.errorResponse(w, r, "start time must be before end time")
		return start, end, false
	}
	return start, end, true
}

// conflictCheckResponse is the shape builder dashboards consume directly.
type conflictCheckResponse struct {
	HasConflicts bool                   `json:"hasConflicts"`
	Conflicts    []domain.ConflictEntry `json:"conflicts"`
}

func (h *Handler) CheckShiftConflicts(w http.ResponseWriter, r *http.Request) {
	var req shiftWindowRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, ok := h.requireBusinessOwnership(w, r, req.BusinessID); !ok {
		return
	}
	if _, ok := h.requireStaffInBusiness(w, r, req.BusinessID, req.StaffID); !ok {
		return
	}

	start, end, ok := h.parseWindow(w, r, req)
	if !ok {
		return
	}

	report, err := h.checker.CheckConflicts(req.BusinessID, req.StaffID, start, end, nil)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, conflictCheckResponse{
		HasConflicts: report.HasConflicts(),
		Conflicts:    report,
	})
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		shiftWindowRequest
		Notes string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, ok := h.requireBusinessOwnership(w, r, req.BusinessID); !ok {
		return
	}
	staff, ok := h.requireStaffInBusiness(w, r, req.BusinessID, req.StaffID)
	if !ok {
		return
	}

	start, end, ok := h.parseWindow(w, r, req.shiftWindowRequest)
	if !ok {
		return
	}

	// a shift is never persisted while the checker reports conflicts for
	// its exact parameters
	report, err := h.checker.CheckConflicts(req.BusinessID, req.StaffID, start, end, nil)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if report.HasConflicts() {
		h.writeJSON(w, r, http.StatusConflict, map[string]any{
			"error":     "Shift conflicts detected",
			"conflicts": report,
		})
		return
	}

	shift := &domain.Shift{
		BusinessID: req.BusinessID,
		StaffID:    req.StaffID,
		StartTime:  start,
		EndTime:    end,
		Notes:      req.Notes,
	}

	if err := h.repository.CreateShift(shift); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	shift.StaffName = staff.FullName

	h.writeJSON(w, r, http.StatusOK, shift)
}

func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	businessID, err := strconv.ParseInt(r.URL.Query().Get("businessId"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid business id")
		return
	}

	if _, ok := h.requireBusinessOwnership(w, r, businessID); !ok {
		return
	}

	var staffID *int64
	if raw := r.URL.Query().Get("staffId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "invalid staff id")
			return
		}
		staffID = &parsed
	}

	shifts, err := h.repository.GetShiftsByBusiness(businessID, staffID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shifts", shifts)
}

func (h *Handler) RescheduleShift(w http.ResponseWriter, r *http.Request) {
	shiftIDParam := chi.URLParam(r, "id")
	shiftID, err := strconv.ParseInt(shiftIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid shift id")
		return
	}

	shift, err := h.repository.GetShiftByID(shiftID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "shift not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if _, ok := h.requireBusinessOwnership(w, r, shift.BusinessID); !ok {
		return
	}

	var req struct {
		StartTime string  `json:"startTime" validate:"required"`
		EndTime   string  `json:"endTime" validate:"required"`
		Notes     *string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	start, end, ok := h.parseWindow(w, r, shiftWindowRequest{
		BusinessID: shift.BusinessID,
		StaffID:    shift.StaffID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	})
	if !ok {
		return
	}

	// exclude the shift itself so keeping (or shrinking) its own window
	// does not flag a self-conflict
	report, err := h.checker.CheckConflicts(shift.BusinessID, shift.StaffID, start, end, &shift.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if report.HasConflicts() {
		h.writeJSON(w, r, http.StatusConflict, map[string]any{
			"error":     "Shift conflicts detected",
			"conflicts": report,
		})
		return
	}

	shift.StartTime = start
	shift.EndTime = end
	if req.Notes != nil {
		shift.Notes = *req.Notes
	}

	if err := h.repository.UpdateShift(shift); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shiftIDParam := chi.URLParam(r, "id")
	shiftID, err := strconv.ParseInt(shiftIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid shift id")
		return
	}

	shift, err := h.repository.GetShiftByID(shiftID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "shift not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if _, ok := h.requireBusinessOwnership(w, r, shift.BusinessID); !ok {
		return
	}

	if err := h.repository.DeleteShift(shift.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift deleted", nil)
}
