package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/gastrohub-dev/gastrohub/backend/internal/domain"
)

const sessionCookieName = "__gastrohub_token"

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // slog mangles multi-line stack traces
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			switch {
			case errors.Is(err, http.ErrNoCookie):
				h.errorResponse(w, r, "not logged in")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		tokenString := cookie.Value
		claims := &AuthClaims{}
		_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(h.config.JWT.Secret), nil
		})
		if err != nil {
			h.errorResponse(w, r, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), SubCtxKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ownerID extracts the authenticated owner's id placed there by auth.
func (h *Handler) ownerID(r *http.Request) (int64, error) {
	subString, ok := r.Context().Value(SubCtxKey).(string)
	if !ok {
		return 0, errors.New("missing subject in context")
	}
	return strconv.ParseInt(subString, 10, 64)
}

func (h *Handler) myInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub, err := h.ownerID(r)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		owner, err := h.repository.GetOwnerByID(sub)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "account not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), MyInfoCtx, owner)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// business loads the business from the URL and enforces that it belongs to
// the session owner. Tenant isolation for nested staff/absence routes
// hangs off this check.
func (h *Handler) business(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		businessIDParam := chi.URLParam(r, "id")
		businessID, err := strconv.ParseInt(businessIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "invalid business id")
			return
		}

		business, err := h.repository.GetBusinessByID(businessID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "business not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		sub, err := h.ownerID(r)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if business.OwnerID != sub {
			h.errorResponse(w, r, "business not found")
			return
		}

		ctx := context.WithValue(r.Context(), BusinessCtx, business)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) configuration(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		configIDParam := chi.URLParam(r, "id")
		configID, err := strconv.ParseInt(configIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "invalid configuration id")
			return
		}

		cfg, err := h.repository.GetAppConfigurationByID(configID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "configuration not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		sub, err := h.ownerID(r)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if cfg.OwnerID != sub {
			h.errorResponse(w, r, "configuration not found")
			return
		}

		ctx := context.WithValue(r.Context(), ConfigurationCtx, cfg)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireBusinessOwnership is the tenant check for body-scoped routes
// (/shifts, /subdomains) that carry businessId in the payload instead of
// the path.
func (h *Handler) requireBusinessOwnership(w http.ResponseWriter, r *http.Request, businessID int64) (*domain.Business, bool) {
	business, err := h.repository.GetBusinessByID(businessID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "business not found")
		default:
			h.internalServerError(w, r, err)
		}
		return nil, false
	}

	sub, err := h.ownerID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return nil, false
	}
	if business.OwnerID != sub {
		h.errorResponse(w, r, "business not found")
		return nil, false
	}

	return business, true
}

// requireStaffInBusiness verifies the staff member exists and belongs to
// the business before the conflict engine is invoked.
func (h *Handler) requireStaffInBusiness(w http.ResponseWriter, r *http.Request, businessID int64, staffID int64) (*domain.StaffMember, bool) {
	staff, err := h.repository.GetStaffMemberByID(staffID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "staff member not found")
		default:
			h.internalServerError(w, r, err)
		}
		return nil, false
	}

	if staff.BusinessID != businessID {
		h.errorResponse(w, r, "staff member not found")
		return nil, false
	}

	return staff, true
}
