package handler

import (
	"net/http"

	"github.com/gastrohub-dev/gastrohub/backend/internal/domain"
)

func (h *Handler) GetMyInfo(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Owner)

	h.successResponse(w, r, "account info", myInfo)
}
