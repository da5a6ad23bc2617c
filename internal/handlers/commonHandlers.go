package handlers

import (
	"net/http"

	"catalog/internal/utils"
)

// HealthChecker reports the state of the backing store.
type HealthChecker interface {
	Health() map[string]string
}

type CommonHandler struct {
	store HealthChecker
}

func NewCommonHandler(store HealthChecker) *CommonHandler {
	return &CommonHandler{store: store}
}

func (h *CommonHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, h.store.Health())
}
