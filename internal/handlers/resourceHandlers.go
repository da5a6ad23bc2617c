package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/internal/utils"
)

// ResourceHandler serves list, get, create, update and patch for one resource collection.
type ResourceHandler[T any, P models.Patch[T]] struct {
	service  services.ResourceService[T, P]
	resource string
}

func newResourceHandler[T any, P models.Patch[T]](service services.ResourceService[T, P], resource string) *ResourceHandler[T, P] {
	return &ResourceHandler[T, P]{service: service, resource: resource}
}

func (h *ResourceHandler[T, P]) List(w http.ResponseWriter, r *http.Request) {
	count, err := utils.StreamJSON(w, r, http.StatusOK, h.service.List(r.Context()))
	if err != nil {
		if errors.Is(err, utils.ErrStreamInterrupted) {
			log.Error().Err(err).Str("resource", h.resource).Int("sent", count).Msg("List stream interrupted")
			return
		}
		log.Error().Err(err).Str("resource", h.resource).Msg("Error listing entities")
		utils.SendJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Debug().Str("resource", h.resource).Int("count", count).Msg("Entities listed")
}

// Get answers with an empty 200 response when the entity does not exist.
func (h *ResourceHandler[T, P]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.GetIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	entity, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			w.WriteHeader(http.StatusOK)
			return
		}
		utils.SendJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, entity)
}

func (h *ResourceHandler[T, P]) Create(w http.ResponseWriter, r *http.Request) {
	created, err := h.service.Create(r.Context(), utils.DecodeJSONStream[T](r.Body))
	if err != nil {
		if errors.Is(err, utils.ErrMalformedBody) {
			log.Warn().Err(err).Str("resource", h.resource).Int("saved", created).Msg("Invalid JSON for create")
			utils.SendJSONError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		utils.SendJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *ResourceHandler[T, P]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.GetIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var entity T
	if err := utils.DecodeJSONBody(r, &entity); err != nil {
		log.Warn().Err(err).Str("resource", h.resource).Msg("Invalid JSON payload for update")
		utils.SendJSONError(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := h.service.Update(r.Context(), id, &entity)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, saved)
}

func (h *ResourceHandler[T, P]) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := utils.GetIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var patch P
	if err := utils.DecodeJSONBody(r, &patch); err != nil {
		log.Warn().Err(err).Str("resource", h.resource).Msg("Invalid JSON payload for patch")
		utils.SendJSONError(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Patch(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.SendJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		utils.SendJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}
