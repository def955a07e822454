// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SKIDS Health

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skids-health/skids-sync/internal/logger"
	"github.com/skids-health/skids-sync/internal/utils"
	"github.com/skids-health/skids-sync/models"
)

// pull returns the authenticated user's current records of one entity
// collection. An empty collection is a successful pull with zero records.
func (h *Handler) pull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	entity := models.Entity(chi.URLParam(r, "entity"))

	records, err := h.services.EntityService.List(ctx, userID, entity)
	if err != nil {
		log.Err(err).Str("entity", string(entity)).Msg("pull failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}
	if records == nil {
		records = []models.EntityRecord{}
	}

	utils.WriteJSON(w, models.PullResponse{Records: records, Length: len(records)}, http.StatusOK)
}

func (h *Handler) applyCreate(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, models.ActionCreate)
}

func (h *Handler) applyUpdate(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, models.ActionUpdate)
}

func (h *Handler) applyDelete(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, models.ActionDelete)
}

// apply replays one queued agent mutation. Agents deliver at-least-once, so
// the service applies creates and updates as upserts and tolerates deletes
// of already-deleted records.
func (h *Handler) apply(w http.ResponseWriter, r *http.Request, action models.SyncAction) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	entity := models.Entity(chi.URLParam(r, "entity"))
	recordID := chi.URLParam(r, "recordID")

	var req models.MutationRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Err(err).Msg("invalid JSON was passed")
			http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
			return
		}
	}

	if err := h.services.EntityService.Apply(ctx, userID, entity, action, recordID, req); err != nil {
		log.Err(err).Str("entity", string(entity)).Str("action", string(action)).Msg("mutation rejected")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}
