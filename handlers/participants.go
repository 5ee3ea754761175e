// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-group/auth"
	"github.com/danielhkuo/quickly-group/cliparse"
	"github.com/danielhkuo/quickly-group/middleware"
	"github.com/danielhkuo/quickly-group/models"
	"github.com/danielhkuo/quickly-group/store"
)

type ParticipantHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewParticipantHandler(db *sql.DB, cfg cliparse.Config) *ParticipantHandler {
	return &ParticipantHandler{store: store.New(db), cfg: cfg}
}

// JoinCohort handles POST /cohorts/{slug}/participants
func (h *ParticipantHandler) JoinCohort(w http.ResponseWriter, r *http.Request) {
	cohort, ok := cohortBySlug(w, r, h.store)
	if !ok {
		return
	}

	var req models.JoinCohortRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if problems := middleware.ValidateRequest(req); len(problems) > 0 {
		middleware.ErrorResponseWithDetails(w, http.StatusBadRequest, "Invalid request", problems)
		return
	}

	token, err := auth.GenerateParticipantToken()
	if err != nil {
		slog.Error("failed to generate participant token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to join cohort")
		return
	}

	participant, err := h.store.AddParticipant(r.Context(), cohort.ID, req.Name, token)
	if errors.Is(err, store.ErrNameTaken) {
		middleware.ErrorResponse(w, http.StatusConflict, "Name already taken")
		return
	}
	if err != nil {
		slog.Error("failed to add participant", "cohort_id", cohort.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to join cohort")
		return
	}

	slog.Info("participant joined", "cohort_id", cohort.ID, "participant_id", participant.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.JoinCohortResponse{
		ParticipantID:    participant.ID,
		ParticipantToken: token,
	})
}

// SubmitPreferences handles PUT /cohorts/{slug}/preferences
// Replaces the caller's whole list; an empty list withdraws them
func (h *ParticipantHandler) SubmitPreferences(w http.ResponseWriter, r *http.Request) {
	cohort, ok := cohortBySlug(w, r, h.store)
	if !ok {
		return
	}

	token := r.Header.Get("X-Participant-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
		return
	}

	participant, err := h.store.ParticipantByToken(r.Context(), cohort.ID, token)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid participant token")
		return
	}
	if err != nil {
		slog.Error("failed to query participant", "cohort_id", cohort.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var req models.SubmitPreferencesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if problems := middleware.ValidateRequest(req); len(problems) > 0 {
		middleware.ErrorResponseWithDetails(w, http.StatusBadRequest, "Invalid request", problems)
		return
	}
	if req.Preferences == nil {
		req.Preferences = []string{}
	}

	err = h.store.ReplacePreferences(r.Context(), cohort.ID, participant.ID, req.Preferences, cohort.MaxPreferences)
	switch {
	case errors.Is(err, store.ErrTooManyPreferences),
		errors.Is(err, store.ErrDuplicatePreference),
		errors.Is(err, store.ErrUnknownResource):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("failed to save preferences", "cohort_id", cohort.ID, "participant_id", participant.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save preferences")
		return
	}

	message := "Preferences saved"
	if len(req.Preferences) == 0 {
		message = "Preferences withdrawn"
	}

	slog.Info("preferences saved", "cohort_id", cohort.ID, "participant_id", participant.ID, "count", len(req.Preferences))

	middleware.JSONResponse(w, http.StatusOK, models.SubmitPreferencesResponse{
		ParticipantID: participant.ID,
		Preferences:   req.Preferences,
		Message:       message,
	})
}

// cohortBySlug loads the cohort named by the {slug} path value.
// On failure the error response is already written.
func cohortBySlug(w http.ResponseWriter, r *http.Request, st *store.Store) (models.Cohort, bool) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return models.Cohort{}, false
	}

	cohort, err := st.CohortBySlug(r.Context(), slug)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Cohort not found")
		return models.Cohort{}, false
	}
	if err != nil {
		slog.Error("failed to query cohort", "slug", slug, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Cohort{}, false
	}

	return cohort, true
}
