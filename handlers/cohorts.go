// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-group/allocation"
	"github.com/danielhkuo/quickly-group/auth"
	"github.com/danielhkuo/quickly-group/cliparse"
	"github.com/danielhkuo/quickly-group/metrics"
	"github.com/danielhkuo/quickly-group/middleware"
	"github.com/danielhkuo/quickly-group/models"
	"github.com/danielhkuo/quickly-group/store"
)

type CohortHandler struct {
	store   *store.Store
	cfg     cliparse.Config
	metrics *metrics.Metrics
}

func NewCohortHandler(db *sql.DB, cfg cliparse.Config, m *metrics.Metrics) *CohortHandler {
	return &CohortHandler{store: store.New(db), cfg: cfg, metrics: m}
}

// CreateCohort handles POST /cohorts
func (h *CohortHandler) CreateCohort(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCohortRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if problems := middleware.ValidateRequest(req); len(problems) > 0 {
		middleware.ErrorResponseWithDetails(w, http.StatusBadRequest, "Invalid request", problems)
		return
	}

	maxPreferences := req.MaxPreferences
	if maxPreferences == 0 {
		maxPreferences = h.cfg.MaxPreferences
	}
	if maxPreferences <= 0 {
		maxPreferences = models.DefaultMaxPreferences
	}

	cohortID := auth.NewID()
	cohort := models.Cohort{
		ID:             cohortID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         models.StatusOpen,
		ShareSlug:      auth.GenerateShareSlug(cohortID, h.cfg.SlugSalt),
		MaxPreferences: maxPreferences,
		CreatedAt:      time.Now().UTC(),
	}

	if err := h.store.CreateCohort(r.Context(), cohort); err != nil {
		slog.Error("failed to create cohort", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create cohort")
		return
	}

	slog.Info("cohort created", "cohort_id", cohortID, "max_preferences", maxPreferences)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateCohortResponse{
		CohortID:  cohortID,
		AdminKey:  auth.GenerateAdminKey(cohortID, h.cfg.AdminKeySalt),
		ShareSlug: cohort.ShareSlug,
	})
}

// GetCohortAdmin handles GET /cohorts/{id}/admin
func (h *CohortHandler) GetCohortAdmin(w http.ResponseWriter, r *http.Request) {
	cohort, ok := h.adminCohort(w, r)
	if !ok {
		return
	}

	participants, resources, err := h.store.Snapshot(r.Context(), cohort.ID)
	if err != nil {
		slog.Error("failed to load snapshot", "cohort_id", cohort.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CohortAdminView{
		Cohort:       cohort,
		Resources:    resources,
		Participants: participants,
	})
}

// AddResource handles POST /cohorts/{id}/resources
func (h *CohortHandler) AddResource(w http.ResponseWriter, r *http.Request) {
	cohort, ok := h.adminCohort(w, r)
	if !ok {
		return
	}

	var req models.AddResourceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if problems := middleware.ValidateRequest(req); len(problems) > 0 {
		middleware.ErrorResponseWithDetails(w, http.StatusBadRequest, "Invalid request", problems)
		return
	}

	resource, err := h.store.AddResource(r.Context(), cohort.ID, req.Title, req.Capacity)
	if errors.Is(err, store.ErrInvalidCapacity) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to add resource", "cohort_id", cohort.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add resource")
		return
	}

	slog.Info("resource added", "cohort_id", cohort.ID, "resource_id", resource.ID, "capacity", resource.Capacity)

	middleware.JSONResponse(w, http.StatusCreated, models.AddResourceResponse{
		ResourceID: resource.ID,
		Capacity:   resource.Capacity,
	})
}

// Preflight handles GET /cohorts/{id}/preflight
// Reports every problem that would block an allocation, without running it
func (h *CohortHandler) Preflight(w http.ResponseWriter, r *http.Request) {
	cohort, ok := h.adminCohort(w, r)
	if !ok {
		return
	}

	participants, resources, err := h.store.Snapshot(r.Context(), cohort.ID)
	if err != nil {
		slog.Error("failed to load snapshot", "cohort_id", cohort.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PreflightResponse{
		ValidationResult:  allocation.Validate(participants, resources),
		TotalParticipants: len(participants),
		ResourceCount:     len(resources),
	})
}

// adminCohort checks X-Admin-Key against the {id} path value and loads the
// cohort. On failure the error response is already written.
func (h *CohortHandler) adminCohort(w http.ResponseWriter, r *http.Request) (models.Cohort, bool) {
	cohortID := r.PathValue("id")
	if cohortID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "cohort_id is required")
		return models.Cohort{}, false
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(cohortID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return models.Cohort{}, false
	}

	cohort, err := h.store.CohortByID(r.Context(), cohortID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Cohort not found")
		return models.Cohort{}, false
	}
	if err != nil {
		slog.Error("failed to query cohort", "cohort_id", cohortID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Cohort{}, false
	}

	return cohort, true
}
