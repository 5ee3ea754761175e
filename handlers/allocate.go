// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/quickly-group/allocation"
	"github.com/danielhkuo/quickly-group/auth"
	"github.com/danielhkuo/quickly-group/middleware"
	"github.com/danielhkuo/quickly-group/models"
)

// Allocate handles POST /cohorts/{id}/allocate
//
// Query parameters:
//   - seed: fixed tie-break seed (otherwise the configured seed, else random)
//   - force=true: run even if validation reports problems
//
// A successful run replaces the cohort's groups and is recorded with its seed.
func (h *CohortHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	cohort, ok := h.adminCohort(w, r)
	if !ok {
		return
	}

	seed, err := h.runSeed(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "seed must be an integer")
		return
	}
	force := r.URL.Query().Get("force") == "true"

	participants, resources, err := h.store.Snapshot(r.Context(), cohort.ID)
	if err != nil {
		slog.Error("failed to load snapshot", "cohort_id", cohort.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	validation := allocation.Validate(participants, resources)
	if !validation.Valid && !force {
		h.metrics.RunRejected()
		slog.Info("allocation rejected", "cohort_id", cohort.ID, "problems", len(validation.Errors))
		middleware.ErrorResponseWithDetails(w, http.StatusUnprocessableEntity,
			"Cohort is not ready for allocation", validation.Errors)
		return
	}

	result := allocation.Allocate(participants, resources, allocation.Options{
		TieBreaker: allocation.NewSeededTieBreaker(seed),
	})
	h.metrics.ObserveRun(result)

	if !result.Success {
		slog.Info("allocation failed", "cohort_id", cohort.ID, "seed", seed, "reason", result.Error)
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, result.Error)
		return
	}

	run := models.AllocationRun{
		ID:         auth.NewID(),
		CohortID:   cohort.ID,
		Seed:       seed,
		Stats:      result.Stats,
		ComputedAt: time.Now().UTC(),
	}
	if err := h.store.SaveAllocation(r.Context(), run, result); err != nil {
		slog.Error("failed to save allocation", "cohort_id", cohort.ID, "seed", seed, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save allocation")
		return
	}

	slog.Info("allocation completed",
		"cohort_id", cohort.ID,
		"run_id", run.ID,
		"seed", seed,
		"forced", force && !validation.Valid,
		"assigned", result.Stats.Assigned,
		"unassigned", result.Stats.Unassigned,
		"satisfaction", result.Stats.SatisfactionScore,
	)

	middleware.JSONResponse(w, http.StatusOK, models.AllocateResponse{
		RunID:  run.ID,
		Seed:   seed,
		Result: result,
	})
}

func (h *CohortHandler) runSeed(r *http.Request) (int64, error) {
	if raw := r.URL.Query().Get("seed"); raw != "" {
		return strconv.ParseInt(raw, 10, 64)
	}
	if h.cfg.TieBreakSeed != 0 {
		return h.cfg.TieBreakSeed, nil
	}
	return allocation.NewSeed(), nil
}
