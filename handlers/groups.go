// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-group/cliparse"
	"github.com/danielhkuo/quickly-group/middleware"
	"github.com/danielhkuo/quickly-group/models"
	"github.com/danielhkuo/quickly-group/store"
)

type GroupsHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewGroupsHandler(db *sql.DB, cfg cliparse.Config) *GroupsHandler {
	return &GroupsHandler{store: store.New(db), cfg: cfg}
}

// GetCohort handles GET /cohorts/{slug}
// Returns public cohort details and the resource catalog
func (h *GroupsHandler) GetCohort(w http.ResponseWriter, r *http.Request) {
	cohort, ok := cohortBySlug(w, r, h.store)
	if !ok {
		return
	}

	resources, err := h.store.Resources(r.Context(), cohort.ID)
	if err != nil {
		slog.Error("failed to query resources", "cohort_id", cohort.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CohortWithResources{
		Cohort:    cohort,
		Resources: resources,
	})
}

// GetGroups handles GET /cohorts/{slug}/groups
// Returns 404 until an allocation has been saved
func (h *GroupsHandler) GetGroups(w http.ResponseWriter, r *http.Request) {
	cohort, ok := cohortBySlug(w, r, h.store)
	if !ok {
		return
	}

	run, groups, err := h.store.LatestAllocation(r.Context(), cohort.ID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No allocation has been run")
		return
	}
	if err != nil {
		slog.Error("failed to load allocation", "cohort_id", cohort.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resources, err := h.store.Resources(r.Context(), cohort.ID)
	if err != nil {
		slog.Error("failed to query resources", "cohort_id", cohort.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	capacity := make(map[string]int, len(resources))
	for _, res := range resources {
		capacity[res.ID] = res.Capacity
	}

	views := make([]models.GroupView, 0, len(groups))
	for _, g := range groups {
		members := make([]models.GroupMemberView, 0, len(g.Members))
		for _, m := range g.Members {
			members = append(members, models.GroupMemberView{
				GroupMember: m,
				Choice:      choiceLabel(m.Rank),
			})
		}
		views = append(views, models.GroupView{
			ResourceID:    g.ResourceID,
			ResourceTitle: g.ResourceTitle,
			Capacity:      capacity[g.ResourceID],
			Members:       members,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.GroupsResponse{
		Run:    run,
		Groups: views,
	})
}

// choiceLabel renders a rank as "1st choice", "2nd choice", ...
func choiceLabel(rank int) string {
	return humanize.Ordinal(rank) + " choice"
}
