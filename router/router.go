// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/quickly-group/cliparse"
	"github.com/danielhkuo/quickly-group/handlers"
	"github.com/danielhkuo/quickly-group/metrics"
	"github.com/danielhkuo/quickly-group/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, m *metrics.Metrics) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	cohortHandler := handlers.NewCohortHandler(db, cfg, m)
	participantHandler := handlers.NewParticipantHandler(db, cfg)
	groupsHandler := handlers.NewGroupsHandler(db, cfg)

	// route adds request logging and per-route metrics
	route := func(name string, h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(m.WrapHandler(name, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Metrics endpoint
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}

	// Cohort management (admin operations)
	mux.HandleFunc("POST /cohorts", route("create_cohort", cohortHandler.CreateCohort))
	mux.HandleFunc("GET /cohorts/{id}/admin", route("cohort_admin", cohortHandler.GetCohortAdmin))
	mux.HandleFunc("POST /cohorts/{id}/resources", route("add_resource", cohortHandler.AddResource))
	mux.HandleFunc("GET /cohorts/{id}/preflight", route("preflight", cohortHandler.Preflight))
	mux.HandleFunc("POST /cohorts/{id}/allocate", route("allocate", cohortHandler.Allocate))

	// Participant operations (public)
	mux.HandleFunc("POST /cohorts/{slug}/participants", route("join_cohort", participantHandler.JoinCohort))
	mux.HandleFunc("PUT /cohorts/{slug}/preferences", route("submit_preferences", participantHandler.SubmitPreferences))

	// Cohort info and groups (public)
	mux.HandleFunc("GET /cohorts/{slug}", route("get_cohort", groupsHandler.GetCohort))
	mux.HandleFunc("GET /cohorts/{slug}/groups", route("get_groups", groupsHandler.GetGroups))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-group API v1"))
	})

	return mux
}
