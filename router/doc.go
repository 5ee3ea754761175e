// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Group API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, metrics.New())

Every API route is wrapped with request logging and a per-route request
counter. A nil *metrics.Metrics disables both the counters and /metrics.

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Cohort management (admin, requires X-Admin-Key):

	POST /cohorts                - Create cohort
	GET  /cohorts/{id}/admin     - Cohort, resources, participants
	POST /cohorts/{id}/resources - Add resource
	GET  /cohorts/{id}/preflight - Validation report
	POST /cohorts/{id}/allocate  - Run and persist an allocation

Participants (public, uses share slug):

	POST /cohorts/{slug}/participants - Join, returns participant token
	PUT  /cohorts/{slug}/preferences  - Replace preference list

Results (public):

	GET /cohorts/{slug}        - Cohort info and resources
	GET /cohorts/{slug}/groups - Latest allocated groups
*/
package router
