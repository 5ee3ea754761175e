// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status, duration_ms).

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Admin-Key, X-Participant-Token.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CreateCohortRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Request Validation

Request structs carry validate tags (go-playground/validator). ValidateRequest
returns one message per failed field, keyed by the JSON name:

	if problems := middleware.ValidateRequest(req); len(problems) > 0 {
		middleware.ErrorResponseWithDetails(w, http.StatusBadRequest, "Invalid request", problems)
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Included in the request log line.
*/
package middleware
