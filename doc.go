// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Group API server.

Quickly Group places participants into capacity-limited groups (workshops,
projects, sessions) from their ranked preferences, using a single greedy
pass that favors higher-ranked choices and breaks ties with a seeded draw.

# Starting the Server

The server reads CLI flags, environment variables, or a .env file:

	DATABASE_URL=quickly-group.db ADMIN_KEY_SALT=... SLUG_SALT=... go run main.go

Or with flags:

	go run main.go -p 3318 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key HMAC
  - SLUG_SALT (-slug-salt): Secret for share slug generation

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - MAX_PREFERENCES (-max-prefs): Default list cap for new cohorts (default: 3)
  - TIE_BREAK_SEED (-seed): Fixed tie-break seed; 0 draws a new seed per run
  - -env-file: Path to a .env file (default: .env if present)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - allocation: The allocation engine (pure, no I/O)
  - handlers: HTTP request handlers (cohorts, participants, groups)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, request validation
  - metrics: Prometheus collectors
  - store: Persistence and snapshot loading
  - models: Domain and request/response types
  - auth: IDs, keys, and tokens
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
