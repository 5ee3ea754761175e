// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite file or PostgreSQL connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - AdminKeySalt: Secret for admin key HMAC (required)
  - SlugSalt: Secret for share slug generation (required)
  - MaxPreferences: Default preference cap for new cohorts (default: 3)
  - TieBreakSeed: Fixed seed for every allocation run (0: random per run)

# CLI Flags

	-p           Server port
	-d           Database URL
	-t           Database type
	-admin-salt  Admin key salt
	-slug-salt   Share slug salt
	-max-prefs   Default preference cap
	-seed        Tie-break seed
	-env-file    Path to a .env file (default: .env, ignored if missing)

# Environment Variables

Flags fall back to environment variables, then to the env file:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	ADMIN_KEY_SALT  → -admin-salt
	SLUG_SALT       → -slug-salt
	MAX_PREFERENCES → -max-prefs
	TIE_BREAK_SEED  → -seed

CLI flags take precedence over environment variables, which take precedence
over the env file. The env file is read with godotenv and never modifies the
process environment.

# Validation

ParseFlags returns an error if required values are missing or malformed:

  - DATABASE_URL must be provided
  - ADMIN_KEY_SALT must be provided
  - SLUG_SALT must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - an explicit -env-file must exist

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(conn, cfg, metrics.New())
*/
package cliparse
