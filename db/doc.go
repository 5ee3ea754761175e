// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens database connections and creates the schema.

# Drivers

Open selects the database/sql driver from the configured type:

	conn, err := db.Open("sqlite", "file:quickly-group.db")    // modernc.org/sqlite
	conn, err := db.Open("postgres", "postgres://...")         // github.com/lib/pq

SQLite connections are limited to one open connection with foreign keys
enabled. Queries use $N placeholders, which both drivers accept.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - cohort: Allocation scope, share slug, preference cap, latest run
  - resource: Capacity-limited resources per cohort, in catalog order
  - participant: Members of a cohort with their access token
  - preference: One ranked list per participant (unique rank, unique resource)
  - allocation_run: Seed and statistics of every persisted run
  - group_member: Memberships produced by the latest run

# Relationships

	cohort 1──* resource
	cohort 1──* participant
	participant 1──* preference *──1 resource
	cohort 1──* allocation_run
	allocation_run 1──* group_member

All foreign keys use ON DELETE CASCADE.
*/
package db
