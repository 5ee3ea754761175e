// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-group/auth"
	"github.com/danielhkuo/quickly-group/cliparse"
	"github.com/danielhkuo/quickly-group/db"
	"github.com/danielhkuo/quickly-group/models"
)

// SetupTestDB creates a fresh SQLite database with the full schema in the
// test's temp directory. It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(cliparse.DatabaseSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseType:   cliparse.DatabaseSQLite,
		DatabaseURL:    "test.db",
		AdminKeySalt:   "test-admin-salt",
		SlugSalt:       "test-slug-salt",
		MaxPreferences: models.DefaultMaxPreferences,
	}
}

// CreateTestCohort creates an open cohort and returns its ID, admin key, and share slug
func CreateTestCohort(t *testing.T, db *sql.DB, cfg cliparse.Config, maxPreferences int) (cohortID, adminKey, shareSlug string) {
	t.Helper()

	cohortID = auth.NewID()
	adminKey = auth.GenerateAdminKey(cohortID, cfg.AdminKeySalt)
	shareSlug = auth.GenerateShareSlug(cohortID, cfg.SlugSalt)

	_, err := db.Exec(`
		INSERT INTO cohort (id, title, description, status, share_slug, max_preferences, created_at)
		VALUES ($1, 'Test Cohort', 'A test cohort', $2, $3, $4, $5)
	`, cohortID, models.StatusOpen, shareSlug, maxPreferences, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test cohort: %v", err)
	}

	return cohortID, adminKey, shareSlug
}

// AddTestResource appends a resource to a cohort's catalog and returns its ID
func AddTestResource(t *testing.T, db *sql.DB, cohortID, title string, capacity int) string {
	t.Helper()

	resourceID := auth.NewID()
	_, err := db.Exec(`
		INSERT INTO resource (id, cohort_id, title, capacity, position)
		VALUES ($1, $2, $3, $4, (SELECT COUNT(*) FROM resource WHERE cohort_id = $2))
	`, resourceID, cohortID, title, capacity)
	if err != nil {
		t.Fatalf("Failed to create test resource: %v", err)
	}

	return resourceID
}

// AddTestParticipant joins a participant to a cohort and returns its ID and token
func AddTestParticipant(t *testing.T, db *sql.DB, cohortID, name string) (participantID, token string) {
	t.Helper()

	participantID = auth.NewID()
	token, err := auth.GenerateParticipantToken()
	if err != nil {
		t.Fatalf("Failed to generate participant token: %v", err)
	}

	_, err = db.Exec(`
		INSERT INTO participant (id, cohort_id, name, token, position, joined_at)
		VALUES ($1, $2, $3, $4, (SELECT COUNT(*) FROM participant WHERE cohort_id = $2), $5)
	`, participantID, cohortID, name, token, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test participant: %v", err)
	}

	return participantID, token
}

// SetTestPreferences stores resourceIDs as the participant's list, first = rank 1
func SetTestPreferences(t *testing.T, db *sql.DB, participantID string, resourceIDs ...string) {
	t.Helper()

	for i, resourceID := range resourceIDs {
		_, err := db.Exec(`
			INSERT INTO preference (participant_id, resource_id, pref_rank)
			VALUES ($1, $2, $3)
		`, participantID, resourceID, i+1)
		if err != nil {
			t.Fatalf("Failed to create test preference: %v", err)
		}
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
