// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-group/models"
	"github.com/danielhkuo/quickly-group/testutil"
)

func TestGetCohort(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewGroupsHandler(db, cfg)

	cohortID, _, shareSlug := testutil.CreateTestCohort(t, db, cfg, 3)
	testutil.AddTestResource(t, db, cohortID, "Pottery", 3)
	testutil.AddTestResource(t, db, cohortID, "Chess", 4)

	req := slugRequest("GET", "/cohorts/"+shareSlug, shareSlug, nil, nil)
	w := httptest.NewRecorder()
	handler.GetCohort(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.CohortWithResources
	testutil.AssertJSON(t, w, &resp)

	if resp.Cohort.ID != cohortID || resp.Cohort.ShareSlug != shareSlug {
		t.Errorf("Unexpected cohort: %+v", resp.Cohort)
	}
	if len(resp.Resources) != 2 || resp.Resources[0].Title != "Pottery" || resp.Resources[1].Title != "Chess" {
		t.Errorf("Expected resources in catalog order, got %+v", resp.Resources)
	}

	t.Run("unknown slug", func(t *testing.T) {
		req := slugRequest("GET", "/cohorts/missing", "missing", nil, nil)
		w := httptest.NewRecorder()
		handler.GetCohort(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestGetGroups(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	groupsHandler := NewGroupsHandler(db, cfg)
	cohortHandler := NewCohortHandler(db, cfg, nil)

	cohortID, adminKey, shareSlug := testutil.CreateTestCohort(t, db, cfg, 3)
	r1 := testutil.AddTestResource(t, db, cohortID, "R1", 1)
	r2 := testutil.AddTestResource(t, db, cohortID, "R2", 3)
	a, _ := testutil.AddTestParticipant(t, db, cohortID, "Alice")
	b, _ := testutil.AddTestParticipant(t, db, cohortID, "Bob")
	testutil.SetTestPreferences(t, db, a, r2)
	testutil.SetTestPreferences(t, db, b, r1)

	t.Run("not allocated yet", func(t *testing.T) {
		req := slugRequest("GET", "/cohorts/"+shareSlug+"/groups", shareSlug, nil, nil)
		w := httptest.NewRecorder()
		groupsHandler.GetGroups(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	req := adminRequest("POST", "/cohorts/"+cohortID+"/allocate?seed=1", cohortID, adminKey, nil)
	w := httptest.NewRecorder()
	cohortHandler.Allocate(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var allocResp models.AllocateResponse
	testutil.AssertJSON(t, w, &allocResp)

	req = slugRequest("GET", "/cohorts/"+shareSlug+"/groups", shareSlug, nil, nil)
	w = httptest.NewRecorder()
	groupsHandler.GetGroups(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.GroupsResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Run.ID != allocResp.RunID || resp.Run.Seed != 1 {
		t.Errorf("Expected run %s with seed 1, got %+v", allocResp.RunID, resp.Run)
	}
	if resp.Run.Stats.Assigned != 2 || resp.Run.Stats.SatisfactionScore != 100 {
		t.Errorf("Unexpected run stats: %+v", resp.Run.Stats)
	}

	// Groups follow catalog order, even though Alice was placed in R2
	if len(resp.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(resp.Groups))
	}
	if resp.Groups[0].ResourceID != r1 || resp.Groups[1].ResourceID != r2 {
		t.Errorf("Expected groups [R1 R2], got [%s %s]", resp.Groups[0].ResourceTitle, resp.Groups[1].ResourceTitle)
	}
	if resp.Groups[1].Capacity != 3 {
		t.Errorf("Expected R2 capacity 3, got %d", resp.Groups[1].Capacity)
	}

	member := resp.Groups[0].Members[0]
	if member.ParticipantName != "Bob" || member.Rank != 1 || member.Choice != "1st choice" {
		t.Errorf("Unexpected member: %+v", member)
	}
}

func TestChoiceLabel(t *testing.T) {
	tests := map[int]string{
		1:  "1st choice",
		2:  "2nd choice",
		3:  "3rd choice",
		4:  "4th choice",
		11: "11th choice",
		22: "22nd choice",
	}
	for rank, want := range tests {
		if got := choiceLabel(rank); got != want {
			t.Errorf("choiceLabel(%d) = %q, want %q", rank, got, want)
		}
	}
}
