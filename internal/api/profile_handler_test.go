package api

import (
	"net/http"
	"testing"

	"portfolio/internal/database"
)

func TestGetProfileEmptyReturnsNull(t *testing.T) {
	db := newTestDB(t)
	h := NewProfileHandler(db)

	c, w := newJSONContext(t, http.MethodGet, "/v1/profile", nil)
	h.Get(c)
	mustStatus(t, w, http.StatusOK)

	if body := w.Body.String(); body != "null" {
		t.Fatalf("empty profile should render null, got %q", body)
	}
}

func TestProfileUpsertTwiceKeepsSingleRow(t *testing.T) {
	db := newTestDB(t)
	h := NewProfileHandler(db)

	c, w := newJSONContext(t, http.MethodPut, "/v1/profile", map[string]any{
		"fullName": "Ada Lovelace",
		"headline": "engineer",
	})
	asAdmin(c)
	h.Upsert(c)
	mustStatus(t, w, http.StatusOK)

	c, w = newJSONContext(t, http.MethodPut, "/v1/profile", map[string]any{
		"fullName": "Grace Hopper",
	})
	asAdmin(c)
	h.Upsert(c)
	mustStatus(t, w, http.StatusOK)

	var count int64
	if err := db.Model(&database.Profile{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("upsert must keep a single row, found %d", count)
	}

	var row database.Profile
	if err := db.First(&row, "id = ?", database.ProfileID).Error; err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if row.FullName != "Grace Hopper" {
		t.Fatalf("second upsert should win, got %q", row.FullName)
	}
}

func TestProfileUpsertForbiddenForViewer(t *testing.T) {
	db := newTestDB(t)
	h := NewProfileHandler(db)

	c, w := newJSONContext(t, http.MethodPut, "/v1/profile", map[string]any{
		"fullName": "Ada Lovelace",
	})
	h.Upsert(c)
	mustStatus(t, w, http.StatusForbidden)
}

func TestProfileUpsertRejectsBadWebsite(t *testing.T) {
	db := newTestDB(t)
	h := NewProfileHandler(db)

	c, w := newJSONContext(t, http.MethodPut, "/v1/profile", map[string]any{
		"fullName": "Ada Lovelace",
		"website":  "not a url",
	})
	asAdmin(c)
	h.Upsert(c)
	mustStatus(t, w, http.StatusBadRequest)
}
