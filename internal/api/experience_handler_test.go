package api

import (
	"net/http"
	"testing"

	"portfolio/internal/database"
)

func TestCreateExperienceDefaultsOrderIndex(t *testing.T) {
	db := newTestDB(t)
	h := NewExperienceHandler(db)

	c, w := newJSONContext(t, http.MethodPost, "/v1/experiences", map[string]any{
		"company": "ACME",
		"role":    "Backend Engineer",
		"type":    "WORK",
	})
	asAdmin(c)
	h.Create(c)
	mustStatus(t, w, http.StatusCreated)

	var first database.Experience
	decodeBody(t, w, &first)
	if first.OrderIndex != 0 {
		t.Fatalf("first row on empty table should get index 0, got %d", first.OrderIndex)
	}

	c, w = newJSONContext(t, http.MethodPost, "/v1/experiences", map[string]any{
		"company": "Globex",
		"role":    "SRE",
		"type":    "FREELANCE",
	})
	asAdmin(c)
	h.Create(c)
	mustStatus(t, w, http.StatusCreated)

	var second database.Experience
	decodeBody(t, w, &second)
	if second.OrderIndex != 1 {
		t.Fatalf("second row should get max+1 = 1, got %d", second.OrderIndex)
	}
}

func TestCreateExperienceExplicitOrderIndex(t *testing.T) {
	db := newTestDB(t)
	h := NewExperienceHandler(db)

	c, w := newJSONContext(t, http.MethodPost, "/v1/experiences", map[string]any{
		"company":    "ACME",
		"role":       "Backend Engineer",
		"type":       "WORK",
		"orderIndex": 7,
	})
	asAdmin(c)
	h.Create(c)
	mustStatus(t, w, http.StatusCreated)

	var row database.Experience
	decodeBody(t, w, &row)
	if row.OrderIndex != 7 {
		t.Fatalf("explicit index should be kept, got %d", row.OrderIndex)
	}
}

func TestCreateExperienceForbiddenWithoutSession(t *testing.T) {
	db := newTestDB(t)
	h := NewExperienceHandler(db)

	c, w := newJSONContext(t, http.MethodPost, "/v1/experiences", map[string]any{
		"company": "ACME",
		"role":    "Backend Engineer",
		"type":    "WORK",
	})
	h.Create(c)
	mustStatus(t, w, http.StatusForbidden)

	var count int64
	if err := db.Model(&database.Experience{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("forbidden create must not write rows, found %d", count)
	}
}

func TestCreateExperienceEndDateWithoutStartDate(t *testing.T) {
	db := newTestDB(t)
	h := NewExperienceHandler(db)

	c, w := newJSONContext(t, http.MethodPost, "/v1/experiences", map[string]any{
		"company": "ACME",
		"role":    "Backend Engineer",
		"type":    "WORK",
		"endDate": "2024-06-01T00:00:00Z",
	})
	asAdmin(c)
	h.Create(c)
	mustStatus(t, w, http.StatusBadRequest)

	var body struct {
		Field string `json:"field"`
	}
	decodeBody(t, w, &body)
	if body.Field != "startDate" {
		t.Fatalf("expected failure attributed to startDate, got %q", body.Field)
	}
}

func TestExperienceRoundTrip(t *testing.T) {
	db := newTestDB(t)
	h := NewExperienceHandler(db)

	c, w := newJSONContext(t, http.MethodPost, "/v1/experiences", map[string]any{
		"company":   "ACME",
		"role":      "Backend Engineer",
		"type":      "PERMANENT",
		"location":  "Lyon",
		"summaryMd": "built things",
	})
	asAdmin(c)
	h.Create(c)
	mustStatus(t, w, http.StatusCreated)

	var created database.Experience
	decodeBody(t, w, &created)

	c, w = newJSONContext(t, http.MethodGet, "/v1/experiences/"+created.ID, nil)
	setParam(c, "id", created.ID)
	h.GetByID(c)
	mustStatus(t, w, http.StatusOK)

	var fetched database.Experience
	decodeBody(t, w, &fetched)
	if fetched.ID != created.ID || fetched.Company != "ACME" || fetched.Role != "Backend Engineer" ||
		fetched.Location != "Lyon" || fetched.SummaryMd != "built things" || fetched.OrderIndex != 0 {
		t.Fatalf("round trip mismatch: %+v", fetched)
	}
}

func TestDeleteExperienceNotFound(t *testing.T) {
	db := newTestDB(t)
	h := NewExperienceHandler(db)

	c, w := newJSONContext(t, http.MethodDelete, "/v1/experiences/missing", nil)
	asAdmin(c)
	setParam(c, "id", "missing")
	h.Delete(c)
	mustStatus(t, w, http.StatusNotFound)
}

func TestUpdateExperienceClearsOmittedOptionals(t *testing.T) {
	db := newTestDB(t)
	h := NewExperienceHandler(db)

	c, w := newJSONContext(t, http.MethodPost, "/v1/experiences", map[string]any{
		"company":  "ACME",
		"role":     "Backend Engineer",
		"type":     "WORK",
		"location": "Lyon",
	})
	asAdmin(c)
	h.Create(c)
	mustStatus(t, w, http.StatusCreated)
	var created database.Experience
	decodeBody(t, w, &created)

	c, w = newJSONContext(t, http.MethodPut, "/v1/experiences/"+created.ID, map[string]any{
		"company": "ACME",
		"role":    "Platform Engineer",
		"type":    "WORK",
	})
	asAdmin(c)
	setParam(c, "id", created.ID)
	h.Update(c)
	mustStatus(t, w, http.StatusOK)

	var updated database.Experience
	decodeBody(t, w, &updated)
	if updated.Role != "Platform Engineer" {
		t.Fatalf("role not updated: %+v", updated)
	}
	if updated.Location != "" {
		t.Fatalf("omitted optional field should be cleared, got %q", updated.Location)
	}
}
