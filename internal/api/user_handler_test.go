package api

import (
	"log/slog"
	"net/http"
	"testing"

	"portfolio/internal/auth"
	"portfolio/internal/database"
)

func TestCreateUserWritesAuditRow(t *testing.T) {
	db := newTestDB(t)
	h := NewUserHandler(db, slog.Default())

	c, w := newJSONContext(t, http.MethodPost, "/v1/users", map[string]any{
		"name":     "Proof Reader",
		"email":    "reader@example.com",
		"password": "correct horse battery",
		"role":     "viewer",
	})
	asAdmin(c)
	h.Create(c)
	mustStatus(t, w, http.StatusCreated)

	var created database.User
	decodeBody(t, w, &created)
	if created.PasswordHash != "" {
		t.Fatalf("password hash must not be serialized")
	}

	var stored database.User
	if err := db.First(&stored, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "correct horse battery" {
		t.Fatalf("password must be stored hashed, got %q", stored.PasswordHash)
	}
	if !auth.CheckPasswordHash("correct horse battery", stored.PasswordHash) {
		t.Fatalf("stored hash does not verify against the original password")
	}

	var logs []database.AuditLog
	if err := db.Find(&logs).Error; err != nil {
		t.Fatalf("load audit logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected one audit row, got %d", len(logs))
	}
	entry := logs[0]
	if entry.Action != database.AuditActionCreate || entry.TargetType != database.AuditTargetUser || entry.TargetID != created.ID {
		t.Fatalf("unexpected audit row: %+v", entry)
	}
	if entry.AuthorID == nil || *entry.AuthorID != "admin-1" {
		t.Fatalf("audit row should carry the acting admin, got %+v", entry.AuthorID)
	}
}

func TestCreateUserEmailConflict(t *testing.T) {
	db := newTestDB(t)
	h := NewUserHandler(db, slog.Default())

	body := map[string]any{
		"name":     "Proof Reader",
		"email":    "reader@example.com",
		"password": "correct horse battery",
		"role":     "viewer",
	}

	c, w := newJSONContext(t, http.MethodPost, "/v1/users", body)
	asAdmin(c)
	h.Create(c)
	mustStatus(t, w, http.StatusCreated)

	c, w = newJSONContext(t, http.MethodPost, "/v1/users", body)
	asAdmin(c)
	h.Create(c)
	mustStatus(t, w, http.StatusConflict)

	var count int64
	if err := db.Model(&database.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("conflict must not add a row, found %d", count)
	}
}

func TestCreateUserForbiddenForViewer(t *testing.T) {
	db := newTestDB(t)
	h := NewUserHandler(db, slog.Default())

	c, w := newJSONContext(t, http.MethodPost, "/v1/users", map[string]any{
		"name":     "Proof Reader",
		"email":    "reader@example.com",
		"password": "correct horse battery",
		"role":     "viewer",
	})
	h.Create(c)
	mustStatus(t, w, http.StatusForbidden)
}

func TestGetSessionUnauthenticated(t *testing.T) {
	db := newTestDB(t)
	h := NewUserHandler(db, slog.Default())

	c, w := newJSONContext(t, http.MethodGet, "/v1/users/session", nil)
	h.GetSession(c)
	mustStatus(t, w, http.StatusUnauthorized)
}

func TestDeleteUserNotFound(t *testing.T) {
	db := newTestDB(t)
	h := NewUserHandler(db, slog.Default())

	c, w := newJSONContext(t, http.MethodDelete, "/v1/users/missing", nil)
	asAdmin(c)
	setParam(c, "id", "missing")
	h.Delete(c)
	mustStatus(t, w, http.StatusNotFound)
}
