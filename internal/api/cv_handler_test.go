package api

import (
	"net/http"
	"testing"

	"gorm.io/gorm"

	"portfolio/internal/cvdoc"
	"portfolio/internal/database"
)

func seedCvEntities(t *testing.T, db *gorm.DB) (exp, edu, proj, skill string) {
	t.Helper()
	e := database.Experience{Company: "ACME", Role: "Backend Engineer", Type: database.ExperienceTypeWork}
	d := database.Education{School: "EPFL", Degree: "MSc"}
	p := database.Project{Name: "portfolio"}
	s := database.Skill{Name: "Go"}
	for _, row := range []any{&e, &d, &p, &s} {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return e.ID, d.ID, p.ID, s.ID
}

func cvBody(slug string, exp, edu, proj, skill string) map[string]any {
	return map[string]any{
		"title":          "Backend CV",
		"slug":           slug,
		"sectionOrder":   "experience,skill,project,education",
		"experiencesIds": []string{exp},
		"educationsIds":  []string{edu},
		"projectsIds":    []string{proj},
		"skillsIds":      []string{skill},
	}
}

func countJoins(t *testing.T, db *gorm.DB, cvID string) (exps, projs, skills, edus int64) {
	t.Helper()
	for _, q := range []struct {
		model any
		out   *int64
	}{
		{&database.CvVersionExperience{}, &exps},
		{&database.CvVersionProject{}, &projs},
		{&database.CvVersionSkill{}, &skills},
		{&database.CvVersionEducation{}, &edus},
	} {
		if err := db.Model(q.model).Where("cv_id = ?", cvID).Count(q.out).Error; err != nil {
			t.Fatalf("count joins: %v", err)
		}
	}
	return
}

func TestCreateCvWritesJoinRows(t *testing.T) {
	db := newTestDB(t)
	h := NewCvHandler(db)
	exp, edu, proj, skill := seedCvEntities(t, db)

	c, w := newJSONContext(t, http.MethodPost, "/v1/cvs", cvBody("backend", exp, edu, proj, skill))
	asAdmin(c)
	h.Create(c)
	mustStatus(t, w, http.StatusCreated)

	var created database.CvVersion
	decodeBody(t, w, &created)
	if created.Theme != "modern" {
		t.Fatalf("missing theme should fall back to modern, got %q", created.Theme)
	}

	exps, projs, skills, edus := countJoins(t, db, created.ID)
	if exps != 1 || projs != 1 || skills != 1 || edus != 1 {
		t.Fatalf("expected one join row per category, got exp=%d proj=%d skill=%d edu=%d", exps, projs, skills, edus)
	}
}

func TestUpdateCvReplacesJoinRows(t *testing.T) {
	db := newTestDB(t)
	h := NewCvHandler(db)
	exp, edu, proj, skill := seedCvEntities(t, db)

	other := database.Experience{Company: "Globex", Role: "SRE", Type: database.ExperienceTypeWork}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	c, w := newJSONContext(t, http.MethodPost, "/v1/cvs", cvBody("backend", exp, edu, proj, skill))
	asAdmin(c)
	h.Create(c)
	mustStatus(t, w, http.StatusCreated)
	var created database.CvVersion
	decodeBody(t, w, &created)

	c, w = newJSONContext(t, http.MethodPut, "/v1/cvs/"+created.ID, cvBody("backend", other.ID, edu, proj, skill))
	asAdmin(c)
	setParam(c, "id", created.ID)
	h.Update(c)
	mustStatus(t, w, http.StatusOK)

	var joins []database.CvVersionExperience
	if err := db.Where("cv_id = ?", created.ID).Find(&joins).Error; err != nil {
		t.Fatalf("load joins: %v", err)
	}
	if len(joins) != 1 || joins[0].ExperienceID != other.ID {
		t.Fatalf("update should leave exactly the new experience join, got %+v", joins)
	}
}

func TestCreateCvDuplicateSlug(t *testing.T) {
	db := newTestDB(t)
	h := NewCvHandler(db)
	exp, edu, proj, skill := seedCvEntities(t, db)

	c, w := newJSONContext(t, http.MethodPost, "/v1/cvs", cvBody("backend", exp, edu, proj, skill))
	asAdmin(c)
	h.Create(c)
	mustStatus(t, w, http.StatusCreated)

	c, w = newJSONContext(t, http.MethodPost, "/v1/cvs", cvBody("backend", exp, edu, proj, skill))
	asAdmin(c)
	h.Create(c)
	mustStatus(t, w, http.StatusConflict)
}

func TestCreateCvRejectsBadSlug(t *testing.T) {
	db := newTestDB(t)
	h := NewCvHandler(db)
	exp, edu, proj, skill := seedCvEntities(t, db)

	c, w := newJSONContext(t, http.MethodPost, "/v1/cvs", cvBody("Backend CV!", exp, edu, proj, skill))
	asAdmin(c)
	h.Create(c)
	mustStatus(t, w, http.StatusBadRequest)

	var body struct {
		Field string `json:"field"`
	}
	decodeBody(t, w, &body)
	if body.Field != "slug" {
		t.Fatalf("expected failure attributed to slug, got %q", body.Field)
	}
}

func TestGetCvBySlugComposesDocument(t *testing.T) {
	db := newTestDB(t)
	h := NewCvHandler(db)
	exp, edu, proj, skill := seedCvEntities(t, db)

	c, w := newJSONContext(t, http.MethodPost, "/v1/cvs", cvBody("backend", exp, edu, proj, skill))
	asAdmin(c)
	h.Create(c)
	mustStatus(t, w, http.StatusCreated)

	c, w = newJSONContext(t, http.MethodGet, "/v1/cvs/slug/backend", nil)
	setParam(c, "slug", "backend")
	h.GetBySlug(c)
	mustStatus(t, w, http.StatusOK)

	var doc struct {
		Slug     string `json:"slug"`
		Sections []struct {
			Key string `json:"key"`
		} `json:"sections"`
	}
	decodeBody(t, w, &doc)
	if doc.Slug != "backend" {
		t.Fatalf("unexpected slug %q", doc.Slug)
	}
	keys := make([]string, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		keys = append(keys, s.Key)
	}
	want := []string{
		cvdoc.SectionExperience,
		cvdoc.SectionSkill,
		cvdoc.SectionProject,
		cvdoc.SectionEducation,
	}
	if len(keys) != len(want) {
		t.Fatalf("expected sections %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected sections %v, got %v", want, keys)
		}
	}
}

func TestDeleteCvRemovesRow(t *testing.T) {
	db := newTestDB(t)
	h := NewCvHandler(db)
	exp, edu, proj, skill := seedCvEntities(t, db)

	c, w := newJSONContext(t, http.MethodPost, "/v1/cvs", cvBody("backend", exp, edu, proj, skill))
	asAdmin(c)
	h.Create(c)
	mustStatus(t, w, http.StatusCreated)
	var created database.CvVersion
	decodeBody(t, w, &created)

	c, w = newJSONContext(t, http.MethodDelete, "/v1/cvs/"+created.ID, nil)
	asAdmin(c)
	setParam(c, "id", created.ID)
	h.Delete(c)
	// c.Status 延迟写头，直连处理器时需要显式刷出。
	c.Writer.WriteHeaderNow()
	mustStatus(t, w, http.StatusNoContent)

	var count int64
	if err := db.Model(&database.CvVersion{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("cv row should be gone, found %d", count)
	}

	exps, projs, skills, edus := countJoins(t, db, created.ID)
	if exps != 0 || projs != 0 || skills != 0 || edus != 0 {
		t.Fatalf("cascade should clear join rows, got exp=%d proj=%d skill=%d edu=%d", exps, projs, skills, edus)
	}
}
