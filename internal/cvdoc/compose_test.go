package cvdoc

import (
	"reflect"
	"testing"
	"time"

	"portfolio/internal/database"
)

func date(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestParseSectionOrderSkipsUnknownKeys(t *testing.T) {
	got := ParseSectionOrder("experience, hobbies ,project,,skill,education,references")
	want := []string{"experience", "project", "skill", "education"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestComposeFollowsSectionOrder(t *testing.T) {
	version := database.CvVersion{
		ID:           "cv1",
		Title:        "Backend CV",
		Slug:         "backend-cv",
		Theme:        "modern",
		SectionOrder: "skill,experience",
		Experiences: []database.CvVersionExperience{
			{CvID: "cv1", ExperienceID: "e1", Experience: database.Experience{ID: "e1"}},
		},
		Skills: []database.CvVersionSkill{
			{CvID: "cv1", SkillID: "s1", Skill: database.Skill{ID: "s1"}},
		},
	}

	doc := Compose(version)
	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections got %d", len(doc.Sections))
	}
	if doc.Sections[0].Key != "skill" || doc.Sections[1].Key != "experience" {
		t.Fatalf("sections out of order: %v, %v", doc.Sections[0].Key, doc.Sections[1].Key)
	}
	if len(doc.Sections[0].Skills) != 1 || len(doc.Sections[1].Experiences) != 1 {
		t.Fatal("section rows missing")
	}
}

func TestComposeSortsExperiencesByStartDateDesc(t *testing.T) {
	version := database.CvVersion{
		SectionOrder: "experience",
		Experiences: []database.CvVersionExperience{
			{Experience: database.Experience{ID: "old", StartDate: date(2018, 1, 1)}},
			{Experience: database.Experience{ID: "none"}},
			{Experience: database.Experience{ID: "new", StartDate: date(2023, 5, 1)}},
		},
	}

	rows := Compose(version).Sections[0].Experiences
	got := []string{rows[0].ID, rows[1].ID, rows[2].ID}
	want := []string{"new", "old", "none"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestComposeSortsProjectsByOrderIndex(t *testing.T) {
	version := database.CvVersion{
		SectionOrder: "project,skill",
		Projects: []database.CvVersionProject{
			{Project: database.Project{ID: "p2", OrderIndex: 2}},
			{Project: database.Project{ID: "p0", OrderIndex: 0}},
			{Project: database.Project{ID: "p1", OrderIndex: 1}},
		},
		Skills: []database.CvVersionSkill{
			{Skill: database.Skill{ID: "s1", OrderIndex: 1}},
			{Skill: database.Skill{ID: "s0", OrderIndex: 0}},
		},
	}

	doc := Compose(version)
	projects := doc.Sections[0].Projects
	if projects[0].ID != "p0" || projects[1].ID != "p1" || projects[2].ID != "p2" {
		t.Fatalf("projects out of order: %v", projects)
	}
	skills := doc.Sections[1].Skills
	if skills[0].ID != "s0" || skills[1].ID != "s1" {
		t.Fatalf("skills out of order: %v", skills)
	}
}
