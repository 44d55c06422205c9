package models

import (
	"testing"
	"time"
)

func TestExperienceEndDateWithoutStartDate(t *testing.T) {
	end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	in := ExperienceInput{Company: "ACME", Role: "Engineer", Type: "WORK", EndDate: &end}

	err := in.Validate()
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if err.Field != "startDate" {
		t.Fatalf("expected failure attributed to startDate, got %q", err.Field)
	}
}

func TestExperienceDatesValid(t *testing.T) {
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	cases := []ExperienceInput{
		{Company: "ACME", Role: "Engineer", Type: "WORK"},
		{Company: "ACME", Role: "Engineer", Type: "FREELANCE", StartDate: &start},
		{Company: "ACME", Role: "Engineer", Type: "PERMANENT", StartDate: &start, EndDate: &end},
	}
	for i, in := range cases {
		if err := in.Validate(); err != nil {
			t.Errorf("case %d: unexpected error %v", i, err)
		}
	}
}

func TestExperienceInvalidType(t *testing.T) {
	in := ExperienceInput{Company: "ACME", Role: "Engineer", Type: "SABBATICAL"}
	err := in.Validate()
	if err == nil || err.Field != "type" {
		t.Fatalf("expected type field error, got %v", err)
	}
}

func TestEducationEndDateWithoutStartDate(t *testing.T) {
	end := time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC)
	in := EducationInput{School: "MIT", Degree: "BSc", EndDate: &end}

	err := in.Validate()
	if err == nil || err.Field != "startDate" {
		t.Fatalf("expected startDate field error, got %v", err)
	}
}

func TestCvSlugPattern(t *testing.T) {
	base := CvInput{
		Title:          "Backend CV",
		SectionOrder:   "experience,project,skill,education",
		ExperiencesIds: []string{"e1"},
		ProjectsIds:    []string{"p1"},
		SkillsIds:      []string{"s1"},
		EducationsIds:  []string{"ed1"},
	}

	for _, slug := range []string{"backend-cv", "cv-2024", "a"} {
		in := base
		in.Slug = slug
		if err := in.Validate(); err != nil {
			t.Errorf("slug %q: unexpected error %v", slug, err)
		}
	}

	for _, slug := range []string{"Backend", "cv 2024", "cv_2024", "été"} {
		in := base
		in.Slug = slug
		err := in.Validate()
		if err == nil || err.Field != "slug" {
			t.Errorf("slug %q: expected slug field error, got %v", slug, err)
		}
	}
}

func TestLinkBlankName(t *testing.T) {
	in := LinkInput{Name: "   ", URL: "https://example.com"}
	err := in.Validate()
	if err == nil || err.Field != "name" {
		t.Fatalf("expected name field error, got %v", err)
	}
}
