// Package cvdoc 将一份简历版本及其关联行组装为有序的可渲染文档。
package cvdoc

import (
	"sort"
	"strings"
	"time"

	"portfolio/internal/database"
)

// 分区键的合法取值；sectionOrder 中的未知键会被静默跳过。
const (
	SectionExperience = "experience"
	SectionProject    = "project"
	SectionSkill      = "skill"
	SectionEducation  = "education"
)

// Document 是按 sectionOrder 展开后的简历文档。
type Document struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Slug     string    `json:"slug"`
	Theme    string    `json:"theme"`
	Sections []Section `json:"sections"`
}

// Section 携带单个分区的键与该分区下已排序的行。
type Section struct {
	Key         string                `json:"key"`
	Experiences []database.Experience `json:"experiences,omitempty"`
	Projects    []database.Project    `json:"projects,omitempty"`
	Skills      []database.Skill      `json:"skills,omitempty"`
	Educations  []database.Education  `json:"educations,omitempty"`
}

// ParseSectionOrder 解析逗号拼接的分区顺序串，丢弃空白与未知键。
func ParseSectionOrder(order string) []string {
	var keys []string
	for _, raw := range strings.Split(order, ",") {
		key := strings.TrimSpace(raw)
		switch key {
		case SectionExperience, SectionProject, SectionSkill, SectionEducation:
			keys = append(keys, key)
		}
	}
	return keys
}

// Compose 按版本的 sectionOrder 组装文档。
// 各分区排序：经历与教育按开始日期倒序（无日期的排最后），
// 项目与技能按 orderIndex 升序。
func Compose(version database.CvVersion) Document {
	doc := Document{
		ID:    version.ID,
		Title: version.Title,
		Slug:  version.Slug,
		Theme: version.Theme,
	}

	for _, key := range ParseSectionOrder(version.SectionOrder) {
		section := Section{Key: key}
		switch key {
		case SectionExperience:
			section.Experiences = sortedExperiences(version.Experiences)
		case SectionProject:
			section.Projects = sortedProjects(version.Projects)
		case SectionSkill:
			section.Skills = sortedSkills(version.Skills)
		case SectionEducation:
			section.Educations = sortedEducations(version.Educations)
		}
		doc.Sections = append(doc.Sections, section)
	}

	return doc
}

func sortedExperiences(joins []database.CvVersionExperience) []database.Experience {
	rows := make([]database.Experience, 0, len(joins))
	for _, j := range joins {
		rows = append(rows, j.Experience)
	}
	sort.SliceStable(rows, func(i, k int) bool {
		return laterStart(rows[i].StartDate, rows[k].StartDate)
	})
	return rows
}

func sortedEducations(joins []database.CvVersionEducation) []database.Education {
	rows := make([]database.Education, 0, len(joins))
	for _, j := range joins {
		rows = append(rows, j.Education)
	}
	sort.SliceStable(rows, func(i, k int) bool {
		return laterStart(rows[i].StartDate, rows[k].StartDate)
	})
	return rows
}

func sortedProjects(joins []database.CvVersionProject) []database.Project {
	rows := make([]database.Project, 0, len(joins))
	for _, j := range joins {
		rows = append(rows, j.Project)
	}
	sort.SliceStable(rows, func(i, k int) bool { return rows[i].OrderIndex < rows[k].OrderIndex })
	return rows
}

func sortedSkills(joins []database.CvVersionSkill) []database.Skill {
	rows := make([]database.Skill, 0, len(joins))
	for _, j := range joins {
		rows = append(rows, j.Skill)
	}
	sort.SliceStable(rows, func(i, k int) bool { return rows[i].OrderIndex < rows[k].OrderIndex })
	return rows
}

// laterStart 实现开始日期倒序，nil 视为最早。
func laterStart(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.After(*b)
	}
}
