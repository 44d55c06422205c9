package models

import "regexp"

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// CvInput 是创建/更新简历版本的输入。四个 id 列表各自至少包含一项：
// 一份简历必须引用每个类别中至少一条记录。
type CvInput struct {
	Title        string `json:"title" binding:"required,min=1,max=100"`
	Slug         string `json:"slug" binding:"required,min=1,max=100"`
	Theme        string `json:"theme"`
	SectionOrder string `json:"sectionOrder" binding:"required,min=1"`

	ExperiencesIds []string `json:"experiencesIds" binding:"required,min=1"`
	ProjectsIds    []string `json:"projectsIds" binding:"required,min=1"`
	SkillsIds      []string `json:"skillsIds" binding:"required,min=1"`
	EducationsIds  []string `json:"educationsIds" binding:"required,min=1"`
}

// Validate 检查 slug 只含小写字母、数字与连字符。
func (in CvInput) Validate() *FieldError {
	if !slugPattern.MatchString(in.Slug) {
		return &FieldError{Field: "slug", Message: "slug may only contain lowercase letters, digits and hyphens"}
	}
	return nil
}
