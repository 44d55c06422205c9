package models

import "time"

// EducationInput 是创建/更新教育经历的输入。
type EducationInput struct {
	School     string     `json:"school" binding:"required,min=1,max=255"`
	Degree     string     `json:"degree" binding:"required,min=1,max=255"`
	StartDate  *time.Time `json:"startDate"`
	EndDate    *time.Time `json:"endDate"`
	DetailsMd  string     `json:"detailsMd"`
	OrderIndex *int       `json:"orderIndex" binding:"omitempty,gte=0"`
}

// Validate 检查跨字段规则，失败归属到 startDate 字段。
func (in EducationInput) Validate() *FieldError {
	if in.EndDate != nil && in.StartDate == nil {
		return &FieldError{Field: "startDate", Message: "endDate cannot be set without startDate"}
	}
	return nil
}
