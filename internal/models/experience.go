package models

import (
	"time"

	"portfolio/internal/database"
)

// ExperienceTypes 是职业经历类型的合法取值。
var ExperienceTypes = []string{
	database.ExperienceTypeWork,
	database.ExperienceTypeInternship,
	database.ExperienceTypeApprenticeship,
	database.ExperienceTypeFreelance,
	database.ExperienceTypeVolunteer,
	database.ExperienceTypeFixedTerm,
	database.ExperienceTypePermanent,
}

// ValidExperienceType 判断类型是否在枚举内。
func ValidExperienceType(t string) bool {
	for _, v := range ExperienceTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ExperienceInput 是创建/更新职业经历的输入。
type ExperienceInput struct {
	Company    string     `json:"company" binding:"required,min=1,max=255"`
	CompanyURL string     `json:"companyUrl" binding:"omitempty,url"`
	Role       string     `json:"role" binding:"required,min=1,max=255"`
	StartDate  *time.Time `json:"startDate"`
	EndDate    *time.Time `json:"endDate"`
	Location   string     `json:"location" binding:"omitempty,max=255"`
	SummaryMd  string     `json:"summaryMd"`
	OrderIndex *int       `json:"orderIndex" binding:"omitempty,gte=0"`
	Type       string     `json:"type" binding:"required"`
}

// Validate 检查跨字段规则：结束日期不能在缺少开始日期时单独出现。
func (in ExperienceInput) Validate() *FieldError {
	if in.EndDate != nil && in.StartDate == nil {
		return &FieldError{Field: "startDate", Message: "endDate cannot be set without startDate"}
	}
	if !ValidExperienceType(in.Type) {
		return &FieldError{Field: "type", Message: "invalid experience type"}
	}
	return nil
}
