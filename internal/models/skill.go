package models

// SkillInput 是创建/更新技能的输入。
type SkillInput struct {
	Name       string `json:"name" binding:"required,min=1,max=255"`
	Level      string `json:"level" binding:"omitempty,max=64"`
	OrderIndex *int   `json:"orderIndex" binding:"omitempty,gte=0"`
}

// Validate 技能没有跨字段规则。
func (in SkillInput) Validate() *FieldError { return nil }
