package models

import "strings"

// LinkInput 是创建/更新外部链接的输入。
type LinkInput struct {
	Name       string `json:"name" binding:"required,min=1,max=100"`
	Icon       string `json:"icon" binding:"omitempty,url"`
	URL        string `json:"url" binding:"required,url"`
	OrderIndex *int   `json:"orderIndex" binding:"omitempty,gte=0"`
}

// Validate 拒绝仅由空白组成的名称。
func (in LinkInput) Validate() *FieldError {
	if strings.TrimSpace(in.Name) == "" {
		return &FieldError{Field: "name", Message: "name cannot be blank"}
	}
	return nil
}
