package models

import "gorm.io/datatypes"

// ProfileInput 是站点主人信息的 upsert 输入。
type ProfileInput struct {
	FullName string         `json:"fullName" binding:"required,min=1,max=255"`
	Headline string         `json:"headline" binding:"omitempty,max=255"`
	Location string         `json:"location" binding:"omitempty,max=255"`
	Website  string         `json:"website" binding:"omitempty,url"`
	JobTitle string         `json:"jobTitle" binding:"omitempty,max=255"`
	Email    string         `json:"email" binding:"omitempty,email"`
	Phone    string         `json:"phone" binding:"omitempty,max=64"`
	AboutMd  datatypes.JSON `json:"aboutMd"`
}

// Validate 个人信息没有跨字段规则。
func (in ProfileInput) Validate() *FieldError { return nil }
