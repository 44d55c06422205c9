package models

// CreateUserInput 是管理员创建账号的输入。
type CreateUserInput struct {
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"required"`
	Image    string `json:"image" binding:"omitempty,url"`
}

// Validate 账号创建没有跨字段规则。
func (in CreateUserInput) Validate() *FieldError { return nil }

// UpdateUserInput 是管理员更新账号的输入，仅允许改名称与头像。
type UpdateUserInput struct {
	Name  string `json:"name" binding:"required,min=1,max=255"`
	Email string `json:"email" binding:"required,email"`
	Image string `json:"image" binding:"omitempty,url"`
}
