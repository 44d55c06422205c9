// Package models 定义各实体的输入结构与校验规则。
// 必填/长度/URL/邮箱规则由 gin binding 标签承担，跨字段规则由
// Validate 方法补充，失败时返回归属到具体字段的 FieldError。
package models

// FieldError 表示一次字段级校验失败。
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}
