package models

// ProjectInput 是创建/更新项目的输入。
type ProjectInput struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Picture     string `json:"picture" binding:"omitempty,url"`
	PreviewText string `json:"previewText" binding:"omitempty,max=512"`
	SummaryMd   string `json:"summaryMd"`
	URL         string `json:"url" binding:"omitempty,url"`
	RepoURL     string `json:"repoUrl" binding:"omitempty,url"`
	OrderIndex  *int   `json:"orderIndex" binding:"omitempty,gte=0"`
}

// Validate 项目没有跨字段规则，保留方法以统一处理流程。
func (in ProjectInput) Validate() *FieldError { return nil }
