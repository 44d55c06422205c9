package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"portfolio/internal/accesscontrol"
	"portfolio/internal/api/middleware"
	"portfolio/internal/database"
	"portfolio/internal/models"
)

// ProjectHandler 负责作品集项目的 CRUD。
type ProjectHandler struct {
	db *gorm.DB
}

// NewProjectHandler 构造 ProjectHandler。
func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{db: db}
}

// GetAll 按 orderIndex 升序返回全部项目，公开可读。
func (h *ProjectHandler) GetAll(c *gin.Context) {
	var rows []database.Project
	if err := h.db.WithContext(c.Request.Context()).
		Order("order_index asc").
		Find(&rows).Error; err != nil {
		Internal(c, "failed to list projects")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetByID 返回单个项目，公开可读。
func (h *ProjectHandler) GetByID(c *gin.Context) {
	var row database.Project
	if err := h.db.WithContext(c.Request.Context()).
		First(&row, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "project not found")
			return
		}
		Internal(c, "failed to query project")
		return
	}
	c.JSON(http.StatusOK, row)
}

// Create 新建一个项目。
func (h *ProjectHandler) Create(c *gin.Context) {
	if !accesscontrol.Can(middleware.SessionFromContext(c)).CreateAny("project").Granted {
		Forbidden(c, "you are not authorized to create project records")
		return
	}

	var in models.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if ferr := in.Validate(); ferr != nil {
		ValidationFailed(c, ferr)
		return
	}

	row := database.Project{
		Name:        in.Name,
		Picture:     in.Picture,
		PreviewText: in.PreviewText,
		SummaryMd:   in.SummaryMd,
		URL:         in.URL,
		RepoURL:     in.RepoURL,
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		index, err := nextOrderIndex(tx, &database.Project{}, in.OrderIndex)
		if err != nil {
			return err
		}
		row.OrderIndex = index
		return tx.Create(&row).Error
	})
	if err != nil {
		Internal(c, "failed to create project")
		return
	}

	c.JSON(http.StatusCreated, row)
}

// Update 整行覆盖一个项目。
func (h *ProjectHandler) Update(c *gin.Context) {
	if !accesscontrol.Can(middleware.SessionFromContext(c)).UpdateAny("project").Granted {
		Forbidden(c, "you are not authorized to update project records")
		return
	}

	var in models.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if ferr := in.Validate(); ferr != nil {
		ValidationFailed(c, ferr)
		return
	}

	ctx := c.Request.Context()
	var row database.Project
	if err := h.db.WithContext(ctx).First(&row, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "project not found")
			return
		}
		Internal(c, "failed to query project")
		return
	}

	row.Name = in.Name
	row.Picture = in.Picture
	row.PreviewText = in.PreviewText
	row.SummaryMd = in.SummaryMd
	row.URL = in.URL
	row.RepoURL = in.RepoURL
	if in.OrderIndex != nil {
		row.OrderIndex = *in.OrderIndex
	}

	if err := h.db.WithContext(ctx).Save(&row).Error; err != nil {
		Internal(c, "failed to update project")
		return
	}
	c.JSON(http.StatusOK, row)
}

// Delete 按 id 删除一个项目。
func (h *ProjectHandler) Delete(c *gin.Context) {
	if !accesscontrol.Can(middleware.SessionFromContext(c)).DeleteAny("project").Granted {
		Forbidden(c, "you are not authorized to delete project records")
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&database.Project{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		Internal(c, "failed to delete project")
		return
	}
	if res.RowsAffected == 0 {
		NotFound(c, "project not found")
		return
	}
	c.Status(http.StatusNoContent)
}
