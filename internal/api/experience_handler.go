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

// ExperienceHandler 负责职业经历的 CRUD。
type ExperienceHandler struct {
	db *gorm.DB
}

// NewExperienceHandler 构造 ExperienceHandler。
func NewExperienceHandler(db *gorm.DB) *ExperienceHandler {
	return &ExperienceHandler{db: db}
}

// GetAll 按 orderIndex 升序返回全部经历，公开可读。
func (h *ExperienceHandler) GetAll(c *gin.Context) {
	var rows []database.Experience
	if err := h.db.WithContext(c.Request.Context()).
		Order("order_index asc").
		Find(&rows).Error; err != nil {
		Internal(c, "failed to list experiences")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetByID 返回单条经历，公开可读。
func (h *ExperienceHandler) GetByID(c *gin.Context) {
	var row database.Experience
	if err := h.db.WithContext(c.Request.Context()).
		First(&row, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "experience not found")
			return
		}
		Internal(c, "failed to query experience")
		return
	}
	c.JSON(http.StatusOK, row)
}

// Create 新建一条经历。序号缺省时在同一事务内取 max+1。
func (h *ExperienceHandler) Create(c *gin.Context) {
	if !accesscontrol.Can(middleware.SessionFromContext(c)).CreateAny("experience").Granted {
		Forbidden(c, "you are not authorized to create experience records")
		return
	}

	var in models.ExperienceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if ferr := in.Validate(); ferr != nil {
		ValidationFailed(c, ferr)
		return
	}

	row := database.Experience{
		Company:    in.Company,
		CompanyURL: in.CompanyURL,
		Role:       in.Role,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Location:   in.Location,
		SummaryMd:  in.SummaryMd,
		Type:       in.Type,
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		index, err := nextOrderIndex(tx, &database.Experience{}, in.OrderIndex)
		if err != nil {
			return err
		}
		row.OrderIndex = index
		return tx.Create(&row).Error
	})
	if err != nil {
		Internal(c, "failed to create experience")
		return
	}

	c.JSON(http.StatusCreated, row)
}

// Update 整行覆盖一条经历，未提供的可选字段会被清空。
func (h *ExperienceHandler) Update(c *gin.Context) {
	if !accesscontrol.Can(middleware.SessionFromContext(c)).UpdateAny("experience").Granted {
		Forbidden(c, "you are not authorized to update experience records")
		return
	}

	var in models.ExperienceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if ferr := in.Validate(); ferr != nil {
		ValidationFailed(c, ferr)
		return
	}

	ctx := c.Request.Context()
	var row database.Experience
	if err := h.db.WithContext(ctx).First(&row, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "experience not found")
			return
		}
		Internal(c, "failed to query experience")
		return
	}

	row.Company = in.Company
	row.CompanyURL = in.CompanyURL
	row.Role = in.Role
	row.StartDate = in.StartDate
	row.EndDate = in.EndDate
	row.Location = in.Location
	row.SummaryMd = in.SummaryMd
	row.Type = in.Type
	if in.OrderIndex != nil {
		row.OrderIndex = *in.OrderIndex
	}

	if err := h.db.WithContext(ctx).Save(&row).Error; err != nil {
		Internal(c, "failed to update experience")
		return
	}
	c.JSON(http.StatusOK, row)
}

// Delete 按 id 删除，行不存在时由存储层信号映射为 404。
func (h *ExperienceHandler) Delete(c *gin.Context) {
	if !accesscontrol.Can(middleware.SessionFromContext(c)).DeleteAny("experience").Granted {
		Forbidden(c, "you are not authorized to delete experience records")
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&database.Experience{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		Internal(c, "failed to delete experience")
		return
	}
	if res.RowsAffected == 0 {
		NotFound(c, "experience not found")
		return
	}
	c.Status(http.StatusNoContent)
}
