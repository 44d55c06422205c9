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

// EducationHandler 负责教育经历的 CRUD。
type EducationHandler struct {
	db *gorm.DB
}

// NewEducationHandler 构造 EducationHandler。
func NewEducationHandler(db *gorm.DB) *EducationHandler {
	return &EducationHandler{db: db}
}

// GetAll 按 orderIndex 升序返回全部教育经历，公开可读。
func (h *EducationHandler) GetAll(c *gin.Context) {
	var rows []database.Education
	if err := h.db.WithContext(c.Request.Context()).
		Order("order_index asc").
		Find(&rows).Error; err != nil {
		Internal(c, "failed to list educations")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetByID 返回单条教育经历，公开可读。
func (h *EducationHandler) GetByID(c *gin.Context) {
	var row database.Education
	if err := h.db.WithContext(c.Request.Context()).
		First(&row, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "education not found")
			return
		}
		Internal(c, "failed to query education")
		return
	}
	c.JSON(http.StatusOK, row)
}

// Create 新建一条教育经历。
func (h *EducationHandler) Create(c *gin.Context) {
	if !accesscontrol.Can(middleware.SessionFromContext(c)).CreateAny("education").Granted {
		Forbidden(c, "you are not authorized to create education records")
		return
	}

	var in models.EducationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if ferr := in.Validate(); ferr != nil {
		ValidationFailed(c, ferr)
		return
	}

	row := database.Education{
		School:    in.School,
		Degree:    in.Degree,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		DetailsMd: in.DetailsMd,
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		index, err := nextOrderIndex(tx, &database.Education{}, in.OrderIndex)
		if err != nil {
			return err
		}
		row.OrderIndex = index
		return tx.Create(&row).Error
	})
	if err != nil {
		Internal(c, "failed to create education")
		return
	}

	c.JSON(http.StatusCreated, row)
}

// Update 整行覆盖一条教育经历。
func (h *EducationHandler) Update(c *gin.Context) {
	if !accesscontrol.Can(middleware.SessionFromContext(c)).UpdateAny("education").Granted {
		Forbidden(c, "you are not authorized to update education records")
		return
	}

	var in models.EducationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if ferr := in.Validate(); ferr != nil {
		ValidationFailed(c, ferr)
		return
	}

	ctx := c.Request.Context()
	var row database.Education
	if err := h.db.WithContext(ctx).First(&row, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "education not found")
			return
		}
		Internal(c, "failed to query education")
		return
	}

	row.School = in.School
	row.Degree = in.Degree
	row.StartDate = in.StartDate
	row.EndDate = in.EndDate
	row.DetailsMd = in.DetailsMd
	if in.OrderIndex != nil {
		row.OrderIndex = *in.OrderIndex
	}

	if err := h.db.WithContext(ctx).Save(&row).Error; err != nil {
		Internal(c, "failed to update education")
		return
	}
	c.JSON(http.StatusOK, row)
}

// Delete 按 id 删除一条教育经历。
func (h *EducationHandler) Delete(c *gin.Context) {
	if !accesscontrol.Can(middleware.SessionFromContext(c)).DeleteAny("education").Granted {
		Forbidden(c, "you are not authorized to delete education records")
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&database.Education{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		Internal(c, "failed to delete education")
		return
	}
	if res.RowsAffected == 0 {
		NotFound(c, "education not found")
		return
	}
	c.Status(http.StatusNoContent)
}
