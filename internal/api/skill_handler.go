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

// SkillHandler 负责技能的 CRUD。
type SkillHandler struct {
	db *gorm.DB
}

// NewSkillHandler 构造 SkillHandler。
func NewSkillHandler(db *gorm.DB) *SkillHandler {
	return &SkillHandler{db: db}
}

// GetAll 按 orderIndex 升序返回全部技能，公开可读。
func (h *SkillHandler) GetAll(c *gin.Context) {
	var rows []database.Skill
	if err := h.db.WithContext(c.Request.Context()).
		Order("order_index asc").
		Find(&rows).Error; err != nil {
		Internal(c, "failed to list skills")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetByID 返回单项技能，公开可读。
func (h *SkillHandler) GetByID(c *gin.Context) {
	var row database.Skill
	if err := h.db.WithContext(c.Request.Context()).
		First(&row, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "skill not found")
			return
		}
		Internal(c, "failed to query skill")
		return
	}
	c.JSON(http.StatusOK, row)
}

// Create 新建一项技能。
func (h *SkillHandler) Create(c *gin.Context) {
	if !accesscontrol.Can(middleware.SessionFromContext(c)).CreateAny("skill").Granted {
		Forbidden(c, "you are not authorized to create skill records")
		return
	}

	var in models.SkillInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if ferr := in.Validate(); ferr != nil {
		ValidationFailed(c, ferr)
		return
	}

	row := database.Skill{
		Name:  in.Name,
		Level: in.Level,
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		index, err := nextOrderIndex(tx, &database.Skill{}, in.OrderIndex)
		if err != nil {
			return err
		}
		row.OrderIndex = index
		return tx.Create(&row).Error
	})
	if err != nil {
		Internal(c, "failed to create skill")
		return
	}

	c.JSON(http.StatusCreated, row)
}

// Update 整行覆盖一项技能。
func (h *SkillHandler) Update(c *gin.Context) {
	if !accesscontrol.Can(middleware.SessionFromContext(c)).UpdateAny("skill").Granted {
		Forbidden(c, "you are not authorized to update skill records")
		return
	}

	var in models.SkillInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if ferr := in.Validate(); ferr != nil {
		ValidationFailed(c, ferr)
		return
	}

	ctx := c.Request.Context()
	var row database.Skill
	if err := h.db.WithContext(ctx).First(&row, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "skill not found")
			return
		}
		Internal(c, "failed to query skill")
		return
	}

	row.Name = in.Name
	row.Level = in.Level
	if in.OrderIndex != nil {
		row.OrderIndex = *in.OrderIndex
	}

	if err := h.db.WithContext(ctx).Save(&row).Error; err != nil {
		Internal(c, "failed to update skill")
		return
	}
	c.JSON(http.StatusOK, row)
}

// Delete 按 id 删除一项技能。
func (h *SkillHandler) Delete(c *gin.Context) {
	if !accesscontrol.Can(middleware.SessionFromContext(c)).DeleteAny("skill").Granted {
		Forbidden(c, "you are not authorized to delete skill records")
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&database.Skill{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		Internal(c, "failed to delete skill")
		return
	}
	if res.RowsAffected == 0 {
		NotFound(c, "skill not found")
		return
	}
	c.Status(http.StatusNoContent)
}
