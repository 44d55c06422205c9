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

// LinkHandler 负责外部链接的 CRUD。
type LinkHandler struct {
	db *gorm.DB
}

// NewLinkHandler 构造 LinkHandler。
func NewLinkHandler(db *gorm.DB) *LinkHandler {
	return &LinkHandler{db: db}
}

// GetAll 按 orderIndex 升序返回全部链接，公开可读。
func (h *LinkHandler) GetAll(c *gin.Context) {
	var rows []database.Link
	if err := h.db.WithContext(c.Request.Context()).
		Order("order_index asc").
		Find(&rows).Error; err != nil {
		Internal(c, "failed to list links")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetByID 返回单个链接，公开可读。
func (h *LinkHandler) GetByID(c *gin.Context) {
	var row database.Link
	if err := h.db.WithContext(c.Request.Context()).
		First(&row, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "link not found")
			return
		}
		Internal(c, "failed to query link")
		return
	}
	c.JSON(http.StatusOK, row)
}

// Create 新建一个链接。
func (h *LinkHandler) Create(c *gin.Context) {
	if !accesscontrol.Can(middleware.SessionFromContext(c)).CreateAny("link").Granted {
		Forbidden(c, "you are not authorized to create link records")
		return
	}

	var in models.LinkInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if ferr := in.Validate(); ferr != nil {
		ValidationFailed(c, ferr)
		return
	}

	row := database.Link{
		Name: in.Name,
		Icon: in.Icon,
		URL:  in.URL,
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		index, err := nextOrderIndex(tx, &database.Link{}, in.OrderIndex)
		if err != nil {
			return err
		}
		row.OrderIndex = index
		return tx.Create(&row).Error
	})
	if err != nil {
		Internal(c, "failed to create link")
		return
	}

	c.JSON(http.StatusCreated, row)
}

// Update 整行覆盖一个链接。
func (h *LinkHandler) Update(c *gin.Context) {
	if !accesscontrol.Can(middleware.SessionFromContext(c)).UpdateAny("link").Granted {
		Forbidden(c, "you are not authorized to update link records")
		return
	}

	var in models.LinkInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if ferr := in.Validate(); ferr != nil {
		ValidationFailed(c, ferr)
		return
	}

	ctx := c.Request.Context()
	var row database.Link
	if err := h.db.WithContext(ctx).First(&row, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "link not found")
			return
		}
		Internal(c, "failed to query link")
		return
	}

	row.Name = in.Name
	row.Icon = in.Icon
	row.URL = in.URL
	if in.OrderIndex != nil {
		row.OrderIndex = *in.OrderIndex
	}

	if err := h.db.WithContext(ctx).Save(&row).Error; err != nil {
		Internal(c, "failed to update link")
		return
	}
	c.JSON(http.StatusOK, row)
}

// Delete 按 id 删除一个链接。
func (h *LinkHandler) Delete(c *gin.Context) {
	if !accesscontrol.Can(middleware.SessionFromContext(c)).DeleteAny("link").Granted {
		Forbidden(c, "you are not authorized to delete link records")
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&database.Link{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		Internal(c, "failed to delete link")
		return
	}
	if res.RowsAffected == 0 {
		NotFound(c, "link not found")
		return
	}
	c.Status(http.StatusNoContent)
}
