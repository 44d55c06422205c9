package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portfolio/internal/accesscontrol"
	"portfolio/internal/api/middleware"
	"portfolio/internal/database"
	"portfolio/internal/models"
)

// ProfileHandler 负责站点主人信息（单例行）的读取与 upsert。
type ProfileHandler struct {
	db *gorm.DB
}

// NewProfileHandler 构造 ProfileHandler。
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// Get 返回单例行，不存在时返回 null，公开可读。
func (h *ProfileHandler) Get(c *gin.Context) {
	var row database.Profile
	if err := h.db.WithContext(c.Request.Context()).
		First(&row, "id = ?", database.ProfileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		Internal(c, "failed to query profile")
		return
	}
	c.JSON(http.StatusOK, row)
}

// Upsert 首次调用创建单例行，之后整行覆盖。
// 需要同时持有 profile 的 update-any 与 create-any 授权。
func (h *ProfileHandler) Upsert(c *gin.Context) {
	query := accesscontrol.Can(middleware.SessionFromContext(c))
	if !query.UpdateAny("profile").Granted || !query.CreateAny("profile").Granted {
		Forbidden(c, "you are not authorized to update the profile")
		return
	}

	var in models.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if ferr := in.Validate(); ferr != nil {
		ValidationFailed(c, ferr)
		return
	}

	row := database.Profile{
		ID:       database.ProfileID,
		FullName: in.FullName,
		Headline: in.Headline,
		Location: in.Location,
		Website:  in.Website,
		Email:    in.Email,
		Phone:    in.Phone,
		JobTitle: in.JobTitle,
		AboutMd:  in.AboutMd,
	}

	// 单条原子 upsert，并发调用时以最后写入为准。
	err := h.db.WithContext(c.Request.Context()).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_name", "headline", "location", "website",
			"email", "phone", "job_title", "about_md", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		Internal(c, "failed to upsert profile")
		return
	}

	c.JSON(http.StatusOK, row)
}
