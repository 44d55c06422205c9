package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"portfolio/internal/accesscontrol"
	"portfolio/internal/api/middleware"
	"portfolio/internal/cvdoc"
	"portfolio/internal/database"
	"portfolio/internal/models"
)

const defaultCvTheme = "modern"

// CvHandler 负责简历版本及其四张连接表的管理。
type CvHandler struct {
	db *gorm.DB
}

// NewCvHandler 构造 CvHandler。
func NewCvHandler(db *gorm.DB) *CvHandler {
	return &CvHandler{db: db}
}

func (h *CvHandler) withJoins(ctx *gin.Context) *gorm.DB {
	return h.db.WithContext(ctx.Request.Context()).
		Preload("Experiences.Experience").
		Preload("Projects.Project").
		Preload("Skills.Skill").
		Preload("Educations.Education")
}

// GetAll 按创建时间倒序返回全部简历版本及其关联行，公开可读。
func (h *CvHandler) GetAll(c *gin.Context) {
	var rows []database.CvVersion
	if err := h.withJoins(c).Order("created_at desc").Find(&rows).Error; err != nil {
		Internal(c, "failed to list cv versions")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetByID 返回单个简历版本及其关联行，公开可读。
func (h *CvHandler) GetByID(c *gin.Context) {
	var row database.CvVersion
	if err := h.withJoins(c).First(&row, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "cv not found")
			return
		}
		Internal(c, "failed to query cv")
		return
	}
	c.JSON(http.StatusOK, row)
}

// GetBySlug 按 slug 返回组装好的简历文档：分区按 sectionOrder 展开，
// 未知分区键被跳过，各分区按类别默认顺序排序。
func (h *CvHandler) GetBySlug(c *gin.Context) {
	var row database.CvVersion
	if err := h.withJoins(c).First(&row, "slug = ?", c.Param("slug")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "cv not found")
			return
		}
		Internal(c, "failed to query cv")
		return
	}
	c.JSON(http.StatusOK, cvdoc.Compose(row))
}

// Create 新建简历版本，并在同一事务内为四个 id 列表各写入连接行。
func (h *CvHandler) Create(c *gin.Context) {
	if !accesscontrol.Can(middleware.SessionFromContext(c)).CreateAny("cv").Granted {
		Forbidden(c, "you are not authorized to create cv records")
		return
	}

	var in models.CvInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if ferr := in.Validate(); ferr != nil {
		ValidationFailed(c, ferr)
		return
	}

	theme := in.Theme
	if theme == "" {
		theme = defaultCvTheme
	}

	ctx := c.Request.Context()

	var existing database.CvVersion
	if err := h.db.WithContext(ctx).First(&existing, "slug = ?", in.Slug).Error; err == nil {
		Conflict(c, "slug already in use")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		Internal(c, "failed to check slug")
		return
	}

	row := database.CvVersion{
		Title:        in.Title,
		Slug:         in.Slug,
		Theme:        theme,
		SectionOrder: in.SectionOrder,
	}

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return createCvJoins(tx, row.ID, in)
	})
	if err != nil {
		Internal(c, "failed to create cv")
		return
	}

	c.JSON(http.StatusCreated, row)
}

// Update 整体替换：删除四组连接行、覆盖标量字段、按新列表重建连接行，
// 全程处于一个事务内，不存在半替换状态。
func (h *CvHandler) Update(c *gin.Context) {
	if !accesscontrol.Can(middleware.SessionFromContext(c)).UpdateAny("cv").Granted {
		Forbidden(c, "you are not authorized to update cv records")
		return
	}

	var in models.CvInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if ferr := in.Validate(); ferr != nil {
		ValidationFailed(c, ferr)
		return
	}

	ctx := c.Request.Context()
	var row database.CvVersion
	if err := h.db.WithContext(ctx).First(&row, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "cv not found")
			return
		}
		Internal(c, "failed to query cv")
		return
	}

	if in.Slug != row.Slug {
		var clash database.CvVersion
		if err := h.db.WithContext(ctx).First(&clash, "slug = ?", in.Slug).Error; err == nil {
			Conflict(c, "slug already in use")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			Internal(c, "failed to check slug")
			return
		}
	}

	theme := in.Theme
	if theme == "" {
		theme = defaultCvTheme
	}

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteCvJoins(tx, row.ID); err != nil {
			return err
		}

		row.Title = in.Title
		row.Slug = in.Slug
		row.Theme = theme
		row.SectionOrder = in.SectionOrder
		if err := tx.Save(&row).Error; err != nil {
			return err
		}

		return createCvJoins(tx, row.ID, in)
	})
	if err != nil {
		Internal(c, "failed to update cv")
		return
	}

	c.JSON(http.StatusOK, row)
}

// Delete 删除简历版本；连接行由外键级联清理。
func (h *CvHandler) Delete(c *gin.Context) {
	if !accesscontrol.Can(middleware.SessionFromContext(c)).DeleteAny("cv").Granted {
		Forbidden(c, "you are not authorized to delete cv records")
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&database.CvVersion{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		Internal(c, "failed to delete cv")
		return
	}
	if res.RowsAffected == 0 {
		NotFound(c, "cv not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func createCvJoins(tx *gorm.DB, cvID string, in models.CvInput) error {
	if len(in.ExperiencesIds) > 0 {
		joins := make([]database.CvVersionExperience, 0, len(in.ExperiencesIds))
		for _, id := range in.ExperiencesIds {
			joins = append(joins, database.CvVersionExperience{CvID: cvID, ExperienceID: id})
		}
		if err := tx.Create(&joins).Error; err != nil {
			return err
		}
	}

	if len(in.ProjectsIds) > 0 {
		joins := make([]database.CvVersionProject, 0, len(in.ProjectsIds))
		for _, id := range in.ProjectsIds {
			joins = append(joins, database.CvVersionProject{CvID: cvID, ProjectID: id})
		}
		if err := tx.Create(&joins).Error; err != nil {
			return err
		}
	}

	if len(in.SkillsIds) > 0 {
		joins := make([]database.CvVersionSkill, 0, len(in.SkillsIds))
		for _, id := range in.SkillsIds {
			joins = append(joins, database.CvVersionSkill{CvID: cvID, SkillID: id})
		}
		if err := tx.Create(&joins).Error; err != nil {
			return err
		}
	}

	if len(in.EducationsIds) > 0 {
		joins := make([]database.CvVersionEducation, 0, len(in.EducationsIds))
		for _, id := range in.EducationsIds {
			joins = append(joins, database.CvVersionEducation{CvID: cvID, EducationID: id})
		}
		if err := tx.Create(&joins).Error; err != nil {
			return err
		}
	}

	return nil
}

func deleteCvJoins(tx *gorm.DB, cvID string) error {
	if err := tx.Delete(&database.CvVersionExperience{}, "cv_id = ?", cvID).Error; err != nil {
		return err
	}
	if err := tx.Delete(&database.CvVersionProject{}, "cv_id = ?", cvID).Error; err != nil {
		return err
	}
	if err := tx.Delete(&database.CvVersionSkill{}, "cv_id = ?", cvID).Error; err != nil {
		return err
	}
	return tx.Delete(&database.CvVersionEducation{}, "cv_id = ?", cvID).Error
}
