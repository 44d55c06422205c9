package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"portfolio/internal/accesscontrol"
	"portfolio/internal/api/middleware"
	"portfolio/internal/auth"
	"portfolio/internal/database"
	"portfolio/internal/models"
)

// UserHandler 负责后台账号管理。
type UserHandler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewUserHandler 构造 UserHandler。
func NewUserHandler(db *gorm.DB, logger *slog.Logger) *UserHandler {
	return &UserHandler{db: db, logger: logger}
}

func (h *UserHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}

// GetActual 返回当前会话对应的账号行。
func (h *UserHandler) GetActual(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		AbortUnauthorized(c)
		return
	}

	var row database.User
	if err := h.db.WithContext(c.Request.Context()).
		First(&row, "id = ?", session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "user not found")
			return
		}
		Internal(c, "failed to query user")
		return
	}
	c.JSON(http.StatusOK, row)
}

// GetSession 返回当前会话。
func (h *UserHandler) GetSession(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		AbortUnauthorized(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"userId": session.UserID,
		"role":   session.Role,
	})
}

// Create 创建新账号：邮箱冲突返回 409，密码入库前做 bcrypt 哈希，
// 成功后追加一条审计记录。
func (h *UserHandler) Create(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if !accesscontrol.Can(session).CreateAny("user").Granted {
		Forbidden(c, "insufficient privileges")
		return
	}

	var in models.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(slog.String("email", in.Email))

	var existing database.User
	if err := h.db.WithContext(ctx).Where("email = ?", in.Email).First(&existing).Error; err == nil {
		logger.Info("user create conflict: email already registered")
		Conflict(c, "user already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("user lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		logger.Error("hash password failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	row := database.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hashed,
		Role:         in.Role,
		Image:        in.Image,
	}
	if err := h.db.WithContext(ctx).Create(&row).Error; err != nil {
		logger.Error("create user failed", slog.Any("error", err))
		Internal(c, "failed to create user")
		return
	}

	var authorID *string
	if session != nil {
		authorID = &session.UserID
	}
	if err := database.WriteAuditLog(ctx, h.db, database.AuditActionCreate, database.AuditTargetUser, row.ID, authorID, map[string]any{
		"role": row.Role,
	}); err != nil {
		logger.Error("audit log write failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	logger.Info("user created", slog.String("user_id", row.ID))
	c.JSON(http.StatusCreated, row)
}

// Update 仅更新名称与头像，目标不存在时返回 404。
func (h *UserHandler) Update(c *gin.Context) {
	if !accesscontrol.Can(middleware.SessionFromContext(c)).UpdateAny("user").Granted {
		Forbidden(c, "insufficient privileges")
		return
	}

	var in models.UpdateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	var row database.User
	if err := h.db.WithContext(ctx).First(&row, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "user not found")
			return
		}
		Internal(c, "failed to query user")
		return
	}

	if err := h.db.WithContext(ctx).Model(&row).Updates(map[string]any{
		"name":  in.Name,
		"image": in.Image,
	}).Error; err != nil {
		Internal(c, "failed to update user")
		return
	}
	c.JSON(http.StatusOK, row)
}

// Delete 删除账号，目标不存在时返回 404。
func (h *UserHandler) Delete(c *gin.Context) {
	if !accesscontrol.Can(middleware.SessionFromContext(c)).DeleteOwn("user").Granted {
		Forbidden(c, "insufficient privileges")
		return
	}

	ctx := c.Request.Context()
	var row database.User
	if err := h.db.WithContext(ctx).First(&row, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "user not found")
			return
		}
		Internal(c, "failed to query user")
		return
	}

	if err := h.db.WithContext(ctx).Delete(&row).Error; err != nil {
		Internal(c, "failed to delete user")
		return
	}
	c.Status(http.StatusNoContent)
}
