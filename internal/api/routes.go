package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"portfolio/internal/api/middleware"
	"portfolio/internal/auth"
)

// RegisterRoutes 注册 API 路由：读取端点公开，变更端点要求有效会话，
// 会话之上的资源级授权由各处理器自己检查。
func RegisterRoutes(
	router *gin.Engine,
	db *gorm.DB,
	authService *auth.AuthService,
	redisClient *redis.Client,
	logger *slog.Logger,
	loginRateLimitPerHour int,
	loginLockThreshold int,
	loginLockTTL time.Duration,
	cookieDomain string,
) {
	authHandler := NewAuthHandler(db, authService, redisClient, logger, loginRateLimitPerHour, loginLockThreshold, loginLockTTL, cookieDomain)
	userHandler := NewUserHandler(db, logger)
	profileHandler := NewProfileHandler(db)
	experienceHandler := NewExperienceHandler(db)
	educationHandler := NewEducationHandler(db)
	projectHandler := NewProjectHandler(db)
	skillHandler := NewSkillHandler(db)
	linkHandler := NewLinkHandler(db)
	cvHandler := NewCvHandler(db)
	authMiddleware := middleware.AuthMiddleware(authService)

	v1 := router.Group("/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}

		userGroup := v1.Group("/users")
		userGroup.Use(authMiddleware)
		{
			userGroup.GET("/me", userHandler.GetActual)
			userGroup.GET("/session", userHandler.GetSession)
			userGroup.POST("", userHandler.Create)
			userGroup.PUT("/:id", userHandler.Update)
			userGroup.DELETE("/:id", userHandler.Delete)
		}

		profileGroup := v1.Group("/profile")
		{
			profileGroup.GET("", profileHandler.Get)
			profileGroup.PUT("", authMiddleware, profileHandler.Upsert)
		}

		registerEntityRoutes(v1, "/experiences", authMiddleware, entityRoutes{
			getAll:  experienceHandler.GetAll,
			getByID: experienceHandler.GetByID,
			create:  experienceHandler.Create,
			update:  experienceHandler.Update,
			delete:  experienceHandler.Delete,
		})
		registerEntityRoutes(v1, "/educations", authMiddleware, entityRoutes{
			getAll:  educationHandler.GetAll,
			getByID: educationHandler.GetByID,
			create:  educationHandler.Create,
			update:  educationHandler.Update,
			delete:  educationHandler.Delete,
		})
		registerEntityRoutes(v1, "/projects", authMiddleware, entityRoutes{
			getAll:  projectHandler.GetAll,
			getByID: projectHandler.GetByID,
			create:  projectHandler.Create,
			update:  projectHandler.Update,
			delete:  projectHandler.Delete,
		})
		registerEntityRoutes(v1, "/skills", authMiddleware, entityRoutes{
			getAll:  skillHandler.GetAll,
			getByID: skillHandler.GetByID,
			create:  skillHandler.Create,
			update:  skillHandler.Update,
			delete:  skillHandler.Delete,
		})
		registerEntityRoutes(v1, "/links", authMiddleware, entityRoutes{
			getAll:  linkHandler.GetAll,
			getByID: linkHandler.GetByID,
			create:  linkHandler.Create,
			update:  linkHandler.Update,
			delete:  linkHandler.Delete,
		})

		cvGroup := v1.Group("/cvs")
		{
			cvGroup.GET("", cvHandler.GetAll)
			cvGroup.GET("/:id", cvHandler.GetByID)
			cvGroup.GET("/slug/:slug", cvHandler.GetBySlug)
			cvGroup.POST("", authMiddleware, cvHandler.Create)
			cvGroup.PUT("/:id", authMiddleware, cvHandler.Update)
			cvGroup.DELETE("/:id", authMiddleware, cvHandler.Delete)
		}
	}
}

type entityRoutes struct {
	getAll  gin.HandlerFunc
	getByID gin.HandlerFunc
	create  gin.HandlerFunc
	update  gin.HandlerFunc
	delete  gin.HandlerFunc
}

func registerEntityRoutes(v1 *gin.RouterGroup, path string, authMiddleware gin.HandlerFunc, routes entityRoutes) {
	group := v1.Group(path)
	{
		group.GET("", routes.getAll)
		group.GET("/:id", routes.getByID)
		group.POST("", authMiddleware, routes.create)
		group.PUT("/:id", authMiddleware, routes.update)
		group.DELETE("/:id", authMiddleware, routes.delete)
	}
}
