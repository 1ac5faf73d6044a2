package router

import (
	"log"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sunnykids/internal/config"
	"github.com/sunnykids/internal/handler"
)

const (
	sessionName   = "sunnykids_session"
	sessionMaxAge = 24 * time.Hour

	contactLimit    = 5
	loginLimit      = 10
	rateLimitWindow = 15 * time.Minute
)

// SetupRouter 配置 Gin 引擎、中间件与路由
func SetupRouter(api *handler.API, cfg config.AppConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())

	// 全局兜底：任何未捕获的 panic 统一转换为 JSON 500，不终止进程
	r.Use(gin.CustomRecovery(func(c *gin.Context, err interface{}) {
		log.Printf("panic recovered: %v", err)
		c.AbortWithStatusJSON(500, gin.H{"error": "服务器内部错误"})
	}))

	// 配置会话中间件，HttpOnly Cookie，24 小时过期
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HttpOnly: true,
	})
	r.Use(sessions.Sessions(sessionName, store))

	// 上传文件静态服务
	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	contactLimiter := handler.NewRateLimiter(contactLimit, rateLimitWindow)
	loginLimiter := handler.NewRateLimiter(loginLimit, rateLimitWindow)

	apiGroup := r.Group("/api")
	{
		// 公开接口
		apiGroup.GET("/testimonials", api.ListActiveTestimonials)
		apiGroup.GET("/gallery", api.ListActiveGalleryImages)
		apiGroup.POST("/contact", contactLimiter.Middleware(), api.SubmitContactMessage)
		apiGroup.POST("/upload", api.UploadImage)

		admin := apiGroup.Group("/admin")
		{
			admin.POST("/login", loginLimiter.Middleware(), api.Login)
			admin.POST("/logout", api.Logout)
			admin.GET("/check", api.CheckAdmin)

			// 需要认证的后台路由
			auth := admin.Group("")
			auth.Use(handler.AuthRequired())
			{
				auth.GET("/messages", api.ListContactMessages)
				auth.PATCH("/messages/:id", api.UpdateContactMessageStatus)
				auth.DELETE("/messages/:id", api.DeleteContactMessage)

				auth.GET("/testimonials", api.ListAllTestimonials)
				auth.POST("/testimonials", api.CreateTestimonial)
				auth.PATCH("/testimonials/:id", api.UpdateTestimonial)
				auth.DELETE("/testimonials/:id", api.DeleteTestimonial)

				auth.GET("/gallery", api.ListAllGalleryImages)
				auth.POST("/gallery", api.CreateGalleryImage)
				auth.PATCH("/gallery/:id", api.UpdateGalleryImage)
				auth.DELETE("/gallery/:id", api.DeleteGalleryImage)
			}
		}
	}

	return r
}
