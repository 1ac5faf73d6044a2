package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sunnykids/internal/config"
	"github.com/sunnykids/internal/db"
	"github.com/sunnykids/internal/handler"
	"github.com/sunnykids/internal/router"
)

func main() {
	// 本地开发时加载 .env，缺失时忽略
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	gdb, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 预留的独立账号体系：配置了用户名时种入一个 bcrypt 哈希的管理员
	if err := db.EnsureAdmin(gdb, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Printf("failed to ensure admin user: %v", err)
	}

	api := handler.NewAPI(gdb, cfg.UploadDir, cfg.UploadURLPath, cfg.AdminPassword)

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api, cfg)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
