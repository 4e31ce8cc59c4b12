package main

import (
	"log"
	"os"
	"time"

	v1 "ipocket/api/v1"
	"ipocket/internal/auth"
	"ipocket/internal/bootstrap"
	"ipocket/internal/cache"
	"ipocket/internal/config"
	"ipocket/internal/db"
	"ipocket/internal/logx"
	"ipocket/internal/session"
	"ipocket/internal/ws"
	"ipocket/web/ui"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logx.Init(cfg.Log)
	log.Println("✓ Configuration loaded")

	// 2. Initialize MySQL
	if err := db.InitMySQL(cfg.MySQL.DSN); err != nil {
		log.Fatalf("Failed to initialize MySQL: %v", err)
	}
	defer db.Close()

	if cfg.Migrate {
		if err := db.Migrate(db.GetDB()); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Println("✓ Database migrated")
	}

	if err := bootstrap.EnsureAdmin(db.GetDB(), os.Getenv("ADMIN_USERNAME"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		log.Fatalf("Failed to bootstrap admin user: %v", err)
	}

	// 3. Initialize Redis
	if err := cache.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer cache.Close()

	// 4. Initialize JWT and the Socket.IO activity feed
	auth.InitJWT(cfg.JWT.Secret)
	if err := ws.InitServer(); err != nil {
		log.Fatalf("Failed to initialize activity feed: %v", err)
	}
	defer ws.Close()

	// 5. Initialize Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// Setup API v1 routes
	v1.SetupRouter(r, db.GetDB(), cfg)

	// Socket.IO endpoint for the live activity feed
	r.GET("/socket.io/*any", gin.WrapH(ws.Server))
	r.POST("/socket.io/*any", gin.WrapH(ws.Server))

	// Server-rendered UI
	sessions := session.NewStore(cache.Client, time.Duration(cfg.Session.TTLMinutes)*time.Minute)
	ui.Register(r, db.GetDB(), sessions, cfg)

	log.Printf("✓ Server starting on %s", cfg.HTTPAddr)

	// Start server
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
