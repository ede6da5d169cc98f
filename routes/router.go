package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/ubg-fkdk/portal/config"
	"github.com/ubg-fkdk/portal/controllers"
	"github.com/ubg-fkdk/portal/middleware"
	"github.com/ubg-fkdk/portal/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, cfg config.AppConfig) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Access log and panics go to their own rolling file
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(ginzap.Ginzap(gl, time.RFC3339, true))
		r.Use(ginzap.RecoveryWithZap(gl, true))
	} else {
		utils.Sugar.Warnf("gin file logger unavailable, using default recovery: %v", err)
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", "X-Total-Count"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	store := NewStorage(cfg)
	r.Use(middleware.DownloadRecorder(db, store.Prefixes()...))

	utils.RegisterMimeTypes()
	r.Static(store.Berkas.Prefix(), store.Berkas.Dir())
	r.Static(store.Dosen.Prefix(), store.Dosen.Dir())
	r.Static(store.Pengumuman.Prefix(), store.Pengumuman.Dir())

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"}, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	berkasController := controllers.NewBerkasController(db, store.Berkas, cfg.PublicBaseURL)
	dosenController := controllers.NewDosenController(db, store.Dosen)
	pengumumanController := controllers.NewPengumumanController(db, store.Pengumuman)
	statsController := controllers.NewStatsController(db)
	configController := controllers.NewConfigController(cfg.Identitas)

	api := r.Group("/api")

	api.GET("/berkas", berkasController.List)
	api.GET("/berkas/:id", berkasController.Get)
	api.GET("/berkas/:id/preview", berkasController.Preview)
	api.GET("/berkas/:id/download", berkasController.Download)
	api.GET("/dosen", dosenController.List)
	api.GET("/pengumuman", pengumumanController.List)
	api.GET("/identitas", configController.GetIdentitas)
	api.GET("/stats", statsController.GetStats)

	// Writes are throttled per client IP
	write := api.Group("")
	write.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMinute))
	write.POST("/berkas", berkasController.Upload)
	write.POST("/dosen", dosenController.Create)
	write.DELETE("/dosen", dosenController.Delete)
	write.POST("/pengumuman", pengumumanController.Create)
	write.DELETE("/pengumuman", pengumumanController.Delete)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "Not found", "api route not found")
			return
		}
		utils.Error(ctx, http.StatusNotFound, 40400, "Not found", "resource not found")
	})

	return r
}
