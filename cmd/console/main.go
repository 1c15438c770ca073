package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campus-ops/reservation-console/api/swagger"
	"github.com/campus-ops/reservation-console/internal/handler"
	"github.com/campus-ops/reservation-console/internal/middleware"
	"github.com/campus-ops/reservation-console/internal/models"
	"github.com/campus-ops/reservation-console/internal/repository"
	"github.com/campus-ops/reservation-console/internal/service"
	"github.com/campus-ops/reservation-console/internal/upstream"
	"github.com/campus-ops/reservation-console/pkg/cache"
	"github.com/campus-ops/reservation-console/pkg/config"
	"github.com/campus-ops/reservation-console/pkg/logger"
	corsmiddleware "github.com/campus-ops/reservation-console/pkg/middleware/cors"
	reqidmiddleware "github.com/campus-ops/reservation-console/pkg/middleware/requestid"
)

// @title Reservation Operations Console
// @version 0.1.0
// @description Operator console for conflict review and weekly schedule staging.
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, catalog caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	baseClient := upstream.NewClient(cfg.Upstream, logr, metricsSvc)
	conflictClient := upstream.NewConflictClient(baseClient)
	eventClient := upstream.NewEventClient(baseClient)
	catalogClient := upstream.NewCatalogClient(baseClient)
	schedulingClient := upstream.NewSchedulingClient(baseClient)

	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	catalogSvc := service.NewCatalogService(catalogClient, cacheRepo, metricsSvc, logr, service.CatalogServiceConfig{
		CacheEnabled: cfg.Catalog.CacheEnabled && redisClient != nil,
		CacheTTL:     cfg.Catalog.CacheTTL,
	})
	authSvc := service.NewAuthService(cfg.JWT, logr)
	conflictSvc := service.NewConflictService(conflictClient, eventClient, catalogSvc, cacheRepo, validate, logr, service.ConflictServiceConfig{
		SessionTTL:   cfg.Selection.BoardTTL,
		CacheEnabled: cfg.Catalog.CacheEnabled && redisClient != nil,
		CacheTTL:     cfg.Catalog.CacheTTL,
	})
	selectionSvc := service.NewSelectionService(catalogSvc, schedulingClient, validate, logr, service.SelectionServiceConfig{
		BoardTTL: cfg.Selection.BoardTTL,
	})

	var exportSvc *service.ExportService
	if cfg.Reports.Enabled {
		exportSvc = service.NewExportService(conflictSvc, logr)
	}

	conflictHandler := handler.NewConflictHandler(conflictSvc, exportSvc)
	selectionHandler := handler.NewSelectionHandler(selectionSvc)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(authSvc))
	{
		conflicts := api.Group("/conflicts")
		{
			conflicts.GET("", conflictHandler.List)
			conflicts.POST("/detect", conflictHandler.Detect)
			conflicts.GET("/rooms", conflictHandler.Rooms)
			conflicts.GET("/export", conflictHandler.Export)
			remedies := conflicts.Group("", middleware.RequireRole(models.RoleAdmin, models.RoleTeacher))
			remedies.PUT("/events/:id/reschedule", conflictHandler.Reschedule)
			remedies.PUT("/events/:id/change-room", conflictHandler.ChangeRoom)
			conflicts.POST("/groups/:id/dismiss", conflictHandler.Dismiss)
			conflicts.POST("/groups/restore", conflictHandler.Restore)
		}

		boards := api.Group("/selection/boards")
		{
			boards.POST("", selectionHandler.Create)
			boards.GET("/:id", selectionHandler.Get)
			boards.DELETE("/:id", selectionHandler.Delete)
			boards.GET("/:id/filter", selectionHandler.Filter)
			boards.PATCH("/:id/entries/:courseId", selectionHandler.UpdateEntry)
			boards.POST("/:id/select-filtered", selectionHandler.SelectAllFiltered)
			boards.POST("/:id/deselect-all", selectionHandler.DeselectAll)
			boards.POST("/:id/bulk-priority", selectionHandler.BulkPriority)
			boards.POST("/:id/shuffle", selectionHandler.Shuffle)
			boards.POST("/:id/preset", selectionHandler.Preset)
			boards.GET("/:id/validate", selectionHandler.Validate)
			boards.POST("/:id/submit", selectionHandler.Submit)
		}

		catalog := api.Group("/catalog")
		{
			catalog.GET("/courses", catalogHandler.Courses)
			catalog.GET("/rooms", catalogHandler.Rooms)
			catalog.POST("/refresh", middleware.RequireRole(models.RoleAdmin), catalogHandler.Refresh)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("console starting", "addr", addr, "env", cfg.Env, "upstream", cfg.Upstream.BaseURL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("console failed", "error", err)
	}
}
