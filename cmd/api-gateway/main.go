package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/uniplan/uniplan-api/api/swagger"
	"github.com/uniplan/uniplan-api/internal/handler"
	"github.com/uniplan/uniplan-api/internal/middleware"
	"github.com/uniplan/uniplan-api/internal/repository"
	"github.com/uniplan/uniplan-api/internal/service"
	"github.com/uniplan/uniplan-api/pkg/cache"
	"github.com/uniplan/uniplan-api/pkg/config"
	"github.com/uniplan/uniplan-api/pkg/database"
	"github.com/uniplan/uniplan-api/pkg/export"
	"github.com/uniplan/uniplan-api/pkg/logger"
	corsmiddleware "github.com/uniplan/uniplan-api/pkg/middleware/cors"
	reqidmiddleware "github.com/uniplan/uniplan-api/pkg/middleware/requestid"
)

// @title UniPlan API
// @version 0.1.0
// @description University course timetabling service
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// the result cache is best-effort, the API runs without it
		logr.Warn("redis unavailable, scheduling results will not be cached", zap.Error(err))
		redisClient = nil
	}

	teacherRepo := repository.NewTeacherRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	schedulerSvc := service.NewSchedulerService(
		teacherRepo,
		courseRepo,
		classroomRepo,
		scheduleRepo,
		cacheRepo,
		metricsSvc,
		validate,
		logr,
		service.SchedulerRunConfig{
			Generations:    cfg.Scheduler.Generations,
			PopulationSize: cfg.Scheduler.PopulationSize,
			MutationRate:   cfg.Scheduler.MutationRate,
			ResultCacheTTL: cfg.Scheduler.ResultCacheTTL,
		},
	)
	scheduleSvc := service.NewScheduleService(
		scheduleRepo,
		courseRepo,
		classroomRepo,
		export.NewCSVExporter(),
		export.NewPDFExporter(),
		logr,
		cfg.Export.Title,
	)

	schedulerHandler := handler.NewSchedulerHandler(schedulerSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

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
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		scheduler := api.Group("/scheduler")
		{
			scheduler.POST("/generate", schedulerHandler.Generate)
			scheduler.GET("/last-run", schedulerHandler.LastRun)
			scheduler.GET("/status", schedulerHandler.Status)
		}

		schedules := api.Group("/schedules")
		{
			schedules.GET("", scheduleHandler.List)
			schedules.GET("/export", scheduleHandler.Export)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
