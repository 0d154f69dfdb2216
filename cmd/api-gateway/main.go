package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/classhub-id/academic-eval-api/api/swagger"
	"github.com/classhub-id/academic-eval-api/internal/handler"
	internalmiddleware "github.com/classhub-id/academic-eval-api/internal/middleware"
	"github.com/classhub-id/academic-eval-api/internal/models"
	"github.com/classhub-id/academic-eval-api/internal/repository"
	"github.com/classhub-id/academic-eval-api/internal/service"
	"github.com/classhub-id/academic-eval-api/pkg/cache"
	"github.com/classhub-id/academic-eval-api/pkg/config"
	"github.com/classhub-id/academic-eval-api/pkg/database"
	"github.com/classhub-id/academic-eval-api/pkg/logger"
	corsmiddleware "github.com/classhub-id/academic-eval-api/pkg/middleware/cors"
	reqidmiddleware "github.com/classhub-id/academic-eval-api/pkg/middleware/requestid"
)

// @title Academic Evaluation API
// @version 1.0.0
// @description Exam marking, yearly grade rollups and academic summaries
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Summaries.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, summary cache disabled", "error", err)
		} else {
			repo := repository.NewCacheRepository(redisClient, logr)
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Summaries.CacheTTL, logr, cacheRepo != nil)

	validate := validator.New()

	rosterRepo := repository.NewRosterRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	resultRepo := repository.NewResultRepository(db)
	yearlyGradeRepo := repository.NewYearlyGradeRepository(db)
	sessionRepo := repository.NewMarkingSessionRepository(db)

	markingSvc := service.NewMarkingService(scheduleRepo, studentRepo, resultRepo, sessionRepo, cacheSvc, metricsSvc, validate, logr)
	yearlyGradeSvc := service.NewYearlyGradeService(rosterRepo, yearlyGradeRepo, cacheSvc, validate, logr)
	summarySvc := service.NewSummaryService(yearlyGradeRepo, resultRepo, cacheSvc, logr)
	exportSvc := service.NewExportService(summarySvc)
	rosterSvc := service.NewRosterService(rosterRepo, validate, logr)

	markingHandler := handler.NewMarkingHandler(markingSvc)
	gradeHandler := handler.NewGradeHandler(yearlyGradeSvc)
	summaryHandler := handler.NewSummaryHandler(summarySvc, exportSvc)
	rosterHandler := handler.NewRosterHandler(rosterSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.JWT(cfg.JWT.Secret))
	api.Use(internalmiddleware.WithResponseMeta())

	staff := api.Group("")
	staff.Use(internalmiddleware.RequireRoles(models.RoleAdmin, models.RoleTeacher))
	staff.POST("/marking/bulk", markingHandler.Bulk)
	staff.PATCH("/results/:id", markingHandler.Update)
	staff.POST("/grades/yearly", gradeHandler.Submit)
	staff.GET("/schedules/:id/results", markingHandler.ResultsBySchedule)
	staff.GET("/schedules/:id/marking-sessions", markingHandler.Sessions)
	staff.GET("/classes/:classNumber/examinations/:examId/summary", summaryHandler.ClassExam)
	staff.GET("/classes/:classNumber/examinations/:examId/summary/export", summaryHandler.Export)

	api.GET("/grades/yearly", gradeHandler.List)
	api.GET("/students/:id/results", markingHandler.ResultsByStudent)
	api.GET("/students/:id/summary", summaryHandler.StudentLifetime)

	admin := api.Group("/rosters")
	admin.GET("", rosterHandler.List)
	admin.GET("/:classNumber", rosterHandler.Get)
	admin.PUT("/:classNumber", internalmiddleware.RequireRoles(models.RoleAdmin), rosterHandler.Update)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
