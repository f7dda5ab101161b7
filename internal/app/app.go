package app

import (
	"assess_prep_backend/internal/config"
	"assess_prep_backend/internal/controller"
	"assess_prep_backend/internal/repository"
	"assess_prep_backend/internal/service"
	"assess_prep_backend/pkg/database"
	"assess_prep_backend/pkg/logger"
	"assess_prep_backend/pkg/monitoring"
	"assess_prep_backend/pkg/security"
	"assess_prep_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user    *repository.UserRepository
	session *repository.SessionRepository
}

type services struct {
	auth       *service.AuthService
	ai         *service.AIService
	generation *service.GenerationService
	cache      *service.SessionCache
	storage    *service.StorageService
	assessment *service.AssessmentService
	coding     *service.CodingService
}

type controllers struct {
	auth       *controller.AuthController
	assessment *controller.AssessmentController
	coding     *controller.CodingController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:    repository.NewUserRepository(db),
		session: repository.NewSessionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.ai = service.NewAIService(cfg.AI)
	s.generation = service.NewGenerationService(s.ai)
	s.cache = service.NewSessionCache(rdb)
	s.storage = service.NewStorageService(cfg)
	s.assessment = service.NewAssessmentService(repos.session, s.generation, s.cache, s.storage, cfg.Session)
	s.coding = service.NewCodingService(repos.session, s.generation, s.cache, s.storage, cfg.Session)

	return s
}

func (a *App) initControllers(s *services, cfg *config.Config, db *gorm.DB) *controllers {
	isRelease := cfg.Server.Mode == "release"
	cookieMaxAge := int(cfg.JWT.ExpireTime / time.Second)

	return &controllers{
		auth:       controller.NewAuthController(s.auth, cookieMaxAge, isRelease),
		assessment: controller.NewAssessmentController(s.assessment),
		coding:     controller.NewCodingController(s.coding),
		health:     controller.NewHealthController(db),
	}
}

// ReloadConfig applies a hot-reloaded config to the parts that support it.
// Only the AI endpoint settings rotate at runtime.
func (a *App) ReloadConfig(cfg *config.Config) {
	if a.services == nil || a.services.ai == nil {
		return
	}
	a.services.ai.UpdateConfig(cfg.AI)
	logger.Log.Info("AI config reloaded",
		zap.String("model", cfg.AI.Model),
		zap.String("baseUrl", cfg.AI.BaseURL))
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.MigrateOnly {
		logger.Log.Info("Migration finished, exiting")
		os.Exit(0)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The item cache is optional; run degraded rather than refuse to start.
		logger.Log.Warn("Redis unavailable, session cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, cfg, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("assess-prep", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
