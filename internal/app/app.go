package app

import (
	"context"
	"exammaster_backend/internal/config"
	"exammaster_backend/internal/controller"
	"exammaster_backend/internal/repository"
	"exammaster_backend/internal/service"
	"exammaster_backend/pkg/configwatcher"
	"exammaster_backend/pkg/database"
	"exammaster_backend/pkg/logger"
	"exammaster_backend/pkg/monitoring"
	"exammaster_backend/pkg/security"
	"exammaster_backend/pkg/storage"
	"exammaster_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	ConfigDir       string
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Services        *Services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	question *repository.QuestionRepository
	test     *repository.TestRepository
	attempt  *repository.AttemptRepository
	review   *repository.ReviewRepository
}

// Services is exported so the seed command can reuse the wired catalog.
type Services struct {
	Catalog  *service.CatalogService
	Attempts *service.AttemptService
	Reviews  *service.ReviewService
}

type controllers struct {
	test    *controller.TestController
	attempt *controller.AttemptController
	review  *controller.ReviewController
	catalog *controller.CatalogController
	health  *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig swaps in a freshly loaded config and notifies the callbacks.
func (a *App) ReloadConfig(cfg *config.Config) {
	// flags are not part of the file
	cfg.ForceMigrate = a.Config.ForceMigrate
	cfg.MigrateOnly = a.Config.MigrateOnly
	a.Config = cfg
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		question: repository.NewQuestionRepository(db),
		test:     repository.NewTestRepository(db),
		attempt:  repository.NewAttemptRepository(db),
		review:   repository.NewReviewRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client, archive *storage.ReportArchive) *Services {
	var cache service.QuestionCache
	if rdb != nil {
		cache = service.NewRedisQuestionCache(rdb, cfg.Cache.QuestionKeyBase, cfg.Cache.QuestionTTL)
	}
	catalog := service.NewQuestionCatalog(repos.question, cache)

	s := &Services{
		Catalog: service.NewCatalogService(repos.question, repos.test, catalog, cache),
		Reviews: service.NewReviewService(repos.review, cfg.Review.DueLimit),
	}

	var reviews *service.ReviewService
	if cfg.Review.FromAttempts {
		reviews = s.Reviews
	}
	var archiver service.ReportArchiver
	if archive != nil {
		archiver = archive
	}
	s.Attempts = service.NewAttemptService(repos.test, repos.attempt, catalog, reviews, archiver)
	return s
}

func (a *App) initControllers(s *Services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		test:    controller.NewTestController(s.Catalog, s.Attempts),
		attempt: controller.NewAttemptController(s.Attempts),
		review:  controller.NewReviewController(s.Reviews),
		catalog: controller.NewCatalogController(s.Catalog),
		health:  controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// build wires repositories, services and routes on top of already opened
// connections. rdb and archive may be nil.
func (a *App) build(db *gorm.DB, rdb *redis.Client, archive *storage.ReportArchive) {
	a.DB = db
	a.Redis = rdb

	repos := a.initRepositories(db)
	a.Services = a.initServices(repos, a.Config, rdb, archive)
	controllers := a.initControllers(a.Services, db, rdb)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	a.Router = router

	a.setupMiddlewares(router, a.Config)
	a.registerRoutes(router, controllers, a.Config)
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")
	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	app := &App{
		Config:    cfg,
		ConfigDir: "configs",
	}
	if cfg.MigrateOnly {
		app.DB = db
		return app
	}

	var rdb *redis.Client
	if cfg.Cache.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			// questions are still served from the database
			logger.Log.Warn("Redis unavailable, question cache disabled", zap.Error(err))
			rdb = nil
		}
	}

	provider, err := storage.NewProvider(&cfg.Storage)
	if err != nil {
		logger.Log.Fatal("Failed to initialize report storage", zap.Error(err))
	}
	var archive *storage.ReportArchive
	if provider != nil {
		archive = storage.NewReportArchive(provider, cfg.Storage.ReportPrefix)
	}

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("exammaster", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.build(db, rdb, archive)

	app.RegisterConfigCallback(func(c *config.Config) {
		logger.SetMode(c.Server.Mode)
	})

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

	watchCtx, stopWatch := context.WithCancel(context.Background())
	go func() {
		if err := configwatcher.WatchConfig(watchCtx, a.ConfigDir, a.ReloadConfig); err != nil {
			logger.Log.Warn("Config hot reload disabled", zap.Error(err))
		}
	}()

	// wait for an interrupt, then give in-flight requests 5 seconds
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	stopWatch()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
