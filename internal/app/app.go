package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillreel_backend/internal/config"
	"skillreel_backend/internal/controller"
	"skillreel_backend/internal/event"
	"skillreel_backend/internal/repository"
	"skillreel_backend/internal/service"
	"skillreel_backend/pkg/configwatcher"
	"skillreel_backend/pkg/database"
	"skillreel_backend/pkg/logger"
	"skillreel_backend/pkg/monitoring"
	"skillreel_backend/pkg/security"
	"skillreel_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config    *config.Config
	Router    *gin.Engine
	DB        *gorm.DB
	Redis     *redis.Client
	Publisher *event.EventPublisher

	tracerProvider *sdktrace.TracerProvider
}

type repositories struct {
	segment     *repository.SegmentRepository
	interest    *repository.InterestRepository
	creatorStat *repository.CreatorStatRepository
	video       *repository.VideoRepository
	channel     *repository.ChannelRepository
	audit       *repository.AuditRepository
	question    *repository.QuizQuestionRepository
	attempt     *repository.QuizAttemptRepository
	skill       *repository.SkillRepository
}

type services struct {
	watch   *service.WatchService
	grading *service.GradingService
	quiz    *service.QuizService
	skill   *service.SkillService
	creator *service.CreatorService
	content *service.ContentService
}

type controllers struct {
	health  *controller.HealthController
	watch   *controller.WatchController
	quiz    *controller.QuizController
	skill   *controller.SkillController
	creator *controller.CreatorController
	admin   *controller.AdminController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		segment:     repository.NewSegmentRepository(db),
		interest:    repository.NewInterestRepository(db),
		creatorStat: repository.NewCreatorStatRepository(db),
		video:       repository.NewVideoRepository(db),
		channel:     repository.NewChannelRepository(db),
		audit:       repository.NewAuditRepository(db),
		question:    repository.NewQuizQuestionRepository(db),
		attempt:     repository.NewQuizAttemptRepository(db),
		skill:       repository.NewSkillRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.watch = service.NewWatchService(
		repos.segment,
		repos.interest,
		repos.creatorStat,
		repos.video,
		repos.audit,
		rdb,
		a.Publisher,
		cfg,
	)
	s.grading = service.NewGradingService(cfg.Grading)
	s.skill = service.NewSkillService(repos.skill, a.Publisher)
	s.quiz = service.NewQuizService(
		repos.question,
		repos.attempt,
		s.grading,
		s.skill,
		a.Publisher,
		cfg.Quiz.BatchSize,
	)
	s.creator = service.NewCreatorService(repos.creatorStat, repos.channel)
	s.content = service.NewContentService(
		repos.segment,
		repos.question,
		repos.video,
		repos.channel,
		s.watch,
		cfg.Quiz.MaxQuestionsPerVideo,
	)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		health:  controller.NewHealthController(),
		watch:   controller.NewWatchController(s.watch),
		quiz:    controller.NewQuizController(s.quiz),
		skill:   controller.NewSkillController(s.skill),
		creator: controller.NewCreatorController(s.creator),
		admin:   controller.NewAdminController(s.content),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Redis 只承载分段缓存，连不上时降级为直查数据库
		logger.Log.Warn("Redis unavailable, segment cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.Event.RabbitURL != "" {
		publisher, err := event.NewEventPublisher(cfg.Event.RabbitURL, cfg.Event.Exchange)
		if err != nil {
			logger.Log.Warn("RabbitMQ unavailable, domain events disabled", zap.Error(err))
		} else {
			app.Publisher = publisher
		}
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	ctrls := app.initControllers(services)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("skillreel-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, ctrls, cfg)

	// 配置热更新：限流与判题参数改动无需重启
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		updated, ok := newCfg.(*config.Config)
		if !ok {
			return
		}
		app.Config.RateLimit = updated.RateLimit
		app.Config.Grading = updated.Grading
		app.Config.Watch = updated.Watch
		app.Config.Quiz = updated.Quiz
		logger.Log.Info("Config reloaded")
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

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	a.Publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
