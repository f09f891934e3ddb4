// Package app wires the stub LMS API together. The stub mimics the
// backend's observable contract so the client core can be exercised end to
// end without the real platform.
package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learnhub_client/internal/config"
	"learnhub_client/internal/controller"
	"learnhub_client/internal/repository"
	"learnhub_client/internal/service"
	"learnhub_client/pkg/logger"
	"learnhub_client/pkg/monitoring"
	"learnhub_client/pkg/security"
	"learnhub_client/pkg/tracing"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
}

type repositories struct {
	user *repository.UserRepository
	quiz *repository.QuizRepository
	chat *repository.ChatRepository
}

type services struct {
	auth *service.AuthService
	quiz *service.QuizService
	user *service.UserService
	chat *service.ChatService
}

type controllers struct {
	auth   *controller.AuthController
	quiz   *controller.QuizController
	user   *controller.UserController
	chat   *controller.ChatController
	health *controller.HealthController
}

func initRepositories() *repositories {
	return &repositories{
		user: repository.NewUserRepository(),
		quiz: repository.NewQuizRepository(),
		chat: repository.NewChatRepository(),
	}
}

func initServices(repos *repositories, cfg *config.Config) *services {
	return &services{
		auth: service.NewAuthService(repos.user, cfg),
		quiz: service.NewQuizService(repos.quiz),
		user: service.NewUserService(repos.user, cfg),
		chat: service.NewChatService(repos.chat),
	}
}

func initControllers(s *services) *controllers {
	return &controllers{
		auth:   controller.NewAuthController(s.auth),
		quiz:   controller.NewQuizController(s.quiz),
		user:   controller.NewUserController(s.user),
		chat:   controller.NewChatController(s.chat),
		health: controller.NewHealthController(),
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
	if cfg.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	app := &App{Config: cfg}

	repos := initRepositories()
	if err := seedFixtures(repos, cfg); err != nil {
		logger.Log.Fatal("Failed to seed fixtures", zap.Error(err))
	}
	services := initServices(repos, cfg)
	controllers := initControllers(services)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("learnhub-stub", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Stub API running on port %s", a.Config.Server.Port)
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
