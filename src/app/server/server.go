// Package server provides HTTP server initialization and lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"monhaven/src/app/http/handler"
	"monhaven/src/app/middleware"
	"monhaven/src/core/ports"
	"monhaven/src/core/usecase"
	"monhaven/src/infra/config"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg    *config.Config
	log    *slog.Logger
	router *gin.Engine
	http   *http.Server

	// Handlers
	healthHandler  *handler.HealthHandler
	bossHandler    *handler.BossHandler
	adminHandler   *handler.AdminHandler
	tradeHandler   *handler.TradeHandler
	trainerHandler *handler.TrainerHandler
	monsterHandler *handler.MonsterHandler
	missionHandler *handler.MissionHandler
	choreHandler   *handler.ChoreHandler
}

// New creates a new Server with all dependencies wired up.
func New(cfg *config.Config, log *slog.Logger, repo ports.GameRepository) *Server {
	// Set Gin mode based on log level
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router without default middleware
	router := gin.New()

	// Create services
	healthService := usecase.NewHealthService(repo)
	bossService := usecase.NewBossService(repo, log)
	tradeService := usecase.NewTradeService(repo, log)
	trainerService := usecase.NewTrainerService(repo, log)
	monsterService := usecase.NewMonsterService(repo, log)
	missionService := usecase.NewMissionService(repo, log)
	taskService := usecase.NewTaskService(repo, log)
	habitService := usecase.NewHabitService(repo, log)

	s := &Server{
		cfg:            cfg,
		log:            log,
		router:         router,
		healthHandler:  handler.NewHealthHandler(healthService),
		bossHandler:    handler.NewBossHandler(bossService),
		adminHandler:   handler.NewAdminHandler(bossService),
		tradeHandler:   handler.NewTradeHandler(tradeService),
		trainerHandler: handler.NewTrainerHandler(trainerService),
		monsterHandler: handler.NewMonsterHandler(monsterService),
		missionHandler: handler.NewMissionHandler(missionService),
		choreHandler:   handler.NewChoreHandler(taskService, habitService),
	}

	s.setupMiddleware()
	s.setupRoutes()
	s.setupHTTPServer()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	// Order matters: Recovery should be first to catch all panics
	s.router.Use(middleware.Recovery(s.log))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.RateLimit(s.cfg.RateLimit.RPS, s.cfg.RateLimit.Burst))
	s.router.Use(middleware.Logging(s.log))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check endpoints (no auth required)
	s.router.GET("/health", s.healthHandler.Health)
	s.router.GET("/health/detailed", s.healthHandler.DetailedHealth)

	// API v1 routes
	v1 := s.router.Group("/v1")
	{
		// Bosses
		v1.GET("/bosses/current", s.bossHandler.Current)
		v1.GET("/bosses/:boss_id", s.bossHandler.Get)
		v1.POST("/bosses/:boss_id/damage", s.bossHandler.Damage)
		v1.GET("/bosses/:boss_id/damage/:player_id", s.bossHandler.PlayerDamage)
		v1.GET("/bosses/:boss_id/leaderboard", s.bossHandler.Leaderboard)
		v1.GET("/bosses/:boss_id/rewards/:trainer_id", s.bossHandler.RewardStatus)
		v1.POST("/bosses/:boss_id/rewards/:trainer_id/claim", s.bossHandler.Claim)
		v1.GET("/bosses/:boss_id/players/:player_id/rewards", s.bossHandler.PlayerRewardStatus)
		v1.POST("/bosses/:boss_id/players/:player_id/rewards/claim", s.bossHandler.PlayerClaim)

		// Trades
		v1.POST("/trades", s.tradeHandler.Create)
		v1.GET("/trades/:trade_id", s.tradeHandler.Get)
		v1.POST("/trades/:trade_id/process", s.tradeHandler.Process)
		v1.POST("/trades/:trade_id/cancel", s.tradeHandler.Cancel)

		// Trainers
		v1.POST("/trainers", s.trainerHandler.Create)
		v1.GET("/trainers/:trainer_id", s.trainerHandler.Get)
		v1.POST("/trainers/:trainer_id/coins", s.trainerHandler.AddCoins)
		v1.POST("/trainers/:trainer_id/levels", s.trainerHandler.AddLevels)
		v1.GET("/trainers/:trainer_id/inventory", s.trainerHandler.Inventory)
		v1.PATCH("/trainers/:trainer_id/inventory", s.trainerHandler.UpdateInventory)
		v1.GET("/trainers/:trainer_id/trades", s.tradeHandler.ListByTrainer)
		v1.GET("/trainers/:trainer_id/monsters", s.monsterHandler.ListByTrainer)
		v1.GET("/players/:player_id/trainers", s.trainerHandler.ListByPlayer)
		v1.GET("/players/:player_id/trainers/principal", s.trainerHandler.Principal)

		// Item catalog
		v1.GET("/items", s.trainerHandler.Items)

		// Monsters
		v1.POST("/monsters", s.monsterHandler.Create)
		v1.GET("/monsters/:mon_id", s.monsterHandler.Get)

		// Missions
		v1.GET("/trainers/:trainer_id/missions/available", s.missionHandler.Available)
		v1.GET("/trainers/:trainer_id/missions/active", s.missionHandler.Active)
		v1.POST("/trainers/:trainer_id/missions/start", s.missionHandler.Start)
		v1.POST("/trainers/:trainer_id/missions/progress", s.missionHandler.Progress)

		// Tasks and habits
		v1.POST("/tasks", s.choreHandler.CreateTask)
		v1.POST("/tasks/:task_id/complete", s.choreHandler.CompleteTask)
		v1.POST("/habits", s.choreHandler.CreateHabit)
		v1.POST("/habits/:habit_id/complete", s.choreHandler.CompleteHabit)

		// Admin (boss lifecycle and reward templates)
		admin := v1.Group("/admin", middleware.AdminAuth(s.cfg.Admin.Token))
		{
			admin.POST("/bosses", s.adminHandler.CreateBoss)
			admin.POST("/templates", s.adminHandler.CreateTemplate)
			admin.GET("/templates", s.adminHandler.ListTemplates)
			admin.POST("/bosses/:boss_id/templates", s.adminHandler.AssignTemplate)
			admin.GET("/bosses/:boss_id/templates", s.adminHandler.AssignedTemplates)
			admin.DELETE("/bosses/:boss_id/templates/:template_id", s.adminHandler.UnassignTemplate)
		}
	}

	// Handle 404
	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{
				"code":       "NOT_FOUND",
				"message":    "The requested resource was not found",
				"request_id": middleware.GetRequestID(c),
			},
		})
	})
}

// setupHTTPServer configures the underlying HTTP server.
func (s *Server) setupHTTPServer() {
	s.http = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}

// Run starts the HTTP server and blocks until shutdown.
// It handles graceful shutdown on SIGINT/SIGTERM.
func (s *Server) Run() error {
	// Channel to receive shutdown signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Channel to receive server errors
	errCh := make(chan error, 1)

	// Start server in goroutine
	go func() {
		s.log.Info("starting HTTP server",
			"addr", s.cfg.Server.Addr(),
		)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-quit:
		s.log.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		return err
	}

	// Graceful shutdown
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	s.log.Info("shutting down server", "timeout", s.cfg.Server.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("server stopped gracefully")
	return nil
}

// Router returns the Gin router for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// WaitForReady waits until the server is ready to accept connections.
// Useful for integration tests.
func (s *Server) WaitForReady(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(fmt.Sprintf("http://%s/health", s.cfg.Server.Addr()))
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	return fmt.Errorf("server not ready after %v", timeout)
}
