package main

import (
	"context"
	"strconv"
	"time"

	"quicksupply/internal/ai"
	"quicksupply/internal/directory"
	"quicksupply/internal/handler"
	"quicksupply/internal/middleware"
	"quicksupply/internal/model"
	"quicksupply/internal/navigation"
	"quicksupply/internal/store"
	"quicksupply/pkg/config"
	"quicksupply/pkg/database"
	"quicksupply/pkg/jwtutil"
	"quicksupply/pkg/logger"
	"quicksupply/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load("quicksupply")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting quicksupply directory service...", cfg.LogConfig()...)

	// Initialize JWT utilities
	jwtutil.Initialize(&cfg.JWT)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)

	// AI collaborator; missing key degrades to fallbacks, never fatal
	aiClient, err := ai.NewClient(context.Background(), &cfg.AI, log)
	if err != nil {
		log.Fatal("Failed to initialize AI client", zap.Error(err))
	}
	matchCache := ai.NewMatchCache(&cfg.Redis, log)

	// Directory reconciler over the persistence collaborator. A dead
	// database is offline mode, not a startup failure.
	var st store.Store
	var orders store.OrderStore
	if db, err := database.InitDB(&cfg.DB); err != nil {
		log.Warn("Database unreachable at startup, entering offline mode", zap.Error(err))
		gs := store.NewGormStore(nil)
		st, orders = gs, gs
	} else {
		if err := database.MigrateModels(&model.Profile{}, &model.Supplier{}, &model.Product{}, &model.Order{}); err != nil {
			log.Warn("Migrations failed", zap.Error(err))
		}
		gs := store.NewGormStore(db)
		st, orders = gs, gs
		log.Info("Database connection established",
			zap.String("db_host", cfg.DB.Host),
			zap.String("db_name", cfg.DB.DBName))
	}

	recon := directory.NewReconciler(st, directory.FallbackSuppliers(), log)
	loadCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.RequestTimeout)
	recon.Load(loadCtx)
	cancel()
	prometheus.SetOfflineMode(recon.Offline())
	prometheus.DirectorySizeGauge.Set(float64(len(recon.All())))
	log.Info("Directory loaded", zap.Bool("offline", recon.Offline()))

	h := handler.New(recon, aiClient, matchCache, navigation.NewRegistry(), orders)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.TimeoutWithConfig(echomiddleware.TimeoutConfig{
		Timeout: cfg.Server.RequestTimeout,
	}))
	e.Use(middleware.RequestIDMiddleware)

	// Request logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			status := c.Response().Status

			log := logger.FromEcho(c)
			log.Info("HTTP Request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", status),
				zap.Float64("duration_s", duration),
				zap.String("ip", c.RealIP()),
			)

			prometheus.HttpRequestsTotal.WithLabelValues(
				c.Request().Method,
				c.Request().URL.Path,
				strconv.Itoa(status),
			).Inc()
			prometheus.HttpRequestDuration.WithLabelValues(
				c.Request().Method,
				c.Request().URL.Path,
				strconv.Itoa(status),
			).Observe(duration)

			return err
		}
	})

	// Public routes
	e.GET("/", h.Health)
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.POST("/auth/signup", h.SignUp)
	e.POST("/auth/signin", h.SignIn)
	e.GET("/api/session", h.Session) // bootstrap; absent session is landing, not 401

	// Authenticated API
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware)

	api.POST("/auth/signout", h.SignOut)

	api.GET("/suppliers", h.ListSuppliers)
	api.GET("/suppliers/:id", h.GetSupplier)
	api.POST("/suppliers/refresh", h.Refresh)
	api.POST("/suppliers/:id/contact", h.Contact)

	api.POST("/match", h.Match)
	api.POST("/chat", h.Chat)
	api.POST("/advice", h.Advice)

	api.GET("/view", h.View)
	api.POST("/view", h.Transition)

	buyers := api.Group("")
	buyers.Use(middleware.RequireRole("buyer"))
	buyers.GET("/orders", h.ListOrders)

	suppliers := api.Group("")
	suppliers.Use(middleware.RequireRole("supplier"))
	suppliers.POST("/listings", h.UpsertListing)
	suppliers.GET("/dashboard", h.Dashboard)
	suppliers.POST("/onboarding", h.CompleteOnboarding)
	suppliers.PUT("/dossier", h.UpdateDossier)
	suppliers.GET("/dossier/view", h.OwnDossierView)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
