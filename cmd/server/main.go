package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kalibre-teknik/backoffice/internal/config"
	"github.com/kalibre-teknik/backoffice/internal/handlers"
	"github.com/kalibre-teknik/backoffice/internal/middleware"
	"github.com/kalibre-teknik/backoffice/internal/report"
	"github.com/kalibre-teknik/backoffice/internal/repository"
	"github.com/kalibre-teknik/backoffice/internal/services/archive"
	"github.com/kalibre-teknik/backoffice/internal/services/notify"
	"github.com/kalibre-teknik/backoffice/internal/services/quote"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := repository.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepository(db)
	workOrders := repository.NewWorkOrderRepository(db)
	quotes := repository.NewQuoteRepository(db)
	reports := repository.NewReportRepository(db)

	registry := report.NewRegistry()
	engine := report.NewEngine(cfg.FontDir, cfg.AssetDir)
	generator := report.NewGenerator(registry, engine, cfg.ReportDir, cfg.MissingVerdict)

	quoteSvc := quote.NewService(cfg)

	archiveSvc, err := archive.NewService(cfg)
	if err != nil {
		log.Printf("Object storage unavailable, report archival disabled: %v", err)
		archiveSvc = nil
	}

	notifySvc := notify.NewService(cfg)
	defer notifySvc.Close()

	authHandler := handlers.NewAuthHandler(users, cfg)
	quoteHandler := handlers.NewQuoteHandler(quotes, quoteSvc)
	workOrderHandler := handlers.NewWorkOrderHandler(workOrders)
	reportHandler := handlers.NewReportHandler(cfg, generator, workOrders, reports, users, archiveSvc, notifySvc)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := setupRouter(cfg, authHandler, quoteHandler, workOrderHandler, reportHandler)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

func setupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	quoteHandler *handlers.QuoteHandler,
	workOrderHandler *handlers.WorkOrderHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RateLimit(cfg))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/api/v1/auth/login", authHandler.Login)

	api := router.Group("/api/v1")
	api.Use(middleware.Auth(cfg))
	{
		api.POST("/auth/register", middleware.RequireRole("admin"), authHandler.Register)
		api.GET("/auth/me", authHandler.Me)
		api.GET("/users", middleware.RequireRole("admin"), authHandler.List)

		api.POST("/workorders", workOrderHandler.Create)
		api.GET("/workorders", workOrderHandler.List)
		api.GET("/workorders/:id", workOrderHandler.Get)

		api.POST("/quotes", quoteHandler.Create)
		api.GET("/quotes", quoteHandler.List)
		api.GET("/quotes/:id", quoteHandler.Get)
		api.PUT("/quotes/:id/status", quoteHandler.UpdateStatus)
		api.DELETE("/quotes/:id", quoteHandler.Delete)

		api.POST("/reports/generate", reportHandler.Generate)
		api.GET("/reports", reportHandler.List)
		api.GET("/reports/types", reportHandler.Types)
	}

	// Mirrors the pdfUrl the generator hands back.
	router.GET("/api/reports/download/:tenantId/:filename", middleware.Auth(cfg), reportHandler.Download)

	return router
}
