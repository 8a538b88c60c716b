package main

import (
	"errors"
	"flag"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/inkstamp/sign-portal/internal/config"
	"github.com/inkstamp/sign-portal/internal/signing"
	"github.com/inkstamp/sign-portal/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to JSON config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("failed to load config:", err)
	}

	zl, err := logger.New(cfg.Logging.Environment, cfg.Logging.Level)
	if err != nil {
		log.Fatal("failed to build logger:", err)
	}
	defer zl.Sync()

	if cfg.Logging.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(signing.RequestLogger(zl))
	// Catch-all guard: nothing escaping a route handler reaches the
	// transport layer as an unhandled failure.
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		zl.Error("panic recovered", zap.Any("panic", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}))
	r.Use(signing.BodyLimit(cfg.Signing.MaxUploadBytes))

	stamper := signing.NewStamper(signing.DefaultStampConfig(cfg.Signing.StampLabel, cfg.Signing.StampLocation))
	service := signing.NewService(cfg.Signing, stamper, zl)
	handler := signing.NewHandler(cfg.Signing, service, zl)
	handler.RegisterRoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API alive!"})
	})

	srv := &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	zl.Info("server running", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
