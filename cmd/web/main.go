package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"kalshield/cmd/internal/logger"
	"kalshield/cmd/web/auth"
	"kalshield/cmd/web/clients/blogclient"
	"kalshield/cmd/web/httpclient"
	"kalshield/cmd/web/router"
	"kalshield/cmd/web/templates"
	"kalshield/config"
	"kalshield/storage"
)

// @title           KalShield API
// @version         1.0
// @description     Read-only JSON access to the KalShield article search
// @BasePath        /api/v1
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(logger.Options{Level: cfg.Logging.Level, Service: cfg.Logging.Service})
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	sessions, err := auth.NewSessionManager(cfg.Session.Secret, cfg.Session.TTL)
	if err != nil {
		logger.Log.Errorf("session manager: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	var uploader storage.Uploader = storage.Disabled{}
	if cfg.Storage.Bucket != "" {
		fb, err := storage.NewFirebase(ctx, cfg.Storage.Bucket, cfg.Storage.CredentialsFile)
		if err != nil {
			logger.Log.Errorf("firebase storage: %v", err)
			os.Exit(1)
		}
		defer fb.Close()
		uploader = fb
	} else {
		logger.Log.Warn("FIREBASE_BUCKET is not set, image uploads are disabled")
	}

	client := blogclient.New(blogclient.Options{
		BaseURL:     cfg.Backend.BaseURL,
		HTTPClient:  httpclient.New(httpclient.Config{Timeout: cfg.Backend.Timeout}),
		TokenCookie: cfg.Backend.TokenCookie,
	})

	r := router.New(router.Options{
		Client:   client,
		Sessions: sessions,
		Cookie: auth.CookieOptions{
			Name:   cfg.Session.CookieName,
			MaxAge: int(sessions.TTL().Seconds()),
			Secure: cfg.Session.Secure,
		},
		Uploader:    uploader,
		MaxUpload:   cfg.Storage.MaxUploadBytes,
		CORSOrigins: cfg.Server.CORSOrigins,
		Templates:   templates.MustLoad(),
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		logger.InfoWithFields("web server listening", logger.Fields{
			"addr":    cfg.Server.Addr,
			"backend": cfg.Backend.BaseURL,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Errorf("server run failed: %v", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	logger.Log.Info("server stopping")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("graceful shutdown failed: %v", err)
	}
}
