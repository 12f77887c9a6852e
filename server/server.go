package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SndHop/cache"
	"SndHop/config"
	"SndHop/core/audio"
	"SndHop/core/soundcloud"
	"SndHop/logger"
	"SndHop/storage"

	"github.com/gorilla/mux"
)

// Start wires the pipeline together and runs the HTTP server until
// SIGINT/SIGTERM arrives.
func Start(cfg *config.Config) {
	if err := storage.InitMinio(cfg); err != nil {
		logger.Fatal("failed to initialize object storage", logger.ErrorField(err))
	}

	// Redis is optional: without it the credential cache lives in memory.
	if cfg.RedisHost != "" {
		if err := cache.ConnectRedis(cfg); err != nil {
			logger.Warn("redis unavailable, credential cache falls back to memory",
				logger.ErrorField(err))
		} else {
			defer cache.CloseRedis()
		}
	}

	pipeline, err := buildPipeline(cfg)
	if err != nil {
		logger.Fatal("failed to build pipeline", logger.ErrorField(err))
	}

	router := mux.NewRouter()
	router.Use(corsMiddleware)
	router.Use(requestIDMiddleware)

	scHandler := NewSoundcloudHandler(pipeline)
	router.HandleFunc("/api/soundcloud", scHandler.HandleResolve).Methods(http.MethodGet)
	router.HandleFunc("/api/health", healthHandler).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:        ":" + cfg.ServerPort,
		Handler:     router,
		ReadTimeout: 30 * time.Second,
		// Long tracks mean many segment downloads per request; the write
		// timeout bounds the whole pipeline run.
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server listening", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", logger.ErrorField(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", logger.ErrorField(err))
	}
}

// buildPipeline assembles the production pipeline from configuration.
func buildPipeline(cfg *config.Config) (*soundcloud.Pipeline, error) {
	client := soundcloud.NewClient(cfg)
	creds := cache.NewCredentialCache(client.DiscoverCredential, cache.CredentialTTL)

	uploader, err := storage.NewArtifactUploader(cfg)
	if err != nil {
		return nil, err
	}

	return soundcloud.NewPipeline(creds, client, client, audio.NewAssembler(), uploader), nil
}
