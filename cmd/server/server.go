package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/sagaforge/progression-api/internal/config"
	"github.com/sagaforge/progression-api/internal/content"
	"github.com/sagaforge/progression-api/internal/engine/sagarules"
	v1 "github.com/sagaforge/progression-api/internal/handlers/progression/v1"
	"github.com/sagaforge/progression-api/internal/orchestrators/progression"
	"github.com/sagaforge/progression-api/internal/pkg/idgen"
	redisclient "github.com/sagaforge/progression-api/internal/redis"
	characterrepo "github.com/sagaforge/progression-api/internal/repositories/character"
	"github.com/sagaforge/progression-api/internal/repositories/intentcache"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the progression API HTTP server with all configured services.`,
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	eng, err := sagarules.NewAdapter(&sagarules.AdapterConfig{Catalog: catalog})
	if err != nil {
		return err
	}

	client, err := redisclient.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return err
	}

	var cache intentcache.Repository
	switch cfg.IntentCache {
	case config.IntentCacheRedis:
		cache = intentcache.NewRedisRepository(client)
	default:
		cache = intentcache.NewMemoryRepository(&intentcache.MemoryConfig{
			Capacity: cfg.IntentCacheSize,
		})
	}

	orch, err := progression.New(&progression.Config{
		CharacterRepo: characterrepo.NewRedisRepository(client),
		IntentCache:   cache,
		Engine:        eng,
		IDGenerator:   idgen.NewUUID("session"),
	})
	if err != nil {
		return err
	}

	handler, err := v1.NewHandler(&v1.HandlerConfig{Service: orch})
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr, "intent_cache", cfg.IntentCache)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("received shutdown signal, gracefully stopping")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown failed, forcing close", "error", err)
			return srv.Close()
		}
		slog.Info("server stopped gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}

func loadCatalog(cfg *config.Config) (*content.Catalog, error) {
	if cfg.ContentPath == "" {
		return content.Default(), nil
	}
	return content.Load(cfg.ContentPath)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
