package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/backend"
	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/config"
	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/middleware"
	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/catalog"
	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/editor"
	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/handler"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting synex-quote service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	var cache catalog.Cache
	if cfg.Redis.Host != "" {
		rdb := initRedis(cfg.Redis)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			zapLogger.Warn("Redis unreachable, falling back to in-memory catalog cache", zap.Error(err))
			cache = catalog.NewMemoryCache()
		} else {
			cache = catalog.NewRedisCache(rdb)
		}
	} else {
		cache = catalog.NewMemoryCache()
	}

	be := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, zapLogger)
	catalogSvc := catalog.NewService(cache, cfg.Catalog.CacheTTL, zapLogger)
	registry := editor.NewRegistry(zapLogger)
	handlers := handler.NewHandlers(be, registry, catalogSvc, cfg, zapLogger)

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go registry.Janitor(janitorCtx, cfg.Session.SweepInterval, cfg.Session.MaxIdle)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": Version, "build_time": BuildTime})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		api.POST("/account/check", h.Account.Check)
		api.POST("/account/register", h.Account.Register)

		sessions := api.Group("/sessions")
		{
			sessions.POST("", h.Session.Open)
			sessions.GET("/:id/view", h.Session.View)
			sessions.GET("/:id/status", h.Session.Status)
			sessions.POST("/:id/catalog", h.Session.ReloadCatalog)
			sessions.POST("/:id/quantity", h.Session.SetQuantity)
			sessions.POST("/:id/price", h.Session.SetPrice)
			sessions.POST("/:id/move", h.Session.Move)
			sessions.POST("/:id/insert-after", h.Session.InsertAfter)
			sessions.POST("/:id/remove", h.Session.Remove)
			sessions.POST("/:id/manual", h.Session.SetManual)
			sessions.POST("/:id/labor", h.Session.SetLabor)
			sessions.PUT("/:id/meta", h.Session.SetMeta)
			sessions.POST("/:id/view-mode", h.Session.SetViewMode)
			sessions.POST("/:id/sort", h.Session.Sort)
			sessions.POST("/:id/template", h.Session.LoadTemplate)
			sessions.POST("/:id/submit", h.Session.Submit)
			sessions.DELETE("/:id", h.Session.Close)
		}

		documents := api.Group("/documents")
		{
			documents.GET("/:kind/search", h.Document.Search)
			documents.GET("/:kind/:id", h.Document.Get)
		}
		api.GET("/folder/:id", h.Document.Folder)

		priceCompare := api.Group("/price-compare")
		{
			priceCompare.GET("/:id", h.Document.GetPriceCompare)
			priceCompare.POST("", h.Document.CreatePriceCompare)
			priceCompare.PUT("/:id", h.Document.UpdatePriceCompare)
			priceCompare.GET("/seed/:id", h.Document.SeedPriceCompare)
		}

		api.GET("/maker", h.Document.ListMakers)
		api.GET("/maker/search", h.Document.SearchMakers)
		api.POST("/parts", h.Document.CreatePart)
	}
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}
