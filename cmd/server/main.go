package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clubfinanzas/backend/internal/app"
	"github.com/clubfinanzas/backend/internal/infrastructure/auth"
	"github.com/clubfinanzas/backend/internal/infrastructure/cache"
	"github.com/clubfinanzas/backend/internal/infrastructure/config"
	"github.com/clubfinanzas/backend/internal/infrastructure/logger"
	"github.com/clubfinanzas/backend/internal/infrastructure/migration"
	"github.com/clubfinanzas/backend/internal/infrastructure/persistence"
	"github.com/clubfinanzas/backend/migrations"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting club finance backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", db.Driver))

	if err := migrateSchema(cfg, db, log); err != nil {
		log.Fatal("Failed to migrate schema", zap.Error(err))
	}

	stores, closeStores, err := newStores(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize key-value stores", zap.Error(err))
	}
	defer closeStores()

	application, err := app.New(cfg, db, stores, log)
	if err != nil {
		log.Fatal("Failed to build application", zap.Error(err))
	}
	defer application.Close()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        application.Engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	log.Info("Server exited gracefully")
}

// migrateSchema builds the sqlite schema from the models; PostgreSQL runs the
// embedded SQL migrations when database.auto_migrate is set.
func migrateSchema(cfg *config.Config, db *persistence.Database, log *zap.Logger) error {
	if db.Driver == persistence.DriverSQLite {
		return db.AutoMigrate()
	}
	if !cfg.Database.AutoMigrate {
		return nil
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, migrations.FS, log)
	if err != nil {
		return err
	}
	// not closed: the migrator's Close also closes the shared *sql.DB
	return m.Up()
}

// newStores connects the token blacklist and the idempotency store to one
// Redis client, or keeps both in memory when Redis is disabled
func newStores(cfg *config.Config, log *zap.Logger) (app.Stores, func(), error) {
	if !cfg.Redis.Enabled {
		log.Info("Redis disabled, using in-memory stores")
		idempotency := cache.NewInMemoryIdempotencyStore()
		return app.Stores{
			Blacklist:   auth.NewInMemoryTokenBlacklist(),
			Idempotency: idempotency,
		}, idempotency.Close, nil
	}

	blacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return app.Stores{}, nil, err
	}
	log.Info("Stores backed by Redis", zap.String("addr", cfg.Redis.Addr()))
	return app.Stores{
			Blacklist:   blacklist,
			Idempotency: cache.NewRedisIdempotencyStore(blacklist.Client()),
		}, func() {
			if err := blacklist.Close(); err != nil {
				log.Warn("Error closing Redis", zap.Error(err))
			}
		}, nil
}
