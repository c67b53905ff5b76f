// @title Social API
// @version 1.0
// @description Users, posts, likes and dislikes with JWT authentication.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

//go:generate swag init -g main.go -o docs

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/snap-point/social-api/blacklist"
	"github.com/snap-point/social-api/config"
	"github.com/snap-point/social-api/logging"
	"github.com/snap-point/social-api/middleware"
	"github.com/snap-point/social-api/routes"
	"github.com/snap-point/social-api/storage"
	"github.com/snap-point/social-api/utils"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Warn().Err(err).Msg("load .env")
	}

	cfg, err := config.Load("")
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("invalid config")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Caller: cfg.Logging.Caller})
	utils.RegisterValidators()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := config.ConnectDatabase(cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("connect database")
	}
	if cfg.Database.AutoMigrate {
		if err := config.Migrate(db); err != nil {
			logging.Fatal().Err(err).Msg("migrate database")
		}
	}

	tokens, err := utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenLifetime, cfg.Auth.RefreshTokenLifetime)
	if err != nil {
		logging.Fatal().Err(err).Msg("token manager")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var bl blacklist.Blacklist = blacklist.NewGormBlacklist(db)
	if cfg.Redis.Addr != "" {
		client, err := blacklist.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logging.Fatal().Err(err).Msg("connect redis")
		}
		defer client.Close()
		bl = blacklist.NewRedisBlacklist(client)
		logging.Info().Str("addr", cfg.Redis.Addr).Msg("token blacklist backed by redis")
	}

	var media storage.MediaStore
	if cfg.Storage.Enabled() {
		s3Store, err := storage.NewS3Store(cfg.Storage)
		if err != nil {
			logging.Fatal().Err(err).Msg("configure media storage")
		}
		media = s3Store
	} else {
		logging.Warn().Msg("media storage not configured, image uploads disabled")
	}

	var limiter *middleware.RateLimiter
	if cfg.Server.TokenRateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.Server.TokenRateLimit, cfg.Server.TokenRateBurst)
		go func() {
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					limiter.Cleanup(10 * time.Minute)
					logging.Debug().Int("clients", limiter.Size()).Msg("rate limiter cleanup")
				}
			}
		}()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	routes.SetupRoutes(r, routes.Dependencies{
		DB:           db,
		Config:       cfg,
		Tokens:       tokens,
		Blacklist:    bl,
		Media:        media,
		TokenLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
