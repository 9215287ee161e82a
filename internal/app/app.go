package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/carpediction/server/internal/config"
	"github.com/carpediction/server/internal/database"
	"github.com/carpediction/server/internal/middleware"
	"github.com/carpediction/server/internal/modules/wotd"
	pkgcron "github.com/carpediction/server/internal/pkg/cron"
	"github.com/carpediction/server/internal/pkg/httplog"
	pkgjwt "github.com/carpediction/server/internal/pkg/jwt"
	pkgredis "github.com/carpediction/server/internal/pkg/redis"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *mongo.Database
	logger *zap.Logger
	cancel context.CancelFunc
	sched  *pkgcron.Scheduler

	wotdSvc *wotd.Service
}

// New initializes the application: config → Mongo → Redis → routes → cron.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	pkgjwt.SetSecret(cfg.JWTSecret)

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	// Redis is optional: without it the provider cache degrades to live
	// lookups on every request.
	var rc *pkgredis.Client
	if cfg.RedisURL != "" {
		rc, err = pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, provider cache disabled", zap.Error(err))
			rc = nil
		}
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	// %2F inside a :query param must stay one path segment
	router.UseRawPath = true
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger, httplog.DefaultRedaction()))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		corsConfig.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	ctx, cancel := context.WithCancel(context.Background())

	app := &App{cfg: cfg, router: router, db: db, logger: logger, cancel: cancel, sched: pkgcron.New()}
	app.registerRoutes(rc)
	app.registerCronJobs()
	go app.sched.Start(ctx)

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background work and closes the database.
func (a *App) Shutdown() {
	a.cancel()
	a.sched.Stop()
	if err := database.Disconnect(a.db); err != nil {
		a.logger.Warn("mongo disconnect", zap.Error(err))
	}
}
