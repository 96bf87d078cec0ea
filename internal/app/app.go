package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-choose-api/internal/core/auth"
	"course-choose-api/internal/core/cache"
	"course-choose-api/internal/core/config"
	"course-choose-api/internal/core/database"
	"course-choose-api/internal/core/logger"
	"course-choose-api/internal/core/server"
	"course-choose-api/internal/repo"
	"course-choose-api/internal/service"
	"course-choose-api/internal/transport/http/handler"
	mdw "course-choose-api/internal/transport/http/middleware"
	"course-choose-api/internal/transport/http/router"
	"course-choose-api/pkg/utils"
)

// App 两个入口共用的依赖
type App struct {
	DB       *gorm.DB
	JWT      *auth.JWTer
	Cache    *cache.Cache // redis.addr 为空时为 nil
	Users    *service.UserService
	Logs     *service.ActivityLogService
	Registry *router.Registry

	cfg *config.Config
	log *zap.Logger
}

func New(cfg *config.Config, l *zap.Logger) (*App, error) {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Log:                l,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := repo.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		l.Info("automigrate done")
	}

	a := &App{DB: db, cfg: cfg, log: l}
	hasher := utils.NewPasswordHasher(cfg.App.Secret)
	a.JWT = &auth.JWTer{Secret: []byte(cfg.App.Secret), Issuer: cfg.JWT.Issuer, TTL: cfg.JWT.TTL()}

	audit := repo.NewActivityLogRepo(db)
	a.Users = service.NewUserService(repo.NewUserRepo(db, hasher), a.JWT, hasher, audit, l)
	a.Logs = service.NewActivityLogService(audit)

	if cfg.Redis.Addr != "" {
		c := cache.New(cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.App.Name,
		}, l)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := c.Ping(ctx); err != nil {
			// 缓存不可用不影响主流程
			l.Warn("redis unavailable, user cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
			_ = c.Close()
		} else {
			a.Cache = c
			a.Users.WithCache(c, time.Duration(cfg.Redis.UserTTLSec)*time.Second)
			l.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
		}
	}

	a.Registry = router.NewRegistry(
		handler.NewUserHandler(a.Users),
		handler.NewCourseHandler(db, audit),
		handler.NewAdminHandler(a.Users, a.Logs),
	)
	return a, nil
}

// RouterOptions 供 api 与 admin 引擎共用
func (a *App) RouterOptions(h config.HTTP) router.Options {
	lim := a.cfg.Limits
	return router.Options{
		Log:    a.log,
		Tokens: a.JWT,
		Limits: mdw.Limits{
			MaxInFlight:    lim.MaxInFlight,
			MaxBodyBytes:   lim.MaxBodyKB << 10,
			HandlerTimeout: time.Duration(lim.HandlerTimeoutSec) * time.Second,
		},
		CORSOrigins: h.CORSOrigins,
	}
}

func (a *App) Server(h config.HTTP, handler http.Handler) *http.Server {
	rt, wt, it := h.Timeouts()
	return server.BuildServer(server.Addr(h.Host, h.Port), handler, server.Timeouts{Read: rt, Write: wt, Idle: it})
}

func (a *App) Close() error {
	var errs []error
	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	}
	return errors.Join(errs...)
}

// NewLogger 按 log.file.enable 决定是否写文件并切割
func NewLogger(cfg *config.Config) (*zap.Logger, func()) {
	f := cfg.Log.File
	if !f.Enable {
		return logger.New(cfg.Log.Level, cfg.Log.JSON)
	}
	return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
		Filename:   f.Filename,
		MaxSizeMB:  f.MaxSizeMB,
		MaxBackups: f.MaxBackups,
		MaxAgeDays: f.MaxAgeDays,
		Compress:   f.Compress,
	})
}
