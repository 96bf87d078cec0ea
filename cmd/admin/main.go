package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"course-choose-api/internal/app"
	"course-choose-api/internal/core/config"
	"course-choose-api/internal/core/server"
	"course-choose-api/internal/transport/http/router"
)

// 管理端只应监听内网地址，默认 127.0.0.1:8081
func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	log, cleanup := app.NewLogger(cfg)
	defer cleanup()
	log = log.Named("admin")

	a, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer a.Close()

	r, err := router.NewAdminEngine(a.RouterOptions(cfg.App.Admin), a.Registry)
	if err != nil {
		log.Fatal("mount admin routes failed", zap.Error(err))
	}
	srv := a.Server(cfg.App.Admin, r)
	log.Info("admin api starting",
		zap.String("users", "/admin/v1/users"),
		zap.String("activity_logs", "/admin/v1/activity-logs"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := server.Run(ctx, srv, 10*time.Second, log); err != nil {
		log.Error("admin api stopped with error", zap.Error(err))
		return
	}
	log.Info("admin api stopped gracefully")
}
