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

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	log, cleanup := app.NewLogger(cfg)
	defer cleanup()

	a, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer a.Close()

	r, err := router.NewAPIEngine(a.RouterOptions(cfg.App.HTTP), a.Registry)
	if err != nil {
		log.Fatal("mount routes failed", zap.Error(err))
	}
	srv := a.Server(cfg.App.HTTP, r)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("course api starting",
		zap.String("env", cfg.App.Env),
		zap.String("health", baseURL+"/health"),
		zap.String("users", baseURL+"/user"),
		zap.String("courses", baseURL+"/course"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := server.Run(ctx, srv, 10*time.Second, log); err != nil {
		log.Error("course api stopped with error", zap.Error(err))
		return
	}
	log.Info("course api stopped gracefully")
}
