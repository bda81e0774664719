package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "busbooking/internal/config"
	router "busbooking/internal/http"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	cfg, err := intconfig.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	intconfig.ConnectDB(cfg.Database)
	defer intconfig.CloseDB()

	rdb := intconfig.ConnectRedis(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}

	r := router.NewRouter(cfg, rdb)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.WithField("addr", cfg.Server.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("shutdown failed: %v", err)
	}

	logrus.Info("server stopped")
}
