package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartride-backend/internal/config"
	internalhttp "smartride-backend/internal/http"
	"smartride-backend/internal/metrics"
)

func main() {
	env := config.LoadEnv()

	db := config.ConnectDB(env.DBDSN)
	defer config.CloseDB()

	if err := config.EnsureSchema(db); err != nil {
		log.Fatalf("[BOOT] schema migration failed: %v", err)
	}
	if env.SeedDemo {
		if err := config.SeedDemoData(db); err != nil {
			log.Printf("[BOOT] demo seed skipped: %v", err)
		}
	}

	m := metrics.New("smartride")
	router := internalhttp.NewRouter(env, m)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("[BOOT] listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[BOOT] server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[BOOT] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[BOOT] forced shutdown: %v", err)
	}
}
