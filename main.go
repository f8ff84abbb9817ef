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

	"github.com/gin-gonic/gin"

	"snakeduel/config"
	"snakeduel/game"
	"snakeduel/server"
)

func main() {
	settings, err := config.Load(".env")
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	match := game.NewMatch(game.RulesFrom(settings), game.NewRand())
	hub := server.NewHub(match, settings.SchedulerTick)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start game loop in background
	go hub.Run(ctx)

	srv := &http.Server{
		Addr:    settings.Addr(),
		Handler: server.NewRouter(hub, settings),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("server listening on %s (map %dx%d, static %s)", srv.Addr, settings.MapSize, settings.MapSize, settings.StaticDir)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
