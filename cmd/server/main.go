package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Buzzy89/client/api"
	"github.com/Buzzy89/client/config"
	"github.com/Buzzy89/client/handlers"
	"github.com/Buzzy89/client/routes"
	"github.com/Buzzy89/client/wikidata"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed: ", err)
	}

	logger, err := buildLogger(cfg.Production)
	if err != nil {
		log.Fatal("logger init failed: ", err)
	}
	defer logger.Sync()

	apiClient, err := api.New(api.Config{
		BaseURL: cfg.APIBaseURL,
		HTTPClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("api client init failed", zap.Error(err))
	}

	wiki := wikidata.New(wikidata.Config{
		BaseURL: cfg.WikiDataBaseURL,
		Logger:  logger,
	})

	deps, err := handlers.NewDeps(apiClient, wiki, cfg.TemplatesDir, logger)
	if err != nil {
		logger.Fatal("handler init failed", zap.Error(err))
	}

	router := mux.NewRouter()
	router.Use(handlers.RequestLogging(logger))
	routes.CreateAuthRoutes(deps, router)
	routes.CreatePageRoutes(deps, router)
	router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server listening",
			zap.String("addr", cfg.ListenAddr),
			zap.String("api", cfg.APIBaseURL))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

func buildLogger(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
