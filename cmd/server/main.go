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

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/daspi/bookshop/internal/config"
	"github.com/daspi/bookshop/internal/es"
	"github.com/daspi/bookshop/internal/events"
	"github.com/daspi/bookshop/internal/httpserver"
	"github.com/daspi/bookshop/internal/logging"
	"github.com/daspi/bookshop/internal/middleware"
	"github.com/daspi/bookshop/internal/repo"
	"github.com/daspi/bookshop/internal/search"
	"github.com/daspi/bookshop/internal/service"
	"github.com/daspi/bookshop/pkg/booksclient"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *events.Producer
	if cfg.KafkaAddress != "" {
		producer = events.NewProducer([]string{cfg.KafkaAddress})
	} else {
		log.Println("KAFKA_ADDRESS not set, event publishing disabled")
	}

	booksAPI := booksclient.New(cfg.BooksAPIURL, cfg.BooksAPIKey)
	booksHandler := &httpserver.BooksHTTP{Books: booksAPI, Index: search.DefaultIndex}
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("es init error: %v", err)
		}
		booksHandler.ES = esClient
	} else {
		log.Println("ES_URL not set, catalog index disabled")
	}

	gormRepo := &repo.GormRepo{DB: db}
	authService := &service.AuthService{Repo: gormRepo, JWTSecret: cfg.JWTSecret}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID(), echomw.CORS())
	e.Use(middleware.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authService, Producer: producer},
		CartHandler:    &httpserver.CartHTTP{Svc: &service.CartService{Repo: gormRepo}, Producer: producer},
		VoucherHandler: &httpserver.VoucherHTTP{Svc: &service.VoucherService{Repo: gormRepo}, Producer: producer},
		BooksHandler:   booksHandler,
		Session:        middleware.NewSessionMiddleware(cfg.JWTSecret, authService),
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting bookshop server on port %s...", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
