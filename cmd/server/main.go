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
	"github.com/labstack/echo/v4/middleware"

	"github.com/pancakehouse/backend/internal/config"
	"github.com/pancakehouse/backend/internal/es"
	"github.com/pancakehouse/backend/internal/handlers"
	"github.com/pancakehouse/backend/internal/httpserver"
	"github.com/pancakehouse/backend/internal/jwtauth"
	"github.com/pancakehouse/backend/internal/logging"
	"github.com/pancakehouse/backend/internal/mykafka"
	"github.com/pancakehouse/backend/internal/repo"
	"github.com/pancakehouse/backend/internal/service"
	"github.com/pancakehouse/backend/pkg/db"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	ctx := context.Background()
	gdb, err := db.Open(ctx, configuration.DSN())
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	var searchHandler *handlers.SearchHandler

	users := &repo.UserRepo{DB: gdb}
	catalog := &repo.CatalogRepo{DB: gdb}
	orders := &repo.OrderRepo{DB: gdb}

	tokens := &jwtauth.TokenService{
		DB:            gdb,
		JWTSecret:     []byte(configuration.JWT_SECRET),
		RefreshSecret: []byte(configuration.REFRESH_SECRET),
	}

	catalogHandler := &handlers.CatalogHandler{
		Svc:      &service.CatalogService{Catalog: catalog},
		Producer: producer,
	}

	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		catalogHandler.ES = esClient
		searchHandler = &handlers.SearchHandler{ES: esClient, Index: es.PancakeIndex}
	}

	deps := httpserver.Deps{
		AuthHandler: &handlers.AuthHandler{
			Account:  &service.AccountService{Users: users},
			Tokens:   tokens,
			Producer: producer,
		},
		CatalogHandler: catalogHandler,
		OrderHandler: &handlers.OrderHandler{
			Svc:      &service.OrderService{Users: users, Catalog: catalog, Orders: orders},
			Producer: producer,
		},
		SearchHandler: searchHandler,
		Tokens:        tokens,
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), logger)))
			return next(c)
		}
	})

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
