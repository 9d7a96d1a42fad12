package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/sursrinu/artandcraft-platform/internal/config"
	"github.com/sursrinu/artandcraft-platform/internal/db"
	"github.com/sursrinu/artandcraft-platform/internal/httpserver"
	"github.com/sursrinu/artandcraft-platform/internal/logging"
	"github.com/sursrinu/artandcraft-platform/internal/middleware"
	"github.com/sursrinu/artandcraft-platform/internal/mykafka"
	"github.com/sursrinu/artandcraft-platform/internal/repo"
	"github.com/sursrinu/artandcraft-platform/internal/search"
	"github.com/sursrinu/artandcraft-platform/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LOG_LEVEL).With("service", "artandcraft")
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gormDB, err := db.Open(ctx, cfg.DatabaseDSN())
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	var producer *mykafka.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer(strings.Split(cfg.KAFKA_ADDRESS, ","))
	} else {
		logger.Warn("kafka disabled, KAFKA_ADDRESS not set")
	}

	r := repo.New(gormDB)

	authSvc := &service.AuthService{Repo: r, JWTSecret: []byte(cfg.JWT_SECRET), RefreshSecret: []byte(cfg.REFRESH_SECRET)}
	cartSvc := &service.CartService{Repo: r}
	orderSvc := &service.OrderService{Repo: r}
	payoutSvc := &service.PayoutService{Repo: r}
	vendorSvc := &service.VendorService{Repo: r}
	productSvc := &service.ProductService{Repo: r}
	reviewSvc := &service.ReviewService{Repo: r}
	userSvc := &service.UserService{Repo: r}
	notificationSvc := &service.NotificationService{Repo: r}
	if producer != nil {
		authSvc.Producer = producer
		cartSvc.Producer = producer
		orderSvc.Producer = producer
		payoutSvc.Producer = producer
		productSvc.Producer = producer
	}

	deps := httpserver.Deps{
		Auth:          &middleware.Auth{JWTSecret: []byte(cfg.JWT_SECRET)},
		AuthH:         &httpserver.AuthHandler{Svc: authSvc},
		CartH:         &httpserver.CartHandler{Svc: cartSvc},
		OrderH:        &httpserver.OrderHandler{Svc: orderSvc, VendorSvc: vendorSvc},
		PayoutH:       &httpserver.PayoutHandler{Svc: payoutSvc, VendorSvc: vendorSvc},
		ProductH:      &httpserver.ProductHandler{Svc: productSvc, VendorSvc: vendorSvc},
		ReviewH:       &httpserver.ReviewHandler{Svc: reviewSvc},
		UserH:         &httpserver.UserHandler{Svc: userSvc},
		VendorH:       &httpserver.VendorHandler{Svc: vendorSvc},
		NotificationH: &httpserver.NotificationHandler{Svc: notificationSvc},
	}

	if cfg.ES_URL != "" {
		es, err := search.NewClient(cfg)
		if err != nil {
			logger.Error("elasticsearch unavailable, search disabled", "error", err)
		} else {
			productSvc.Indexer = &search.Indexer{ES: es, Index: cfg.ES_INDEX}
			deps.SearchH = &httpserver.SearchHandler{ES: es, Index: cfg.ES_INDEX}
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpserver.ErrorHandler(logger)
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:              cfg.HTTP_ADDR,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("artandcraft listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if producer != nil {
		_ = producer.Close()
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("artandcraft stopped")
}
