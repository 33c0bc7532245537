package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"srebrnasad/internal/config"
	"srebrnasad/internal/db"
	"srebrnasad/internal/delivery"
	"srebrnasad/internal/geo"
	"srebrnasad/internal/httpserver"
	applerepo "srebrnasad/internal/repository/apple"
	contactrepo "srebrnasad/internal/repository/contact"
	orderrepo "srebrnasad/internal/repository/order"
	catalogsvc "srebrnasad/internal/service/catalog"
	contactsvc "srebrnasad/internal/service/contact"
	ordersvc "srebrnasad/internal/service/order"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	appleRepo := applerepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	contactRepo := contactrepo.NewPostgres(dbpool, logger)

	httpClient := &http.Client{Timeout: cfg.ProviderTimeout}
	geocoder := geo.NewNominatim(cfg.GeocodeBaseURL, cfg.GeocodeCountry, httpClient)
	router := geo.NewOSRM(cfg.RoutingBaseURL, httpClient)

	catalogService := catalogsvc.New(appleRepo)
	orderService := ordersvc.New(orderRepo, appleRepo, router, cfg.Orchard, logger)
	contactService := contactsvc.New(contactRepo)
	checker := delivery.NewChecker(geocoder, router, orderService, cfg.Orchard, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog:  catalogService,
		Orders:   orderService,
		Contact:  contactService,
		Checker:  checker,
		Sessions: delivery.NewRegistry(),
	}, cfg.AllowedOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
