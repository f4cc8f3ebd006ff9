package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/marketsim/go-market/app/buyers"
	"github.com/marketsim/go-market/app/catalog"
	"github.com/marketsim/go-market/app/config"
	"github.com/marketsim/go-market/app/market"
	"github.com/marketsim/go-market/models"
)

// main wires the HTTP market: config, optional Postgres persistence, the
// purchase engine, and the router. Without DATABASE_URL the server runs
// fully in memory.
func main() {
	cfg := config.Load()
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	check := models.NewValidation(cfg.Profile)
	opts := []market.Option{market.WithLogger(log)}

	var store *models.MarketStore
	if cfg.DatabaseURL != "" {
		db, err := openDB(cfg.DatabaseURL)
		if err != nil {
			log.Error("database unavailable", "error", err)
			os.Exit(1)
		}
		if err := models.Migrate(db); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		store = models.NewMarketStore(db)
		opts = append(opts, market.WithStore(store))
	}

	engine := market.NewEngine(check, opts...)

	var provider catalog.ProductProvider = engine
	if store != nil {
		if err := seed(engine, store); err != nil {
			log.Error("failed to seed engine from database", "error", err)
			os.Exit(1)
		}
		provider = store.Products()
	}

	catalogHandler := catalog.NewCatalogHandler(provider)
	buyersHandler := buyers.NewBuyersHandler(engine)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /catalog", catalogHandler.HandleGet)
	mux.HandleFunc("GET /catalog/{name}", catalogHandler.HandleGetProduct)
	mux.HandleFunc("POST /buyers", buyersHandler.HandleRegisterBuyer)
	mux.HandleFunc("POST /products", buyersHandler.HandleRegisterProduct)
	mux.HandleFunc("POST /purchases", buyersHandler.HandlePurchase)
	mux.HandleFunc("GET /report", buyersHandler.HandleReport)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}

	log.Info("starting market server", "addr", cfg.Addr, "profile", cfg.Profile, "persistent", store != nil)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// openDB pings the DSN with database/sql first so a misconfigured URL
// fails fast with a plain driver error, then hands it to GORM.
func openDB(dsn string) (*gorm.DB, error) {
	probe, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := probe.Ping(); err != nil {
		probe.Close()
		return nil, err
	}
	probe.Close()

	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// seed replays persisted buyers and products into the fresh engine so
// registrations survive restarts. Purchase history stays in the ledger.
func seed(engine *market.Engine, store *models.MarketStore) error {
	buyersList, err := store.Buyers().GetAllBuyers()
	if err != nil {
		return err
	}
	for _, b := range buyersList {
		if _, err := engine.RegisterBuyer(b.Name, b.Money); err != nil {
			return err
		}
	}

	products, err := store.Products().GetAllProducts()
	if err != nil {
		return err
	}
	for _, p := range products {
		if p.Kind == models.KindDiscounted {
			_, err = engine.RegisterDiscountProduct(p.Name, p.Price, p.Discount, p.ValidUntil)
		} else {
			_, err = engine.RegisterProduct(p.Name, p.Price)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
