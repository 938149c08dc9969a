package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/magazin/internal/config"
	"github.com/Skotchmaster/magazin/internal/events"
	"github.com/Skotchmaster/magazin/internal/httpserver"
	"github.com/Skotchmaster/magazin/internal/repo"
	"github.com/Skotchmaster/magazin/internal/search"
	"github.com/Skotchmaster/magazin/internal/service"
	"github.com/Skotchmaster/magazin/internal/session"
	pkgdb "github.com/Skotchmaster/magazin/pkg/db"
	"github.com/Skotchmaster/magazin/pkg/logging"
)

func main() {
	config.LoadDotEnv(".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)
	if cfg.GeneratedSecret {
		logger.Warn("session_secret_generated", "reason", "SESSION_SECRET is not set, carts will not survive a restart")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := repo.Migrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	store := &repo.GormRepo{DB: db}

	if cfg.SeedDemo {
		seeded, err := store.SeedDemo(context.Background())
		if err != nil {
			log.Fatalf("seed demo: %v", err)
		}
		logger.Info("seed_demo", "seeded", seeded)
	}

	var searcher service.ProductSearcher = store
	if cfg.ESURL != "" {
		es, err := newElastic(cfg, store)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		searcher = es
		logger.Info("search_backend", "backend", "elasticsearch", "index", es.Index)
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := events.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		publisher = producer
		logger.Info("events_enabled", "brokers", cfg.KafkaBrokers)
	}

	sessions := session.NewStore(cfg.SessionSecret, cfg.SessionMaxAge, cfg.SessionSecure)

	catalog := &service.CatalogService{Repo: store, Searcher: searcher}
	comments := &service.CommentService{Repo: store, Catalog: catalog}
	checkout := &service.CheckoutService{Products: store, Orders: store}

	e, err := httpserver.New(&httpserver.Deps{
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalog, Comments: comments},
		CommentHandler: &httpserver.CommentHTTP{Svc: comments, Events: publisher},
		CartHandler:    &httpserver.CartHTTP{Svc: checkout, Sessions: sessions, Events: publisher},
		Ready:          store.Ping,
	}, httpserver.Options{Sessions: sessions, SecureCookie: cfg.SessionSecure}, logger)
	if err != nil {
		log.Fatalf("http server: %v", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("magazin listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
	if err := publisher.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}
	if err := pkgdb.Close(db); err != nil {
		log.Printf("db close error: %v", err)
	}

	log.Println("magazin stopped")
}

// newElastic connects to Elasticsearch and indexes the current catalog.
func newElastic(cfg config.Config, store *repo.GormRepo) (*search.Elastic, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	es, err := search.New(ctx, search.Config{
		URL:      cfg.ESURL,
		Username: cfg.ESUser,
		Password: cfg.ESPassword,
		Index:    cfg.ESIndex,
	})
	if err != nil {
		return nil, err
	}
	if err := es.EnsureIndex(ctx); err != nil {
		return nil, err
	}

	products, err := store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if err := es.IndexProducts(ctx, products); err != nil {
		return nil, err
	}
	return es, nil
}
