package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	_ "motorbikes/docs"
	"motorbikes/pkg/catalog"
	pg "motorbikes/pkg/catalog/postgres"
	"motorbikes/pkg/config"
	"motorbikes/pkg/logger"
	"motorbikes/pkg/otel"
	"motorbikes/pkg/session"
	"motorbikes/pkg/session/memory"
	redisrepo "motorbikes/pkg/session/redis"
)

var (
	store    *catalog.Store
	sessions session.Repository
	log      *logger.Logger
	tracer   trace.Tracer
)

// @title Motorbikes API
// @version 1.0
// @description Browse, filter and sort the motorbike catalog and total a cart.
// @host localhost:8443
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log = logger.New(os.Stdout, cfg.LogLevel, "motorbikes", otel.GetTraceID)
	defer log.Sync()

	if err := run(cfg); err != nil {
		log.Error(context.Background(), "server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, shutdown, err := otel.InitTracing(log, otel.Config{ServiceName: "motorbikes", Host: cfg.OTelHost, Probability: cfg.TraceProbability})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer shutdown(context.Background())
	tracer = tp.Tracer("motorbikes")

	if store, err = loadCatalog(ctx, cfg); err != nil {
		return err
	}
	log.Info(ctx, "catalog loaded", "source", cfg.CatalogSource, "listings", store.Len())

	if cfg.RedisAddr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		sessions = redisrepo.New(client, cfg.SessionTTL)
		log.Info(ctx, "sessions in redis", "addr", cfg.RedisAddr, "ttl", cfg.SessionTTL)
	} else {
		sessions = memory.New()
		log.Info(ctx, "sessions in memory")
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      newRouter(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", cfg.Addr, "tls", cfg.TLS())
		if cfg.TLS() {
			errc <- srv.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			errc <- srv.ListenAndServe()
		}
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// loadCatalog reads the catalog once from the configured source.
func loadCatalog(ctx context.Context, cfg config.Config) (*catalog.Store, error) {
	if cfg.CatalogSource != config.SourcePostgres {
		return loadBundled(ctx)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	defer db.Close()
	return loadCatalogFrom(ctx, pg.New(db))
}

func loadBundled(ctx context.Context) (*catalog.Store, error) {
	listings, err := catalog.Bundled().Load(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.NewStore(listings)
}

// loadCatalogFrom reads the listings table, seeding it with the bundled
// catalog when it is empty.
func loadCatalogFrom(ctx context.Context, src *pg.Source) (*catalog.Store, error) {
	if err := src.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	listings, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if len(listings) > 0 {
		return catalog.NewStore(listings)
	}

	s, err := loadBundled(ctx)
	if err != nil {
		return nil, err
	}
	if err := src.Insert(ctx, s.All()); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	log.Info(ctx, "seeded empty catalog table", "listings", s.Len())
	return s, nil
}

func newRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(traceMiddleware)
	r.HandleFunc("/catalog", listCatalogHandler).Methods(http.MethodGet)
	r.HandleFunc("/catalog/options", catalogOptionsHandler).Methods(http.MethodGet)
	r.HandleFunc("/sessions", createSessionHandler).Methods(http.MethodPost)

	api := r.PathPrefix("/session").Subrouter()
	api.Use(sessionMiddleware)
	api.HandleFunc("", deleteSessionHandler).Methods(http.MethodDelete)
	api.HandleFunc("/view", viewHandler).Methods(http.MethodGet)
	api.HandleFunc("/selection", updateSelectionHandler).Methods(http.MethodPatch)
	api.HandleFunc("/selection/{field}", clearSelectionHandler).Methods(http.MethodDelete)
	api.HandleFunc("/cards/{id}/flip", flipCardHandler).Methods(http.MethodPost)
	api.HandleFunc("/cart", addToCartHandler).Methods(http.MethodPost)
	api.HandleFunc("/cart", cartHandler).Methods(http.MethodGet)
	api.HandleFunc("/checkout", checkoutHandler).Methods(http.MethodGet)
	api.HandleFunc("/checkout/toggle", toggleCheckoutHandler).Methods(http.MethodPost)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	return r
}

func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.InjectTracing(r.Context(), tracer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
