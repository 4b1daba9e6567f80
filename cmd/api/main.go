package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"patrimoine.mr/internal/config"
	"patrimoine.mr/internal/httpapi"
	"patrimoine.mr/internal/i18n"
	"patrimoine.mr/internal/identity"
	"patrimoine.mr/internal/obs"
	"patrimoine.mr/internal/registry"
	"patrimoine.mr/internal/store/pg"
)

var (
	version = "0.3.0"
	commit  = "dev"
)

func main() {
	configPath := flag.String("config", os.Getenv("PATRIMOINE_CONFIG"), "path to the YAML config file")
	flag.Parse()

	// optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	obs.Init()
	obs.InitBuildInfo(version, commit)

	var (
		directory identity.Directory
		users     httpapi.UserStore
		probe     httpapi.ReadyProbe
		store     registry.Store
	)
	if cfg.Database.DSN != "" {
		pgStore, err := pg.Open(cfg.Database.DSN)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer pgStore.Close()
		store = pgStore
		directory = pgStore
		users = pgStore
		probe = httpapi.ReadyProbe{DB: pgStore.DB()}
	} else {
		// demo mode: in-process store with the built-in accounts
		log.Printf("PATRIMOINE_PG_DSN not set, running with the in-memory store")
		store = registry.NewInMemory()
		directory = identity.DemoDirectory()
	}

	svc, err := registry.NewService(store)
	if err != nil {
		log.Fatalf("registry service: %v", err)
	}

	api := httpapi.New(probe, version, directory, svc, users, i18n.NewFileStore(cfg.TextsPath), httpapi.Options{
		TokenTTL:           cfg.Auth.TokenTTL,
		RateLimitPerSecond: cfg.HTTP.RateLimitPerSecond,
		RateLimitBurst:     cfg.HTTP.RateLimitBurst,
		MaxBodyBytes:       cfg.HTTP.MaxBodyBytes,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting patrimoine-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	log.Println("Stopped")
}
