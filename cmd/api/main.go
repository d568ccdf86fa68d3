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

	"github.com/joho/godotenv"

	"github.com/novawardrobe/concierge/internal/config"
	"github.com/novawardrobe/concierge/internal/handler"
	"github.com/novawardrobe/concierge/internal/model/lead"
	"github.com/novawardrobe/concierge/internal/model/script"
	conciergeService "github.com/novawardrobe/concierge/internal/service/concierge"
	"github.com/novawardrobe/concierge/internal/service/intake"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	store := lead.NewFileStore(cfg.Lead.StorePath)

	var forwarder intake.Forwarder = intake.NopForwarder{}
	if cfg.Lead.WebhookEnabled() {
		forwarder = intake.NewWebhookForwarder(cfg.Lead.WebhookURL, cfg.Lead.WebhookTimeout)
		log.Println("lead webhook forwarding enabled")
	} else {
		log.Println("LEAD_WEBHOOK_URL not set, skipping webhook forwarding")
	}

	intakeSvc := intake.NewService(store, forwarder)
	conciergeSvc := conciergeService.NewService(script.Script(), intakeSvc, cfg.Concierge.ReplyDelay)

	if cfg.App.Production() {
		log.Println("production mode: lead read-back endpoint disabled")
	}

	router := handler.NewRouter(conciergeSvc, intakeSvc, store, cfg.App.Production())

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Nova Wardrobe concierge backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
