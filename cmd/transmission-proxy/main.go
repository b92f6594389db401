package main

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/omnicloud/transmission-proxy/internal/auth"
	"github.com/omnicloud/transmission-proxy/internal/config"
	"github.com/omnicloud/transmission-proxy/internal/mediator"
	"github.com/omnicloud/transmission-proxy/internal/server"
)

func main() {
	args, err := config.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("parsing arguments: %v", err)
	}

	log.Printf("Starting transmission-proxy...")
	log.Printf("  Bind: %s", args.Bind)
	log.Printf("  Upstream: %s", args.Upstream)
	log.Printf("  Config: %s", args.ConfigPath)

	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	upstream, err := url.Parse(args.Upstream)
	if err != nil {
		log.Fatalf("parsing upstream url: %v", err)
	}

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	med := mediator.New(upstream, httpClient, &cfg.ACL, &cfg.Providers.Basic, args.Base+"/login")
	signer := auth.NewTokenSigner(args.SecretKey)

	srv := server.New(args.Bind, args.Base, args.ServeRoot, med, &cfg.Providers, signer)

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("server error: %v", err)
		}
	}()

	log.Println("transmission-proxy is running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("shutdown signal received, stopping transmission-proxy...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("error shutting down server: %v", err)
	}

	log.Println("transmission-proxy stopped")
}
