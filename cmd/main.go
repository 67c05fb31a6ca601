package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/abdullah-naeem-gh/Fashionblend/internal/api"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/auth"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/config"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/db"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/ws"
)

func main() {
	log.Printf("Starting fashionblend server...")

	cfg, cfgErr := config.LoadConfig()
	if cfgErr != nil {
		log.Fatalf("Could not load config: %v", cfgErr)
	}

	err := run(cfg)
	if err != nil {
		log.Fatalf("Could not start server: %v", err)
	}
}

// Runs the HTTP server
// Returns any errors
func run(cfg *config.Config) error {
	// Session bootstrap: subscribes to auth-state changes and resolves
	// the (session, role, brand) view for the running instance
	manager := auth.NewManager(cfg, auth.NewClient(cfg), db.NewClient(cfg))
	manager.Start()
	defer manager.Close()

	hub := ws.NewHub()

	// Main HTTP request router
	mux := http.NewServeMux()
	api.RegisterRoutes(mux, cfg, manager, hub)

	addr := fmt.Sprintf(":%s", cfg.Port)
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Printf("Server listening on http://localhost%s", addr)
	// Write timeout must outlast the 30 second storage upload bound
	s := &http.Server{
		Handler:      mux,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 60,
	}

	// Create error channel
	errc := make(chan error, 1)

	// Async goroutine to run the HTTP server
	go func() {
		errc <- s.Serve(l)
	}()

	// Create OS signal channel
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)

	// Wait and listen on the err and sig channels; logs any received errors/signals
	select {
	case err := <-errc:
		log.Printf("Server error. Failed to serve: %v", err)
	case sig := <-sigs:
		log.Printf("Received signal %v. Shutting down server...", sig)
	}

	// Provide context for cleanup time, forcing close after 10 seconds
	// Stop accepting new connections and wait for in-progress requests to finish
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	return s.Shutdown(ctx)
}
