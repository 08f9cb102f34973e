package cli

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/themizzi/shopcheck/internal/config"
	"github.com/themizzi/shopcheck/internal/handlers"
)

// ServerDependencies holds all dependencies needed for the storefront server
type ServerDependencies struct {
	ServerConfig            config.ServerConfig
	Sessions                *handlers.SessionStore
	LoginHandler            http.Handler
	LogoutHandler           http.Handler
	InventoryHandler        http.Handler
	CartHandler             http.Handler
	CheckoutInfoHandler     http.Handler
	CheckoutOverviewHandler http.Handler
	CompleteHandler         http.Handler
}

// BuildStorefront creates the storefront handlers from the templates in cfg
func BuildStorefront(cfg config.ServerConfig) (ServerDependencies, error) {
	deps := ServerDependencies{
		ServerConfig: cfg,
		Sessions:     handlers.NewSessionStore(),
	}
	dir := cfg.TemplatesDir

	loginHandler, err := handlers.NewLoginHandler(dir, deps.Sessions)
	if err != nil {
		return deps, fmt.Errorf("failed to create login handler: %w", err)
	}
	deps.LoginHandler = loginHandler
	deps.LogoutHandler = handlers.NewLogoutHandler(deps.Sessions)

	inventoryHandler, err := handlers.NewInventoryHandler(dir, deps.Sessions, cfg.GlitchDelay)
	if err != nil {
		return deps, fmt.Errorf("failed to create inventory handler: %w", err)
	}
	deps.InventoryHandler = inventoryHandler.Handler()

	cartHandler, err := handlers.NewCartHandler(dir, deps.Sessions)
	if err != nil {
		return deps, fmt.Errorf("failed to create cart handler: %w", err)
	}
	deps.CartHandler = cartHandler.Handler()

	infoHandler, err := handlers.NewCheckoutInfoHandler(dir, deps.Sessions)
	if err != nil {
		return deps, fmt.Errorf("failed to create checkout information handler: %w", err)
	}
	deps.CheckoutInfoHandler = infoHandler.Handler()

	overviewHandler, err := handlers.NewCheckoutOverviewHandler(dir, deps.Sessions)
	if err != nil {
		return deps, fmt.Errorf("failed to create checkout overview handler: %w", err)
	}
	deps.CheckoutOverviewHandler = overviewHandler.Handler()

	completeHandler, err := handlers.NewCompleteHandler(dir, deps.Sessions)
	if err != nil {
		return deps, fmt.Errorf("failed to create complete handler: %w", err)
	}
	deps.CompleteHandler = completeHandler.Handler()

	return deps, nil
}

// NewMux routes the storefront pages and static files
func NewMux(deps ServerDependencies) *http.ServeMux {
	staticDir := deps.ServerConfig.StaticDir
	if staticDir == "" {
		staticDir = "static"
	}

	mux := http.NewServeMux()
	mux.Handle("/", deps.LoginHandler)
	mux.Handle("/logout", deps.LogoutHandler)
	mux.Handle("/inventory.html", deps.InventoryHandler)
	mux.Handle("/cart.html", deps.CartHandler)
	mux.Handle("/checkout-step-one.html", deps.CheckoutInfoHandler)
	mux.Handle("/checkout-step-two.html", deps.CheckoutOverviewHandler)
	mux.Handle("/checkout-complete.html", deps.CompleteHandler)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	return mux
}

// RunServe starts the storefront server and blocks until it is shut down
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil)
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler:           NewMux(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Storefront listening on %s", listener.Addr().String())
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server.
// A nil channel is replaced by one registered for SIGINT and SIGTERM.
func WaitForShutdown(server *http.Server, shutdown chan os.Signal) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration) error {
	// Channel to listen for interrupt or terminate signals
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	}

	// Wait for shutdown signal
	sig := <-shutdown
	log.Printf("Received signal: %v, shutting down server...", sig)

	// Give outstanding requests time to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		// Force close the server after timeout
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	log.Println("Server stopped")
	return nil
}
