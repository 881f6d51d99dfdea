package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"
	"time"

	"employee-portal/db"
	"employee-portal/internal/auth"
	"employee-portal/internal/config"
	"employee-portal/internal/employee"
	"employee-portal/internal/geo"
	"employee-portal/internal/navstate"
	"employee-portal/internal/web"
	"employee-portal/middleware"
)

const (
	shutdownTimeout   = 10 * time.Second
	navigationMaxIdle = 12 * time.Hour
	pruneInterval     = 15 * time.Minute

	contentSecurityPolicy = "default-src 'self'; " +
		"script-src 'self' https://unpkg.com; " +
		"style-src 'self' 'unsafe-inline' https://unpkg.com; " +
		"img-src 'self' data: blob: https://*.tile.openstreetmap.org https://unpkg.com; " +
		"media-src 'self' blob: mediastream:; " +
		"connect-src 'self'; " +
		"frame-ancestors 'none'; form-action 'self'; base-uri 'self'"
	permissionsPolicy = "camera=(self), microphone=(), geolocation=()"
)

// Global loggers for different output streams
var (
	infoLogger  = log.New(os.Stdout, "", log.LstdFlags)
	errorLogger = log.New(os.Stderr, "", log.LstdFlags)
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			errorLogger.Printf("FATAL PANIC in main(): %v", r)
			errorLogger.Printf("Stack trace: %s", debug.Stack())
			os.Exit(1)
		}
	}()

	infoLogger.Printf("Starting employee portal - Process ID: %d", os.Getpid())
	infoLogger.Printf("Runtime: %s/%s, Go version: %s", runtime.GOOS, runtime.GOARCH, runtime.Version())

	cfg, err := config.LoadConfig()
	if err != nil {
		errorLogger.Fatalf("Failed to load configuration: %v", err)
	}

	sqliteDB, err := db.ConnectToSQLite(cfg.SQLitePath)
	if err != nil {
		errorLogger.Fatalf("Failed to connect to SQLite: %v", err)
	}
	defer sqliteDB.Close()

	if err := db.InitializeSchema(sqliteDB); err != nil {
		errorLogger.Fatalf("Failed to initialize database schema: %v", err)
	}
	infoLogger.Printf("City gazetteer ready at %s", cfg.SQLitePath)

	client := employee.NewClient(cfg.DataAPIBaseURL, cfg.DataAPITimeout)
	employeeService := employee.NewEmployeeService(client)
	geoService := geo.NewGeoService(db.NewSQLiteCityRepository(sqliteDB))
	guard := auth.NewGuard(cfg.Username, cfg.Password, cfg.SessionSecret, cfg.CookieSecure)
	navigation := navstate.NewStore()

	webHandler, err := web.NewWebHandler(employeeService, geoService, guard, navigation)
	if err != nil {
		errorLogger.Fatalf("Failed to initialize web handlers: %v", err)
	}
	router := webHandler.SetupRoutes()
	handler := middleware.Chain(router,
		middleware.LoggingMiddleware,
		middleware.SecurityHeaders(middleware.SecurityHeadersConfig{
			ContentSecurityPolicy: contentSecurityPolicy,
			PermissionsPolicy:     permissionsPolicy,
		}),
	)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go runNavigationPruner(navigation, done)

	go func() {
		infoLogger.Printf("Server is starting on port %s...", cfg.Port)
		infoLogger.Printf("Employee data source: %s", cfg.DataAPIBaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errorLogger.Fatalf("Server ListenAndServe error: %v", err)
		}
		infoLogger.Println("Server ListenAndServe has exited normally")
	}()

	waitForShutdown(server, done)
}

func runNavigationPruner(store *navstate.Store, done <-chan struct{}) {
	defer func() {
		if r := recover(); r != nil {
			errorLogger.Printf("Navigation pruner panic recovered: %v", r)
			errorLogger.Printf("Navigation pruner stack trace: %s", debug.Stack())
		}
	}()

	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if n := store.Prune(navigationMaxIdle); n > 0 {
				infoLogger.Printf("Pruned navigation state for %d idle sessions, %d still active", n, store.Len())
			}
		}
	}
}

func waitForShutdown(server *http.Server, done chan struct{}) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	sig := <-stop
	infoLogger.Printf("Received shutdown signal: %v", sig)
	close(done)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	infoLogger.Println("Shutting down the server...")
	if err := server.Shutdown(ctx); err != nil {
		errorLogger.Printf("Server Shutdown error: %v", err)
		return
	}
	infoLogger.Println("[SUCCESS] Server stopped")
}
