package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/uneeddev/agencydesk/internal/auth"
	"github.com/uneeddev/agencydesk/internal/chat"
	"github.com/uneeddev/agencydesk/internal/cloud"
	"github.com/uneeddev/agencydesk/internal/middleware"
	"github.com/uneeddev/agencydesk/internal/service"
	"github.com/uneeddev/agencydesk/internal/storage/sqlite"
	transport "github.com/uneeddev/agencydesk/internal/transport/http"
	"github.com/uneeddev/agencydesk/pkg/logging"
)

const tokenDuration = 24 * time.Hour

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/agencydesk.db")
	addr := getEnv("ADDR", ":8080")
	adminEmail := getEnv("ADMIN_EMAIL", "admin@uneed.com")
	adminPassword := getEnv("ADMIN_PASSWORD", "admin123")
	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	cloudClient := cloud.New(getEnv("CLOUD_BASE_URL", ""))

	svc, err := service.New(context.Background(), store, cloudClient)
	if err != nil {
		slog.Error("Failed to initialize admin service", "error", err)
		os.Exit(1)
	}
	defer svc.Close()

	authn, err := auth.NewStaticAuthenticator(adminEmail, adminPassword)
	if err != nil {
		slog.Error("Failed to initialize authenticator", "error", err)
		os.Exit(1)
	}
	jwtManager := auth.NewJWTManager(jwtSecret, tokenDuration)

	// Chat is optional; without an API key the endpoint reports unavailable.
	var assistant *chat.Assistant
	if apiKey := os.Getenv("GENAI_API_KEY"); apiKey != "" {
		assistant, err = chat.New(context.Background(), apiKey, os.Getenv("CHAT_MODEL"))
		if err != nil {
			slog.Error("Failed to initialize chat assistant", "error", err)
			os.Exit(1)
		}
		slog.Info("Chat assistant enabled")
	}

	handler := transport.New(svc, store, authn, jwtManager, assistant)

	mux := http.NewServeMux()
	mux.Handle("/api/", handler.Routes())
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	wrapped := middleware.Logging(middleware.CORS(mux))

	// h2c allows HTTP/2 without TLS behind a local proxy.
	h2cHandler := h2c.NewHandler(wrapped, &http2.Server{})

	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
