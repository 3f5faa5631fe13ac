package server

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"journal-service/config"
	"journal-service/database"
	"journal-service/handlers"
	"journal-service/push"
	"journal-service/store"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// NewRouter wires every handler to its route. Split out from StartServer so
// tests can mount the full routing table on an httptest server.
func NewRouter(st *store.Store, cfg config.Config) *mux.Router {
	authHandler := handlers.NewAuthHandler(st)
	entryHandler := handlers.NewEntryHandler(st)
	matchHandler := handlers.NewMatchHandler(st)
	pushHandler := handlers.NewPushHandler(st, push.NewSender(cfg), cfg.VAPIDPublicKey)

	r := mux.NewRouter()

	r.HandleFunc("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok":    true,
			"route": "/api/ping",
			"time":  time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		})
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/auth", authHandler.Authenticate).Methods(http.MethodPost)

	r.HandleFunc("/api/entries", entryHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/api/entries", entryHandler.Upsert).Methods(http.MethodPut)
	r.HandleFunc("/api/entries", entryHandler.Delete).Methods(http.MethodDelete)

	r.HandleFunc("/api/matches", matchHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/api/matches", matchHandler.SendRequest).Methods(http.MethodPost)
	r.HandleFunc("/api/matches", matchHandler.Respond).Methods(http.MethodPut)
	r.HandleFunc("/api/matches", matchHandler.Remove).Methods(http.MethodDelete)

	r.HandleFunc("/api/push/subscribe", pushHandler.Subscribe).Methods(http.MethodPost)
	r.HandleFunc("/api/push/public-key", pushHandler.PublicKey).Methods(http.MethodGet)
	r.HandleFunc("/api/push/notify-on-entry", pushHandler.NotifyOnEntry).Methods(http.MethodPost)

	r.NotFoundHandler = jsonError(http.StatusNotFound, "Not found")
	r.MethodNotAllowedHandler = jsonError(http.StatusMethodNotAllowed, "Method not allowed")

	return r
}

// CORSHandler wraps the router with the configured origin allow-list.
// Preflight OPTIONS requests are answered with 204 and no body.
func CORSHandler(router http.Handler, cfg config.Config) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}

func jsonError(statusCode int, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
	})
}

// StartServer initializes logging, configuration, the database and the HTTP
// server, then serves until the process exits.
func StartServer() {
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})

	logger.Info("Starting Journal Service...")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration", zap.Error(err))
		os.Exit(1)
	}

	dbConn := database.InitializeDatabase(cfg)
	defer dbConn.Close()

	st := store.New(dbConn)
	handler := CORSHandler(NewRouter(st, cfg), cfg)

	logger.Info("Journal Service started", zap.String("port", cfg.Port))

	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Error("Server failed to start", zap.Error(err))
		os.Exit(1)
	}
}
