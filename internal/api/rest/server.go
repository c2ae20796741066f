package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/youngbuffalo/scoreline/internal/importer"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, handler *Handler, importSvc *importer.Service) *Server {
	importHandler := NewImportHandler(importSvc)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Matches
	api.HandleFunc("/matches", handler.CreateMatch).Methods("POST")
	api.HandleFunc("/matches", handler.ListMatches).Methods("GET")
	api.HandleFunc("/matches/latest", handler.GetLatestMatch).Methods("GET")
	api.HandleFunc("/matches/{matchID}", handler.GetMatch).Methods("GET")

	// Extraction and stats per match side
	api.HandleFunc("/matches/{matchID}/teams/{team}/screenshots", handler.ExtractScreenshots).Methods("POST")
	api.HandleFunc("/matches/{matchID}/teams/{team}/stats", handler.SaveTeamStats).Methods("POST")
	api.HandleFunc("/matches/{matchID}/teams/{team}/stats", handler.GetTeamStats).Methods("GET")
	api.HandleFunc("/matches/{matchID}/teams/{team}/stats.csv", handler.ExportTeamCSV).Methods("GET")
	api.HandleFunc("/matches/{matchID}/teams/{team}/stats/csv", handler.ImportTeamCSV).Methods("POST")

	// Aggregates
	api.HandleFunc("/leaderboard", handler.GetLeaderboard).Methods("GET")
	api.HandleFunc("/players/{playerName}/averages", handler.GetPlayerAverages).Methods("GET")
	api.HandleFunc("/admin/refresh-totals", handler.RefreshTotals).Methods("POST")

	// Bulk CSV imports
	api.HandleFunc("/imports", importHandler.HandleImportRequest).Methods("POST")
	api.HandleFunc("/imports/status", importHandler.HandleImportStatus).Methods("GET")
	api.HandleFunc("/imports/{jobID}", importHandler.HandleGetImportJob).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
