package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/youngbuffalo/scoreline/internal/extract"
	"github.com/youngbuffalo/scoreline/internal/ingest/csvfile"
	"github.com/youngbuffalo/scoreline/internal/ingest/screenshot"
	"github.com/youngbuffalo/scoreline/internal/reconcile"
	"github.com/youngbuffalo/scoreline/internal/service"
	"github.com/youngbuffalo/scoreline/internal/store"
)

// maxUploadBytes bounds a whole screenshot batch upload.
const maxUploadBytes = 64 << 20

// ExtractionBroadcaster pushes extraction results to live listeners.
type ExtractionBroadcaster interface {
	BroadcastExtraction(data []byte)
}

// ExtractionPublisher announces finished extractions on the event stream.
type ExtractionPublisher interface {
	PublishExtractionCompleted(ctx context.Context, event interface{}) error
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db           *store.Database
	matchService *service.MatchService
	statsService *service.StatsService
	ingester     *screenshot.Ingester
	reconciler   *reconcile.Reconciler
	broadcaster  ExtractionBroadcaster
	publisher    ExtractionPublisher
}

// NewHandler creates a new handler. Broadcaster and publisher are optional.
func NewHandler(db *store.Database, stats *service.StatsService, ingester *screenshot.Ingester, reconciler *reconcile.Reconciler, broadcaster ExtractionBroadcaster, publisher ExtractionPublisher) *Handler {
	return &Handler{
		db:           db,
		matchService: service.NewMatchService(db),
		statsService: stats,
		ingester:     ingester,
		reconciler:   reconciler,
		broadcaster:  broadcaster,
		publisher:    publisher,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(); err != nil {
		respondError(w, http.StatusServiceUnavailable, "Database unreachable", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "scoreline",
	})
}

// CreateMatch registers a new match session
func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MatchDate string `json:"match_date"`
		MatchTime string `json:"match_time"`
		Notes     string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	match, err := h.matchService.CreateMatch(r.Context(), req.MatchDate, req.MatchTime, req.Notes)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to create match", err)
		return
	}

	respondJSON(w, http.StatusCreated, match)
}

// ListMatches returns recent matches, newest first
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 200 {
			limit = l
		}
	}

	matches, err := h.matchService.ListMatches(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list matches", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"matches": matches,
		"count":   len(matches),
	})
}

// GetLatestMatch returns the most recently saved match ID
func (h *Handler) GetLatestMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := h.matchService.LatestMatchID(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch latest match", err)
		return
	}
	if matchID == "" {
		respondError(w, http.StatusNotFound, "No matches saved yet", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"match_id": matchID})
}

// GetMatch returns a match with both sides' stat rows
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchID"]

	summary, err := h.matchService.GetMatch(r.Context(), matchID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Match not found", err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// ExtractionEvent is broadcast and published after a screenshot batch
type ExtractionEvent struct {
	MatchID     string                   `json:"match_id"`
	Team        store.TeamSide           `json:"team"`
	Records     []extract.PlayerRecord   `json:"records"`
	Images      []screenshot.ImageReport `json:"images"`
	CompletedAt time.Time                `json:"completed_at"`
}

// ExtractScreenshots runs OCR extraction over uploaded scoreboard images.
// The reconstructed rows are returned for review, not persisted; the client
// saves them via SaveTeamStats once the operator confirms them.
func (h *Handler) ExtractScreenshots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["matchID"]

	team, err := store.ParseTeamSide(vars["team"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team", err)
		return
	}

	images, err := readUploadedImages(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid upload", err)
		return
	}

	extraction, err := h.ingester.Ingest(r.Context(), images)
	if err != nil && extraction == nil {
		respondError(w, http.StatusBadRequest, "Extraction failed", err)
		return
	}

	event := ExtractionEvent{
		MatchID:     matchID,
		Team:        team,
		Records:     extraction.Records,
		Images:      extraction.Images,
		CompletedAt: time.Now().UTC(),
	}
	h.announceExtraction(r.Context(), event)

	if err != nil {
		// Every image failed; the per-image reports say why.
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  err.Error(),
			"images": extraction.Images,
		})
		return
	}

	respondJSON(w, http.StatusOK, extraction)
}

func (h *Handler) announceExtraction(ctx context.Context, event ExtractionEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if h.broadcaster != nil {
		h.broadcaster.BroadcastExtraction(data)
	}
	if h.publisher != nil {
		if err := h.publisher.PublishExtractionCompleted(ctx, event); err != nil {
			log.Printf("publishing extraction event: %v", err)
		}
	}
}

// SaveTeamStats persists reviewed rows for one side of a match. When the
// request carries both the operator's rows and the original OCR rows, the
// two are reconciled before saving.
func (h *Handler) SaveTeamStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["matchID"]

	team, err := store.ParseTeamSide(vars["team"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team", err)
		return
	}

	var req struct {
		Source     string                 `json:"source"`
		Records    []extract.PlayerRecord `json:"records"`
		OCRRecords []extract.PlayerRecord `json:"ocr_records,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	source := store.StatSource(req.Source)
	switch source {
	case store.SourceOCR, store.SourceCSV, store.SourceManual:
	case "":
		source = store.SourceOCR
	default:
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Unknown source %q", req.Source), nil)
		return
	}

	records := req.Records
	if len(req.OCRRecords) > 0 && h.reconciler != nil {
		records = h.reconciler.Reconcile(req.OCRRecords, req.Records)
	}

	count, err := h.statsService.SaveTeamStats(r.Context(), matchID, team, source, records)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to save stats", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"match_id":   matchID,
		"team":       team,
		"rows_saved": count,
	})
}

// GetTeamStats returns one side's rows for a match in tabular form
func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["matchID"]

	team, err := store.ParseTeamSide(vars["team"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team", err)
		return
	}

	records, err := h.statsService.GetTeamRecords(r.Context(), matchID, team)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch stats", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"match_id": matchID,
		"team":     team,
		"records":  records,
	})
}

// ExportTeamCSV streams one side's rows for a match as a CSV download
func (h *Handler) ExportTeamCSV(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["matchID"]

	team, err := store.ParseTeamSide(vars["team"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s_%s.csv"`, matchID, team))

	if err := h.statsService.ExportTeamCSV(r.Context(), matchID, team, w); err != nil {
		log.Printf("exporting %s/%s: %v", matchID, team, err)
	}
}

// ImportTeamCSV saves one uploaded CSV as a match side's rows. The body is
// the raw CSV; bulk multi-file imports go through the async import jobs.
func (h *Handler) ImportTeamCSV(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["matchID"]

	team, err := store.ParseTeamSide(vars["team"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team", err)
		return
	}

	records, err := csvfile.Read(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid CSV", err)
		return
	}

	count, err := h.statsService.SaveTeamStats(r.Context(), matchID, team, store.SourceCSV, records)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to save stats", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"match_id":   matchID,
		"team":       team,
		"rows_saved": count,
	})
}

// GetLeaderboard returns career totals ranked by a stat field
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	statField := r.URL.Query().Get("stat")
	if statField == "" {
		statField = "damage"
	}

	team, err := store.ParseTeamSide(r.URL.Query().Get("team"))
	if err != nil {
		team = store.TeamYoungBuffalo
	}

	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	totals, err := h.statsService.GetLeaderboard(r.Context(), statField, team, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch leaderboard", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"stat":    statField,
		"team":    team,
		"players": totals,
	})
}

// GetPlayerAverages returns a player's per-match stat averages
func (h *Handler) GetPlayerAverages(w http.ResponseWriter, r *http.Request) {
	playerName := mux.Vars(r)["playerName"]

	averages, err := h.statsService.GetPlayerAverages(r.Context(), playerName)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to calculate averages", err)
		return
	}
	if len(averages) == 0 {
		respondError(w, http.StatusNotFound, "Player not found", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"player_name": playerName,
		"averages":    averages,
	})
}

// RefreshTotals rebuilds the aggregate view on demand
func (h *Handler) RefreshTotals(w http.ResponseWriter, r *http.Request) {
	if err := h.statsService.RefreshTotals(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to refresh totals", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Totals refreshed"})
}

func readUploadedImages(r *http.Request) ([][]byte, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, fmt.Errorf("parsing multipart form: %w", err)
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		return nil, fmt.Errorf("no files in field %q", "images")
	}

	images := make([][]byte, 0, len(files))
	for _, header := range files {
		f, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", header.Filename, err)
		}

		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", header.Filename, err)
		}
		images = append(images, data)
	}

	return images, nil
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
