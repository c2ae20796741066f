package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/youngbuffalo/scoreline/internal/importer"
	"github.com/youngbuffalo/scoreline/internal/store"
)

// ImportHandler proxies API calls to the importer service.
type ImportHandler struct {
	service *importer.Service
}

// NewImportHandler wires the REST layer to the importer service.
func NewImportHandler(service *importer.Service) *ImportHandler {
	return &ImportHandler{service: service}
}

type apiImportRequest struct {
	MatchID   string   `json:"match_id"`
	Team      string   `json:"team"`
	FilePaths []string `json:"file_paths"`
}

// HandleImportRequest handles POST /api/v1/imports
func (h *ImportHandler) HandleImportRequest(w http.ResponseWriter, r *http.Request) {
	var req apiImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	team, err := store.ParseTeamSide(req.Team)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team", err)
		return
	}

	job, err := h.service.Enqueue(r.Context(), importer.Request{
		MatchID:   req.MatchID,
		Team:      team,
		FilePaths: req.FilePaths,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to enqueue import job", err)
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"job": jobPayload(job),
	})
}

// HandleImportStatus handles GET /api/v1/imports/status
func (h *ImportHandler) HandleImportStatus(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetStatus(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch status", err)
		return
	}

	respondJSON(w, http.StatusOK, buildStatusPayload(summary))
}

// HandleGetImportJob handles GET /api/v1/imports/{jobID}
func (h *ImportHandler) HandleGetImportJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := strconv.Atoi(mux.Vars(r)["jobID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid job ID", err)
		return
	}

	job, err := h.service.GetJob(r.Context(), jobID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Import job not found", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"job": jobPayload(job),
	})
}

func buildStatusPayload(summary *importer.StatusSummary) map[string]interface{} {
	response := map[string]interface{}{
		"status":  "idle",
		"message": "No active jobs",
		"history": []map[string]interface{}{},
	}

	if summary.ActiveJob != nil {
		response["status"] = summary.ActiveJob.Status
		if summary.ActiveJob.StatusMessage.Valid {
			response["message"] = summary.ActiveJob.StatusMessage.String
		}
		response["active_job"] = jobPayload(summary.ActiveJob)
	}

	history := make([]map[string]interface{}, 0, len(summary.History))
	for _, job := range summary.History {
		history = append(history, jobPayload(job))
	}

	response["history"] = history
	return response
}

func jobPayload(job *importer.Job) map[string]interface{} {
	if job == nil {
		return nil
	}

	payload := map[string]interface{}{
		"job_id":           job.JobID,
		"match_id":         job.MatchID,
		"team":             job.Team,
		"file_paths":       []string(job.FilePaths),
		"status":           job.Status,
		"progress_current": job.ProgressCurrent,
		"progress_total":   job.ProgressTotal,
		"created_at":       job.CreatedAt,
		"updated_at":       job.UpdatedAt,
	}

	if job.StatusMessage.Valid {
		payload["message"] = job.StatusMessage.String
	}
	if job.LastError.Valid {
		payload["last_error"] = job.LastError.String
	}
	if job.StartedAt.Valid {
		payload["started_at"] = job.StartedAt.Time
	}
	if job.CompletedAt.Valid {
		payload["completed_at"] = job.CompletedAt.Time
	}

	return payload
}
