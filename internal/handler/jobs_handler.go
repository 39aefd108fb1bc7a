// internal/handler/jobs_handler.go
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/nubac/wasender-backend/internal/service"
)

// ScheduleProcessor defines what the jobs endpoint needs from the worker
type ScheduleProcessor interface {
	ProcessDue(ctx context.Context, contactLimit int) (*service.ProcessResult, error)
}

// JobsHandler exposes the worker entry point to the external scheduler.
type JobsHandler struct {
	Worker              ScheduleProcessor
	CronSecret          string
	DefaultContactLimit int
	Log                 zerolog.Logger
}

// ProcessSchedules handles POST /jobs/processSchedules. The caller
// authenticates with the x-cron-secret header and may cap per-schedule work
// with the contactLimit query parameter.
func (h *JobsHandler) ProcessSchedules(w http.ResponseWriter, r *http.Request) {
	if h.CronSecret == "" || r.Header.Get("x-cron-secret") != h.CronSecret {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := h.DefaultContactLimit
	if v := r.URL.Query().Get("contactLimit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	res, err := h.Worker.ProcessDue(r.Context(), limit)
	if err != nil {
		h.Log.Error().Err(err).Msg("processSchedules failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
