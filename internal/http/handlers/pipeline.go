package handlers

import (
	"net/http"

	"jobmatch/internal/app"
	"jobmatch/internal/common"
	"jobmatch/internal/domain/pipeline"
	"jobmatch/internal/http/metrics"
	"jobmatch/internal/http/response"
)

type PipelineHandler struct {
	console *app.Console
	metrics *metrics.Collector
}

func NewPipelineHandler(console *app.Console, collector *metrics.Collector) *PipelineHandler {
	return &PipelineHandler{console: console, metrics: collector}
}

type pipelineRequest struct {
	ProcessStatus *string `json:"processStatus"`
	InterviewDate *string `json:"interviewDate"`
}

// Update handles PATCH /admin/users/{id}/pipeline.
func (h *PipelineHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := segment(r, 2, "userId")
	if err != nil {
		response.Error(w, err)
		return
	}
	var req pipelineRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	update := app.PipelineUpdate{InterviewDate: req.InterviewDate}
	if req.ProcessStatus != nil {
		status, ok := pipeline.ParseStatus(*req.ProcessStatus)
		if !ok {
			response.Error(w, common.NewValidationError("invalid process status", map[string]string{"processStatus": "processStatus must be INTERVIEW_SCHEDULED, INTERVIEW_COMPLETED, HIRED, or empty"}))
			return
		}
		update.Status = &status
	}
	result, err := h.console.SetPipelineState(r.Context(), userID, update)
	if err != nil {
		response.Error(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveSync(result.Outcome == app.ResolveReconstructed)
	}
	response.JSON(w, http.StatusOK, result)
}
