package handlers

import (
	"net/http"

	"jobmatch/internal/app"
	"jobmatch/internal/common"
	"jobmatch/internal/http/metrics"
	"jobmatch/internal/http/response"
)

type RecordHandler struct {
	console *app.Console
	metrics *metrics.Collector
}

func NewRecordHandler(console *app.Console, collector *metrics.Collector) *RecordHandler {
	return &RecordHandler{console: console, metrics: collector}
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// Delete handles DELETE /admin/{kind}/{id}.
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	id, err := segment(r, 2, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	removed, err := h.console.DeleteRecord(r.Context(), kind, id)
	if err != nil {
		response.Error(w, err)
		return
	}
	if !removed {
		response.Error(w, common.NewError(common.CodeNotFound, string(kind)+" record not found", nil))
		return
	}
	if h.metrics != nil {
		h.metrics.AddDeleted(1)
	}
	response.NoContent(w)
}

// BulkDelete handles POST /admin/{kind}/bulk-delete with an explicit id list.
func (h *RecordHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req bulkDeleteRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if len(req.IDs) == 0 {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"ids": "ids must not be empty"}))
		return
	}
	removed, err := h.console.BulkDelete(r.Context(), kind, req.IDs)
	if err != nil {
		response.Error(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.AddDeleted(removed)
	}
	response.JSON(w, http.StatusOK, deleteResponse{Kind: kind, Removed: removed})
}
