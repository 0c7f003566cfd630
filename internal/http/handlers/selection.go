package handlers

import (
	"net/http"
	"strconv"

	"jobmatch/internal/app"
	"jobmatch/internal/http/metrics"
	"jobmatch/internal/http/response"
)

type SelectionHandler struct {
	console *app.Console
	metrics *metrics.Collector
}

func NewSelectionHandler(console *app.Console, collector *metrics.Collector) *SelectionHandler {
	return &SelectionHandler{console: console, metrics: collector}
}

type selectionResponse struct {
	Kind     app.ViewKind `json:"kind"`
	Selected []string     `json:"selected"`
}

type toggleRequest struct {
	ID string `json:"id"`
}

type toggleResponse struct {
	ID       string `json:"id"`
	Selected bool   `json:"selected"`
}

type deleteResponse struct {
	Kind    app.ViewKind `json:"kind"`
	Removed int          `json:"removed"`
}

// Get handles GET /admin/selections/{kind}.
func (h *SelectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	ids, err := h.console.Selection(kind)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, selectionResponse{Kind: kind, Selected: ids})
}

// SelectAll handles POST /admin/selections/{kind}/select-all?q=&status=.
func (h *SelectionHandler) SelectAll(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	query := r.URL.Query()
	ids, err := h.console.SelectAll(r.Context(), kind, query.Get("q"), query.Get("status"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, selectionResponse{Kind: kind, Selected: ids})
}

// Toggle handles POST /admin/selections/{kind}/toggle.
func (h *SelectionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req toggleRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	selected, err := h.console.ToggleSelection(kind, req.ID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toggleResponse{ID: req.ID, Selected: selected})
}

// Clear handles DELETE /admin/selections/{kind}.
func (h *SelectionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.console.ClearSelection(kind); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}

// Delete handles POST /admin/selections/{kind}/delete?confirm=true. Without
// confirm=true the delete is declined and nothing changes.
func (h *SelectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	removed, err := h.console.DeleteSelected(r.Context(), kind, func(int) bool { return confirmed })
	if err != nil {
		response.Error(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.AddDeleted(removed)
	}
	response.JSON(w, http.StatusOK, deleteResponse{Kind: kind, Removed: removed})
}
