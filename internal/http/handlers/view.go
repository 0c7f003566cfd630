package handlers

import (
	"net/http"

	"jobmatch/internal/app"
	"jobmatch/internal/http/response"
)

type ViewHandler struct {
	console *app.Console
}

func NewViewHandler(console *app.Console) *ViewHandler {
	return &ViewHandler{console: console}
}

type viewResponse struct {
	app.View
	Total int `json:"total"`
}

// Get handles GET /admin/views/{kind}?q=&status=.
func (h *ViewHandler) Get(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	query := r.URL.Query()
	view, err := h.console.GetFilteredView(r.Context(), kind, query.Get("q"), query.Get("status"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, viewResponse{View: view, Total: view.Len()})
}

func kindFromPath(r *http.Request, idx int) (app.ViewKind, error) {
	value, err := segment(r, idx, "kind")
	if err != nil {
		return "", err
	}
	return app.ParseViewKind(value)
}
