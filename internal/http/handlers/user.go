package handlers

import (
	"net/http"

	"jobmatch/internal/app"
	"jobmatch/internal/common"
	"jobmatch/internal/http/response"
)

type UserHandler struct {
	console *app.Console
}

func NewUserHandler(console *app.Console) *UserHandler {
	return &UserHandler{console: console}
}

type profileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

// Resume handles GET /admin/users/{id}/resume.
func (h *UserHandler) Resume(w http.ResponseWriter, r *http.Request) {
	userID, err := segment(r, 2, "userId")
	if err != nil {
		response.Error(w, err)
		return
	}
	resume, err := h.console.Resume(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, resume)
}

// UpdateProfile handles PATCH /admin/users/{id}/profile.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := segment(r, 2, "userId")
	if err != nil {
		response.Error(w, err)
		return
	}
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Name == nil && req.Phone == nil && req.Email == nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"body": "name, phone, or email is required"}))
		return
	}
	result, err := h.console.UpdateProfile(r.Context(), userID, app.ProfileChanges{Name: req.Name, Phone: req.Phone, Email: req.Email})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

// Delete handles DELETE /admin/users/{id}. Applications and proposals that
// reference the user are kept.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := segment(r, 2, "userId")
	if err != nil {
		response.Error(w, err)
		return
	}
	removed, err := h.console.DeleteUser(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	if !removed {
		response.Error(w, common.NewError(common.CodeNotFound, "user not found", nil))
		return
	}
	response.NoContent(w)
}
