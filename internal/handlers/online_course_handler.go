package handlers

import (
	"encoding/json"
	"net/http"

	"institute-backend/internal/models"
	"institute-backend/internal/services"
	"institute-backend/pkg/utils"
)

type OnlineCourseHandler struct {
	Service *services.OnlineCourseService
}

func NewOnlineCourseHandler(s *services.OnlineCourseService) *OnlineCourseHandler {
	return &OnlineCourseHandler{Service: s}
}

// Register captures an online course signup from the public site
// POST /api/online-course/register
func (h *OnlineCourseHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.OnlineCourseRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reg, err := h.Service.Register(r.Context(), &req)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusCreated, reg)
}

// List returns all captured signups for the admin dashboard
// GET /api/admin/online-course
func (h *OnlineCourseHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, list)
}
