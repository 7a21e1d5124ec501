package handlers

import (
	"encoding/json"
	"net/http"

	"institute-backend/internal/models"
	"institute-backend/internal/services"
	"institute-backend/pkg/utils"
)

type StaffHandler struct {
	Service *services.StaffService
}

func NewStaffHandler(s *services.StaffService) *StaffHandler {
	return &StaffHandler{Service: s}
}

// Verify is the public staff verification endpoint
// POST /api/verify/staff
func (h *StaffHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	staff, err := h.Service.Verify(r.Context(), &req)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, staff)
}

// List returns all staff members (admin)
// GET /api/admin/staff
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	staff, err := h.Service.List(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, staff)
}
