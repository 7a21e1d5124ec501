package handlers

import (
	"net/http"
	"strconv"

	"institute-backend/internal/services"
	"institute-backend/pkg/utils"
)

type AdminHandler struct {
	Service *services.UserService
}

func NewAdminHandler(s *services.UserService) *AdminHandler {
	return &AdminHandler{Service: s}
}

// Dashboard returns the admin overview counters
// GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.DashboardStats(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, stats)
}

// RecentLogins returns the latest login log entries
// GET /api/admin/logins?limit=50
func (h *AdminHandler) RecentLogins(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.Service.RecentLogins(r.Context(), limit)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, logs)
}
