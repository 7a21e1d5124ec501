package handlers

import (
	"encoding/json"
	"net/http"

	"institute-backend/internal/middleware"
	"institute-backend/internal/models"
	"institute-backend/internal/services"
	"institute-backend/pkg/utils"
)

type ReviewHandler struct {
	Service *services.ReviewService
}

func NewReviewHandler(s *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: s}
}

// Create posts a review from the logged in student
// POST /api/portal/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.GetStudentIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req models.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review, err := h.Service.Create(r.Context(), studentID, &req)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusCreated, review)
}

// List returns all reviews, public
// GET /api/reviews
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Service.List(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, reviews)
}
