package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"institute-backend/internal/models"
	"institute-backend/internal/services"
	"institute-backend/pkg/utils"
)

type ExamHandler struct {
	Service *services.ExamService
}

func NewExamHandler(s *services.ExamService) *ExamHandler {
	return &ExamHandler{Service: s}
}

// SubmitMarks records marks for one subject
// POST /api/exams/students/{id}/marks
func (h *ExamHandler) SubmitMarks(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid student id")
		return
	}

	var req models.SubmitMarksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	summary, err := h.Service.SubmitMarks(r.Context(), id, &req)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, summary)
}

// Summary returns the per-subject results and grade for one student
// GET /api/exams/students/{id}
func (h *ExamHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid student id")
		return
	}

	summary, err := h.Service.Summary(r.Context(), id)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, summary)
}
