package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"institute-backend/internal/feeledger"
	"institute-backend/internal/middleware"
	"institute-backend/internal/models"
	"institute-backend/internal/services"
	"institute-backend/pkg/utils"
)

type FeeHandler struct {
	Service *services.FeeService
}

func NewFeeHandler(s *services.FeeService) *FeeHandler {
	return &FeeHandler{Service: s}
}

// GetFees returns the full ledger view for one student
// GET /api/fees/students/{id}
func (h *FeeHandler) GetFees(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid student id")
		return
	}

	resp, err := h.Service.GetFeeDetails(r.Context(), id)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Student not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetFeesByIdentifier resolves a student by roll number or phone and returns
// the ledger view
// GET /api/fees/student?roll=|phone=
func (h *FeeHandler) GetFeesByIdentifier(w http.ResponseWriter, r *http.Request) {
	identifier := r.URL.Query().Get("roll")
	if identifier == "" {
		identifier = r.URL.Query().Get("phone")
	}
	if identifier == "" {
		utils.WriteError(w, http.StatusBadRequest, "roll or phone query parameter is required")
		return
	}

	resp, err := h.Service.GetFeeDetailsByIdentifier(r.Context(), identifier)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Student not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// UpdateFees applies one ledger mutation
// PUT /api/fees/students/{id}
func (h *FeeHandler) UpdateFees(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid student id")
		return
	}

	var req models.UpdateFeesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())

	resp, err := h.Service.UpdateFees(r.Context(), id, actorID, &req)
	if err != nil {
		utils.WriteError(w, feeErrorStatus(err), err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// feeErrorStatus maps ledger error types to HTTP status codes
func feeErrorStatus(err error) int {
	switch err.(type) {
	case *feeledger.ValidationError:
		return http.StatusBadRequest
	case *feeledger.NotFoundError:
		return http.StatusNotFound
	case *feeledger.ConsistencyViolation:
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

// ListAudit returns the mutation history for one student
// GET /api/fees/students/{id}/audit
func (h *FeeHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid student id")
		return
	}

	entries, err := h.Service.ListAudit(r.Context(), id)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, entries)
}

// ListSummaries returns the fee overview for all students
// GET /api/fees?incomplete=true
func (h *FeeHandler) ListSummaries(w http.ResponseWriter, r *http.Request) {
	incompleteOnly := r.URL.Query().Get("incomplete") == "true"

	rows, err := h.Service.ListSummaries(r.Context(), incompleteOnly)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, rows)
}
