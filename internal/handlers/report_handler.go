package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"institute-backend/internal/services"
	"institute-backend/pkg/utils"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// Defaulters returns students with overdue installments
// GET /api/reports/defaulters?as_of=YYYY-MM-DD&format=json|csv|pdf&detailed=true
func (h *ReportHandler) Defaulters(w http.ResponseWriter, r *http.Request) {
	asOf := r.URL.Query().Get("as_of")

	switch r.URL.Query().Get("format") {
	case "csv":
		data, err := h.Service.DefaulterReportCSV(r.Context(), asOf)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="defaulters.csv"`)
		w.Write(data)
	case "pdf":
		render := h.Service.DefaulterReportPDF
		if r.URL.Query().Get("detailed") == "true" {
			render = h.Service.DefaulterLedgerBookPDF
		}
		data, err := render(r.Context(), asOf)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="defaulters.pdf"`)
		w.Write(data)
	default:
		defaulters, err := h.Service.DefaulterReport(r.Context(), asOf)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.WriteJSON(w, http.StatusOK, defaulters)
	}
}

// FeeReceipt renders the fee receipt PDF for one student
// GET /api/reports/receipt/{id}
func (h *ReportHandler) FeeReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid student id")
		return
	}

	data, err := h.Service.FeeReceiptPDF(r.Context(), id)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Student not found")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="fee_receipt.pdf"`)
	w.Write(data)
}
