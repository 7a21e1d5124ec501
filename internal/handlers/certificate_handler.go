package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"institute-backend/internal/models"
	"institute-backend/internal/services"
	"institute-backend/pkg/utils"
)

type CertificateHandler struct {
	Service        *services.CertificateService
	StudentService *services.StudentService
}

func NewCertificateHandler(s *services.CertificateService, studentService *services.StudentService) *CertificateHandler {
	return &CertificateHandler{Service: s, StudentService: studentService}
}

// Approve flags a student's certificate as ready for download
// POST /api/certificates/students/{id}/approve
func (h *CertificateHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid student id")
		return
	}

	var req struct {
		Approved bool `json:"approved"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.StudentService.ApproveCertificate(r.Context(), id, req.Approved); err != nil {
		utils.WriteError(w, http.StatusNotFound, "Student not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"approved": req.Approved})
}

// DownloadCertificate renders the completion certificate PDF
// GET /api/certificates/students/{id}
func (h *CertificateHandler) DownloadCertificate(w http.ResponseWriter, r *http.Request) {
	h.servePDF(w, r, "certificate", h.Service.GenerateCertificate)
}

// DownloadMarksStatement renders the statement of marks PDF
// GET /api/certificates/students/{id}/marks
func (h *CertificateHandler) DownloadMarksStatement(w http.ResponseWriter, r *http.Request) {
	h.servePDF(w, r, "marks", h.Service.GenerateMarksStatement)
}

func (h *CertificateHandler) servePDF(w http.ResponseWriter, r *http.Request, kind string,
	generate func(ctx context.Context, student *models.Student) ([]byte, error)) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid student id")
		return
	}

	student, err := h.StudentService.Get(r.Context(), id)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Student not found")
		return
	}

	pdf, err := generate(r.Context(), student)
	if err != nil {
		utils.WriteError(w, http.StatusConflict, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s_%s.pdf"`, kind, student.RollNo))
	w.Write(pdf)
}
