package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"institute-backend/internal/middleware"
	"institute-backend/internal/models"
	"institute-backend/internal/services"
	"institute-backend/pkg/utils"
)

type StudentHandler struct {
	Service     *services.StudentService
	UserService *services.UserService
}

func NewStudentHandler(s *services.StudentService, userService *services.UserService) *StudentHandler {
	return &StudentHandler{Service: s, UserService: userService}
}

// Register admits a new student
// POST /api/students
func (h *StudentHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	student, err := h.Service.Register(r.Context(), &req)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusCreated, student)
}

// List returns all students, optionally filtered by a search query
// GET /api/students?q=
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	students, err := h.Service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, students)
}

// Get returns one student by ID
// GET /api/students/{id}
func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid student id")
		return
	}

	student, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Student not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, student)
}

// Edit applies a partial update to a student
// PATCH /api/students/{id}
func (h *StudentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid student id")
		return
	}

	var req models.EditStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	student, err := h.Service.Edit(r.Context(), id, &req)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, student)
}

// Login authenticates a student on the portal
// POST /api/students/login
func (h *StudentHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.StudentLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, err.Error())
		return
	}

	h.UserService.RecordStudentLogin(r.Context(), resp.Student.ID, getIPAddress(r), r.UserAgent())

	utils.WriteJSON(w, http.StatusOK, resp)
}

// Me returns the logged in student's own record
// GET /api/portal/me
func (h *StudentHandler) Me(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.GetStudentIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	student, err := h.Service.Get(r.Context(), studentID)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Student not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, student)
}

// Verify is the public certificate verification endpoint
// POST /api/verify/student
func (h *StudentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Service.Verify(r.Context(), &req)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}
