package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"institute-backend/internal/middleware"
	"institute-backend/internal/models"
	"institute-backend/internal/services"
	"institute-backend/pkg/utils"
)

type RazorpayHandler struct {
	Service *services.RazorpayService
}

func NewRazorpayHandler(s *services.RazorpayService) *RazorpayHandler {
	return &RazorpayHandler{Service: s}
}

// CreateOrder opens a Razorpay order for the logged in student
// POST /api/portal/payments/order
func (h *RazorpayHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.GetStudentIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req models.CreateOnlinePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Service.CreateOrder(r.Context(), studentID, &req)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusCreated, resp)
}

// VerifyPayment checks the checkout signature and applies the payment
// POST /api/portal/payments/verify
func (h *RazorpayHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.Service.VerifyPayment(r.Context(), &req)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, tx)
}

// HandleWebhook processes Razorpay webhook events
// POST /api/payments/webhook
func (h *RazorpayHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Failed to read body")
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if !h.Service.VerifyWebhookSignature(body, signature) {
		log.Printf("[Razorpay] Invalid webhook signature")
		utils.WriteError(w, http.StatusUnauthorized, "Invalid signature")
		return
	}

	var payload struct {
		Event   string `json:"event"`
		Payload struct {
			Payment struct {
				Entity struct {
					ID      string `json:"id"`
					OrderID string `json:"order_id"`
				} `json:"entity"`
			} `json:"payment"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	log.Printf("[Razorpay] Received webhook: %s", payload.Event)

	if payload.Event == "payment.captured" {
		entity := payload.Payload.Payment.Entity
		if err := h.Service.HandlePaymentCaptured(r.Context(), entity.OrderID, entity.ID); err != nil {
			// Acknowledge anyway so Razorpay does not retry known failures
			log.Printf("[Razorpay] Webhook processing error: %v", err)
		}
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListMyTransactions returns the logged in student's online payments
// GET /api/portal/payments
func (h *RazorpayHandler) ListMyTransactions(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.GetStudentIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	list, err := h.Service.ListByStudent(r.Context(), studentID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, list)
}
