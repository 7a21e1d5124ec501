package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	razorpay "github.com/razorpay/razorpay-go"

	"institute-backend/internal/models"
	"institute-backend/internal/repositories"
	"institute-backend/internal/timeutil"
)

type RazorpayService struct {
	TransactionRepo *repositories.OnlineTransactionRepository
	StudentRepo     *repositories.StudentRepository
	FeeService      *FeeService

	keyID         string
	keySecret     string
	webhookSecret string
}

func NewRazorpayService(keyID, keySecret, webhookSecret string,
	transactionRepo *repositories.OnlineTransactionRepository,
	studentRepo *repositories.StudentRepository,
	feeService *FeeService) *RazorpayService {
	return &RazorpayService{
		TransactionRepo: transactionRepo,
		StudentRepo:     studentRepo,
		FeeService:      feeService,
		keyID:           keyID,
		keySecret:       keySecret,
		webhookSecret:   webhookSecret,
	}
}

func (s *RazorpayService) Enabled() bool {
	return s.keyID != "" && s.keySecret != ""
}

// CreateOrder opens a Razorpay order for a fee payment and records the
// pending transaction.
func (s *RazorpayService) CreateOrder(ctx context.Context, studentID int, req *models.CreateOnlinePaymentRequest) (*models.CreateOrderResponse, error) {
	if !s.Enabled() {
		return nil, errors.New("online payments are currently disabled")
	}
	if req.AmountPaise <= 0 {
		return nil, errors.New("amount must be positive")
	}

	student, err := s.StudentRepo.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}
	fees, err := s.FeeService.GetFeeDetails(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if fees.RemainingFeesPaise == 0 {
		return nil, errors.New("no fees are pending")
	}

	client := razorpay.NewClient(s.keyID, s.keySecret)
	orderData := map[string]interface{}{
		"amount":   req.AmountPaise,
		"currency": "INR",
		"receipt":  fmt.Sprintf("fee_%s_%d", student.RollNo, timeutil.Now().Unix()),
		"notes": map[string]interface{}{
			"student_id": student.ID,
			"roll_no":    student.RollNo,
		},
	}
	order, err := client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}
	orderID, _ := order["id"].(string)
	if orderID == "" {
		return nil, errors.New("razorpay returned no order id")
	}

	tx := &models.OnlineTransaction{
		RazorpayOrderID: orderID,
		StudentID:       student.ID,
		RollNo:          student.RollNo,
		StudentName:     student.Name,
		AmountPaise:     req.AmountPaise,
		Status:          models.OnlineTxStatusPending,
	}
	if err := s.TransactionRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	return &models.CreateOrderResponse{
		OrderID:     orderID,
		AmountPaise: req.AmountPaise,
		Currency:    "INR",
		KeyID:       s.keyID,
	}, nil
}

// VerifyPayment checks the checkout signature and, when valid, applies the
// payment to the student's ledger.
func (s *RazorpayService) VerifyPayment(ctx context.Context, req *models.VerifyPaymentRequest) (*models.OnlineTransaction, error) {
	tx, err := s.TransactionRepo.GetByOrderID(ctx, req.RazorpayOrderID)
	if err != nil {
		return nil, errors.New("unknown order")
	}
	if tx.Status == models.OnlineTxStatusSuccess {
		return tx, nil
	}

	if !s.verifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		if err := s.TransactionRepo.MarkFailed(ctx, req.RazorpayOrderID, "invalid signature"); err != nil {
			log.Printf("failed to mark transaction %s failed: %v", req.RazorpayOrderID, err)
		}
		return nil, errors.New("payment signature verification failed")
	}

	method, bank, vpa := s.fetchPaymentDetails(req.RazorpayPaymentID)
	if err := s.TransactionRepo.MarkSuccess(ctx, req.RazorpayOrderID, req.RazorpayPaymentID, method, bank, vpa); err != nil {
		return nil, err
	}

	notes := fmt.Sprintf("Online payment %s", req.RazorpayPaymentID)
	if _, err := s.FeeService.RecordOnlinePayment(ctx, tx.StudentID, tx.AmountPaise, notes); err != nil {
		// The money is captured; surface the ledger failure so an admin can
		// reconcile manually.
		return nil, fmt.Errorf("payment captured but ledger update failed: %w", err)
	}

	return s.TransactionRepo.GetByOrderID(ctx, req.RazorpayOrderID)
}

// fetchPaymentDetails pulls method details from Razorpay, best effort
func (s *RazorpayService) fetchPaymentDetails(paymentID string) (method, bank, vpa string) {
	client := razorpay.NewClient(s.keyID, s.keySecret)
	payment, err := client.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		log.Printf("failed to fetch razorpay payment %s: %v", paymentID, err)
		return "", "", ""
	}
	method, _ = payment["method"].(string)
	bank, _ = payment["bank"].(string)
	vpa, _ = payment["vpa"].(string)
	return method, bank, vpa
}

// verifyPaymentSignature checks the HMAC-SHA256 of "orderID|paymentID"
// against the checkout signature.
func (s *RazorpayService) verifyPaymentSignature(orderID, paymentID, signature string) bool {
	h := hmac.New(sha256.New, []byte(s.keySecret))
	h.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature checks the HMAC-SHA256 of the raw webhook body
func (s *RazorpayService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		return false
	}
	h := hmac.New(sha256.New, []byte(s.webhookSecret))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// HandlePaymentCaptured processes a payment.captured webhook event. It is
// idempotent with VerifyPayment since both paths check transaction status.
func (s *RazorpayService) HandlePaymentCaptured(ctx context.Context, orderID, paymentID string) error {
	tx, err := s.TransactionRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return errors.New("unknown order")
	}
	if tx.Status == models.OnlineTxStatusSuccess {
		return nil
	}

	method, bank, vpa := s.fetchPaymentDetails(paymentID)
	if err := s.TransactionRepo.MarkSuccess(ctx, orderID, paymentID, method, bank, vpa); err != nil {
		return err
	}

	notes := fmt.Sprintf("Online payment %s", paymentID)
	if _, err := s.FeeService.RecordOnlinePayment(ctx, tx.StudentID, tx.AmountPaise, notes); err != nil {
		return fmt.Errorf("payment captured but ledger update failed: %w", err)
	}
	return nil
}

func (s *RazorpayService) ListByStudent(ctx context.Context, studentID int) ([]*models.OnlineTransaction, error) {
	return s.TransactionRepo.ListByStudent(ctx, studentID)
}
