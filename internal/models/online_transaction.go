package models

import "time"

// OnlineTransactionStatus represents the status of an online payment
type OnlineTransactionStatus string

const (
	OnlineTxStatusPending OnlineTransactionStatus = "pending"
	OnlineTxStatusSuccess OnlineTransactionStatus = "success"
	OnlineTxStatusFailed  OnlineTransactionStatus = "failed"
)

// OnlineTransaction represents a Razorpay fee payment
type OnlineTransaction struct {
	ID                int    `json:"id"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id,omitempty"`
	RazorpaySignature string `json:"-"` // Don't expose signature in JSON

	StudentID   int    `json:"student_id"`
	RollNo      string `json:"roll_no"`
	StudentName string `json:"student_name"`

	AmountPaise int64 `json:"amount_paise"`

	PaymentMethod string `json:"payment_method,omitempty"` // upi, card, netbanking, wallet
	Bank          string `json:"bank,omitempty"`
	VPA           string `json:"vpa,omitempty"`

	Status        OnlineTransactionStatus `json:"status"`
	FailureReason string                  `json:"failure_reason,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CreateOnlinePaymentRequest initiates an online fee payment
type CreateOnlinePaymentRequest struct {
	AmountPaise int64 `json:"amount_paise"`
}

// CreateOrderResponse is returned to the frontend for Razorpay checkout
type CreateOrderResponse struct {
	OrderID     string `json:"order_id"`
	AmountPaise int64  `json:"amount_paise"`
	Currency    string `json:"currency"`
	KeyID       string `json:"key_id"`
}

// VerifyPaymentRequest is the checkout callback with the payment signature
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}
