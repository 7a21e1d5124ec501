package models

import (
	"time"

	"institute-backend/internal/feeledger"
)

// UpdateFeesRequest carries one fee mutation. Exactly one of the operation
// fields must be set.
type UpdateFeesRequest struct {
	TotalFeesPaise     *int64                     `json:"total_fees_paise,omitempty"`
	InstallmentCount   *int                       `json:"installment_count,omitempty"`
	MarkPaid           *MarkInstallmentPaid       `json:"mark_paid,omitempty"`
	InstallmentPayment *InstallmentPaymentRequest `json:"installment_payment,omitempty"`
	CustomPayment      *CustomPaymentRequest      `json:"custom_payment,omitempty"`
}

// MarkInstallmentPaid marks one installment fully paid
type MarkInstallmentPaid struct {
	Index       int    `json:"index"`
	PaymentDate string `json:"payment_date,omitempty"` // YYYY-MM-DD, defaults to today
	Notes       string `json:"notes,omitempty"`
}

// InstallmentPaymentRequest records a payment against one installment
type InstallmentPaymentRequest struct {
	Index       int    `json:"index"`
	AmountPaise int64  `json:"amount_paise"`
	PaymentDate string `json:"payment_date,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// CustomPaymentRequest records a lump sum applied oldest installment first
type CustomPaymentRequest struct {
	AmountPaise int64  `json:"amount_paise"`
	PaymentDate string `json:"payment_date,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// InstallmentView is one schedule row in API responses
type InstallmentView struct {
	Index           int        `json:"index"`
	AmountPaise     int64      `json:"amount_paise"`
	DueDate         string     `json:"due_date"`
	Paid            bool       `json:"paid"`
	PaidAmountPaise int64      `json:"paid_amount_paise"`
	PaymentDate     *time.Time `json:"payment_date,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

// FeeDetailsResponse is the full ledger view for one student
type FeeDetailsResponse struct {
	StudentID           int                     `json:"student_id"`
	RollNo              string                  `json:"roll_no"`
	Name                string                  `json:"name"`
	TotalFeesPaise      int64                   `json:"total_fees_paise"`
	TotalPaidPaise      int64                   `json:"total_paid_paise"`
	RemainingFeesPaise  int64                   `json:"remaining_fees_paise"`
	AdvancePaymentPaise int64                   `json:"advance_payment_paise"`
	PaymentStatus       feeledger.PaymentStatus `json:"payment_status"`
	InstallmentCount    int                     `json:"installment_count"`
	Installments        []InstallmentView       `json:"installments"`
}

// FeeSummaryRow is one row of the fee overview list
type FeeSummaryRow struct {
	StudentID           int                     `json:"student_id"`
	RollNo              string                  `json:"roll_no"`
	Name                string                  `json:"name"`
	Phone               string                  `json:"phone"`
	Course              string                  `json:"course"`
	TotalFeesPaise      int64                   `json:"total_fees_paise"`
	TotalPaidPaise      int64                   `json:"total_paid_paise"`
	RemainingFeesPaise  int64                   `json:"remaining_fees_paise"`
	AdvancePaymentPaise int64                   `json:"advance_payment_paise"`
	PaymentStatus       feeledger.PaymentStatus `json:"payment_status"`
}

// FeeAuditEntry is one persisted audit log row
type FeeAuditEntry struct {
	ID          int               `json:"id"`
	StudentID   int               `json:"student_id"`
	ActorID     int               `json:"actor_id"`
	Description string            `json:"description"`
	Prior       feeledger.Summary `json:"prior"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Defaulter is one row of the overdue fees report
type Defaulter struct {
	StudentID          int    `json:"student_id"`
	RollNo             string `json:"roll_no"`
	Name               string `json:"name"`
	Phone              string `json:"phone"`
	Course             string `json:"course"`
	OverduePaise       int64  `json:"overdue_paise"`
	RemainingFeesPaise int64  `json:"remaining_fees_paise"`
	OldestDueDate      string `json:"oldest_due_date"`
}
