package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"institute-backend/internal/cache"
	"institute-backend/internal/feeledger"
	"institute-backend/internal/metrics"
	"institute-backend/internal/models"
	"institute-backend/internal/repositories"
	"institute-backend/internal/timeutil"
)

// casRetries bounds the reload-and-retry loop on version conflicts
const casRetries = 3

type FeeService struct {
	Repo        *repositories.FeeRepository
	StudentRepo *repositories.StudentRepository
}

func NewFeeService(repo *repositories.FeeRepository, studentRepo *repositories.StudentRepository) *FeeService {
	return &FeeService{Repo: repo, StudentRepo: studentRepo}
}

// GetFeeDetails returns the full ledger view for one student, served from
// Redis when a fresh copy is cached.
func (s *FeeService) GetFeeDetails(ctx context.Context, studentID int) (*models.FeeDetailsResponse, error) {
	if cached, ok := cache.GetFeeSummary(ctx, studentID); ok {
		var resp models.FeeDetailsResponse
		if json.Unmarshal(cached, &resp) == nil {
			return &resp, nil
		}
	}

	student, err := s.StudentRepo.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}
	ledger, _, err := s.Repo.LoadLedger(ctx, studentID)
	if err != nil {
		return nil, err
	}

	resp := buildFeeDetails(student, ledger)

	if payload, err := json.Marshal(resp); err == nil {
		cache.CacheFeeSummary(ctx, studentID, payload)
	}
	return resp, nil
}

func buildFeeDetails(student *models.Student, ledger *feeledger.Ledger) *models.FeeDetailsResponse {
	summary := ledger.Summary()
	resp := &models.FeeDetailsResponse{
		StudentID:           student.ID,
		RollNo:              student.RollNo,
		Name:                student.Name,
		TotalFeesPaise:      summary.TotalFeesPaise,
		TotalPaidPaise:      summary.TotalPaidPaise,
		RemainingFeesPaise:  summary.RemainingFeesPaise,
		AdvancePaymentPaise: summary.AdvancePaymentPaise,
		PaymentStatus:       summary.PaymentStatus,
		InstallmentCount:    ledger.InstallmentCount,
	}
	for i, inst := range ledger.Installments {
		resp.Installments = append(resp.Installments, models.InstallmentView{
			Index:           i,
			AmountPaise:     inst.AmountPaise,
			DueDate:         inst.DueDate.Format(timeutil.DateLayout),
			Paid:            inst.Paid,
			PaidAmountPaise: inst.PaidAmountPaise,
			PaymentDate:     inst.PaymentDate,
			Notes:           inst.Notes,
		})
	}
	return resp
}

// GetFeeDetailsByIdentifier resolves a student by roll number, email or
// phone before building the ledger view.
func (s *FeeService) GetFeeDetailsByIdentifier(ctx context.Context, identifier string) (*models.FeeDetailsResponse, error) {
	student, err := s.StudentRepo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return s.GetFeeDetails(ctx, student.ID)
}

// UpdateFees applies exactly one ledger mutation for the student. The load,
// mutate and compare-and-swap save run under a bounded retry so concurrent
// admins cannot lose each other's updates.
func (s *FeeService) UpdateFees(ctx context.Context, studentID, actorID int, req *models.UpdateFeesRequest) (*models.FeeDetailsResponse, error) {
	operation, err := operationName(req)
	if err != nil {
		return nil, err
	}

	student, err := s.StudentRepo.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}

	var ledger *feeledger.Ledger
	for attempt := 0; ; attempt++ {
		var version int
		ledger, version, err = s.Repo.LoadLedger(ctx, studentID)
		if err != nil {
			return nil, err
		}

		entry, err := applyOperation(ledger, actorID, req)
		if err != nil {
			metrics.FeeMutationsTotal.WithLabelValues(operation, "rejected").Inc()
			return nil, err
		}

		err = s.Repo.SaveLedger(ctx, studentID, version, ledger, entry)
		if err == nil {
			break
		}
		if !errors.Is(err, repositories.ErrVersionConflict) || attempt+1 >= casRetries {
			metrics.FeeMutationsTotal.WithLabelValues(operation, "error").Inc()
			return nil, err
		}
		log.Printf("fee version conflict for student %d, retrying (%d/%d)", studentID, attempt+1, casRetries)
	}

	metrics.FeeMutationsTotal.WithLabelValues(operation, "ok").Inc()
	cache.InvalidateFeeSummary(ctx, studentID)
	return buildFeeDetails(student, ledger), nil
}

func operationName(req *models.UpdateFeesRequest) (string, error) {
	set := 0
	name := ""
	if req.TotalFeesPaise != nil {
		set++
		name = "set_total_fees"
	}
	if req.InstallmentCount != nil {
		set++
		name = "set_installment_count"
	}
	if req.MarkPaid != nil {
		set++
		name = "mark_paid"
	}
	if req.InstallmentPayment != nil {
		set++
		name = "installment_payment"
	}
	if req.CustomPayment != nil {
		set++
		name = "custom_payment"
	}
	if set != 1 {
		return "", errors.New("exactly one fee operation must be provided")
	}
	return name, nil
}

func applyOperation(ledger *feeledger.Ledger, actorID int, req *models.UpdateFeesRequest) (*feeledger.AuditEntry, error) {
	switch {
	case req.TotalFeesPaise != nil:
		return ledger.SetTotalFees(*req.TotalFeesPaise, actorID)
	case req.InstallmentCount != nil:
		return ledger.SetInstallmentCount(*req.InstallmentCount, actorID)
	case req.MarkPaid != nil:
		date, err := parsePaymentDate(req.MarkPaid.PaymentDate)
		if err != nil {
			return nil, err
		}
		return ledger.MarkInstallmentPaid(req.MarkPaid.Index, date, req.MarkPaid.Notes, actorID)
	case req.InstallmentPayment != nil:
		date, err := parsePaymentDate(req.InstallmentPayment.PaymentDate)
		if err != nil {
			return nil, err
		}
		return ledger.ApplyPaymentToInstallment(req.InstallmentPayment.Index,
			req.InstallmentPayment.AmountPaise, date, req.InstallmentPayment.Notes, actorID)
	case req.CustomPayment != nil:
		date, err := parsePaymentDate(req.CustomPayment.PaymentDate)
		if err != nil {
			return nil, err
		}
		return ledger.ApplyCustomPayment(req.CustomPayment.AmountPaise, date, req.CustomPayment.Notes, actorID)
	}
	return nil, errors.New("exactly one fee operation must be provided")
}

func parsePaymentDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	date, err := timeutil.ParseDate(value)
	if err != nil {
		return time.Time{}, errors.New("payment_date must be YYYY-MM-DD")
	}
	return date, nil
}

// RecordOnlinePayment applies a verified online payment as a custom payment
func (s *FeeService) RecordOnlinePayment(ctx context.Context, studentID int, amountPaise int64, notes string) (*models.FeeDetailsResponse, error) {
	return s.UpdateFees(ctx, studentID, 0, &models.UpdateFeesRequest{
		CustomPayment: &models.CustomPaymentRequest{AmountPaise: amountPaise, Notes: notes},
	})
}

func (s *FeeService) ListAudit(ctx context.Context, studentID int) ([]*models.FeeAuditEntry, error) {
	return s.Repo.ListAudit(ctx, studentID)
}

func (s *FeeService) ListSummaries(ctx context.Context, incompleteOnly bool) ([]*models.FeeSummaryRow, error) {
	return s.Repo.ListSummaries(ctx, incompleteOnly)
}
