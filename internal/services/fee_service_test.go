package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"institute-backend/internal/feeledger"
	"institute-backend/internal/models"
)

func int64p(v int64) *int64 { return &v }
func intp(v int) *int       { return &v }

func TestOperationName(t *testing.T) {
	cases := []struct {
		name string
		req  *models.UpdateFeesRequest
		want string
	}{
		{"total fees", &models.UpdateFeesRequest{TotalFeesPaise: int64p(500000)}, "set_total_fees"},
		{"installment count", &models.UpdateFeesRequest{InstallmentCount: intp(4)}, "set_installment_count"},
		{"mark paid", &models.UpdateFeesRequest{MarkPaid: &models.MarkInstallmentPaid{Index: 0}}, "mark_paid"},
		{"installment payment", &models.UpdateFeesRequest{InstallmentPayment: &models.InstallmentPaymentRequest{Index: 0, AmountPaise: 100}}, "installment_payment"},
		{"custom payment", &models.UpdateFeesRequest{CustomPayment: &models.CustomPaymentRequest{AmountPaise: 100}}, "custom_payment"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			name, err := operationName(tc.req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, name)
		})
	}
}

func TestOperationNameRejectsEmptyAndMultiple(t *testing.T) {
	_, err := operationName(&models.UpdateFeesRequest{})
	assert.Error(t, err)

	_, err = operationName(&models.UpdateFeesRequest{
		TotalFeesPaise:   int64p(500000),
		InstallmentCount: intp(4),
	})
	assert.Error(t, err)
}

func TestApplyOperationMutatesLedger(t *testing.T) {
	joining := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	ledger, err := feeledger.New(900000, 3, joining)
	require.NoError(t, err)

	entry, err := applyOperation(ledger, 7, &models.UpdateFeesRequest{
		MarkPaid: &models.MarkInstallmentPaid{Index: 0, PaymentDate: "2025-06-15"},
	})
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 7, entry.ActorID)
	assert.True(t, ledger.Installments[0].Paid)
	assert.Equal(t, int64(600000), ledger.RemainingFeesPaise)
}

func TestApplyOperationRejectsBadDate(t *testing.T) {
	joining := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	ledger, err := feeledger.New(900000, 3, joining)
	require.NoError(t, err)

	_, err = applyOperation(ledger, 1, &models.UpdateFeesRequest{
		CustomPayment: &models.CustomPaymentRequest{AmountPaise: 1000, PaymentDate: "15-06-2025"},
	})
	assert.Error(t, err)
	assert.Equal(t, int64(900000), ledger.RemainingFeesPaise)
}

func TestBuildFeeDetails(t *testing.T) {
	joining := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	ledger, err := feeledger.New(1000000, 3, joining)
	require.NoError(t, err)
	_, err = ledger.ApplyCustomPayment(500000, joining, "", 1)
	require.NoError(t, err)

	student := &models.Student{ID: 42, RollNo: "2025001", Name: "Asha"}
	resp := buildFeeDetails(student, ledger)

	assert.Equal(t, 42, resp.StudentID)
	assert.Equal(t, int64(500000), resp.TotalPaidPaise)
	assert.Equal(t, int64(500000), resp.RemainingFeesPaise)
	assert.Equal(t, feeledger.StatusPartiallyPaid, resp.PaymentStatus)
	require.Len(t, resp.Installments, 3)
	assert.Equal(t, "2025-06-01", resp.Installments[0].DueDate)
	assert.True(t, resp.Installments[0].Paid)
}
