package feeledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var joining = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func mustNew(t *testing.T, total int64, count int) *Ledger {
	t.Helper()
	l, err := New(total, count, joining)
	require.NoError(t, err)
	return l
}

func TestNewEvenSplit(t *testing.T) {
	l := mustNew(t, 9000, 3)

	require.Len(t, l.Installments, 3)
	for i, inst := range l.Installments {
		assert.Equal(t, int64(3000), inst.AmountPaise)
		assert.False(t, inst.Paid)
		// due dates one calendar month apart from joining
		assert.Equal(t, l.JoiningDate.AddDate(0, i, 0), inst.DueDate)
	}
	assert.Equal(t, int64(9000), l.RemainingFeesPaise)
}

func TestNewSplitRemainderOnFirst(t *testing.T) {
	l := mustNew(t, 10000, 3)

	require.Len(t, l.Installments, 3)
	assert.Equal(t, int64(3334), l.Installments[0].AmountPaise)
	assert.Equal(t, int64(3333), l.Installments[1].AmountPaise)
	assert.Equal(t, int64(3333), l.Installments[2].AmountPaise)
}

func TestSplitSumsExactlyToTotal(t *testing.T) {
	totals := []int64{0, 1, 11, 99, 10000, 123457, 999999999}
	for _, total := range totals {
		for n := MinInstallmentCount; n <= MaxInstallmentCount; n++ {
			l, err := New(total, n, joining)
			require.NoError(t, err)

			var sum int64
			for _, inst := range l.Installments {
				sum += inst.AmountPaise
			}
			assert.Equal(t, total, sum, "total=%d n=%d", total, n)
		}
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(-1, 3, joining)
	assert.IsType(t, &ValidationError{}, err)

	_, err = New(1000, 0, joining)
	assert.IsType(t, &ValidationError{}, err)

	_, err = New(1000, 13, joining)
	assert.IsType(t, &ValidationError{}, err)
}

func TestMarkInstallmentPaid(t *testing.T) {
	l := mustNew(t, 9000, 3)

	entry, err := l.MarkInstallmentPaid(0, time.Time{}, "cash", 7)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 7, entry.ActorID)
	assert.Equal(t, int64(9000), entry.Prior.RemainingFeesPaise)

	assert.True(t, l.Installments[0].Paid)
	assert.NotNil(t, l.Installments[0].PaymentDate)
	assert.Equal(t, int64(6000), l.RemainingFeesPaise)
}

func TestMarkInstallmentPaidIdempotent(t *testing.T) {
	l := mustNew(t, 9000, 3)

	_, err := l.MarkInstallmentPaid(1, time.Time{}, "", 1)
	require.NoError(t, err)
	snapshot := *l.clone()

	entry, err := l.MarkInstallmentPaid(1, time.Time{}, "", 1)
	require.NoError(t, err)
	assert.Nil(t, entry, "second call must be a no-op")
	assert.Equal(t, snapshot.RemainingFeesPaise, l.RemainingFeesPaise)
	assert.Equal(t, snapshot.Installments, l.Installments)
}

func TestMarkInstallmentPaidOutOfRange(t *testing.T) {
	l := mustNew(t, 9000, 3)

	_, err := l.MarkInstallmentPaid(3, time.Time{}, "", 1)
	assert.IsType(t, &NotFoundError{}, err)

	_, err = l.MarkInstallmentPaid(-1, time.Time{}, "", 1)
	assert.IsType(t, &NotFoundError{}, err)
}

func TestApplyPaymentFullDoesNotSplit(t *testing.T) {
	l := mustNew(t, 9000, 3)

	_, err := l.ApplyPaymentToInstallment(0, 3000, time.Time{}, "", 1)
	require.NoError(t, err)

	assert.Len(t, l.Installments, 3)
	assert.Equal(t, 3, l.InstallmentCount)
	assert.True(t, l.Installments[0].Paid)
	assert.Equal(t, int64(6000), l.RemainingFeesPaise)
}

func TestApplyPaymentPartialSplits(t *testing.T) {
	l := mustNew(t, 9000, 3)

	// one smallest unit below the full amount must split exactly once
	_, err := l.ApplyPaymentToInstallment(0, 2999, time.Time{}, "", 1)
	require.NoError(t, err)

	require.Len(t, l.Installments, 4)
	assert.Equal(t, 4, l.InstallmentCount)

	assert.True(t, l.Installments[0].Paid)
	assert.Equal(t, int64(2999), l.Installments[0].AmountPaise)

	split := l.Installments[1]
	assert.False(t, split.Paid)
	assert.Equal(t, int64(1), split.AmountPaise)
	assert.Equal(t, l.Installments[0].DueDate.AddDate(0, 1, 0), split.DueDate)

	// amounts still sum to the total
	var sum int64
	for _, inst := range l.Installments {
		sum += inst.AmountPaise
	}
	assert.Equal(t, int64(9000), sum)
	assert.Equal(t, int64(6001), l.RemainingFeesPaise)
}

func TestApplyPaymentRejectsBadAmount(t *testing.T) {
	l := mustNew(t, 9000, 3)

	_, err := l.ApplyPaymentToInstallment(0, 0, time.Time{}, "", 1)
	assert.IsType(t, &ValidationError{}, err)

	_, err = l.ApplyPaymentToInstallment(0, 3001, time.Time{}, "", 1)
	assert.IsType(t, &ValidationError{}, err)

	_, err = l.ApplyPaymentToInstallment(5, 100, time.Time{}, "", 1)
	assert.IsType(t, &NotFoundError{}, err)
}

func TestApplyPaymentRejectsAlreadyPaid(t *testing.T) {
	l := mustNew(t, 9000, 3)
	_, err := l.MarkInstallmentPaid(0, time.Time{}, "", 1)
	require.NoError(t, err)

	_, err = l.ApplyPaymentToInstallment(0, 3000, time.Time{}, "", 1)
	assert.IsType(t, &ValidationError{}, err)
}

func TestCustomPaymentAllocatesOldestFirst(t *testing.T) {
	l := mustNew(t, 10000, 3) // 3334, 3333, 3333

	entry, err := l.ApplyCustomPayment(5000, time.Time{}, "", 1)
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.True(t, l.Installments[0].Paid)
	assert.False(t, l.Installments[1].Paid)
	assert.Equal(t, int64(1666), l.Installments[1].PaidAmountPaise)
	assert.False(t, l.Installments[2].Paid)
	assert.Equal(t, int64(0), l.Installments[2].PaidAmountPaise)
	assert.Equal(t, int64(5000), l.RemainingFeesPaise)
}

func TestCustomPaymentOverflowBecomesAdvance(t *testing.T) {
	l := mustNew(t, 9000, 3)

	entry, err := l.ApplyCustomPayment(9200, time.Time{}, "", 1)
	require.NoError(t, err)
	require.NotNil(t, entry)

	for _, inst := range l.Installments {
		assert.True(t, inst.Paid)
	}
	assert.Equal(t, int64(200), l.AdvancePaymentPaise)
	assert.Equal(t, int64(0), l.RemainingFeesPaise)
	// total paid counts the advance, not just the settled installments
	assert.Equal(t, int64(9200), l.Summary().TotalPaidPaise)
	assert.Contains(t, entry.Description, "advance")
}

func TestCustomPaymentSplitEqualsOneCall(t *testing.T) {
	a := mustNew(t, 10000, 3)
	b := mustNew(t, 10000, 3)

	_, err := a.ApplyCustomPayment(2500, time.Time{}, "", 1)
	require.NoError(t, err)
	_, err = a.ApplyCustomPayment(4100, time.Time{}, "", 1)
	require.NoError(t, err)

	_, err = b.ApplyCustomPayment(6600, time.Time{}, "", 1)
	require.NoError(t, err)

	assert.Equal(t, b.RemainingFeesPaise, a.RemainingFeesPaise)
	assert.Equal(t, b.AdvancePaymentPaise, a.AdvancePaymentPaise)
	require.Len(t, a.Installments, len(b.Installments))
	for i := range a.Installments {
		assert.Equal(t, b.Installments[i].Paid, a.Installments[i].Paid, "installment %d", i)
		assert.Equal(t, b.Installments[i].PaidAmountPaise, a.Installments[i].PaidAmountPaise, "installment %d", i)
	}
}

func TestCustomPaymentRejectsNonPositive(t *testing.T) {
	l := mustNew(t, 9000, 3)

	_, err := l.ApplyCustomPayment(0, time.Time{}, "", 1)
	assert.IsType(t, &ValidationError{}, err)

	_, err = l.ApplyCustomPayment(-50, time.Time{}, "", 1)
	assert.IsType(t, &ValidationError{}, err)
}

func TestSetTotalFeesPreservesPaidState(t *testing.T) {
	l := mustNew(t, 9000, 3)
	_, err := l.MarkInstallmentPaid(0, time.Time{}, "first", 1)
	require.NoError(t, err)

	entry, err := l.SetTotalFees(12000, 1)
	require.NoError(t, err)
	require.NotNil(t, entry)

	require.Len(t, l.Installments, 3)
	assert.True(t, l.Installments[0].Paid)
	assert.Equal(t, "first", l.Installments[0].Notes)
	assert.Equal(t, int64(4000), l.Installments[0].AmountPaise)
	assert.Equal(t, int64(12000), l.TotalFeesPaise)
	// first installment paid in full, so 12000 - 4000
	assert.Equal(t, int64(8000), l.RemainingFeesPaise)
}

func TestSetTotalFeesRejectsUnfittablePartialPayment(t *testing.T) {
	l := mustNew(t, 9000, 3)
	_, err := l.ApplyCustomPayment(2000, time.Time{}, "", 1)
	require.NoError(t, err)
	require.Equal(t, int64(2000), l.Installments[0].PaidAmountPaise)

	// New split is 1000 per installment, which cannot hold the 2000
	// already received against the first one. The edit must be rejected
	// outright rather than shrink what was paid.
	_, err = l.SetTotalFees(3000, 1)
	assert.IsType(t, &ConsistencyViolation{}, err)

	assert.Equal(t, int64(9000), l.TotalFeesPaise)
	assert.Equal(t, int64(2000), l.Installments[0].PaidAmountPaise)
	assert.Equal(t, int64(2000), l.Summary().TotalPaidPaise)
	assert.Equal(t, int64(7000), l.RemainingFeesPaise)
}

func TestSetInstallmentCountRejectsUnfittablePartialPayment(t *testing.T) {
	l := mustNew(t, 9000, 3)
	_, err := l.ApplyCustomPayment(2000, time.Time{}, "", 1)
	require.NoError(t, err)

	// 9000 over 9 installments leaves 1000 per slot, too small for the
	// 2000 partial payment carried on the first.
	_, err = l.SetInstallmentCount(9, 1)
	assert.IsType(t, &ConsistencyViolation{}, err)

	assert.Equal(t, 3, l.InstallmentCount)
	assert.Equal(t, int64(2000), l.Installments[0].PaidAmountPaise)
	assert.Equal(t, int64(7000), l.RemainingFeesPaise)
}

func TestSetTotalFeesRejectsNegative(t *testing.T) {
	l := mustNew(t, 9000, 3)
	_, err := l.SetTotalFees(-1, 1)
	assert.IsType(t, &ValidationError{}, err)
	assert.Equal(t, int64(9000), l.TotalFeesPaise)
}

func TestSetInstallmentCount(t *testing.T) {
	l := mustNew(t, 10000, 3)
	_, err := l.MarkInstallmentPaid(0, time.Time{}, "", 1)
	require.NoError(t, err)

	entry, err := l.SetInstallmentCount(4, 1)
	require.NoError(t, err)
	require.NotNil(t, entry)

	require.Len(t, l.Installments, 4)
	assert.Equal(t, int64(2500), l.Installments[0].AmountPaise)
	assert.True(t, l.Installments[0].Paid)
	for i := 1; i < 4; i++ {
		assert.Equal(t, int64(2500), l.Installments[i].AmountPaise)
		assert.False(t, l.Installments[i].Paid)
	}

	_, err = l.SetInstallmentCount(13, 1)
	assert.IsType(t, &ValidationError{}, err)
	_, err = l.SetInstallmentCount(0, 1)
	assert.IsType(t, &ValidationError{}, err)
}

func TestRemainingAlwaysDerived(t *testing.T) {
	l := mustNew(t, 10000, 4)

	ops := []func() error{
		func() error { _, err := l.MarkInstallmentPaid(2, time.Time{}, "", 1); return err },
		func() error { _, err := l.ApplyCustomPayment(1200, time.Time{}, "", 1); return err },
		func() error { _, err := l.ApplyPaymentToInstallment(3, 1000, time.Time{}, "", 1); return err },
		func() error { _, err := l.SetInstallmentCount(6, 1); return err },
		func() error { _, err := l.ApplyCustomPayment(30000, time.Time{}, "", 1); return err },
	}
	for i, op := range ops {
		require.NoError(t, op(), "op %d", i)

		var paid int64
		for _, inst := range l.Installments {
			if inst.Paid {
				paid += inst.AmountPaise
			} else {
				paid += inst.PaidAmountPaise
			}
		}
		paid += l.AdvancePaymentPaise

		want := l.TotalFeesPaise - paid
		if want < 0 {
			want = 0
		}
		assert.Equal(t, want, l.RemainingFeesPaise, "op %d", i)
	}
}

func TestSummaryStatus(t *testing.T) {
	l := mustNew(t, 9000, 3)
	assert.Equal(t, StatusNotPaid, l.Summary().PaymentStatus)

	_, err := l.ApplyCustomPayment(100, time.Time{}, "", 1)
	require.NoError(t, err)
	assert.Equal(t, StatusPartiallyPaid, l.Summary().PaymentStatus)

	_, err = l.ApplyCustomPayment(8900, time.Time{}, "", 1)
	require.NoError(t, err)
	s := l.Summary()
	assert.Equal(t, StatusFullyPaid, s.PaymentStatus)
	assert.Equal(t, int64(9000), s.TotalPaidPaise)
	assert.Equal(t, int64(0), s.RemainingFeesPaise)
}

func TestSummaryZeroTotalIsFullyPaid(t *testing.T) {
	l := mustNew(t, 0, 1)
	assert.Equal(t, StatusFullyPaid, l.Summary().PaymentStatus)
}

func TestFailedOperationLeavesLedgerUnchanged(t *testing.T) {
	l := mustNew(t, 10000, 3)
	_, err := l.ApplyCustomPayment(4000, time.Time{}, "", 1)
	require.NoError(t, err)
	snapshot := *l.clone()

	_, err = l.ApplyPaymentToInstallment(0, 99999, time.Time{}, "", 1)
	require.Error(t, err)
	assert.Equal(t, snapshot.Installments, l.Installments)
	assert.Equal(t, snapshot.RemainingFeesPaise, l.RemainingFeesPaise)
}
