package feeledger

import (
	"fmt"
	"sort"
	"time"

	"institute-backend/internal/timeutil"
)

// Installment count bounds for a generated schedule.
const (
	MinInstallmentCount = 1
	MaxInstallmentCount = 12
)

// PaymentStatus summarises how much of the total fee has been settled.
type PaymentStatus string

const (
	StatusFullyPaid     PaymentStatus = "FULLY_PAID"
	StatusPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	StatusNotPaid       PaymentStatus = "NOT_PAID"
)

// Installment is one scheduled partial payment of the total fee.
// All amounts are integer paise so repeated recomputation never drifts.
type Installment struct {
	AmountPaise     int64      `json:"amount_paise"`
	DueDate         time.Time  `json:"due_date"`
	Paid            bool       `json:"paid"`
	PaidAmountPaise int64      `json:"paid_amount_paise,omitempty"`
	PaymentDate     *time.Time `json:"payment_date,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

// outstanding is the unpaid remainder of this installment.
func (i *Installment) outstanding() int64 {
	if i.Paid {
		return 0
	}
	return i.AmountPaise - i.PaidAmountPaise
}

// contribution is what this installment adds to total-paid: the full
// amount when paid, otherwise the recorded partial amount.
func (i *Installment) contribution() int64 {
	if i.Paid {
		return i.AmountPaise
	}
	return i.PaidAmountPaise
}

// Ledger tracks what a student owes, what has been paid, and through
// which installments. RemainingFeesPaise is always derived; it is never
// written directly.
type Ledger struct {
	TotalFeesPaise      int64         `json:"total_fees_paise"`
	InstallmentCount    int           `json:"installment_count"`
	Installments        []Installment `json:"installments"`
	AdvancePaymentPaise int64         `json:"advance_payment_paise"`
	RemainingFeesPaise  int64         `json:"remaining_fees_paise"`
	JoiningDate         time.Time     `json:"joining_date"`
}

// Summary is the read-only view returned by Summary and recorded as the
// prior state in audit entries.
type Summary struct {
	TotalFeesPaise      int64         `json:"total_fees_paise"`
	TotalPaidPaise      int64         `json:"total_paid_paise"`
	RemainingFeesPaise  int64         `json:"remaining_fees_paise"`
	AdvancePaymentPaise int64         `json:"advance_payment_paise"`
	PaymentStatus       PaymentStatus `json:"payment_status"`
}

// AuditEntry describes one ledger mutation. It must be persisted in the
// same transaction as the mutated state.
type AuditEntry struct {
	At          time.Time `json:"at"`
	ActorID     int       `json:"actor_id"`
	Description string    `json:"description"`
	Prior       Summary   `json:"prior"`
}

// New creates a ledger with an even installment split starting at the
// joining date.
func New(totalFeesPaise int64, installmentCount int, joiningDate time.Time) (*Ledger, error) {
	if totalFeesPaise < 0 {
		return nil, &ValidationError{Field: "totalFees", Reason: "must not be negative"}
	}
	if installmentCount < MinInstallmentCount || installmentCount > MaxInstallmentCount {
		return nil, &ValidationError{
			Field:  "installmentCount",
			Reason: fmt.Sprintf("must be between %d and %d", MinInstallmentCount, MaxInstallmentCount),
		}
	}

	l := &Ledger{
		TotalFeesPaise:   totalFeesPaise,
		InstallmentCount: installmentCount,
		JoiningDate:      timeutil.StartOfDay(joiningDate),
	}
	installments, err := generateSchedule(totalFeesPaise, installmentCount, l.JoiningDate, nil)
	if err != nil {
		return nil, err
	}
	l.Installments = installments
	l.recomputeRemaining()
	return l, nil
}

// SetTotalFees sets a new fee total and regenerates the schedule over the
// current installment count. Paid state survives the edit position-wise;
// only amounts and due dates are recomputed.
func (l *Ledger) SetTotalFees(newTotalPaise int64, actorID int) (*AuditEntry, error) {
	if newTotalPaise < 0 {
		return nil, &ValidationError{Field: "totalFees", Reason: "must not be negative"}
	}

	next := l.clone()
	prior := l.Summary()

	next.TotalFeesPaise = newTotalPaise
	installments, err := generateSchedule(newTotalPaise, next.InstallmentCount, next.JoiningDate, l.Installments)
	if err != nil {
		return nil, err
	}
	next.Installments = installments
	next.recomputeRemaining()

	if err := next.checkInvariants(); err != nil {
		return nil, err
	}
	*l = *next

	return &AuditEntry{
		At:          timeutil.Now(),
		ActorID:     actorID,
		Description: fmt.Sprintf("Total fees set to %s, schedule regenerated over %d installment(s)", rupees(newTotalPaise), l.InstallmentCount),
		Prior:       prior,
	}, nil
}

// SetInstallmentCount regenerates the schedule with n evenly sized
// installments, best-effort preserving prior paid flags by index.
func (l *Ledger) SetInstallmentCount(n int, actorID int) (*AuditEntry, error) {
	if n < MinInstallmentCount || n > MaxInstallmentCount {
		return nil, &ValidationError{
			Field:  "installmentCount",
			Reason: fmt.Sprintf("must be between %d and %d", MinInstallmentCount, MaxInstallmentCount),
		}
	}

	next := l.clone()
	prior := l.Summary()

	next.InstallmentCount = n
	installments, err := generateSchedule(next.TotalFeesPaise, n, next.JoiningDate, l.Installments)
	if err != nil {
		return nil, err
	}
	next.Installments = installments
	next.recomputeRemaining()

	if err := next.checkInvariants(); err != nil {
		return nil, err
	}
	*l = *next

	return &AuditEntry{
		At:          timeutil.Now(),
		ActorID:     actorID,
		Description: fmt.Sprintf("Schedule regenerated with %d installment(s)", n),
		Prior:       prior,
	}, nil
}

// MarkInstallmentPaid marks one installment fully paid. Marking an
// already-paid installment is a no-op and returns a nil audit entry.
func (l *Ledger) MarkInstallmentPaid(index int, paymentDate time.Time, notes string, actorID int) (*AuditEntry, error) {
	if index < 0 || index >= len(l.Installments) {
		return nil, &NotFoundError{Index: index}
	}
	if l.Installments[index].Paid {
		return nil, nil
	}
	if paymentDate.IsZero() {
		paymentDate = timeutil.Now()
	}

	next := l.clone()
	prior := l.Summary()

	inst := &next.Installments[index]
	inst.Paid = true
	inst.PaidAmountPaise = 0
	inst.PaymentDate = &paymentDate
	if notes != "" {
		inst.Notes = notes
	}
	next.recomputeRemaining()

	if err := next.checkInvariants(); err != nil {
		return nil, err
	}
	*l = *next

	return &AuditEntry{
		At:          timeutil.Now(),
		ActorID:     actorID,
		Description: fmt.Sprintf("Installment %d (%s) marked paid", index+1, rupees(l.Installments[index].AmountPaise)),
		Prior:       prior,
	}, nil
}

// ApplyPaymentToInstallment records a payment against one installment.
// A payment equal to the installment amount settles it in place. A
// smaller payment splits the installment: the original is reduced to the
// paid amount and settled, and a new unpaid installment carrying the
// remainder is inserted immediately after it, due one month later.
func (l *Ledger) ApplyPaymentToInstallment(index int, paidPaise int64, paymentDate time.Time, notes string, actorID int) (*AuditEntry, error) {
	if index < 0 || index >= len(l.Installments) {
		return nil, &NotFoundError{Index: index}
	}
	target := l.Installments[index]
	if target.Paid {
		return nil, &ValidationError{Field: "index", Reason: "installment is already paid"}
	}
	if target.PaidAmountPaise > 0 {
		return nil, &ValidationError{Field: "index", Reason: "installment has a partial payment; use a custom payment instead"}
	}
	if paidPaise <= 0 || paidPaise > target.AmountPaise {
		return nil, &ValidationError{
			Field:  "paidAmount",
			Reason: fmt.Sprintf("must be greater than zero and at most %s", rupees(target.AmountPaise)),
		}
	}
	if paymentDate.IsZero() {
		paymentDate = timeutil.Now()
	}

	next := l.clone()
	prior := l.Summary()

	inst := &next.Installments[index]
	inst.Paid = true
	inst.PaymentDate = &paymentDate
	if notes != "" {
		inst.Notes = notes
	}

	var desc string
	if paidPaise == target.AmountPaise {
		desc = fmt.Sprintf("Installment %d paid in full (%s)", index+1, rupees(paidPaise))
	} else {
		remainder := target.AmountPaise - paidPaise
		inst.AmountPaise = paidPaise
		split := Installment{
			AmountPaise: remainder,
			DueDate:     target.DueDate.AddDate(0, 1, 0),
		}
		next.Installments = append(next.Installments, Installment{})
		copy(next.Installments[index+2:], next.Installments[index+1:])
		next.Installments[index+1] = split
		next.InstallmentCount++
		desc = fmt.Sprintf("Installment %d partially paid (%s), remainder %s split into a new installment", index+1, rupees(paidPaise), rupees(remainder))
	}
	next.recomputeRemaining()

	if err := next.checkInvariants(); err != nil {
		return nil, err
	}
	*l = *next

	return &AuditEntry{
		At:          timeutil.Now(),
		ActorID:     actorID,
		Description: desc,
		Prior:       prior,
	}, nil
}

// ApplyCustomPayment allocates a lump sum against outstanding installments
// oldest due date first (ties broken by schedule position). Whatever is
// left after every installment is satisfied becomes an advance payment.
func (l *Ledger) ApplyCustomPayment(amountPaise int64, paymentDate time.Time, notes string, actorID int) (*AuditEntry, error) {
	if amountPaise <= 0 {
		return nil, &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if paymentDate.IsZero() {
		paymentDate = timeutil.Now()
	}

	next := l.clone()
	prior := l.Summary()

	order := make([]int, len(next.Installments))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return next.Installments[order[a]].DueDate.Before(next.Installments[order[b]].DueDate)
	})

	remaining := amountPaise
	allocated := 0
	for _, idx := range order {
		if remaining == 0 {
			break
		}
		inst := &next.Installments[idx]
		due := inst.outstanding()
		if due == 0 {
			continue
		}
		pay := due
		if remaining < due {
			pay = remaining
		}
		if pay == due {
			inst.Paid = true
			inst.PaidAmountPaise = 0
		} else {
			inst.PaidAmountPaise += pay
		}
		inst.PaymentDate = &paymentDate
		if notes != "" {
			inst.Notes = notes
		}
		remaining -= pay
		allocated++
	}
	if remaining > 0 {
		next.AdvancePaymentPaise += remaining
	}
	next.recomputeRemaining()

	if err := next.checkInvariants(); err != nil {
		return nil, err
	}
	*l = *next

	desc := fmt.Sprintf("Custom payment of %s allocated across %d installment(s)", rupees(amountPaise), allocated)
	if remaining > 0 {
		desc += fmt.Sprintf(", %s recorded as advance payment", rupees(remaining))
	}
	return &AuditEntry{
		At:          timeutil.Now(),
		ActorID:     actorID,
		Description: desc,
		Prior:       prior,
	}, nil
}

// Summary reports totals and payment status without side effects.
func (l *Ledger) Summary() Summary {
	paid := l.totalPaid()
	s := Summary{
		TotalFeesPaise:      l.TotalFeesPaise,
		TotalPaidPaise:      paid,
		RemainingFeesPaise:  l.RemainingFeesPaise,
		AdvancePaymentPaise: l.AdvancePaymentPaise,
	}
	switch {
	case l.RemainingFeesPaise == 0:
		s.PaymentStatus = StatusFullyPaid
	case paid == 0:
		s.PaymentStatus = StatusNotPaid
	default:
		s.PaymentStatus = StatusPartiallyPaid
	}
	return s
}

func (l *Ledger) totalPaid() int64 {
	var paid int64
	for i := range l.Installments {
		paid += l.Installments[i].contribution()
	}
	return paid + l.AdvancePaymentPaise
}

// recomputeRemaining derives remaining fees from installment and advance
// state. It is the only writer of RemainingFeesPaise.
func (l *Ledger) recomputeRemaining() {
	remaining := l.TotalFeesPaise - l.totalPaid()
	if remaining < 0 {
		remaining = 0
	}
	l.RemainingFeesPaise = remaining
}

func (l *Ledger) checkInvariants() error {
	var sum int64
	for i := range l.Installments {
		inst := &l.Installments[i]
		if inst.AmountPaise < 0 {
			return &ConsistencyViolation{Reason: fmt.Sprintf("installment %d has negative amount", i+1)}
		}
		if inst.PaidAmountPaise < 0 || inst.PaidAmountPaise > inst.AmountPaise {
			return &ConsistencyViolation{Reason: fmt.Sprintf("installment %d paid amount exceeds its amount", i+1)}
		}
		if inst.Paid && inst.PaidAmountPaise != 0 {
			return &ConsistencyViolation{Reason: fmt.Sprintf("installment %d is paid but carries a partial amount", i+1)}
		}
		sum += inst.AmountPaise
	}
	if l.AdvancePaymentPaise < 0 {
		return &ConsistencyViolation{Reason: "advance payment is negative"}
	}
	if l.RemainingFeesPaise < 0 {
		return &ConsistencyViolation{Reason: "remaining fees is negative"}
	}
	return nil
}

func (l *Ledger) clone() *Ledger {
	next := *l
	next.Installments = make([]Installment, len(l.Installments))
	copy(next.Installments, l.Installments)
	return &next
}

// generateSchedule builds n installments of floor(total/n) paise each,
// with the division remainder added to the first so the sum equals the
// total exactly. Due dates fall one calendar month apart starting at the
// joining date. Paid state from a prior schedule is preserved by index;
// a partial payment that no longer fits its regenerated installment is
// an error, never dropped.
func generateSchedule(totalPaise int64, n int, joiningDate time.Time, prior []Installment) ([]Installment, error) {
	per := totalPaise / int64(n)
	remainder := totalPaise % int64(n)

	installments := make([]Installment, n)
	for i := 0; i < n; i++ {
		amount := per
		if i == 0 {
			amount += remainder
		}
		installments[i] = Installment{
			AmountPaise: amount,
			DueDate:     joiningDate.AddDate(0, i, 0),
		}
		if i < len(prior) {
			installments[i].Paid = prior[i].Paid
			installments[i].PaymentDate = prior[i].PaymentDate
			installments[i].Notes = prior[i].Notes
			if !prior[i].Paid {
				if prior[i].PaidAmountPaise > amount {
					return nil, &ConsistencyViolation{Reason: fmt.Sprintf(
						"installment %d holds a partial payment of %s, larger than its regenerated amount %s",
						i+1, rupees(prior[i].PaidAmountPaise), rupees(amount),
					)}
				}
				installments[i].PaidAmountPaise = prior[i].PaidAmountPaise
			}
		}
	}
	return installments, nil
}

func rupees(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	return fmt.Sprintf("%sRs. %d.%02d", sign, paise/100, paise%100)
}
