package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"institute-backend/internal/feeledger"
	"institute-backend/internal/models"
)

// ErrVersionConflict is returned when a concurrent mutation bumped the
// student's fee_version between load and save.
var ErrVersionConflict = errors.New("fee ledger was modified concurrently")

type FeeRepository struct {
	DB *pgxpool.Pool
}

func NewFeeRepository(db *pgxpool.Pool) *FeeRepository {
	return &FeeRepository{DB: db}
}

// LoadLedger reads the full ledger state for one student along with the
// fee_version used for the compare-and-swap on save.
func (r *FeeRepository) LoadLedger(ctx context.Context, studentID int) (*feeledger.Ledger, int, error) {
	var l feeledger.Ledger
	var version int
	err := r.DB.QueryRow(ctx,
		`SELECT total_fees_paise, installment_count, advance_payment_paise,
                remaining_fees_paise, joining_date, fee_version
         FROM students WHERE id=$1`, studentID).Scan(
		&l.TotalFeesPaise, &l.InstallmentCount, &l.AdvancePaymentPaise,
		&l.RemainingFeesPaise, &l.JoiningDate, &version)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT amount_paise, due_date, paid, paid_amount_paise, payment_date, COALESCE(notes, '')
         FROM fee_installments WHERE student_id=$1 ORDER BY position`, studentID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var inst feeledger.Installment
		if err := rows.Scan(&inst.AmountPaise, &inst.DueDate, &inst.Paid,
			&inst.PaidAmountPaise, &inst.PaymentDate, &inst.Notes); err != nil {
			return nil, 0, err
		}
		l.Installments = append(l.Installments, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return &l, version, nil
}

// SaveLedger persists a mutated ledger and its audit entry atomically.
// The students row is updated with a fee_version compare-and-swap; when the
// version moved the whole transaction rolls back and ErrVersionConflict is
// returned so the caller can reload and retry.
func (r *FeeRepository) SaveLedger(ctx context.Context, studentID, version int, l *feeledger.Ledger, entry *feeledger.AuditEntry) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE students SET total_fees_paise=$1, installment_count=$2, advance_payment_paise=$3,
             remaining_fees_paise=$4, fee_version=fee_version+1, updated_at=CURRENT_TIMESTAMP
         WHERE id=$5 AND fee_version=$6`,
		l.TotalFeesPaise, l.InstallmentCount, l.AdvancePaymentPaise,
		l.RemainingFeesPaise, studentID, version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionConflict
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM fee_installments WHERE student_id=$1`, studentID); err != nil {
		return err
	}
	for i, inst := range l.Installments {
		if _, err := tx.Exec(ctx,
			`INSERT INTO fee_installments(student_id, position, amount_paise, due_date, paid,
                 paid_amount_paise, payment_date, notes)
             VALUES($1,$2,$3,$4,$5,$6,$7,$8)`,
			studentID, i, inst.AmountPaise, inst.DueDate, inst.Paid,
			inst.PaidAmountPaise, inst.PaymentDate, inst.Notes); err != nil {
			return err
		}
	}

	if entry != nil {
		prior, err := json.Marshal(entry.Prior)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO fee_audit_log(student_id, actor_id, description, prior_state, created_at)
             VALUES($1,$2,$3,$4,$5)`,
			studentID, entry.ActorID, entry.Description, prior, entry.At); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ListAudit returns the audit trail for one student, newest first
func (r *FeeRepository) ListAudit(ctx context.Context, studentID int) ([]*models.FeeAuditEntry, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, student_id, actor_id, description, prior_state, created_at
         FROM fee_audit_log WHERE student_id=$1 ORDER BY created_at DESC, id DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.FeeAuditEntry
	for rows.Next() {
		var e models.FeeAuditEntry
		var prior []byte
		if err := rows.Scan(&e.ID, &e.StudentID, &e.ActorID, &e.Description, &prior, &e.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(prior, &e.Prior); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// ListSummaries returns the fee overview rows, optionally only students who
// still owe money.
func (r *FeeRepository) ListSummaries(ctx context.Context, incompleteOnly bool) ([]*models.FeeSummaryRow, error) {
	// Advance only accrues once every installment is settled, so adding
	// it back onto total - remaining reproduces the ledger's total paid.
	query := `SELECT id, roll_no, name, phone, course, total_fees_paise,
                     total_fees_paise - remaining_fees_paise + advance_payment_paise,
                     remaining_fees_paise, advance_payment_paise
              FROM students`
	if incompleteOnly {
		query += ` WHERE remaining_fees_paise > 0`
	}
	query += ` ORDER BY roll_no`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.FeeSummaryRow
	for rows.Next() {
		var row models.FeeSummaryRow
		if err := rows.Scan(&row.StudentID, &row.RollNo, &row.Name, &row.Phone, &row.Course,
			&row.TotalFeesPaise, &row.TotalPaidPaise, &row.RemainingFeesPaise,
			&row.AdvancePaymentPaise); err != nil {
			return nil, err
		}
		switch {
		case row.RemainingFeesPaise == 0:
			row.PaymentStatus = feeledger.StatusFullyPaid
		case row.TotalPaidPaise == 0:
			row.PaymentStatus = feeledger.StatusNotPaid
		default:
			row.PaymentStatus = feeledger.StatusPartiallyPaid
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// ListDefaulters returns students with at least one unpaid installment due on
// or before the given date.
func (r *FeeRepository) ListDefaulters(ctx context.Context, asOf string) ([]*models.Defaulter, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT s.id, s.roll_no, s.name, s.phone, s.course,
                COALESCE(SUM(i.amount_paise - i.paid_amount_paise), 0),
                s.remaining_fees_paise,
                TO_CHAR(MIN(i.due_date), 'YYYY-MM-DD')
         FROM students s
         JOIN fee_installments i ON i.student_id = s.id
         WHERE NOT i.paid AND i.due_date <= $1::date
         GROUP BY s.id
         ORDER BY MIN(i.due_date)`, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.Defaulter
	for rows.Next() {
		var d models.Defaulter
		if err := rows.Scan(&d.StudentID, &d.RollNo, &d.Name, &d.Phone, &d.Course,
			&d.OverduePaise, &d.RemainingFeesPaise, &d.OldestDueDate); err != nil {
			return nil, err
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
