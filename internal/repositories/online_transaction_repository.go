package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"institute-backend/internal/models"
)

type OnlineTransactionRepository struct {
	DB *pgxpool.Pool
}

func NewOnlineTransactionRepository(db *pgxpool.Pool) *OnlineTransactionRepository {
	return &OnlineTransactionRepository{DB: db}
}

func (r *OnlineTransactionRepository) Create(ctx context.Context, tx *models.OnlineTransaction) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO online_transactions(razorpay_order_id, student_id, roll_no, student_name,
             amount_paise, status)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at`,
		tx.RazorpayOrderID, tx.StudentID, tx.RollNo, tx.StudentName,
		tx.AmountPaise, tx.Status,
	).Scan(&tx.ID, &tx.CreatedAt)
}

func (r *OnlineTransactionRepository) GetByOrderID(ctx context.Context, orderID string) (*models.OnlineTransaction, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, razorpay_order_id, COALESCE(razorpay_payment_id, ''), student_id, roll_no,
                student_name, amount_paise, COALESCE(payment_method, ''), COALESCE(bank, ''),
                COALESCE(vpa, ''), status, COALESCE(failure_reason, ''), created_at, completed_at
         FROM online_transactions WHERE razorpay_order_id=$1`, orderID)

	var tx models.OnlineTransaction
	err := row.Scan(&tx.ID, &tx.RazorpayOrderID, &tx.RazorpayPaymentID, &tx.StudentID, &tx.RollNo,
		&tx.StudentName, &tx.AmountPaise, &tx.PaymentMethod, &tx.Bank, &tx.VPA,
		&tx.Status, &tx.FailureReason, &tx.CreatedAt, &tx.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// MarkSuccess records the captured payment details and completion time
func (r *OnlineTransactionRepository) MarkSuccess(ctx context.Context, orderID, paymentID, method, bank, vpa string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE online_transactions
         SET razorpay_payment_id=$2, payment_method=$3, bank=$4, vpa=$5,
             status='success', completed_at=CURRENT_TIMESTAMP
         WHERE razorpay_order_id=$1`, orderID, paymentID, method, bank, vpa)
	return err
}

func (r *OnlineTransactionRepository) MarkFailed(ctx context.Context, orderID, reason string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE online_transactions
         SET status='failed', failure_reason=$2, completed_at=CURRENT_TIMESTAMP
         WHERE razorpay_order_id=$1`, orderID, reason)
	return err
}

func (r *OnlineTransactionRepository) ListByStudent(ctx context.Context, studentID int) ([]*models.OnlineTransaction, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, razorpay_order_id, COALESCE(razorpay_payment_id, ''), student_id, roll_no,
                student_name, amount_paise, COALESCE(payment_method, ''), COALESCE(bank, ''),
                COALESCE(vpa, ''), status, COALESCE(failure_reason, ''), created_at, completed_at
         FROM online_transactions WHERE student_id=$1 ORDER BY created_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.OnlineTransaction
	for rows.Next() {
		var tx models.OnlineTransaction
		if err := rows.Scan(&tx.ID, &tx.RazorpayOrderID, &tx.RazorpayPaymentID, &tx.StudentID,
			&tx.RollNo, &tx.StudentName, &tx.AmountPaise, &tx.PaymentMethod, &tx.Bank, &tx.VPA,
			&tx.Status, &tx.FailureReason, &tx.CreatedAt, &tx.CompletedAt); err != nil {
			return nil, err
		}
		list = append(list, &tx)
	}
	return list, rows.Err()
}
