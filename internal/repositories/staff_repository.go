package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"institute-backend/internal/models"
)

type StaffRepository struct {
	DB *pgxpool.Pool
}

func NewStaffRepository(db *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{DB: db}
}

func (r *StaffRepository) Create(ctx context.Context, s *models.Staff) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO staff(staff_id, name, designation, date_of_birth, joining_date)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at`,
		s.StaffID, s.Name, s.Designation, s.DateOfBirth, s.JoiningDate,
	).Scan(&s.ID, &s.CreatedAt)
}

// GetByStaffIDAndDOB is the public staff verification lookup
func (r *StaffRepository) GetByStaffIDAndDOB(ctx context.Context, staffID string, dob time.Time) (*models.Staff, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, staff_id, name, designation, date_of_birth, joining_date, created_at
         FROM staff WHERE staff_id=$1 AND date_of_birth=$2`, staffID, dob)

	var s models.Staff
	err := row.Scan(&s.ID, &s.StaffID, &s.Name, &s.Designation, &s.DateOfBirth, &s.JoiningDate, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StaffRepository) List(ctx context.Context) ([]*models.Staff, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, staff_id, name, designation, date_of_birth, joining_date, created_at
         FROM staff ORDER BY joining_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.Staff
	for rows.Next() {
		var s models.Staff
		if err := rows.Scan(&s.ID, &s.StaffID, &s.Name, &s.Designation, &s.DateOfBirth,
			&s.JoiningDate, &s.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
