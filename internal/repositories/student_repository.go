package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"institute-backend/internal/models"
)

type StudentRepository struct {
	DB *pgxpool.Pool
}

func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{DB: db}
}

const studentColumns = `id, roll_no, name, father_name, mother_name, email, phone, aadhar_number,
        date_of_birth, gender, qualification, address, course, duration, certification_title,
        joining_date, password_hash, total_fees_paise, installment_count, advance_payment_paise,
        remaining_fees_paise, fee_version, certificate_approved, final_grade, created_at, updated_at`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(&s.ID, &s.RollNo, &s.Name, &s.FatherName, &s.MotherName, &s.Email, &s.Phone,
		&s.AadharNumber, &s.DateOfBirth, &s.Gender, &s.Qualification, &s.Address, &s.Course,
		&s.Duration, &s.CertificationTitle, &s.JoiningDate, &s.PasswordHash, &s.TotalFeesPaise,
		&s.InstallmentCount, &s.AdvancePaymentPaise, &s.RemainingFeesPaise, &s.FeeVersion,
		&s.CertificateApproved, &s.FinalGrade, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts the student and assigns a roll number of the form YYYYNNN,
// where YYYY is the joining year and NNN is a per-year sequence. The sequence
// scan and insert run in one transaction so concurrent registrations cannot
// allocate the same roll number.
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Roll numbers restart at 001 each admission year. The counter row is
	// bumped atomically so concurrent registrations cannot collide.
	year := s.JoiningDate.Year()
	var seq int
	err = tx.QueryRow(ctx,
		`INSERT INTO roll_sequences(year, last_seq) VALUES($1, 1)
         ON CONFLICT (year) DO UPDATE SET last_seq = roll_sequences.last_seq + 1
         RETURNING last_seq`, year,
	).Scan(&seq)
	if err != nil {
		return err
	}
	s.RollNo = fmt.Sprintf("%d%03d", year, seq)

	err = tx.QueryRow(ctx,
		`INSERT INTO students(roll_no, name, father_name, mother_name, email, phone, aadhar_number,
             date_of_birth, gender, qualification, address, course, duration, certification_title,
             joining_date, password_hash, total_fees_paise, installment_count,
             advance_payment_paise, remaining_fees_paise)
         VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
         RETURNING id, fee_version, certificate_approved, final_grade, created_at, updated_at`,
		s.RollNo, s.Name, s.FatherName, s.MotherName, s.Email, s.Phone, s.AadharNumber,
		s.DateOfBirth, s.Gender, s.Qualification, s.Address, s.Course, s.Duration,
		s.CertificationTitle, s.JoiningDate, s.PasswordHash, s.TotalFeesPaise,
		s.InstallmentCount, s.AdvancePaymentPaise, s.RemainingFeesPaise,
	).Scan(&s.ID, &s.FeeVersion, &s.CertificateApproved, &s.FinalGrade, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *StudentRepository) Get(ctx context.Context, id int) (*models.Student, error) {
	return scanStudent(r.DB.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id=$1`, id))
}

func (r *StudentRepository) GetByRollNo(ctx context.Context, rollNo string) (*models.Student, error) {
	return scanStudent(r.DB.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE roll_no=$1`, rollNo))
}

// GetByIdentifier resolves a roll number, email or phone to a student
func (r *StudentRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.Student, error) {
	return scanStudent(r.DB.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students
         WHERE roll_no=$1 OR email=$1 OR phone=$1`, identifier))
}

// FindDuplicateField reports which unique field an existing student already
// uses, or "" when none clash.
func (r *StudentRepository) FindDuplicateField(ctx context.Context, email, phone, aadhar string) (string, error) {
	var field string
	err := r.DB.QueryRow(ctx,
		`SELECT CASE
             WHEN email=$1 THEN 'email'
             WHEN phone=$2 THEN 'phone'
             ELSE 'aadhar_number'
         END
         FROM students WHERE email=$1 OR phone=$2 OR aadhar_number=$3
         LIMIT 1`, email, phone, aadhar).Scan(&field)
	if err == pgx.ErrNoRows {
		return "", nil
	}
	return field, err
}

func (r *StudentRepository) Update(ctx context.Context, s *models.Student) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE students SET name=$1, father_name=$2, mother_name=$3, email=$4, phone=$5,
             qualification=$6, address=$7, course=$8, duration=$9, certification_title=$10,
             updated_at=CURRENT_TIMESTAMP
         WHERE id=$11`,
		s.Name, s.FatherName, s.MotherName, s.Email, s.Phone, s.Qualification, s.Address,
		s.Course, s.Duration, s.CertificationTitle, s.ID)
	return err
}

func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+studentColumns+` FROM students ORDER BY roll_no`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// Search matches name, roll number or phone against a single query string
func (r *StudentRepository) Search(ctx context.Context, query string) ([]*models.Student, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+studentColumns+` FROM students
         WHERE name ILIKE '%' || $1 || '%' OR roll_no ILIKE '%' || $1 || '%' OR phone LIKE '%' || $1 || '%'
         ORDER BY roll_no`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// VerifyByRollAndDOB is the public certificate verification lookup
func (r *StudentRepository) VerifyByRollAndDOB(ctx context.Context, rollNo string, dob time.Time) (*models.Student, error) {
	return scanStudent(r.DB.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students
         WHERE roll_no=$1 AND date_of_birth=$2`, rollNo, dob))
}

func (r *StudentRepository) SetCertificateApproved(ctx context.Context, id int, approved bool) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE students SET certificate_approved=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		approved, id)
	return err
}

func (r *StudentRepository) UpdateFinalGrade(ctx context.Context, id int, grade string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE students SET final_grade=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		grade, id)
	return err
}

// DashboardStats aggregates the counters shown on the admin dashboard
func (r *StudentRepository) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*),
                COUNT(*) FILTER (WHERE remaining_fees_paise = 0),
                COUNT(*) FILTER (WHERE NOT certificate_approved),
                COALESCE(SUM(total_fees_paise), 0),
                COALESCE(SUM(total_fees_paise - remaining_fees_paise), 0),
                COALESCE(SUM(remaining_fees_paise), 0)
         FROM students`).Scan(
		&stats.TotalStudents, &stats.FullyPaidStudents, &stats.PendingCertificates,
		&stats.TotalFeesPaise, &stats.CollectedPaise, &stats.OutstandingPaise)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
