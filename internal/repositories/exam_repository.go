package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"institute-backend/internal/models"
)

type ExamRepository struct {
	DB *pgxpool.Pool
}

func NewExamRepository(db *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{DB: db}
}

// Upsert records marks for one subject, replacing any earlier entry
func (r *ExamRepository) Upsert(ctx context.Context, res *models.ExamResult) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO exam_results(student_id, subject_code, theory_marks, practical_marks)
         VALUES($1,$2,$3,$4)
         ON CONFLICT (student_id, subject_code)
         DO UPDATE SET theory_marks=$3, practical_marks=$4, updated_at=CURRENT_TIMESTAMP
         RETURNING id, created_at, updated_at`,
		res.StudentID, res.SubjectCode, res.TheoryMarks, res.PracticalMarks,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
}

func (r *ExamRepository) ListByStudent(ctx context.Context, studentID int) ([]*models.ExamResult, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, student_id, subject_code, theory_marks, practical_marks, created_at, updated_at
         FROM exam_results WHERE student_id=$1 ORDER BY subject_code`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.ExamResult
	for rows.Next() {
		var res models.ExamResult
		if err := rows.Scan(&res.ID, &res.StudentID, &res.SubjectCode, &res.TheoryMarks,
			&res.PracticalMarks, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, err
		}
		results = append(results, &res)
	}
	return results, rows.Err()
}
