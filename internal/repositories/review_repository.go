package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"institute-backend/internal/models"
)

type ReviewRepository struct {
	DB *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rev *models.Review) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO reviews(student_id, name, rating, comment)
         VALUES($1, $2, $3, $4)
         RETURNING id, created_at`,
		rev.StudentID, rev.Name, rev.Rating, rev.Comment,
	).Scan(&rev.ID, &rev.CreatedAt)
}

func (r *ReviewRepository) List(ctx context.Context) ([]*models.Review, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, student_id, name, rating, COALESCE(comment, ''), created_at
         FROM reviews ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		var rev models.Review
		if err := rows.Scan(&rev.ID, &rev.StudentID, &rev.Name, &rev.Rating,
			&rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, &rev)
	}
	return reviews, rows.Err()
}
