package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"institute-backend/internal/models"
)

type OnlineCourseRepository struct {
	DB *pgxpool.Pool
}

func NewOnlineCourseRepository(db *pgxpool.Pool) *OnlineCourseRepository {
	return &OnlineCourseRepository{DB: db}
}

func (r *OnlineCourseRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM online_course_registrations WHERE email = $1)`,
		email).Scan(&exists)
	return exists, err
}

func (r *OnlineCourseRepository) Create(ctx context.Context, reg *models.OnlineCourseRegistration) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO online_course_registrations(name, father_name, phone, email, course)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at`,
		reg.Name, reg.FatherName, reg.Phone, reg.Email, reg.Course,
	).Scan(&reg.ID, &reg.CreatedAt)
}

func (r *OnlineCourseRepository) List(ctx context.Context) ([]*models.OnlineCourseRegistration, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, father_name, phone, email, course, created_at
         FROM online_course_registrations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.OnlineCourseRegistration
	for rows.Next() {
		var reg models.OnlineCourseRegistration
		if err := rows.Scan(&reg.ID, &reg.Name, &reg.FatherName, &reg.Phone,
			&reg.Email, &reg.Course, &reg.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &reg)
	}
	return list, rows.Err()
}
