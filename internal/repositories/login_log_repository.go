package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"institute-backend/internal/models"
)

type LoginLogRepository struct {
	DB *pgxpool.Pool
}

func NewLoginLogRepository(db *pgxpool.Pool) *LoginLogRepository {
	return &LoginLogRepository{DB: db}
}

func (r *LoginLogRepository) Create(ctx context.Context, l *models.LoginLog) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO login_logs(actor_type, actor_id, login_time, ip_address, user_agent)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at`,
		l.ActorType, l.ActorID, l.LoginTime, l.IPAddress, l.UserAgent,
	).Scan(&l.ID, &l.CreatedAt)
}

func (r *LoginLogRepository) ListRecent(ctx context.Context, limit int) ([]*models.LoginLog, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, actor_type, actor_id, login_time, COALESCE(ip_address, ''), COALESCE(user_agent, ''), created_at
         FROM login_logs ORDER BY login_time DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.LoginLog
	for rows.Next() {
		var l models.LoginLog
		if err := rows.Scan(&l.ID, &l.ActorType, &l.ActorID, &l.LoginTime,
			&l.IPAddress, &l.UserAgent, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
