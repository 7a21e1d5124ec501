package services

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"

	"institute-backend/internal/auth"
	"institute-backend/internal/models"
	"institute-backend/internal/repositories"
	"institute-backend/internal/timeutil"
)

type UserService struct {
	Repo         *repositories.UserRepository
	StudentRepo  *repositories.StudentRepository
	LoginLogRepo *repositories.LoginLogRepository
	JWTManager   *auth.JWTManager
}

func NewUserService(repo *repositories.UserRepository, studentRepo *repositories.StudentRepository,
	loginLogRepo *repositories.LoginLogRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{Repo: repo, StudentRepo: studentRepo, LoginLogRepo: loginLogRepo, JWTManager: jwtManager}
}

func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	if req.Name == "" || req.Email == "" {
		return nil, errors.New("name and email are required")
	}
	if len(req.Password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}

	if _, err := s.Repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errors.New("email already registered")
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         "admin",
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.JWTManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest, ip, userAgent string) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, errors.New("email and password are required")
	}

	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("invalid credentials")
		}
		return nil, err
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, errors.New("invalid credentials")
	}

	token, err := s.JWTManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	// Login logging is best effort
	logEntry := &models.LoginLog{
		ActorType: "admin",
		ActorID:   user.ID,
		LoginTime: timeutil.Now(),
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := s.LoginLogRepo.Create(ctx, logEntry); err != nil {
		log.Printf("failed to record login for user %d: %v", user.ID, err)
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}

// RecordStudentLogin logs a student portal login, best effort
func (s *UserService) RecordStudentLogin(ctx context.Context, studentID int, ip, userAgent string) {
	logEntry := &models.LoginLog{
		ActorType: "student",
		ActorID:   studentID,
		LoginTime: timeutil.Now(),
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := s.LoginLogRepo.Create(ctx, logEntry); err != nil {
		log.Printf("failed to record login for student %d: %v", studentID, err)
	}
}

func (s *UserService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	return s.StudentRepo.DashboardStats(ctx)
}

func (s *UserService) RecentLogins(ctx context.Context, limit int) ([]*models.LoginLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.LoginLogRepo.ListRecent(ctx, limit)
}
