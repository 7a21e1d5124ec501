package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"institute-backend/internal/models"
	"institute-backend/internal/repositories"
	"institute-backend/internal/timeutil"
)

type StaffService struct {
	Repo *repositories.StaffRepository
}

func NewStaffService(repo *repositories.StaffRepository) *StaffService {
	return &StaffService{Repo: repo}
}

// Verify is the public staff verification by staff ID and date of birth
func (s *StaffService) Verify(ctx context.Context, req *models.VerifyStaffRequest) (*models.Staff, error) {
	if req.StaffID == "" {
		return nil, errors.New("staff_id is required")
	}
	dob, err := timeutil.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, errors.New("date_of_birth must be YYYY-MM-DD")
	}

	staff, err := s.Repo.GetByStaffIDAndDOB(ctx, req.StaffID, dob)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("no matching staff member found")
		}
		return nil, err
	}
	return staff, nil
}

func (s *StaffService) List(ctx context.Context) ([]*models.Staff, error) {
	return s.Repo.List(ctx)
}
