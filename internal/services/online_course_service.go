package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"institute-backend/internal/models"
	"institute-backend/internal/repositories"
)

// onlineCourses lists the courses open for signup through the public
// form. Kept separate from the certification catalog on purpose.
var onlineCourses = []string{"VN Video editing"}

type OnlineCourseService struct {
	Repo *repositories.OnlineCourseRepository
}

func NewOnlineCourseService(repo *repositories.OnlineCourseRepository) *OnlineCourseService {
	return &OnlineCourseService{Repo: repo}
}

// Register captures one signup. Email addresses are lowercased and must
// be unique across all registrations.
func (s *OnlineCourseService) Register(ctx context.Context, req *models.OnlineCourseRegisterRequest) (*models.OnlineCourseRegistration, error) {
	if err := validateOnlineCourseRequest(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.Repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("email address is already registered")
	}

	reg := &models.OnlineCourseRegistration{
		Name:       strings.TrimSpace(req.Name),
		FatherName: strings.TrimSpace(req.FatherName),
		Phone:      strings.TrimSpace(req.Phone),
		Email:      email,
		Course:     req.Course,
	}
	if err := s.Repo.Create(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *OnlineCourseService) List(ctx context.Context) ([]*models.OnlineCourseRegistration, error) {
	return s.Repo.List(ctx)
}

func validateOnlineCourseRequest(req *models.OnlineCourseRegisterRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(req.FatherName) == "" {
		return errors.New("father's name is required")
	}
	if !phonePattern.MatchString(strings.TrimSpace(req.Phone)) {
		return errors.New("phone number must be 10 digits")
	}
	if !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
		return errors.New("invalid email address")
	}
	for _, c := range onlineCourses {
		if req.Course == c {
			return nil
		}
	}
	return fmt.Errorf("course %q is not open for online registration", req.Course)
}
