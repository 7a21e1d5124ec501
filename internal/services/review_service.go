package services

import (
	"context"
	"encoding/json"
	"errors"

	"institute-backend/internal/cache"
	"institute-backend/internal/models"
	"institute-backend/internal/repositories"
)

type ReviewService struct {
	Repo        *repositories.ReviewRepository
	StudentRepo *repositories.StudentRepository
}

func NewReviewService(repo *repositories.ReviewRepository, studentRepo *repositories.StudentRepository) *ReviewService {
	return &ReviewService{Repo: repo, StudentRepo: studentRepo}
}

func (s *ReviewService) Create(ctx context.Context, studentID int, req *models.CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}

	student, err := s.StudentRepo.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		StudentID: studentID,
		Name:      student.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.Repo.Create(ctx, review); err != nil {
		return nil, err
	}

	cache.InvalidateReviewList(ctx)
	return review, nil
}

// List returns all reviews, served from Redis when cached
func (s *ReviewService) List(ctx context.Context) ([]*models.Review, error) {
	if cached, ok := cache.GetReviewList(ctx); ok {
		var reviews []*models.Review
		if json.Unmarshal(cached, &reviews) == nil {
			return reviews, nil
		}
	}

	reviews, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(reviews); err == nil {
		cache.CacheReviewList(ctx, payload)
	}
	return reviews, nil
}
