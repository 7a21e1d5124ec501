package models

import "time"

type Review struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"` // 1 to 5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateReviewRequest represents the request body for posting a review
type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
