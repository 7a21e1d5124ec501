package models

import "time"

// OnlineCourseRegistration is a signup captured from the public online
// course form. These are leads, not enrolled students.
type OnlineCourseRegistration struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	FatherName string    `json:"father_name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Course     string    `json:"course"`
	CreatedAt  time.Time `json:"created_at"`
}

// OnlineCourseRegisterRequest represents the public registration form body
type OnlineCourseRegisterRequest struct {
	Name       string `json:"name"`
	FatherName string `json:"father_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Course     string `json:"course"`
}
