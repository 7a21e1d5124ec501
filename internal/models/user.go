package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         string    `json:"role"` // admin or user
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SignupRequest represents the request body for admin signup
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for admin login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// DashboardStats is the admin dashboard overview
type DashboardStats struct {
	TotalStudents       int   `json:"total_students"`
	FullyPaidStudents   int   `json:"fully_paid_students"`
	PendingCertificates int   `json:"pending_certificates"`
	TotalFeesPaise      int64 `json:"total_fees_paise"`
	CollectedPaise      int64 `json:"collected_paise"`
	OutstandingPaise    int64 `json:"outstanding_paise"`
}
