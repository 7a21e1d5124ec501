package models

import "time"

type Staff struct {
	ID          int       `json:"id"`
	StaffID     string    `json:"staff_id"`
	Name        string    `json:"name"`
	Designation string    `json:"designation"`
	DateOfBirth time.Time `json:"date_of_birth"`
	JoiningDate time.Time `json:"joining_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// VerifyStaffRequest is the public staff verification body
type VerifyStaffRequest struct {
	StaffID     string `json:"staff_id"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
}
