package models

import "time"

type Student struct {
	ID                 int       `json:"id"`
	RollNo             string    `json:"roll_no"`
	Name               string    `json:"name"`
	FatherName         string    `json:"father_name"`
	MotherName         string    `json:"mother_name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	AadharNumber       string    `json:"-"` // Never expose in JSON
	DateOfBirth        time.Time `json:"date_of_birth"`
	Gender             string    `json:"gender"`
	Qualification      string    `json:"qualification"`
	Address            string    `json:"address"`
	Course             string    `json:"course"`
	Duration           string    `json:"duration"`
	CertificationTitle string    `json:"certification_title"`
	JoiningDate        time.Time `json:"joining_date"`
	PasswordHash       string    `json:"-"`

	// Fee ledger state, persisted alongside the student row.
	TotalFeesPaise      int64 `json:"total_fees_paise"`
	InstallmentCount    int   `json:"installment_count"`
	AdvancePaymentPaise int64 `json:"advance_payment_paise"`
	RemainingFeesPaise  int64 `json:"remaining_fees_paise"`
	FeeVersion          int   `json:"-"`

	CertificateApproved bool      `json:"certificate_approved"`
	FinalGrade          string    `json:"final_grade"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// RegisterStudentRequest represents the request body for registering a student
type RegisterStudentRequest struct {
	Name             string `json:"name"`
	FatherName       string `json:"father_name"`
	MotherName       string `json:"mother_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	AadharNumber     string `json:"aadhar_number"`
	DateOfBirth      string `json:"date_of_birth"` // YYYY-MM-DD
	Gender           string `json:"gender"`
	Qualification    string `json:"qualification"`
	Address          string `json:"address"`
	Course           string `json:"course"`
	Duration         string `json:"duration"`
	JoiningDate      string `json:"joining_date"` // YYYY-MM-DD, defaults to today
	Password         string `json:"password"`
	TotalFeesPaise   int64  `json:"total_fees_paise"`
	InstallmentCount int    `json:"installment_count"`
}

// EditStudentRequest represents the request body for editing a student.
// Pointer fields distinguish "not sent" from "set to empty".
type EditStudentRequest struct {
	Name          *string `json:"name,omitempty"`
	FatherName    *string `json:"father_name,omitempty"`
	MotherName    *string `json:"mother_name,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Qualification *string `json:"qualification,omitempty"`
	Address       *string `json:"address,omitempty"`
	Course        *string `json:"course,omitempty"`
	Duration      *string `json:"duration,omitempty"`
}

// StudentLoginRequest represents the student portal login body.
// Identifier may be a roll number, email or phone.
type StudentLoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// StudentAuthResponse represents the response after student login
type StudentAuthResponse struct {
	Token   string   `json:"token"`
	Student *Student `json:"student"`
}

// VerifyStudentRequest is the public certificate verification body
type VerifyStudentRequest struct {
	RollNo      string `json:"roll_no"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
}

// VerifyStudentResponse is the public view of a verified student
type VerifyStudentResponse struct {
	RollNo             string `json:"roll_no"`
	Name               string `json:"name"`
	FatherName         string `json:"father_name"`
	Course             string `json:"course"`
	Duration           string `json:"duration"`
	CertificationTitle string `json:"certification_title"`
	JoiningDate        string `json:"joining_date"`
	FinalGrade         string `json:"final_grade"`
}
