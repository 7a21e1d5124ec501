package models

import "time"

type ExamResult struct {
	ID             int       `json:"id"`
	StudentID      int       `json:"student_id"`
	SubjectCode    string    `json:"subject_code"`
	TheoryMarks    int       `json:"theory_marks"`
	PracticalMarks int       `json:"practical_marks"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SubmitMarksRequest records marks for one subject of one student
type SubmitMarksRequest struct {
	SubjectCode    string `json:"subject_code"`
	TheoryMarks    int    `json:"theory_marks"`
	PracticalMarks int    `json:"practical_marks"`
}

// SubjectResultView is one row of a marks statement
type SubjectResultView struct {
	SubjectCode    string `json:"subject_code"`
	SubjectName    string `json:"subject_name"`
	MaxTheory      int    `json:"max_theory"`
	MaxPractical   int    `json:"max_practical"`
	MinMarks       int    `json:"min_marks"`
	TheoryMarks    *int   `json:"theory_marks"`
	PracticalMarks *int   `json:"practical_marks"`
	ObtainedMarks  *int   `json:"obtained_marks"`
}

// ExamSummaryResponse is the per-student exam overview
type ExamSummaryResponse struct {
	StudentID          int                 `json:"student_id"`
	RollNo             string              `json:"roll_no"`
	CertificationTitle string              `json:"certification_title"`
	Subjects           []SubjectResultView `json:"subjects"`
	TotalObtained      int                 `json:"total_obtained"`
	TotalMax           int                 `json:"total_max"`
	Average            float64             `json:"average"`
	FinalGrade         string              `json:"final_grade"`
	Complete           bool                `json:"complete"`
}
