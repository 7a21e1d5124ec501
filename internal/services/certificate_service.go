package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"institute-backend/internal/metrics"
	"institute-backend/internal/models"
	"institute-backend/internal/timeutil"
)

type CertificateService struct {
	ExamService   *ExamService
	FeeService    *FeeService
	InstituteName string
	VerifyURL     string
}

func NewCertificateService(examService *ExamService, feeService *FeeService,
	instituteName, verifyURL string) *CertificateService {
	return &CertificateService{
		ExamService:   examService,
		FeeService:    feeService,
		InstituteName: instituteName,
		VerifyURL:     verifyURL,
	}
}

// checkEligibility enforces the gates for certificate issue: admin
// approval, a cleared fee ledger and a passing, complete marksheet.
func (s *CertificateService) checkEligibility(ctx context.Context, student *models.Student) (*models.ExamSummaryResponse, error) {
	if !student.CertificateApproved {
		return nil, errors.New("certificate has not been approved yet")
	}

	fees, err := s.FeeService.GetFeeDetails(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	exam, err := s.ExamService.Summary(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	if err := eligibilityGate(fees, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func eligibilityGate(fees *models.FeeDetailsResponse, exam *models.ExamSummaryResponse) error {
	if fees.RemainingFeesPaise > 0 {
		return fmt.Errorf("fees pending: %s remaining", formatRupees(fees.RemainingFeesPaise))
	}
	if !exam.Complete {
		return errors.New("marks have not been entered for all subjects")
	}
	if exam.FinalGrade == "F" {
		return errors.New("final grade F does not qualify for a certificate")
	}
	return nil
}

// GenerateCertificate renders the completion certificate PDF
func (s *CertificateService) GenerateCertificate(ctx context.Context, student *models.Student) ([]byte, error) {
	exam, err := s.checkEligibility(ctx, student)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetLineWidth(1.2)
	pdf.Rect(8, 8, 281, 194, "D")
	pdf.SetLineWidth(0.3)
	pdf.Rect(11, 11, 275, 188, "D")

	pdf.SetY(24)
	pdf.SetFont("Times", "B", 26)
	pdf.CellFormat(277, 12, s.InstituteName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(277, 6, fmt.Sprintf("Verify at %s", s.VerifyURL), "", 1, "C", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Times", "BI", 20)
	pdf.CellFormat(277, 10, "CERTIFICATE OF COMPLETION", "", 1, "C", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Arial", "", 13)
	pdf.CellFormat(277, 8, "This is to certify that", "", 1, "C", false, 0, "")
	pdf.SetFont("Times", "B", 18)
	pdf.CellFormat(277, 10, student.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 13)
	pdf.CellFormat(277, 8, fmt.Sprintf("S/o / D/o %s", student.FatherName), "", 1, "C", false, 0, "")
	pdf.CellFormat(277, 8, "has successfully completed the course", "", 1, "C", false, 0, "")
	pdf.SetFont("Times", "B", 16)
	pdf.CellFormat(277, 10, student.CertificationTitle, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 13)
	pdf.CellFormat(277, 8,
		fmt.Sprintf("of %s duration with grade %s", student.Duration, exam.FinalGrade),
		"", 1, "C", false, 0, "")

	pdf.Ln(14)
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(138, 7, fmt.Sprintf("Roll No: %s", student.RollNo), "", 0, "L", false, 0, "")
	pdf.CellFormat(139, 7, fmt.Sprintf("Date of Issue: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "R", false, 0, "")
	pdf.Ln(10)
	pdf.CellFormat(138, 7, "__________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(139, 7, "__________________", "", 1, "R", false, 0, "")
	pdf.CellFormat(138, 6, "Examination Controller", "", 0, "L", false, 0, "")
	pdf.CellFormat(139, 6, "Director", "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	metrics.CertificatesGenerated.Inc()
	return buf.Bytes(), nil
}

// GenerateMarksStatement renders the statement of marks PDF
func (s *CertificateService) GenerateMarksStatement(ctx context.Context, student *models.Student) ([]byte, error) {
	exam, err := s.checkEligibility(ctx, student)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Times", "B", 18)
	pdf.CellFormat(190, 10, s.InstituteName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(190, 5, fmt.Sprintf("Verify at %s", s.VerifyURL), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(190, 8, "STATEMENT OF MARKS", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", student.Name), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Roll No: %s", student.RollNo), "", 1, "R", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Father's Name: %s", student.FatherName), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Course: %s", student.CertificationTitle), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFillColor(230, 230, 230)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(20, 8, "Code", "1", 0, "C", true, 0, "")
	pdf.CellFormat(80, 8, "Subject", "1", 0, "C", true, 0, "")
	pdf.CellFormat(22, 8, "Max Marks", "1", 0, "C", true, 0, "")
	pdf.CellFormat(22, 8, "Min Marks", "1", 0, "C", true, 0, "")
	pdf.CellFormat(23, 8, "Theory", "1", 0, "C", true, 0, "")
	pdf.CellFormat(23, 8, "Practical", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, subject := range exam.Subjects {
		pdf.CellFormat(20, 7, subject.SubjectCode, "1", 0, "C", false, 0, "")
		pdf.CellFormat(80, 7, subject.SubjectName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(22, 7, fmt.Sprintf("%d", subject.MaxTheory+subject.MaxPractical), "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 7, fmt.Sprintf("%d", subject.MinMarks), "1", 0, "C", false, 0, "")
		pdf.CellFormat(23, 7, fmt.Sprintf("%d", *subject.TheoryMarks), "1", 0, "C", false, 0, "")
		pdf.CellFormat(23, 7, fmt.Sprintf("%d", *subject.PracticalMarks), "1", 1, "C", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(122, 8, "Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(68, 8, fmt.Sprintf("%d / %d", exam.TotalObtained, exam.TotalMax), "1", 1, "C", true, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Average: %.2f", exam.Average), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Grade: %s", exam.FinalGrade), "", 1, "R", false, 0, "")
	pdf.CellFormat(190, 7, fmt.Sprintf("Issued: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	metrics.CertificatesGenerated.Inc()
	return buf.Bytes(), nil
}

// formatRupees renders paise as a rupee string for display
func formatRupees(paise int64) string {
	return fmt.Sprintf("Rs. %d.%02d", paise/100, paise%100)
}
