package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sync"

	"github.com/jung-kurt/gofpdf/v2"

	"institute-backend/internal/models"
	"institute-backend/internal/repositories"
	"institute-backend/internal/timeutil"
)

type ReportService struct {
	FeeRepo       *repositories.FeeRepository
	StudentRepo   *repositories.StudentRepository
	InstituteName string
}

func NewReportService(feeRepo *repositories.FeeRepository, studentRepo *repositories.StudentRepository,
	instituteName string) *ReportService {
	return &ReportService{FeeRepo: feeRepo, StudentRepo: studentRepo, InstituteName: instituteName}
}

// DefaulterReport lists students with overdue installments as of the given
// date (YYYY-MM-DD, defaults to today).
func (s *ReportService) DefaulterReport(ctx context.Context, asOf string) ([]*models.Defaulter, error) {
	if asOf == "" {
		asOf = timeutil.Now().Format(timeutil.DateLayout)
	} else if _, err := timeutil.ParseDate(asOf); err != nil {
		return nil, fmt.Errorf("as_of must be YYYY-MM-DD")
	}
	return s.FeeRepo.ListDefaulters(ctx, asOf)
}

// DefaulterReportCSV renders the defaulter list as CSV
func (s *ReportService) DefaulterReportCSV(ctx context.Context, asOf string) ([]byte, error) {
	defaulters, err := s.DefaulterReport(ctx, asOf)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"Roll No", "Name", "Phone", "Course", "Overdue", "Remaining", "Oldest Due Date"})
	for _, d := range defaulters {
		w.Write([]string{
			d.RollNo, d.Name, d.Phone, d.Course,
			formatRupees(d.OverduePaise), formatRupees(d.RemainingFeesPaise), d.OldestDueDate,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DefaulterReportPDF renders the defaulter list as a table PDF
func (s *ReportService) DefaulterReportPDF(ctx context.Context, asOf string) ([]byte, error) {
	defaulters, err := s.DefaulterReport(ctx, asOf)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("%s - Fee Defaulters", s.InstituteName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(22, 7, "Roll No", "1", 0, "C", true, 0, "")
	pdf.CellFormat(48, 7, "Name", "1", 0, "C", true, 0, "")
	pdf.CellFormat(26, 7, "Phone", "1", 0, "C", true, 0, "")
	pdf.CellFormat(34, 7, "Course", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Overdue", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Oldest Due", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	var totalOverdue int64
	for _, d := range defaulters {
		pdf.CellFormat(22, 7, d.RollNo, "1", 0, "C", false, 0, "")
		pdf.CellFormat(48, 7, d.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(26, 7, d.Phone, "1", 0, "C", false, 0, "")
		pdf.CellFormat(34, 7, d.Course, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, formatRupees(d.OverduePaise), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, d.OldestDueDate, "1", 1, "C", false, 0, "")
		totalOverdue += d.OverduePaise
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(130, 7, "Total overdue", "1", 0, "R", true, 0, "")
	pdf.CellFormat(60, 7, formatRupees(totalOverdue), "1", 1, "R", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// StudentLedgerReport is one student's ledger bundled for the bulk report
type StudentLedgerReport struct {
	Student *models.Student
	Details *models.FeeDetailsResponse
}

// CollectLedgerReports loads full ledger details for every defaulter using a
// small worker pool, preserving input order.
func (s *ReportService) CollectLedgerReports(ctx context.Context, defaulters []*models.Defaulter) ([]*StudentLedgerReport, error) {
	type job struct {
		index     int
		studentID int
	}
	type result struct {
		index  int
		report *StudentLedgerReport
		err    error
	}

	jobs := make(chan job, len(defaulters))
	results := make(chan result, len(defaulters))

	var wg sync.WaitGroup
	numWorkers := 5
	if len(defaulters) < numWorkers {
		numWorkers = len(defaulters)
	}
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				student, err := s.StudentRepo.Get(ctx, j.studentID)
				if err != nil {
					results <- result{index: j.index, err: err}
					continue
				}
				ledger, _, err := s.FeeRepo.LoadLedger(ctx, j.studentID)
				if err != nil {
					results <- result{index: j.index, err: err}
					continue
				}
				results <- result{index: j.index, report: &StudentLedgerReport{
					Student: student,
					Details: buildFeeDetails(student, ledger),
				}}
			}
		}()
	}

	for i, d := range defaulters {
		jobs <- job{index: i, studentID: d.StudentID}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	reports := make([]*StudentLedgerReport, len(defaulters))
	for r := range results {
		if r.err != nil {
			return nil, r.err
		}
		reports[r.index] = r.report
	}
	return reports, nil
}

// DefaulterLedgerBookPDF renders the defaulter table followed by one page per
// defaulter showing the student's full installment schedule.
func (s *ReportService) DefaulterLedgerBookPDF(ctx context.Context, asOf string) ([]byte, error) {
	defaulters, err := s.DefaulterReport(ctx, asOf)
	if err != nil {
		return nil, err
	}
	reports, err := s.CollectLedgerReports(ctx, defaulters)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("%s - Fee Defaulters", s.InstituteName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(30, 7, "Roll No", "1", 0, "C", true, 0, "")
	pdf.CellFormat(70, 7, "Name", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Overdue", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Remaining", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, d := range defaulters {
		pdf.CellFormat(30, 7, d.RollNo, "1", 0, "C", false, 0, "")
		pdf.CellFormat(70, 7, d.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 7, formatRupees(d.OverduePaise), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 7, formatRupees(d.RemainingFeesPaise), "1", 1, "R", false, 0, "")
	}

	for _, report := range reports {
		pdf.AddPage()

		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(190, 10, fmt.Sprintf("%s (%s)", report.Student.Name, report.Student.RollNo), "", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(95, 7, fmt.Sprintf("Course: %s", report.Student.Course), "", 0, "L", false, 0, "")
		pdf.CellFormat(95, 7, fmt.Sprintf("Phone: %s", report.Student.Phone), "", 1, "R", false, 0, "")
		pdf.Ln(4)

		pdf.SetFillColor(240, 240, 240)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(15, 7, "No.", "1", 0, "C", true, 0, "")
		pdf.CellFormat(50, 7, "Amount", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Due Date", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, "Status", "1", 0, "C", true, 0, "")
		pdf.CellFormat(50, 7, "Paid", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, inst := range report.Details.Installments {
			status := "Unpaid"
			if inst.Paid {
				status = "Paid"
			} else if inst.PaidAmountPaise > 0 {
				status = "Partial"
			}
			pdf.CellFormat(15, 7, fmt.Sprintf("%d", inst.Index+1), "1", 0, "C", false, 0, "")
			pdf.CellFormat(50, 7, formatRupees(inst.AmountPaise), "1", 0, "R", false, 0, "")
			pdf.CellFormat(40, 7, inst.DueDate, "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 7, status, "1", 0, "C", false, 0, "")
			pdf.CellFormat(50, 7, formatRupees(settledPaise(inst)), "1", 1, "R", false, 0, "")
		}

		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(95, 7, fmt.Sprintf("Paid: %s", formatRupees(report.Details.TotalPaidPaise)), "", 0, "L", false, 0, "")
		pdf.CellFormat(95, 7, fmt.Sprintf("Remaining: %s", formatRupees(report.Details.RemainingFeesPaise)), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FeeReceiptPDF renders a receipt for the latest state of a student's ledger
func (s *ReportService) FeeReceiptPDF(ctx context.Context, studentID int) ([]byte, error) {
	student, err := s.StudentRepo.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}
	ledger, _, err := s.FeeRepo.LoadLedger(ctx, studentID)
	if err != nil {
		return nil, err
	}
	details := buildFeeDetails(student, ledger)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, s.InstituteName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "FEE RECEIPT", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", student.Name), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Roll No: %s", student.RollNo), "", 1, "R", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Course: %s", student.Course), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(15, 7, "No.", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Amount", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Due Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Status", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Paid", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Paid On", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, inst := range details.Installments {
		status := "Unpaid"
		if inst.Paid {
			status = "Paid"
		} else if inst.PaidAmountPaise > 0 {
			status = "Partial"
		}
		paidOn := "-"
		if inst.PaymentDate != nil {
			paidOn = inst.PaymentDate.Format("02-01-2006")
		}
		pdf.CellFormat(15, 7, fmt.Sprintf("%d", inst.Index+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 7, formatRupees(inst.AmountPaise), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, inst.DueDate, "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 7, formatRupees(settledPaise(inst)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, paidOn, "1", 1, "C", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Total: %s", formatRupees(details.TotalFeesPaise)), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Paid: %s", formatRupees(details.TotalPaidPaise)), "", 1, "R", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Remaining: %s", formatRupees(details.RemainingFeesPaise)), "", 0, "L", false, 0, "")
	if details.AdvancePaymentPaise > 0 {
		pdf.CellFormat(95, 7, fmt.Sprintf("Advance: %s", formatRupees(details.AdvancePaymentPaise)), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// settledPaise is the amount actually received against an installment.
// A settled installment carries its payment in AmountPaise; its
// PaidAmountPaise is zeroed on settlement.
func settledPaise(inst models.InstallmentView) int64 {
	if inst.Paid {
		return inst.AmountPaise
	}
	return inst.PaidAmountPaise
}
