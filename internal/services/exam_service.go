package services

import (
	"context"
	"errors"
	"fmt"

	"institute-backend/internal/catalog"
	"institute-backend/internal/models"
	"institute-backend/internal/repositories"
)

type ExamService struct {
	Repo        *repositories.ExamRepository
	StudentRepo *repositories.StudentRepository
	Catalog     *catalog.Catalog
}

func NewExamService(repo *repositories.ExamRepository, studentRepo *repositories.StudentRepository,
	cat *catalog.Catalog) *ExamService {
	return &ExamService{Repo: repo, StudentRepo: studentRepo, Catalog: cat}
}

// SubmitMarks records marks for one subject. Once every subject of the
// student's certification has marks, the final grade is computed and stored.
func (s *ExamService) SubmitMarks(ctx context.Context, studentID int, req *models.SubmitMarksRequest) (*models.ExamSummaryResponse, error) {
	student, err := s.StudentRepo.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}

	cert, ok := s.Catalog.Certification(student.CertificationTitle)
	if !ok {
		return nil, fmt.Errorf("course %s has no exam track", student.Course)
	}
	if !cert.HasSubject(req.SubjectCode) {
		return nil, fmt.Errorf("subject %s is not part of %s", req.SubjectCode, cert.Title)
	}

	subject, _ := s.Catalog.Subject(req.SubjectCode)
	if req.TheoryMarks < 0 || req.TheoryMarks > subject.MaxTheory {
		return nil, fmt.Errorf("theory marks must be between 0 and %d", subject.MaxTheory)
	}
	if req.PracticalMarks < 0 || req.PracticalMarks > subject.MaxPractical {
		return nil, fmt.Errorf("practical marks must be between 0 and %d", subject.MaxPractical)
	}

	result := &models.ExamResult{
		StudentID:      studentID,
		SubjectCode:    req.SubjectCode,
		TheoryMarks:    req.TheoryMarks,
		PracticalMarks: req.PracticalMarks,
	}
	if err := s.Repo.Upsert(ctx, result); err != nil {
		return nil, err
	}

	summary, err := s.Summary(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if summary.Complete && summary.FinalGrade != student.FinalGrade {
		if err := s.StudentRepo.UpdateFinalGrade(ctx, studentID, summary.FinalGrade); err != nil {
			return nil, err
		}
	}
	return summary, nil
}

// Summary assembles the per-subject results against the certification's
// subject table. The grade stays Pending until every subject has marks.
func (s *ExamService) Summary(ctx context.Context, studentID int) (*models.ExamSummaryResponse, error) {
	student, err := s.StudentRepo.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}

	cert, ok := s.Catalog.Certification(student.CertificationTitle)
	if !ok {
		return nil, errors.New("student's course has no exam track")
	}

	results, err := s.Repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]*models.ExamResult, len(results))
	for _, r := range results {
		byCode[r.SubjectCode] = r
	}

	resp := &models.ExamSummaryResponse{
		StudentID:          student.ID,
		RollNo:             student.RollNo,
		CertificationTitle: cert.Title,
		FinalGrade:         "Pending",
		Complete:           true,
	}
	for _, subject := range cert.Subjects {
		view := models.SubjectResultView{
			SubjectCode:  subject.Code,
			SubjectName:  subject.Name,
			MaxTheory:    subject.MaxTheory,
			MaxPractical: subject.MaxPractical,
			MinMarks:     subject.MinMarks(),
		}
		resp.TotalMax += subject.MaxMarks()
		if r, ok := byCode[subject.Code]; ok {
			theory, practical := r.TheoryMarks, r.PracticalMarks
			obtained := theory + practical
			view.TheoryMarks = &theory
			view.PracticalMarks = &practical
			view.ObtainedMarks = &obtained
			resp.TotalObtained += obtained
		} else {
			resp.Complete = false
		}
		resp.Subjects = append(resp.Subjects, view)
	}

	if resp.Complete && len(cert.Subjects) > 0 {
		resp.Average = float64(resp.TotalObtained) / float64(len(cert.Subjects))
		resp.FinalGrade = catalog.Grade(resp.Average)
	}
	return resp, nil
}
