package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"

	"institute-backend/internal/auth"
	"institute-backend/internal/catalog"
	"institute-backend/internal/feeledger"
	"institute-backend/internal/models"
	"institute-backend/internal/repositories"
	"institute-backend/internal/timeutil"
)

var (
	phonePattern  = regexp.MustCompile(`^[0-9]{10}$`)
	aadharPattern = regexp.MustCompile(`^[0-9]{12}$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type StudentService struct {
	Repo       *repositories.StudentRepository
	FeeRepo    *repositories.FeeRepository
	Catalog    *catalog.Catalog
	JWTManager *auth.JWTManager
}

func NewStudentService(repo *repositories.StudentRepository, feeRepo *repositories.FeeRepository,
	cat *catalog.Catalog, jwtManager *auth.JWTManager) *StudentService {
	return &StudentService{Repo: repo, FeeRepo: feeRepo, Catalog: cat, JWTManager: jwtManager}
}

// Register validates the admission form, derives the certification title,
// creates the student and seeds the installment schedule.
func (s *StudentService) Register(ctx context.Context, req *models.RegisterStudentRequest) (*models.Student, error) {
	if req.Name == "" || req.FatherName == "" {
		return nil, errors.New("name and father's name are required")
	}
	if !phonePattern.MatchString(req.Phone) {
		return nil, errors.New("phone must be a 10 digit number")
	}
	if !aadharPattern.MatchString(req.AadharNumber) {
		return nil, errors.New("aadhar number must be a 12 digit number")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, errors.New("invalid email address")
	}
	if req.Gender != "male" && req.Gender != "female" && req.Gender != "other" {
		return nil, errors.New("gender must be male, female or other")
	}
	if !s.Catalog.ValidQualification(req.Qualification) {
		return nil, errors.New("qualification must be 10th, 12th or Graduated")
	}
	if !s.Catalog.ValidCourse(req.Course) {
		return nil, fmt.Errorf("unknown course: %s", req.Course)
	}
	if !s.Catalog.ValidDuration(req.Duration) {
		return nil, fmt.Errorf("unknown duration: %s", req.Duration)
	}
	if len(req.Password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}

	dob, err := timeutil.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, errors.New("date_of_birth must be YYYY-MM-DD")
	}

	joining := timeutil.StartOfDay(timeutil.Now())
	if req.JoiningDate != "" {
		joining, err = timeutil.ParseDate(req.JoiningDate)
		if err != nil {
			return nil, errors.New("joining_date must be YYYY-MM-DD")
		}
	}

	if field, err := s.Repo.FindDuplicateField(ctx, req.Email, req.Phone, req.AadharNumber); err != nil {
		return nil, err
	} else if field != "" {
		return nil, fmt.Errorf("a student with this %s already exists", field)
	}

	ledger, err := feeledger.New(req.TotalFeesPaise, req.InstallmentCount, joining)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		Name:               req.Name,
		FatherName:         req.FatherName,
		MotherName:         req.MotherName,
		Email:              req.Email,
		Phone:              req.Phone,
		AadharNumber:       req.AadharNumber,
		DateOfBirth:        dob,
		Gender:             req.Gender,
		Qualification:      req.Qualification,
		Address:            req.Address,
		Course:             req.Course,
		Duration:           req.Duration,
		CertificationTitle: s.Catalog.CertificationTitle(req.Course, req.Duration),
		JoiningDate:        joining,
		PasswordHash:       hash,
		TotalFeesPaise:     ledger.TotalFeesPaise,
		InstallmentCount:   ledger.InstallmentCount,
		RemainingFeesPaise: ledger.RemainingFeesPaise,
	}

	if err := s.Repo.Create(ctx, student); err != nil {
		return nil, err
	}

	// Seed the installment rows against the freshly created student.
	if err := s.FeeRepo.SaveLedger(ctx, student.ID, student.FeeVersion, ledger, nil); err != nil {
		return nil, err
	}
	return student, nil
}

// Login authenticates a student by roll number, email or phone
func (s *StudentService) Login(ctx context.Context, req *models.StudentLoginRequest) (*models.StudentAuthResponse, error) {
	if req.Identifier == "" || req.Password == "" {
		return nil, errors.New("identifier and password are required")
	}

	student, err := s.Repo.GetByIdentifier(ctx, req.Identifier)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("invalid credentials")
		}
		return nil, err
	}
	if !auth.VerifyPassword(student.PasswordHash, req.Password) {
		return nil, errors.New("invalid credentials")
	}

	token, err := s.JWTManager.GenerateStudentToken(student.ID, student.RollNo, student.Email)
	if err != nil {
		return nil, err
	}
	return &models.StudentAuthResponse{Token: token, Student: student}, nil
}

func (s *StudentService) Get(ctx context.Context, id int) (*models.Student, error) {
	return s.Repo.Get(ctx, id)
}

func (s *StudentService) GetByRollNo(ctx context.Context, rollNo string) (*models.Student, error) {
	return s.Repo.GetByRollNo(ctx, rollNo)
}

func (s *StudentService) List(ctx context.Context) ([]*models.Student, error) {
	return s.Repo.List(ctx)
}

func (s *StudentService) Search(ctx context.Context, query string) ([]*models.Student, error) {
	if query == "" {
		return s.Repo.List(ctx)
	}
	return s.Repo.Search(ctx, query)
}

// Edit applies a partial update. Changing course or duration recomputes the
// certification title.
func (s *StudentService) Edit(ctx context.Context, id int, req *models.EditStudentRequest) (*models.Student, error) {
	student, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.FatherName != nil {
		student.FatherName = *req.FatherName
	}
	if req.MotherName != nil {
		student.MotherName = *req.MotherName
	}
	if req.Email != nil {
		if !emailPattern.MatchString(*req.Email) {
			return nil, errors.New("invalid email address")
		}
		student.Email = *req.Email
	}
	if req.Phone != nil {
		if !phonePattern.MatchString(*req.Phone) {
			return nil, errors.New("phone must be a 10 digit number")
		}
		student.Phone = *req.Phone
	}
	if req.Qualification != nil {
		if !s.Catalog.ValidQualification(*req.Qualification) {
			return nil, errors.New("qualification must be 10th, 12th or Graduated")
		}
		student.Qualification = *req.Qualification
	}
	if req.Address != nil {
		student.Address = *req.Address
	}
	if req.Course != nil {
		if !s.Catalog.ValidCourse(*req.Course) {
			return nil, fmt.Errorf("unknown course: %s", *req.Course)
		}
		student.Course = *req.Course
	}
	if req.Duration != nil {
		if !s.Catalog.ValidDuration(*req.Duration) {
			return nil, fmt.Errorf("unknown duration: %s", *req.Duration)
		}
		student.Duration = *req.Duration
	}
	student.CertificationTitle = s.Catalog.CertificationTitle(student.Course, student.Duration)

	if err := s.Repo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Verify is the public certificate verification by roll number and date of birth
func (s *StudentService) Verify(ctx context.Context, req *models.VerifyStudentRequest) (*models.VerifyStudentResponse, error) {
	dob, err := timeutil.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, errors.New("date_of_birth must be YYYY-MM-DD")
	}

	student, err := s.Repo.VerifyByRollAndDOB(ctx, req.RollNo, dob)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("no matching student found")
		}
		return nil, err
	}

	return &models.VerifyStudentResponse{
		RollNo:             student.RollNo,
		Name:               student.Name,
		FatherName:         student.FatherName,
		Course:             student.Course,
		Duration:           student.Duration,
		CertificationTitle: student.CertificationTitle,
		JoiningDate:        student.JoiningDate.Format(timeutil.DateLayout),
		FinalGrade:         student.FinalGrade,
	}, nil
}

// ApproveCertificate flags the student eligible for certificate download
func (s *StudentService) ApproveCertificate(ctx context.Context, id int, approved bool) error {
	if _, err := s.Repo.Get(ctx, id); err != nil {
		return err
	}
	return s.Repo.SetCertificateApproved(ctx, id, approved)
}
