package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"institute-backend/internal/auth"
	"institute-backend/internal/cache"
	"institute-backend/internal/catalog"
	"institute-backend/internal/config"
	"institute-backend/internal/database"
	"institute-backend/internal/db"
	"institute-backend/internal/handlers"
	"institute-backend/internal/health"
	h "institute-backend/internal/http"
	"institute-backend/internal/middleware"
	"institute-backend/internal/repositories"
	"institute-backend/internal/services"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password); err != nil {
		log.Printf("Redis unavailable, caching disabled: %v", err)
	}

	migrator := database.NewMigrator(pool)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	jwtManager := auth.NewJWTManager(cfg)
	cat := catalog.New()

	// Repositories
	studentRepo := repositories.NewStudentRepository(pool)
	feeRepo := repositories.NewFeeRepository(pool)
	examRepo := repositories.NewExamRepository(pool)
	userRepo := repositories.NewUserRepository(pool)
	loginLogRepo := repositories.NewLoginLogRepository(pool)
	staffRepo := repositories.NewStaffRepository(pool)
	reviewRepo := repositories.NewReviewRepository(pool)
	transactionRepo := repositories.NewOnlineTransactionRepository(pool)
	onlineCourseRepo := repositories.NewOnlineCourseRepository(pool)

	// Services
	userService := services.NewUserService(userRepo, studentRepo, loginLogRepo, jwtManager)
	studentService := services.NewStudentService(studentRepo, feeRepo, cat, jwtManager)
	feeService := services.NewFeeService(feeRepo, studentRepo)
	examService := services.NewExamService(examRepo, studentRepo, cat)
	certificateService := services.NewCertificateService(examService, feeService,
		cfg.Institute.Name, cfg.Institute.VerifyURL)
	reportService := services.NewReportService(feeRepo, studentRepo, cfg.Institute.Name)
	staffService := services.NewStaffService(staffRepo)
	reviewService := services.NewReviewService(reviewRepo, studentRepo)
	razorpayService := services.NewRazorpayService(
		cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.WebhookSecret,
		transactionRepo, studentRepo, feeService)
	onlineCourseService := services.NewOnlineCourseService(onlineCourseRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	adminHandler := handlers.NewAdminHandler(userService)
	studentHandler := handlers.NewStudentHandler(studentService, userService)
	feeHandler := handlers.NewFeeHandler(feeService)
	examHandler := handlers.NewExamHandler(examService)
	certificateHandler := handlers.NewCertificateHandler(certificateService, studentService)
	staffHandler := handlers.NewStaffHandler(staffService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	razorpayHandler := handlers.NewRazorpayHandler(razorpayService)
	reportHandler := handlers.NewReportHandler(reportService)
	onlineCourseHandler := handlers.NewOnlineCourseHandler(onlineCourseService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	router := h.NewRouter(
		authHandler,
		adminHandler,
		studentHandler,
		feeHandler,
		examHandler,
		certificateHandler,
		staffHandler,
		reviewHandler,
		razorpayHandler,
		reportHandler,
		onlineCourseHandler,
		healthHandler,
		authMiddleware,
	)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
