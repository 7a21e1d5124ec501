package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"institute-backend/internal/handlers"
	"institute-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	adminHandler *handlers.AdminHandler,
	studentHandler *handlers.StudentHandler,
	feeHandler *handlers.FeeHandler,
	examHandler *handlers.ExamHandler,
	certificateHandler *handlers.CertificateHandler,
	staffHandler *handlers.StaffHandler,
	reviewHandler *handlers.ReviewHandler,
	razorpayHandler *handlers.RazorpayHandler,
	reportHandler *handlers.ReportHandler,
	onlineCourseHandler *handlers.OnlineCourseHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Health and metrics
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Public API routes - Authentication
	r.HandleFunc("/api/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/students/login", studentHandler.Login).Methods("POST")

	// Public API routes - verification and reviews
	r.HandleFunc("/api/verify/student", studentHandler.Verify).Methods("POST")
	r.HandleFunc("/api/verify/staff", staffHandler.Verify).Methods("POST")
	r.HandleFunc("/api/reviews", reviewHandler.List).Methods("GET")
	r.HandleFunc("/api/online-course/register", onlineCourseHandler.Register).Methods("POST")

	// Razorpay webhook, authenticated by signature
	r.HandleFunc("/api/payments/webhook", razorpayHandler.HandleWebhook).Methods("POST")

	// Admin API routes - students
	studentsAPI := r.PathPrefix("/api/students").Subrouter()
	studentsAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireAdmin)
	studentsAPI.HandleFunc("", studentHandler.Register).Methods("POST")
	studentsAPI.HandleFunc("", studentHandler.List).Methods("GET")
	studentsAPI.HandleFunc("/{id:[0-9]+}", studentHandler.Get).Methods("GET")
	studentsAPI.HandleFunc("/{id:[0-9]+}", studentHandler.Edit).Methods("PATCH")

	// Admin API routes - fee ledger
	feesAPI := r.PathPrefix("/api/fees").Subrouter()
	feesAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireAdmin)
	feesAPI.HandleFunc("", feeHandler.ListSummaries).Methods("GET")
	feesAPI.HandleFunc("/student", feeHandler.GetFeesByIdentifier).Methods("GET")
	feesAPI.HandleFunc("/students/{id:[0-9]+}", feeHandler.GetFees).Methods("GET")
	feesAPI.HandleFunc("/students/{id:[0-9]+}", feeHandler.UpdateFees).Methods("PUT")
	feesAPI.HandleFunc("/students/{id:[0-9]+}/audit", feeHandler.ListAudit).Methods("GET")

	// Admin API routes - exams
	examsAPI := r.PathPrefix("/api/exams").Subrouter()
	examsAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireAdmin)
	examsAPI.HandleFunc("/students/{id:[0-9]+}", examHandler.Summary).Methods("GET")
	examsAPI.HandleFunc("/students/{id:[0-9]+}/marks", examHandler.SubmitMarks).Methods("POST")

	// Admin API routes - certificates
	certsAPI := r.PathPrefix("/api/certificates").Subrouter()
	certsAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireAdmin)
	certsAPI.HandleFunc("/students/{id:[0-9]+}", certificateHandler.DownloadCertificate).Methods("GET")
	certsAPI.HandleFunc("/students/{id:[0-9]+}/marks", certificateHandler.DownloadMarksStatement).Methods("GET")
	certsAPI.HandleFunc("/students/{id:[0-9]+}/approve", certificateHandler.Approve).Methods("POST")

	// Admin API routes - reports and dashboard
	adminAPI := r.PathPrefix("/api/admin").Subrouter()
	adminAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireAdmin)
	adminAPI.HandleFunc("/dashboard", adminHandler.Dashboard).Methods("GET")
	adminAPI.HandleFunc("/logins", adminHandler.RecentLogins).Methods("GET")
	adminAPI.HandleFunc("/staff", staffHandler.List).Methods("GET")
	adminAPI.HandleFunc("/online-course", onlineCourseHandler.List).Methods("GET")

	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireAdmin)
	reportsAPI.HandleFunc("/defaulters", reportHandler.Defaulters).Methods("GET")
	reportsAPI.HandleFunc("/receipt/{id:[0-9]+}", reportHandler.FeeReceipt).Methods("GET")

	// Student portal routes
	portalAPI := r.PathPrefix("/api/portal").Subrouter()
	portalAPI.Use(authMiddleware.AuthenticateStudent)
	portalAPI.HandleFunc("/me", studentHandler.Me).Methods("GET")
	portalAPI.HandleFunc("/reviews", reviewHandler.Create).Methods("POST")
	portalAPI.HandleFunc("/payments", razorpayHandler.ListMyTransactions).Methods("GET")
	portalAPI.HandleFunc("/payments/order", razorpayHandler.CreateOrder).Methods("POST")
	portalAPI.HandleFunc("/payments/verify", razorpayHandler.VerifyPayment).Methods("POST")

	return r
}
