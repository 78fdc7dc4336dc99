package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/hadirin/attendance-backend-go/internal/config"
	appHTTP "github.com/hadirin/attendance-backend-go/internal/handler/http"
	"github.com/hadirin/attendance-backend-go/internal/pkg/database"
	"github.com/hadirin/attendance-backend-go/internal/pkg/email"
	"github.com/hadirin/attendance-backend-go/internal/pkg/jwt"
	"github.com/hadirin/attendance-backend-go/internal/pkg/oauth"
	"github.com/hadirin/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/hadirin/attendance-backend-go/internal/service/attendance"
	authService "github.com/hadirin/attendance-backend-go/internal/service/auth"
	employeeService "github.com/hadirin/attendance-backend-go/internal/service/employee"
	reportService "github.com/hadirin/attendance-backend-go/internal/service/report"
	salaryService "github.com/hadirin/attendance-backend-go/internal/service/salary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	eventRepo := postgresql.NewAttendanceEventRepository(db)
	configRepo := postgresql.NewSalaryConfigRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	authSvc := authService.NewAuthService(userRepo, jwtService, refreshTokenRepo, googleService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, emailService, cfg.App.FrontendURL)
	attendanceSvc := attendanceService.NewAttendanceService(eventRepo, employeeRepo, cfg.Office)
	salarySvc := salaryService.NewSalaryService(db, configRepo, employeeRepo, eventRepo)
	reportSvc := reportService.NewReportService(salarySvc)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	salaryHandler := appHTTP.NewSalaryHandler(salarySvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		cfg.App.Env,
		cfg.App.FrontendURL,
		jwtService,
		authHandler,
		employeeHandler,
		attendanceHandler,
		salaryHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
