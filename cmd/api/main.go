package main

import (
	"fmt"
	"net/http"

	"github.com/silabu/attendance-backend-go/internal/config"
	appHTTP "github.com/silabu/attendance-backend-go/internal/handler/http"
	"github.com/silabu/attendance-backend-go/internal/pkg/cron"
	"github.com/silabu/attendance-backend-go/internal/pkg/database"
	"github.com/silabu/attendance-backend-go/internal/pkg/jwt"
	"github.com/silabu/attendance-backend-go/internal/pkg/oauth"
	"github.com/silabu/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/silabu/attendance-backend-go/internal/service/attendance"
	authService "github.com/silabu/attendance-backend-go/internal/service/auth"
	employeeService "github.com/silabu/attendance-backend-go/internal/service/employee"
	leaveService "github.com/silabu/attendance-backend-go/internal/service/leave"
	officeService "github.com/silabu/attendance-backend-go/internal/service/office"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	officeRepo := postgresql.NewOfficeRepository(db)
	bindingRepo := postgresql.NewBindingRepository(db)
	eventRepo := postgresql.NewEventRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleSvc := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	authSvc := authService.NewAuthService(userRepo, jwtSvc, googleSvc)
	attendanceSvc := attendanceService.NewAttendanceService(eventRepo, officeRepo, bindingRepo, cfg.Attendance)
	officeSvc := officeService.NewOfficeService(db, officeRepo)
	employeeSvc := employeeService.NewEmployeeService(db, userRepo, employeeRepo, bindingRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRepo)

	authHandler := appHTTP.NewAuthHandler(jwtSvc, authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	officeHandler := appHTTP.NewOfficeHandler(officeSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(eventRepo, employeeRepo, officeRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		jwtSvc,
		authHandler,
		attendanceHandler,
		officeHandler,
		employeeHandler,
		leaveHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
