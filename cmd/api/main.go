package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/workpulse-hr/workpulse-backend-go/internal/config"
	appHTTP "github.com/workpulse-hr/workpulse-backend-go/internal/handler/http"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/cron"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/database"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/jwt"
	"github.com/workpulse-hr/workpulse-backend-go/internal/repository/postgresql"
	attendanceService "github.com/workpulse-hr/workpulse-backend-go/internal/service/attendance"
	breaksService "github.com/workpulse-hr/workpulse-backend-go/internal/service/breaks"
	earningsService "github.com/workpulse-hr/workpulse-backend-go/internal/service/earnings"
	employeeService "github.com/workpulse-hr/workpulse-backend-go/internal/service/employee"
	leaveService "github.com/workpulse-hr/workpulse-backend-go/internal/service/leave"
	orgService "github.com/workpulse-hr/workpulse-backend-go/internal/service/org"
	salaryService "github.com/workpulse-hr/workpulse-backend-go/internal/service/salary"
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
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	breakRequestRepo := postgresql.NewBreakRequestRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	orgRepo := postgresql.NewOrgRepository(db)
	salaryRepo := postgresql.NewSalaryHistoryRepository(db)
	leaveRepo := postgresql.NewLeaveRequestRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		attendanceRepo,
		employeeRepo,
		orgRepo,
		cfg.Attendance.MinimumValidHours,
	)
	breakRequestSvc := breaksService.NewBreakRequestService(db, breakRequestRepo, attendanceRepo)
	salarySvc := salaryService.NewSalaryService(salaryRepo, employeeRepo)
	earningsSvc := earningsService.NewEarningsService(
		attendanceRepo,
		employeeRepo,
		orgRepo,
		salaryRepo,
		cfg.Attendance.MinimumValidHours,
	)
	leaveSvc := leaveService.NewLeaveService(db, leaveRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	orgSvc := orgService.NewOrganizationService(orgRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	breakRequestHandler := appHTTP.NewBreakRequestHandler(breakRequestSvc)
	salaryHandler := appHTTP.NewSalaryHandler(salarySvc)
	earningsHandler := appHTTP.NewEarningsHandler(earningsSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	organizationHandler := appHTTP.NewOrganizationHandler(orgSvc)

	router := appHTTP.NewRouter(
		jwtService,
		attendanceHandler,
		breakRequestHandler,
		salaryHandler,
		earningsHandler,
		leaveHandler,
		employeeHandler,
		organizationHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, employeeRepo, orgRepo, leaveRepo).RegisterJobs(scheduler)
	scheduler.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
			stop()
		}
	}()

	<-ctx.Done()

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Server shutdown error:", err)
	}
}
