package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/config"
	appHTTP "github.com/gajihub/payroll-backend-go/internal/handler/http"
	"github.com/gajihub/payroll-backend-go/internal/pkg/cron"
	"github.com/gajihub/payroll-backend-go/internal/pkg/database"
	"github.com/gajihub/payroll-backend-go/internal/pkg/jwt"
	"github.com/gajihub/payroll-backend-go/internal/repository/postgresql"
	serviceCompany "github.com/gajihub/payroll-backend-go/internal/service/company"
	employeeService "github.com/gajihub/payroll-backend-go/internal/service/employee"
	payrollService "github.com/gajihub/payroll-backend-go/internal/service/payroll"
	reportService "github.com/gajihub/payroll-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()

	if cfg.Database.RunMigrations {
		if err := database.RunMigrations(context.Background(), dsn); err != nil {
			fmt.Println("Error running migrations:", err)
			return
		}
		slog.Info("Database migrations applied")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	tokenAuth := jwt.NewVerifier(cfg.JWT.Secret)

	companyService := serviceCompany.NewCompanyService(db, companyRepo)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, employeeRepo, companyRepo)
	reportSvc := reportService.NewReportService(reportRepo)

	companyHandler := appHTTP.NewCompanyHandler(companyService)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		tokenAuth,
		companyHandler,
		employeeHandler,
		payrollHandler,
		reportHandler,
	)

	scheduler := cron.NewScheduler()
	if cfg.Scheduler.Enabled {
		payrollJobs := cron.NewPayrollJobs(
			companyRepo,
			payrollRepo,
			cfg.Scheduler.OpenRunDay,
			cfg.Scheduler.DraftReminderDay,
		)
		payrollJobs.RegisterJobs(scheduler)
		scheduler.Start(context.Background())
	}

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Server running", "address", port)
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig.String())

		if cfg.Scheduler.Enabled {
			scheduler.Stop()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}
