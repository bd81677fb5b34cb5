package http

import (
	"log/slog"
	"os"

	"github.com/gajihub/payroll-backend-go/internal/domain/user"
	"github.com/gajihub/payroll-backend-go/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/time/rate"
)

func NewRouter(
	tokenAuth *jwtauth.JWTAuth,
	companyHandler CompanyHandler,
	employeeHandler EmployeeHandler,
	payrollHandler PayrollHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(middleware.AuthRequired(tokenAuth))

			r.Route("/companies/my", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", companyHandler.GetMyCompany)
					r.Get("/tax-profile", companyHandler.GetTaxProfile)
				})

				// Owner only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireOwner)
					r.Put("/", companyHandler.UpdateMyCompany)
					r.Put("/tax-profile", companyHandler.UpdateTaxProfile)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.RequireManager)

				r.Get("/", employeeHandler.ListEmployees)
				r.Post("/", employeeHandler.CreateEmployee)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", employeeHandler.GetEmployee)
					r.Put("/", employeeHandler.UpdateEmployee)
					r.Delete("/", employeeHandler.DeleteEmployee)

					r.Get("/salary-components", payrollHandler.ListSalaryComponents)
					r.Post("/salary-components", payrollHandler.CreateSalaryComponent)
				})
			})

			r.Route("/payroll-runs", func(r chi.Router) {
				r.Use(middleware.RequireManager)

				r.Get("/", payrollHandler.ListRuns)
				r.Post("/", payrollHandler.CreateRun)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", payrollHandler.GetRun)
					r.Delete("/", payrollHandler.DeleteRun)

					r.Put("/inputs/{employeeId}", payrollHandler.UpsertRunInput)

					r.Post("/calculate", payrollHandler.CalculateRun)
					r.Post("/recalculate", payrollHandler.RecalculateRun)
					r.With(middleware.RequirePermission(user.PermissionPayrollPay)).Post("/pay", payrollHandler.MarkRunPaid)
					r.Get("/preview", payrollHandler.PreviewRun)

					r.Get("/payslips", payrollHandler.ListRunPayslips)
					r.Post("/payslips/{employeeId}/recalculate", payrollHandler.RecalculatePayslip)
				})
			})

			// Payslip reads are scoped in the service: employees see only
			// their own, managers see the whole company.
			r.Route("/payslips", func(r chi.Router) {
				r.Get("/my", payrollHandler.ListMyPayslips)
				r.Get("/{id}", payrollHandler.GetPayslip)
				r.Get("/{id}/pdf", payrollHandler.DownloadPayslipPDF)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequireManager)

				r.Get("/payroll-summary", reportHandler.GetPayrollSummaryReport)
				r.Get("/annual-recap", reportHandler.GetAnnualRecapReport)
			})
		})
	})
	return r
}
