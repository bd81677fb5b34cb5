package http

import (
	"net/http"
	"strconv"

	"github.com/gajihub/payroll-backend-go/internal/domain/report"
	"github.com/gajihub/payroll-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	GetPayrollSummaryReport(w http.ResponseWriter, r *http.Request)
	GetAnnualRecapReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// queryInt reads a required integer query parameter.
func queryInt(r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	return v, err == nil
}

// GetPayrollSummaryReport handles GET /reports/payroll-summary?month=&year=
func (h *reportHandlerImpl) GetPayrollSummaryReport(w http.ResponseWriter, r *http.Request) {
	month, ok := queryInt(r, "month")
	if !ok {
		response.BadRequest(w, "month must be an integer", nil)
		return
	}
	year, ok := queryInt(r, "year")
	if !ok {
		response.BadRequest(w, "year must be an integer", nil)
		return
	}

	result, err := h.reportService.GeneratePayrollSummaryReport(r.Context(), report.PayrollSummaryReportRequest{
		Month: month,
		Year:  year,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetAnnualRecapReport handles GET /reports/annual-recap?year=
func (h *reportHandlerImpl) GetAnnualRecapReport(w http.ResponseWriter, r *http.Request) {
	year, ok := queryInt(r, "year")
	if !ok {
		response.BadRequest(w, "year must be an integer", nil)
		return
	}

	result, err := h.reportService.GenerateAnnualRecapReport(r.Context(), report.AnnualRecapReportRequest{Year: year})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
