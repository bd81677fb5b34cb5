package http

import (
	"encoding/json"
	"net/http"

	"github.com/gajihub/payroll-backend-go/internal/domain/company"
	"github.com/gajihub/payroll-backend-go/internal/handler/http/response"
)

type CompanyHandler interface {
	GetMyCompany(w http.ResponseWriter, r *http.Request)
	UpdateMyCompany(w http.ResponseWriter, r *http.Request)
	GetTaxProfile(w http.ResponseWriter, r *http.Request)
	UpdateTaxProfile(w http.ResponseWriter, r *http.Request)
}

type companyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &companyHandlerImpl{companyService: companyService}
}

// GetMyCompany implements CompanyHandler
func (h *companyHandlerImpl) GetMyCompany(w http.ResponseWriter, r *http.Request) {
	result, err := h.companyService.GetMyCompany(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateMyCompany implements CompanyHandler
func (h *companyHandlerImpl) UpdateMyCompany(w http.ResponseWriter, r *http.Request) {
	var req company.UpdateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.companyService.Update(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Company updated successfully", nil)
}

// GetTaxProfile implements CompanyHandler
func (h *companyHandlerImpl) GetTaxProfile(w http.ResponseWriter, r *http.Request) {
	result, err := h.companyService.GetTaxProfile(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateTaxProfile implements CompanyHandler
func (h *companyHandlerImpl) UpdateTaxProfile(w http.ResponseWriter, r *http.Request) {
	var req company.UpdateTaxProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.companyService.UpdateTaxProfile(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tax profile updated successfully", nil)
}
