package handlers

import (
	"net/http"
	"strings"

	"smartride-backend/internal/domain/models"
	"smartride-backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

func ListCompanies(c *gin.Context) {
	companies, err := repositories.CompanyRepo{}.List(false)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]CompanyDTO, 0, len(companies))
	for _, co := range companies {
		out = append(out, toCompanyDTO(co))
	}
	RespondOK(c, http.StatusOK, "companies", out)
}

// AdminListCompanies includes hidden companies.
func AdminListCompanies(c *gin.Context) {
	companies, err := repositories.CompanyRepo{}.List(true)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]CompanyDTO, 0, len(companies))
	for _, co := range companies {
		out = append(out, toCompanyDTO(co))
	}
	RespondOK(c, http.StatusOK, "companies", out)
}

func GetCompany(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	company, err := repositories.CompanyRepo{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, "company", toCompanyDTO(company))
}

type companyRequest struct {
	Name        string `json:"name"`
	Logo        string `json:"logo"`
	Description string `json:"description"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

func (r companyRequest) toModel() models.BusCompany {
	return models.BusCompany{
		Name:        strings.TrimSpace(r.Name),
		Logo:        r.Logo,
		Description: r.Description,
		PhoneNumber: strings.TrimSpace(r.PhoneNumber),
		Email:       strings.TrimSpace(r.Email),
		Address:     strings.TrimSpace(r.Address),
	}
}

func CreateCompany(c *gin.Context) {
	var req companyRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		RespondFail(c, http.StatusBadRequest, "name is required")
		return
	}
	id, err := repositories.CompanyRepo{}.Insert(req.toModel())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusCreated, "company created", gin.H{"id": id})
}

func UpdateCompany(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req companyRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		RespondFail(c, http.StatusBadRequest, "name is required")
		return
	}
	if err := (repositories.CompanyRepo{}).Update(id, req.toModel()); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, "company updated", nil)
}

type hideCompanyRequest struct {
	Hidden bool `json:"hidden"`
}

func HideCompany(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req hideCompanyRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if _, err := (repositories.CompanyRepo{}).GetByID(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := (repositories.CompanyRepo{}).SetHidden(id, req.Hidden); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, "company visibility updated", nil)
}

func DeleteCompany(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := (repositories.CompanyRepo{}).GetByID(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := (repositories.CompanyRepo{}).Deactivate(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, "company removed", nil)
}
