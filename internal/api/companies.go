package api

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/evanjholt/insidertrack/internal/model"
	"github.com/evanjholt/insidertrack/internal/query"
	"github.com/evanjholt/insidertrack/internal/store"
)

// CompaniesHandler handles company CRUD and listing endpoints.
type CompaniesHandler struct {
	DB *gorm.DB
}

type createCompanyRequest struct {
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Sector    string  `json:"sector"`
	MarketCap float64 `json:"market_cap"`
	Exchange  string  `json:"exchange"`
}

func (req *createCompanyRequest) validate() []fieldError {
	var errs []fieldError
	if req.Name == "" || len(req.Name) > 200 {
		errs = append(errs, fieldError{"name", "must be 1-200 characters"})
	}
	if req.Symbol == "" || len(req.Symbol) > 10 {
		errs = append(errs, fieldError{"symbol", "must be 1-10 characters"})
	}
	if len(req.Sector) > 100 {
		errs = append(errs, fieldError{"sector", "must be at most 100 characters"})
	}
	if req.MarketCap < 0 {
		errs = append(errs, fieldError{"market_cap", "must be >= 0"})
	}
	if req.Exchange == "" {
		req.Exchange = model.ExchangeTSX
	}
	if !model.ValidExchange(req.Exchange) {
		errs = append(errs, fieldError{"exchange", "must be one of TSX, TSXV, CSE, NEO"})
	}
	return errs
}

// List handles GET /companies.
func (h *CompaniesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	skip, limit, err := parsePaging(q, maxLimit)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	filter := store.CompanyFilter{
		Sector:     q.Get("sector"),
		Exchange:   q.Get("exchange"),
		ActiveOnly: q.Get("active_only") == "true",
	}
	if filter.Exchange != "" && !model.ValidExchange(filter.Exchange) {
		jsonError(w, r, http.StatusBadRequest, "exchange must be one of TSX, TSXV, CSE, NEO")
		return
	}
	if filter.MinMarketCap, err = parseOptionalFloat(q, "min_market_cap"); err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if filter.MaxMarketCap, err = parseOptionalFloat(q, "max_market_cap"); err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	companies, total, err := store.ListCompanies(r.Context(), h.DB, filter, skip, limit)
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, query.NewPage(companies, total, skip, limit))
}

// Get handles GET /companies/{id}.
func (h *CompaniesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	company, err := store.GetCompany(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, company)
}

// Create handles POST /companies.
func (h *CompaniesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		validationError(w, r, errs)
		return
	}

	company := model.Company{
		Name:      req.Name,
		Symbol:    req.Symbol,
		Sector:    req.Sector,
		MarketCap: req.MarketCap,
		Exchange:  req.Exchange,
	}
	if err := store.CreateCompany(r.Context(), h.DB, &company); err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, company)
}

// Update handles PUT /companies/{id}.
func (h *CompaniesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var patch model.CompanyPatch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validateCompanyPatch(patch); len(errs) > 0 {
		validationError(w, r, errs)
		return
	}

	company, err := store.UpdateCompany(r.Context(), h.DB, id, patch)
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, company)
}

func validateCompanyPatch(patch model.CompanyPatch) []fieldError {
	var errs []fieldError
	if patch.Name != nil && (*patch.Name == "" || len(*patch.Name) > 200) {
		errs = append(errs, fieldError{"name", "must be 1-200 characters"})
	}
	if patch.Symbol != nil && (*patch.Symbol == "" || len(*patch.Symbol) > 10) {
		errs = append(errs, fieldError{"symbol", "must be 1-10 characters"})
	}
	if patch.Sector != nil && len(*patch.Sector) > 100 {
		errs = append(errs, fieldError{"sector", "must be at most 100 characters"})
	}
	if patch.MarketCap != nil && *patch.MarketCap <= 0 {
		errs = append(errs, fieldError{"market_cap", "must be > 0"})
	}
	if patch.Exchange != nil && !model.ValidExchange(*patch.Exchange) {
		errs = append(errs, fieldError{"exchange", "must be one of TSX, TSXV, CSE, NEO"})
	}
	return errs
}

// Delete handles DELETE /companies/{id}.
func (h *CompaniesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	company, err := store.DeleteCompany(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	deletedResponse(w, "Company '"+company.Name+"' deleted successfully", "deleted_company_id", id)
}

// Sectors handles GET /companies/sectors.
func (h *CompaniesHandler) Sectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := store.ListSectors(r.Context(), h.DB)
	if err != nil {
		storeError(w, r, err)
		return
	}
	if sectors == nil {
		sectors = []string{}
	}
	jsonResponse(w, http.StatusOK, sectors)
}

// Search handles GET /companies/search.
func (h *CompaniesHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	term := q.Get("q")
	if term == "" {
		jsonError(w, r, http.StatusBadRequest, "q is required")
		return
	}
	limit, err := parseLimit(q, defaultLimit, maxSearchLimit)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	companies, err := store.SearchCompanies(r.Context(), h.DB, term, limit)
	if err != nil {
		storeError(w, r, err)
		return
	}
	if companies == nil {
		companies = []model.Company{}
	}
	jsonResponse(w, http.StatusOK, companies)
}

// ToggleStatus handles PATCH /companies/{id}/status.
func (h *CompaniesHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	company, err := store.ToggleCompanyStatus(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, company)
}
