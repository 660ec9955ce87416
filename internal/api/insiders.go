package api

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/evanjholt/insidertrack/internal/model"
	"github.com/evanjholt/insidertrack/internal/query"
	"github.com/evanjholt/insidertrack/internal/store"
)

// InsidersHandler handles insider CRUD and listing endpoints.
type InsidersHandler struct {
	DB *gorm.DB
}

type createInsiderRequest struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	CompanyID uint   `json:"company_id"`
}

func (req *createInsiderRequest) validate() []fieldError {
	var errs []fieldError
	if req.Name == "" || len(req.Name) > 200 {
		errs = append(errs, fieldError{"name", "must be 1-200 characters"})
	}
	if len(req.Title) > 200 {
		errs = append(errs, fieldError{"title", "must be at most 200 characters"})
	}
	if req.CompanyID == 0 {
		errs = append(errs, fieldError{"company_id", "must be a positive integer"})
	}
	return errs
}

// List handles GET /insiders.
func (h *InsidersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	skip, limit, err := parsePaging(q, maxLimit)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	filter := store.InsiderFilter{ActiveOnly: q.Get("active_only") == "true"}
	insiders, total, err := store.ListInsiders(r.Context(), h.DB, filter, skip, limit)
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, query.NewPage(insiders, total, skip, limit))
}

// Get handles GET /insiders/{id}.
func (h *InsidersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	insider, err := store.GetInsider(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, insider)
}

// Create handles POST /insiders.
func (h *InsidersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createInsiderRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		validationError(w, r, errs)
		return
	}

	insider := model.Insider{
		Name:      req.Name,
		Title:     req.Title,
		CompanyID: req.CompanyID,
	}
	if err := store.CreateInsider(r.Context(), h.DB, &insider); err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, insider)
}

// Update handles PUT /insiders/{id}.
func (h *InsidersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var patch model.InsiderPatch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	var errs []fieldError
	if patch.Name != nil && (*patch.Name == "" || len(*patch.Name) > 200) {
		errs = append(errs, fieldError{"name", "must be 1-200 characters"})
	}
	if patch.Title != nil && len(*patch.Title) > 200 {
		errs = append(errs, fieldError{"title", "must be at most 200 characters"})
	}
	if patch.CompanyID != nil && *patch.CompanyID == 0 {
		errs = append(errs, fieldError{"company_id", "must be a positive integer"})
	}
	if len(errs) > 0 {
		validationError(w, r, errs)
		return
	}

	insider, err := store.UpdateInsider(r.Context(), h.DB, id, patch)
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, insider)
}

// Delete handles DELETE /insiders/{id}.
func (h *InsidersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	insider, err := store.DeleteInsider(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	deletedResponse(w, "Insider "+insider.Name+" deleted successfully", "deleted_insider_id", id)
}

// Search handles GET /insiders/search.
func (h *InsidersHandler) Search(w http.ResponseWriter, r *http.Request) {
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

	insiders, err := store.SearchInsiders(r.Context(), h.DB, term, limit)
	if err != nil {
		storeError(w, r, err)
		return
	}
	if insiders == nil {
		insiders = []model.Insider{}
	}
	jsonResponse(w, http.StatusOK, insiders)
}

// ByCompany handles GET /insiders/company/{id}.
func (h *InsidersHandler) ByCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	insiders, err := store.ListInsidersByCompany(r.Context(), h.DB, id, r.URL.Query().Get("active_only") == "true")
	if err != nil {
		storeError(w, r, err)
		return
	}
	if insiders == nil {
		insiders = []model.Insider{}
	}
	jsonResponse(w, http.StatusOK, insiders)
}
