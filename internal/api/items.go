package api

import (
	"net/http"

	"github.com/evanjholt/insidertrack/internal/model"
	"github.com/evanjholt/insidertrack/internal/query"
	"github.com/evanjholt/insidertrack/internal/store"
)

// ItemsHandler handles item CRUD endpoints against the in-memory store.
type ItemsHandler struct {
	Store *store.ItemStore
}

type createItemRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	OwnerID     uint    `json:"owner_id"`
}

func (req *createItemRequest) validate() []fieldError {
	var errs []fieldError
	if req.Title == "" {
		errs = append(errs, fieldError{"title", "is required"})
	}
	if req.Price <= 0 {
		errs = append(errs, fieldError{"price", "must be > 0"})
	}
	if req.Category == "" {
		errs = append(errs, fieldError{"category", "is required"})
	}
	if req.OwnerID == 0 {
		errs = append(errs, fieldError{"owner_id", "must be a positive integer"})
	}
	return errs
}

// List handles GET /items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	skip, limit, err := parsePaging(q, maxLimit)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	filter := store.ItemFilter{
		Category:      q.Get("category"),
		AvailableOnly: q.Get("available_only") == "true",
	}
	if filter.MinPrice, err = parseOptionalFloat(q, "min_price"); err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if filter.MaxPrice, err = parseOptionalFloat(q, "max_price"); err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	items, total := h.Store.List(filter, skip, limit)
	jsonResponse(w, http.StatusOK, query.NewPage(items, total, skip, limit))
}

// Get handles GET /items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.Store.Get(id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Create handles POST /items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		validationError(w, r, errs)
		return
	}

	item, err := h.Store.Create(model.Item{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// Update handles PUT /items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var patch model.ItemPatch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	var errs []fieldError
	if patch.Title != nil && *patch.Title == "" {
		errs = append(errs, fieldError{"title", "is required"})
	}
	if patch.Price != nil && *patch.Price <= 0 {
		errs = append(errs, fieldError{"price", "must be > 0"})
	}
	if patch.Category != nil && *patch.Category == "" {
		errs = append(errs, fieldError{"category", "is required"})
	}
	if patch.OwnerID != nil && *patch.OwnerID == 0 {
		errs = append(errs, fieldError{"owner_id", "must be a positive integer"})
	}
	if len(errs) > 0 {
		validationError(w, r, errs)
		return
	}

	item, err := h.Store.Update(id, patch)
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.Store.Delete(id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	deletedResponse(w, "Item '"+item.Title+"' deleted successfully", "deleted_item_id", id)
}

// Categories handles GET /items/categories.
func (h *ItemsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Store.Categories())
}

// ByUser handles GET /items/user/{id}.
func (h *ItemsHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.Store.ByOwner(id, r.URL.Query().Get("available_only") == "true")
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, items)
}

// ToggleAvailability handles PATCH /items/{id}/availability.
func (h *ItemsHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.Store.ToggleAvailability(id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}
