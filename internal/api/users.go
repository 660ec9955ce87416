package api

import (
	"net/http"
	"strings"

	"github.com/evanjholt/insidertrack/internal/model"
	"github.com/evanjholt/insidertrack/internal/query"
	"github.com/evanjholt/insidertrack/internal/store"
)

// UsersHandler handles user CRUD endpoints against the in-memory store.
type UsersHandler struct {
	Store *store.UserStore
}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

func (req *createUserRequest) validate() []fieldError {
	var errs []fieldError
	if req.Name == "" {
		errs = append(errs, fieldError{"name", "is required"})
	}
	if !validEmail(req.Email) {
		errs = append(errs, fieldError{"email", "must be a valid email address"})
	}
	if req.Age < 0 || req.Age > 150 {
		errs = append(errs, fieldError{"age", "must be between 0 and 150"})
	}
	return errs
}

func validEmail(s string) bool {
	at := strings.Index(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}

// List handles GET /users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	skip, limit, err := parsePaging(q, maxLimit)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	users, total := h.Store.List(store.UserFilter{ActiveOnly: q.Get("active_only") == "true"}, skip, limit)
	jsonResponse(w, http.StatusOK, query.NewPage(users, total, skip, limit))
}

// Get handles GET /users/{id}.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.Store.Get(id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, user)
}

// Create handles POST /users.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		validationError(w, r, errs)
		return
	}

	user, err := h.Store.Create(req.Name, req.Email, req.Age)
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, user)
}

// Update handles PUT /users/{id}.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var patch model.UserPatch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	var errs []fieldError
	if patch.Name != nil && *patch.Name == "" {
		errs = append(errs, fieldError{"name", "is required"})
	}
	if patch.Email != nil && !validEmail(*patch.Email) {
		errs = append(errs, fieldError{"email", "must be a valid email address"})
	}
	if patch.Age != nil && (*patch.Age < 0 || *patch.Age > 150) {
		errs = append(errs, fieldError{"age", "must be between 0 and 150"})
	}
	if len(errs) > 0 {
		validationError(w, r, errs)
		return
	}

	user, err := h.Store.Update(id, patch)
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, user)
}

// Delete handles DELETE /users/{id}.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.Store.Delete(id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	deletedResponse(w, "User "+user.Name+" deleted successfully", "deleted_user_id", id)
}

// Search handles GET /users/search.
func (h *UsersHandler) Search(w http.ResponseWriter, r *http.Request) {
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

	jsonResponse(w, http.StatusOK, h.Store.Search(term, limit))
}
