package api

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/evanjholt/insidertrack/internal/store"
)

// Version reported by the root endpoint.
const Version = "2.0.0"

// NewRouter creates the API router with all endpoints registered.
func NewRouter(gdb *gorm.DB, users *store.UserStore, items *store.ItemStore) http.Handler {
	mux := http.NewServeMux()

	companiesHandler := &CompaniesHandler{DB: gdb}
	insidersHandler := &InsidersHandler{DB: gdb}
	transactionsHandler := &TransactionsHandler{DB: gdb}
	usersHandler := &UsersHandler{Store: users}
	itemsHandler := &ItemsHandler{Store: items}

	mux.HandleFunc("GET /{$}", Root)
	mux.HandleFunc("GET /health", Health)

	// Companies.
	mux.HandleFunc("GET /companies", companiesHandler.List)
	mux.HandleFunc("POST /companies", companiesHandler.Create)
	mux.HandleFunc("GET /companies/sectors", companiesHandler.Sectors)
	mux.HandleFunc("GET /companies/search", companiesHandler.Search)
	mux.HandleFunc("GET /companies/{id}", companiesHandler.Get)
	mux.HandleFunc("PUT /companies/{id}", companiesHandler.Update)
	mux.HandleFunc("DELETE /companies/{id}", companiesHandler.Delete)
	mux.HandleFunc("PATCH /companies/{id}/status", companiesHandler.ToggleStatus)

	// Insiders.
	mux.HandleFunc("GET /insiders", insidersHandler.List)
	mux.HandleFunc("POST /insiders", insidersHandler.Create)
	mux.HandleFunc("GET /insiders/search", insidersHandler.Search)
	mux.HandleFunc("GET /insiders/company/{id}", insidersHandler.ByCompany)
	mux.HandleFunc("GET /insiders/{id}", insidersHandler.Get)
	mux.HandleFunc("PUT /insiders/{id}", insidersHandler.Update)
	mux.HandleFunc("DELETE /insiders/{id}", insidersHandler.Delete)

	// Transactions.
	mux.HandleFunc("GET /transactions", transactionsHandler.List)
	mux.HandleFunc("POST /transactions", transactionsHandler.Create)
	mux.HandleFunc("GET /transactions/stats", transactionsHandler.Stats)
	mux.HandleFunc("GET /transactions/insider/{id}", transactionsHandler.ByInsider)
	mux.HandleFunc("GET /transactions/company/{id}", transactionsHandler.ByCompany)
	mux.HandleFunc("GET /transactions/{id}", transactionsHandler.Get)
	mux.HandleFunc("PUT /transactions/{id}", transactionsHandler.Update)
	mux.HandleFunc("DELETE /transactions/{id}", transactionsHandler.Delete)

	// Users (in-memory variant).
	mux.HandleFunc("GET /users", usersHandler.List)
	mux.HandleFunc("POST /users", usersHandler.Create)
	mux.HandleFunc("GET /users/search", usersHandler.Search)
	mux.HandleFunc("GET /users/{id}", usersHandler.Get)
	mux.HandleFunc("PUT /users/{id}", usersHandler.Update)
	mux.HandleFunc("DELETE /users/{id}", usersHandler.Delete)

	// Items (in-memory variant).
	mux.HandleFunc("GET /items", itemsHandler.List)
	mux.HandleFunc("POST /items", itemsHandler.Create)
	mux.HandleFunc("GET /items/categories", itemsHandler.Categories)
	mux.HandleFunc("GET /items/user/{id}", itemsHandler.ByUser)
	mux.HandleFunc("GET /items/{id}", itemsHandler.Get)
	mux.HandleFunc("PUT /items/{id}", itemsHandler.Update)
	mux.HandleFunc("DELETE /items/{id}", itemsHandler.Delete)
	mux.HandleFunc("PATCH /items/{id}/availability", itemsHandler.ToggleAvailability)

	return mux
}

// Root handles GET /.
func Root(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]any{
		"message": "Welcome to the Canadian Insider Trading API",
		"version": Version,
		"endpoints": map[string]string{
			"companies":    "/companies",
			"insiders":     "/insiders",
			"transactions": "/transactions",
			"users":        "/users",
			"items":        "/items",
		},
	})
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "Service is running properly",
	})
}
