package api

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/evanjholt/insidertrack/internal/store"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.WithError(err).Errorln("encoding response")
		}
	}
}

// jsonError writes an error response in the shared detail shape.
func jsonError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	jsonResponse(w, status, map[string]any{
		"detail":      detail,
		"status_code": status,
		"path":        r.URL.Path,
	})
}

// fieldError names one violated constraint in a request body.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validationError writes a 422 enumerating every violated field.
func validationError(w http.ResponseWriter, r *http.Request, errs []fieldError) {
	jsonResponse(w, http.StatusUnprocessableEntity, map[string]any{
		"detail":      "Validation error",
		"errors":      errs,
		"status_code": http.StatusUnprocessableEntity,
		"path":        r.URL.Path,
	})
}

// storeError maps typed store failures to client-facing outcomes: not-found
// to 404, duplicate key to 400, anything else to a logged 500 with no
// internal detail leaked.
func storeError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *store.NotFoundError
	var duplicate *store.DuplicateError
	switch {
	case errors.As(err, &notFound):
		jsonError(w, r, http.StatusNotFound, notFound.Error())
	case errors.As(err, &duplicate):
		jsonError(w, r, http.StatusBadRequest, duplicate.Error())
	default:
		log.WithError(err).WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Errorln("unexpected store error")
		jsonError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

// deletedResponse is the shared delete confirmation shape.
func deletedResponse(w http.ResponseWriter, message, idKey string, id uint) {
	jsonResponse(w, http.StatusOK, map[string]any{
		"message": message,
		"data":    map[string]any{idKey: id},
	})
}

// decodeJSON decodes a JSON request body into target, rejecting unknown
// fields.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(target)
}
