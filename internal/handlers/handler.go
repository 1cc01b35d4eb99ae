package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/handlers/response"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

func ResponseWithJson(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func ResponseError(w http.ResponseWriter, message string, code int) {
	response.WriteError(w, response.ErrorMessage{
		Message:    message,
		ErrorClass: classForStatus(code).String(),
		StatusCode: code,
	})
}

// ResponseServiceError writes err with the status of its class. Internal errors are logged and
// their text is not exposed.
func ResponseServiceError(w http.ResponseWriter, logger primary.Logger, err error) {
	class := errs.ClassOf(err)
	status := StatusFromError(err)
	message := err.Error()
	if class == errs.ClassInternal {
		logger.Error("Request failed", "error", err)
		message = http.StatusText(status)
	}
	response.WriteError(w, response.ErrorMessage{
		Message:    message,
		ErrorClass: class.String(),
		StatusCode: status,
	})
}

// StatusFromError maps an error class to the HTTP status callers get
func StatusFromError(err error) int {
	switch errs.ClassOf(err) {
	case errs.ClassValidation:
		return http.StatusBadRequest
	case errs.ClassNotFound:
		return http.StatusNotFound
	case errs.ClassPolicy:
		return http.StatusUnprocessableEntity
	case errs.ClassExternal:
		return http.StatusBadGateway
	case errs.ClassConflict:
		return http.StatusConflict
	case errs.ClassAuth:
		return http.StatusUnauthorized
	case errs.ClassForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func classForStatus(code int) errs.Class {
	switch code {
	case http.StatusBadRequest:
		return errs.ClassValidation
	case http.StatusNotFound:
		return errs.ClassNotFound
	case http.StatusUnauthorized:
		return errs.ClassAuth
	case http.StatusForbidden:
		return errs.ClassForbidden
	case http.StatusTooManyRequests:
		return errs.ClassPolicy
	default:
		return errs.ClassInternal
	}
}

// DecodeJSON reads the request body into dst. Unknown fields are rejected.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", errs.ErrValidation, err)
	}
	return nil
}

// PathID parses a positive integer path variable
func PathID(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", errs.ErrValidation, name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", errs.ErrValidation, name)
	}
	return id, nil
}
