// Package v1handler implements the version 1 HTTP API on top of the user and
// discount services. Handlers decode the wire shapes, delegate to the
// services and translate semantic errors into HTTP status codes.
package v1handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"discounts/internal/discount"
	"discounts/internal/user"
	"discounts/pkg/logger"
	"discounts/pkg/serrors"
)

// Deps bundles the services the handlers delegate to.
type Deps struct {
	Users     user.Service
	Discounts discount.Service
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Routes returns the chi router carrying all v1 endpoints. The returned
// router is meant to be mounted under the version prefix by the server.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/auth/login", h.Login)

	r.Post("/users", h.CreateUser)
	r.Get("/users/{userID}", h.GetUser)
	r.Delete("/users/{userID}", h.DeleteUser)

	r.Post("/discounts", h.PublishDiscounts)
	r.Get("/discounts/nearby", h.NearbyDiscounts)

	return r
}

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusForError maps a semantic error kind to an HTTP status code.
func statusForError(err error) int {
	switch {
	case errors.Is(err, serrors.ErrInvalidEmail),
		errors.Is(err, serrors.ErrInvalidLocation),
		errors.Is(err, serrors.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, serrors.ErrNoValidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, serrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, serrors.ErrConflict),
		errors.Is(err, serrors.ErrUserCreation):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders an error as JSON. Internal failures are logged and
// replaced with a generic message so no storage or stack detail leaks out.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)

	code := "INTERNAL"
	message := "internal server error"

	var sErr *serrors.Error
	if status != http.StatusInternalServerError && errors.As(err, &sErr) {
		code = sErr.Kind().Error()
		// only the message is exposed, never the wrapped cause
		message = sErr.Message()
		if message == "" {
			message = code
		}
	} else {
		logger.Error(r.Context(), "request failed", zap.Error(err))
	}

	writeJSON(w, r, status, errorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(r.Context(), "could not encode response", zap.Error(err))
	}
}

// decodeJSON reads the request body into dst, rejecting malformed or
// oversized payloads as bad requests.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "could not decode request body")
	}

	return nil
}
