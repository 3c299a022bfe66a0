package v1handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"discounts/internal/user"
	"discounts/pkg/domain"
	"discounts/pkg/serrors"
)

// createUserRequest is the wire shape of a registration.
type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// userIDParam parses the userID path parameter.
func userIDParam(r *http.Request) (domain.UserID, error) {
	raw := chi.URLParam(r, "userID")
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return domain.UserID{}, serrors.With(serrors.ErrBadRequest, "invalid user ID %q", raw)
	}

	return domain.UserID(parsed), nil
}

// CreateUser registers a new user.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)

		return
	}

	created, err := h.deps.Users.Create(r.Context(), user.NewUser{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, r, http.StatusCreated, created)
}

// GetUser returns a user by ID.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	found, err := h.deps.Users.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, r, http.StatusOK, found)
}

// DeleteUser soft-deletes a user by ID.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	if err := h.deps.Users.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
