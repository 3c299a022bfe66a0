package v1handler

import (
	"net/http"
)

// loginRequest is the wire shape of a credential check.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse carries the signed session token.
type loginResponse struct {
	Token string `json:"token"`
}

// Login verifies credentials and returns a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)

		return
	}

	signed, err := h.deps.Users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, r, http.StatusOK, loginResponse{Token: signed})
}
