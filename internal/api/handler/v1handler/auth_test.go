package v1handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"discounts/internal/api/handler/v1handler"
	"discounts/pkg/serrors"
)

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	users := &fakeUsers{
		authenticateFunc: func(_ context.Context, email, password string) (string, error) {
			require.Equal(t, "ana@example.com", email)
			require.Equal(t, "hunter2", password)

			return "signed-token", nil
		},
	}

	res := do(t, v1handler.Deps{Users: users},
		http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"hunter2"}`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, res, &body)
	require.Equal(t, "signed-token", body.Token)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	users := &fakeUsers{
		authenticateFunc: func(context.Context, string, string) (string, error) {
			return "", serrors.With(serrors.ErrNoValidCredentials, "Email or password are incorrect")
		},
	}

	res := do(t, v1handler.Deps{Users: users},
		http.MethodPost, "/auth/login", `{"email":"ghost@example.com","password":"nope"}`)
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	decodeBody(t, res, &body)
	require.Equal(t, "NO_VALID_CREDENTIALS", body.Code)
	require.Equal(t, "Email or password are incorrect", body.Message)
}

func TestLogin_MalformedBody(t *testing.T) {
	t.Parallel()

	res := do(t, v1handler.Deps{Users: &fakeUsers{}},
		http.MethodPost, "/auth/login", `{"email":`)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}
