package v1handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"discounts/internal/api/handler/v1handler"
	"discounts/internal/user"
	"discounts/pkg/domain"
	"discounts/pkg/serrors"
)

func TestCreateUser(t *testing.T) {
	t.Parallel()

	id := domain.UserID(uuid.New())
	users := &fakeUsers{
		createFunc: func(_ context.Context, input user.NewUser) (*domain.User, error) {
			require.Equal(t, "ana@example.com", input.Email)
			require.Equal(t, "Ana", input.FullName)

			return &domain.User{ID: id, Email: input.Email, FullName: input.FullName}, nil
		},
	}

	res := do(t, v1handler.Deps{Users: users}, http.MethodPost, "/users",
		`{"email":"ana@example.com","password":"hunter2","fullName":"Ana"}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var body struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	decodeBody(t, res, &body)
	require.Equal(t, id.String(), body.ID)
	require.Equal(t, "ana@example.com", body.Email)
}

func TestCreateUser_InvalidEmail(t *testing.T) {
	t.Parallel()

	users := &fakeUsers{
		createFunc: func(context.Context, user.NewUser) (*domain.User, error) {
			return nil, serrors.With(serrors.ErrInvalidEmail, "invalid email %q", "nope")
		},
	}

	res := do(t, v1handler.Deps{Users: users}, http.MethodPost, "/users",
		`{"email":"nope","password":"x","fullName":"X"}`)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	var body struct {
		Code string `json:"code"`
	}
	decodeBody(t, res, &body)
	require.Equal(t, "INVALID_EMAIL", body.Code)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	t.Parallel()

	users := &fakeUsers{
		createFunc: func(context.Context, user.NewUser) (*domain.User, error) {
			return nil, serrors.Wrap(serrors.ErrUserCreation,
				errors.New("duplicate key value"), "could not store user")
		},
	}

	res := do(t, v1handler.Deps{Users: users}, http.MethodPost, "/users",
		`{"email":"ana@example.com","password":"x","fullName":"Ana"}`)
	require.Equal(t, http.StatusConflict, res.StatusCode)

	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, res, &body)
	// the storage cause must not leak to the client
	require.NotContains(t, body.Message, "duplicate key")
}

func TestGetUser(t *testing.T) {
	t.Parallel()

	id := domain.UserID(uuid.New())
	users := &fakeUsers{
		getFunc: func(_ context.Context, got domain.UserID) (*domain.User, error) {
			if got == id {
				return &domain.User{ID: id, Email: "ana@example.com"}, nil
			}

			return nil, serrors.With(serrors.ErrNotFound, "user %s not found", got)
		},
	}

	t.Run("found", func(t *testing.T) {
		res := do(t, v1handler.Deps{Users: users}, http.MethodGet, "/users/"+id.String(), "")
		require.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("absent", func(t *testing.T) {
		res := do(t, v1handler.Deps{Users: users}, http.MethodGet, "/users/"+uuid.NewString(), "")
		require.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	t.Run("malformed id", func(t *testing.T) {
		res := do(t, v1handler.Deps{Users: users}, http.MethodGet, "/users/not-a-uuid", "")
		require.Equal(t, http.StatusBadRequest, res.StatusCode)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	id := domain.UserID(uuid.New())
	users := &fakeUsers{
		deleteFunc: func(_ context.Context, got domain.UserID) error {
			if got == id {
				return nil
			}

			return serrors.With(serrors.ErrNotFound, "user %s not found", got)
		},
	}

	res := do(t, v1handler.Deps{Users: users}, http.MethodDelete, "/users/"+id.String(), "")
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	res = do(t, v1handler.Deps{Users: users}, http.MethodDelete, "/users/"+uuid.NewString(), "")
	require.Equal(t, http.StatusNotFound, res.StatusCode)
}
