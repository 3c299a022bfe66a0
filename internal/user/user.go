package user

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"discounts/pkg/domain"
	"discounts/pkg/hash"
	"discounts/pkg/logger"
	"discounts/pkg/metrics"
	"discounts/pkg/serrors"
	"discounts/pkg/storage"
	"discounts/pkg/token"
)

// noValidCredentialsReason is returned verbatim for every rejected login.
// The missing-user, missing-hash and wrong-password paths must stay
// byte-identical so responses cannot be used to enumerate accounts.
const noValidCredentialsReason = "Email or password are incorrect"

// service is the concrete implementation of the Service interface. It holds
// no per-request state; the injected collaborators are fixed at startup and
// safe for concurrent use.
type service struct {
	storage storage.Storage
	hasher  hash.Hasher
	issuer  token.Issuer

	// dummyHash is compared against when no user matches the email, so the
	// rejection takes as long as a real password check.
	dummyHash string
}

// New creates a Service backed by the given storage, hasher and token issuer.
func New(strg storage.Storage, hasher hash.Hasher, issuer token.Issuer) Service {
	// A hash of a value nobody can log in with. If hashing fails the dummy
	// stays empty and Compare returns false immediately, which only costs
	// the timing masking, not correctness.
	dummy, err := hasher.Hash("unused-dummy-credential")
	if err != nil {
		dummy = ""
	}

	return &service{
		storage:   strg,
		hasher:    hasher,
		issuer:    issuer,
		dummyHash: dummy,
	}
}

// Authenticate runs the login state machine: look the identity up by the raw
// email string, verify the password against the stored hash, and issue a
// session token. The lookup uses the email exactly as supplied; it is not
// parsed into a domain.Email first.
func (s *service) Authenticate(ctx context.Context, email, password string) (string, error) {
	found, err := s.storage.UserByEmail(ctx, email)
	if err != nil {
		// storage transport failures stay distinguishable from a rejection
		metrics.LoginAttempts.WithLabelValues(metrics.LoginResultError).Inc()

		return "", fmt.Errorf("could not look up user: %w", err)
	}

	if found == nil || found.PasswordHash == "" {
		// burn a comparison anyway so response timing does not reveal
		// whether the email exists
		s.compare(password, s.dummyHash)
		logger.Debug(ctx, "login rejected: unknown user or missing hash")
		metrics.LoginAttempts.WithLabelValues(metrics.LoginResultRejected).Inc()

		return "", serrors.With(serrors.ErrNoValidCredentials, noValidCredentialsReason)
	}

	if !s.compare(password, found.PasswordHash) {
		logger.Debug(ctx, "login rejected: password mismatch", zap.String("user_id", found.ID.String()))
		metrics.LoginAttempts.WithLabelValues(metrics.LoginResultRejected).Inc()

		return "", serrors.With(serrors.ErrNoValidCredentials, noValidCredentialsReason)
	}

	signed, err := s.issuer.Issue(token.Claims{
		UserID: found.ID.String(),
		Email:  found.Email,
	})
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.LoginResultError).Inc()

		return "", fmt.Errorf("could not issue token: %w", err)
	}

	metrics.LoginAttempts.WithLabelValues(metrics.LoginResultSuccess).Inc()

	return signed, nil
}

// compare wraps Hasher.Compare with a latency observation.
func (s *service) compare(password, hashed string) bool {
	start := time.Now()
	ok := s.hasher.Compare(password, hashed)
	metrics.PasswordCompareDuration.Observe(time.Since(start).Seconds())

	return ok
}

// Create registers a new user: the email is validated into a domain.Email,
// the password is hashed, and the identity is persisted. Any persistence
// failure (e.g. a uniqueness violation) is wrapped as ErrUserCreation.
func (s *service) Create(ctx context.Context, input NewUser) (*domain.User, error) {
	email, err := domain.ParseEmail(input.Email)
	if err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUserCreation, err, "could not hash password")
	}

	stored, err := s.storage.StoreUser(ctx, domain.User{
		Email:        email.String(),
		FullName:     input.FullName,
		PasswordHash: hashed,
	})
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUserCreation, err, "could not store user")
	}

	logger.Debug(ctx, "user created", zap.String("user_id", stored.ID.String()))

	// callers get the identity, never the stored credential
	stored.PasswordHash = ""

	return stored, nil
}

// Get fetches a user by ID.
func (s *service) Get(ctx context.Context, id domain.UserID) (*domain.User, error) {
	found, err := s.storage.UserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	if found == nil {
		return nil, serrors.With(serrors.ErrNotFound, "user %s not found", id)
	}

	return found, nil
}

// Delete soft-deletes a user by ID.
func (s *service) Delete(ctx context.Context, id domain.UserID) error {
	deleted, err := s.storage.DeleteUser(ctx, id)
	if err != nil {
		return fmt.Errorf("could not delete user: %w", err)
	}
	if deleted == nil {
		return serrors.With(serrors.ErrNotFound, "user %s not found", id)
	}

	return nil
}
