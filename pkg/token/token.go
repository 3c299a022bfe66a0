// Package token issues signed, time-bound session tokens.
//
// The only implementation is an HS256 JWT issuer configured with a shared
// secret and token lifetime at process start. Signing failures are terminal
// for the request that triggered them.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"discounts/pkg/serrors"
)

// DefaultTTL is the token lifetime used when configuration does not provide one.
const DefaultTTL = time.Hour

// Claims is the payload embedded in every issued token.
type Claims struct {
	// UserID is the authenticated user's ID; it becomes the JWT subject.
	UserID string
	// Email is the address the user authenticated with.
	Email string
}

// Issuer produces signed credentials from a claims payload.
type Issuer interface {
	// Issue returns a signed, self-contained token embedding the claims and
	// the configured expiration.
	Issue(claims Claims) (string, error)
}

// sessionClaims is the JWT wire shape of Claims.
type sessionClaims struct {
	Email string `json:"email"`

	jwt.RegisteredClaims
}

// JWT issues HS256-signed JSON Web Tokens. The secret and lifetime are fixed
// at construction; the issuer holds no other state and is safe for concurrent
// use.
type JWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWT creates a JWT issuer with the given shared secret and token
// lifetime. A non-positive ttl falls back to DefaultTTL.
func NewJWT(secret string, ttl time.Duration) (*JWT, error) {
	if secret == "" {
		return nil, serrors.With(serrors.ErrInternal, "jwt secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &JWT{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs the claims into a compact JWT string.
func (j *JWT) Issue(claims Claims) (string, error) {
	now := j.now()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Email: claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	})

	signed, err := tok.SignedString(j.secret)
	if err != nil {
		return "", serrors.Wrap(serrors.ErrInternal, err, "could not sign token")
	}

	return signed, nil
}
