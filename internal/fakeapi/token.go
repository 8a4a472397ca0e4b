package fakeapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errInvalidToken = errors.New("invalid token")

// claims carries the user id in the standard subject.
type claims struct {
	jwt.RegisteredClaims
	Admin bool `json:"admin,omitempty"`
}

// generateToken returns a signed HS256 token and its id.
func generateToken(userID int, admin bool, secret []byte, now time.Time, ttl time.Duration) (string, string, error) {
	jti := uuid.NewString()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Admin: admin,
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// parseToken validates the signature and, unless allowExpired, the expiry.
func parseToken(tokenString string, secret []byte, now time.Time, allowExpired bool) (*claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}
	if allowExpired {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errInvalidToken
	}
	return c, nil
}

func (c *claims) userID() int {
	id, _ := strconv.Atoi(c.Subject)
	return id
}
