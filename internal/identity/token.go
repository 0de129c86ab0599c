package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrBadToken = errors.New("invalid token")

type Claims struct {
	Email string
	Name  string
}

// TokenManager signs and verifies HS256 bearer tokens carrying the caller
// email. emailClaim names the claim holding the email, so tokens from an
// external issuer with a different claim layout can be accepted.
type TokenManager struct {
	secret     []byte
	emailClaim string
}

func NewTokenManager(secret, emailClaim string) *TokenManager {
	if emailClaim == "" {
		emailClaim = "email"
	}

	return &TokenManager{secret: []byte(secret), emailClaim: emailClaim}
}

func (tm *TokenManager) Create(c Claims, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		tm.emailClaim: c.Email,
		"iat":         jwt.NewNumericDate(time.Now()),
	}

	if c.Name != "" {
		claims["name"] = c.Name
	}

	if ttl > 0 {
		claims["exp"] = jwt.NewNumericDate(time.Now().Add(ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

func (tm *TokenManager) Verify(token string) (Claims, error) {
	claims := jwt.MapClaims{}

	_, err := jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (any, error) {
		return tm.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %s", ErrBadToken, err.Error())
	}

	email, _ := claims[tm.emailClaim].(string)
	if email == "" {
		return Claims{}, fmt.Errorf("%w: no %s claim", ErrBadToken, tm.emailClaim)
	}

	name, _ := claims["name"].(string)

	return Claims{Email: email, Name: name}, nil
}
