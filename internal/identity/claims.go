package identity

import (
	"errors"
	"time"

	"github.com/BloggingApp/post-editor/internal/model"
	"github.com/BloggingApp/post-editor/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
)

var ErrMalformedToken = errors.New("malformed access token")

// parseClaims reads the token without verifying its signature; the posts API
// verifies it on every write.
func parseClaims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, ErrMalformedToken
	}
	return claims, nil
}

func userFromToken(token string) (*model.User, error) {
	claims, err := parseClaims(token)
	if err != nil {
		return nil, err
	}

	email := utils.EmailFromClaims(claims)
	if email == "" {
		return nil, ErrMalformedToken
	}
	name, _ := claims["name"].(string)

	return &model.User{Email: email, Name: name}, nil
}

func tokenExpiry(token string) (time.Time, bool) {
	claims, err := parseClaims(token)
	if err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func tokenTTL(token string) (time.Duration, bool) {
	exp, ok := tokenExpiry(token)
	if !ok {
		return 0, false
	}
	ttl := time.Until(exp)
	if ttl <= 0 {
		return time.Millisecond, true
	}
	return ttl, true
}
