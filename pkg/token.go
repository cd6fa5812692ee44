package pkg

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// TokenClaims is the payload of the bearer tokens accepted on write routes.
type TokenClaims struct {
	UID int64 `json:"uid"`
	jwt.RegisteredClaims
}

var tokenParser = jwt.NewParser(
	jwt.WithValidMethods([]string{
		jwt.SigningMethodHS256.Alg(),
		jwt.SigningMethodHS384.Alg(),
		jwt.SigningMethodHS512.Alg(),
	}),
	jwt.WithIssuedAt(),
)

func ParseJwtToken(tokenString string, secretKey string) (TokenClaims, error) {
	var claims TokenClaims
	token, err := tokenParser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return []byte(secretKey), nil
	})
	if err != nil {
		return TokenClaims{}, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid {
		return TokenClaims{}, ErrInvalidToken
	}
	return claims, nil
}

func GetTokenFromHeaders(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return "", ErrInvalidToken
	}
	return token, nil
}
