package pkg

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestParseJwtToken(t *testing.T) {
	const secret = "s3cret"

	t.Run("valid", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"uid": 42})
		claims, err := ParseJwtToken(token, secret)
		require.NoError(t, err)
		assert.Equal(t, int64(42), claims.UID)
	})

	t.Run("missing uid", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"sub": "someone"})
		claims, err := ParseJwtToken(token, secret)
		require.NoError(t, err)
		assert.Zero(t, claims.UID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"uid": 42})
		_, err := ParseJwtToken(token, secret)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{
			"uid": 42,
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		_, err := ParseJwtToken(token, secret)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("unsigned", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"uid": 42})
		_, err := ParseJwtToken(token, secret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseJwtToken("not-a-token", secret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestGetTokenFromHeaders(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "", wantErr: ErrMissingToken},
		{header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidToken},
		{header: "Bearer   ", wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		got, err := GetTokenFromHeaders(tt.header)
		if tt.wantErr != nil {
			assert.ErrorIs(t, err, tt.wantErr, tt.header)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
