package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// A session token is what the caller holds between login and logout: it
// proves a successful authentication, it does not re-check the passcode.

const tokenIssuer = "minibank"

var ErrInvalidToken = errors.New("invalid token")

type SessionClaims struct {
	AccountID string `json:"acc"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(config AuthConfig) TokenManager {
	return TokenManager{
		secret: []byte(config.Secret),
		ttl:    config.TokenTTL,
	}
}

func (tm TokenManager) Issue(accountID string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

// Verify returns the account id carried by a valid session token.
func (tm TokenManager) Verify(tokenStr string) (string, error) {
	claims := new(SessionClaims)
	parser := jwt.NewParser(
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)

	token, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return tm.secret, nil
	})
	if err != nil || !token.Valid || claims.AccountID == "" {
		return "", ErrInvalidToken
	}

	return claims.AccountID, nil
}

type accountIDKey struct{}

func accountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(accountIDKey{}).(string)
	return id, ok
}

func authMiddleware(tokens TokenManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			http.Error(w, "Missing bearer token", http.StatusUnauthorized)
			return
		}

		accountID, err := tokens.Verify(tokenStr)
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), accountIDKey{}, accountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
