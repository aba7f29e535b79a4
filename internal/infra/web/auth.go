package web

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ===== Session/JWT primitives =====
//
// The service does not run its own signup flow. Clients authenticate with
// the external identity provider and present its HS256 access token; the
// token subject is the user id. Mint exists for local development and the
// demo client.

type AuthManager struct {
	secret []byte
	dev    bool
}

func NewAuthManager(secret string, dev bool) *AuthManager {
	return &AuthManager{secret: []byte(secret), dev: dev}
}

type UserClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func (a *AuthManager) Mint(subject, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := UserClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   subject,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func (a *AuthManager) ParseFromRequest(r *http.Request) (*UserClaims, error) {
	hdr := r.Header.Get("Authorization")
	if hdr == "" {
		return nil, errors.New("missing token")
	}
	if !strings.HasPrefix(strings.ToLower(hdr), "bearer ") {
		return nil, errors.New("malformed authorization header")
	}
	return a.parse(strings.TrimSpace(hdr[7:]))
}

func (a *AuthManager) parse(tok string) (*UserClaims, error) {
	claims := &UserClaims{}
	tkn, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

type ctxKey string

const (
	ctxKeyUserID ctxKey = "auth_user_id"
	ctxKeyEmail  ctxKey = "auth_email"
)

func withUser(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyUserID, userID)
	return context.WithValue(ctx, ctxKeyEmail, email)
}

func userID(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyUserID).(string)
	return v
}

func userEmail(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyEmail).(string)
	return v
}
