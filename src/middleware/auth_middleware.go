package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 168 * time.Hour

type contextKey string

const (
	userIDKey     contextKey = "user_id"
	usernameKey   contextKey = "username"
	superAdminKey contextKey = "super_admin"
	requestIDKey  contextKey = "request_id"
)

// Claims is the payload of tokens issued on login and register.
type Claims struct {
	UserID     int64  `json:"user_id"`
	Username   string `json:"username"`
	SuperAdmin bool   `json:"super_admin"`
	jwt.RegisteredClaims
}

// IssueToken signs a week-long HS256 token for the user.
func IssueToken(secret string, userID int64, username string, superAdmin bool, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:     userID,
		Username:   username,
		SuperAdmin: superAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	})
	return token.SignedString([]byte(secret))
}

// ParseTokenFromRequest extracts and validates JWT token from request, returning claims if valid
func ParseTokenFromRequest(r *http.Request, secret string) (*Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, errors.New("missing token")
	}
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenString == "" {
		return nil, errors.New("missing token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID <= 0 {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// WithClaims stores the authenticated user in ctx.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	ctx = context.WithValue(ctx, userIDKey, c.UserID)
	ctx = context.WithValue(ctx, usernameKey, c.Username)
	return context.WithValue(ctx, superAdminKey, c.SuperAdmin)
}

func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

func IsSuperAdmin(ctx context.Context) bool {
	admin, _ := ctx.Value(superAdminKey).(bool)
	return admin
}

func JWTAuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := ParseTokenFromRequest(r, secret)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, err.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func SuperAdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsSuperAdmin(r.Context()) {
			WriteError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}
