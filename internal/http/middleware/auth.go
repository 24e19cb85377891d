// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides bearer-token authentication. Identity tokens are HS256
// JWTs minted by the identity provider; the payload carries the stable user
// id ("uid") and the declared role. The middleware verifies the signature,
// stores the identity in the Gin context, and rejects unauthenticated
// requests with the standard error envelope.
//
// A header fallback ("X-User-ID") is honored when no JWT secret is
// configured. That mode exists for local development and for handler tests,
// which exercise the API without a token mint.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// ctxKeyUserID is the Gin context key holding the authenticated user id.
	ctxKeyUserID = "userID"
	// ctxKeyUserRole is the Gin context key holding the token's role claim.
	ctxKeyUserRole = "userRole"
)

// Claims is the JWT payload carried by identity tokens.
type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SignToken mints an HS256 identity token for userID with the given role and
// lifetime. Used by the dev token endpoint and by tests.
func SignToken(secret, userID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseToken verifies an HS256 identity token and returns its claims.
func ParseToken(secret, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// Auth returns a Gin middleware that authenticates requests.
//
// Behavior:
//   - With a non-empty secret, the request must carry
//     "Authorization: Bearer <jwt>"; invalid or missing tokens get 401.
//   - With an empty secret (dev/test mode), identity is taken from the
//     X-User-ID header; requests without it get 401.
//
// On success the user id (and role claim, when present) are stored in the
// Gin context for downstream middleware and handlers.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			uid := strings.TrimSpace(c.GetHeader("X-User-ID"))
			if uid == "" {
				unauthorized(c, "missing X-User-ID header")
				return
			}
			c.Set(ctxKeyUserID, uid)
			c.Next()
			return
		}

		h := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(h, prefix) {
			unauthorized(c, "missing bearer token")
			return
		}
		claims, err := ParseToken(secret, strings.TrimSpace(h[len(prefix):]))
		if err != nil || claims.UserID == "" {
			unauthorized(c, "invalid token")
			return
		}
		c.Set(ctxKeyUserID, claims.UserID)
		if claims.Role != "" {
			c.Set(ctxKeyUserRole, claims.Role)
		}
		c.Next()
	}
}

// UserIDFrom returns the authenticated user id stored by Auth, or "".
func UserIDFrom(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get("X-Request-ID"),
		"code":       "unauthorized",
		"message":    msg,
	})
}
