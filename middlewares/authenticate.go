package middlewares

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextClaims = "user"
	ContextToken  = "token"
)

// Authenticate parses the bearer token and stores its claims and the
// raw token in the request context. Tokens are issued by the external
// auth service; the gateway only verifies and forwards them.
func Authenticate(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token required"})
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		ctx.Set(ContextClaims, claims)
		ctx.Set(ContextToken, raw)
		ctx.Next()
	}
}

// ClaimsFrom returns the parsed claims, or nil before Authenticate ran.
func ClaimsFrom(ctx *gin.Context) jwt.MapClaims {
	value, exists := ctx.Get(ContextClaims)
	if !exists {
		return nil
	}
	claims, _ := value.(jwt.MapClaims)
	return claims
}

// TokenFrom returns the raw bearer token for forwarding upstream.
func TokenFrom(ctx *gin.Context) string {
	value, exists := ctx.Get(ContextToken)
	if !exists {
		return ""
	}
	token, _ := value.(string)
	return token
}

// SubjectFrom returns the token's subject claim (the caller's id).
func SubjectFrom(ctx *gin.Context) string {
	claims := ClaimsFrom(ctx)
	if claims == nil {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}
