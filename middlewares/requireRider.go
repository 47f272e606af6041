package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RequireRider() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims := ClaimsFrom(ctx)
		if claims == nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != "rider" {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Rider access required"})
			return
		}

		ctx.Next()
	}
}
