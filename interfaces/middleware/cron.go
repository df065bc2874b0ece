package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"creatorpulse/domain/dto"

	"github.com/gin-gonic/gin"
)

// CronAuth guards the background-job endpoints with a shared bearer secret.
// Only POST requests mutate anything, so reads pass through unguarded.
func CronAuth(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodPost {
			ctx.Next()
			return
		}
		authorization := ctx.Request.Header.Get("Authorization")
		parts := strings.Split(authorization, "Bearer ")
		if len(parts) != 2 || subtle.ConstantTimeCompare([]byte(parts[1]), []byte(secret)) != 1 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.Res{
				ResponseCode:    "401",
				ResponseMessage: "Unauthorized",
			})
			return
		}
		ctx.Next()
	}
}
