package middlewares

import (
	"crypto/subtle"
	"log"
	"os"

	"github.com/gin-gonic/gin"
)

func SecureHeaders(ctx *gin.Context) {
	ctx.Header("X-Content-Type-Options", "nosniff")
	ctx.Header("X-Frame-Options", "DENY")
	ctx.Header("Referrer-Policy", "no-referrer")
}

// SharedSecret guards machine-to-machine routes (payment events, task
// triggers) with a static header secret configured per caller.
func SharedSecret(header, envKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		secret := os.Getenv(envKey)
		provided := ctx.GetHeader(header)
		if secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(provided)) != 1 {
			log.Printf("Rejected request to %s: bad %s\n", ctx.FullPath(), header)
			ctx.AbortWithStatus(401)
			return
		}
	}
}
