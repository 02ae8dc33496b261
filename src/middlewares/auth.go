package middlewares

import (
	"log"
	"os"
	"strconv"
	"strings"
	"vrb/src/db"
	"vrb/src/models"
	"vrb/src/types"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

func AuthMiddleware(ctx *gin.Context) {
	bearerToken := ctx.Request.Header.Get("Authorization")
	if !strings.HasPrefix(bearerToken, "Bearer") {
		ctx.AbortWithStatus(401)
		return
	}
	reqToken := strings.Split(bearerToken, " ")[1]
	if reqToken == "" {
		ctx.AbortWithStatus(401)
	}
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
		return jwtKey, nil
	})
	if err != nil {
		log.Printf("token error: %s\n", err.Error())
		if err == jwt.ErrSignatureInvalid || err == jwt.ErrTokenMalformed {
			ctx.AbortWithStatus(401)
			return
		}
		ctx.AbortWithError(401, err)
		return
	}
	if !tkn.Valid {
		ctx.AbortWithStatus(401)
		return
	}

	db := db.GetDb()
	var host models.Host
	hid, err := strconv.Atoi(claims.Subject)
	if err != nil {
		log.Println("error parsing claims:", err.Error())
		ctx.AbortWithStatus(401)
	}
	db.Model(&models.Host{}).Where(&models.Host{ID: uint(hid)}).Find(&host)

	if uint(hid) != host.ID || host.ID < 1 {
		ctx.AbortWithStatus(401)
		return
	}
	ctx.Set("email", host.Email)
	ctx.Set("id", host.ID)
	ctx.Set("role", host.Role)
	if host.TenantID != nil {
		ctx.Set("tenant_id", host.TenantID.String())
	}
}
