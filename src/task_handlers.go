package main

import (
	"net/http"
	"time"
	"vrb/src/common"
	"vrb/src/middlewares"

	"github.com/gin-gonic/gin"
)

// taskRoutes are the external periodic triggers (a cron or cloud
// scheduler hitting the API). The sweep itself carries no logic here:
// it hands an explicit clock reading to the hold manager.
func taskRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	tasks := apiv1.Group("/tasks")
	tasks.Use(middlewares.SharedSecret("x-task-secret", "TASK_SECRET"))
	tasks.
		POST("/sweep", func(ctx *gin.Context) {
			resp := common.ReleaseExpired(time.Now().UTC())
			ctx.JSON(http.StatusOK, resp)
		})
	return apiv1
}
