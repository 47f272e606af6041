package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/flowerstalk/storefront-gateway/controllers"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
	server.GET("/healthz", controllers.Healthz)
}
