package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/flowerstalk/storefront-gateway/controllers"
	"github.com/flowerstalk/storefront-gateway/middlewares"
)

func RiderRoutes(server *gin.Engine, rider *controllers.RiderController, jwtSecret string) {
	group := server.Group("/rider", middlewares.Authenticate(jwtSecret), middlewares.RequireRider())
	{
		group.GET("/orders", rider.GetOrders)
		group.GET("/orders/:orderId", rider.GetOrder)
		group.POST("/orders/:orderId/advance", rider.AdvanceOrder)
	}
}
