package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/flowerstalk/storefront-gateway/controllers"
	"github.com/flowerstalk/storefront-gateway/middlewares"
)

func AdminRoutes(server *gin.Engine, admin *controllers.AdminController, jwtSecret string) {
	group := server.Group("/admin", middlewares.Authenticate(jwtSecret), middlewares.RequireAdmin())
	{
		group.GET("/orders", admin.GetOrders)
		group.GET("/orders/:orderId", admin.GetOrder)
		group.POST("/orders/:orderId/accept", admin.AcceptOrder)
		group.POST("/orders/:orderId/assign", admin.AssignRider)
		group.POST("/orders/:orderId/cancel", admin.CancelOrder)
		group.GET("/riders", admin.GetRiders)
		group.PATCH("/riders/:riderId", admin.UpdateRiderApproval)
		group.POST("/locations", admin.CreateLocation)
		group.PUT("/locations/:locationId", admin.UpdateLocation)
		group.DELETE("/locations/:locationId", admin.DeleteLocation)
	}
}
