package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/flowerstalk/storefront-gateway/controllers"
)

func ShopRoutes(server *gin.Engine, shop *controllers.ShopController) {
	server.GET("/items", shop.GetItems)
	server.GET("/items/:itemId", shop.GetItem)
	server.GET("/locations", shop.GetLocations)
	server.GET("/track/:reference", shop.TrackOrder)

	cart := server.Group("/cart")
	{
		cart.GET("", shop.GetCart)
		cart.DELETE("", shop.ClearCart)
		cart.POST("/items", shop.AddCartItem)
		cart.PATCH("/items/:itemId", shop.UpdateCartItem)
		cart.DELETE("/items/:itemId", shop.DeleteCartItem)
	}

	server.POST("/checkout", shop.Checkout)
}
