package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Flowerstalk storefront gateway 🌸.

The following are the endpoints for this service:

SHOP
- GET "/items" - Browse the flower catalog
- GET "/items/:itemId" - Get one catalog item
- GET "/locations" - List serviced delivery cities
- GET "/cart" - View the session cart with totals
- POST "/cart/items" - Add an item to the cart
- PATCH "/cart/items/:itemId" - Change a line quantity
- DELETE "/cart/items/:itemId" - Remove a line
- DELETE "/cart" - Empty the cart
- POST "/checkout" - Place an order and get a payment link
- GET "/track/:reference" - Track an order by reference

ADMIN
- GET "/admin/orders" - List orders
- GET "/admin/orders/:orderId" - Get one order
- POST "/admin/orders/:orderId/accept" - Accept a pending order
- POST "/admin/orders/:orderId/assign" - Assign a rider
- POST "/admin/orders/:orderId/cancel" - Cancel an order
- GET "/admin/riders" - List delivery riders
- PATCH "/admin/riders/:riderId" - Approve or reject a rider
- POST "/admin/locations" - Add a serviced delivery city
- PUT "/admin/locations/:locationId" - Edit a serviced city
- DELETE "/admin/locations/:locationId" - Remove a serviced city

RIDER
- GET "/rider/orders" - List assigned orders
- GET "/rider/orders/:orderId" - Get one assigned order
- POST "/rider/orders/:orderId/advance" - Move an order one step forward`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

func Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
