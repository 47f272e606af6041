package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/flowerstalk/storefront-gateway/checkout"
	"github.com/flowerstalk/storefront-gateway/models"
	"github.com/flowerstalk/storefront-gateway/store"
	"github.com/flowerstalk/storefront-gateway/upstream"
)

// sessionCookie identifies an anonymous shopper. Carts are keyed by it.
const sessionCookie = "fs_session"

// sessionMaxAge is thirty days in seconds.
const sessionMaxAge = 30 * 24 * 60 * 60

// maxAddQuantity bounds how many units one add request may put in the
// cart. The quantity is client input on an unauthenticated endpoint.
const maxAddQuantity = 99

// ShopAPI is the slice of the remote API the public storefront needs.
type ShopAPI interface {
	ListItems(ctx context.Context, page, limit int) ([]models.Product, *upstream.Pagination, error)
	GetItem(ctx context.Context, id string) (*models.Product, error)
	ListLocations(ctx context.Context) ([]models.DeliveryLocation, error)
	CreateOrder(ctx context.Context, payload any) (*upstream.OrderReceipt, error)
	TrackOrder(ctx context.Context, reference string) (*models.Order, error)
}

// ShopController serves the public storefront: catalog browsing, the
// session cart, checkout, and order tracking.
type ShopController struct {
	api   ShopAPI
	carts *store.CartStore
	rules checkout.Rules
	log   zerolog.Logger
}

func NewShopController(api ShopAPI, carts *store.CartStore, rules checkout.Rules, log zerolog.Logger) *ShopController {
	return &ShopController{api: api, carts: carts, rules: rules, log: log}
}

// session returns the shopper's session id, minting a cookie on first
// contact.
func (sc *ShopController) session(ctx *gin.Context) string {
	if id, err := ctx.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	ctx.SetCookie(sessionCookie, id, sessionMaxAge, "/", "", false, true)
	return id
}

func (sc *ShopController) GetItems(ctx *gin.Context) {
	page, limit := pageParams(ctx)
	products, pagination, err := sc.api.ListItems(ctx.Request.Context(), page, limit)
	if err != nil {
		sendUpstreamError(ctx, err, msgItemNotFound)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"items":    products,
		"metadata": metadata(pagination),
	})
}

func (sc *ShopController) GetItem(ctx *gin.Context) {
	product, err := sc.api.GetItem(ctx.Request.Context(), ctx.Param("itemId"))
	if err != nil {
		sendUpstreamError(ctx, err, msgItemNotFound)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"item": product})
}

func (sc *ShopController) GetLocations(ctx *gin.Context) {
	locations, err := sc.api.ListLocations(ctx.Request.Context())
	if err != nil {
		sendUpstreamError(ctx, err, msgUpstreamUnavailable)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"locations": locations})
}

// GetCart returns the session cart with totals. The optional method and
// city query values preview the shipping fee for a delivery city; a
// pickup or unmatched city previews at zero.
func (sc *ShopController) GetCart(ctx *gin.Context) {
	cart := sc.carts.Get(sc.session(ctx))

	shippingFee := 0
	if ctx.Query("method") == models.DeliveryTypeDelivery {
		if city := ctx.Query("city"); city != "" {
			locations, err := sc.api.ListLocations(ctx.Request.Context())
			if err != nil {
				sendUpstreamError(ctx, err, msgUpstreamUnavailable)
				return
			}
			shippingFee = models.DeliveryFeeFor(locations, city)
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"items":  cart.Lines(),
		"totals": cart.Totals(shippingFee),
	})
}

// AddCartItem resolves the item against the catalog before adding it,
// so the cart always carries the server's price, never the client's.
func (sc *ShopController) AddCartItem(ctx *gin.Context) {
	var body struct {
		ItemID   string `json:"itemId" binding:"required"`
		Quantity int    `json:"quantity"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if body.Quantity < 1 {
		body.Quantity = 1
	}
	if body.Quantity > maxAddQuantity {
		sendErrorResponse(ctx, http.StatusBadRequest, msgQuantityTooLarge)
		return
	}

	product, err := sc.api.GetItem(ctx.Request.Context(), body.ItemID)
	if err != nil {
		sendUpstreamError(ctx, err, msgItemNotFound)
		return
	}

	cart := sc.carts.Get(sc.session(ctx))
	cart.AddItem(product.ID, product.Name, product.Price, product.ImageURL, body.Quantity)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"items":  cart.Lines(),
		"totals": cart.Totals(0),
	})
}

func (sc *ShopController) UpdateCartItem(ctx *gin.Context) {
	var body struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	cart := sc.carts.Get(sc.session(ctx))
	cart.UpdateQuantity(ctx.Param("itemId"), *body.Quantity)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"items":  cart.Lines(),
		"totals": cart.Totals(0),
	})
}

func (sc *ShopController) DeleteCartItem(ctx *gin.Context) {
	cart := sc.carts.Get(sc.session(ctx))
	cart.RemoveItem(ctx.Param("itemId"))

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"items":  cart.Lines(),
		"totals": cart.Totals(0),
	})
}

func (sc *ShopController) ClearCart(ctx *gin.Context) {
	sc.carts.Get(sc.session(ctx)).Clear()
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared."})
}

type checkoutRequest struct {
	Method   string                 `json:"method"`
	Contact  checkout.Contact       `json:"contact"`
	Delivery checkout.DeliveryInput `json:"delivery"`
	Pickup   checkout.PickupInput   `json:"pickup"`
}

// Checkout validates the form, submits the order, and clears the cart
// only once the API has confirmed it with a payment link. Any failure
// leaves the cart untouched for another attempt.
func (sc *ShopController) Checkout(ctx *gin.Context) {
	var body checkoutRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	// The frontends historically sent "door-delivery".
	method := body.Method
	if method == "door-delivery" {
		method = models.DeliveryTypeDelivery
	}

	var locations []models.DeliveryLocation
	if method == models.DeliveryTypeDelivery {
		var err error
		locations, err = sc.api.ListLocations(ctx.Request.Context())
		if err != nil {
			sendUpstreamError(ctx, err, msgUpstreamUnavailable)
			return
		}
	}

	sessionID := sc.session(ctx)
	cart := sc.carts.Get(sessionID)

	payload, err := checkout.Build(cart, method, body.Contact, body.Delivery, body.Pickup, locations, sc.rules)
	if err != nil {
		var verr *checkout.ValidationError
		if errors.As(err, &verr) {
			sendJSONResponse(ctx, http.StatusBadRequest, gin.H{
				"message": "Please correct the highlighted fields",
				"errors":  verr.Messages,
			})
			return
		}
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	receipt, err := sc.api.CreateOrder(ctx.Request.Context(), payload)
	if err != nil {
		sc.log.Warn().Err(err).Msg("order submission failed")
		sendUpstreamError(ctx, err, msgUpstreamUnavailable)
		return
	}

	cart.Clear()
	sc.log.Info().Str("reference", receipt.Reference).Msg("order placed")

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"reference":   receipt.Reference,
		"paymentLink": receipt.PaymentLink,
	})
}

func (sc *ShopController) TrackOrder(ctx *gin.Context) {
	order, err := sc.api.TrackOrder(ctx.Request.Context(), ctx.Param("reference"))
	if err != nil {
		sendUpstreamError(ctx, err, msgTrackingNotFound)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}
