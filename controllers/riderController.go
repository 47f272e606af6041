package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/flowerstalk/storefront-gateway/middlewares"
	"github.com/flowerstalk/storefront-gateway/models"
	"github.com/flowerstalk/storefront-gateway/store"
	"github.com/flowerstalk/storefront-gateway/upstream"
)

// RiderAPI is the slice of the remote API the rider app needs.
type RiderAPI interface {
	RiderIncomingOrders(ctx context.Context, token string, q upstream.OrderQuery) ([]models.Order, *upstream.Pagination, error)
	RiderGetOrder(ctx context.Context, token, orderID string) (*models.Order, error)
	RiderAcceptOrder(ctx context.Context, token, orderID string) error
	RiderUpdateStatus(ctx context.Context, token, orderID string, status models.OrderStatus) error
}

// RiderController serves the rider app. A rider sees the orders
// assigned to them and pushes each one forward a single step at a
// time; there is no free-form status field anywhere in this surface.
type RiderController struct {
	api   RiderAPI
	guard *store.TransitionGuard
	log   zerolog.Logger
}

func NewRiderController(api RiderAPI, guard *store.TransitionGuard, log zerolog.Logger) *RiderController {
	return &RiderController{api: api, guard: guard, log: log}
}

func (rc *RiderController) GetOrders(ctx *gin.Context) {
	page, limit := pageParams(ctx)
	query := upstream.OrderQuery{
		Page:      page,
		Limit:     limit,
		Status:    ctx.Query("status"),
		Search:    ctx.Query("search"),
		StartDate: ctx.Query("startDate"),
		EndDate:   ctx.Query("endDate"),
	}

	orders, pagination, err := rc.api.RiderIncomingOrders(ctx.Request.Context(), middlewares.TokenFrom(ctx), query)
	if err != nil {
		sendUpstreamError(ctx, err, msgOrderNotFound)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"orders":   annotateOrders(orders, models.ActorRider),
		"metadata": metadata(pagination),
	})
}

func (rc *RiderController) GetOrder(ctx *gin.Context) {
	order, err := rc.api.RiderGetOrder(ctx.Request.Context(), middlewares.TokenFrom(ctx), ctx.Param("orderId"))
	if err != nil {
		sendUpstreamError(ctx, err, msgOrderNotFound)
		return
	}

	view := orderView{Order: *order}
	if t, ok := models.NextTransition(order.Status, models.ActorRider); ok {
		view.NextAction = &t
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": view})
}

// AdvanceOrder moves one of the rider's orders to its next status. The
// request body carries nothing; the transition table decides what the
// next step is, and the first rider step goes through the dedicated
// accept endpoint upstream.
func (rc *RiderController) AdvanceOrder(ctx *gin.Context) {
	orderID := ctx.Param("orderId")
	if !rc.guard.Begin(orderID) {
		sendErrorResponse(ctx, http.StatusConflict, msgTransitionInFlight)
		return
	}
	defer rc.guard.End(orderID)

	token := middlewares.TokenFrom(ctx)
	order, err := rc.api.RiderGetOrder(ctx.Request.Context(), token, orderID)
	if err != nil {
		sendUpstreamError(ctx, err, msgOrderNotFound)
		return
	}

	if err := order.RiderMayAct(middlewares.SubjectFrom(ctx)); err != nil {
		sendErrorResponse(ctx, http.StatusForbidden, err.Error())
		return
	}

	transition, err := models.Advance(order.Status, models.ActorRider)
	if err != nil {
		sendErrorResponse(ctx, http.StatusConflict, err.Error())
		return
	}

	if transition.To == models.StatusRiderAccepted {
		err = rc.api.RiderAcceptOrder(ctx.Request.Context(), token, orderID)
	} else {
		err = rc.api.RiderUpdateStatus(ctx.Request.Context(), token, orderID, transition.To)
	}
	if err != nil {
		sendUpstreamError(ctx, err, msgOrderNotFound)
		return
	}

	rc.log.Info().Str("orderId", orderID).Str("action", transition.Action).Msg("rider advanced order")
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": msgStatusUpdated,
		"action":  transition.Action,
		"status":  transition.To,
	})
}
