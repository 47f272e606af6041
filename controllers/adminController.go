package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/flowerstalk/storefront-gateway/middlewares"
	"github.com/flowerstalk/storefront-gateway/models"
	"github.com/flowerstalk/storefront-gateway/store"
	"github.com/flowerstalk/storefront-gateway/upstream"
)

// AdminAPI is the slice of the remote API the back office needs.
type AdminAPI interface {
	ListOrders(ctx context.Context, token string, q upstream.OrderQuery) ([]models.Order, *upstream.Pagination, error)
	GetOrder(ctx context.Context, token, orderID string) (*models.Order, error)
	AcceptOrder(ctx context.Context, token, orderID string) error
	AssignRider(ctx context.Context, token, orderID, riderID string) error
	CancelOrder(ctx context.Context, token, orderID string) error
	ListRiders(ctx context.Context, token string, page, limit int) ([]models.Rider, *upstream.Pagination, error)
	FindRider(ctx context.Context, token, riderID string) (*models.Rider, error)
	ApproveRejectRider(ctx context.Context, token, riderID, status string) error
	CreateLocation(ctx context.Context, token, name string, fee int) error
	UpdateLocation(ctx context.Context, token, locationID, name string, fee int) error
	DeleteLocation(ctx context.Context, token, locationID string) error
}

// AdminController serves the back office: order progression, rider
// assignment, and rider approval. Every state change is checked against
// the transition table locally before it is forwarded, so a stale
// dashboard cannot push an order backwards.
type AdminController struct {
	api   AdminAPI
	guard *store.TransitionGuard
	log   zerolog.Logger
}

func NewAdminController(api AdminAPI, guard *store.TransitionGuard, log zerolog.Logger) *AdminController {
	return &AdminController{api: api, guard: guard, log: log}
}

// orderView is an order annotated with the single action its status
// currently allows the viewer, if any.
type orderView struct {
	models.Order
	NextAction *models.Transition `json:"nextAction,omitempty"`
}

func annotateOrders(orders []models.Order, actor models.Actor) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		view := orderView{Order: order}
		if t, ok := models.NextTransition(order.Status, actor); ok {
			next := t
			view.NextAction = &next
		}
		views = append(views, view)
	}
	return views
}

func (ac *AdminController) GetOrders(ctx *gin.Context) {
	page, limit := pageParams(ctx)
	query := upstream.OrderQuery{
		Page:      page,
		Limit:     limit,
		Status:    ctx.Query("status"),
		Search:    ctx.Query("search"),
		StartDate: ctx.Query("startDate"),
		EndDate:   ctx.Query("endDate"),
	}

	orders, pagination, err := ac.api.ListOrders(ctx.Request.Context(), middlewares.TokenFrom(ctx), query)
	if err != nil {
		sendUpstreamError(ctx, err, msgOrderNotFound)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"orders":   annotateOrders(orders, models.ActorAdmin),
		"metadata": metadata(pagination),
	})
}

func (ac *AdminController) GetOrder(ctx *gin.Context) {
	order, err := ac.api.GetOrder(ctx.Request.Context(), middlewares.TokenFrom(ctx), ctx.Param("orderId"))
	if err != nil {
		sendUpstreamError(ctx, err, msgOrderNotFound)
		return
	}

	view := orderView{Order: *order}
	if t, ok := models.NextTransition(order.Status, models.ActorAdmin); ok {
		view.NextAction = &t
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": view})
}

// adminTransition fetches the order, verifies that the admin's next
// transition is the expected one, and runs fn while holding the
// per-order guard. Refreshing the list is the caller's recovery path
// for every conflict.
func (ac *AdminController) adminTransition(ctx *gin.Context, action string, fn func(token string, order *models.Order) error) {
	orderID := ctx.Param("orderId")
	if !ac.guard.Begin(orderID) {
		sendErrorResponse(ctx, http.StatusConflict, msgTransitionInFlight)
		return
	}
	defer ac.guard.End(orderID)

	token := middlewares.TokenFrom(ctx)
	order, err := ac.api.GetOrder(ctx.Request.Context(), token, orderID)
	if err != nil {
		sendUpstreamError(ctx, err, msgOrderNotFound)
		return
	}

	transition, err := models.Advance(order.Status, models.ActorAdmin)
	if err != nil {
		sendErrorResponse(ctx, http.StatusConflict, err.Error())
		return
	}
	if transition.Action != action {
		sendErrorResponse(ctx, http.StatusConflict,
			fmt.Sprintf("the order is %s; the only available action is %s", order.Status, transition.Action))
		return
	}

	if err := fn(token, order); err != nil {
		sendUpstreamError(ctx, err, msgOrderNotFound)
		return
	}

	ac.log.Info().Str("orderId", orderID).Str("action", action).Msg("order transitioned")
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": msgStatusUpdated,
		"status":  transition.To,
	})
}

func (ac *AdminController) AcceptOrder(ctx *gin.Context) {
	ac.adminTransition(ctx, models.ActionAccept, func(token string, order *models.Order) error {
		return ac.api.AcceptOrder(ctx.Request.Context(), token, order.ID)
	})
}

func (ac *AdminController) AssignRider(ctx *gin.Context) {
	var body struct {
		RiderID string `json:"riderId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	ac.adminTransition(ctx, models.ActionAssignRider, func(token string, order *models.Order) error {
		rider, err := ac.api.FindRider(ctx.Request.Context(), token, body.RiderID)
		if err != nil {
			return err
		}
		if err := rider.EligibleForAssignment(); err != nil {
			return &upstream.PreconditionError{Message: err.Error()}
		}
		return ac.api.AssignRider(ctx.Request.Context(), token, order.ID, body.RiderID)
	})
}

func (ac *AdminController) CancelOrder(ctx *gin.Context) {
	orderID := ctx.Param("orderId")
	if !ac.guard.Begin(orderID) {
		sendErrorResponse(ctx, http.StatusConflict, msgTransitionInFlight)
		return
	}
	defer ac.guard.End(orderID)

	token := middlewares.TokenFrom(ctx)
	order, err := ac.api.GetOrder(ctx.Request.Context(), token, orderID)
	if err != nil {
		sendUpstreamError(ctx, err, msgOrderNotFound)
		return
	}
	if err := models.CanCancel(order.Status); err != nil {
		sendErrorResponse(ctx, http.StatusConflict, err.Error())
		return
	}

	if err := ac.api.CancelOrder(ctx.Request.Context(), token, orderID); err != nil {
		sendUpstreamError(ctx, err, msgOrderNotFound)
		return
	}

	ac.log.Info().Str("orderId", orderID).Msg("order cancelled")
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": msgStatusUpdated,
		"status":  models.StatusCancelled,
	})
}

func (ac *AdminController) GetRiders(ctx *gin.Context) {
	page, limit := pageParams(ctx)
	riders, pagination, err := ac.api.ListRiders(ctx.Request.Context(), middlewares.TokenFrom(ctx), page, limit)
	if err != nil {
		sendUpstreamError(ctx, err, msgRiderNotFound)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"riders":   riders,
		"metadata": metadata(pagination),
	})
}

func (ac *AdminController) UpdateRiderApproval(ctx *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if body.Status != models.RiderApproved && body.Status != models.RiderRejected {
		sendErrorResponse(ctx, http.StatusBadRequest, "Status must be APPROVED or REJECTED")
		return
	}

	riderID := ctx.Param("riderId")
	if err := ac.api.ApproveRejectRider(ctx.Request.Context(), middlewares.TokenFrom(ctx), riderID, body.Status); err != nil {
		sendUpstreamError(ctx, err, msgRiderNotFound)
		return
	}

	ac.log.Info().Str("riderId", riderID).Str("status", body.Status).Msg("rider approval updated")
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Rider status updated successfully."})
}

type locationRequest struct {
	Location string `json:"location" binding:"required"`
	Amount   *int   `json:"amount" binding:"required"`
}

func (ac *AdminController) CreateLocation(ctx *gin.Context) {
	var body locationRequest
	if err := ctx.ShouldBindJSON(&body); err != nil || *body.Amount < 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := ac.api.CreateLocation(ctx.Request.Context(), middlewares.TokenFrom(ctx), body.Location, *body.Amount); err != nil {
		sendUpstreamError(ctx, err, msgLocationNotFound)
		return
	}

	ac.log.Info().Str("location", body.Location).Msg("location created")
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Location created successfully."})
}

func (ac *AdminController) UpdateLocation(ctx *gin.Context) {
	var body locationRequest
	if err := ctx.ShouldBindJSON(&body); err != nil || *body.Amount < 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	locationID := ctx.Param("locationId")
	if err := ac.api.UpdateLocation(ctx.Request.Context(), middlewares.TokenFrom(ctx), locationID, body.Location, *body.Amount); err != nil {
		sendUpstreamError(ctx, err, msgLocationNotFound)
		return
	}

	ac.log.Info().Str("locationId", locationID).Msg("location updated")
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Location updated successfully."})
}

func (ac *AdminController) DeleteLocation(ctx *gin.Context) {
	locationID := ctx.Param("locationId")
	if err := ac.api.DeleteLocation(ctx.Request.Context(), middlewares.TokenFrom(ctx), locationID); err != nil {
		sendUpstreamError(ctx, err, msgLocationNotFound)
		return
	}

	ac.log.Info().Str("locationId", locationID).Msg("location deleted")
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Location deleted successfully."})
}
