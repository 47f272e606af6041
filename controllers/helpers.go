package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/flowerstalk/storefront-gateway/upstream"
)

const (
	msgInvalidInput        = "Invalid input"
	msgQuantityTooLarge    = "Quantity must be 99 or less"
	msgUpstreamUnavailable = "Something went wrong, please try again."
	msgTransitionInFlight  = "Another update for this order is still in progress"
	msgOrderNotFound       = "Order not found"
	msgRiderNotFound       = "Rider not found"
	msgLocationNotFound    = "Location not found"
	msgItemNotFound        = "Item not found"
	msgTrackingNotFound    = "No order matches that tracking reference"
	msgStatusUpdated       = "Order status updated successfully."
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"message": message})
}

// sendUpstreamError converts a client error into the one user-visible
// message the taxonomy allows: definitive not-found, the server's own
// precondition message, or a generic retryable failure. Raw errors
// never reach the response.
func sendUpstreamError(ctx *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, upstream.ErrNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, notFoundMsg)
	case upstream.IsPrecondition(err):
		sendErrorResponse(ctx, http.StatusConflict, err.Error())
	default:
		sendErrorResponse(ctx, http.StatusBadGateway, msgUpstreamUnavailable)
	}
}

// metadata reshapes upstream paging info into the response form the
// frontends page with.
func metadata(p *upstream.Pagination) gin.H {
	if p == nil {
		return gin.H{}
	}
	return gin.H{
		"total":        p.Total,
		"currentPage":  p.CurrentPage,
		"totalPages":   p.TotalPages,
		"limit":        p.Limit,
		"hasPrevPage":  p.CurrentPage > 1,
		"hasNextPage":  p.CurrentPage < p.TotalPages,
		"previousPage": p.CurrentPage - 1,
		"nextPage":     p.CurrentPage + 1,
	}
}

// pageParams parses page/limit query values with the storefront's
// defaults.
func pageParams(ctx *gin.Context) (int, int) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
