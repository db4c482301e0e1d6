package handler

import (
	orderingapp "github.com/cosechaencope/backend/internal/application/ordering"
	"github.com/cosechaencope/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// FulfillmentHandler handles per-producer fulfillment orders
type FulfillmentHandler struct {
	BaseHandler
	fulfillmentService *orderingapp.FulfillmentService
}

// NewFulfillmentHandler creates a new FulfillmentHandler
func NewFulfillmentHandler(fulfillmentService *orderingapp.FulfillmentService) *FulfillmentHandler {
	return &FulfillmentHandler{fulfillmentService: fulfillmentService}
}

// Generate splits an order into one fulfillment order per producer.
// POST /orders/:id/fulfillments
func (h *FulfillmentHandler) Generate(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	fos, err := h.fulfillmentService.GenerateForOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, fos)
}

// ListForProducer returns the fulfillment orders assigned to a producer.
// GET /producers/:id/fulfillments
func (h *FulfillmentHandler) ListForProducer(c *gin.Context) {
	producerID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid producer ID format")
		return
	}

	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter := listReq.ToFilter()

	fos, err := h.fulfillmentService.ListForProducer(c.Request.Context(), producerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, fos, filter.Page, filter.PageSize, len(fos))
}

// UpdateStatus moves a fulfillment order along its status lifecycle.
// PATCH /fulfillments/:id/status
func (h *FulfillmentHandler) UpdateStatus(c *gin.Context) {
	fulfillmentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid fulfillment order ID format")
		return
	}

	var req orderingapp.UpdateFulfillmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	fo, err := h.fulfillmentService.UpdateStatus(c.Request.Context(), fulfillmentID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, fo)
}
