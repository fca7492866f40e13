package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/application/orders"
	"storefront/internal/application/validation"
	"storefront/internal/domain/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Buyer identity arrives from the surrounding auth layer, which is out of
// scope here.
const buyerHeader = "X-Buyer-Email"

type CreateOrderRequest struct {
	BasketID         string        `json:"basketId" validate:"required"`
	DeliveryMethodID int64         `json:"deliveryMethodId" validate:"required"`
	ShipToAddress    model.Address `json:"shipToAddress" validate:"required"`
}

type OrderHandler struct {
	service   *orders.Service
	validator *validation.Validator
	logger    *zap.Logger
}

func NewOrderHandler(service *orders.Service, validator *validation.Validator, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{service: service, validator: validator, logger: logger}
}

func (h *OrderHandler) Create(c *gin.Context) {
	buyerEmail := c.GetHeader(buyerHeader)
	if buyerEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "buyer email is required"})
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.logger.Warn("Create order request failed validation", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), buyerEmail, req.DeliveryMethodID, req.BasketID, req.ShipToAddress)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, order)
	case errors.Is(err, model.ErrBasketNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "basket not found"})
	case errors.Is(err, model.ErrProductNotFound),
		errors.Is(err, model.ErrDeliveryMethodNotFound),
		errors.Is(err, model.ErrInvalidOrderData):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrNothingCommitted):
		c.JSON(http.StatusConflict, gin.H{"error": "order was not created, please retry"})
	default:
		h.logger.Error("Failed to create order", zap.Error(err), zap.String("basket_id", req.BasketID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
	}
}

func (h *OrderHandler) List(c *gin.Context) {
	buyerEmail := c.GetHeader(buyerHeader)
	if buyerEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "buyer email is required"})
		return
	}

	result, err := h.service.GetOrdersForUser(c.Request.Context(), buyerEmail)
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err), zap.String("buyer_email", buyerEmail))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *OrderHandler) GetByID(c *gin.Context) {
	buyerEmail := c.GetHeader(buyerHeader)
	if buyerEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "buyer email is required"})
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := h.service.GetOrderByID(c.Request.Context(), id, buyerEmail)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		h.logger.Error("Failed to get order", zap.Error(err), zap.Int64("order_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) DeliveryMethods(c *gin.Context) {
	methods, err := h.service.GetDeliveryMethods(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list delivery methods", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list delivery methods"})
		return
	}
	c.JSON(http.StatusOK, methods)
}
