package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"cart-service/internal/models"
	"cart-service/internal/service"
	"cart-service/internal/util"
	"cart-service/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	cartService *service.CartService
}

// NewHandler creates a new HTTP handler
func NewHandler(cartService *service.CartService) *Handler {
	return &Handler{
		cartService: cartService,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", h.listProducts)
		v1.GET("/cart", h.getCart)
		v1.POST("/cart/actions", h.cartAction)
		v1.POST("/cart/clear", h.clearCart)
		v1.POST("/checkout", h.checkout)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// listProducts rebuilds and returns the product grid projection
func (h *Handler) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"products": view.Products(h.cartService.Catalog()),
	})
}

// getCart returns the current cart projection
func (h *Handler) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, view.Cart(h.cartService.Items()))
}

// CartActionRequest is the delegated dispatch payload: one endpoint, four
// actions, mirroring a single click handler routing by element role.
type CartActionRequest struct {
	Action    string `json:"action" binding:"required"`
	ProductID int64  `json:"product_id" binding:"required"`
	Qty       int    `json:"qty"`
}

// cartAction dispatches add / remove / increase / decrease to the cart
func (h *Handler) cartAction(c *gin.Context) {
	var req CartActionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	ctx := c.Request.Context()

	var items []models.CartItem
	switch req.Action {
	case "add":
		qty := req.Qty
		if qty == 0 {
			qty = 1
		}
		items = h.cartService.AddToCart(ctx, req.ProductID, qty)
	case "remove":
		items = h.cartService.RemoveItem(ctx, req.ProductID)
	case "increase":
		items = h.cartService.ChangeQty(ctx, req.ProductID, +1)
	case "decrease":
		items = h.cartService.ChangeQty(ctx, req.ProductID, -1)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown cart action: " + req.Action,
		})
		return
	}

	c.JSON(http.StatusOK, view.Cart(items))
}

// clearCart empties the cart
func (h *Handler) clearCart(c *gin.Context) {
	items := h.cartService.ClearCart(c.Request.Context())
	c.JSON(http.StatusOK, view.Cart(items))
}

// checkout runs the checkout transition and renders the outcome message
func (h *Handler) checkout(c *gin.Context) {
	var req service.CheckoutRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	order, err := h.cartService.Checkout(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrCartEmpty) || errors.Is(err, service.ErrInvalidCustomer) {
			c.JSON(http.StatusUnprocessableEntity, view.CheckoutError(err))
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Checkout failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": view.CheckoutSuccess(order),
		"cart":   view.Cart(h.cartService.Items()),
	})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
