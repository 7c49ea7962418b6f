package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"moneydream/internal/domain"
	"moneydream/internal/pricing"
)

type cartResponse struct {
	Items      []domain.LineItem `json:"items"`
	TotalCents int64             `json:"totalCents"`
	Quote      pricing.Quote     `json:"quote"`
}

// toCartResponse attaches the same quote the checkout will use, so the
// preview and the final breakdown cannot diverge.
func toCartResponse(deps Deps, cart domain.Cart) cartResponse {
	items := cart.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	return cartResponse{
		Items:      items,
		TotalCents: cart.TotalCents,
		Quote:      deps.SettingsSvc.Rules().Quote(cart.TotalCents),
	}
}

func getCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, toCartResponse(deps, deps.CartSvc.Snapshot()))
	}
}

type addItemRequest struct {
	ID         string `json:"id" binding:"required"`
	Name       string `json:"name"`
	Size       string `json:"size"`
	Color      string `json:"color"`
	Image      string `json:"image"`
	PriceCents int64  `json:"priceCents"`
	Quantity   int    `json:"quantity"`
}

func addCartItemHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "item id required"})
			return
		}
		if req.PriceCents < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
			return
		}

		cart := deps.CartSvc.AddItem(domain.LineItem{
			ID:         strings.TrimSpace(req.ID),
			Name:       req.Name,
			Size:       req.Size,
			Color:      req.Color,
			Image:      req.Image,
			PriceCents: req.PriceCents,
			Quantity:   req.Quantity,
		})
		c.JSON(http.StatusOK, toCartResponse(deps, cart))
	}
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func updateCartItemHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
			return
		}
		// Quantities below 1 are silently ignored by the engine.
		cart := deps.CartSvc.UpdateQuantity(c.Param("id"), req.Quantity)
		c.JSON(http.StatusOK, toCartResponse(deps, cart))
	}
}

func removeCartItemHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart := deps.CartSvc.RemoveItem(c.Param("id"))
		c.JSON(http.StatusOK, toCartResponse(deps, cart))
	}
}

func clearCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart := deps.CartSvc.Clear()
		c.JSON(http.StatusOK, toCartResponse(deps, cart))
	}
}
