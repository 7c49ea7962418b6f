package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"moneydream/internal/domain"
	"moneydream/internal/payment"
	checkoutsvc "moneydream/internal/service/checkout"
)

// createPreferenceHandler asks the payment API for a redirect target. The
// degraded mock (nil init_point plus message) passes through as a 200; the
// client shows the message and does not redirect.
func createPreferenceHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		pref, err := deps.CheckoutSvc.CreatePreference(c.Request.Context())
		if err != nil {
			switch {
			case errors.Is(err, checkoutsvc.ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			case errors.Is(err, payment.ErrAPI):
				c.JSON(http.StatusBadGateway, gin.H{"error": "payment service rejected the request, please try again"})
			default:
				c.JSON(http.StatusBadGateway, gin.H{"error": "payment service unreachable, please try again"})
			}
			return
		}
		c.JSON(http.StatusOK, pref)
	}
}

// confirmCheckoutHandler runs on the success-redirect path and is the only
// place the cart gets cleared.
func confirmCheckoutHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, id := deps.Sessions.Current()
		if id == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		order, err := deps.CheckoutSvc.Confirm(c.Request.Context(), id.ID)
		if err != nil {
			if errors.Is(err, checkoutsvc.ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record the order"})
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func listMyOrdersHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, id := deps.Sessions.Current()
		if id == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		orders, err := deps.Orders.ListByUser(c.Request.Context(), id.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list orders"})
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}
