package httpserver

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"moneydream/internal/domain"
	"moneydream/internal/payment"
	"moneydream/internal/pricing"
	"moneydream/internal/session"
)

type authService interface {
	Login(ctx context.Context, email, password string) (domain.Identity, error)
}

type sessionHolder interface {
	Current() (session.State, *domain.Identity)
	Login(id domain.Identity)
	Logout()
	UpdateProfile(patch domain.IdentityPatch) (domain.Identity, error)
}

type cartEngine interface {
	Snapshot() domain.Cart
	AddItem(item domain.LineItem) domain.Cart
	RemoveItem(id string) domain.Cart
	UpdateQuantity(id string, quantity int) domain.Cart
	Clear() domain.Cart
}

type checkoutService interface {
	CreatePreference(ctx context.Context) (*payment.Preference, error)
	Confirm(ctx context.Context, userID string) (*domain.Order, error)
}

type catalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in catalogInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in catalogInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type orderStore interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

type settingsService interface {
	Current() domain.Settings
	Rules() pricing.Rules
	Update(ctx context.Context, in domain.Settings) (*domain.Settings, error)
}

// Deps carries the wired services into the router.
type Deps struct {
	AuthSvc     authService
	Sessions    sessionHolder
	CartSvc     cartEngine
	CheckoutSvc checkoutService
	CatalogSvc  catalogService
	Orders      orderStore
	SettingsSvc settingsService

	LoginRatePerMinute int
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/login", loginRateLimiter(deps.LoginRatePerMinute), loginHandler(deps))
	auth.POST("/logout", logoutHandler(deps))
	auth.GET("/session", sessionStateHandler(deps))
	auth.PUT("/profile", requireAuth(deps), updateProfileHandler(deps))

	api.GET("/products", listProductsHandler(deps))
	api.GET("/products/:id", getProductHandler(deps))

	cart := api.Group("/cart")
	cart.GET("", getCartHandler(deps))
	cart.DELETE("", clearCartHandler(deps))
	cart.POST("/items", addCartItemHandler(deps))
	cart.PUT("/items/:id", updateCartItemHandler(deps))
	cart.DELETE("/items/:id", removeCartItemHandler(deps))

	checkout := api.Group("/checkout")
	checkout.POST("/preference", createPreferenceHandler(deps))
	checkout.POST("/confirm", requireAuth(deps), confirmCheckoutHandler(deps))

	api.GET("/orders", requireAuth(deps), listMyOrdersHandler(deps))

	admin := api.Group("/admin", requireAdmin(deps))
	admin.GET("/orders", listAllOrdersHandler(deps))
	admin.PATCH("/orders/:id/status", updateOrderStatusHandler(deps))
	admin.POST("/products", createProductHandler(deps))
	admin.PUT("/products/:id", updateProductHandler(deps))
	admin.DELETE("/products/:id", deleteProductHandler(deps))
	admin.GET("/settings", getSettingsHandler(deps))
	admin.PUT("/settings", updateSettingsHandler(deps))

	return router, nil
}

// requireAuth rejects requests while no identity is current. The holder is
// the authority; the durable store is never consulted on a request path.
func requireAuth(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, _ := deps.Sessions.Current()
		if state != session.StateAuthenticated {
			c.AbortWithStatusJSON(401, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

func requireAdmin(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, id := deps.Sessions.Current()
		if state != session.StateAuthenticated || id == nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "authentication required"})
			return
		}
		if id.Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(403, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
