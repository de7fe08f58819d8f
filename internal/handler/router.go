package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"minimarket-backoffice/internal/domain/user"
	"minimarket-backoffice/internal/handler/api"
	"minimarket-backoffice/internal/handler/middleware"
	"minimarket-backoffice/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth     *api.AuthHandler
	Cart     *api.CartHandler
	Order    *api.OrderHandler
	Stock    *api.StockHandler
	Invoice  *api.InvoiceHandler
	Product  *api.ProductHandler
	Discount *api.DiscountHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		cart := apiGroup.Group("/cart")
		cart.Use(authMiddleware.RequireAuth())
		{
			addRoutes(cart, []route{
				{Method: http.MethodPost, Path: "/add", Handler: h.Cart.Add},
				{Method: http.MethodPut, Path: "/update", Handler: h.Cart.Update},
				{Method: http.MethodDelete, Path: "/remove", Handler: h.Cart.Remove},
				{Method: http.MethodGet, Path: "/:user", Handler: h.Cart.Get},
			})
		}

		order := apiGroup.Group("/order")
		order.Use(authMiddleware.RequireAuth())
		{
			addRoutes(order, []route{
				{Method: http.MethodPost, Path: "/from-cart", Handler: h.Order.FromCart},
				{Method: http.MethodPatch, Path: "/:id/state", Handler: h.Order.ChangeState},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Order.Cancel},
				{Method: http.MethodPatch, Path: "/:id/lines", Handler: h.Order.UpdateLine},
				{Method: http.MethodGet, Path: "/by-user/:user", Handler: h.Order.ListByUser},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Order.Get},
			})
		}

		stock := apiGroup.Group("/stock")
		stock.Use(authMiddleware.RequireAuth())
		{
			addRoutes(stock, []route{
				{Method: http.MethodGet, Path: "/validate/:user", Handler: h.Stock.ValidateCart},
				{Method: http.MethodPost, Path: "/process-sale", Handler: h.Stock.ProcessSale},
			})
		}

		invoice := apiGroup.Group("/invoice")
		invoice.Use(authMiddleware.RequireAuth())
		{
			addRoutes(invoice, []route{
				{Method: http.MethodPost, Path: "/generate-on-payment/:id", Handler: h.Invoice.GenerateOnPayment},
				{Method: http.MethodGet, Path: "/by-order/:id", Handler: h.Invoice.GetByOrder},
			})
		}

		products := apiGroup.Group("/products")
		products.Use(authMiddleware.RequireAuth())
		{
			addRoutes(products, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Product.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Product.Get},
			})
			adminOnly := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleAdmin)}
			addRoutes(products, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Product.Create, Mw: adminOnly},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Product.Update, Mw: adminOnly},
				{Method: http.MethodPost, Path: "/:id/deactivate", Handler: h.Product.Deactivate, Mw: adminOnly},
				{Method: http.MethodPost, Path: "/:id/activate", Handler: h.Product.Activate, Mw: adminOnly},
			})
		}

		discounts := apiGroup.Group("/discounts")
		discounts.Use(authMiddleware.RequireAuth())
		{
			addRoutes(discounts, []route{
				{Method: http.MethodGet, Path: "/by-product/:product", Handler: h.Discount.ListByProduct},
				{Method: http.MethodGet, Path: "/price/:product", Handler: h.Discount.PriceWithDiscount},
			})
			adminOnly := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleAdmin)}
			addRoutes(discounts, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Discount.Create, Mw: adminOnly},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Discount.Update, Mw: adminOnly},
				{Method: http.MethodPost, Path: "/:id/deactivate", Handler: h.Discount.Deactivate, Mw: adminOnly},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
