package components

import (
	"minimarket-backoffice/internal/handler"
	"minimarket-backoffice/internal/handler/api"
	"minimarket-backoffice/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewCartHandler,
		api.NewOrderHandler,
		api.NewStockHandler,
		api.NewInvoiceHandler,
		api.NewProductHandler,
		api.NewDiscountHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	auth *api.AuthHandler,
	cart *api.CartHandler,
	order *api.OrderHandler,
	stock *api.StockHandler,
	invoice *api.InvoiceHandler,
	product *api.ProductHandler,
	discount *api.DiscountHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:     auth,
		Cart:     cart,
		Order:    order,
		Stock:    stock,
		Invoice:  invoice,
		Product:  product,
		Discount: discount,
	}
}
