package api

import (
	"net/http"

	"minimarket-backoffice/internal/domain/invoice"
	"minimarket-backoffice/internal/domain/order"
	reqdto "minimarket-backoffice/internal/handler/dto/request"
	"minimarket-backoffice/internal/handler/httperr"
	"minimarket-backoffice/internal/usecase/commands"
	"minimarket-backoffice/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderCommands   commands.OrderCommands
	invoiceCommands commands.InvoiceCommands
	orderQueries    queries.OrderQueries
}

func NewOrderHandler(orderCommands commands.OrderCommands, invoiceCommands commands.InvoiceCommands, orderQueries queries.OrderQueries) *OrderHandler {
	return &OrderHandler{
		orderCommands:   orderCommands,
		invoiceCommands: invoiceCommands,
		orderQueries:    orderQueries,
	}
}

// @Summary Create order from cart
// @Description Snapshot the user's cart into a new order and clear the cart
// @Tags orders
// @Produce json
// @Param user query string true "User ID"
// @Param createdBy query string false "Operator creating the order"
// @Param payment query string false "Payment method, defaults to efectivo"
// @Success 201 {object} queries.OrderView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /order/from-cart [post]
func (h *OrderHandler) FromCart(c *gin.Context) {
	var q reqdto.CheckoutQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	view, err := h.orderCommands.Checkout(c.Request.Context(), q.User, q.Payment, q.CreatedBy)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// @Summary Change order state
// @Description Move the order along its workflow; paying an order issues its document
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Param new query string true "Target state"
// @Success 200 {object} queries.OrderView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /order/{id}/state [patch]
func (h *OrderHandler) ChangeState(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid order ID", nil)
		return
	}
	var q reqdto.OrderStateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}
	next, err := order.ParseState(q.New)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown order state", nil)
		return
	}

	newState, err := h.orderCommands.Transition(c.Request.Context(), orderID, next)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}

	// Paying the order issues its fiscal document. The transition already
	// committed, so a failed issue surfaces on the invoice endpoints instead
	// of rolling the payment back.
	if newState == order.StatePaid {
		if _, err := h.invoiceCommands.IssueForOrder(c.Request.Context(), orderID, invoice.KindInvoice); err != nil {
			httperr.AbortWithKind(c, err)
			return
		}
	}

	view, err := h.orderQueries.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Get order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} queries.OrderView
// @Failure 404 {object} httperr.Response
// @Router /order/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid order ID", nil)
		return
	}

	view, err := h.orderQueries.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List a user's orders
// @Tags orders
// @Produce json
// @Param user path string true "User ID"
// @Success 200 {array} queries.OrderListItem
// @Router /order/by-user/{user} [get]
func (h *OrderHandler) ListByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid user ID", nil)
		return
	}

	items, err := h.orderQueries.ListOrdersByUser(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Cancel order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /order/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid order ID", nil)
		return
	}

	if err := h.orderCommands.Cancel(c.Request.Context(), orderID); err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Update order line quantity
// @Description Change a line's quantity while the order is still unpaid
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body reqdto.OrderLineQuantityRequest true "Line update"
// @Success 200 {object} queries.OrderView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /order/{id}/lines [patch]
func (h *OrderHandler) UpdateLine(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid order ID", nil)
		return
	}
	var req reqdto.OrderLineQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.orderCommands.UpdateLineQuantity(c.Request.Context(), orderID, req.ProductID, req.Quantity)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
