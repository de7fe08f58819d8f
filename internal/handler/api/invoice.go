package api

import (
	"net/http"

	"minimarket-backoffice/internal/domain/invoice"
	"minimarket-backoffice/internal/handler/httperr"
	"minimarket-backoffice/internal/usecase/commands"
	"minimarket-backoffice/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InvoiceHandler struct {
	invoiceCommands commands.InvoiceCommands
	invoiceQueries  queries.InvoiceQueries
}

func NewInvoiceHandler(invoiceCommands commands.InvoiceCommands, invoiceQueries queries.InvoiceQueries) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceCommands: invoiceCommands,
		invoiceQueries:  invoiceQueries,
	}
}

// @Summary Issue document for a paid order
// @Description Issue the invoice or receipt for an order already paid or completed
// @Tags invoices
// @Produce json
// @Param id path string true "Order ID"
// @Param kind query string false "Document kind: invoice (default) or receipt"
// @Success 201 {object} queries.InvoiceView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /invoice/generate-on-payment/{id} [post]
func (h *InvoiceHandler) GenerateOnPayment(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid order ID", nil)
		return
	}
	kind, err := invoice.ParseKind(c.Query("kind"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown document kind", nil)
		return
	}

	view, err := h.invoiceCommands.IssueForOrder(c.Request.Context(), orderID, kind)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// @Summary Get document by order
// @Tags invoices
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} queries.InvoiceView
// @Failure 404 {object} httperr.Response
// @Router /invoice/by-order/{id} [get]
func (h *InvoiceHandler) GetByOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid order ID", nil)
		return
	}

	view, err := h.invoiceQueries.GetByOrder(c.Request.Context(), orderID)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
