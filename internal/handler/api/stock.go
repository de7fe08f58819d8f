package api

import (
	"net/http"

	reqdto "minimarket-backoffice/internal/handler/dto/request"
	"minimarket-backoffice/internal/handler/httperr"
	"minimarket-backoffice/internal/pkg/errs"
	"minimarket-backoffice/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StockHandler struct {
	stockCommands commands.StockCommands
}

func NewStockHandler(stockCommands commands.StockCommands) *StockHandler {
	return &StockHandler{
		stockCommands: stockCommands,
	}
}

// @Summary Validate cart against stock
// @Description Check whether every line of the user's cart can be served with current stock
// @Tags stock
// @Produce json
// @Param user path string true "User ID"
// @Success 200 {object} commands.Shortages
// @Failure 409 {object} httperr.Response
// @Router /stock/validate/{user} [get]
func (h *StockHandler) ValidateCart(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid user ID", nil)
		return
	}

	shortages, err := h.stockCommands.ValidateCart(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	if len(shortages) > 0 {
		httperr.AbortWithError(c, http.StatusConflict,
			errs.E(errs.KindInsufficientStock, "insufficient stock"),
			"insufficient stock", shortages)
		return
	}
	// Success is the empty map, the same shape the 409 detail carries.
	c.JSON(http.StatusOK, shortages)
}

// @Summary Process a sale
// @Description Atomically decrement stock for every line; all-or-nothing
// @Tags stock
// @Accept json
// @Produce json
// @Param request body reqdto.ProcessSaleRequest true "Sale lines"
// @Success 200 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /stock/process-sale [post]
func (h *StockHandler) ProcessSale(c *gin.Context) {
	var req reqdto.ProcessSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.stockCommands.CommitSale(c.Request.Context(), req.ToCommand()); err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "processed"})
}
