package api

import (
	"net/http"

	reqdto "minimarket-backoffice/internal/handler/dto/request"
	"minimarket-backoffice/internal/handler/httperr"
	"minimarket-backoffice/internal/usecase/commands"
	"minimarket-backoffice/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartHandler struct {
	cartCommands commands.CartCommands
	cartQueries  queries.CartQueries
}

func NewCartHandler(cartCommands commands.CartCommands, cartQueries queries.CartQueries) *CartHandler {
	return &CartHandler{
		cartCommands: cartCommands,
		cartQueries:  cartQueries,
	}
}

// @Summary Add product to cart
// @Description Add a product to the user's cart, incrementing the quantity if the line already exists
// @Tags cart
// @Produce json
// @Param user query string true "User ID"
// @Param product query string true "Product ID"
// @Param qty query int true "Quantity to add"
// @Success 201 {object} queries.CartLineView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /cart/add [post]
func (h *CartHandler) Add(c *gin.Context) {
	var q reqdto.CartAddQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	line, err := h.cartCommands.AddOrIncrement(c.Request.Context(), q.User, q.Product, q.Qty)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusCreated, line)
}

// @Summary Update cart line quantity
// @Description Replace the quantity of an existing cart line
// @Tags cart
// @Produce json
// @Param user query string true "User ID"
// @Param product query string true "Product ID"
// @Param qty query int true "New quantity"
// @Success 200 {object} queries.CartLineView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /cart/update [put]
func (h *CartHandler) Update(c *gin.Context) {
	var q reqdto.CartAddQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	line, err := h.cartCommands.SetQuantity(c.Request.Context(), q.User, q.Product, q.Qty)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

// @Summary Remove product from cart
// @Tags cart
// @Produce json
// @Param user query string true "User ID"
// @Param product query string true "Product ID"
// @Success 200
// @Failure 404 {object} httperr.Response
// @Router /cart/remove [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	var q reqdto.CartRemoveQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	if err := h.cartCommands.Remove(c.Request.Context(), q.User, q.Product); err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Get cart with discounted prices
// @Description List the user's cart lines priced with today's vigent discounts
// @Tags cart
// @Produce json
// @Param user path string true "User ID"
// @Success 200 {object} queries.CartView
// @Failure 400 {object} httperr.Response
// @Router /cart/{user} [get]
func (h *CartHandler) Get(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid user ID", nil)
		return
	}

	view, err := h.cartQueries.GetCart(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
