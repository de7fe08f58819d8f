package api

import (
	"net/http"

	reqdto "minimarket-backoffice/internal/handler/dto/request"
	resdto "minimarket-backoffice/internal/handler/dto/response"
	"minimarket-backoffice/internal/handler/httperr"
	"minimarket-backoffice/internal/usecase/commands"
	"minimarket-backoffice/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DiscountHandler struct {
	discountCommands commands.DiscountCommands
	discountQueries  queries.DiscountQueries
}

func NewDiscountHandler(discountCommands commands.DiscountCommands, discountQueries queries.DiscountQueries) *DiscountHandler {
	return &DiscountHandler{
		discountCommands: discountCommands,
		discountQueries:  discountQueries,
	}
}

// @Summary Create discount
// @Description Register a time-boxed percentage discount for a product
// @Tags discounts
// @Accept json
// @Produce json
// @Param request body reqdto.CreateDiscountRequest true "Discount"
// @Success 201 {object} resdto.DiscountResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /discounts [post]
func (h *DiscountHandler) Create(c *gin.Context) {
	var req reqdto.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	input, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, expected YYYY-MM-DD", nil)
		return
	}

	disc, err := h.discountCommands.Create(c.Request.Context(), input)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromDiscountEntity(disc))
}

// @Summary Update discount
// @Description Revise the percentage and validity window of a discount
// @Tags discounts
// @Accept json
// @Produce json
// @Param id path string true "Discount ID"
// @Param request body reqdto.UpdateDiscountRequest true "Discount"
// @Success 200 {object} resdto.DiscountResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /discounts/{id} [patch]
func (h *DiscountHandler) Update(c *gin.Context) {
	discountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid discount ID", nil)
		return
	}

	var req reqdto.UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	input, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, expected YYYY-MM-DD", nil)
		return
	}

	disc, err := h.discountCommands.Update(c.Request.Context(), discountID, input)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDiscountEntity(disc))
}

// @Summary List discounts for a product
// @Tags discounts
// @Produce json
// @Param product path string true "Product ID"
// @Success 200 {array} queries.DiscountView
// @Router /discounts/by-product/{product} [get]
func (h *DiscountHandler) ListByProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product ID", nil)
		return
	}

	views, err := h.discountQueries.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Get product price with the best vigent discount
// @Tags discounts
// @Produce json
// @Param product path string true "Product ID"
// @Success 200 {object} queries.ProductView
// @Failure 404 {object} httperr.Response
// @Router /discounts/price/{product} [get]
func (h *DiscountHandler) PriceWithDiscount(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product ID", nil)
		return
	}

	view, err := h.discountQueries.PriceWithDiscount(c.Request.Context(), productID)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Deactivate discount
// @Tags discounts
// @Produce json
// @Param id path string true "Discount ID"
// @Success 200
// @Failure 404 {object} httperr.Response
// @Router /discounts/{id}/deactivate [post]
func (h *DiscountHandler) Deactivate(c *gin.Context) {
	discountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid discount ID", nil)
		return
	}

	if err := h.discountCommands.Deactivate(c.Request.Context(), discountID); err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.Status(http.StatusOK)
}
