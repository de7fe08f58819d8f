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

type ProductHandler struct {
	productCommands commands.ProductCommands
	productQueries  queries.ProductQueries
}

func NewProductHandler(productCommands commands.ProductCommands, productQueries queries.ProductQueries) *ProductHandler {
	return &ProductHandler{
		productCommands: productCommands,
		productQueries:  productQueries,
	}
}

// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param request body reqdto.CreateProductRequest true "Product"
// @Success 201 {object} resdto.ProductResponse
// @Failure 400 {object} httperr.Response
// @Router /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req reqdto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	prod, err := h.productCommands.Create(c.Request.Context(), req.ToCommand())
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromProductEntity(prod))
}

// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body reqdto.UpdateProductRequest true "Fields to update"
// @Success 200 {object} resdto.ProductResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /products/{id} [patch]
func (h *ProductHandler) Update(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product ID", nil)
		return
	}
	var req reqdto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	prod, err := h.productCommands.Update(c.Request.Context(), productID, req.ToCommand())
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductEntity(prod))
}

// @Summary Get product with today's price
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.ProductResponse
// @Failure 404 {object} httperr.Response
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product ID", nil)
		return
	}

	view, err := h.productQueries.GetProduct(c.Request.Context(), productID)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	resp, err := resdto.FromProductView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List products with today's prices
// @Tags products
// @Produce json
// @Success 200 {array} resdto.ProductResponse
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	views, err := h.productQueries.ListProducts(c.Request.Context())
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	resps, err := resdto.FromProductViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resps)
}

// @Summary Deactivate product
// @Description Retire the product from sale and drop it from every cart
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200
// @Failure 404 {object} httperr.Response
// @Router /products/{id}/deactivate [post]
func (h *ProductHandler) Deactivate(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product ID", nil)
		return
	}

	if err := h.productCommands.Deactivate(c.Request.Context(), productID); err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Activate product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200
// @Failure 404 {object} httperr.Response
// @Router /products/{id}/activate [post]
func (h *ProductHandler) Activate(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product ID", nil)
		return
	}

	if err := h.productCommands.Activate(c.Request.Context(), productID); err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.Status(http.StatusOK)
}
