// Package product serves the catalog and management HTTP API.
package product

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/queries/get_product"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/queries/list_products"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/usecases/create_product"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/usecases/delete_product"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/usecases/update_product"
	"github.com/light-bringer/catalog-inventory-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-inventory-service/internal/transport/failures"
)

// Handler is a thin coordinator that delegates to use cases and queries.
type Handler struct {
	// Commands
	createProduct *create_product.Interactor
	updateProduct *update_product.Interactor
	deleteProduct *delete_product.Interactor

	// Queries
	getProduct   *get_product.Query
	listProducts *list_products.Query

	clock  clock.Clock
	logger *zap.Logger
}

// NewHandler creates a new HTTP product handler.
func NewHandler(
	createProduct *create_product.Interactor,
	updateProduct *update_product.Interactor,
	deleteProduct *delete_product.Interactor,
	getProduct *get_product.Query,
	listProducts *list_products.Query,
	clock clock.Clock,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		createProduct: createProduct,
		updateProduct: updateProduct,
		deleteProduct: deleteProduct,
		getProduct:    getProduct,
		listProducts:  listProducts,
		clock:         clock,
		logger:        logger,
	}
}

// ListProducts handles GET /products.
func (h *Handler) ListProducts(c *gin.Context) {
	views, err := h.listProducts.Execute(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetProduct handles GET /products/:id.
func (h *Handler) GetProduct(c *gin.Context) {
	view, err := h.getProduct.Execute(c.Request.Context(), &get_product.Request{
		ProductID: c.Param("id"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CreateProduct handles POST /management/products.
func (h *Handler) CreateProduct(c *gin.Context) {
	var body createProductBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, decodeError(err))
		return
	}

	product, err := h.createProduct.Execute(c.Request.Context(), body.toRequest())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Location", c.FullPath()+"/"+product.ID())
	c.JSON(http.StatusCreated, domain.NewProductView(product))
}

// UpdateProduct handles PUT /management/products/:id.
func (h *Handler) UpdateProduct(c *gin.Context) {
	var body updateProductBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, decodeError(err))
		return
	}

	product, err := h.updateProduct.Execute(c.Request.Context(), &update_product.Request{
		ProductID: c.Param("id"),
		Patch:     body.toPatch(),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.NewProductView(product))
}

// DeleteProduct handles DELETE /management/products/:id.
func (h *Handler) DeleteProduct(c *gin.Context) {
	err := h.deleteProduct.Execute(c.Request.Context(), &delete_product.Request{
		ProductID: c.Param("id"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := failures.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, failures.NewBody(err, status, h.clock.Now()))
}

// decodeError keeps domain validation errors raised while decoding, such as
// an unknown category, and marks everything else as a malformed body.
func decodeError(err error) error {
	if errors.Is(err, domain.ErrInvalidCategory) {
		return err
	}
	return failures.InvalidRequest(err)
}
