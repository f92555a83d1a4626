package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appstorefront "github.com/storeboard/backend/internal/application/storefront"
	"github.com/storeboard/backend/internal/interfaces/http/dto"
)

// maxProductBody caps inbound product update payloads.
const maxProductBody = 1 << 20 // 1 MB

// ProductHandler proxies product operations to the linked store.
type ProductHandler struct {
	BaseHandler
	storeService *appstorefront.StoreService
}

// NewProductHandler creates a product handler.
func NewProductHandler(storeService *appstorefront.StoreService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		BaseHandler:  NewBaseHandler(logger),
		storeService: storeService,
	}
}

// RegisterRoutes mounts the product endpoints on the protected group.
func (h *ProductHandler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/products", h.List)
	protected.GET("/products/:id", h.Get)
	protected.PUT("/products/:id", h.Update)
	protected.DELETE("/products/:id", h.Delete)
}

// List returns all products from the linked store.
func (h *ProductHandler) List(c *gin.Context) {
	accountID, ok := h.accountID(c)
	if !ok {
		return
	}

	products, err := h.storeService.ListProducts(c.Request.Context(), accountID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProductsResponse{Success: true, Products: products})
}

// Get returns a single product by ID.
func (h *ProductHandler) Get(c *gin.Context) {
	accountID, ok := h.accountID(c)
	if !ok {
		return
	}
	productID, ok := h.pathID(c)
	if !ok {
		return
	}

	product, err := h.storeService.GetProduct(c.Request.Context(), accountID, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProductResponse{Success: true, Product: product})
}

// Update forwards the request body to the store's product update
// endpoint and returns the updated product.
func (h *ProductHandler) Update(c *gin.Context) {
	accountID, ok := h.accountID(c)
	if !ok {
		return
	}
	productID, ok := h.pathID(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxProductBody))
	if err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	if !json.Valid(body) {
		h.BadRequest(c, "Request body must be valid JSON")
		return
	}

	product, err := h.storeService.UpdateProduct(c.Request.Context(), accountID, productID, body)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProductResponse{Success: true, Product: product})
}

// Delete removes a product from the linked store.
func (h *ProductHandler) Delete(c *gin.Context) {
	accountID, ok := h.accountID(c)
	if !ok {
		return
	}
	productID, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.storeService.DeleteProduct(c.Request.Context(), accountID, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteProductResponse{Success: true, Result: result})
}

func (h *ProductHandler) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.BadRequest(c, "Invalid product ID")
		return 0, false
	}
	return id, true
}
