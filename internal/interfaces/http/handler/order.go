package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appstorefront "github.com/storeboard/backend/internal/application/storefront"
	"github.com/storeboard/backend/internal/interfaces/http/dto"
)

// OrderHandler proxies order reads to the linked store.
type OrderHandler struct {
	BaseHandler
	storeService *appstorefront.StoreService
}

// NewOrderHandler creates an order handler.
func NewOrderHandler(storeService *appstorefront.StoreService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		BaseHandler:  NewBaseHandler(logger),
		storeService: storeService,
	}
}

// RegisterRoutes mounts the order endpoints on the protected group.
func (h *OrderHandler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/orders", h.List)
	protected.GET("/orders/:id", h.Get)
}

// List returns orders matching the recognized query filters.
func (h *OrderHandler) List(c *gin.Context) {
	accountID, ok := h.accountID(c)
	if !ok {
		return
	}

	filter := appstorefront.OrderFilter{
		Status:         c.Query("status"),
		Customer:       c.Query("customer"),
		DateCreatedMin: c.Query("date_created_min"),
		DateCreatedMax: c.Query("date_created_max"),
	}
	var ok2 bool
	if filter.Page, ok2 = h.queryInt(c, "page"); !ok2 {
		return
	}
	if filter.PerPage, ok2 = h.queryInt(c, "per_page"); !ok2 {
		return
	}

	orders, err := h.storeService.ListOrders(c.Request.Context(), accountID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OrdersResponse{Success: true, Orders: orders})
}

// Get returns a single order by ID.
func (h *OrderHandler) Get(c *gin.Context) {
	accountID, ok := h.accountID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.storeService.GetOrder(c.Request.Context(), accountID, orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OrderResponse{Success: true, Order: order})
}

// queryInt parses an optional positive integer query parameter.
func (h *OrderHandler) queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		h.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return v, true
}
