package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/commercekit/sales-service/internal/core/domain"
	"github.com/commercekit/sales-service/internal/core/service"
	"github.com/commercekit/sales-service/internal/obs"
	"github.com/commercekit/sales-service/internal/port"
)

type HTTPHandler struct {
	sales   *service.SaleService
	catalog *service.CatalogService
}

func NewHTTPHandler(sales *service.SaleService, catalog *service.CatalogService) *HTTPHandler {
	return &HTTPHandler{sales: sales, catalog: catalog}
}

// RegisterRoutes registers all routes on the provided engine.
func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/customers", h.CreateCustomer)
	r.GET("/customers", h.ListCustomers)
	r.GET("/customers/:customer_id", h.GetCustomer)

	r.POST("/products", h.CreateProduct)
	r.GET("/products", h.ListProducts)
	r.GET("/products/:product_id", h.GetProduct)

	r.POST("/sales", h.RegisterSale)
	r.GET("/sales", h.ListSales)
	r.GET("/sales/:sale_id", h.GetSale)
}

type createCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	TaxID string `json:"tax_id"`
}

type createProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

type saleItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type registerSaleRequest struct {
	RequestID  string            `json:"request_id"`
	CustomerID string            `json:"customer_id" binding:"required"`
	Items      []saleItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (h *HTTPHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HTTPHandler) CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	customer, err := h.catalog.CreateCustomer(c.Request.Context(), req.Name, req.Email, req.TaxID)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered", "email": req.Email})
			return
		}
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *HTTPHandler) ListCustomers(c *gin.Context) {
	customers, err := h.catalog.ListCustomers(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *HTTPHandler) GetCustomer(c *gin.Context) {
	customer, err := h.catalog.GetCustomer(c.Request.Context(), c.Param("customer_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *HTTPHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), req.Name, req.Description, req.Price, req.Stock)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *HTTPHandler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *HTTPHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("product_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *HTTPHandler) RegisterSale(c *gin.Context) {
	var req registerSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	items := make([]port.SaleItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, port.SaleItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	sale, err := h.sales.RegisterSale(c.Request.Context(), service.RegisterSaleRequest{
		RequestID:  req.RequestID,
		CustomerID: req.CustomerID,
		Items:      items,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *HTTPHandler) ListSales(c *gin.Context) {
	sales, err := h.sales.ListSales(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *HTTPHandler) GetSale(c *gin.Context) {
	sale, err := h.sales.GetSale(c.Request.Context(), c.Param("sale_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

// writeError maps service errors to HTTP status codes. Persistence
// failures are logged server-side and surfaced as a generic payload.
func (h *HTTPHandler) writeError(c *gin.Context, err error) {
	var notFound *domain.ProductNotFoundError
	var stock *domain.InsufficientStockError
	var invalid *domain.ValidationError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":      "product not found",
			"product_id": notFound.ProductID,
		})
	case errors.As(err, &stock):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":        "insufficient stock",
			"product_id":   stock.ProductID,
			"product_name": stock.ProductName,
			"requested":    stock.Requested,
			"available":    stock.Available,
		})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Reason})
	case errors.Is(err, domain.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
	case errors.Is(err, domain.ErrSaleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
	case errors.Is(err, service.ErrDuplicateRequest):
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate request"})
	default:
		obs.Logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
