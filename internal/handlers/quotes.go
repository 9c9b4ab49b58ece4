package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kalibre-teknik/backoffice/internal/middleware"
	"github.com/kalibre-teknik/backoffice/internal/models"
	"github.com/kalibre-teknik/backoffice/internal/repository"
	"github.com/kalibre-teknik/backoffice/internal/services/quote"
)

// QuoteHandler handles quote requests
type QuoteHandler struct {
	quotes  *repository.QuoteRepository
	service *quote.Service
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quotes *repository.QuoteRepository, service *quote.Service) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, service: service}
}

type quoteItemRequest struct {
	Description string  `json:"description" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unitPrice" binding:"required,gte=0"`
}

type createQuoteRequest struct {
	CustomerID   uuid.UUID          `json:"customerId" binding:"required"`
	DiscountRate float64            `json:"discountRate"`
	ValidUntil   *time.Time         `json:"validUntil"`
	Items        []quoteItemRequest `json:"items" binding:"required,min=1,dive"`
}

// Create builds and stores a quote with a transactional quote number
func (h *QuoteHandler) Create(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	items := make([]models.QuoteItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = models.QuoteItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}

	q, err := h.service.Build(tenantID, req.CustomerID, userID, items, req.DiscountRate, req.ValidUntil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.quotes.Create(c.Request.Context(), q); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create quote"})
		return
	}

	c.JSON(http.StatusCreated, q)
}

// Get retrieves one quote with items
func (h *QuoteHandler) Get(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quote id"})
		return
	}

	q, err := h.quotes.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load quote"})
		return
	}
	if q == nil || q.TenantID != tenantID {
		c.JSON(http.StatusNotFound, gin.H{"error": "quote not found"})
		return
	}

	c.JSON(http.StatusOK, q)
}

// List retrieves the tenant's quotes
func (h *QuoteHandler) List(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	quotes, err := h.quotes.ListByTenant(c.Request.Context(), tenantID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list quotes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quotes": quotes})
}

type updateQuoteStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft sent accepted rejected"`
}

// UpdateStatus moves a quote through its lifecycle
func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quote id"})
		return
	}

	var req updateQuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	q, err := h.quotes.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load quote"})
		return
	}
	if q == nil || q.TenantID != tenantID {
		c.JSON(http.StatusNotFound, gin.H{"error": "quote not found"})
		return
	}

	if err := h.quotes.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update quote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

// Delete soft deletes a quote
func (h *QuoteHandler) Delete(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quote id"})
		return
	}

	q, err := h.quotes.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load quote"})
		return
	}
	if q == nil || q.TenantID != tenantID {
		c.JSON(http.StatusNotFound, gin.H{"error": "quote not found"})
		return
	}

	if err := h.quotes.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete quote"})
		return
	}

	c.Status(http.StatusNoContent)
}
