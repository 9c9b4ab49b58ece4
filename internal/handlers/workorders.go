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
)

// WorkOrderHandler handles work order requests
type WorkOrderHandler struct {
	workOrders *repository.WorkOrderRepository
}

// NewWorkOrderHandler creates a new work order handler
func NewWorkOrderHandler(workOrders *repository.WorkOrderRepository) *WorkOrderHandler {
	return &WorkOrderHandler{workOrders: workOrders}
}

type createWorkOrderRequest struct {
	CustomerID  uuid.UUID  `json:"customerId" binding:"required"`
	Location    string     `json:"location"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

// Create schedules an inspection job
func (h *WorkOrderHandler) Create(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	now := time.Now()
	wo := &models.WorkOrder{
		ID:          uuid.New(),
		TenantID:    tenantID,
		CustomerID:  req.CustomerID,
		Status:      models.WorkOrderScheduled,
		Location:    req.Location,
		ScheduledAt: req.ScheduledAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.workOrders.Create(c.Request.Context(), wo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create work order"})
		return
	}

	c.JSON(http.StatusCreated, wo)
}

// Get retrieves one work order with customer and tenant joined
func (h *WorkOrderHandler) Get(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work order id"})
		return
	}

	wo, err := h.workOrders.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load work order"})
		return
	}
	if wo == nil || wo.TenantID != tenantID {
		c.JSON(http.StatusNotFound, gin.H{"error": "work order not found"})
		return
	}

	c.JSON(http.StatusOK, wo)
}

// List retrieves the tenant's work orders
func (h *WorkOrderHandler) List(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, err := h.workOrders.ListByTenant(c.Request.Context(), tenantID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list work orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"workOrders": orders})
}
