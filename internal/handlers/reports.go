package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kalibre-teknik/backoffice/internal/config"
	"github.com/kalibre-teknik/backoffice/internal/middleware"
	"github.com/kalibre-teknik/backoffice/internal/models"
	"github.com/kalibre-teknik/backoffice/internal/report"
	"github.com/kalibre-teknik/backoffice/internal/repository"
	"github.com/kalibre-teknik/backoffice/internal/services/archive"
	"github.com/kalibre-teknik/backoffice/internal/services/notify"
	"github.com/kalibre-teknik/backoffice/pkg/utils"
)

// ReportHandler handles report generation and download requests
type ReportHandler struct {
	cfg        *config.Config
	generator  *report.Generator
	workOrders *repository.WorkOrderRepository
	reports    *repository.ReportRepository
	users      *repository.UserRepository
	archive    *archive.Service
	notify     *notify.Service
}

// NewReportHandler creates a new report handler. archive and notify may
// be nil when object storage or redis is not configured.
func NewReportHandler(
	cfg *config.Config,
	generator *report.Generator,
	workOrders *repository.WorkOrderRepository,
	reports *repository.ReportRepository,
	users *repository.UserRepository,
	archiveSvc *archive.Service,
	notifySvc *notify.Service,
) *ReportHandler {
	return &ReportHandler{
		cfg:        cfg,
		generator:  generator,
		workOrders: workOrders,
		reports:    reports,
		users:      users,
		archive:    archiveSvc,
		notify:     notifySvc,
	}
}

type generateReportRequest struct {
	ReportType  string         `json:"reportType" binding:"required"`
	WorkOrderID uuid.UUID      `json:"workOrderId" binding:"required"`
	FormData    map[string]any `json:"formData" binding:"required"`
	OlcumTarihi string         `json:"olcumTarihi"`
}

// Generate renders one inspection report PDF, records its metadata row
// and mirrors the artifact to object storage.
func (h *ReportHandler) Generate(c *gin.Context) {
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

	var req generateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	wo, err := h.workOrders.GetByID(c.Request.Context(), req.WorkOrderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load work order"})
		return
	}
	if wo == nil || wo.TenantID != tenantID {
		c.JSON(http.StatusNotFound, gin.H{"error": "work order not found"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	fieldData := report.FieldData{
		FormData:    req.FormData,
		OlcumTarihi: req.OlcumTarihi,
	}

	result, err := h.generator.Generate(req.ReportType, wo, fieldData, user)
	if err != nil {
		switch {
		case errors.Is(err, report.ErrUnsupportedReportType), errors.Is(err, report.ErrConfigNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, report.ErrVerdictMissing):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			log.Printf("report generation failed for work order %s: %v", wo.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "report generation failed"})
		}
		return
	}

	row := &models.Report{
		ID:          uuid.New(),
		TenantID:    tenantID,
		WorkOrderID: wo.ID,
		ReportNo:    result.ReportNo,
		ReportType:  req.ReportType,
		Sonuc:       string(result.Sonuc),
		Filename:    result.Filename,
		PDFPath:     result.PDFPath,
		PDFURL:      result.PDFURL,
		GeneratedBy: userID,
		CreatedAt:   time.Now(),
	}
	if err := h.reports.Create(c.Request.Context(), row); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record report"})
		return
	}

	if wo.Status == models.WorkOrderScheduled || wo.Status == models.WorkOrderInField {
		if err := h.workOrders.UpdateStatus(c.Request.Context(), wo.ID, models.WorkOrderReported); err != nil {
			log.Printf("failed to mark work order %s reported: %v", wo.ID, err)
		}
	}

	// The disk copy is authoritative; archival and notification failures
	// must not fail the request.
	if h.archive != nil {
		if data, err := os.ReadFile(result.PDFPath); err != nil {
			log.Printf("failed to read %s for archival: %v", result.PDFPath, err)
		} else if err := h.archive.Store(c.Request.Context(), tenantID.String(), result.Filename, data); err != nil {
			log.Printf("failed to archive report %s: %v", result.ReportNo, err)
		}
	}
	if h.notify != nil {
		event := notify.ReportReadyEvent{
			ReportNo:  result.ReportNo,
			Sonuc:     string(result.Sonuc),
			PDFURL:    result.PDFURL,
			CreatedAt: row.CreatedAt,
		}
		if err := h.notify.ReportReady(c.Request.Context(), tenantID, event); err != nil {
			log.Printf("failed to publish report event %s: %v", result.ReportNo, err)
		}
	}

	c.JSON(http.StatusCreated, result)
}

// Download serves a generated report PDF. The caller's tenant claim must
// match the path tenant and the filename must resolve to a recorded
// report inside the storage directory.
func (h *ReportHandler) Download(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if c.Param("tenantId") != tenantID.String() {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	filename := utils.SanitizeFilename(c.Param("filename"))
	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filename"})
		return
	}

	row, err := h.reports.GetByFilename(c.Request.Context(), tenantID, filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
		return
	}
	if row == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	if !utils.IsWithinBase(h.cfg.ReportDir, row.PDFPath) {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	if _, err := os.Stat(row.PDFPath); err != nil {
		// Disk copy lost; fall back to the archive mirror if we have one.
		if h.archive == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		data, err := h.archive.Fetch(c.Request.Context(), tenantID.String(), filename)
		if err != nil {
			log.Printf("failed to fetch archived report %s: %v", filename, err)
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(filename))
		c.Data(http.StatusOK, "application/pdf", data)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(filename))
	c.File(row.PDFPath)
}

// List retrieves the tenant's report rows
func (h *ReportHandler) List(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	reports, err := h.reports.ListByTenant(c.Request.Context(), tenantID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// Types lists the report types the engine can generate
func (h *ReportHandler) Types(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"reportTypes": h.generator.Types()})
}
