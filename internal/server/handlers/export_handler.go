package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
	"github.com/mamadbah2/fleetstock/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InventorySyncer pushes the catalog to Google Sheets.
type InventorySyncer interface {
	SyncInventory(ctx context.Context) error
}

// ExportHandler serves downloads, sheet syncs and backups.
type ExportHandler struct {
	svc    InventoryService
	sheets InventorySyncer
	logger *zap.Logger
}

// NewExportHandler constructs the export HTTP adapter. sheets may be nil when
// the integration is not configured.
func NewExportHandler(svc InventoryService, sheets InventorySyncer, logger *zap.Logger) *ExportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportHandler{svc: svc, sheets: sheets, logger: logger}
}

// InventoryWorkbook streams the catalog as an .xlsx file.
func (h *ExportHandler) InventoryWorkbook(c *gin.Context) {
	rows, err := h.svc.ExportRows(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, "Inventory", rows); err != nil {
		respondError(c, h.logger, err)
		return
	}

	filename := fmt.Sprintf("inventory-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// SyncSheets pushes the catalog to the configured spreadsheet.
func (h *ExportHandler) SyncSheets(c *gin.Context) {
	if h.sheets == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, errorResponse{Error: "google sheets export is not configured"})
		return
	}
	if err := h.sheets.SyncInventory(c.Request.Context()); err != nil {
		h.logger.Error("sheets sync failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadGateway, errorResponse{Error: "google sheets sync failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "synced"})
}

// Backup returns both collections as one JSON document.
func (h *ExportHandler) Backup(c *gin.Context) {
	snapshot, err := h.svc.Backup(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// Restore replaces both collections from a backup document.
func (h *ExportHandler) Restore(c *gin.Context) {
	var snapshot models.StockSnapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.svc.Restore(c.Request.Context(), snapshot); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": len(snapshot.Inventory), "vehicles": len(snapshot.Vehicles)})
}

// Reset restores the initial warehouse and fleet.
func (h *ExportHandler) Reset(c *gin.Context) {
	if err := h.svc.Reset(c.Request.Context()); err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.logger.Warn("stock reset to seed data", zap.String("by", ActingUser(c).Username))
	c.Status(http.StatusNoContent)
}
