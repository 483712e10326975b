package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
	"github.com/mamadbah2/fleetstock/internal/stock"
)

// InventoryService is the stock surface the HTTP layer drives.
type InventoryService interface {
	Items(ctx context.Context) ([]models.InventoryItem, error)
	Item(ctx context.Context, id string) (models.InventoryItem, error)
	UpsertItem(ctx context.Context, item models.InventoryItem) (models.InventoryItem, error)
	SetItemQuantity(ctx context.Context, id string, quantity int) (models.InventoryItem, error)
	RemoveItem(ctx context.Context, id string) error
	LowStock(ctx context.Context) ([]models.InventoryItem, error)
	Vehicles(ctx context.Context) ([]models.VehicleInventory, error)
	Vehicle(ctx context.Context, id string) (models.VehicleInventory, error)
	RegisterVehicle(ctx context.Context, vehicle models.VehicleInventory) (models.VehicleInventory, error)
	Transfer(ctx context.Context, vehicleID string, lines []stock.TransferLine) (stock.TransferOutcome, error)
	SubmitCount(ctx context.Context, vehicleID, countedBy string, lines []stock.CountLine) (models.DailyCountLog, error)
	SubmitChecklist(ctx context.Context, vehicleID, completedBy string, items []models.ChecklistItem) (models.EquipmentChecklist, error)
	CountLogs(ctx context.Context, vehicleID string) ([]models.DailyCountLog, error)
	Checklists(ctx context.Context, vehicleID string) ([]models.EquipmentChecklist, error)
	Tools() []string
	ExportRows(ctx context.Context) ([][]interface{}, error)
	Backup(ctx context.Context) (models.StockSnapshot, error)
	Restore(ctx context.Context, snapshot models.StockSnapshot) error
	Reset(ctx context.Context) error
}

// CountSink receives every recorded count, e.g. to mirror it into a sheet.
type CountSink interface {
	AppendCount(ctx context.Context, log models.DailyCountLog) error
}

// InventoryHandler exposes the warehouse and fleet operations.
type InventoryHandler struct {
	svc    InventoryService
	counts CountSink
	logger *zap.Logger
}

// NewInventoryHandler constructs the inventory HTTP adapter. counts may be nil.
func NewInventoryHandler(svc InventoryService, counts CountSink, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, counts: counts, logger: logger}
}

// ListItems returns the catalog.
func (h *InventoryHandler) ListItems(c *gin.Context) {
	items, err := h.svc.Items(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetItem returns one item; the id is also the shelf QR payload.
func (h *InventoryHandler) GetItem(c *gin.Context) {
	item, err := h.svc.Item(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// LowStock returns the items at or below their threshold.
func (h *InventoryHandler) LowStock(c *gin.Context) {
	low, err := h.svc.LowStock(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, low)
}

// UpsertItem creates an item or updates its description and threshold.
func (h *InventoryHandler) UpsertItem(c *gin.Context) {
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		respondBindError(c, err)
		return
	}

	saved, err := h.svc.UpsertItem(c.Request.Context(), item)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// SetQuantity applies an administrative absolute correction.
func (h *InventoryHandler) SetQuantity(c *gin.Context) {
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.svc.SetItemQuantity(c.Request.Context(), c.Param("id"), *req.Quantity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem removes an item from the catalog.
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	if err := h.svc.RemoveItem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListVehicles returns every vehicle allocation.
func (h *InventoryHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.svc.Vehicles(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// GetVehicle returns one vehicle allocation.
func (h *InventoryHandler) GetVehicle(c *gin.Context) {
	v, err := h.svc.Vehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

type registerVehicleRequest struct {
	VehicleID string `json:"vehicleId" binding:"required"`
	Name      string `json:"name" binding:"required"`
}

// RegisterVehicle adds a vehicle with an empty allocation, or renames one.
func (h *InventoryHandler) RegisterVehicle(c *gin.Context) {
	var req registerVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	v, err := h.svc.RegisterVehicle(c.Request.Context(), models.VehicleInventory{VehicleID: req.VehicleID, Name: req.Name})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

type transferRequest struct {
	Lines []stock.TransferLine `json:"lines" binding:"required,min=1,dive"`
}

// Transfer moves stock from the warehouse to the vehicle in the path.
func (h *InventoryHandler) Transfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	outcome, err := h.svc.Transfer(c.Request.Context(), c.Param("id"), req.Lines)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

type countRequest struct {
	CountedBy string            `json:"countedBy"`
	Counts    []stock.CountLine `json:"counts" binding:"required,min=1,dive"`
}

// SubmitCount records a physical count. countedBy defaults to the acting username.
func (h *InventoryHandler) SubmitCount(c *gin.Context) {
	var req countRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	countedBy := strings.TrimSpace(req.CountedBy)
	if countedBy == "" {
		countedBy = ActingUser(c).Username
	}

	log, err := h.svc.SubmitCount(c.Request.Context(), c.Param("id"), countedBy, req.Counts)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if h.counts != nil {
		if err := h.counts.AppendCount(c.Request.Context(), log); err != nil {
			h.logger.Warn("failed to mirror count", zap.String("count_id", log.ID), zap.Error(err))
		}
	}

	c.JSON(http.StatusCreated, log)
}

// ListCounts returns a vehicle's count history, newest first.
func (h *InventoryHandler) ListCounts(c *gin.Context) {
	logs, err := h.svc.CountLogs(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

type checklistRequest struct {
	CompletedBy string                 `json:"completedBy"`
	Items       []models.ChecklistItem `json:"items" binding:"required,min=1"`
}

// SubmitChecklist records an equipment check. completedBy defaults to the acting username.
func (h *InventoryHandler) SubmitChecklist(c *gin.Context) {
	var req checklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	completedBy := strings.TrimSpace(req.CompletedBy)
	if completedBy == "" {
		completedBy = ActingUser(c).Username
	}

	checklist, err := h.svc.SubmitChecklist(c.Request.Context(), c.Param("id"), completedBy, req.Items)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, checklist)
}

// ListChecklists returns a vehicle's checklist history, newest first.
func (h *InventoryHandler) ListChecklists(c *gin.Context) {
	lists, err := h.svc.Checklists(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, lists)
}

// Tools returns the equipment reference list.
func (h *InventoryHandler) Tools(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Tools())
}
