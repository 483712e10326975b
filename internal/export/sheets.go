package export

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
	"github.com/mamadbah2/fleetstock/internal/repository/sheets"
)

// CountHeader is the column layout of the count log sheet.
var CountHeader = []interface{}{"timestamp", "countId", "vehicleId", "countedBy", "itemId", "expected", "counted", "variance"}

// InventorySource yields the tabular projection of the catalog.
type InventorySource interface {
	ExportRows(ctx context.Context) ([][]interface{}, error)
}

// SheetsExporter mirrors stock data into a spreadsheet.
type SheetsExporter struct {
	repo           sheets.Repository
	source         InventorySource
	inventoryRange string
	countsRange    string
	logger         *zap.Logger
}

// NewSheetsExporter constructs an exporter writing the catalog at inventoryRange
// and appending count logs at countsRange.
func NewSheetsExporter(repo sheets.Repository, source InventorySource, inventoryRange, countsRange string, logger *zap.Logger) *SheetsExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SheetsExporter{
		repo:           repo,
		source:         source,
		inventoryRange: inventoryRange,
		countsRange:    countsRange,
		logger:         logger,
	}
}

// SyncInventory replaces the inventory sheet with the current catalog.
func (e *SheetsExporter) SyncInventory(ctx context.Context) error {
	rows, err := e.source.ExportRows(ctx)
	if err != nil {
		return fmt.Errorf("failed to read inventory for sheets: %w", err)
	}
	if err := e.repo.ReplaceTable(ctx, e.inventoryRange, rows); err != nil {
		return fmt.Errorf("failed to sync inventory sheet: %w", err)
	}

	e.logger.Info("inventory synced to sheets", zap.Int("items", len(rows)-1))
	return nil
}

// AppendCount appends one row per entry of a count log.
func (e *SheetsExporter) AppendCount(ctx context.Context, log models.DailyCountLog) error {
	if err := e.repo.AppendRows(ctx, e.countsRange, CountRows(log)); err != nil {
		return fmt.Errorf("failed to append count %s: %w", log.ID, err)
	}
	return nil
}

// CountRows flattens a count log into sheet rows.
func CountRows(log models.DailyCountLog) [][]interface{} {
	ts := log.Timestamp.UTC().Format(time.RFC3339)
	rows := make([][]interface{}, 0, len(log.Entries))
	for _, entry := range log.Entries {
		rows = append(rows, []interface{}{
			ts, log.ID, log.VehicleID, log.CountedBy,
			entry.ItemID, entry.ExpectedQuantity, entry.CountedQuantity, entry.Variance,
		})
	}
	return rows
}
