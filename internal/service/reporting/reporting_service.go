// Package reporting renders short text summaries of stock state for chat
// replies and scheduled alerts.
package reporting

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
)

const dateLayout = "2006-01-02 15:04"

// StockReader is the read side of the inventory service used for summaries.
type StockReader interface {
	Items(ctx context.Context) ([]models.InventoryItem, error)
	Item(ctx context.Context, id string) (models.InventoryItem, error)
	LowStock(ctx context.Context) ([]models.InventoryItem, error)
	Vehicle(ctx context.Context, id string) (models.VehicleInventory, error)
	CountLogs(ctx context.Context, vehicleID string) ([]models.DailyCountLog, error)
}

// Service formats stock summaries.
type Service struct {
	stock  StockReader
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(stock StockReader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{stock: stock, logger: logger}
}

// LowStockSummary lists every item at or below its threshold.
func (s *Service) LowStockSummary(ctx context.Context) (string, error) {
	low, err := s.stock.LowStock(ctx)
	if err != nil {
		return "", err
	}
	if len(low) == 0 {
		items, err := s.stock.Items(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Low stock: none of %d items are at or below threshold.", len(items)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Low stock: %d item(s)", len(low))
	for _, item := range low {
		fmt.Fprintf(&b, "\n- %s %s: %d %s (min %d)", item.ID, item.Name, item.Quantity, item.Unit, item.MinThreshold)
	}
	return b.String(), nil
}

// ItemSummary describes one catalog item.
func (s *Service) ItemSummary(ctx context.Context, id string) (string, error) {
	item, err := s.stock.Item(ctx, id)
	if err != nil {
		return "", err
	}

	status := "OK"
	if item.IsLowStock() {
		status = "LOW"
	}
	return fmt.Sprintf("%s %s [%s]: %d %s in warehouse, min %d. Status %s.",
		item.ID, item.Name, item.Category, item.Quantity, item.Unit, item.MinThreshold, status), nil
}

// VehicleSummary describes a vehicle's allocation and its latest count.
func (s *Service) VehicleSummary(ctx context.Context, id string) (string, error) {
	vehicle, err := s.stock.Vehicle(ctx, id)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %d line(s)", vehicle.VehicleID, vehicle.Name, len(vehicle.Items))
	for _, line := range vehicle.Items {
		name := line.ItemID
		if item, err := s.stock.Item(ctx, line.ItemID); err == nil {
			name = fmt.Sprintf("%s %s", item.ID, item.Name)
		}
		fmt.Fprintf(&b, "\n- %s: %d", name, line.Quantity)
	}

	logs, err := s.stock.CountLogs(ctx, id)
	if err != nil {
		s.logger.Debug("count history unavailable", zap.String("vehicle_id", id), zap.Error(err))
		return b.String(), nil
	}
	if len(logs) == 0 {
		b.WriteString("\nNo count recorded yet.")
		return b.String(), nil
	}

	last := logs[0]
	fmt.Fprintf(&b, "\nLast count %s by %s: %d discrepancy(ies), net variance %+d.",
		last.Timestamp.Format(dateLayout), last.CountedBy, len(last.Discrepancies()), last.NetVariance())
	return b.String(), nil
}
