// Package inventory runs the stock engine behind a lock and keeps the
// persisted collections in step with it.
package inventory

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
	"github.com/mamadbah2/fleetstock/internal/lock"
	"github.com/mamadbah2/fleetstock/internal/repository"
	"github.com/mamadbah2/fleetstock/internal/stock"
)

// Options tunes a Service.
type Options struct {
	// Tools is the equipment reference list; empty uses stock.DefaultTools.
	Tools []string
	// Seed is written on first start and by Reset; zero value uses SeedSnapshot.
	Seed *models.StockSnapshot
	// Shared reloads the collections from the repository before every read
	// and inside every mutation, for deployments where several instances
	// share one lock.
	Shared bool
}

// Service owns the stock engine. Mutations run under the locker and are
// persisted before they return; a failed write restores the previous state.
type Service struct {
	mu     sync.RWMutex
	engine *stock.Engine
	locker lock.Locker
	repo   repository.StockRepository
	seed   models.StockSnapshot
	shared bool
	logger *zap.Logger
}

// NewService constructs an inventory service with empty collections; call Load
// before serving.
func NewService(repo repository.StockRepository, locker lock.Locker, opts Options, logger *zap.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stock repository is required")
	}
	if locker == nil {
		locker = lock.NewLocal()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	seed := SeedSnapshot()
	if opts.Seed != nil {
		seed = *opts.Seed
	}

	catalog, _ := stock.NewCatalog(nil)
	fleet, _ := stock.NewFleet(nil)

	return &Service{
		engine: stock.NewEngine(catalog, fleet, opts.Tools),
		locker: locker,
		repo:   repo,
		seed:   seed,
		shared: opts.Shared,
		logger: logger,
	}, nil
}

// Load reads the persisted collections, writing the seed data when nothing has
// been stored yet.
func (s *Service) Load(ctx context.Context) error {
	release, err := s.locker.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire stock lock: %w", err)
	}
	defer release()

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, found, err := s.repo.LoadStock(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stock: %w", err)
	}
	if !found {
		s.logger.Info("no stored stock, writing seed data",
			zap.Int("items", len(s.seed.Inventory)),
			zap.Int("vehicles", len(s.seed.Vehicles)))
		snapshot = s.seed
		if err := s.repo.SaveStock(ctx, snapshot); err != nil {
			return fmt.Errorf("failed to save seed stock: %w", err)
		}
	}

	if err := s.engine.Restore(snapshot); err != nil {
		return fmt.Errorf("stored stock is invalid: %w", err)
	}

	s.logger.Info("stock loaded",
		zap.Int("items", s.engine.Catalog().Len()),
		zap.Int("vehicles", len(snapshot.Vehicles)))
	return nil
}

// mutate runs apply against the engine inside the critical section and then
// persist. When persist fails the engine is rolled back to its prior state.
func (s *Service) mutate(ctx context.Context, op string, apply func(e *stock.Engine) error, persist func(ctx context.Context) error) error {
	release, err := s.locker.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire stock lock for %s: %w", op, err)
	}
	defer release()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shared {
		if err := s.reload(ctx); err != nil {
			return err
		}
	}

	before := s.engine.Snapshot()
	if err := apply(s.engine); err != nil {
		return err
	}

	if err := persist(ctx); err != nil {
		if restoreErr := s.engine.Restore(before); restoreErr != nil {
			s.logger.Error("failed to roll back stock", zap.String("op", op), zap.Error(restoreErr))
		}
		s.logger.Error("failed to persist stock change", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("failed to persist %s: %w", op, err)
	}
	return nil
}

func (s *Service) reload(ctx context.Context) error {
	snapshot, found, err := s.repo.LoadStock(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload stock: %w", err)
	}
	if !found {
		return nil
	}
	if err := s.engine.Restore(snapshot); err != nil {
		return fmt.Errorf("stored stock is invalid: %w", err)
	}
	return nil
}

// read runs fn against the current collections. A shared service reloads them
// first so writes made by other instances are visible.
func (s *Service) read(ctx context.Context, fn func(e *stock.Engine) error) error {
	if !s.shared {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return fn(s.engine)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reload(ctx); err != nil {
		return err
	}
	return fn(s.engine)
}

func (s *Service) saveStock(ctx context.Context) error {
	return s.repo.SaveStock(ctx, s.engine.Snapshot())
}

// Items lists the warehouse catalog.
func (s *Service) Items(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.read(ctx, func(e *stock.Engine) error {
		items = e.Catalog().List()
		return nil
	})
	return items, err
}

// Item returns one catalog item.
func (s *Service) Item(ctx context.Context, id string) (models.InventoryItem, error) {
	var item models.InventoryItem
	err := s.read(ctx, func(e *stock.Engine) error {
		var ok bool
		if item, ok = e.Catalog().Get(id); !ok {
			return fmt.Errorf("item %s: %w", id, stock.ErrNotFound)
		}
		return nil
	})
	return item, err
}

// UpsertItem adds a catalog item or updates an existing one's description and
// threshold.
func (s *Service) UpsertItem(ctx context.Context, item models.InventoryItem) (models.InventoryItem, error) {
	var saved models.InventoryItem
	err := s.mutate(ctx, "item upsert", func(e *stock.Engine) error {
		var err error
		saved, err = e.Catalog().Upsert(item)
		return err
	}, s.saveStock)
	if err != nil {
		return models.InventoryItem{}, err
	}

	s.logger.Info("item saved", zap.String("item_id", saved.ID), zap.Int("quantity", saved.Quantity))
	return saved, nil
}

// SetItemQuantity is the administrative absolute correction of warehouse stock.
func (s *Service) SetItemQuantity(ctx context.Context, id string, quantity int) (models.InventoryItem, error) {
	var saved models.InventoryItem
	err := s.mutate(ctx, "quantity set", func(e *stock.Engine) error {
		var err error
		saved, err = e.Catalog().SetQuantity(id, quantity)
		return err
	}, s.saveStock)
	if err != nil {
		return models.InventoryItem{}, err
	}

	s.logger.Info("item quantity set", zap.String("item_id", id), zap.Int("quantity", saved.Quantity))
	return saved, nil
}

// RemoveItem deletes a catalog item.
func (s *Service) RemoveItem(ctx context.Context, id string) error {
	err := s.mutate(ctx, "item removal", func(e *stock.Engine) error {
		return e.Catalog().Remove(id)
	}, s.saveStock)
	if err != nil {
		return err
	}

	s.logger.Info("item removed", zap.String("item_id", id))
	return nil
}

// LowStock returns the items at or below their threshold.
func (s *Service) LowStock(ctx context.Context) ([]models.InventoryItem, error) {
	var low []models.InventoryItem
	err := s.read(ctx, func(e *stock.Engine) error {
		low = e.LowStock()
		return nil
	})
	return low, err
}

// ExportRows returns the tabular projection of the catalog.
func (s *Service) ExportRows(ctx context.Context) ([][]interface{}, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}
	return stock.ExportRows(items), nil
}

// Vehicles lists every vehicle allocation.
func (s *Service) Vehicles(ctx context.Context) ([]models.VehicleInventory, error) {
	var vehicles []models.VehicleInventory
	err := s.read(ctx, func(e *stock.Engine) error {
		vehicles = e.Fleet().List()
		return nil
	})
	return vehicles, err
}

// Vehicle returns one vehicle allocation.
func (s *Service) Vehicle(ctx context.Context, id string) (models.VehicleInventory, error) {
	var v models.VehicleInventory
	err := s.read(ctx, func(e *stock.Engine) error {
		var ok bool
		if v, ok = e.Fleet().Get(id); !ok {
			return fmt.Errorf("vehicle %s: %w", id, stock.ErrNotFound)
		}
		return nil
	})
	return v, err
}

// RegisterVehicle adds a vehicle or renames an existing one.
func (s *Service) RegisterVehicle(ctx context.Context, vehicle models.VehicleInventory) (models.VehicleInventory, error) {
	var saved models.VehicleInventory
	err := s.mutate(ctx, "vehicle registration", func(e *stock.Engine) error {
		var err error
		saved, err = e.Fleet().Upsert(vehicle)
		return err
	}, s.saveStock)
	if err != nil {
		return models.VehicleInventory{}, err
	}

	s.logger.Info("vehicle saved", zap.String("vehicle_id", saved.VehicleID))
	return saved, nil
}

// Transfer moves stock from the warehouse onto a vehicle.
func (s *Service) Transfer(ctx context.Context, vehicleID string, lines []stock.TransferLine) (stock.TransferOutcome, error) {
	var outcome stock.TransferOutcome
	err := s.mutate(ctx, "transfer", func(e *stock.Engine) error {
		var err error
		outcome, err = e.Transfer(vehicleID, lines)
		return err
	}, s.saveStock)
	if err != nil {
		return stock.TransferOutcome{}, err
	}

	s.logger.Info("stock transferred", zap.String("vehicle_id", vehicleID), zap.Int("lines", len(lines)))
	return outcome, nil
}

// SubmitCount records a physical vehicle count and stores the resulting log.
func (s *Service) SubmitCount(ctx context.Context, vehicleID, countedBy string, lines []stock.CountLine) (models.DailyCountLog, error) {
	var log models.DailyCountLog
	err := s.mutate(ctx, "count", func(e *stock.Engine) error {
		var err error
		log, err = e.SubmitCount(vehicleID, countedBy, lines)
		return err
	}, func(ctx context.Context) error {
		return s.repo.SaveCount(ctx, log, s.engine.Fleet().List())
	})
	if err != nil {
		return models.DailyCountLog{}, err
	}

	s.logger.Info("count recorded",
		zap.String("vehicle_id", vehicleID),
		zap.String("counted_by", log.CountedBy),
		zap.Int("discrepancies", len(log.Discrepancies())),
		zap.Int("net_variance", log.NetVariance()))
	return log, nil
}

// SubmitChecklist validates and stores an equipment checklist.
func (s *Service) SubmitChecklist(ctx context.Context, vehicleID, completedBy string, items []models.ChecklistItem) (models.EquipmentChecklist, error) {
	var checklist models.EquipmentChecklist
	err := s.mutate(ctx, "checklist", func(e *stock.Engine) error {
		var err error
		checklist, err = e.SubmitChecklist(vehicleID, completedBy, items)
		return err
	}, func(ctx context.Context) error {
		return s.repo.AppendChecklist(ctx, checklist)
	})
	if err != nil {
		return models.EquipmentChecklist{}, err
	}

	s.logger.Info("checklist recorded", zap.String("vehicle_id", vehicleID), zap.String("completed_by", checklist.CompletedBy))
	return checklist, nil
}

// CountLogs returns a vehicle's count history, newest first.
func (s *Service) CountLogs(ctx context.Context, vehicleID string) ([]models.DailyCountLog, error) {
	if _, err := s.Vehicle(ctx, vehicleID); err != nil {
		return nil, err
	}
	logs, err := s.repo.ListCountLogs(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list count logs for %s: %w", vehicleID, err)
	}
	return logs, nil
}

// Checklists returns a vehicle's checklist history, newest first.
func (s *Service) Checklists(ctx context.Context, vehicleID string) ([]models.EquipmentChecklist, error) {
	if _, err := s.Vehicle(ctx, vehicleID); err != nil {
		return nil, err
	}
	lists, err := s.repo.ListChecklists(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklists for %s: %w", vehicleID, err)
	}
	return lists, nil
}

// Tools returns the equipment reference list.
func (s *Service) Tools() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.Tools()
}

// Backup captures both collections.
func (s *Service) Backup(ctx context.Context) (models.StockSnapshot, error) {
	var snapshot models.StockSnapshot
	err := s.read(ctx, func(e *stock.Engine) error {
		snapshot = e.Snapshot()
		return nil
	})
	return snapshot, err
}

// Restore replaces both collections with snapshot. An invalid snapshot leaves
// the current state untouched.
func (s *Service) Restore(ctx context.Context, snapshot models.StockSnapshot) error {
	err := s.mutate(ctx, "restore", func(e *stock.Engine) error {
		return e.Restore(snapshot)
	}, s.saveStock)
	if err != nil {
		return err
	}

	s.logger.Info("stock restored from backup",
		zap.Int("items", len(snapshot.Inventory)),
		zap.Int("vehicles", len(snapshot.Vehicles)))
	return nil
}

// Reset restores the seed data.
func (s *Service) Reset(ctx context.Context) error {
	return s.Restore(ctx, s.seed)
}
