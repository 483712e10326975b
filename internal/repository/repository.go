// Package repository declares the persistence contracts the services depend on.
package repository

import (
	"context"
	"errors"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indicates a unique constraint was violated.
	ErrDuplicate = errors.New("duplicate record")
)

// StockRepository persists the catalog and fleet collections plus the
// append-only count logs and checklists.
type StockRepository interface {
	// LoadStock returns the stored collections; found is false when nothing has been saved yet.
	LoadStock(ctx context.Context) (snapshot models.StockSnapshot, found bool, err error)
	// SaveStock replaces both collections in one write.
	SaveStock(ctx context.Context, snapshot models.StockSnapshot) error
	// SaveCount appends a count log and replaces the fleet collection in one write.
	SaveCount(ctx context.Context, log models.DailyCountLog, vehicles []models.VehicleInventory) error
	AppendChecklist(ctx context.Context, checklist models.EquipmentChecklist) error
	// ListCountLogs returns a vehicle's count logs, newest first.
	ListCountLogs(ctx context.Context, vehicleID string) ([]models.DailyCountLog, error)
	// ListChecklists returns a vehicle's checklists, newest first.
	ListChecklists(ctx context.Context, vehicleID string) ([]models.EquipmentChecklist, error)
}

// UserRepository persists application users.
type UserRepository interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	InsertUser(ctx context.Context, user models.User) error
	DeleteUser(ctx context.Context, id string) error
}
