// Package memory keeps every collection in process memory. It backs tests and
// STORAGE_DRIVER=memory runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
	"github.com/mamadbah2/fleetstock/internal/repository"
)

var (
	_ repository.StockRepository = (*Repository)(nil)
	_ repository.UserRepository  = (*Repository)(nil)
)

// Repository is an in-memory implementation of the stock and user repositories.
type Repository struct {
	mu         sync.RWMutex
	snapshot   *models.StockSnapshot
	counts     []models.DailyCountLog
	checklists []models.EquipmentChecklist
	users      []models.User
}

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	return &Repository{}
}

// LoadStock returns a copy of the stored collections.
func (r *Repository) LoadStock(ctx context.Context) (models.StockSnapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.snapshot == nil {
		return models.StockSnapshot{}, false, nil
	}
	return copySnapshot(*r.snapshot), true, nil
}

// SaveStock stores a copy of both collections.
func (r *Repository) SaveStock(ctx context.Context, snapshot models.StockSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := copySnapshot(snapshot)
	r.snapshot = &s
	return nil
}

// SaveCount appends the log and replaces the fleet collection.
func (r *Repository) SaveCount(ctx context.Context, log models.DailyCountLog, vehicles []models.VehicleInventory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := models.StockSnapshot{Vehicles: vehicles}
	if r.snapshot != nil {
		s.Inventory = r.snapshot.Inventory
	}
	s = copySnapshot(s)
	r.snapshot = &s

	entries := make([]models.CountEntry, len(log.Entries))
	copy(entries, log.Entries)
	log.Entries = entries
	r.counts = append(r.counts, log)
	return nil
}

// AppendChecklist stores the checklist.
func (r *Repository) AppendChecklist(ctx context.Context, checklist models.EquipmentChecklist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]models.ChecklistItem, len(checklist.Items))
	copy(items, checklist.Items)
	checklist.Items = items
	r.checklists = append(r.checklists, checklist)
	return nil
}

// ListCountLogs returns the vehicle's count logs, newest first.
func (r *Repository) ListCountLogs(ctx context.Context, vehicleID string) ([]models.DailyCountLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.DailyCountLog, 0)
	for i := len(r.counts) - 1; i >= 0; i-- {
		if r.counts[i].VehicleID == vehicleID {
			out = append(out, r.counts[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

// ListChecklists returns the vehicle's checklists, newest first.
func (r *Repository) ListChecklists(ctx context.Context, vehicleID string) ([]models.EquipmentChecklist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.EquipmentChecklist, 0)
	for i := len(r.checklists) - 1; i >= 0; i-- {
		if r.checklists[i].VehicleID == vehicleID {
			out = append(out, r.checklists[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

// ListUsers returns every user in insertion order.
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

// FindUserByUsername looks a user up by login name.
func (r *Repository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

// InsertUser adds a user, enforcing unique ids and usernames.
func (r *Repository) InsertUser(ctx context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == user.ID || u.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	r.users = append(r.users, user)
	return nil
}

// DeleteUser removes a user by id.
func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func copySnapshot(s models.StockSnapshot) models.StockSnapshot {
	out := models.StockSnapshot{
		Inventory: make([]models.InventoryItem, len(s.Inventory)),
		Vehicles:  make([]models.VehicleInventory, len(s.Vehicles)),
	}
	copy(out.Inventory, s.Inventory)
	for i, v := range s.Vehicles {
		out.Vehicles[i] = v.Clone()
	}
	return out
}
