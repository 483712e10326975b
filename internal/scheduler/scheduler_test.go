package scheduler

import (
	"context"
	"testing"

	"github.com/mamadbah2/fleetstock/internal/config"
	"github.com/mamadbah2/fleetstock/internal/domain/models"
)

type fakeStock []models.InventoryItem

func (f fakeStock) LowStock(ctx context.Context) ([]models.InventoryItem, error) { return f, nil }
func (f fakeStock) LowStockSummary(ctx context.Context) (string, error)        { return "summary", nil }

type fakeAlerter struct{ sent []string }

func (f *fakeAlerter) SendAlert(ctx context.Context, message string) error {
	f.sent = append(f.sent, message)
	return nil
}

type fakeSyncer struct{ calls int }

func (f *fakeSyncer) SyncInventory(ctx context.Context) error {
	f.calls++
	return nil
}

func TestLowStockAlert(t *testing.T) {
	alerter := &fakeAlerter{}

	s, err := NewScheduler(config.ScheduleConfig{Timezone: "UTC"}, fakeStock(nil), fakeStock(nil), alerter, nil, nil)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	if err := s.LowStockAlert(context.Background()); err != nil {
		t.Fatalf("LowStockAlert: %v", err)
	}
	if len(alerter.sent) != 0 {
		t.Fatalf("expected no alert without low stock, got %v", alerter.sent)
	}

	low := fakeStock{{ID: "P-1", Quantity: 0, MinThreshold: 1}}
	s, _ = NewScheduler(config.ScheduleConfig{Timezone: "UTC"}, low, low, alerter, nil, nil)
	if err := s.LowStockAlert(context.Background()); err != nil {
		t.Fatalf("LowStockAlert: %v", err)
	}
	if len(alerter.sent) != 1 || alerter.sent[0] != "summary" {
		t.Errorf("unexpected alerts %v", alerter.sent)
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.ScheduleConfig
		alerter  Alerter
		syncer   InventorySyncer
		wantJobs int
		wantErr  bool
	}{
		{name: "both", cfg: config.ScheduleConfig{LowStockCron: "0 7 * * *", SheetsSyncCron: "*/30 * * * *", Timezone: "Asia/Bangkok"}, alerter: &fakeAlerter{}, syncer: &fakeSyncer{}, wantJobs: 2},
		{name: "no collaborators", cfg: config.ScheduleConfig{LowStockCron: "0 7 * * *", SheetsSyncCron: "0 * * * *", Timezone: "UTC"}, wantJobs: 0},
		{name: "empty specs", cfg: config.ScheduleConfig{Timezone: "UTC"}, alerter: &fakeAlerter{}, syncer: &fakeSyncer{}, wantJobs: 0},
		{name: "bad spec", cfg: config.ScheduleConfig{LowStockCron: "whenever", Timezone: "UTC"}, alerter: &fakeAlerter{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScheduler(tt.cfg, fakeStock(nil), fakeStock(nil), tt.alerter, tt.syncer, nil)
			if err != nil {
				t.Fatalf("NewScheduler: %v", err)
			}
			err = s.Register()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Register error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && s.Jobs() != tt.wantJobs {
				t.Errorf("jobs = %d, want %d", s.Jobs(), tt.wantJobs)
			}
		})
	}
}

func TestNewScheduler_BadTimezone(t *testing.T) {
	if _, err := NewScheduler(config.ScheduleConfig{Timezone: "Mars/Olympus"}, nil, nil, nil, nil, nil); err == nil {
		t.Fatal("expected timezone error")
	}
}
