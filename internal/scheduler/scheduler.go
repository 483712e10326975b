package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/fleetstock/internal/config"
	"github.com/mamadbah2/fleetstock/internal/domain/models"
)

// LowStockSource reports the items at or below threshold.
type LowStockSource interface {
	LowStock(ctx context.Context) ([]models.InventoryItem, error)
}

// Summarizer renders the low-stock alert body.
type Summarizer interface {
	LowStockSummary(ctx context.Context) (string, error)
}

// Alerter delivers an alert message.
type Alerter interface {
	SendAlert(ctx context.Context, message string) error
}

// InventorySyncer mirrors the catalog to an external sheet.
type InventorySyncer interface {
	SyncInventory(ctx context.Context) error
}

// Scheduler manages scheduled tasks. Jobs whose collaborator is nil or whose
// cron expression is empty are not registered.
type Scheduler struct {
	cron     *cron.Cron
	cfg      config.ScheduleConfig
	stock    LowStockSource
	summary  Summarizer
	alerter  Alerter
	syncer   InventorySyncer
	logger   *zap.Logger
	jobCount int
}

// NewScheduler creates a scheduler running in cfg.Timezone.
func NewScheduler(cfg config.ScheduleConfig, stock LowStockSource, summary Summarizer, alerter Alerter, syncer InventorySyncer, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %s: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		cfg:     cfg,
		stock:   stock,
		summary: summary,
		alerter: alerter,
		syncer:  syncer,
		logger:  logger,
	}, nil
}

// Register adds the configured jobs without starting the cron loop.
func (s *Scheduler) Register() error {
	if s.cfg.LowStockCron != "" && s.alerter != nil && s.stock != nil && s.summary != nil {
		if _, err := s.cron.AddFunc(s.cfg.LowStockCron, s.runLowStockAlert); err != nil {
			return fmt.Errorf("failed to schedule low stock alert %q: %w", s.cfg.LowStockCron, err)
		}
		s.jobCount++
		s.logger.Info("low stock alert scheduled", zap.String("spec", s.cfg.LowStockCron))
	}

	if s.cfg.SheetsSyncCron != "" && s.syncer != nil {
		if _, err := s.cron.AddFunc(s.cfg.SheetsSyncCron, s.runSheetsSync); err != nil {
			return fmt.Errorf("failed to schedule sheets sync %q: %w", s.cfg.SheetsSyncCron, err)
		}
		s.jobCount++
		s.logger.Info("sheets sync scheduled", zap.String("spec", s.cfg.SheetsSyncCron))
	}
	return nil
}

// Jobs returns the number of registered jobs.
func (s *Scheduler) Jobs() int {
	return s.jobCount
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.Int("jobs", s.jobCount))
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runLowStockAlert() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.LowStockAlert(ctx); err != nil {
		s.logger.Error("low stock alert failed", zap.Error(err))
	}
}

func (s *Scheduler) runSheetsSync() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.syncer.SyncInventory(ctx); err != nil {
		s.logger.Error("scheduled sheets sync failed", zap.Error(err))
	}
}

// LowStockAlert sends the low-stock summary when at least one item qualifies.
func (s *Scheduler) LowStockAlert(ctx context.Context) error {
	low, err := s.stock.LowStock(ctx)
	if err != nil {
		return fmt.Errorf("read low stock: %w", err)
	}
	if len(low) == 0 {
		s.logger.Debug("no low stock, alert skipped")
		return nil
	}

	summary, err := s.summary.LowStockSummary(ctx)
	if err != nil {
		return fmt.Errorf("render low stock summary: %w", err)
	}
	if err := s.alerter.SendAlert(ctx, summary); err != nil {
		return fmt.Errorf("send low stock alert: %w", err)
	}

	s.logger.Info("low stock alert sent", zap.Int("items", len(low)))
	return nil
}
