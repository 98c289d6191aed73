package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"github.com/DhavalSuthar-24/tourney/internal/metrics"
)

// DeliveryPruner removes webhook delivery records older than a cutoff.
type DeliveryPruner interface {
	PruneDeliveries(before time.Time) (int64, error)
}

// Scheduler runs the service's background housekeeping jobs.
type Scheduler struct {
	sched     gocron.Scheduler
	pruner    DeliveryPruner
	retention time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

func New(pruner DeliveryPruner, retention, interval time.Duration, logger *zap.Logger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	s := &Scheduler{
		sched:     sched,
		pruner:    pruner,
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.PruneWebhookDeliveries),
		gocron.WithName("prune-webhook-deliveries"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule webhook delivery pruning: %w", err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.sched.Start()
}

func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}

// PruneWebhookDeliveries deletes delivery records past the retention window.
func (s *Scheduler) PruneWebhookDeliveries() {
	cutoff := s.now().Add(-s.retention)
	n, err := s.pruner.PruneDeliveries(cutoff)
	if err != nil {
		s.logger.Error("pruning webhook deliveries failed", zap.Time("cutoff", cutoff), zap.Error(err))
		return
	}
	metrics.PrunedDeliveries.Add(float64(n))
	if n > 0 {
		s.logger.Info("pruned webhook deliveries", zap.Int64("deleted", n), zap.Time("cutoff", cutoff))
	}
}
