package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Recomputer rebuilds every derived aggregate from its children.
type Recomputer interface {
	RecomputeAll(ctx context.Context) error
}

// Scheduler runs the periodic aggregate reconciliation.
type Scheduler struct {
	cron *cron.Cron
	log  *logrus.Logger
}

// NewReconciler returns nil when schedule is empty.
func NewReconciler(schedule string, r Recomputer, timeout time.Duration, log *logrus.Logger) (*Scheduler, error) {
	if schedule == "" {
		return nil, nil
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	s := &Scheduler{cron: c, log: log}

	if _, err := c.AddFunc(schedule, func() { s.reconcile(r, timeout) }); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) reconcile(r Recomputer, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	if err := r.RecomputeAll(ctx); err != nil {
		s.log.WithError(err).Warn("aggregate reconciliation finished with errors")
		return
	}
	s.log.WithField("took", time.Since(start).String()).Info("aggregates reconciled")
}

func (s *Scheduler) Start() {
	if s == nil {
		return
	}
	s.cron.Start()
}

// Stop waits for a running reconciliation to finish.
func (s *Scheduler) Stop() {
	if s == nil {
		return
	}
	<-s.cron.Stop().Done()
}
