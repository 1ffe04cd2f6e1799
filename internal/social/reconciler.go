package social

import (
	"context"
	"time"

	"github.com/2beens/fittrack/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

type counterRepairer interface {
	RepairCounters(ctx context.Context) (int64, error)
}

// Reconciler periodically repairs denormalized post counters that drifted
// from the rows they summarize.
type Reconciler struct {
	repairer       counterRepairer
	interval       time.Duration
	metricsManager *metrics.Manager
}

func NewReconciler(repairer counterRepairer, interval time.Duration, metricsManager *metrics.Manager) *Reconciler {
	return &Reconciler{
		repairer:       repairer,
		interval:       interval,
		metricsManager: metricsManager,
	}
}

// Run repairs once per interval until ctx is done.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debugln("counters reconciler stopped")
			return
		case <-ticker.C:
			if _, err := r.RepairOnce(ctx); err != nil {
				log.Errorf("counters reconciler: %s", err)
			}
		}
	}
}

func (r *Reconciler) RepairOnce(ctx context.Context) (int64, error) {
	start := time.Now()
	repaired, err := r.repairer.RepairCounters(ctx)
	r.metricsManager.HistReconcileDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return 0, err
	}

	if repaired > 0 {
		log.Warnf("counters reconciler: repaired %d posts", repaired)
		r.metricsManager.CounterCountersRepaired.Add(float64(repaired))
	}
	return repaired, nil
}
