package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests             *prometheus.CounterVec
	CounterHandleRequestPanic   prometheus.Counter
	CounterRateLimitedRequests  prometheus.Counter
	CounterWorkoutsStarted      prometheus.Counter
	CounterWorkoutsCompleted    prometheus.Counter
	CounterWorkoutsLogged       prometheus.Counter
	CounterAchievementsUnlocked *prometheus.CounterVec
	CounterLikesToggled         *prometheus.CounterVec
	CounterComments             *prometheus.CounterVec
	CounterCountersRepaired     prometheus.Counter
	CounterAuthCodesSent        prometheus.Counter
	CounterCASConflicts         *prometheus.CounterVec

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistogramRequestDuration *prometheus.HistogramVec
	HistReconcileDuration    prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("fittrack", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("fittrack", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterOpts := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		}
	}

	return &Manager{
		CounterRequests: factory.NewCounterVec(
			counterOpts("request", "The total number of incoming requests"),
			[]string{"method", "status"},
		),
		CounterHandleRequestPanic: factory.NewCounter(
			counterOpts("handle_request_panic", "The total number of serve request panics"),
		),
		CounterRateLimitedRequests: factory.NewCounter(
			counterOpts("rate_limited_requests", "The total number of rate limited requests"),
		),
		CounterWorkoutsStarted: factory.NewCounter(
			counterOpts("workouts_started", "Workout instances started, resumes excluded"),
		),
		CounterWorkoutsCompleted: factory.NewCounter(
			counterOpts("workouts_completed", "Workout instances completed"),
		),
		CounterWorkoutsLogged: factory.NewCounter(
			counterOpts("workouts_logged", "Workout logs written"),
		),
		CounterAchievementsUnlocked: factory.NewCounterVec(
			counterOpts("achievements_unlocked", "Achievements unlocked, per achievement id"),
			[]string{"achievement"},
		),
		CounterLikesToggled: factory.NewCounterVec(
			counterOpts("likes_toggled", "Post like toggles"),
			[]string{"liked"},
		),
		CounterComments: factory.NewCounterVec(
			counterOpts("comments", "Comments created and deleted"),
			[]string{"op"},
		),
		CounterCountersRepaired: factory.NewCounter(
			counterOpts("counters_repaired", "Posts whose denormalized counters were repaired"),
		),
		CounterAuthCodesSent: factory.NewCounter(
			counterOpts("auth_codes_sent", "Login codes delivered"),
		),
		CounterCASConflicts: factory.NewCounterVec(
			counterOpts("cas_conflicts", "Version conflicts hit by compare-and-swap writes"),
			[]string{"entity"},
		),

		GaugeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "current_requests",
			Help:      "Current number of requests served",
		}),
		GaugeLifeSignal: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "life_signal",
			Help:      "Shows whether the service is alive",
		}),

		HistogramRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Histogram of response time for requests in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"route", "method", "status_code"}),
		HistReconcileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "counters_reconcile_duration_seconds",
			Help:      "Duration of a single social counters reconcile run in seconds",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10, 30, 60},
		}),
	}
}
