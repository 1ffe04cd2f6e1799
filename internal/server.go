package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/catalog"
	"github.com/2beens/fittrack/internal/challenges"
	"github.com/2beens/fittrack/internal/config"
	"github.com/2beens/fittrack/internal/db"
	"github.com/2beens/fittrack/internal/gamification"
	"github.com/2beens/fittrack/internal/middleware"
	"github.com/2beens/fittrack/internal/profile"
	"github.com/2beens/fittrack/internal/sessions"
	"github.com/2beens/fittrack/internal/social"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"
)

type healthCheck func(ctx context.Context) error

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	authService  *auth.Service
	checker      auth.Checker
	rateLimiter  middleware.RequestRateLimiter
	catalog      *catalog.CachedRepo
	profiles     *profile.Service
	tracker      *sessions.Tracker
	accountant   *gamification.Accountant
	social       *social.Service
	reconciler   *social.Reconciler
	challenges   *challenges.Service
	healthChecks map[string]healthCheck

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	PostgresPassword        string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	location, err := pkg.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.PostgresPassword,
		MaxConns:       cfg.PostgresMaxConns,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("fittrack", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fittrack-backend", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   10 * time.Second,
	}

	var codeSender auth.CodeSender = auth.LogCodeSender{}
	if cfg.CodeWebhookURL != "" {
		codeSender = auth.NewWebhookCodeSender(cfg.CodeWebhookURL, tracedHttpClient)
	} else {
		log.Warnln("code webhook not configured, login codes are only logged")
	}

	profilesRepo := profile.NewRepo(dbPool)
	profiles := profile.NewService(profilesRepo, location)
	socialRepo := social.NewRepo(dbPool)

	authService := auth.NewAuthService(auth.ServiceParams{
		RedisClient:    rdb,
		Users:          profiles,
		Sender:         codeSender,
		CodeTTL:        cfg.AuthCodeTTL,
		SessionTTL:     cfg.SessionTTL,
		MetricsManager: metricsManager,
	})

	redisPing := func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}

	s := &Server{
		config:      cfg,
		versionInfo: params.VersionInfo,
		dbPool:      dbPool,
		redisClient: rdb,

		authService:  authService,
		checker:      auth.NewLoginChecker(cfg.SessionTTL, rdb),
		rateLimiter:  redis_rate.NewLimiter(rdb),
		catalog:      catalog.NewCachedRepo(catalog.NewRepo(dbPool), cfg.CatalogCacheSizeMB, cfg.CatalogCacheTTL),
		profiles:     profiles,
		tracker:      sessions.NewTracker(sessions.NewRepo(dbPool), location, metricsManager),
		accountant:   gamification.NewAccountant(profilesRepo, gamification.NewLogRepo(dbPool), location, metricsManager),
		social:       social.NewService(socialRepo, profilesRepo, cfg.FeedMaxPageSize, metricsManager),
		reconciler:   social.NewReconciler(socialRepo, cfg.CountersReconcileInterval, metricsManager),
		challenges:   challenges.NewService(challenges.NewRepo(dbPool)),
		healthChecks: map[string]healthCheck{
			"postgres": dbPool.Ping,
			"redis":    redisPing,
		},

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/health", s.handleHealth).Methods("GET").Name("health")

	// auth routes are public, and limited per client ip
	authHandler := auth.NewHandler(s.authService)
	authRouter := r.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/code", authHandler.HandleSendCode).Methods("POST", "OPTIONS").Name("auth-code")
	authRouter.HandleFunc("/verify", authHandler.HandleVerifyCode).Methods("POST", "OPTIONS").Name("auth-verify")
	authRouter.HandleFunc("/logout", authHandler.HandleLogout).Methods("POST", "OPTIONS").Name("auth-logout")
	authRouter.Use(middleware.RateLimit(s.rateLimiter, "auth", s.config.AuthCodeRateLimitPerMin, s.metricsManager))

	catalogHandler := catalog.NewHandler(s.catalog)
	r.HandleFunc("/catalog/workouts", catalogHandler.HandleWorkouts).Methods("GET", "OPTIONS").Name("catalog-workouts")
	r.HandleFunc("/catalog/workouts/{id}", catalogHandler.HandleWorkout).Methods("GET", "OPTIONS").Name("catalog-workout")
	r.HandleFunc("/catalog/nutrition", catalogHandler.HandleNutritionTips).Methods("GET", "OPTIONS").Name("catalog-nutrition")

	profileHandler := profile.NewHandler(s.profiles)
	r.HandleFunc("/profile", profileHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/profile", profileHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-profile")

	sessionsHandler := sessions.NewHandler(s.tracker, s.catalog)
	r.HandleFunc("/sessions/today", sessionsHandler.HandleToday).Methods("GET", "OPTIONS").Name("sessions-today")
	r.HandleFunc("/sessions/{workoutId}/start", sessionsHandler.HandleStart).Methods("POST", "OPTIONS").Name("session-start")
	r.HandleFunc("/sessions/{workoutId}/exercises/{exerciseId}", sessionsHandler.HandleToggleExercise).Methods("POST", "OPTIONS").Name("session-toggle-exercise")
	r.HandleFunc("/sessions/{workoutId}/complete", sessionsHandler.HandleComplete).Methods("POST", "OPTIONS").Name("session-complete")

	gamificationHandler := gamification.NewHandler(s.accountant, s.catalog)
	r.HandleFunc("/workouts/logs", gamificationHandler.HandleListLogs).Methods("GET", "OPTIONS").Name("workout-logs")
	r.HandleFunc("/workouts/{workoutId}/log", gamificationHandler.HandleLogWorkout).Methods("POST", "OPTIONS").Name("log-workout")

	socialHandler := social.NewHandler(s.social)
	r.HandleFunc("/social/feed", socialHandler.HandleFeed).Methods("GET", "OPTIONS").Name("feed")
	r.HandleFunc("/social/posts", socialHandler.HandleCreatePost).Methods("POST", "OPTIONS").Name("new-post")
	r.HandleFunc("/social/posts/{id}/like", socialHandler.HandleToggleLike).Methods("POST", "OPTIONS").Name("toggle-like")
	r.HandleFunc("/social/posts/{id}/comments", socialHandler.HandleComments).Methods("GET", "OPTIONS").Name("comments")
	r.HandleFunc("/social/posts/{id}/comments", socialHandler.HandleCreateComment).Methods("POST").Name("new-comment")
	r.HandleFunc("/social/comments/{id}", socialHandler.HandleDeleteComment).Methods("DELETE", "OPTIONS").Name("delete-comment")

	challengesHandler := challenges.NewHandler(s.challenges)
	r.HandleFunc("/challenges", challengesHandler.HandleList).Methods("GET", "OPTIONS").Name("challenges")
	r.HandleFunc("/challenges/mine", challengesHandler.HandleMine).Methods("GET", "OPTIONS").Name("my-challenges")
	r.HandleFunc("/challenges/{id}/join", challengesHandler.HandleJoin).Methods("POST", "OPTIONS").Name("join-challenge")
	r.HandleFunc("/challenges/{id}/progress", challengesHandler.HandleUpdateProgress).Methods("PUT", "OPTIONS").Name("challenge-progress")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.checker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins...))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

type healthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{
		Status:  "ok",
		Version: s.versionInfo,
		Checks:  make(map[string]string, len(s.healthChecks)),
	}
	statusCode := http.StatusOK
	for name, check := range s.healthChecks {
		if err := check(ctx); err != nil {
			log.Warnf("health check [%s] failed: %s", name, err)
			resp.Checks[name] = "down"
			resp.Status = "degraded"
			statusCode = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "up"
	}

	pkg.WriteJSON(w, resp, statusCode)
}

// Serve starts the api and metrics servers, and the background jobs,
// which run until ctx is done.
func (s *Server) Serve(ctx context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	go s.authService.RunCleanup(ctx, s.config.AuthScanInterval)
	go s.reconciler.Run(ctx)

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	if s.otelShutdown != nil {
		s.otelShutdown()
		log.Trace("otel shut down ...")
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
