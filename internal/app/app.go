package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/auth"
	"github.com/yungbote/skillbridge-backend/internal/data/db"
	"github.com/yungbote/skillbridge-backend/internal/http"
	"github.com/yungbote/skillbridge-backend/internal/observability"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
	"github.com/yungbote/skillbridge-backend/internal/realtime"
	"github.com/yungbote/skillbridge-backend/internal/realtime/bus"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Repos    Repos
	Services Services
	Hub      *realtime.Hub
	Bus      bus.Bus
	Metrics  *observability.Metrics
	Server   *http.Server

	otelShutdown func(context.Context) error
}

// New wires the whole service. Database preparation failures are logged and the
// app still starts, so /healthcheck can report the outage.
func New(ctx context.Context, cfg Config, log *logger.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.UsesDevSecret() && !strings.EqualFold(cfg.Env, "development") {
		log.Warn("Using the development secret key outside development", "env", cfg.Env)
	}
	if !strings.EqualFold(cfg.Env, "development") {
		gin.SetMode(gin.ReleaseMode)
	}

	otelShutdown := observability.InitOTel(ctx, log, cfg.OtelSettings())

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	theDB, err := db.Open(cfg.DBConfig(), log)
	if err != nil {
		_ = otelShutdown(ctx)
		return nil, fmt.Errorf("open database: %w", err)
	}
	metrics.RegisterDB(theDB, log)

	theBus, err := bus.New(cfg.BusConfig(), log)
	if err != nil {
		log.Error("Realtime bus unavailable; falling back to in-process delivery", "bus", cfg.Realtime.Bus, "error", err)
		theBus = bus.NewLocalBus(log)
	}

	hub := realtime.NewHub(log)
	hub.OnDrop(metrics.IncWSDropped)

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, theBus, metrics)
	handlerset := wireHandlers(theDB, log, serviceset, hub, metrics)
	middleware := wireMiddleware(log, serviceset, metrics)
	server := wireServer(cfg, log, handlerset, middleware, metrics)

	a := &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Hub:          hub,
		Bus:          theBus,
		Metrics:      metrics,
		Server:       server,
		otelShutdown: otelShutdown,
	}
	a.prepareDatabase(ctx)
	return a, nil
}

func (a *App) prepareDatabase(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.Ping(pingCtx, a.DB); err != nil {
		a.Log.Error("Database unreachable at startup; continuing degraded", "error", err)
		return
	}
	if err := db.AutoMigrateAll(a.DB.WithContext(ctx)); err != nil {
		a.Log.Error("Database migration failed; continuing degraded", "error", err)
		return
	}
	if !a.Cfg.SeedDemoData {
		return
	}
	if _, err := SeedDemo(ctx, a.DB, a.Services.Hasher, a.Log); err != nil {
		a.Log.Error("Demo seed failed; continuing", "error", err)
	}
}

// Run serves HTTP and forwards bus messages to local websocket clients until ctx ends.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.Bus.StartForwarder(gctx, a.Hub.Broadcast); err != nil {
			return fmt.Errorf("start realtime forwarder: %w", err)
		}
		<-gctx.Done()
		return nil
	})

	a.Metrics.StartSLOEvaluator(gctx, a.Log, a.Cfg.SLOSettings())
	if strings.EqualFold(a.Cfg.Realtime.Bus, bus.KindRedis) {
		a.Metrics.StartRedisCollector(gctx, a.Log, a.Cfg.Realtime.RedisAddr, 15*time.Second)
	}

	g.Go(func() error {
		a.Log.Info("HTTP server listening", "addr", a.Cfg.Addr())
		return a.Server.Run(gctx, a.Cfg.Addr())
	})

	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Bus != nil {
		if err := a.Bus.Close(); err != nil {
			a.Log.Warn("Realtime bus close failed", "error", err)
		}
	}
	if err := db.Close(a.DB); err != nil {
		a.Log.Warn("Database close failed", "error", err)
	}
	if a.otelShutdown != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.otelShutdown(shutdownCtx)
	}
	a.Log.Sync()
}

// Migrate opens the configured database and applies the schema.
func Migrate(ctx context.Context, cfg Config, log *logger.Logger) error {
	gdb, err := db.Open(cfg.DBConfig(), log)
	if err != nil {
		return err
	}
	defer db.Close(gdb)
	if err := db.AutoMigrateAll(gdb.WithContext(ctx)); err != nil {
		return err
	}
	log.Info("Database migrated")
	return nil
}

// Seed migrates and then loads the embedded demo dataset.
func Seed(ctx context.Context, cfg Config, log *logger.Logger) (db.SeedReport, error) {
	gdb, err := db.Open(cfg.DBConfig(), log)
	if err != nil {
		return db.SeedReport{}, err
	}
	defer db.Close(gdb)
	if err := db.AutoMigrateAll(gdb.WithContext(ctx)); err != nil {
		return db.SeedReport{}, err
	}
	return SeedDemo(ctx, gdb, auth.NewHasher(cfg.BcryptCost), log)
}

func SeedDemo(ctx context.Context, gdb *gorm.DB, hasher db.PasswordHasher, log *logger.Logger) (db.SeedReport, error) {
	data, err := db.DefaultSeedData()
	if err != nil {
		return db.SeedReport{}, err
	}
	report, err := db.Seed(ctx, gdb, hasher, data)
	if err != nil {
		return report, fmt.Errorf("seed demo data: %w", err)
	}
	log.Info("Demo data seeded", "users_created", report.UsersCreated, "modules_created", report.ModulesCreated)
	return report, nil
}
