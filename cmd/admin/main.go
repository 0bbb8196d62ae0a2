package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/config"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/httpserver"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/httpserver/middleware"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/httpserver/ui"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/jobs"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/observability"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/orders"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pcbuilds"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/productunits"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/session"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/storage"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/subcategories"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/warranty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "admin: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = observability.WithLogger(ctx, logger)

	shutdownTracing, err := observability.SetupTracing(ctx, observability.TracingOptions{
		Endpoint:    cfg.Tracing.ExporterEndpoint,
		Insecure:    cfg.Tracing.Insecure,
		ServiceName: cfg.Tracing.ServiceName,
		Environment: cfg.Environment,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	backend, err := storage.OpenBackend(storage.BackendOptions{
		Kind:   cfg.Store.Backend,
		SQLite: storage.SQLiteOptions{Path: cfg.Store.SQLitePath},
		Firestore: storage.FirestoreOptions{
			ProjectID:    cfg.Store.FirestoreProjectID,
			EmulatorHost: cfg.Store.FirestoreEmulatorHost,
		},
		CollectionPrefix: cfg.Store.CollectionPrefix,
		Trace:            cfg.Tracing.ExporterEndpoint != "",
	})
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	services, sweeper, err := buildServices(ctx, backend, cfg.Store.Seed)
	if err != nil {
		return err
	}
	services.CSRFHeader = cfg.CSRF.HeaderName

	scheduler := jobs.NewScheduler(logger, jobs.WithJobTimeout(cfg.Jobs.Timeout))
	if err := scheduler.Add(jobs.WarrantySweepJob, cfg.Jobs.WarrantySweepSchedule, jobs.WarrantySweep(sweeper, time.Now)); err != nil {
		return fmt.Errorf("schedule warranty sweep: %w", err)
	}

	sessions, err := buildSessions(cfg)
	if err != nil {
		return err
	}

	srv, err := httpserver.New(httpserver.Config{
		Address:          cfg.Server.Address,
		BasePath:         cfg.BasePath,
		LoginPath:        cfg.LoginPath,
		Environment:      cfg.Environment,
		Authenticator:    buildAuthenticator(ctx, logger, cfg.Firebase.ProjectID),
		Sessions:         sessions,
		Logger:           logger,
		CSRFCookieName:   cfg.CSRF.CookieName,
		CSRFCookieSecure: cfg.CSRF.Secure,
		CSRFHeaderName:   cfg.CSRF.HeaderName,
		ReadTimeout:      cfg.Server.ReadTimeout,
		WriteTimeout:     cfg.Server.WriteTimeout,
		IdleTimeout:      cfg.Server.IdleTimeout,
		Services:         services,
	})
	if err != nil {
		return err
	}

	scheduler.Start()
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	logger.Info("admin server listening",
		zap.String("addr", cfg.Server.Address),
		zap.String("base_path", cfg.BasePath),
		zap.String("store", backend.Name()),
		zap.String("environment", cfg.Environment),
	)

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := scheduler.Stop(shutdownCtx); err != nil {
		logger.Warn("scheduler stop", zap.Error(err))
	}
	if err := backend.Close(shutdownCtx); err != nil {
		logger.Warn("storage close", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracing shutdown", zap.Error(err))
	}
	if serveErr != nil {
		return fmt.Errorf("http server: %w", serveErr)
	}
	return nil
}

// buildServices opens one repository per collection and wires the domain services. The
// returned sweeper is the warranty service used by the expiry job.
func buildServices(ctx context.Context, backend *storage.Backend, seed bool) (ui.Dependencies, jobs.Sweeper, error) {
	now := time.Now()
	var (
		orderSeed   []orders.Order
		buildSeed   []pcbuilds.Build
		unitSeed    []productunits.Unit
		subcatSeed  []subcategories.Subcategory
		recordsSeed []warranty.Record
	)
	if seed {
		orderSeed = orders.Seed(now)
		buildSeed = pcbuilds.Seed(now)
		unitSeed = productunits.Seed(now)
		subcatSeed = subcategories.Seed(now)
		recordsSeed = warranty.Seed(now)
	}

	orderRepo, err := storage.Open(ctx, backend, "orders", orderSeed...)
	if err != nil {
		return ui.Dependencies{}, nil, fmt.Errorf("open orders: %w", err)
	}
	buildRepo, err := storage.Open(ctx, backend, "pc_builds", buildSeed...)
	if err != nil {
		return ui.Dependencies{}, nil, fmt.Errorf("open pc builds: %w", err)
	}
	unitRepo, err := storage.Open(ctx, backend, "product_units", unitSeed...)
	if err != nil {
		return ui.Dependencies{}, nil, fmt.Errorf("open product units: %w", err)
	}
	subcatRepo, err := storage.Open(ctx, backend, "subcategories", subcatSeed...)
	if err != nil {
		return ui.Dependencies{}, nil, fmt.Errorf("open subcategories: %w", err)
	}
	recordRepo, err := storage.Open(ctx, backend, "warranty_records", recordsSeed...)
	if err != nil {
		return ui.Dependencies{}, nil, fmt.Errorf("open warranty records: %w", err)
	}

	var units *productunits.StoreService
	cats := subcategories.NewService(subcatRepo, subcategories.WithUsageCounter(func(ctx context.Context, id string) (int, error) {
		return units.CountInSubcategory(ctx, id)
	}))
	units = productunits.NewService(unitRepo, productunits.WithSubcategoryLookup(productunits.CatalogLookup(cats)))
	records := warranty.NewService(recordRepo, warranty.WithSerialLookup(serialLookup(units)))
	return ui.Dependencies{
		Orders:        orders.NewService(orderRepo),
		PCBuilds:      pcbuilds.NewService(buildRepo),
		ProductUnits:  units,
		Subcategories: cats,
		Warranty:      records,
	}, records, nil
}

// serialLookup lets warranty registration fill product details from the unit inventory.
func serialLookup(units *productunits.StoreService) warranty.SerialLookup {
	return func(ctx context.Context, serial string) (warranty.Unit, error) {
		unit, err := units.FindBySerial(ctx, serial)
		if err != nil {
			return warranty.Unit{}, err
		}
		return warranty.Unit{
			ProductName: unit.ProductName,
			Months:      unit.WarrantyMonths,
			SoldAt:      unit.SoldAt,
		}, nil
	}
}

func buildSessions(cfg config.Config) (*session.Manager, error) {
	hashKey := []byte(cfg.Session.HashKey)
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(32)
	}
	var blockKey []byte
	if cfg.Session.BlockKey != "" {
		blockKey = []byte(cfg.Session.BlockKey)
	}
	mgr, err := session.NewManager(session.Config{
		CookieName:   cfg.Session.CookieName,
		HashKey:      hashKey,
		BlockKey:     blockKey,
		CookiePath:   "/",
		CookieSecure: cfg.Session.Secure,
		IdleTimeout:  cfg.Session.IdleTimeout,
		Lifetime:     cfg.Session.Lifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("init sessions: %w", err)
	}
	return mgr, nil
}

func buildAuthenticator(ctx context.Context, logger *zap.Logger, projectID string) middleware.Authenticator {
	if projectID == "" {
		logger.Info("firebase project not configured; using passthrough authenticator")
		return nil
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		logger.Error("failed to initialise Firebase app", zap.Error(err))
		return nil
	}

	client, err := app.Auth(ctx)
	if err != nil {
		logger.Error("failed to initialise Firebase auth client", zap.Error(err))
		return nil
	}

	logger.Info("firebase authenticator enabled", zap.String("project", projectID))
	return middleware.NewFirebaseAuthenticator(client)
}
