package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"care-app-go/internal/config"
	"care-app-go/internal/db"
	applicationdomain "care-app-go/internal/domain/application"
	auditdomain "care-app-go/internal/domain/audit"
	catalogdomain "care-app-go/internal/domain/catalog"
	dashboarddomain "care-app-go/internal/domain/dashboard"
	"care-app-go/internal/domain/emitter"
	familydomain "care-app-go/internal/domain/family"
	idempotencydomain "care-app-go/internal/domain/idempotency"
	notificationdomain "care-app-go/internal/domain/notification"
	reservationdomain "care-app-go/internal/domain/reservation"
	userdomain "care-app-go/internal/domain/user"
	"care-app-go/internal/metrics"
	"care-app-go/internal/repository/inmemory"
	applicationrepo "care-app-go/internal/repository/postgres/application"
	auditrepo "care-app-go/internal/repository/postgres/audit"
	catalogrepo "care-app-go/internal/repository/postgres/catalog"
	dashboardrepo "care-app-go/internal/repository/postgres/dashboard"
	familyrepo "care-app-go/internal/repository/postgres/family"
	idempotencyrepo "care-app-go/internal/repository/postgres/idempotency"
	notificationrepo "care-app-go/internal/repository/postgres/notification"
	reservationrepo "care-app-go/internal/repository/postgres/reservation"
	userrepo "care-app-go/internal/repository/postgres/user"
	"care-app-go/internal/transport/httpserver"
	"care-app-go/internal/transport/httpserver/handler"
	adminhandler "care-app-go/internal/transport/httpserver/handler/admin"
	applicationshandler "care-app-go/internal/transport/httpserver/handler/applications"
	commonhandler "care-app-go/internal/transport/httpserver/handler/common"
	familieshandler "care-app-go/internal/transport/httpserver/handler/families"
	notificationshandler "care-app-go/internal/transport/httpserver/handler/notifications"
	reservationshandler "care-app-go/internal/transport/httpserver/handler/reservations"
	"care-app-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		applied, err := db.Migrate(dbConn, log)
		if err != nil {
			closeDB(dbConn)
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info("app: migrations applied", "count", applied)
	}

	var appMetrics *metrics.Metrics
	if cfg.MetricsEnabled {
		appMetrics = metrics.New()
	}

	log.Info("app: initializing router")
	router, err := NewHandler(cfg, dbConn, appMetrics, log)
	if err != nil {
		closeDB(dbConn)
		return nil, err
	}

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

// NewHandler builds the services over gormDB and returns the routed API.
func NewHandler(cfg config.Config, gormDB *gorm.DB, appMetrics *metrics.Metrics, log logger.Logger) (http.Handler, error) {
	location, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("APP_TIMEZONE: %w", err)
	}

	var activityCounter auditdomain.Counter
	if appMetrics != nil {
		activityCounter = appMetrics
	}

	users := userdomain.NewService(userrepo.NewPostgres(gormDB))
	audit := auditdomain.NewService(auditrepo.NewPostgres(gormDB), activityCounter)
	notifications := notificationdomain.NewService(notificationrepo.NewPostgres(gormDB))
	events := emitter.New(audit, notifications, log)

	var catalogCache catalogdomain.Cache
	if cfg.CatalogCacheTTL > 0 {
		catalogCache = inmemory.NewCatalogCache()
	}
	catalog := catalogdomain.NewService(catalogrepo.NewPostgres(gormDB), catalogCache, cfg.CatalogCacheTTL)

	familyRepo := familyrepo.NewPostgres(gormDB)
	families := familydomain.NewService(familyRepo, events)

	applicationRepo := applicationrepo.NewPostgres(gormDB)
	applications := applicationdomain.NewService(applicationRepo, catalog, familyRepo, events)

	idempotency := idempotencydomain.NewService(idempotencyrepo.NewPostgres(gormDB))
	reservations := reservationdomain.NewService(reservationrepo.NewPostgres(gormDB), applicationRepo, idempotency, events, location, log)

	dashboard := dashboarddomain.NewService(dashboardrepo.NewPostgres(gormDB))

	handlers := handler.New(
		commonhandler.New(catalog, log),
		familieshandler.New(families, log),
		applicationshandler.New(applications, log),
		reservationshandler.New(reservations, log),
		notificationshandler.New(notifications, log),
		adminhandler.New(dashboard, audit, log),
	)

	return httpserver.NewRouter(cfg, handlers, users, appMetrics, log), nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeDB(gormDB *gorm.DB) {
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

const shutdownTimeout = 10 * time.Second

// Run serves HTTP until ctx is cancelled or the listener fails, then drains
// in-flight requests.
func (a *App) Run(ctx context.Context, log logger.Logger) error {
	serverErrCh := make(chan error, 1)
	go func() {
		log.Info("http: listening", "addr", a.httpServer.Addr, "env", a.cfg.Env)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("app: shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			runErr = fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(runErr, fmt.Errorf("graceful shutdown: %w", err))
	}
	return runErr
}
