package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/khrees2412/hireboard/internal/analytics"
	"github.com/khrees2412/hireboard/internal/config"
	"github.com/khrees2412/hireboard/internal/database"
	"github.com/khrees2412/hireboard/internal/events"
	"github.com/khrees2412/hireboard/internal/marketplace"
	"github.com/khrees2412/hireboard/internal/metrics"
	"github.com/khrees2412/hireboard/internal/session"
	"github.com/sirupsen/logrus"
)

// App is the dependency container for the CLI application
type App struct {
	DB        *sql.DB
	Store     *database.Store
	Config    *config.Config
	Log       *logrus.Logger
	Events    events.Publisher
	Metrics   *metrics.Metrics
	Market    *marketplace.Service
	Analytics *analytics.Service
	Session   *session.Session
}

// New wires every component from cfg
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := newLogger(cfg.LogLevel)

	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.RedisURL != "" {
		rp, err := events.NewRedisPublisher(ctx, cfg.RedisURL)
		if err != nil {
			// Events are best effort; the marketplace works without them.
			log.WithError(err).Warn("redis unavailable, events disabled")
		} else {
			publisher = rp
		}
	}

	store := database.New(db)
	m := metrics.New()

	return &App{
		DB:        db,
		Store:     store,
		Config:    cfg,
		Log:       log,
		Events:    publisher,
		Metrics:   m,
		Market:    marketplace.New(store, log, marketplace.WithEvents(publisher), marketplace.WithMetrics(m)),
		Analytics: analytics.New(store, nil),
		Session:   session.New(),
	}, nil
}

// Close closes all resources
func (a *App) Close() error {
	if a.Events != nil {
		if err := a.Events.Close(); err != nil {
			a.Log.WithError(err).Warn("failed to close event publisher")
		}
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}
