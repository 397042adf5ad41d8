package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rankeditor/backend/internal/application/history"
	"github.com/rankeditor/backend/internal/application/rankedit"
	"github.com/rankeditor/backend/internal/domain/roster"
	"github.com/rankeditor/backend/internal/domain/shared"
	"github.com/rankeditor/backend/internal/infrastructure/config"
	"github.com/rankeditor/backend/internal/infrastructure/event"
	"github.com/rankeditor/backend/internal/infrastructure/logger"
	"github.com/rankeditor/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

type appOptions struct {
	configFile string
	logLevel   string
	journal    string
	noRenumber bool
}

// app holds the wired editing session
type app struct {
	ctx     context.Context
	cfg     *config.Config
	logger  *zap.Logger
	bus     *event.InMemoryEventBus
	meters  *telemetry.MeterProvider
	tracer  *telemetry.TracerProvider
	journal *os.File
	service *rankedit.Service
}

func newApp(ctx context.Context, opts appOptions) (*app, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		Rotation: logger.Rotation{
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			Compress:   cfg.Log.Compress,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return wire(ctx, cfg, log, opts)
}

// wire builds the session from an already loaded config and logger
func wire(ctx context.Context, cfg *config.Config, log *zap.Logger, opts appOptions) (*app, error) {
	bus := event.NewInMemoryEventBus(log.Named("events"))

	notifier, err := rankedit.NewEventNotifier(ctx, bus, log)
	if err != nil {
		return nil, err
	}
	sessionID := notifier.SessionID().String()
	ctx, log = logger.WithSessionID(ctx, log, sessionID)

	a := &app{ctx: ctx, cfg: cfg, logger: log, bus: bus}

	a.meters, err = telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.ExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	a.tracer, err = telemetry.NewTracerProvider(ctx, telemetry.TracingConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	historyMetrics, err := telemetry.NewHistoryMetrics(a.meters.Meter("rankedit"), sessionID, log)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("failed to create history metrics: %w", err)
	}

	if !opts.noRenumber {
		bus.Subscribe(newPayBandRenumberer(log))
	}
	if opts.journal != "" {
		a.journal, err = os.OpenFile(opts.journal, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("failed to open journal %s: %w", opts.journal, err)
		}
		bus.Subscribe(event.NewJournal(a.journal, newEventSerializer()))
	}

	manager := history.NewManager(
		history.WithCapacity(cfg.History.MaxUndo),
		history.WithLogger(log.Named("history")),
		history.WithPublisher(bus),
		history.WithObserver(historyMetrics),
	)
	a.service = rankedit.NewService(roster.NewRoster(), manager, notifier)

	return a, nil
}

// newEventSerializer knows every event the editing session publishes
func newEventSerializer() *event.EventSerializer {
	s := event.NewEventSerializer()
	s.Register(rankedit.EventTypeRosterRefreshRequested, func() shared.DomainEvent {
		return &rankedit.RosterRefreshRequestedEvent{}
	})
	s.Register(rankedit.EventTypeRosterChanged, func() shared.DomainEvent {
		return &rankedit.RosterChangedEvent{}
	})
	s.Register(rankedit.EventTypePayBandsRenumberRequested, func() shared.DomainEvent {
		return &rankedit.PayBandsRenumberRequestedEvent{}
	})
	s.Register(history.EventTypeStacksChanged, func() shared.DomainEvent {
		return &history.StacksChangedEvent{}
	})
	return s
}

// Close releases the session's resources. It is safe to call more than once.
func (a *app) Close(ctx context.Context) {
	a.bus.Close()
	if a.meters != nil {
		if err := a.meters.Shutdown(ctx); err != nil {
			a.logger.Warn("metrics shutdown failed", zap.Error(err))
		}
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			a.logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			a.logger.Warn("failed to close journal", zap.Error(err))
		}
		a.journal = nil
	}
	_ = a.logger.Sync()
}
