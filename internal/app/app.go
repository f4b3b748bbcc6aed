// Package app assembles the exchange from configuration: storage, consistency
// tier, event publishers, engines and the HTTP router.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	auction "diamond-exchange/internal/auctionService"
	bidding "diamond-exchange/internal/biddingService"
	"diamond-exchange/internal/config"
	deal "diamond-exchange/internal/dealService"
	"diamond-exchange/internal/document"
	"diamond-exchange/internal/events"
	inventory "diamond-exchange/internal/inventoryService"
	"diamond-exchange/internal/metrics"
	"diamond-exchange/internal/repository"
	requirement "diamond-exchange/internal/requirementService"
	"diamond-exchange/internal/server"
	"diamond-exchange/internal/sqlstore"
	"diamond-exchange/utils"

	"github.com/gin-gonic/gin"
)

const devKey = "diamond-exchange-dev-key"

// App is a fully wired exchange
type App struct {
	Config         config.Config
	Router         *gin.Engine
	Tokens         *server.TokenService
	Metrics        *metrics.Metrics
	Reconciliation *repository.ReconciliationLog
	UnitOfWork     repository.UnitOfWork

	Ledger       *inventory.Ledger
	Requirements *requirement.Registry
	Auctions     *auction.Engine
	Bids         *bidding.Engine
	Deals        *deal.Engine

	dispatcher *events.Dispatcher
	db         *sqlstore.DB
}

// New wires every component described by cfg. The caller owns the returned
// App and must Close it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := utils.SetLevel(cfg.LogLevel); err != nil {
		utils.Warn("unknown log level, keeping default", map[string]any{"level": cfg.LogLevel})
	}

	a := &App{
		Config:         cfg,
		Metrics:        metrics.New(),
		Reconciliation: repository.NewReconciliationLog(),
	}
	a.Reconciliation.OnRecord(func(repository.ReconciliationTask) {
		a.Metrics.ReconciliationRecorded()
	})

	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	a.UnitOfWork = a.unitOfWork(store)

	a.dispatcher, err = newDispatcher(cfg.Events)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.dispatcher.OnFailure(func(publisher string, _ events.Event, _ error) {
		a.Metrics.DeliveryFailed(publisher)
	})

	policy, err := requirement.ParsePolicy(cfg.RequirementPolicy)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Ledger = inventory.NewLedger(a.UnitOfWork, a.dispatcher, a.Metrics)
	a.Requirements = requirement.NewRegistry(a.UnitOfWork, policy, a.dispatcher, a.Metrics)
	a.Auctions = auction.NewEngine(a.UnitOfWork, a.Ledger, a.dispatcher, a.Metrics)
	a.Bids = bidding.NewEngine(a.UnitOfWork, a.Ledger, a.Requirements, a.dispatcher, a.Metrics)
	a.Deals = deal.NewEngine(a.UnitOfWork, a.Ledger, a.dispatcher, a.Metrics).
		WithDocuments(renderer(cfg.Documents), document.NewLocalStorage(cfg.Documents.StorageDir, cfg.Documents.StorageBaseURL))

	key := cfg.JWTSigningKey
	if key == "" {
		utils.Warn("no jwt signing key configured, using the development key", map[string]any{"profile": cfg.Profile})
		key = devKey
	}
	a.Tokens = server.NewTokenService(key, server.Issuer)

	a.Router = server.SetupRouter(server.Services{
		Inventory:    a.Ledger,
		Requirements: a.Requirements,
		Auctions:     a.Auctions,
		Bids:         a.Bids,
		Deals:        a.Deals,
	}, a.Tokens, a.Metrics)
	if cfg.Documents.StorageBaseURL == "" {
		a.Router.Static("/"+document.InvoiceFolder, filepath.Join(cfg.Documents.StorageDir, document.InvoiceFolder))
	}

	utils.Info("exchange assembled", map[string]any{
		"profile":     cfg.Profile,
		"store":       cfg.Store.Driver,
		"consistency": string(a.UnitOfWork.Tier()),
		"policy":      string(policy),
	})
	return a, nil
}

func (a *App) openStore(ctx context.Context) (repository.Store, error) {
	switch a.Config.Store.Driver {
	case config.DriverSQLite, config.DriverPostgres:
		dialect := sqlstore.SQLite
		if a.Config.Store.Driver == config.DriverPostgres {
			dialect = sqlstore.Postgres
		}
		db, err := sqlstore.Open(ctx, dialect, a.Config.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		a.db = db
		return db.Store(), nil
	default:
		return repository.NewMemoryRepo(), nil
	}
}

// unitOfWork picks the transaction discipline. The engines never see which.
func (a *App) unitOfWork(store repository.Store) repository.UnitOfWork {
	if a.Config.Tier() == repository.TierBestEffort {
		return repository.NewCompensating(store, a.Reconciliation)
	}
	if a.db != nil {
		return a.db.UnitOfWork()
	}
	return repository.NewMemoryUnitOfWork(store.(*repository.MemoryRepo))
}

func newDispatcher(cfg config.EventsConfig) (*events.Dispatcher, error) {
	publishers := []events.Publisher{events.LogPublisher{}}
	closeAll := func() {
		for _, p := range publishers {
			_ = p.Close()
		}
	}

	if cfg.NATSURL != "" {
		p, err := events.NewNATSPublisher(cfg.NATSURL, cfg.NATSPrefix)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("events: %w", err)
		}
		publishers = append(publishers, p)
	}
	if cfg.RedisURL != "" {
		p, err := events.NewRedisPublisher(cfg.RedisURL, cfg.RedisChannel)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("events: %w", err)
		}
		publishers = append(publishers, p)
	}
	if len(cfg.KafkaBrokers) > 0 {
		p, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("events: %w", err)
		}
		publishers = append(publishers, p)
	}
	return events.NewDispatcher(cfg.PublishTimeout, publishers...), nil
}

func renderer(cfg config.DocumentsConfig) document.Renderer {
	if cfg.RendererURL == "" {
		return document.HTMLRenderer{}
	}
	return document.NewHTTPRenderer(cfg.RendererURL, cfg.RenderTimeout)
}

// Close drains event delivery and releases connections
func (a *App) Close() error {
	var errs []error
	if a.dispatcher != nil {
		errs = append(errs, a.dispatcher.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
