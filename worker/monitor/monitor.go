package monitor

import (
	"context"
	"sort"
	"sync"
	"time"

	"blue/core"
	"blue/pkg/logger"
	"blue/worker"

	"github.com/holiman/uint256"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// Kind of an alert
type Kind string

const (
	// Liquidatable position past its market lltv
	Liquidatable Kind = "liquidatable"
	// PreLiquidatable position between preLltv and lltv
	PreLiquidatable Kind = "pre_liquidatable"
)

// Alert a position open to liquidation
type Alert struct {
	Kind         Kind          `json:"kind"`
	MarketID     core.MarketID `json:"market_id"`
	User         core.Address  `json:"user"`
	HealthFactor *uint256.Int  `json:"health_factor"`
}

// Worker monitor worker
type Worker struct {
	worker.BaseJob
	Markets       []core.MarketID
	MarketService core.IMarketService

	mux    sync.Mutex
	alerts []*Alert
}

// New new monitor worker scanning markets on schedule
func New(schedule string, markets []core.MarketID, marketService core.IMarketService) (*Worker, error) {
	job := Worker{
		Markets:       markets,
		MarketService: marketService,
	}

	job.Cron = cron.New()
	if _, err := job.Cron.AddFunc(schedule, job.Run); err != nil {
		return nil, err
	}

	job.OnWork = func() error {
		_, err := job.Scan(context.Background(), uint64(time.Now().Unix()))
		return err
	}

	return &job, nil
}

// Alerts alerts of the last scan
func (w *Worker) Alerts() []*Alert {
	w.mux.Lock()
	defer w.mux.Unlock()

	return w.alerts
}

// Scan checks every position of Markets at timestamp
func (w *Worker) Scan(ctx context.Context, timestamp uint64) ([]*Alert, error) {
	log := logger.FromContext(ctx).WithField("worker", "monitor")
	ctx = logger.WithContext(ctx, log)

	var (
		mux    sync.Mutex
		alerts []*Alert
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, id := range w.Markets {
		id := id
		g.Go(func() error {
			found, err := w.scanMarket(ctx, id, timestamp)
			if err != nil {
				return err
			}

			mux.Lock()
			alerts = append(alerts, found...)
			mux.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.WithError(err).Errorln("monitor.Scan")
		return nil, err
	}

	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].MarketID != alerts[j].MarketID {
			return alerts[i].MarketID.Hex() < alerts[j].MarketID.Hex()
		}

		return alerts[i].User.Hex() < alerts[j].User.Hex()
	})

	for _, a := range alerts {
		log.WithField("market", a.MarketID.Hex()).
			WithField("user", a.User.Hex()).
			WithField("health_factor", a.HealthFactor.Dec()).
			Warnln(a.Kind)
	}

	w.mux.Lock()
	w.alerts = alerts
	w.mux.Unlock()

	return alerts, nil
}

func (w *Worker) scanMarket(ctx context.Context, id core.MarketID, timestamp uint64) ([]*Alert, error) {
	log := logger.FromContext(ctx).WithField("market", id.Hex())

	positions, err := w.MarketService.Positions(ctx, id, timestamp)
	if err != nil {
		log.WithError(err).Errorln("MarketService.Positions")
		return nil, err
	}

	var alerts []*Alert
	for _, p := range positions {
		if p.BorrowAssets == nil || p.BorrowAssets.IsZero() || p.IsHealthy == nil {
			continue
		}

		if !*p.IsHealthy {
			alerts = append(alerts, &Alert{
				Kind:         Liquidatable,
				MarketID:     id,
				User:         p.Position.User,
				HealthFactor: p.HealthFactor,
			})
			continue
		}

		view, err := w.MarketService.PreLiquidation(ctx, p.Position.User, id, timestamp)
		if err != nil {
			if isSkippable(err) {
				continue
			}

			log.WithError(err).Errorln("MarketService.PreLiquidation")
			return nil, err
		}

		if view.IsPreLiquidatable {
			alerts = append(alerts, &Alert{
				Kind:         PreLiquidatable,
				MarketID:     id,
				User:         p.Position.User,
				HealthFactor: view.PreHealthFactor,
			})
		}
	}

	return alerts, nil
}

// markets without pre-liquidation support or price
func isSkippable(err error) bool {
	switch core.CodeOf(err) {
	case core.ErrPreLiquidationParamsNotFound, core.ErrUnknownOraclePrice, core.ErrInvalidInput:
		return true
	default:
		return false
	}
}
