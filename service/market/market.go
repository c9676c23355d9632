package market

import (
	"context"
	"runtime"

	"blue/core"
	"blue/pkg/blue"
	"blue/pkg/logger"
	"blue/pkg/mathlib"

	"github.com/yiplee/structs"
	"golang.org/x/sync/errgroup"
)

type service struct {
	registry core.IRegistry
	fetcher  core.IFetcher
}

// New new market service
func New(registry core.IRegistry, fetcher core.IFetcher) core.IMarketService {
	return &service{
		registry: registry,
		fetcher:  fetcher,
	}
}

type query struct {
	Market    string `json:"market"`
	User      string `json:"user,omitempty"`
	Timestamp uint64 `json:"timestamp"`
}

func (s *service) market(ctx context.Context, id core.MarketID, timestamp uint64) (*blue.Market, error) {
	log := logger.FromContext(ctx)

	params, err := s.registry.MarketParams(ctx, id)
	if err != nil {
		log.WithError(err).Debugln("registry.MarketParams")
		return nil, err
	}

	state, err := s.fetcher.FetchMarket(ctx, id)
	if err != nil {
		log.WithError(err).Errorln("fetcher.FetchMarket")
		return nil, err
	}

	return blue.NewMarket(params, state).AccrueInterest(timestamp)
}

func (s *service) Market(ctx context.Context, id core.MarketID, timestamp uint64) (*core.MarketView, error) {
	log := logger.FromContext(ctx).WithFields(structs.Map(query{Market: id.Hex(), Timestamp: timestamp}))
	ctx = logger.WithContext(ctx, log)

	m, err := s.market(ctx, id, timestamp)
	if err != nil {
		return nil, err
	}

	var view *core.MarketView
	if err := mathlib.Try(func() { view = MarketView(m, timestamp) }); err != nil {
		log.WithError(err).Errorln("MarketView")
		return nil, err
	}

	return view, nil
}

func (s *service) Position(ctx context.Context, user core.Address, id core.MarketID, timestamp uint64) (*core.PositionView, error) {
	log := logger.FromContext(ctx).WithFields(structs.Map(query{Market: id.Hex(), User: user.Hex(), Timestamp: timestamp}))
	ctx = logger.WithContext(ctx, log)

	m, err := s.market(ctx, id, timestamp)
	if err != nil {
		return nil, err
	}

	p, err := s.fetcher.FetchPosition(ctx, user, id)
	if err != nil {
		log.WithError(err).Debugln("fetcher.FetchPosition")
		return nil, err
	}

	var view *core.PositionView
	if err := mathlib.Try(func() { view = PositionView(blue.NewAccrualPosition(p, m), timestamp) }); err != nil {
		log.WithError(err).Errorln("PositionView")
		return nil, err
	}

	return view, nil
}

// Positions views of every position of market id, evaluated concurrently
func (s *service) Positions(ctx context.Context, id core.MarketID, timestamp uint64) ([]*core.PositionView, error) {
	log := logger.FromContext(ctx).WithFields(structs.Map(query{Market: id.Hex(), Timestamp: timestamp}))
	ctx = logger.WithContext(ctx, log)

	m, err := s.market(ctx, id, timestamp)
	if err != nil {
		return nil, err
	}

	positions, err := s.fetcher.FetchPositions(ctx, id)
	if err != nil {
		log.WithError(err).Errorln("fetcher.FetchPositions")
		return nil, err
	}

	views := make([]*core.PositionView, len(positions))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, p := range positions {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			return mathlib.Try(func() { views[i] = PositionView(blue.NewAccrualPosition(p, m), timestamp) })
		})
	}

	if err := g.Wait(); err != nil {
		log.WithError(err).Errorln("PositionView")
		return nil, err
	}

	log.Debugf("%d positions", len(views))
	return views, nil
}

// PreLiquidation the user's pre-liquidation contract params, or the
// registry defaults of the market lltv when none is deployed
func (s *service) PreLiquidation(ctx context.Context, user core.Address, id core.MarketID, timestamp uint64) (*core.PreLiquidationView, error) {
	log := logger.FromContext(ctx).WithFields(structs.Map(query{Market: id.Hex(), User: user.Hex(), Timestamp: timestamp}))
	ctx = logger.WithContext(ctx, log)

	m, err := s.market(ctx, id, timestamp)
	if err != nil {
		return nil, err
	}

	p, err := s.fetcher.FetchPosition(ctx, user, id)
	if err != nil {
		log.WithError(err).Debugln("fetcher.FetchPosition")
		return nil, err
	}

	params, price, err := s.fetcher.FetchPreLiquidation(ctx, user, id)
	if err != nil {
		log.WithError(err).Errorln("fetcher.FetchPreLiquidation")
		return nil, err
	}

	if params == nil {
		if params, err = s.registry.PreLiquidationParams(ctx, m.Params.Lltv); err != nil {
			log.WithError(err).Debugln("registry.PreLiquidationParams")
			return nil, err
		}
	}

	position, err := blue.NewPreLiquidationPosition(blue.NewAccrualPosition(p, m), params, price)
	if err != nil {
		return nil, err
	}

	var view *core.PreLiquidationView
	if err := mathlib.Try(func() { view = PreLiquidationView(position, timestamp) }); err != nil {
		log.WithError(err).Errorln("PreLiquidationView")
		return nil, err
	}

	return view, nil
}
