package snapshot

import (
	"context"
	"fmt"
	"os"
	"strings"

	"blue/core"
	"blue/pkg/resthttp"

	"github.com/holiman/uint256"
	"gopkg.in/yaml.v3"
)

// PreLiquidation pre-liquidation contract deployed for a user
type PreLiquidation struct {
	User   core.Address               `yaml:"user"`
	Params *core.PreLiquidationParams `yaml:"params"`
	// Price pre-liquidation oracle price, empty falls back to the market price
	Price *uint256.Int `yaml:"price,omitempty"`
}

// Market market snapshot with its positions
type Market struct {
	Params          *core.MarketParams `yaml:"params"`
	State           *core.MarketState  `yaml:"state"`
	Positions       []*core.Position   `yaml:"positions"`
	PreLiquidations []*PreLiquidation  `yaml:"pre_liquidations"`
}

// Vault queue vault snapshot with its market configs
type Vault struct {
	Config  *core.VaultConfig         `yaml:"config"`
	State   *core.VaultState          `yaml:"state"`
	Markets []*core.VaultMarketConfig `yaml:"markets"`
}

// VaultV2 adapter vault snapshot with its adapters
type VaultV2 struct {
	State    *core.VaultV2State          `yaml:"state"`
	Adapters []*core.VaultV2AdapterState `yaml:"adapters"`
}

// Document on-disk snapshot of markets and vaults at one block
type Document struct {
	Timestamp uint64     `yaml:"timestamp"`
	Markets   []*Market  `yaml:"markets"`
	Vaults    []*Vault   `yaml:"vaults"`
	VaultsV2  []*VaultV2 `yaml:"vaults_v2"`
}

// Load reads a snapshot document from a file path or an http(s) url
func Load(path string) (*Document, error) {
	return LoadContext(context.Background(), path)
}

// LoadContext Load bound to ctx
func LoadContext(ctx context.Context, path string) (*Document, error) {
	var (
		data []byte
		err  error
	)

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		data, err = resthttp.Get(ctx, path)
	} else {
		data, err = os.ReadFile(path)
	}

	if err != nil {
		return nil, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}

	return &doc, nil
}

// Save writes doc to path
func Save(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		f.Close()
		return err
	}

	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

type positionKey struct {
	user core.Address
	id   core.MarketID
}

type snapshotFetcher struct {
	markets         map[core.MarketID]*Market
	positions       map[positionKey]*core.Position
	preLiquidations map[positionKey]*PreLiquidation
	vaults          map[core.Address]*Vault
	vaultMarkets    map[positionKey]*core.VaultMarketConfig
	vaultsV2        map[core.Address]*core.VaultV2State
	adapters        map[core.Address]*core.VaultV2AdapterState
}

// New fetcher serving the snapshots of doc
func New(doc *Document) (core.IFetcher, error) {
	s := &snapshotFetcher{
		markets:         map[core.MarketID]*Market{},
		positions:       map[positionKey]*core.Position{},
		preLiquidations: map[positionKey]*PreLiquidation{},
		vaults:          map[core.Address]*Vault{},
		vaultMarkets:    map[positionKey]*core.VaultMarketConfig{},
		vaultsV2:        map[core.Address]*core.VaultV2State{},
		adapters:        map[core.Address]*core.VaultV2AdapterState{},
	}

	for _, m := range doc.Markets {
		if m.Params == nil || m.State == nil {
			return nil, fmt.Errorf("market without params or state: %w", core.ErrInvalidInput)
		}

		id := m.Params.ID()
		s.markets[id] = m
		for _, p := range m.Positions {
			p.MarketID = id
			s.positions[positionKey{user: p.User, id: id}] = p
		}

		for _, p := range m.PreLiquidations {
			s.preLiquidations[positionKey{user: p.User, id: id}] = p
		}
	}

	for _, v := range doc.Vaults {
		if v.Config == nil || v.State == nil {
			return nil, fmt.Errorf("vault without config or state: %w", core.ErrInvalidInput)
		}

		s.vaults[v.Config.Address] = v
		for _, c := range v.Markets {
			c.Vault = v.Config.Address
			s.vaultMarkets[positionKey{user: c.Vault, id: c.MarketID}] = c
		}
	}

	for _, v := range doc.VaultsV2 {
		if v.State == nil {
			return nil, fmt.Errorf("vault v2 without state: %w", core.ErrInvalidInput)
		}

		s.vaultsV2[v.State.Address] = v.State
		for _, a := range v.Adapters {
			a.ParentVault = v.State.Address
			s.adapters[a.Address] = a
		}
	}

	return s, nil
}

// Open loads path into a fetcher
func Open(path string) (core.IFetcher, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}

	return New(doc)
}

func (s *snapshotFetcher) market(id core.MarketID) (*Market, error) {
	m, ok := s.markets[id]
	if !ok {
		return nil, &core.UnknownMarketParamsError{MarketID: id}
	}

	return m, nil
}

func (s *snapshotFetcher) FetchMarketParams(ctx context.Context, id core.MarketID) (*core.MarketParams, error) {
	m, err := s.market(id)
	if err != nil {
		return nil, err
	}

	return m.Params.Clone(), nil
}

func (s *snapshotFetcher) FetchMarket(ctx context.Context, id core.MarketID) (*core.MarketState, error) {
	m, err := s.market(id)
	if err != nil {
		return nil, err
	}

	return m.State.Clone(), nil
}

func (s *snapshotFetcher) FetchPosition(ctx context.Context, user core.Address, id core.MarketID) (*core.Position, error) {
	if _, err := s.market(id); err != nil {
		return nil, err
	}

	p, ok := s.positions[positionKey{user: user, id: id}]
	if !ok {
		return nil, &core.UnknownPositionError{User: user, MarketID: id}
	}

	return p.Clone(), nil
}

func (s *snapshotFetcher) FetchPositions(ctx context.Context, id core.MarketID) ([]*core.Position, error) {
	m, err := s.market(id)
	if err != nil {
		return nil, err
	}

	positions := make([]*core.Position, len(m.Positions))
	for i, p := range m.Positions {
		positions[i] = p.Clone()
	}

	return positions, nil
}

// FetchPreLiquidation nil params when the user has no pre-liquidation contract
func (s *snapshotFetcher) FetchPreLiquidation(ctx context.Context, user core.Address, id core.MarketID) (*core.PreLiquidationParams, *uint256.Int, error) {
	if _, err := s.market(id); err != nil {
		return nil, nil, err
	}

	p, ok := s.preLiquidations[positionKey{user: user, id: id}]
	if !ok || p.Params == nil {
		return nil, nil, nil
	}

	var price *uint256.Int
	if p.Price != nil {
		price = p.Price.Clone()
	}

	return p.Params.Clone(), price, nil
}

func (s *snapshotFetcher) vault(address core.Address) (*Vault, error) {
	v, ok := s.vaults[address]
	if !ok {
		return nil, &core.UnknownVaultConfigError{Vault: address}
	}

	return v, nil
}

func (s *snapshotFetcher) FetchVaultConfig(ctx context.Context, address core.Address) (*core.VaultConfig, error) {
	v, err := s.vault(address)
	if err != nil {
		return nil, err
	}

	c := *v.Config
	return &c, nil
}

func (s *snapshotFetcher) FetchVault(ctx context.Context, address core.Address) (*core.VaultState, error) {
	v, err := s.vault(address)
	if err != nil {
		return nil, err
	}

	return v.State.Clone(), nil
}

func (s *snapshotFetcher) FetchVaultMarketConfig(ctx context.Context, vault core.Address, id core.MarketID) (*core.VaultMarketConfig, error) {
	if _, err := s.vault(vault); err != nil {
		return nil, err
	}

	c, ok := s.vaultMarkets[positionKey{user: vault, id: id}]
	if !ok {
		return nil, &core.UnknownMarketParamsError{MarketID: id}
	}

	return c.Clone(), nil
}

func (s *snapshotFetcher) FetchVaultV2(ctx context.Context, address core.Address) (*core.VaultV2State, error) {
	v, ok := s.vaultsV2[address]
	if !ok {
		return nil, &core.UnknownVaultConfigError{Vault: address}
	}

	return v.Clone(), nil
}

func (s *snapshotFetcher) FetchVaultV2Adapter(ctx context.Context, address core.Address) (*core.VaultV2AdapterState, error) {
	a, ok := s.adapters[address]
	if !ok {
		return nil, fmt.Errorf("adapter %s: %w", address, core.ErrInvalidAllocation)
	}

	c := *a
	c.MarketIDs = append([]core.MarketID(nil), a.MarketIDs...)
	if a.Shares != nil {
		c.Shares = a.Shares.Clone()
	}

	return &c, nil
}
