package core

import (
	"time"

	"blue/store/db"

	"github.com/holiman/uint256"
)

// Config blue config
type Config struct {
	Port     int       `json:"port" yaml:"port" valid:"range(1|65535)"`
	DB       db.Config `json:"db" yaml:"db"`
	Snapshot string    `json:"snapshot" yaml:"snapshot"`
	Cache    Cache     `json:"cache" yaml:"cache"`
	Registry Registry  `json:"registry" yaml:"registry"`
	Monitor  Monitor   `json:"monitor" yaml:"monitor"`
}

// Monitor liquidation monitor worker
type Monitor struct {
	// Schedule cron expression, "@every 1m"
	Schedule string `json:"schedule" yaml:"schedule" valid:"required"`
	// Markets scanned besides the registry markets
	Markets []MarketID `json:"markets" yaml:"markets"`
}

// Cache registry cache
type Cache struct {
	Size       int           `json:"size" yaml:"size" valid:"range(1|1000000)"`
	Expiration time.Duration `json:"expiration" yaml:"expiration"`
}

// Registry entries seeded into the registry store by the migrate command
type Registry struct {
	Markets         []*MarketParams           `json:"markets" yaml:"markets"`
	Vaults          []*VaultConfig            `json:"vaults" yaml:"vaults"`
	PreLiquidations []*PreLiquidationDefaults `json:"pre_liquidations" yaml:"pre_liquidations"`
}

// PreLiquidationDefaults pre-liquidation params applied to markets of Lltv
type PreLiquidationDefaults struct {
	Lltv   *uint256.Int          `json:"lltv" yaml:"lltv"`
	Params *PreLiquidationParams `json:"params" yaml:"params"`
}
