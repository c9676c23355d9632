package registry

import (
	"context"

	"blue/core"
	"blue/store/db"

	"github.com/holiman/uint256"
	"github.com/jinzhu/gorm"
)

type marketParams struct {
	ID              string `gorm:"primary_key;size:66"`
	LoanToken       string `gorm:"size:42"`
	CollateralToken string `gorm:"size:42"`
	Oracle          string `gorm:"size:42"`
	Irm             string `gorm:"size:42"`
	Lltv            string `gorm:"size:80"`
}

func (marketParams) TableName() string { return "market_params" }

type vaultConfig struct {
	Address        string `gorm:"primary_key;size:42"`
	Asset          string `gorm:"size:42"`
	Symbol         string `gorm:"size:64"`
	Name           string `gorm:"size:255"`
	Decimals       uint8
	DecimalsOffset uint8
}

func (vaultConfig) TableName() string { return "vault_configs" }

type preLiquidationParams struct {
	Lltv    string `gorm:"primary_key;size:80"`
	PreLltv string `gorm:"size:80"`
	PreLCF1 string `gorm:"size:80"`
	PreLCF2 string `gorm:"size:80"`
	PreLIF1 string `gorm:"size:80"`
	PreLIF2 string `gorm:"size:80"`
	Oracle  string `gorm:"size:42"`
}

func (preLiquidationParams) TableName() string { return "pre_liquidation_params" }

func init() {
	db.RegisterMigrate(func(db *gorm.DB) error {
		return db.AutoMigrate(marketParams{}, vaultConfig{}, preLiquidationParams{}).Error
	})
}

type registryStore struct {
	db *gorm.DB
}

// New registry backed by db
func New(db *gorm.DB) core.IRegistry {
	return &registryStore{db: db}
}

func (s *registryStore) MarketParams(ctx context.Context, id core.MarketID) (*core.MarketParams, error) {
	var r marketParams
	if err := s.db.Where("id = ?", id.Hex()).First(&r).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, &core.UnknownMarketParamsError{MarketID: id}
		}

		return nil, err
	}

	params := &core.MarketParams{}
	var err error
	if params.LoanToken, err = core.HexToAddress(r.LoanToken); err != nil {
		return nil, err
	}
	if params.CollateralToken, err = core.HexToAddress(r.CollateralToken); err != nil {
		return nil, err
	}
	if params.Oracle, err = core.HexToAddress(r.Oracle); err != nil {
		return nil, err
	}
	if params.Irm, err = core.HexToAddress(r.Irm); err != nil {
		return nil, err
	}
	if params.Lltv, err = uint256.FromDecimal(r.Lltv); err != nil {
		return nil, err
	}

	return params, nil
}

func (s *registryStore) SaveMarketParams(ctx context.Context, params *core.MarketParams) error {
	return s.db.Save(&marketParams{
		ID:              params.ID().Hex(),
		LoanToken:       params.LoanToken.Hex(),
		CollateralToken: params.CollateralToken.Hex(),
		Oracle:          params.Oracle.Hex(),
		Irm:             params.Irm.Hex(),
		Lltv:            params.Lltv.Dec(),
	}).Error
}

func (s *registryStore) VaultConfig(ctx context.Context, address core.Address) (*core.VaultConfig, error) {
	var r vaultConfig
	if err := s.db.Where("address = ?", address.Hex()).First(&r).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, &core.UnknownVaultConfigError{Vault: address}
		}

		return nil, err
	}

	asset, err := core.HexToAddress(r.Asset)
	if err != nil {
		return nil, err
	}

	return &core.VaultConfig{
		Address:        address,
		Asset:          asset,
		Symbol:         r.Symbol,
		Name:           r.Name,
		Decimals:       r.Decimals,
		DecimalsOffset: r.DecimalsOffset,
	}, nil
}

func (s *registryStore) SaveVaultConfig(ctx context.Context, config *core.VaultConfig) error {
	return s.db.Save(&vaultConfig{
		Address:        config.Address.Hex(),
		Asset:          config.Asset.Hex(),
		Symbol:         config.Symbol,
		Name:           config.Name,
		Decimals:       config.Decimals,
		DecimalsOffset: config.DecimalsOffset,
	}).Error
}

func (s *registryStore) PreLiquidationParams(ctx context.Context, lltv *uint256.Int) (*core.PreLiquidationParams, error) {
	var r preLiquidationParams
	if err := s.db.Where("lltv = ?", lltv.Dec()).First(&r).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, &core.UnsupportedPreLiquidationParamsError{Lltv: lltv}
		}

		return nil, err
	}

	params := &core.PreLiquidationParams{}
	for _, f := range []struct {
		dst **uint256.Int
		src string
	}{
		{&params.PreLltv, r.PreLltv},
		{&params.PreLCF1, r.PreLCF1},
		{&params.PreLCF2, r.PreLCF2},
		{&params.PreLIF1, r.PreLIF1},
		{&params.PreLIF2, r.PreLIF2},
	} {
		v, err := uint256.FromDecimal(f.src)
		if err != nil {
			return nil, err
		}

		*f.dst = v
	}

	oracle, err := core.HexToAddress(r.Oracle)
	if err != nil {
		return nil, err
	}

	params.PreLiquidationOracle = oracle
	return params, nil
}

func (s *registryStore) SavePreLiquidationParams(ctx context.Context, lltv *uint256.Int, params *core.PreLiquidationParams) error {
	return s.db.Save(&preLiquidationParams{
		Lltv:    lltv.Dec(),
		PreLltv: params.PreLltv.Dec(),
		PreLCF1: params.PreLCF1.Dec(),
		PreLCF2: params.PreLCF2.Dec(),
		PreLIF1: params.PreLIF1.Dec(),
		PreLIF2: params.PreLIF2.Dec(),
		Oracle:  params.PreLiquidationOracle.Hex(),
	}).Error
}
