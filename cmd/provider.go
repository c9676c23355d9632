package cmd

import (
	"fmt"

	"blue/core"
	marketservice "blue/service/market"
	vaultservice "blue/service/vault"
	"blue/store/db"
	"blue/store/registry"
	"blue/store/snapshot"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

func provideConfig() *core.Config {
	return &cfg
}

func provideDatabase() *gorm.DB {
	database := db.MustOpen(cfg.DB)
	if cfg.DB.Dialect == "sqlite3" {
		// local databases are created on first use
		if err := db.Migrate(database); err != nil {
			panic(err)
		}
	}

	return database
}

// ---------------store-----------------------------------------

func provideFetcher(path string) core.IFetcher {
	if path == "" {
		path = cfg.Snapshot
	}

	if path == "" {
		panic(fmt.Errorf("no snapshot file, set snapshot in config or pass --snapshot"))
	}

	fetcher, err := snapshot.Open(path)
	if err != nil {
		panic(err)
	}

	logrus.Debugln("use snapshot", path)
	return fetcher
}

func provideRegistry(database *gorm.DB, fetcher core.IFetcher) core.IRegistry {
	return registry.Cache(registry.New(database), fetcher, cfg.Cache.Size, cfg.Cache.Expiration)
}

// ------------------service------------------------------------

func provideMarketService(r core.IRegistry, fetcher core.IFetcher) core.IMarketService {
	return marketservice.New(r, fetcher)
}

func provideVaultService(r core.IRegistry, fetcher core.IFetcher) core.IVaultService {
	return vaultservice.New(r, fetcher)
}

type stack struct {
	database *gorm.DB
	markets  core.IMarketService
	vaults   core.IVaultService
}

func provideStack(snapshotPath string) *stack {
	database := provideDatabase()
	fetcher := provideFetcher(snapshotPath)
	r := provideRegistry(database, fetcher)

	return &stack{
		database: database,
		markets:  provideMarketService(r, fetcher),
		vaults:   provideVaultService(r, fetcher),
	}
}

func (s *stack) Close() error {
	return s.database.Close()
}
