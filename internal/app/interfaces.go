package app

import (
	"github.com/robfig/cron/v3"

	"github.com/prayani09/ShriyashWork/config"
	"github.com/prayani09/ShriyashWork/internal/catalog"
	"github.com/prayani09/ShriyashWork/internal/store"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// StoreProvider provides the record store handle
type StoreProvider interface {
	Store() *store.Store
}

// ViewProvider provides the live catalog view
type ViewProvider interface {
	CatalogView() *catalog.View
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}
