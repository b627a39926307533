package app

import (
	"os"
	"time"
	_ "time/tzdata"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/prayani09/ShriyashWork/config"
	"github.com/prayani09/ShriyashWork/internal/catalog"
	"github.com/prayani09/ShriyashWork/internal/store"
)

// Application is the composition root. It owns the record store handle and
// the catalog view built on it; both are created at process start, injected
// by reference into whatever needs them, and torn down at process exit.
type Application struct {
	appConfig   *config.AppConfig
	recordStore *store.Store
	catalogView *catalog.View
	sched       *cron.Cron
}

var (
	_ ConfigProvider    = (*Application)(nil)
	_ StoreProvider     = (*Application)(nil)
	_ ViewProvider      = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Store() *store.Store {
	return a.recordStore
}

func (a *Application) CatalogView() *catalog.View {
	return a.catalogView
}

func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

func (a *Application) Init(cfg *config.AppConfig) error {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger(cfg)

	if err := os.MkdirAll(cfg.System.Workdir, 0755); err != nil {
		return errors.Wrap(err, "create workdir")
	}
	if err := os.MkdirAll(cfg.System.Workdir+"/data", 0755); err != nil {
		return errors.Wrap(err, "create data dir")
	}

	a.recordStore, err = store.Open(cfg.StorePath(), cfg.Store.NodeID)
	if err != nil {
		return err
	}
	zap.S().Infof("record store opened at %s", cfg.StorePath())

	a.catalogView, err = catalog.NewView(a.recordStore, store.ProductsPath)
	if err != nil {
		return errors.Wrap(err, "attach catalog view")
	}

	a.sched = cron.New()
	a.sched.Start()
	return nil
}

func (a *Application) initLogger(cfg *config.AppConfig) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

// AddJob schedules a recurring job by cron expression.
func (a *Application) AddJob(spec string, job func()) error {
	_, err := a.sched.AddFunc(spec, job)
	return errors.Wrapf(err, "schedule job %q", spec)
}

// Release tears down application resources in reverse construction order.
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.catalogView != nil {
		a.catalogView.Close()
	}
	if a.recordStore != nil {
		_ = a.recordStore.Close()
	}
	_ = zap.L().Sync()
}
