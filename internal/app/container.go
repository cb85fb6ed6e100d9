package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"

	appconfig "github.com/doeshing/easy-proton/internal/application/config"
	"github.com/doeshing/easy-proton/internal/application/doctor"
	"github.com/doeshing/easy-proton/internal/application/history"
	"github.com/doeshing/easy-proton/internal/application/launch"
	"github.com/doeshing/easy-proton/internal/application/sessionlog"
	"github.com/doeshing/easy-proton/internal/domain"
	"github.com/doeshing/easy-proton/internal/infrastructure/config"
	"github.com/doeshing/easy-proton/internal/infrastructure/proton"
	"github.com/doeshing/easy-proton/internal/infrastructure/store"
	"github.com/doeshing/easy-proton/internal/pkg/logger"
	"github.com/doeshing/easy-proton/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Settings       domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	LaunchStore    *config.LaunchStore
	HistoryStore   ports.KeyValueStore
	HistoryPath    string
	RegistryPath   string
	Session        *launch.Session
	Log            *sessionlog.Log
	DoctorService  *doctor.Service
	Prompter       ports.ConfirmationPrompter
	Logger         ports.Logger

	registryStore ports.KeyValueStore
}

// BuildContainer constructs the dependency graph and loads the session.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	log := logger.NewStd(verbose)

	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if err := appconfig.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", cfgLoader.Path(), err)
	}

	historyStore, historyPath, err := store.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	log.Debug("history store opened", map[string]interface{}{"backend": cfg.Storage.Backend, "path": historyPath})

	registryStore := store.NewJSONStore(proton.DefaultRegistryPath())
	launcher := proton.NewLauncher(cfg.Launch, proton.NewRegistry(registryStore), log)
	launchStore := config.NewLaunchStore("")

	clock := clockwork.NewRealClock()
	sessionLog := sessionlog.New(clock)
	historyService := history.NewService(historyStore, log)
	historyService.Clock = clock

	session := &launch.Session{
		Invoker: &launch.Invoker{Launcher: launcher, Logger: log},
		History: historyService,
		Configs: launchStore,
		Log:     sessionLog,
		Logger:  log,
	}
	session.Init(ctx)

	return &Container{
		Settings:       cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		LaunchStore:    launchStore,
		HistoryStore:   historyStore,
		HistoryPath:    historyPath,
		RegistryPath:   proton.DefaultRegistryPath(),
		Session:        session,
		Log:            sessionLog,
		DoctorService: &doctor.Service{
			ConfigProvider: cfgLoader,
			Configs:        launchStore,
			Store:          historyStore,
		},
		Logger:        log,
		registryStore: registryStore,
	}, nil
}

// Close releases the stores.
func (c *Container) Close() error {
	var errs []error
	if c.HistoryStore != nil {
		errs = append(errs, c.HistoryStore.Close())
	}
	if c.registryStore != nil {
		errs = append(errs, c.registryStore.Close())
	}
	return errors.Join(errs...)
}
