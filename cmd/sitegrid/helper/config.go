package helper

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"k8s.io/klog/v2"

	"github.com/sitegrid-labs/sitegrid/dao/migrations"
	"github.com/sitegrid-labs/sitegrid/dao/query"
	"github.com/sitegrid-labs/sitegrid/dao/store"
	"github.com/sitegrid-labs/sitegrid/internal/handler"
	"github.com/sitegrid-labs/sitegrid/pkg/config"
	"github.com/sitegrid-labs/sitegrid/pkg/notify"
	"github.com/sitegrid-labs/sitegrid/pkg/sweeper"
)

// ConfigInitializer wires configuration into the runtime dependencies.
type ConfigInitializer struct {
	backendConfig *config.Config
}

func NewConfigInitializer() *ConfigInitializer {
	return &ConfigInitializer{
		backendConfig: config.GetConfig(),
	}
}

func (ci *ConfigInitializer) GetBackendConfig() *config.Config {
	return ci.backendConfig
}

// LoadDebugEnvironment reads .debug.env and overrides the listen
// addresses when running in debug mode.
func (ci *ConfigInitializer) LoadDebugEnvironment() error {
	if gin.Mode() != gin.DebugMode {
		return nil
	}

	err := godotenv.Load(".debug.env")
	if err != nil {
		return err
	}

	be := os.Getenv("SITEGRID_BE_PORT")
	if be == "" {
		panic("SITEGRID_BE_PORT is not set")
	}
	ms := os.Getenv("SITEGRID_MS_PORT")
	if ms == "" {
		panic("SITEGRID_MS_PORT is not set")
	}

	ci.backendConfig.ServerAddr = ":" + be
	ci.backendConfig.MetricsAddr = ":" + ms

	return nil
}

// InitializeRegisterConfig opens the database, applies pending
// migrations and builds the shared handler dependencies.
func (ci *ConfigInitializer) InitializeRegisterConfig() (*handler.RegisterConfig, error) {
	db := query.GetDB()
	if err := migrations.Run(db); err != nil {
		return nil, err
	}

	registerConfig := &handler.RegisterConfig{
		Store:    store.New(db),
		Notifier: notify.NewNotifier(),
	}
	return registerConfig, nil
}

// StartSweeper schedules the periodic maintenance jobs.
func (ci *ConfigInitializer) StartSweeper() *sweeper.Manager {
	mgr := sweeper.NewManager(query.GetDB())
	if err := mgr.Start(ci.backendConfig.Sweeper.Spec); err != nil {
		klog.Fatalf("Failed to start sweeper: %s", err)
	}
	return mgr
}
