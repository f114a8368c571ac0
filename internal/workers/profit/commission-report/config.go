// internal/workers/profit/commission-report/config.go
package commissionreport

import (
	"time"

	"dealer-finance-workers/internal/common/config"
)

type Config struct {
	Enabled bool
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Enabled: true,
		Timeout: 30 * time.Second,
	}
}

// ConfigFromApp builds the worker config from the application config.
func ConfigFromApp(appCfg *config.Config) *Config {
	cfg := LoadConfig()
	if appCfg == nil {
		return cfg
	}

	workerCfg := config.GetWorkerConfig(appCfg, TaskType)
	cfg.Enabled = workerCfg.Enabled
	cfg.Timeout = config.GetDuration(workerCfg.Timeout)

	return cfg
}
