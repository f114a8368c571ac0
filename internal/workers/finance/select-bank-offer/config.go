// internal/workers/finance/select-bank-offer/config.go
package selectbankoffer

import (
	"time"

	"dealer-finance-workers/internal/common/config"
)

type Config struct {
	Enabled  bool
	Timeout  time.Duration
	CacheTTL time.Duration

	MaxBalloonPercent float64
	DefaultTermMonths int
}

func LoadConfig() *Config {
	return &Config{
		Enabled:           true,
		Timeout:           30 * time.Second,
		CacheTTL:          5 * time.Minute,
		MaxBalloonPercent: 40,
		DefaultTermMonths: 72,
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

	if appCfg.Finance.MaxBalloonPercent > 0 {
		cfg.MaxBalloonPercent = appCfg.Finance.MaxBalloonPercent
	}
	if appCfg.Finance.DefaultTermMonths > 0 {
		cfg.DefaultTermMonths = appCfg.Finance.DefaultTermMonths
	}

	return cfg
}
