// internal/workers/finance/quote-vehicle-finance/config.go
package quotevehiclefinance

import (
	"time"

	"dealer-finance-workers/internal/common/config"
)

type Config struct {
	Enabled  bool
	Timeout  time.Duration
	CacheTTL time.Duration

	// Site-wide fallbacks when site_settings has no row for the site.
	DefaultInterestRate   float64
	MaxBalloonPercent     float64
	DefaultBalloonPercent float64
	DefaultTermMonths     int
}

func LoadConfig() *Config {
	return &Config{
		Enabled:               true,
		Timeout:               30 * time.Second,
		CacheTTL:              5 * time.Minute,
		DefaultInterestRate:   13.5,
		MaxBalloonPercent:     40,
		DefaultBalloonPercent: 35,
		DefaultTermMonths:     72,
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

	if appCfg.Finance.DefaultInterestRate > 0 {
		cfg.DefaultInterestRate = appCfg.Finance.DefaultInterestRate
	}
	if appCfg.Finance.MaxBalloonPercent > 0 {
		cfg.MaxBalloonPercent = appCfg.Finance.MaxBalloonPercent
	}
	if appCfg.Finance.DefaultBalloonPercent > 0 {
		cfg.DefaultBalloonPercent = appCfg.Finance.DefaultBalloonPercent
	}
	if appCfg.Finance.DefaultTermMonths > 0 {
		cfg.DefaultTermMonths = appCfg.Finance.DefaultTermMonths
	}

	return cfg
}
