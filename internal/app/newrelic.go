package app

import (
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"

	"tripmock/internal/config"
)

// NewNewRelicApp creates the New Relic agent. It returns nil without an
// error when New Relic is disabled or no license key is configured.
func NewNewRelicApp(cfg config.NewRelicConfig) (*newrelic.Application, error) {
	if !cfg.Enabled || cfg.LicenseKey == "" {
		return nil, nil
	}

	nrApp, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.AppName),
		newrelic.ConfigLicense(cfg.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(true),
		newrelic.ConfigAppLogForwardingEnabled(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize New Relic: %w", err)
	}
	return nrApp, nil
}
