package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/domain"
	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/metrics"
)

// Notifier delivers an alert to an external messaging provider.
type Notifier interface {
	Notify(ctx context.Context, alert domain.Alert) error
}

// LogNotifier only records the alert in the service log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, alert domain.Alert) error {
	log.Info().
		Str("alert_id", alert.ID).
		Str("meter_id", alert.MeterID).
		Float64("electricity_kwh", alert.ElectricityKWh).
		Int("water_lph", alert.WaterLPH).
		Msg("abnormal usage detected")
	return nil
}

type provider struct {
	name string
	n    Notifier
}

// MultiNotifier fans an alert out to every registered provider. All providers
// are attempted even when an earlier one fails.
type MultiNotifier struct {
	providers []provider
}

func NewMultiNotifier() *MultiNotifier { return &MultiNotifier{} }

func (m *MultiNotifier) Add(name string, n Notifier) {
	m.providers = append(m.providers, provider{name: name, n: n})
}

func (m *MultiNotifier) Len() int { return len(m.providers) }

func (m *MultiNotifier) Notify(ctx context.Context, alert domain.Alert) error {
	var errs []error
	for _, p := range m.providers {
		if err := p.n.Notify(ctx, alert); err != nil {
			metrics.AlertNotifications.WithLabelValues(p.name, "error").Inc()
			errs = append(errs, fmt.Errorf("%s: %w", p.name, err))
			continue
		}
		metrics.AlertNotifications.WithLabelValues(p.name, "sent").Inc()
	}
	return errors.Join(errs...)
}
