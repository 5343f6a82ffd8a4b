package service

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/domain"
	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/metrics"
)

// Value ranges for generated readings. Bounds are inclusive.
var (
	alertElectricity  = [2]float64{4.5, 6.0}
	alertWater        = [2]int{85, 120}
	normalElectricity = [2]float64{1.0, 3.5}
	normalWater       = [2]int{15, 60}
)

type ReadingService struct {
	abnormal domain.AbnormalSet
	notifier Notifier
	rng      RandSource
	now      func() time.Time
	timeout  time.Duration
}

// Read draws a reading for the meter on the given zone and floor. Meters in
// the abnormal set get values from the alert ranges and trigger a
// notification; a failed notification is logged and never returned.
func (s *ReadingService) Read(ctx context.Context, zone string, floor int) domain.Reading {
	meterID := domain.MeterID(zone, floor)

	if !s.abnormal.Contains(meterID) {
		r := domain.Reading{
			MeterID:        meterID,
			ElectricityKWh: s.uniform(normalElectricity),
			WaterLPH:       s.intBetween(normalWater),
			Status:         domain.StatusNormal,
		}
		metrics.ReadingsGenerated.WithLabelValues(string(r.Status)).Inc()
		return r
	}

	r := domain.Reading{
		MeterID:        meterID,
		ElectricityKWh: s.uniform(alertElectricity),
		WaterLPH:       s.intBetween(alertWater),
		Status:         domain.StatusAlert,
	}
	metrics.ReadingsGenerated.WithLabelValues(string(r.Status)).Inc()

	s.notify(ctx, domain.NewAlert(r, s.now()))
	return r
}

func (s *ReadingService) notify(ctx context.Context, alert domain.Alert) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.notifier.Notify(ctx, alert); err != nil {
		log.Warn().Err(err).
			Str("meter_id", alert.MeterID).
			Str("alert_id", alert.ID).
			Msg("alert notification failed")
	}
}

// uniform returns a value in [lo, hi] rounded to two decimals.
func (s *ReadingService) uniform(bounds [2]float64) float64 {
	v := bounds[0] + s.rng.Float64()*(bounds[1]-bounds[0])
	return math.Round(v*100) / 100
}

func (s *ReadingService) intBetween(bounds [2]int) int {
	return bounds[0] + s.rng.IntN(bounds[1]-bounds[0]+1)
}
