package main

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/config"
	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/domain"
)

type meterRequest struct {
	Zone  string `json:"zone"`
	Floor int    `json:"floor"`
}

// Sweeps every zone and floor against a running API and logs the readings.
func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	url := config.APIURL() + "/get_values"
	interval := config.SimulatorInterval()

	var alerts, failures int
	for _, zone := range config.SimulatorZones() {
		for floor := 0; floor < config.SimulatorFloors(); floor++ {
			var r domain.Reading
			code, _, errs := fiber.Post(url).
				Timeout(10 * time.Second).
				JSON(meterRequest{Zone: zone, Floor: floor}).
				Struct(&r)
			if err := errors.Join(errs...); err != nil || code != fiber.StatusOK {
				failures++
				log.Error().Err(err).Int("status", code).Str("zone", zone).Int("floor", floor).Msg("request failed")
				continue
			}
			if r.Status == domain.StatusAlert {
				alerts++
			}
			log.Info().
				Str("meter_id", r.MeterID).
				Float64("electricity_kwh", r.ElectricityKWh).
				Int("water_lph", r.WaterLPH).
				Str("status", string(r.Status)).
				Msg("reading")
			time.Sleep(interval)
		}
	}
	log.Info().Int("alerts", alerts).Int("failures", failures).Msg("simulation done")
}
