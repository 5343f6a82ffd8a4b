package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusAlert  Status = "ALERT"
	StatusNormal Status = "NORMAL"
)

// MeterID names a simulated meter: upper-cased zone code followed by the floor.
func MeterID(zone string, floor int) string {
	return strings.ToUpper(zone) + strconv.Itoa(floor)
}

// AbnormalSet is the fixed list of meters that take the alert path.
// It keeps configuration order and is read-only once built.
type AbnormalSet struct {
	ids   []string
	index map[string]struct{}
}

func NewAbnormalSet(ids []string) AbnormalSet {
	s := AbnormalSet{index: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		id = strings.ToUpper(strings.TrimSpace(id))
		if id == "" {
			continue
		}
		if _, dup := s.index[id]; dup {
			continue
		}
		s.index[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
	return s
}

func (s AbnormalSet) Contains(meterID string) bool {
	_, ok := s.index[meterID]
	return ok
}

func (s AbnormalSet) IDs() []string {
	return append([]string(nil), s.ids...)
}

type Reading struct {
	MeterID        string  `json:"meter_id"`
	ElectricityKWh float64 `json:"electricity_used"`
	WaterLPH       int     `json:"water_used"`
	Status         Status  `json:"status"`
}

type Alert struct {
	ID             string    `json:"id"`
	MeterID        string    `json:"meter_id"`
	ElectricityKWh float64   `json:"electricity_kwh"`
	WaterLPH       int       `json:"water_lph"`
	RaisedAt       time.Time `json:"raised_at"`
}

func NewAlert(r Reading, at time.Time) Alert {
	return Alert{
		ID:             uuid.NewString(),
		MeterID:        r.MeterID,
		ElectricityKWh: r.ElectricityKWh,
		WaterLPH:       r.WaterLPH,
		RaisedAt:       at,
	}
}

func (a Alert) Subject() string {
	return fmt.Sprintf("Campus Utility Alert: %s", a.MeterID)
}

// Message is the human readable body delivered to operators.
func (a Alert) Message() string {
	return fmt.Sprintf(
		"🚨 Alert 🚨\n\n"+
			"Abnormal usage detected!\n\n"+
			"Meter: %s\n"+
			"Electricity: %s kWh\n"+
			"Water: %d LPH\n\n"+
			"Immediate inspection is recommended.",
		a.MeterID,
		FormatFigure(a.ElectricityKWh),
		a.WaterLPH,
	)
}

// FormatFigure prints v in its shortest exact form, keeping a decimal on
// whole values: 5 gives "5.0", 2.38 gives "2.38".
func FormatFigure(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

type UsageSummary struct {
	TopPower []string
	TopWater []string
	AvgPower float64
	AvgWater float64
}

// DemoSummary holds the canned campus figures served by /get_insights.
var DemoSummary = UsageSummary{
	TopPower: []string{"C1", "E0", "D0"},
	TopWater: []string{"C1", "A0", "A2"},
	AvgPower: 2.38,
	AvgWater: 38.94,
}

type InsightReport struct {
	Date          string   `json:"date"`
	TopPowerZones []string `json:"top_power_zones"`
	TopWaterZones []string `json:"top_water_zones"`
	AvgWater      float64  `json:"avg_water"`
	AvgPower      float64  `json:"avg_power"`
	AIInsights    string   `json:"ai_insights"`
}
