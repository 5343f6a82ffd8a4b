package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/domain"
	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/metrics"
)

const (
	noAlertsText    = "No critical alerts detected."
	insightErrorFmt = "Gemini API error: %s"
)

var errNoGenerator = errors.New("no language model configured")

// TextGenerator is the language model collaborator.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type InsightService struct {
	abnormal  domain.AbnormalSet
	summary   domain.UsageSummary
	generator TextGenerator
	now       func() time.Time
	timeout   time.Duration
}

// Generate builds the daily report. A model failure is reported inside
// AIInsights instead of being returned.
func (s *InsightService) Generate(ctx context.Context) domain.InsightReport {
	report := domain.InsightReport{
		Date:          s.now().Format("2006-01-02"),
		TopPowerZones: s.summary.TopPower,
		TopWaterZones: s.summary.TopWater,
		AvgWater:      s.summary.AvgWater,
		AvgPower:      s.summary.AvgPower,
	}

	prompt := BuildPrompt(s.summary, Alerts(s.abnormal, s.summary))
	log.Debug().
		Strs("top_power", s.summary.TopPower).
		Strs("top_water", s.summary.TopWater).
		Float64("avg_power", s.summary.AvgPower).
		Float64("avg_water", s.summary.AvgWater).
		Msg("requesting insights")

	text, err := s.generate(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("insight generation failed")
		metrics.InsightRequests.WithLabelValues("error").Inc()
		report.AIInsights = fmt.Sprintf(insightErrorFmt, err)
		return report
	}
	metrics.InsightRequests.WithLabelValues("ok").Inc()
	report.AIInsights = text
	return report
}

func (s *InsightService) generate(ctx context.Context, prompt string) (string, error) {
	if s.generator == nil {
		return "", errNoGenerator
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.generator.Generate(ctx, prompt)
}

// Alerts lists, in abnormal-set order, the abnormal meters that show up in
// either top usage list.
func Alerts(abnormal domain.AbnormalSet, summary domain.UsageSummary) []string {
	var out []string
	for _, id := range abnormal.IDs() {
		if slices.Contains(summary.TopPower, id) || slices.Contains(summary.TopWater, id) {
			out = append(out, "Abnormal usage detected at "+id)
		}
	}
	return out
}

func BuildPrompt(summary domain.UsageSummary, alerts []string) string {
	alertsText := noAlertsText
	if len(alerts) > 0 {
		alertsText = strings.Join(alerts, "\n")
	}

	return fmt.Sprintf(`
You are a sustainability and facility management assistant for a college campus.

Today's campus resource summary:

Top electricity usage meters: %s
Top water usage meters: %s

Average electricity per meter: %s kWh
Average water usage per meter: %s LPH

Alerts:
%s

Provide:
1. Possible reasons for abnormal usage
2. Practical corrective actions
3. Sustainability benefits

Keep response short and actionable.
`,
		strings.Join(summary.TopPower, ", "),
		strings.Join(summary.TopWater, ", "),
		domain.FormatFigure(summary.AvgPower),
		domain.FormatFigure(summary.AvgWater),
		alertsText,
	)
}
