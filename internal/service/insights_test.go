package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/domain"
)

type mockGenerator struct {
	GenerateFunc func(ctx context.Context, prompt string) (string, error)
	prompts      []string
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.GenerateFunc(ctx, prompt)
}

func TestAlerts_DemoSummary(t *testing.T) {
	alerts := Alerts(domain.NewAbnormalSet([]string{"A0", "C1", "B3"}), domain.DemoSummary)

	assert.Equal(t, []string{
		"Abnormal usage detected at A0",
		"Abnormal usage detected at C1",
	}, alerts)
	for _, a := range alerts {
		assert.NotContains(t, a, "B3")
	}
}

func TestAlerts_None(t *testing.T) {
	alerts := Alerts(domain.NewAbnormalSet([]string{"Z9"}), domain.DemoSummary)
	assert.Empty(t, alerts)
	assert.Contains(t, BuildPrompt(domain.DemoSummary, alerts), "No critical alerts detected.")
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(domain.DemoSummary, []string{"Abnormal usage detected at C1"})

	assert.Contains(t, prompt, "Top electricity usage meters: C1, E0, D0")
	assert.Contains(t, prompt, "Top water usage meters: C1, A0, A2")
	assert.Contains(t, prompt, "Average electricity per meter: 2.38 kWh")
	assert.Contains(t, prompt, "Average water usage per meter: 38.94 LPH")
	assert.Contains(t, prompt, "Alerts:\nAbnormal usage detected at C1\n")
	assert.Contains(t, prompt, "Keep response short and actionable.")
}

func TestBuildPrompt_WholeFigures(t *testing.T) {
	summary := domain.DemoSummary
	summary.AvgPower = 3
	summary.AvgWater = 40

	prompt := BuildPrompt(summary, nil)

	assert.Contains(t, prompt, "Average electricity per meter: 3.0 kWh")
	assert.Contains(t, prompt, "Average water usage per meter: 40.0 LPH")
}

func TestInsightService_Generate_Success(t *testing.T) {
	gen := &mockGenerator{GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
		_, ok := ctx.Deadline()
		assert.True(t, ok, "model call must be bounded")
		return "1. Check the C1 chiller.", nil
	}}
	svcs := New(Options{
		Abnormal:   domain.NewAbnormalSet([]string{"A0", "C1", "B3"}),
		Summary:    domain.DemoSummary,
		Generator:  gen,
		LLMTimeout: 5 * time.Second,
		Now:        fixedNow,
	})

	report := svcs.Insights.Generate(context.Background())

	assert.Equal(t, "2026-10-19", report.Date)
	assert.Equal(t, []string{"C1", "E0", "D0"}, report.TopPowerZones)
	assert.Equal(t, []string{"C1", "A0", "A2"}, report.TopWaterZones)
	assert.Equal(t, 2.38, report.AvgPower)
	assert.Equal(t, 38.94, report.AvgWater)
	assert.Equal(t, "1. Check the C1 chiller.", report.AIInsights)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Abnormal usage detected at A0")
	assert.Contains(t, gen.prompts[0], "Abnormal usage detected at C1")
	assert.NotContains(t, gen.prompts[0], "B3")
}

func TestInsightService_Generate_Failure(t *testing.T) {
	gen := &mockGenerator{GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("quota exceeded")
	}}
	svcs := New(Options{
		Abnormal:  domain.NewAbnormalSet([]string{"A0", "C1", "B3"}),
		Summary:   domain.DemoSummary,
		Generator: gen,
	})

	report := svcs.Insights.Generate(context.Background())

	assert.Equal(t, "Gemini API error: quota exceeded", report.AIInsights)
	assert.NotEmpty(t, report.Date)
}

func TestInsightService_Generate_NoGenerator(t *testing.T) {
	svcs := New(Options{Summary: domain.DemoSummary})

	report := svcs.Insights.Generate(context.Background())

	assert.Equal(t, "Gemini API error: no language model configured", report.AIInsights)
}
