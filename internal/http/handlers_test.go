package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/domain"
	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/service"
)

type failingNotifier struct{ calls int }

func (n *failingNotifier) Notify(context.Context, domain.Alert) error {
	n.calls++
	return errors.New("twilio down")
}

type stubGenerator struct {
	text string
	err  error
}

func (g stubGenerator) Generate(context.Context, string) (string, error) { return g.text, g.err }

func newTestApp(n service.Notifier, g service.TextGenerator) *fiber.App {
	return NewApp(service.New(service.Options{
		Abnormal:  domain.NewAbnormalSet([]string{"A0", "C1", "B3"}),
		Summary:   domain.DemoSummary,
		Notifier:  n,
		Generator: g,
		Now:       func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) },
	}))
}

func postValues(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/get_values", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestGetValues_Alert(t *testing.T) {
	n := &failingNotifier{}
	app := newTestApp(n, stubGenerator{})

	for _, zone := range []string{"a", "A"} {
		code, out := postValues(t, app, `{"zone":"`+zone+`","floor":0}`)

		assert.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, "A0", out["meter_id"])
		assert.Equal(t, "ALERT", out["status"])
		elec := out["electricity_used"].(float64)
		assert.GreaterOrEqual(t, elec, 4.5)
		assert.LessOrEqual(t, elec, 6.0)
		water := out["water_used"].(float64)
		assert.Equal(t, float64(int(water)), water, "water must be an integer")
		assert.GreaterOrEqual(t, water, 85.0)
		assert.LessOrEqual(t, water, 120.0)
	}
	assert.Equal(t, 2, n.calls, "notification failure must not fail the request")
}

func TestGetValues_Normal(t *testing.T) {
	n := &failingNotifier{}
	app := newTestApp(n, stubGenerator{})

	code, out := postValues(t, app, `{"zone":"d","floor":-2}`)

	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "D-2", out["meter_id"])
	assert.Equal(t, "NORMAL", out["status"])
	elec := out["electricity_used"].(float64)
	assert.GreaterOrEqual(t, elec, 1.0)
	assert.LessOrEqual(t, elec, 3.5)
	water := out["water_used"].(float64)
	assert.GreaterOrEqual(t, water, 15.0)
	assert.LessOrEqual(t, water, 60.0)
	assert.Zero(t, n.calls)
}

func TestGetValues_FloorCoercion(t *testing.T) {
	app := newTestApp(&failingNotifier{}, stubGenerator{})

	code, out := postValues(t, app, `{"zone":"c","floor":"1"}`)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "C1", out["meter_id"])

	code, out = postValues(t, app, `{"zone":"b","floor":3.0}`)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "B3", out["meter_id"])

	// above 2^53: must survive exactly, not via float64
	code, out = postValues(t, app, `{"zone":"e","floor":9007199254740993}`)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "E9007199254740993", out["meter_id"])
}

func TestGetValues_Invalid(t *testing.T) {
	app := newTestApp(&failingNotifier{}, stubGenerator{})

	for name, body := range map[string]string{
		"missing floor":   `{"zone":"a"}`,
		"missing zone":    `{"floor":1}`,
		"fractional":      `{"zone":"a","floor":1.5}`,
		"non numeric":     `{"zone":"a","floor":"first"}`,
		"zone not string": `{"zone":7,"floor":1}`,
		"not json":        `zone=a&floor=1`,
		"huge number":     `{"zone":"a","floor":100000000000000000000}`,
		"huge string":     `{"zone":"a","floor":"100000000000000000000"}`,
		"huge negative":   `{"zone":"a","floor":-100000000000000000000}`,
	} {
		t.Run(name, func(t *testing.T) {
			code, out := postValues(t, app, body)
			assert.Equal(t, fiber.StatusUnprocessableEntity, code)
			assert.Equal(t, "invalid request body", out["error"])
			assert.NotEmpty(t, out["details"])
		})
	}
}

func TestGetInsights_Success(t *testing.T) {
	app := newTestApp(&failingNotifier{}, stubGenerator{text: "Reduce HVAC load on C1."})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/get_insights", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out domain.InsightReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "2026-10-19", out.Date)
	assert.Equal(t, []string{"C1", "E0", "D0"}, out.TopPowerZones)
	assert.Equal(t, []string{"C1", "A0", "A2"}, out.TopWaterZones)
	assert.Equal(t, 38.94, out.AvgWater)
	assert.Equal(t, 2.38, out.AvgPower)
	assert.Equal(t, "Reduce HVAC load on C1.", out.AIInsights)
}

func TestGetInsights_ModelFailure(t *testing.T) {
	app := newTestApp(&failingNotifier{}, stubGenerator{err: errors.New("deadline exceeded")})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/get_insights", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out domain.InsightReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Gemini API error: deadline exceeded", out.AIInsights)
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(&failingNotifier{}, stubGenerator{})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ok", string(body))

	_, _ = postValues(t, app, `{"zone":"e","floor":1}`)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "campus_readings_generated_total")
}

func TestPanicIsLoggedAndRecovered(t *testing.T) {
	app := newTestApp(&failingNotifier{}, stubGenerator{})
	app.Get("/boom", func(*fiber.Ctx) error { panic("boom") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `campus_http_request_duration_seconds_count{method="GET",route="/boom",status="500"}`)
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(&failingNotifier{}, stubGenerator{})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
