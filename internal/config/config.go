package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() error {
	// Optional .env for local runs; real environment always wins.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	// API Configuration
	viper.SetDefault("API_ADDR", ":8080")
	viper.SetDefault("API_URL", "http://localhost:8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", "false")

	// Meters
	viper.SetDefault("ABNORMAL_METERS", "A0,C1,B3")

	// Alerting
	viper.SetDefault("ALERT_PROVIDERS", "log")
	viper.SetDefault("ALERT_TIMEOUT", "10s")
	viper.SetDefault("TWILIO_ACCOUNT_SID", "")
	viper.SetDefault("TWILIO_AUTH_TOKEN", "")
	viper.SetDefault("TWILIO_WHATSAPP_FROM", "whatsapp:+14155238886") // Twilio sandbox sender
	viper.SetDefault("ALERT_PHONE", "")

	// AWS Configuration
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("AWS_SNS_TOPIC_ARN", "")
	viper.SetDefault("AWS_SNS_PHONE", "")

	// MQTT
	viper.SetDefault("MQTT_BROKER", "tcp://localhost:1883")
	viper.SetDefault("MQTT_CLIENT_ID", "campus-utility-monitor")
	viper.SetDefault("MQTT_ALERT_TOPIC", "campus/alerts")

	// Gemini
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("GEMINI_TIMEOUT", "30s")

	// Simulator
	viper.SetDefault("SIMULATOR_ZONES", "A,B,C,D,E")
	viper.SetDefault("SIMULATOR_FLOORS", "4")
	viper.SetDefault("SIMULATOR_INTERVAL", "500ms")

	viper.AutomaticEnv()
	return nil
}

func APIAddr() string  { return viper.GetString("API_ADDR") }
func APIURL() string   { return viper.GetString("API_URL") }
func LogLevel() string { return viper.GetString("LOG_LEVEL") }
func LogPretty() bool  { return viper.GetBool("LOG_PRETTY") }

func AbnormalMeters() []string { return List("ABNORMAL_METERS") }

// AlertProviders returns the lower-cased provider names to fan alerts out to.
func AlertProviders() []string {
	out := List("ALERT_PROVIDERS")
	for i := range out {
		out[i] = strings.ToLower(out[i])
	}
	return out
}

func AlertTimeout() time.Duration { return viper.GetDuration("ALERT_TIMEOUT") }

func TwilioAccountSID() string   { return viper.GetString("TWILIO_ACCOUNT_SID") }
func TwilioAuthToken() string    { return viper.GetString("TWILIO_AUTH_TOKEN") }
func TwilioWhatsAppFrom() string { return viper.GetString("TWILIO_WHATSAPP_FROM") }
func AlertPhone() string         { return viper.GetString("ALERT_PHONE") }

func AWSRegion() string   { return viper.GetString("AWS_REGION") }
func SNSTopicArn() string { return viper.GetString("AWS_SNS_TOPIC_ARN") }
func SNSPhone() string    { return viper.GetString("AWS_SNS_PHONE") }

func MQTTBroker() string     { return viper.GetString("MQTT_BROKER") }
func MQTTClientID() string   { return viper.GetString("MQTT_CLIENT_ID") }
func MQTTAlertTopic() string { return viper.GetString("MQTT_ALERT_TOPIC") }

func GeminiAPIKey() string         { return viper.GetString("GEMINI_API_KEY") }
func GeminiModel() string          { return viper.GetString("GEMINI_MODEL") }
func GeminiTimeout() time.Duration { return viper.GetDuration("GEMINI_TIMEOUT") }

func SimulatorZones() []string         { return List("SIMULATOR_ZONES") }
func SimulatorFloors() int             { return viper.GetInt("SIMULATOR_FLOORS") }
func SimulatorInterval() time.Duration { return viper.GetDuration("SIMULATOR_INTERVAL") }

// List reads a comma separated key. Empty items are dropped.
func List(key string) []string {
	raw := viper.GetString(key)
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
