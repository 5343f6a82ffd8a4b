package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/cloud"
	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/config"
	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/domain"
	httpHandlers "github.com/ANIKETSHETTY47/campus-utility-monitor/internal/http"
	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	setupLogger()

	ctx := context.Background()
	notifier, closeNotifiers := buildNotifiers(ctx)
	defer closeNotifiers()

	svcs := service.New(service.Options{
		Abnormal:     domain.NewAbnormalSet(config.AbnormalMeters()),
		Summary:      domain.DemoSummary,
		Notifier:     notifier,
		Generator:    buildGenerator(ctx),
		AlertTimeout: config.AlertTimeout(),
		LLMTimeout:   config.GeminiTimeout(),
	})
	app := httpHandlers.NewApp(svcs)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	addr := config.APIAddr()
	log.Info().Str("addr", addr).Strs("abnormal_meters", config.AbnormalMeters()).Msg("api listening")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("server exit")
	}
}

func setupLogger() {
	level, err := zerolog.ParseLevel(config.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if config.LogPretty() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// buildNotifiers wires every configured alert provider. A provider that
// cannot be set up is skipped with an error log; alerts then still reach the
// remaining ones.
func buildNotifiers(ctx context.Context) (service.Notifier, func()) {
	multi := service.NewMultiNotifier()
	var closers []func()

	for _, name := range config.AlertProviders() {
		switch name {
		case "log":
			multi.Add(name, service.LogNotifier{})
		case "twilio", "whatsapp":
			n, err := cloud.NewWhatsAppNotifier(config.TwilioAccountSID(), config.TwilioAuthToken(), config.TwilioWhatsAppFrom(), config.AlertPhone(), config.AlertTimeout())
			if err != nil {
				log.Error().Err(err).Str("provider", name).Msg("alert provider disabled")
				continue
			}
			multi.Add(name, n)
		case "sns":
			n, err := cloud.NewSNSNotifier(ctx, config.AWSRegion(), config.SNSTopicArn(), config.SNSPhone())
			if err != nil {
				log.Error().Err(err).Str("provider", name).Msg("alert provider disabled")
				continue
			}
			multi.Add(name, n)
		case "mqtt":
			client, err := cloud.ConnectMQTT(config.MQTTBroker(), config.MQTTClientID(), config.AlertTimeout())
			if err != nil {
				log.Error().Err(err).Str("provider", name).Msg("alert provider disabled")
				continue
			}
			closers = append(closers, func() { client.Disconnect(250) })
			multi.Add(name, cloud.NewMQTTNotifier(client, config.MQTTAlertTopic()))
		default:
			log.Warn().Str("provider", name).Msg("unknown alert provider ignored")
		}
	}

	if multi.Len() == 0 {
		log.Warn().Msg("no alert provider available; alerts are logged only")
		multi.Add("log", service.LogNotifier{})
	}
	return multi, func() {
		for _, c := range closers {
			c()
		}
	}
}

func buildGenerator(ctx context.Context) service.TextGenerator {
	g, err := cloud.NewGeminiClient(ctx, config.GeminiAPIKey(), config.GeminiModel())
	if err != nil {
		log.Warn().Err(err).Msg("insights will report a model error until GEMINI_API_KEY is set")
		return cloud.UnconfiguredGenerator{}
	}
	return g
}
