package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/cloud"
	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/config"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	client, err := cloud.ConnectMQTT(config.MQTTBroker(), config.MQTTClientID()+"-alertwatch", 10*time.Second)
	if err != nil {
		log.Fatal().Err(err).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		alert, err := cloud.DecodeAlert(msg.Payload())
		if err != nil {
			log.Error().Err(err).Str("topic", msg.Topic()).Msg("bad alert event")
			return
		}
		log.Warn().
			Str("alert_id", alert.ID).
			Str("meter_id", alert.MeterID).
			Float64("electricity_kwh", alert.ElectricityKWh).
			Int("water_lph", alert.WaterLPH).
			Time("raised_at", alert.RaisedAt).
			Msg("abnormal usage")
	}

	topic := config.MQTTAlertTopic()
	if token := client.Subscribe(topic, 1, handler); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("subscribe failed")
	}

	log.Info().Str("topic", topic).Msg("alertwatch running; Ctrl+C to stop")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}
