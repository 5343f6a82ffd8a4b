package cloud

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/domain"
)

const mqttQoS = 1

// MQTTNotifier publishes alert events as JSON to a broker topic. cmd/alertwatch
// is the matching consumer.
type MQTTNotifier struct {
	client mqtt.Client
	topic  string
}

// ConnectMQTT opens a broker connection with auto-reconnect enabled.
func ConnectMQTT(broker, clientID string, timeout time.Duration) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(timeout)
	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, fmt.Errorf("mqtt connect to %s: timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", broker, err)
	}
	return client, nil
}

func NewMQTTNotifier(client mqtt.Client, topic string) *MQTTNotifier {
	return &MQTTNotifier{client: client, topic: topic}
}

func (n *MQTTNotifier) Notify(ctx context.Context, alert domain.Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	token := n.client.Publish(n.topic, mqttQoS, false, payload)
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("failed to publish alert: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to publish alert: %w", ctx.Err())
	}
}

// DecodeAlert parses an alert event published by MQTTNotifier.
func DecodeAlert(payload []byte) (domain.Alert, error) {
	var a domain.Alert
	if err := json.Unmarshal(payload, &a); err != nil {
		return domain.Alert{}, fmt.Errorf("decode alert: %w", err)
	}
	if a.MeterID == "" {
		return domain.Alert{}, fmt.Errorf("decode alert: missing meter_id")
	}
	return a, nil
}
