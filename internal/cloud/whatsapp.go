package cloud

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/domain"
)

const whatsAppPrefix = "whatsapp:"

// MessageCreator is the part of the Twilio REST API used for alerts.
type MessageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// WhatsAppNotifier sends meter alerts as WhatsApp messages through Twilio.
type WhatsAppNotifier struct {
	api  MessageCreator
	from string
	to   string
}

// NewWhatsAppNotifier builds a Twilio backed notifier. A positive timeout
// replaces the client's default HTTP timeout.
func NewWhatsAppNotifier(accountSID, authToken, from, to string, timeout time.Duration) (*WhatsAppNotifier, error) {
	if accountSID == "" || authToken == "" || to == "" {
		return nil, fmt.Errorf("twilio: account sid, auth token and alert phone required: %w", ErrNotConfigured)
	}
	return NewWhatsAppNotifierWithAPI(newTwilioClient(accountSID, authToken, timeout).Api, from, to), nil
}

func newTwilioClient(accountSID, authToken string, timeout time.Duration) *twilio.RestClient {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return client
}

func NewWhatsAppNotifierWithAPI(api MessageCreator, from, to string) *WhatsAppNotifier {
	return &WhatsAppNotifier{api: api, from: whatsAppAddress(from), to: whatsAppAddress(to)}
}

// Notify sends the alert. The Twilio client has no context support, so ctx
// is only checked before the call; the client timeout bounds the request.
func (n *WhatsAppNotifier) Notify(ctx context.Context, alert domain.Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(n.from)
	params.SetTo(n.to)
	params.SetBody(alert.Message())

	resp, err := n.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send WhatsApp message: %w", err)
	}

	ev := log.Debug().Str("meter_id", alert.MeterID)
	if resp != nil && resp.Sid != nil {
		ev = ev.Str("sid", *resp.Sid)
	}
	ev.Msg("whatsapp alert sent")
	return nil
}

func whatsAppAddress(number string) string {
	if number == "" || strings.HasPrefix(number, whatsAppPrefix) {
		return number
	}
	return whatsAppPrefix + number
}
