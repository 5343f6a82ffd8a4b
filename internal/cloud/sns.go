package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/domain"
)

// SNSPublisher is the part of *sns.Client used for alerts.
type SNSPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSNotifier publishes meter alerts to an SNS topic, or as SMS when only a
// phone number is configured.
type SNSNotifier struct {
	svc      SNSPublisher
	topicArn string
	phone    string
}

// NewSNSNotifier creates a notifier backed by the default AWS credential chain.
func NewSNSNotifier(ctx context.Context, region, topicArn, phone string) (*SNSNotifier, error) {
	if topicArn == "" && phone == "" {
		return nil, fmt.Errorf("sns: topic arn or phone number required: %w", ErrNotConfigured)
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return NewSNSNotifierWithClient(sns.NewFromConfig(cfg), topicArn, phone), nil
}

func NewSNSNotifierWithClient(svc SNSPublisher, topicArn, phone string) *SNSNotifier {
	return &SNSNotifier{svc: svc, topicArn: topicArn, phone: phone}
}

func (c *SNSNotifier) Notify(ctx context.Context, alert domain.Alert) error {
	input := &sns.PublishInput{
		Message: aws.String(alert.Message()),
	}
	if c.topicArn != "" {
		input.TopicArn = aws.String(c.topicArn)
		input.Subject = aws.String(alert.Subject())
	} else {
		input.PhoneNumber = aws.String(c.phone)
	}

	result, err := c.svc.Publish(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to publish to SNS: %w", err)
	}

	log.Debug().
		Str("meter_id", alert.MeterID).
		Str("message_id", aws.ToString(result.MessageId)).
		Msg("sns alert sent")
	return nil
}
