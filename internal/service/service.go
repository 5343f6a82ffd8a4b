package service

import (
	"math/rand/v2"
	"time"

	"github.com/ANIKETSHETTY47/campus-utility-monitor/internal/domain"
)

// RandSource is the subset of *rand.Rand the reading generator draws from.
type RandSource interface {
	Float64() float64
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

type Options struct {
	Abnormal     domain.AbnormalSet
	Summary      domain.UsageSummary
	Notifier     Notifier
	Generator    TextGenerator
	AlertTimeout time.Duration
	LLMTimeout   time.Duration

	// Rand and Now default to math/rand/v2 and time.Now.
	Rand RandSource
	Now  func() time.Time
}

type Services struct {
	Readings *ReadingService
	Insights *InsightService
}

func New(opts Options) *Services {
	if opts.Rand == nil {
		opts.Rand = globalRand{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Notifier == nil {
		opts.Notifier = LogNotifier{}
	}
	return &Services{
		Readings: &ReadingService{
			abnormal: opts.Abnormal,
			notifier: opts.Notifier,
			rng:      opts.Rand,
			now:      opts.Now,
			timeout:  opts.AlertTimeout,
		},
		Insights: &InsightService{
			abnormal:  opts.Abnormal,
			summary:   opts.Summary,
			generator: opts.Generator,
			now:       opts.Now,
			timeout:   opts.LLMTimeout,
		},
	}
}
