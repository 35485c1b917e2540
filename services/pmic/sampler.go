package pmic

import (
	"context"
	"errors"
	"time"

	"github.com/edaniels/golog"
	"go.uber.org/zap"

	"npm1300-go/errcode"
)

// Sampler collects from one Adaptor on a fixed period and on demand.
// Context is checked only between cycles; a conversion already triggered
// always runs to completion.
type Sampler struct {
	cfg   SamplerConfig
	ad    *Adaptor
	reqQ  chan struct{}
	sink  chan<- Result // fan-in sink owned by the caller
	log   golog.Logger
	timer *time.Timer
}

func NewSampler(cfg SamplerConfig, ad *Adaptor, sink chan<- Result, logger golog.Logger) *Sampler {
	if cfg.Period <= 0 {
		cfg.Period = 2 * time.Second
	}
	if cfg.InputQueueSize <= 0 {
		cfg.InputQueueSize = 4
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Sampler{
		cfg:   cfg,
		ad:    ad,
		reqQ:  make(chan struct{}, cfg.InputQueueSize),
		sink:  sink,
		log:   logger.With("device", ad.ID()),
		timer: time.NewTimer(time.Hour),
	}
}

// ReadNow requests an immediate cycle. It reports false when the request
// queue is full.
func (s *Sampler) ReadNow() bool {
	select {
	case s.reqQ <- struct{}{}:
		return true
	default:
		return false
	}
}

// Start runs the loop in its own goroutine.
func (s *Sampler) Start(ctx context.Context) {
	go func() { _ = s.Run(ctx) }()
}

// Run samples immediately, then every Period and on each ReadNow, until ctx
// is done. It returns nil on cancellation.
func (s *Sampler) Run(ctx context.Context) error {
	s.log.Infow("sampler started", "period", s.cfg.Period)
	defer s.log.Infow("sampler stopped")
	resetTimer(s.timer, 0)
	for {
		select {
		case <-ctx.Done():
			s.timer.Stop()
			return nil
		case <-s.reqQ:
		case <-s.timer.C:
		}
		s.cycle(ctx)
		resetTimer(s.timer, s.cfg.Period)
	}
}

func (s *Sampler) cycle(ctx context.Context) {
	sample, err := s.ad.Collect(ctx)
	if err != nil && errors.Is(err, ctx.Err()) {
		return
	}
	if err != nil {
		s.log.Debugw("collect incomplete", "code", errcode.Of(err), "error", err)
	}
	s.emit(ctx, Result{ID: s.ad.ID(), Sample: sample, Err: err, Code: errcode.Of(err)})
}

func (s *Sampler) emit(ctx context.Context, r Result) {
	select {
	case s.sink <- r:
	case <-ctx.Done():
	}
}
