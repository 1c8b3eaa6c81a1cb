package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultSendTimeout = 30 * time.Second

// ResultHook receives the terminal outcome of every dispatch
type ResultHook func(msg Message, out Outcome)

type Option func(*Service)

// WithResultHook registers a callback for dispatch outcomes
func WithResultHook(h ResultHook) Option {
	return func(s *Service) { s.hooks = append(s.hooks, h) }
}

// WithSendTimeout bounds each background provider call
func WithSendTimeout(d time.Duration) Option {
	return func(s *Service) { s.sendTimeout = d }
}

// Service dispatches lead e-mails now or after a delay
type Service struct {
	sender      Sender
	log         *zap.Logger
	hooks       []ResultHook
	sendTimeout time.Duration
	now         func() time.Time
	wg          sync.WaitGroup
}

func NewService(sender Sender, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		sender:      sender,
		log:         log,
		sendTimeout: defaultSendTimeout,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendNow delivers msg immediately. Failures come back in the Outcome.
func (s *Service) SendNow(ctx context.Context, msg Message) Outcome {
	out := s.send(ctx, DispatchImmediate, msg, nil)
	s.report(msg, out)
	return out
}

// ScheduleFollowUp queues msg for delivery after delay and returns at once.
// A sender that reports itself unusable fails the dispatch up front.
// The dispatch runs detached from ctx's cancellation, so it survives the
// request that scheduled it. Its outcome reaches the result hooks.
func (s *Service) ScheduleFollowUp(ctx context.Context, msg Message, delay time.Duration) Outcome {
	sendAt := s.now().Add(delay)

	if c, ok := s.sender.(interface{ Check() error }); ok {
		if err := c.Check(); err != nil {
			nerr := notificationError(DispatchFollowUp, err)
			out := Outcome{
				Dispatch:    DispatchFollowUp,
				OK:          false,
				Message:     nerr.Reason,
				ScheduledAt: &sendAt,
				Err:         nerr,
			}
			s.report(msg, out)
			return out
		}
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		bg, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sendTimeout)
		defer cancel()

		out := s.send(bg, DispatchFollowUp, msg, &sendAt)
		s.report(msg, out)
	}()

	return Outcome{
		Dispatch:    DispatchFollowUp,
		OK:          true,
		Message:     "scheduled",
		ScheduledAt: &sendAt,
	}
}

// Wait blocks until every scheduled follow-up has finished
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) send(ctx context.Context, d Dispatch, msg Message, sendAt *time.Time) Outcome {
	id, err := s.sender.Send(ctx, msg, sendAt)
	if err != nil {
		nerr := notificationError(d, err)
		return Outcome{
			Dispatch:    d,
			OK:          false,
			Message:     nerr.Reason,
			ScheduledAt: sendAt,
			Err:         nerr,
		}
	}
	return Outcome{
		Dispatch:    d,
		OK:          true,
		Message:     "sent",
		ProviderID:  id,
		ScheduledAt: sendAt,
	}
}

func (s *Service) report(msg Message, out Outcome) {
	fields := []zap.Field{
		zap.String("dispatch", string(out.Dispatch)),
		zap.String("reference", msg.Reference),
		zap.Bool("ok", out.OK),
		zap.String("provider_id", out.ProviderID),
	}
	if out.ScheduledAt != nil {
		fields = append(fields, zap.Time("scheduled_at", *out.ScheduledAt))
	}
	if out.OK {
		s.log.Info("notification dispatched", fields...)
	} else {
		s.log.Warn("notification failed", append(fields, zap.Error(out.Err))...)
	}

	for _, h := range s.hooks {
		h(msg, out)
	}
}
