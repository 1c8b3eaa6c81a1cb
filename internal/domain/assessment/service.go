package assessment

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gfi/internal/domain/friction"
	"gfi/internal/domain/lead"
	"gfi/internal/domain/snapshot"
	"gfi/internal/notify"
)

// Notifier sends the immediate and the deferred e-mail
type Notifier interface {
	SendNow(ctx context.Context, msg notify.Message) notify.Outcome
	ScheduleFollowUp(ctx context.Context, msg notify.Message, delay time.Duration) notify.Outcome
}

// Store is the lead storage seen by the pipeline
type Store interface {
	lead.Sink
	lead.Reader
}

type Deps struct {
	Presets       friction.Presets
	Links         snapshot.Links
	Store         Store
	Notifier      Notifier
	FollowUpDelay time.Duration
	Logger        *zap.Logger
}

// Service runs calculator requests and lead submissions
type Service struct {
	presets       friction.Presets
	model         *friction.Model
	composer      *snapshot.Composer
	links         snapshot.Links
	store         Store
	notifier      Notifier
	followUpDelay time.Duration
	log           *zap.Logger
	now           func() time.Time
	newID         func() string
}

func NewService(d Deps) *Service {
	return &Service{
		presets:       d.Presets,
		model:         friction.NewModel(d.Presets),
		composer:      snapshot.NewComposer(d.Links, d.Presets),
		links:         d.Links,
		store:         d.Store,
		notifier:      d.Notifier,
		followUpDelay: d.FollowUpDelay,
		log:           d.Logger,
		now:           func() time.Time { return time.Now().UTC() },
		newID:         uuid.NewString,
	}
}

// Presets returns the form choices
func (s *Service) Presets() PresetsResponse {
	return PresetsResponse{
		Roles:             s.presets.Roles,
		Industries:        friction.Industries(),
		OrganizationSizes: friction.OrganizationSizes(),
		EmployeeBands:     friction.EmployeeBands(),
		Benchmarks:        s.presets.Benchmarks,
		CustomRole:        friction.RoleCustom,
		MinMultiplier:     friction.MinMultiplier,
		MaxMultiplier:     friction.MaxMultiplier,
	}
}

// Estimate runs the cost model and risk classifier
func (s *Service) Estimate(in friction.Intake) (*EstimateResult, error) {
	est, err := s.model.Estimate(in)
	if err != nil {
		return nil, err
	}
	risk, err := friction.ClassifyRisk(est.TotalFrictionCost)
	if err != nil {
		return nil, err
	}
	return &EstimateResult{Estimate: est, Risk: risk}, nil
}

// ProfitLeak runs the profit-leak calculator
func (s *Service) ProfitLeak(in friction.ProfitLeakIntake) (friction.ProfitLeak, error) {
	return friction.ComputeProfitLeak(in)
}

// Submit computes the estimate, composes the Snapshot and hands the lead to
// storage and the notifier. Only invalid input or a render failure returns
// an error; collaborator failures are reported in the Result.
func (s *Service) Submit(ctx context.Context, req SubmitRequest, meta RequestMeta) (*Result, error) {
	calc, err := s.Estimate(req.Intake)
	if err != nil {
		return nil, err
	}

	l := &lead.Lead{
		PublicID:     s.newID(),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Organization: strings.TrimSpace(req.Organization),
		Role:         strings.TrimSpace(req.Role),
		Intake:       req.Intake,
		Estimate:     calc.Estimate,
		Risk:         calc.Risk,
		Source:       req.Source,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
		CreatedAt:    s.now(),
	}

	snap, err := s.composer.Compose(l)
	if err != nil {
		return nil, err
	}
	immediate, err := immediateMessage(l, snap, s.links)
	if err != nil {
		return nil, err
	}
	followUp, err := followUpMessage(l, snap, s.links)
	if err != nil {
		return nil, err
	}

	res := &Result{
		PublicID: l.PublicID,
		Estimate: calc.Estimate,
		Risk:     calc.Risk,
		Snapshot: SnapshotFile{Filename: snap.Filename, PDF: snap.PDF},
	}

	// each branch records its own status and never fails the group
	var g errgroup.Group
	g.Go(func() error {
		res.Persisted = s.persist(ctx, l)
		return nil
	})
	g.Go(func() error {
		res.Notified = statusFromOutcome(s.notifier.SendNow(ctx, immediate))
		return nil
	})
	_ = g.Wait()

	out := s.notifier.ScheduleFollowUp(ctx, followUp, s.followUpDelay)
	res.FollowUp = FollowUpStatus{Status: statusFromOutcome(out)}
	if out.ScheduledAt != nil {
		res.FollowUp.ScheduledAt = out.ScheduledAt.UTC().Format(time.RFC3339)
	}

	s.log.Info("lead submitted",
		zap.String("public_id", l.PublicID),
		zap.String("tier", string(l.Risk.Tier)),
		zap.Bool("persisted", res.Persisted.OK),
		zap.Bool("notified", res.Notified.OK),
	)
	return res, nil
}

func (s *Service) persist(ctx context.Context, l *lead.Lead) Status {
	err := s.store.Append(ctx, l)
	if err == nil {
		return Status{OK: true, Message: "stored"}
	}

	s.log.Warn("lead not persisted", zap.String("public_id", l.PublicID), zap.Error(err))
	var perr *lead.PersistenceError
	if errors.As(err, &perr) {
		return Status{OK: false, Message: perr.Reason}
	}
	return Status{OK: false, Message: err.Error()}
}

// Snapshot regenerates the Snapshot of a stored lead
func (s *Service) Snapshot(ctx context.Context, publicID string) (*snapshot.Snapshot, error) {
	l, err := s.store.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	return s.composer.Compose(l)
}

// Dispatches returns the notification log of a stored lead
func (s *Service) Dispatches(ctx context.Context, publicID string) (*DispatchesResponse, error) {
	if _, err := s.store.GetByPublicID(ctx, publicID); err != nil {
		return nil, err
	}
	out, err := s.store.ListDispatches(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []lead.Dispatch{}
	}
	return &DispatchesResponse{PublicID: publicID, Dispatches: out}, nil
}

const recordTimeout = 5 * time.Second

// DispatchRecorder writes every notification outcome to the lead's
// dispatch log
func DispatchRecorder(sink lead.Sink, log *zap.Logger) notify.ResultHook {
	return func(msg notify.Message, out notify.Outcome) {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		message := out.Message
		if out.Err != nil {
			message = out.Err.Error()
		}
		d := &lead.Dispatch{
			LeadPublicID: msg.Reference,
			Kind:         lead.DispatchKind(out.Dispatch),
			OK:           out.OK,
			Message:      truncate(message, 1024),
			ProviderID:   out.ProviderID,
			ScheduledAt:  out.ScheduledAt,
		}
		if err := sink.RecordDispatch(ctx, d); err != nil {
			log.Warn("dispatch not recorded",
				zap.String("public_id", msg.Reference),
				zap.String("dispatch", string(out.Dispatch)),
				zap.Error(err),
			)
		}
	}
}

// truncate cuts s to at most n bytes without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
