package lead

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gfi/internal/domain/friction"
)

// Sink accepts completed leads and notification outcomes
type Sink interface {
	Append(ctx context.Context, l *Lead) error
	RecordDispatch(ctx context.Context, d *Dispatch) error
}

// Reader serves stored leads back to their submitters
type Reader interface {
	GetByPublicID(ctx context.Context, publicID string) (*Lead, error)
	ListDispatches(ctx context.Context, publicID string) ([]Dispatch, error)
}

// Service handles lead business logic
type Service struct {
	repo *Repository
	now  func() time.Time
}

// NewService creates lead service
func NewService(repo *Repository) *Service {
	return &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Append stores a lead. Every failure comes back as *PersistenceError.
func (s *Service) Append(ctx context.Context, l *Lead) error {
	if l == nil {
		return &PersistenceError{Op: "append", Reason: "lead is nil"}
	}
	if l.PublicID == "" {
		l.PublicID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = s.now()
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return persistenceError("append", err)
	}
	return nil
}

// RecordDispatch appends a notification outcome to the lead's log
func (s *Service) RecordDispatch(ctx context.Context, d *Dispatch) error {
	if d == nil {
		return &PersistenceError{Op: "record dispatch", Reason: "dispatch is nil"}
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = s.now()
	}
	if err := s.repo.CreateDispatch(ctx, d); err != nil {
		return persistenceError("record dispatch", err)
	}
	return nil
}

// GetByID retrieves lead for admin
func (s *Service) GetByID(ctx context.Context, id int64) (*Lead, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, persistenceError("get", err)
	}
	if l == nil {
		return nil, ErrLeadNotFound
	}
	return l, nil
}

// GetByPublicID retrieves lead by its public identifier
func (s *Service) GetByPublicID(ctx context.Context, publicID string) (*Lead, error) {
	if _, err := uuid.Parse(publicID); err != nil {
		return nil, ErrLeadNotFound
	}
	l, err := s.repo.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, persistenceError("get", err)
	}
	if l == nil {
		return nil, ErrLeadNotFound
	}
	return l, nil
}

// ListLeads returns leads for admin
func (s *Service) ListLeads(ctx context.Context, tier *friction.Tier, limit, offset int) ([]Lead, int64, error) {
	leads, total, err := s.repo.List(ctx, tier, limit, offset)
	if err != nil {
		return nil, 0, persistenceError("list", err)
	}
	return leads, total, nil
}

// ListDispatches returns the notification log for a lead
func (s *Service) ListDispatches(ctx context.Context, publicID string) ([]Dispatch, error) {
	out, err := s.repo.ListDispatches(ctx, publicID)
	if err != nil {
		return nil, persistenceError("list dispatches", err)
	}
	return out, nil
}

// GetStats returns lead counts for every tier
func (s *Service) GetStats(ctx context.Context) (*StatsResponse, error) {
	counts, err := s.repo.CountByTier(ctx)
	if err != nil {
		return nil, persistenceError("stats", err)
	}

	stats := &StatsResponse{ByTier: make(map[friction.Tier]int64, len(friction.Tiers()))}
	for _, t := range friction.Tiers() {
		stats.ByTier[t] = counts[t]
		stats.Total += counts[t]
	}
	return stats, nil
}

// DisabledSink stands in when no database is configured. Every call fails
// with a PersistenceError so callers can report the lead as unsaved.
type DisabledSink struct{}

const storageNotConfigured = "lead storage is not configured"

func (DisabledSink) Append(context.Context, *Lead) error {
	return &PersistenceError{Op: "append", Reason: storageNotConfigured}
}

func (DisabledSink) RecordDispatch(context.Context, *Dispatch) error {
	return &PersistenceError{Op: "record dispatch", Reason: storageNotConfigured}
}

func (DisabledSink) GetByPublicID(context.Context, string) (*Lead, error) {
	return nil, &PersistenceError{Op: "get", Reason: storageNotConfigured}
}

func (DisabledSink) ListDispatches(context.Context, string) ([]Dispatch, error) {
	return nil, &PersistenceError{Op: "list dispatches", Reason: storageNotConfigured}
}

var (
	_ Sink   = (*Service)(nil)
	_ Reader = (*Service)(nil)
	_ Sink   = DisabledSink{}
	_ Reader = DisabledSink{}
)
