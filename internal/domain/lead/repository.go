package lead

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gfi/internal/domain/friction"
)

// Repository handles lead data access
type Repository struct {
	db *gorm.DB
}

// NewRepository creates lead repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new lead
func (r *Repository) Create(ctx context.Context, l *Lead) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// GetByID retrieves lead by ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Lead, error) {
	var l Lead
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetByPublicID retrieves lead by the identifier handed out to the submitter
func (r *Repository) GetByPublicID(ctx context.Context, publicID string) (*Lead, error) {
	var l Lead
	err := r.db.WithContext(ctx).First(&l, "public_id = ?", publicID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns leads newest first with optional tier filter
func (r *Repository) List(ctx context.Context, tier *friction.Tier, limit, offset int) ([]Lead, int64, error) {
	q := r.db.WithContext(ctx).Model(&Lead{})
	if tier != nil {
		q = q.Where("risk_tier = ?", *tier)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leads []Lead
	err := q.Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&leads).Error
	if err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

// CountByTier returns lead counts by risk tier
func (r *Repository) CountByTier(ctx context.Context) (map[friction.Tier]int64, error) {
	var rows []struct {
		Tier  friction.Tier
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&Lead{}).
		Select("risk_tier AS tier, COUNT(*) AS count").
		Group("risk_tier").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[friction.Tier]int64, len(rows))
	for _, row := range rows {
		counts[row.Tier] = row.Count
	}
	return counts, nil
}

// CreateDispatch appends a notification outcome
func (r *Repository) CreateDispatch(ctx context.Context, d *Dispatch) error {
	return r.db.WithContext(ctx).Create(d).Error
}

// ListDispatches returns the notification log for one lead, oldest first
func (r *Repository) ListDispatches(ctx context.Context, publicID string) ([]Dispatch, error) {
	var out []Dispatch
	err := r.db.WithContext(ctx).
		Where("lead_public_id = ?", publicID).
		Order("created_at ASC").Order("id ASC").
		Find(&out).Error
	return out, err
}
