package negotiationrepo

import (
	"context"
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/negotiation"
	"orders/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNegotiationRepository implements NegotiationRepository using GORM.
type GormNegotiationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormNegotiationRepository creates a new GORM negotiation repository.
func NewGormNegotiationRepository(db *gorm.DB, tracker aggregateTracker) *GormNegotiationRepository {
	return &GormNegotiationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new negotiation to the database.
func (r *GormNegotiationRepository) Add(ctx context.Context, aggregate *negotiation.Negotiation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing negotiation to the database.
func (r *GormNegotiationRepository) Update(ctx context.Context, aggregate *negotiation.Negotiation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&NegotiationDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a negotiation by ID.
func (r *GormNegotiationRepository) Get(ctx context.Context, id kernel.UUID) (*negotiation.Negotiation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NegotiationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("negotiation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
