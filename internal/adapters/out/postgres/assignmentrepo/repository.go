package assignmentrepo

import (
	"context"
	"errors"

	"ecofleet/internal/core/domain/model/assignment"
	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker is the unit of work, seen from a repository.
type aggregateTracker interface {
	TrackAggregate(aggregate kernel.EventSource)
}

func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new assignment and tracks it.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *assignment.ManagerDriverAssignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Update writes every column, so cleared references become NULL.
func (r *GormAssignmentRepository) Update(ctx context.Context, aggregate *assignment.ManagerDriverAssignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AssignmentDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("assignment", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.ManagerDriverAssignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes the row. Pending events of an already loaded instance are
// not written anywhere.
func (r *GormAssignmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&AssignmentDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("assignment", id.String())
	}
	return nil
}
