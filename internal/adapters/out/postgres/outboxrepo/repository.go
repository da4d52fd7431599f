package outboxrepo

import (
	"context"
	"errors"

	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/core/domain/model/outbox"
	"ecofleet/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository reads and writes outbox_messages through whatever
// *gorm.DB it was built with; inside a unit of work that is the open
// transaction.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add inserts new pending messages. Called by the unit of work only.
func (r *GormOutboxRepository) Add(ctx context.Context, messages []*outbox.Message) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]OutboxMessageDTO, 0, len(messages))
	for _, m := range messages {
		dtos = append(dtos, fromDomain(m))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// ClaimPending runs
//
//	SELECT ... WHERE processed_on IS NULL ORDER BY occurred_on LIMIT n
//	FOR UPDATE SKIP LOCKED
//
// Rows stay locked until the surrounding transaction ends, and a concurrent
// dispatcher skips them instead of waiting, so no row is claimed twice.
func (r *GormOutboxRepository) ClaimPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	var dtos []OutboxMessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("processed_on IS NULL").
		Order("occurred_on ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]*outbox.Message, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}

// SaveOutcome writes processed_on and error for each message.
func (r *GormOutboxRepository) SaveOutcome(ctx context.Context, messages []*outbox.Message) error {
	for _, m := range messages {
		result := r.db.WithContext(ctx).
			Model(&OutboxMessageDTO{}).
			Where("id = ?", m.ID().Bytes()).
			Updates(map[string]any{
				"processed_on": m.ProcessedOn(),
				"error":        m.Error(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("outboxMessage", m.ID().String())
		}
	}
	return nil
}

// Get loads one message regardless of its state.
func (r *GormOutboxRepository) Get(ctx context.Context, id kernel.UUID) (*outbox.Message, error) {
	var dto OutboxMessageDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("outboxMessage", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}
