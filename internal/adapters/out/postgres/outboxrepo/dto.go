// Package outboxrepo maps outbox messages to the outbox_messages table and
// implements the dispatcher's locking read.
package outboxrepo

import (
	"time"

	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

type OutboxMessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Type        string     `gorm:"type:text;not null"`
	Content     string     `gorm:"type:text;not null"`
	OccurredOn  time.Time  `gorm:"type:timestamptz;not null;index"`
	ProcessedOn *time.Time `gorm:"type:timestamptz;index"`
	Error       *string    `gorm:"type:text"`
}

func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(m *outbox.Message) OutboxMessageDTO {
	return OutboxMessageDTO{
		ID:          m.ID().Bytes(),
		Type:        m.Type(),
		Content:     m.Content(),
		OccurredOn:  m.OccurredOn(),
		ProcessedOn: m.ProcessedOn(),
		Error:       m.Error(),
	}
}

func toDomain(dto OutboxMessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return outbox.RestoreMessage(id, dto.Type, dto.Content, dto.OccurredOn, dto.ProcessedOn, dto.Error)
}
