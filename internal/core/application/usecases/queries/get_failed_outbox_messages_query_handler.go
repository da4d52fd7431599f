package queries

import (
	"context"

	"ecofleet/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetFailedOutboxMessagesQueryHandler struct {
	db *gorm.DB
}

func NewGetFailedOutboxMessagesQueryHandler(db *gorm.DB) GetFailedOutboxMessagesQueryHandler {
	return GetFailedOutboxMessagesQueryHandler{db: db}
}

func (h GetFailedOutboxMessagesQueryHandler) Handle(
	ctx context.Context,
	query GetFailedOutboxMessagesQuery,
) ([]GetFailedOutboxMessagesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	messages := make([]GetFailedOutboxMessagesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			type,
			content,
			occurred_on,
			processed_on,
			error
		FROM outbox_messages
		WHERE error IS NOT NULL
		ORDER BY processed_on DESC, occurred_on DESC
		LIMIT ?
	`, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m GetFailedOutboxMessagesQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&m.Type,
			&m.Content,
			&m.OccurredOn,
			&m.ProcessedOn,
			&m.Error,
		)
		if err != nil {
			return nil, err
		}

		messageID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		m.ID = messageID
		messages = append(messages, m)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
