package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

func (r *Repository) InsertOrderEvent(ctx context.Context, orderID uuid.UUID, eventType string, payload []byte) error {
	query := `INSERT INTO order_events (order_id, event_type, payload, created_at)
	          VALUES ($1, $2, $3, NOW())`

	if _, err := r.db.ExecContext(ctx, query, orderID, eventType, payload); err != nil {
		return fmt.Errorf("insert order event: %w", err)
	}
	return nil
}

func (r *Repository) UnpublishedOrderEvents(ctx context.Context, limit int) ([]OrderEvent, error) {
	query := `SELECT id, order_id, event_type, payload, created_at
	          FROM order_events WHERE published_at IS NULL
	          ORDER BY id LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query unpublished order events: %w", err)
	}
	defer rows.Close()

	var events []OrderEvent
	for rows.Next() {
		var event OrderEvent
		if err := rows.Scan(
			&event.ID,
			&event.OrderID,
			&event.EventType,
			&event.Payload,
			&event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order event row: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return events, nil
}

func (r *Repository) MarkOrderEventPublished(ctx context.Context, eventID int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE order_events SET published_at = NOW() WHERE id = $1`, eventID); err != nil {
		return fmt.Errorf("mark order event published: %w", err)
	}
	return nil
}
