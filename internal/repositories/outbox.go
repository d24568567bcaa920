package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/samber/lo"

	"ecommerce-platform/internal/models"
)

// OutboxRepository reads and acknowledges queued domain events
type OutboxRepository struct {
	db *sql.DB
}

func NewOutboxRepository(db *sql.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func insertOutboxEvent(ctx context.Context, q queryer, aggregateID, eventType string, payload json.RawMessage) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO outbox_events (aggregate_id, event_type, payload)
		VALUES ($1, $2, $3)`,
		aggregateID, eventType, []byte(payload))
	if err != nil {
		return fmt.Errorf("failed to queue %s event: %w", eventType, err)
	}
	return nil
}

// GetUnprocessed returns up to limit events that have not been published, oldest first
func (r *OutboxRepository) GetUnprocessed(ctx context.Context, limit int) ([]models.OutboxEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, aggregate_id, event_type, payload, created_at
		FROM outbox_events
		WHERE processed_at IS NULL
		ORDER BY id
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get unprocessed events: %w", err)
	}
	defer rows.Close()

	events := []models.OutboxEvent{}
	for rows.Next() {
		var e models.OutboxEvent
		var payload []byte
		if err := rows.Scan(&e.ID, &e.AggregateID, &e.EventType, &payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.Payload = payload
		events = append(events, e)
	}
	return events, rows.Err()
}

// MarkProcessed acknowledges published events
func (r *OutboxRepository) MarkProcessed(ctx context.Context, ids []int64, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE outbox_events SET processed_at = $2 WHERE id = ANY($1::bigint[])`,
		pq.Array(lo.Uniq(ids)), at)
	if err != nil {
		return fmt.Errorf("failed to mark events processed: %w", err)
	}
	return nil
}
