package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-inventory-service/internal/models/m_outbox"
)

// PostgresOutbox implements OutboxStore on PostgreSQL.
type PostgresOutbox struct {
	pool *pgxpool.Pool
}

// NewPostgresOutbox creates a new PostgresOutbox.
func NewPostgresOutbox(pool *pgxpool.Pool) *PostgresOutbox {
	return &PostgresOutbox{pool: pool}
}

var _ contracts.OutboxStore = (*PostgresOutbox)(nil)

// Pending returns up to limit pending events, oldest first.
func (o *PostgresOutbox) Pending(ctx context.Context, limit int) ([]*contracts.OutboxEvent, error) {
	rows, err := o.pool.Query(ctx, `
		SELECT event_id, event_type, aggregate_id, payload::text, status, created_at, retry_count
		FROM outbox_events
		WHERE status = $1
		ORDER BY created_at
		LIMIT $2`, m_outbox.StatusPending, limit)
	if err != nil {
		return nil, classifyPostgres("read pending outbox events", err)
	}
	defer rows.Close()

	var events []*contracts.OutboxEvent
	for rows.Next() {
		var e contracts.OutboxEvent
		if err := rows.Scan(&e.EventID, &e.EventType, &e.AggregateID, &e.Payload, &e.Status, &e.CreatedAt, &e.RetryCount); err != nil {
			return nil, classifyPostgres("scan outbox event", err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyPostgres("read pending outbox events", err)
	}

	return events, nil
}

// MarkCompleted records a successful publish.
func (o *PostgresOutbox) MarkCompleted(ctx context.Context, eventID string, at time.Time) error {
	_, err := o.pool.Exec(ctx,
		`UPDATE outbox_events SET status = $2, processed_at = $3, error_message = NULL WHERE event_id = $1`,
		eventID, m_outbox.StatusCompleted, at)
	return classifyPostgres("mark outbox event completed", err)
}

// MarkRetry records a failed publish.
func (o *PostgresOutbox) MarkRetry(ctx context.Context, eventID string, retryCount int64, reason string, at time.Time, final bool) error {
	status := m_outbox.StatusPending
	var processedAt *time.Time
	if final {
		status = m_outbox.StatusFailed
		processedAt = &at
	}
	_, err := o.pool.Exec(ctx,
		`UPDATE outbox_events SET status = $2, retry_count = $3, error_message = $4, processed_at = $5 WHERE event_id = $1`,
		eventID, status, retryCount, reason, processedAt)
	return classifyPostgres("mark outbox event retry", err)
}

const pgPurgeWhere = `(status = 'completed' AND processed_at < $1) OR (status = 'failed' AND processed_at < $2)`

// Purge deletes settled events older than the cutoffs.
func (o *PostgresOutbox) Purge(ctx context.Context, completedBefore, failedBefore time.Time, dryRun bool) (int64, error) {
	if dryRun {
		var count int64
		err := o.pool.QueryRow(ctx, `SELECT COUNT(*) FROM outbox_events WHERE `+pgPurgeWhere, completedBefore, failedBefore).Scan(&count)
		if err != nil {
			return 0, classifyPostgres("count purgeable outbox events", err)
		}
		return count, nil
	}

	tag, err := o.pool.Exec(ctx, `DELETE FROM outbox_events WHERE `+pgPurgeWhere, completedBefore, failedBefore)
	if err != nil {
		return 0, classifyPostgres("purge outbox events", err)
	}
	return tag.RowsAffected(), nil
}
