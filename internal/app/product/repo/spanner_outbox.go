package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-inventory-service/internal/models/m_outbox"
	"github.com/light-bringer/catalog-inventory-service/internal/pkg/committer"
	"github.com/light-bringer/catalog-inventory-service/internal/pkg/query"
)

// SpannerOutbox implements OutboxStore on Cloud Spanner.
type SpannerOutbox struct {
	client    *spanner.Client
	committer *committer.Committer
	model     *m_outbox.Model
}

// NewSpannerOutbox creates a new SpannerOutbox.
func NewSpannerOutbox(client *spanner.Client) *SpannerOutbox {
	return &SpannerOutbox{
		client:    client,
		committer: committer.NewCommitter(client),
		model:     m_outbox.NewModel(),
	}
}

var _ contracts.OutboxStore = (*SpannerOutbox)(nil)

// Pending returns up to limit pending events, oldest first.
func (o *SpannerOutbox) Pending(ctx context.Context, limit int) ([]*contracts.OutboxEvent, error) {
	stmt := query.From(m_outbox.TableName).
		Select(m_outbox.Columns...).
		Where(query.Eq(m_outbox.Status, m_outbox.StatusPending)).
		OrderBy(m_outbox.CreatedAt, query.Asc).
		Limit(int64(limit)).
		Build()

	iter := o.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var events []*contracts.OutboxEvent
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classifySpanner("read pending outbox events", err)
		}

		var data m_outbox.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse outbox event: %w", err)
		}

		payload, err := json.Marshal(data.Payload.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode payload of event %s: %w", data.EventID, err)
		}

		events = append(events, &contracts.OutboxEvent{
			EventID:     data.EventID,
			EventType:   data.EventType,
			AggregateID: data.AggregateID,
			Payload:     string(payload),
			Status:      data.Status,
			CreatedAt:   data.CreatedAt,
			RetryCount:  data.RetryCount,
		})
	}

	return events, nil
}

// MarkCompleted records a successful publish.
func (o *SpannerOutbox) MarkCompleted(ctx context.Context, eventID string, at time.Time) error {
	plan := committer.NewPlan()
	plan.Add(o.model.CompletedMut(eventID, at))
	return classifySpanner("mark outbox event completed", o.committer.Apply(ctx, plan))
}

// MarkRetry records a failed publish.
func (o *SpannerOutbox) MarkRetry(ctx context.Context, eventID string, retryCount int64, reason string, at time.Time, final bool) error {
	plan := committer.NewPlan()
	plan.Add(o.model.RetryMut(eventID, retryCount, reason, at, final))
	return classifySpanner("mark outbox event retry", o.committer.Apply(ctx, plan))
}

// Purge deletes settled events older than the cutoffs with partitioned DML.
func (o *SpannerOutbox) Purge(ctx context.Context, completedBefore, failedBefore time.Time, dryRun bool) (int64, error) {
	purgeable := query.From(m_outbox.TableName).Where(query.Or(
		query.And(query.Eq(m_outbox.Status, m_outbox.StatusCompleted), query.Lt(m_outbox.ProcessedAt, completedBefore)),
		query.And(query.Eq(m_outbox.Status, m_outbox.StatusFailed), query.Lt(m_outbox.ProcessedAt, failedBefore)),
	))

	if dryRun {
		iter := o.client.Single().Query(ctx, purgeable.Count().Build())
		defer iter.Stop()

		row, err := iter.Next()
		if err != nil {
			return 0, classifySpanner("count purgeable outbox events", err)
		}
		var count int64
		if err := row.Columns(&count); err != nil {
			return 0, fmt.Errorf("failed to parse count: %w", err)
		}
		return count, nil
	}

	count, err := o.client.PartitionedUpdate(ctx, purgeable.BuildDelete())
	if err != nil {
		return 0, classifySpanner("purge outbox events", err)
	}
	return count, nil
}
