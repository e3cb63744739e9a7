package m_outbox

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the outbox_events table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting an outbox event.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns,
		[]interface{}{
			data.EventID,
			data.EventType,
			data.AggregateID,
			data.Payload,
			data.Status,
			data.CreatedAt,
			data.ProcessedAt,
			data.RetryCount,
			data.ErrorMessage,
		},
	)
}

// CompletedMut marks an event as delivered.
func (m *Model) CompletedMut(eventID string, at time.Time) *spanner.Mutation {
	return spanner.Update(
		TableName,
		[]string{EventID, Status, ProcessedAt, ErrorMessage},
		[]interface{}{eventID, StatusCompleted, at, spanner.NullString{}},
	)
}

// RetryMut records a failed delivery attempt. The event stays pending
// unless final is set.
func (m *Model) RetryMut(eventID string, retryCount int64, reason string, at time.Time, final bool) *spanner.Mutation {
	status := StatusPending
	processedAt := spanner.NullTime{}
	if final {
		status = StatusFailed
		processedAt = spanner.NullTime{Time: at, Valid: true}
	}
	return spanner.Update(
		TableName,
		[]string{EventID, Status, RetryCount, ErrorMessage, ProcessedAt},
		[]interface{}{eventID, status, retryCount, spanner.NullString{StringVal: reason, Valid: true}, processedAt},
	)
}

// DeleteMut creates a Spanner mutation for deleting an outbox event.
func (m *Model) DeleteMut(eventID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{eventID})
}
