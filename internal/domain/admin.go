package domain

// PendingSummary summarises messages delivered to the consumer group but not yet acknowledged.
type PendingSummary struct {
	Total          int64            `json:"total"`
	FirstMessageID string           `json:"first_message_id,omitempty"`
	LastMessageID  string           `json:"last_message_id,omitempty"`
	ConsumerTotals map[string]int64 `json:"consumer_totals,omitempty"`
}

// QueueStats describes the submission stream and its dead-letter stream.
type QueueStats struct {
	Stream    string         `json:"stream"`
	Length    int64          `json:"length"`
	DLQLength int64          `json:"dlq_length"`
	Pending   PendingSummary `json:"pending"`
}
