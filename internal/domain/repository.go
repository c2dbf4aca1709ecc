package domain

import "context"

// ComplaintReader lists complaint records, most recent first when the
// backing store has an ordering.
type ComplaintReader interface {
	ListComplaints(ctx context.Context) ([]Complaint, error)
}

// ComplaintSource fetches complaint records from a remote complaints API.
// The dashboard polls it.
type ComplaintSource interface {
	FetchComplaints(ctx context.Context) ([]Complaint, error)
}

// SubmissionSink accepts a validated submission. Implementations decide
// whether it is discarded, stored or buffered.
type SubmissionSink interface {
	Submit(ctx context.Context, sub Submission) error
}

// SubmissionQueue is the consumer side of the submission buffer.
type SubmissionQueue interface {
	// ReadBatch reads up to count undelivered submissions for a consumer.
	ReadBatch(ctx context.Context, group, consumer string, count int) ([]Submission, error)

	// Acknowledge marks submissions as processed.
	Acknowledge(ctx context.Context, group string, messageIDs ...string) error

	// MoveToDLQ parks submissions that could not be written.
	MoveToDLQ(ctx context.Context, subs []Submission) error
}

// SubmissionWriter persists submissions in bulk. Writes must be idempotent
// on Submission.ID.
type SubmissionWriter interface {
	WriteBatch(ctx context.Context, subs []Submission) error
}

// QueueAdminRepository exposes operational views of the submission stream.
type QueueAdminRepository interface {
	QueueStats(ctx context.Context, group string) (*QueueStats, error)
	Trim(ctx context.Context, maxLen int64) (int64, error)
}

// SettingsStore persists per-client settings and notifies on change.
type SettingsStore interface {
	// Get returns the stored settings, or DefaultSettings when none exist.
	Get(ctx context.Context, clientID string) (Settings, error)

	// Set validates and stores settings, then notifies subscribers.
	Set(ctx context.Context, clientID string, s Settings) error

	// Subscribe delivers changes until ctx is cancelled, then closes the channel.
	Subscribe(ctx context.Context) (<-chan SettingsChange, error)
}
