package mocks

import (
	"context"
	"sync"

	"github.com/V4T54L/transit-complaints/internal/domain"
)

// MockSubmissionRepository implements domain.SubmissionSink, domain.SubmissionQueue
// and domain.SubmissionWriter for testing.
type MockSubmissionRepository struct {
	mu              sync.Mutex
	Submitted       []domain.Submission
	WrittenBatches  [][]domain.Submission
	AckedMessageIDs []string
	DLQSubmissions  []domain.Submission
	ReadBatchResult []domain.Submission
	WriteAttempts   int
	SubmitErr       error
	ReadErr         error
	WriteErr        error
	AckErr          error
	DLQErr          error
}

func (m *MockSubmissionRepository) Submit(ctx context.Context, sub domain.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SubmitErr != nil {
		return m.SubmitErr
	}
	m.Submitted = append(m.Submitted, sub)
	return nil
}

func (m *MockSubmissionRepository) ReadBatch(ctx context.Context, group, consumer string, count int) ([]domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	return m.ReadBatchResult, nil
}

func (m *MockSubmissionRepository) WriteBatch(ctx context.Context, subs []domain.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WriteAttempts++
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.WrittenBatches = append(m.WrittenBatches, subs)
	return nil
}

func (m *MockSubmissionRepository) Acknowledge(ctx context.Context, group string, messageIDs ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AckErr != nil {
		return m.AckErr
	}
	m.AckedMessageIDs = append(m.AckedMessageIDs, messageIDs...)
	return nil
}

func (m *MockSubmissionRepository) MoveToDLQ(ctx context.Context, subs []domain.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DLQErr != nil {
		return m.DLQErr
	}
	m.DLQSubmissions = append(m.DLQSubmissions, subs...)
	return nil
}

// MockComplaintReader implements domain.ComplaintReader.
type MockComplaintReader struct {
	Complaints []domain.Complaint
	Err        error
}

func (m *MockComplaintReader) ListComplaints(ctx context.Context) ([]domain.Complaint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Complaints, nil
}

// FetchResult is one scripted response of MockComplaintSource.
type FetchResult struct {
	Complaints []domain.Complaint
	Err        error
}

// MockComplaintSource implements domain.ComplaintSource. It replays Results
// in order and repeats the last one once exhausted.
type MockComplaintSource struct {
	mu      sync.Mutex
	Results []FetchResult
	Calls   int
}

func (m *MockComplaintSource) FetchComplaints(ctx context.Context) ([]domain.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if len(m.Results) == 0 {
		return nil, nil
	}
	idx := m.Calls - 1
	if idx >= len(m.Results) {
		idx = len(m.Results) - 1
	}
	r := m.Results[idx]
	return r.Complaints, r.Err
}

// CallCount returns how many fetches were made.
func (m *MockComplaintSource) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// MockQueueAdminRepository implements domain.QueueAdminRepository.
type MockQueueAdminRepository struct {
	Stats      *domain.QueueStats
	StatsErr   error
	Trimmed    int64
	TrimErr    error
	TrimMaxLen int64
}

func (m *MockQueueAdminRepository) QueueStats(ctx context.Context, group string) (*domain.QueueStats, error) {
	return m.Stats, m.StatsErr
}

func (m *MockQueueAdminRepository) Trim(ctx context.Context, maxLen int64) (int64, error) {
	m.TrimMaxLen = maxLen
	return m.Trimmed, m.TrimErr
}
