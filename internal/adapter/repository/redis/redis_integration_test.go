//go:build integration

package redis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/V4T54L/transit-complaints/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// setupTestRedis connects to TEST_REDIS_URL and returns stream keys unique
// to the calling test, deleted again on cleanup.
func setupTestRedis(t *testing.T) (*redis.Client, string, string) {
	t.Helper()

	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	client, err := NewClient(context.Background(), url)
	if err != nil {
		t.Fatalf("Failed to connect to test redis: %v", err)
	}

	suffix := uuid.NewString()
	stream := "test_submissions:" + suffix
	dlq := "test_submissions_dlq:" + suffix
	t.Cleanup(func() {
		client.Del(context.Background(), stream, dlq)
		client.Close()
	})
	return client, stream, dlq
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSubmissionRepository_SetupConsumerGroupTwice(t *testing.T) {
	client, stream, dlq := setupTestRedis(t)
	repo := NewSubmissionRepository(client, testLogger(), stream, dlq)
	ctx := context.Background()

	if err := repo.SetupConsumerGroup(ctx, "writers"); err != nil {
		t.Fatalf("first SetupConsumerGroup: %v", err)
	}
	if err := repo.SetupConsumerGroup(ctx, "writers"); err != nil {
		t.Errorf("second SetupConsumerGroup should tolerate BUSYGROUP, got %v", err)
	}
}

func TestSubmissionRepository_ReadAckAndDeadLetter(t *testing.T) {
	client, stream, dlq := setupTestRedis(t)
	repo := NewSubmissionRepository(client, testLogger(), stream, dlq)
	ctx := context.Background()
	const group, consumer = "writers", "writer-1"

	if err := repo.SetupConsumerGroup(ctx, group); err != nil {
		t.Fatalf("SetupConsumerGroup: %v", err)
	}

	// Two entries the consumer cannot decode, then one real submission.
	for _, values := range []map[string]interface{}{
		{"payload": "not json"},
		{"something": "else"},
	} {
		if err := client.XAdd(ctx, &redis.XAddArgs{Stream: stream, Values: values}).Err(); err != nil {
			t.Fatalf("XADD malformed entry: %v", err)
		}
	}
	sub := domain.Submission{ID: "sub-1", Text: "bus was late", RouteNumber: "12", ReceivedAt: time.Now().UTC()}
	if err := repo.Submit(ctx, sub); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	first, err := repo.ReadBatch(ctx, group, consumer, 10)
	if err != nil {
		t.Fatalf("first ReadBatch: %v", err)
	}
	if len(first) != 1 || first[0].ID != "sub-1" || first[0].StreamMessageID == "" {
		t.Fatalf("first ReadBatch = %+v, want only sub-1 with a message id", first)
	}

	// Malformed entries were acked on read; only the real one is pending.
	pending, err := client.XPending(ctx, stream, group).Result()
	if err != nil {
		t.Fatalf("XPENDING: %v", err)
	}
	if pending.Count != 1 {
		t.Errorf("pending after first read = %d, want 1", pending.Count)
	}

	// Not acknowledged, so the next read delivers it again before new entries.
	second, err := repo.ReadBatch(ctx, group, consumer, 10)
	if err != nil {
		t.Fatalf("second ReadBatch: %v", err)
	}
	if len(second) != 1 || second[0].StreamMessageID != first[0].StreamMessageID {
		t.Fatalf("second ReadBatch = %+v, want the pending sub-1 again", second)
	}

	if err := repo.MoveToDLQ(ctx, second); err != nil {
		t.Fatalf("MoveToDLQ: %v", err)
	}
	if err := repo.Acknowledge(ctx, group, second[0].StreamMessageID); err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}

	pending, err = client.XPending(ctx, stream, group).Result()
	if err != nil {
		t.Fatalf("XPENDING: %v", err)
	}
	if pending.Count != 0 {
		t.Errorf("pending after ack = %d, want 0", pending.Count)
	}

	entries, err := client.XRange(ctx, dlq, "-", "+").Result()
	if err != nil {
		t.Fatalf("XRANGE dlq: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("dlq length = %d, want 1", len(entries))
	}
	if got := entries[0].Values["original_msg_id"]; got != second[0].StreamMessageID {
		t.Errorf("original_msg_id = %v, want %s", got, second[0].StreamMessageID)
	}
	if got := entries[0].Values["original_stream"]; got != stream {
		t.Errorf("original_stream = %v, want %s", got, stream)
	}
}

func TestAdminRepository_QueueStatsAndTrim(t *testing.T) {
	client, stream, dlq := setupTestRedis(t)
	admin := NewAdminRepository(client, testLogger(), stream, dlq)
	repo := NewSubmissionRepository(client, testLogger(), stream, dlq)
	ctx := context.Background()
	const group, consumer = "writers", "writer-1"

	t.Run("No Group Yet", func(t *testing.T) {
		stats, err := admin.QueueStats(ctx, group)
		if err != nil {
			t.Fatalf("QueueStats should tolerate NOGROUP, got %v", err)
		}
		if stats.Length != 0 || stats.DLQLength != 0 || stats.Pending.Total != 0 {
			t.Errorf("unexpected stats %+v", stats)
		}
	})

	t.Run("Pending And Trim", func(t *testing.T) {
		if err := repo.SetupConsumerGroup(ctx, group); err != nil {
			t.Fatalf("SetupConsumerGroup: %v", err)
		}
		for _, id := range []string{"a", "b", "c"} {
			if err := repo.Submit(ctx, domain.Submission{ID: id, Text: "text " + id}); err != nil {
				t.Fatalf("Submit: %v", err)
			}
		}
		if _, err := repo.ReadBatch(ctx, group, consumer, 10); err != nil {
			t.Fatalf("ReadBatch: %v", err)
		}

		stats, err := admin.QueueStats(ctx, group)
		if err != nil {
			t.Fatalf("QueueStats: %v", err)
		}
		if stats.Length != 3 || stats.Pending.Total != 3 || stats.Pending.ConsumerTotals[consumer] != 3 {
			t.Errorf("unexpected stats %+v", stats)
		}

		trimmed, err := admin.Trim(ctx, 1)
		if err != nil {
			t.Fatalf("Trim: %v", err)
		}
		if trimmed != 2 {
			t.Errorf("trimmed = %d, want 2", trimmed)
		}
		if n := client.XLen(ctx, stream).Val(); n != 1 {
			t.Errorf("stream length after trim = %d, want 1", n)
		}
	})
}

func TestSettingsStore_GetSetSubscribe(t *testing.T) {
	client, _, _ := setupTestRedis(t)
	store := NewSettingsStore(client, testLogger())
	clientID := "test-client-" + uuid.NewString()
	t.Cleanup(func() { client.Del(context.Background(), settingsKeyPrefix+clientID) })

	ctx := context.Background()

	got, err := store.Get(ctx, clientID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != domain.DefaultSettings() {
		t.Errorf("Get for new client = %+v, want defaults", got)
	}

	if err := store.Set(ctx, clientID, domain.Settings{Theme: "neon", Language: domain.LanguageRussian}); !errors.Is(err, domain.ErrInvalidSettings) {
		t.Errorf("Set invalid = %v, want ErrInvalidSettings", err)
	}

	// Two subscribers stand in for two dashboard instances.
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	first, err := store.Subscribe(subCtx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	second, err := NewSettingsStore(client, testLogger()).Subscribe(subCtx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	want := domain.Settings{Theme: domain.ThemeDark, Language: domain.LanguageKazakh}
	if err := store.Set(ctx, clientID, want); err != nil {
		t.Fatalf("Set: %v", err)
	}

	for i, ch := range []<-chan domain.SettingsChange{first, second} {
		if change := waitForChange(t, ch, clientID); change.Settings != want {
			t.Errorf("subscriber %d got %+v, want %+v", i, change.Settings, want)
		}
	}

	got, err = store.Get(ctx, clientID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != want {
		t.Errorf("Get after Set = %+v, want %+v", got, want)
	}

	// Corrupt stored data falls back to defaults.
	client.HSet(ctx, settingsKeyPrefix+clientID, "theme", "neon")
	if got, _ := store.Get(ctx, clientID); got != domain.DefaultSettings() {
		t.Errorf("Get with invalid stored theme = %+v, want defaults", got)
	}

	cancel()
	for i, ch := range []<-chan domain.SettingsChange{first, second} {
		if !waitForClose(ch) {
			t.Errorf("subscriber %d channel not closed after cancel", i)
		}
	}
}

// waitForChange skips changes of other clients, since the channel is shared.
func waitForChange(t *testing.T, ch <-chan domain.SettingsChange, clientID string) domain.SettingsChange {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case change, ok := <-ch:
			if !ok {
				t.Fatal("subscription closed before the change arrived")
			}
			if change.ClientID == clientID {
				return change
			}
		case <-timeout:
			t.Fatal("timed out waiting for settings change")
		}
	}
}

func waitForClose(ch <-chan domain.SettingsChange) bool {
	timeout := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return true
			}
		case <-timeout:
			return false
		}
	}
}
