package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestHTTPSource_FetchComplaints(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantCount  int
		wantStatus int
		wantErr    bool
	}{
		{
			name:      "Success with mixed bus number types",
			status:    http.StatusOK,
			body:      `[{"route_number":"12","bus_number":10051,"category":"delay","level":"high","text":"a","time":"07:55"},{"route_number":"5","bus_number":"-1","text":"b"}]`,
			wantCount: 2,
		},
		{
			name:      "Empty array",
			status:    http.StatusOK,
			body:      `[]`,
			wantCount: 0,
		},
		{
			name:       "Server error",
			status:     http.StatusInternalServerError,
			body:       `{"error":"Failed to fetch complaints"}`,
			wantStatus: http.StatusInternalServerError,
			wantErr:    true,
		},
		{
			name:    "Malformed JSON",
			status:  http.StatusOK,
			body:    `{"not":"a list"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET, got %s", r.Method)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			src := NewHTTPSource(server.URL)
			got, err := src.FetchComplaints(context.Background())

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error, got nil")
				}
				if tt.wantStatus != 0 {
					var statusErr *StatusError
					if !errors.As(err, &statusErr) || statusErr.StatusCode != tt.wantStatus {
						t.Errorf("expected StatusError %d, got %v", tt.wantStatus, err)
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got == nil || len(got) != tt.wantCount {
				t.Fatalf("expected %d complaints, got %#v", tt.wantCount, got)
			}
		})
	}
}

func TestHTTPSource_FetchComplaints_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewHTTPSource(server.URL).FetchComplaints(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestHTTPSource_FetchComplaints_LongCyrillicError(t *testing.T) {
	// 13-byte words put byte 200 inside the third rune of a word.
	body := strings.Repeat("Ошибка ", 40)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(body))
	}))
	defer server.Close()

	_, err := NewHTTPSource(server.URL).FetchComplaints(context.Background())
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if !utf8.ValidString(statusErr.Body) {
		t.Errorf("body was cut mid-rune: %q", statusErr.Body)
	}
	if !strings.HasSuffix(statusErr.Body, "...") || len(statusErr.Body) > 203 {
		t.Errorf("body not truncated: %d bytes", len(statusErr.Body))
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"abcdef", 3, "abc..."},
		{"жжж", 3, "ж..."},
		{"жжж", 4, "жж..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
