// Package source fetches complaint records from a remote complaints API.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/V4T54L/transit-complaints/internal/domain"
	"github.com/go-resty/resty/v2"
)

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// HTTPSource implements domain.ComplaintSource over HTTP. It performs a
// single attempt per call; retrying is up to the caller.
type HTTPSource struct {
	client *resty.Client
	url    string
}

// NewHTTPSource creates a source reading the complaint list from url.
func NewHTTPSource(url string) *HTTPSource {
	client := resty.New().
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	return &HTTPSource{client: client, url: url}
}

// URL returns the upstream endpoint.
func (s *HTTPSource) URL() string { return s.url }

func (s *HTTPSource) FetchComplaints(ctx context.Context) ([]domain.Complaint, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", s.url, err)
	}

	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, &StatusError{
			URL:        s.url,
			StatusCode: resp.StatusCode(),
			Body:       truncate(strings.TrimSpace(resp.String()), 200),
		}
	}

	var complaints []domain.Complaint
	if err := json.Unmarshal(resp.Body(), &complaints); err != nil {
		return nil, fmt.Errorf("decode complaints from %s: %w", s.url, err)
	}
	if complaints == nil {
		complaints = []domain.Complaint{}
	}
	return complaints, nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
