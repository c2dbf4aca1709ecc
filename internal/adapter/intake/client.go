// Package intake is a Go client for the complaint intake endpoint. It sends
// the same body a browser form would.
package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/V4T54L/transit-complaints/internal/domain"
	"github.com/go-resty/resty/v2"
)

// Form is what a citizen fills in. Zero values mean "not provided".
type Form struct {
	Text        string
	RouteNumber string
	BusNumber   int64
	Latitude    float64
	Longitude   float64
}

type requestBody struct {
	ComplaintText string  `json:"complaint_text"`
	RouteNumberQR string  `json:"route_number_qr"`
	BusNumberQR   int64   `json:"bus_number_qr"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
}

// APIError is a non-2xx answer of the intake endpoint.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("intake returned %d: %s", e.StatusCode, e.Message)
}

// Client posts complaints to an intake URL such as http://host:8000/api/complaints.
type Client struct {
	http *resty.Client
	url  string
}

// NewClient creates a client. lang, when set, is sent as Accept-Language so
// error messages come back localised.
func NewClient(url string, lang domain.Language, timeout time.Duration) *Client {
	c := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if lang != "" {
		c.SetHeader("Accept-Language", string(lang))
	}
	return &Client{http: c, url: url}
}

// Submit sends f and returns the server acknowledgement.
func (c *Client) Submit(ctx context.Context, f Form) (*domain.Acknowledgement, error) {
	if strings.TrimSpace(f.Text) == "" {
		return nil, domain.ErrEmptyComplaintText
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(requestBody{
			ComplaintText: f.Text,
			RouteNumberQR: f.RouteNumber,
			BusNumberQR:   f.BusNumber,
			Latitude:      f.Latitude,
			Longitude:     f.Longitude,
		}).
		Post(c.url)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", c.url, err)
	}

	if resp.IsError() {
		apiErr := &APIError{StatusCode: resp.StatusCode()}
		var body struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(resp.Body(), &body) == nil && body.Error != "" {
			apiErr.Message = body.Error
		} else {
			apiErr.Message = strings.TrimSpace(resp.String())
		}
		return nil, apiErr
	}

	var ack domain.Acknowledgement
	if err := json.Unmarshal(resp.Body(), &ack); err != nil {
		return nil, fmt.Errorf("decode acknowledgement: %w", err)
	}
	return &ack, nil
}
