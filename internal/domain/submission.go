package domain

import (
	"strings"
	"time"
)

// Submission is a citizen complaint as received by the intake endpoint.
// Zero values sent by the browser client ("" and 0) mean "not provided".
type Submission struct {
	ID              string     `json:"id"`
	Text            string     `json:"complaint_text"`
	RouteNumber     string     `json:"route_number_qr,omitempty"`
	BusNumber       FlexString `json:"bus_number_qr,omitempty"`
	Latitude        *float64   `json:"latitude,omitempty"`
	Longitude       *float64   `json:"longitude,omitempty"`
	ReceivedAt      time.Time  `json:"received_at"`
	StreamMessageID string     `json:"-"`
}

// Normalize trims the text and clears placeholder values for absent
// optional fields.
func (s *Submission) Normalize() {
	s.Text = strings.TrimSpace(s.Text)
	s.RouteNumber = strings.TrimSpace(s.RouteNumber)
	s.BusNumber = FlexString(strings.TrimSpace(string(s.BusNumber)))
	if s.BusNumber == "0" {
		s.BusNumber = ""
	}
	if s.Latitude != nil && *s.Latitude == 0 {
		s.Latitude = nil
	}
	if s.Longitude != nil && *s.Longitude == 0 {
		s.Longitude = nil
	}
}

// Validate checks the submission invariants.
func (s *Submission) Validate() error {
	if strings.TrimSpace(s.Text) == "" {
		return ErrEmptyComplaintText
	}
	return nil
}

// Acknowledgement is returned to the submitter on success.
type Acknowledgement struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}
