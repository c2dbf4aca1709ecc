package domain

import (
	"encoding/json"
	"fmt"
)

// Category is the closed classification of a complaint's subject.
type Category string

const (
	CategoryDelay          Category = "delay"
	CategorySafetyIssue    Category = "safety_issue"
	CategoryCleanliness    Category = "cleanliness"
	CategoryDriverBehavior Category = "driver_behavior"
	CategoryTechnicalIssue Category = "technical_issue"
	CategoryOvercrowding   Category = "overcrowding"
	CategoryRouteIssue     Category = "route_issue"
	CategoryOther          Category = "other"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryDelay,
	CategorySafetyIssue,
	CategoryCleanliness,
	CategoryDriverBehavior,
	CategoryTechnicalIssue,
	CategoryOvercrowding,
	CategoryRouteIssue,
	CategoryOther,
}

// Known reports whether c is one of the enumerated categories.
func (c Category) Known() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Level is the severity tag attached to a complaint.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// Levels lists every severity from most to least urgent.
var Levels = []Level{LevelHigh, LevelMedium, LevelLow}

// Known reports whether l is one of the enumerated levels.
func (l Level) Known() bool {
	return l == LevelHigh || l == LevelMedium || l == LevelLow
}

// Complaint is a single complaint record as served by GET /api/complaints.
type Complaint struct {
	RouteNumber string     `json:"route_number"`
	BusNumber   FlexString `json:"bus_number"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	Location    string     `json:"location"`
	Category    Category   `json:"category"`
	Level       Level      `json:"level"`
	Advice      string     `json:"advice"`
	Text        string     `json:"text"`
	Time        string     `json:"time"`
}

// FlexString decodes from either a JSON string or a JSON number. Bus numbers
// arrive in both forms depending on who produced the record.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = FlexString(n.String())
	return nil
}
