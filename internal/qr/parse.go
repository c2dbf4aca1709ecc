// Package qr decodes the text of QR codes mounted inside buses.
package qr

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// BusInfo is the route and vehicle a QR code identifies.
type BusInfo struct {
	RouteNumber string `json:"routeNumber"`
	BusNumber   int64  `json:"busNumber"`
}

var digitRun = regexp.MustCompile(`\d+`)

// Parse decodes a scanned payload. A JSON payload must carry a non-empty
// route_number and a non-empty bus_number that reads as a whole number;
// zero numbers count as empty, the string "0" does not. Anything that is
// not JSON falls back to the first two digit runs, read as route then bus.
// The bus run must fit in an int64, so "route 12 bus 99999999999999999999"
// is unparseable. ok is false when neither strategy yields both values.
func Parse(payload string) (info *BusInfo, ok bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &obj); err == nil {
		return fromObject(obj)
	}

	var v interface{}
	if err := json.Unmarshal([]byte(payload), &v); err == nil {
		// Valid JSON that is not an object carries no fields.
		return nil, false
	}

	runs := digitRun.FindAllString(payload, 2)
	if len(runs) < 2 {
		return nil, false
	}
	bus, err := strconv.ParseInt(runs[1], 10, 64)
	if err != nil {
		return nil, false
	}
	return &BusInfo{RouteNumber: runs[0], BusNumber: bus}, true
}

func fromObject(obj map[string]json.RawMessage) (*BusInfo, bool) {
	route, ok := field(obj["route_number"])
	if !ok {
		return nil, false
	}
	busText, ok := field(obj["bus_number"])
	if !ok {
		return nil, false
	}
	bus, ok := wholeNumber(strings.TrimSpace(busText))
	if !ok {
		return nil, false
	}
	return &BusInfo{RouteNumber: route, BusNumber: bus}, true
}

// field renders a non-empty JSON string or a non-zero JSON number as text.
// Numbers are written in their shortest decimal form, so 12.0 becomes "12".
func field(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, s != ""
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if f == 0 {
			return "", false
		}
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}

// wholeNumber parses s as a decimal number without a fractional part.
func wholeNumber(s string) (int64, bool) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
