package openmeteo

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeLayout is the local-time format Open-Meteo uses for hourly and current timestamps.
const TimeLayout = "2006-01-02T15:04"

// DateLayout is the format of daily timestamps.
const DateLayout = "2006-01-02"

// Response is one decoded forecast or marine payload. Every variable is optional: the set of
// keys depends on the requested models, and values inside a series may be null.
type Response struct {
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	Timezone         string    `json:"timezone"`
	UTCOffsetSeconds int       `json:"utc_offset_seconds"`
	Current          *Snapshot `json:"current"`
	Hourly           *Block    `json:"hourly"`
	Daily            *Block    `json:"daily"`

	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// Location returns the payload timezone. An unknown zone name falls back to the fixed
// UTC offset reported alongside it.
func (r *Response) Location() *time.Location {
	if r.Timezone != "" {
		if loc, err := time.LoadLocation(r.Timezone); err == nil {
			return loc
		}
	}
	if r.UTCOffsetSeconds != 0 {
		return time.FixedZone(r.Timezone, r.UTCOffsetSeconds)
	}
	return time.UTC
}

// Snapshot is the "current" object: a timestamp plus optional numbers keyed by variable.
type Snapshot struct {
	Time   string
	Fields map[string]*float64
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode current block: %w", err)
	}

	s.Fields = make(map[string]*float64, len(raw))
	for key, msg := range raw {
		if key == "time" {
			_ = json.Unmarshal(msg, &s.Time)
			continue
		}
		var v *float64
		if err := json.Unmarshal(msg, &v); err != nil {
			continue
		}
		s.Fields[key] = v
	}
	return nil
}

// Value returns the first non-null field among keys.
func (s *Snapshot) Value(keys ...string) *float64 {
	if s == nil {
		return nil
	}
	for _, k := range keys {
		if v := s.Fields[k]; v != nil {
			return v
		}
	}
	return nil
}

// Block is an "hourly" or "daily" object: a time axis and optional-number series keyed by
// variable name. Series that are not numeric (for example sunrise strings) are dropped.
type Block struct {
	Time   []string
	Fields map[string][]*float64
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode series block: %w", err)
	}

	b.Fields = make(map[string][]*float64, len(raw))
	for key, msg := range raw {
		if key == "time" {
			if err := json.Unmarshal(msg, &b.Time); err != nil {
				return fmt.Errorf("failed to decode time axis: %w", err)
			}
			continue
		}
		var series []*float64
		if err := json.Unmarshal(msg, &series); err != nil {
			continue
		}
		b.Fields[key] = series
	}
	return nil
}

// Has reports whether any of keys is present as a series.
func (b *Block) Has(keys ...string) bool {
	if b == nil {
		return false
	}
	for _, k := range keys {
		if _, ok := b.Fields[k]; ok {
			return true
		}
	}
	return false
}

// Value returns the first non-null value at index i among keys. Each index is reconciled on
// its own, so a gap in the preferred model is filled from the next one.
func (b *Block) Value(keys []string, i int) *float64 {
	if b == nil || i < 0 {
		return nil
	}
	for _, k := range keys {
		series := b.Fields[k]
		if i < len(series) && series[i] != nil {
			return series[i]
		}
	}
	return nil
}

// Len is the number of time slots in the block.
func (b *Block) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Time)
}

// Times parses the time axis in loc. Unparseable entries become the zero time.
func (b *Block) Times(loc *time.Location) []time.Time {
	if b == nil {
		return nil
	}
	out := make([]time.Time, len(b.Time))
	for i, s := range b.Time {
		if t, err := ParseTime(s, loc); err == nil {
			out[i] = t
		}
	}
	return out
}

// ParseTime reads an hourly ("2006-01-02T15:04") or daily ("2006-01-02") timestamp.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(TimeLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse time %q: %w", s, err)
	}
	return t, nil
}
