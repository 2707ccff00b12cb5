package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// RawRecord is one undecoded session line from the log.
type RawRecord map[string]any

// RawLog is what a session store hands to the normalizer.
type RawLog struct {
	Records []RawRecord
	// CorruptLines holds 1-based line numbers that were not valid JSON objects.
	CorruptLines []int
}

// Rejection explains why a raw record did not survive normalization.
type Rejection struct {
	Index  int
	ID     string
	Reason string
}

type Normalized struct {
	Records  []Record
	Rejected []Rejection
}

// Timed returns the subset with a parsed timestamp, in input order.
func (n Normalized) Timed() []Record {
	out := make([]Record, 0, len(n.Records))
	for _, r := range n.Records {
		if r.HasTimestamp {
			out = append(out, r)
		}
	}
	return out
}

// Accepted timestamp encodings, tried in order. Day, month and hour fields
// accept a single digit, matching the older records written by hand.
var TimestampLayouts = []string{
	"2006-1-2 15:04:05",
	"2006-1-2 15:04:05.999999",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
}

var (
	subjectKeys  = []string{"materia", "subject"}
	durationKeys = []string{"durata", "duration_minutes", "duration"}
	noteKeys     = []string{"note", "topic_note", "note_argomento"}
)

// Normalize validates raw records in order. Records missing id, user, subject
// or duration, or with an unparseable or non-positive duration, are rejected.
// Duplicate ids for the same user keep the first occurrence. An unparseable
// timestamp does not reject the record; it only clears HasTimestamp.
// Timestamps without a zone are interpreted in loc.
func Normalize(raw []RawRecord, loc *time.Location) Normalized {
	if loc == nil {
		loc = time.Local
	}
	out := Normalized{Records: make([]Record, 0, len(raw))}
	seen := map[string]map[int]struct{}{}

	for i, rec := range raw {
		reject := func(id, reason string) {
			out.Rejected = append(out.Rejected, Rejection{Index: i, ID: id, Reason: reason})
		}
		idValue, ok := lookup(rec, "id")
		if !ok {
			reject("", "missing id")
			continue
		}
		idText := fmt.Sprint(idValue)
		id, err := parseID(idValue)
		if err != nil {
			reject(idText, err.Error())
			continue
		}
		user, ok := lookupString(rec, "user")
		if !ok {
			reject(idText, "missing user")
			continue
		}
		subject, ok := lookupString(rec, subjectKeys...)
		if !ok {
			reject(idText, "missing subject")
			continue
		}
		durValue, ok := lookup(rec, durationKeys...)
		if !ok {
			reject(idText, "missing duration")
			continue
		}
		minutes, err := ParseDuration(durValue)
		if err != nil {
			reject(idText, err.Error())
			continue
		}
		if seen[user] == nil {
			seen[user] = map[int]struct{}{}
		}
		if _, dup := seen[user][id]; dup {
			reject(idText, "duplicate id")
			continue
		}
		seen[user][id] = struct{}{}

		record := Record{ID: id, User: user, Subject: subject, DurationMin: minutes}
		if ts, ok := lookupString(rec, "timestamp"); ok {
			record.RawTimestamp = ts
			record.Timestamp, record.HasTimestamp = ParseTimestamp(ts, loc)
		}
		if note, ok := lookupString(rec, noteKeys...); ok {
			record.Note = note
		}
		out.Records = append(out.Records, record)
	}
	return out
}

// ParseTimestamp tries TimestampLayouts in order; the first match wins.
func ParseTimestamp(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range TimestampLayouts {
		if ts, err := time.ParseInLocation(layout, value, loc); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ParseDuration converts a stored duration into minutes. It accepts numbers,
// numeric strings and clock strings "H:MM:SS" or "MM:SS". Zero, negative and
// non-finite values are errors; values under one minute are raised to one.
func ParseDuration(value any) (float64, error) {
	var minutes float64
	switch v := value.(type) {
	case float64:
		minutes = v
	case float32:
		minutes = float64(v)
	case int:
		minutes = float64(v)
	case int64:
		minutes = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", v.String())
		}
		minutes = f
	case string:
		f, err := parseDurationText(v)
		if err != nil {
			return 0, err
		}
		minutes = f
	default:
		return 0, fmt.Errorf("invalid duration type %T", value)
	}
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return 0, fmt.Errorf("invalid duration %v", minutes)
	}
	if minutes <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %v", minutes)
	}
	if minutes < 1 {
		minutes = 1
	}
	return minutes, nil
}

func parseDurationText(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if !strings.Contains(text, ":") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", text)
		}
		return f, nil
	}
	parts := strings.Split(text, ":")
	nums := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || f < 0 {
			return 0, fmt.Errorf("invalid duration %q", text)
		}
		nums[i] = f
	}
	switch len(nums) {
	case 3:
		return nums[0]*60 + nums[1] + nums[2]/60, nil
	case 2:
		return nums[0] + nums[1]/60, nil
	default:
		return 0, fmt.Errorf("invalid duration %q", text)
	}
}

func parseID(value any) (int, error) {
	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("invalid id %v", v)
		}
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case json.Number:
		n, err := strconv.Atoi(v.String())
		if err != nil {
			return 0, fmt.Errorf("invalid id %q", v.String())
		}
		return n, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("invalid id %q", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("invalid id type %T", value)
	}
}

// MaxID returns the highest parseable id across raw records, or 0.
func MaxID(raw []RawRecord) int {
	maxID := 0
	for _, rec := range raw {
		v, ok := lookup(rec, "id")
		if !ok {
			continue
		}
		if id, err := parseID(v); err == nil && id > maxID {
			maxID = id
		}
	}
	return maxID
}

func lookup(rec RawRecord, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func lookupString(rec RawRecord, keys ...string) (string, bool) {
	v, ok := lookup(rec, keys...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}
