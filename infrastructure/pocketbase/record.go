package pocketbase

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Record is a raw remote record as decoded from JSON.
type Record map[string]any

// Layouts accepted for date fields, PocketBase's own first.
var dateLayouts = []string{
	"2006-01-02 15:04:05.000Z",
	"2006-01-02 15:04:05Z",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (r Record) ID() string {
	return r.String("id")
}

// String returns the trimmed string value of key, or "" when absent.
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func (r Record) Has(key string) bool {
	return r.String(key) != ""
}

func (r Record) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	case float64:
		return v != 0
	default:
		return false
	}
}

// Float returns the numeric value of key; ok is false when absent or empty.
func (r Record) Float(key string) (float64, bool, error) {
	switch v := r[key].(type) {
	case nil:
		return 0, false, nil
	case float64:
		return v, true, nil
	case int:
		return float64(v), true, nil
	case json.Number:
		f, err := v.Float64()
		return f, err == nil, err
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false, nil
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil {
			return 0, false, fmt.Errorf("field %s: %w", key, err)
		}
		return f, true, nil
	default:
		return 0, false, fmt.Errorf("field %s: unexpected type %T", key, v)
	}
}

func (r Record) Int(key string) (int, bool, error) {
	f, ok, err := r.Float(key)
	if err != nil || !ok {
		return 0, ok, err
	}
	return int(f), true, nil
}

// Time parses a date field. ok is false when the field is absent or empty.
func (r Record) Time(key string) (time.Time, bool, error) {
	s := r.String(key)
	if s == "" {
		return time.Time{}, false, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("field %s: unparseable date %q", key, s)
}

// Raw exposes the undecoded value, used for fields that may arrive as list or string.
func (r Record) Raw(key string) any {
	return r[key]
}
