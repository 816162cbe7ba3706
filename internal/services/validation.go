package services

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	msgMissingFields = "Missing required fields: id, typeId, amount, createdAt"
	msgInvalidTypes  = "Invalid field types: id must be a string, typeId and amount must be numbers"
	msgTypeIDInteger = "typeId must be an integer"
	msgInvalidUUID   = "Invalid id: must be a valid UUID v4"
	msgInvalidDate   = "Invalid createdAt: must be a valid date-time"
	msgForString     = "for must be a string"
	msgTypeIDNumber  = "typeId must be a number"
	msgAmountNumber  = "amount must be a number"
	msgIDImmutable   = "id cannot be modified"
)

// dateLayouts are tried in order when parsing createdAt. Values without a zone are UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// isFalsy mirrors loose truthiness: absent, null, false, zero, NaN and "" all count as missing.
func isFalsy(v interface{}, present bool) bool {
	if !present || v == nil {
		return true
	}

	switch val := v.(type) {
	case bool:
		return !val
	case string:
		return val == ""
	}

	if f, ok := toFloat64(v); ok {
		return f == 0 || math.IsNaN(f)
	}
	return false
}

func isNumber(v interface{}) bool {
	_, ok := toFloat64(v)
	return ok
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}

	f, ok := toFloat64(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func parseDateTime(v interface{}) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}

	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// parseUUIDv4 accepts only the canonical 8-4-4-4-12 form of an RFC 4122 version 4 UUID.
func parseUUIDv4(s string) (uuid.UUID, bool) {
	if len(s) != 36 {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}

	if id.Version() != 4 || id.Variant() != uuid.RFC4122 {
		return uuid.Nil, false
	}
	return id, true
}
