// Package normalize maps the JSON payloads of the remote collaborators onto
// the fixed view models in package models. Every optional field falls back to
// a documented default; only a payload that is not a JSON object is rejected.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/hoanghai1803/newshub/internal/provider"
)

// object is one decoded JSON object with defaulting accessors.
type object map[string]any

// decode parses raw as a JSON object. Anything else is a malformed failure
// attributed to variant.
func decode(raw []byte, variant string) (object, error) {
	var o map[string]any
	if err := json.Unmarshal(raw, &o); err != nil || o == nil {
		return nil, &provider.Failure{
			Class:     provider.ClassMalformed,
			Operation: variant,
			Message:   "response is not a JSON object",
			Err:       err,
		}
	}
	return object(o), nil
}

// str returns the value at key when it is a non-empty string.
func (o object) str(key string) (string, bool) {
	s, ok := o[key].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func (o object) strOr(key, def string) string {
	if s, ok := o.str(key); ok {
		return s
	}
	return def
}

// num returns the value at key when it is a JSON number or a numeric string.
// A trailing percent sign is accepted, so "62.5%" yields 62.5. NaN and
// infinities count as absent.
func (o object) num(key string) (float64, bool) {
	var f float64
	switch v := o[key].(type) {
	case float64:
		f = v
	case string:
		s := strings.TrimSuffix(strings.TrimSpace(v), "%")
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func (o object) numOr(key string, def float64) float64 {
	if f, ok := o.num(key); ok {
		return f
	}
	return def
}

func (o object) intOr(key string, def int) int {
	f, ok := o.num(key)
	switch {
	case !ok:
		return def
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}

func (o object) obj(key string) (object, bool) {
	m, ok := o[key].(map[string]any)
	if !ok {
		return nil, false
	}
	return object(m), true
}

// stringList returns the string elements of the array at key. Non-string
// elements are skipped and a missing array yields an empty, non-nil slice.
func (o object) stringList(key string) []string {
	out := []string{}
	arr, ok := o[key].([]any)
	if !ok {
		return out
	}
	for _, v := range arr {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// list returns the object elements of the array at key.
func (o object) list(key string) []object {
	arr, ok := o[key].([]any)
	if !ok {
		return nil
	}
	out := make([]object, 0, len(arr))
	for _, v := range arr {
		if m, ok := v.(map[string]any); ok {
			out = append(out, object(m))
		}
	}
	return out
}
