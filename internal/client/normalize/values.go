package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/courtside/internal/client/models"
)

// object returns raw as a JSON object, or nil.
func object(raw any) map[string]any {
	m, _ := raw.(map[string]any)
	return m
}

// str returns the first non-empty scalar found under keys, as a string.
func str(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := scalar(m[k]); s != "" {
			return s
		}
	}
	return ""
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// id accepts numeric or string identifiers.
func id(m map[string]any, keys ...string) models.ID {
	if len(keys) == 0 {
		keys = []string{"id", "_id"}
	}
	for _, k := range keys {
		switch m[k].(type) {
		case string, float64, json.Number, int, int64:
			if s := scalar(m[k]); s != "" {
				return models.ID(s)
			}
		}
	}
	return ""
}

// integer returns the first numeric value under keys. Numeric strings count.
func integer(m map[string]any, keys ...string) int {
	for _, k := range keys {
		switch t := m[k].(type) {
		case float64:
			if !math.IsNaN(t) && !math.IsInf(t, 0) {
				return int(t)
			}
		case json.Number:
			if n, err := t.Int64(); err == nil {
				return int(n)
			}
		case int:
			return t
		case int64:
			return int(t)
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
				return n
			}
		}
	}
	return 0
}

func number(v any) float64 {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return t
	case json.Number:
		f, _ := t.Float64()
		return f
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f
	}
	return 0
}

// boolean looks for a real boolean under keys. Strings and numbers are not
// interpreted; ok reports whether any key held a boolean.
func boolean(m map[string]any, keys ...string) (value, ok bool) {
	for _, k := range keys {
		if b, isBool := m[k].(bool); isBool {
			return b, true
		}
	}
	return false, false
}

// name resolves a field that may be a bare string or an object carrying
// one of nameKeys.
func name(v any, nameKeys ...string) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return str(object(v), nameKeys...)
}

func list(v any) []any {
	l, _ := v.([]any)
	return l
}

func firstNonNil(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
