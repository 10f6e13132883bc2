package dispatch

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/tidwall/gjson"
)

// DecodeArguments turns a JSON argument document into the value bag Dispatch
// expects: objects become map[string]any and numbers float64. An empty
// document decodes to nil.
func DecodeArguments(raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(raw) {
		return nil, invalidArguments("Arguments are not valid JSON")
	}
	return gjson.ParseBytes(raw).Value(), nil
}

type args map[string]any

func asArgs(v any) (args, bool) {
	m, ok := v.(map[string]any)
	return args(m), ok
}

// has reports whether key is present and not null.
func (a args) has(key string) bool {
	v, ok := a[key]
	return ok && v != nil
}

func (a args) str(key, def string) (string, error) {
	if !a.has(key) {
		return def, nil
	}
	s, ok := a[key].(string)
	if !ok {
		return "", invalidArguments("Argument '%s' must be a string", key)
	}
	return s, nil
}

func (a args) integer(key string) (int, error) {
	n, ok := toInt(a[key])
	if !ok {
		return 0, invalidArguments("Argument '%s' must be an integer", key)
	}
	return n, nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return fromInt64(n)
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return fromInt64(int64(n))
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return fromInt64(int64(n))
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return fromInt64(int64(n))
	case float32:
		return fromFloat(float64(n))
	case float64:
		return fromFloat(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return fromInt64(i)
	default:
		return 0, false
	}
}

func fromInt64(n int64) (int, bool) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

func fromFloat(f float64) (int, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
