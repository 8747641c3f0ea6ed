package signal

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/seiskit/seiskit/errors"
)

// Options is the configuration mapping forwarded verbatim from
// registration time to every invocation of a transform.
type Options map[string]any

// Float returns the named option as a float64, tolerating integer and
// string representations. Returns def when the option is absent or cannot
// be converted.
func (o Options) Float(key string, def float64) float64 {
	v, ok := o[key]
	if !ok {
		return def
	}
	f, err := toFloat(v)
	if err != nil {
		return def
	}
	return f
}

// RequireFloat returns the named option as a float64 or a registration
// error when it is absent or malformed.
func (o Options) RequireFloat(key string) (float64, error) {
	v, ok := o[key]
	if !ok {
		return 0, errors.New(errors.ErrCodeRegistration, fmt.Sprintf("missing required option %q", key))
	}
	f, err := toFloat(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeRegistration, fmt.Sprintf("option %q: %v", key, err))
	}
	return f, nil
}

// Int returns the named option as an int, tolerating float and string
// representations. Returns def when absent or malformed.
func (o Options) Int(key string, def int) int {
	f := o.Float(key, float64(def))
	return int(f)
}

// RequireInt returns the named option as an int or a registration error.
func (o Options) RequireInt(key string) (int, error) {
	f, err := o.RequireFloat(key)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// Time returns the named option as a time.Time. Accepts time.Time values
// and RFC 3339 strings.
func (o Options) Time(key string) (time.Time, bool) {
	v, ok := o[key]
	if !ok {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}

// String renders the options deterministically for provenance records,
// e.g. "{factor: 2, width: 100}".
func (o Options) String() string {
	if len(o) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", k, o[k])
	}
	b.WriteByte('}')
	return b.String()
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as number", n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", v)
	}
}
