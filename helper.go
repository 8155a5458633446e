// File: lixenwraith/typedenv/helper.go
package typedenv

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"time"
)

// isValidFieldName checks a name is usable as a dotenv/environment key.
// Accepted: ASCII letters, digits, underscores, dashes and dots.
func isValidFieldName(s string) bool {
	if len(s) == 0 {
		return false
	}

	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isPunct := r == '_' || r == '-' || r == '.'

		if !(isLetter || isDigit || isPunct) {
			return false
		}
	}
	return true
}

// stringify renders a decoded TOML/YAML/JSON value as a raw source value.
// Scalars keep their canonical text, tables and arrays become JSON so the
// dict and list validators can read them, nil becomes a non-present value.
func stringify(v any) (RawValue, error) {
	switch val := v.(type) {
	case nil:
		return RawValue{}, nil
	case string:
		return Raw(val), nil
	case bool:
		return Raw(strconv.FormatBool(val)), nil
	case int:
		return Raw(strconv.Itoa(val)), nil
	case int64:
		return Raw(strconv.FormatInt(val, 10)), nil
	case uint64:
		return Raw(strconv.FormatUint(val, 10)), nil
	case float64:
		return Raw(strconv.FormatFloat(val, 'f', -1, 64)), nil
	case json.Number:
		return Raw(val.String()), nil
	case time.Time:
		return Raw(val.Format(time.RFC3339Nano)), nil
	case fmt.Stringer:
		return Raw(val.String()), nil
	}

	// Tables and arrays of any element type, e.g. TOML arrays of tables
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		data, err := json.Marshal(normalize(v))
		if err != nil {
			return RawValue{}, fmt.Errorf("cannot encode %T as JSON: %w", v, err)
		}
		return Raw(string(data)), nil
	}
	return Raw(fmt.Sprintf("%v", v)), nil
}

// normalize converts maps with any key type into map[string]any and typed
// slices into []any so they can be JSON encoded.
func normalize(v any) any {
	switch val := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[fmt.Sprintf("%v", k)] = normalize(item)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = normalize(item)
		}
		return m
	case []any:
		list := make([]any, len(val))
		for i, item := range val {
			list[i] = normalize(item)
		}
		return list
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		list := make([]any, rv.Len())
		for i := range list {
			list[i] = normalize(rv.Index(i).Interface())
		}
		return list
	case reflect.Map:
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[fmt.Sprintf("%v", iter.Key().Interface())] = normalize(iter.Value().Interface())
		}
		return m
	}
	return v
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// describe formats a value for Debug output, quoting strings.
func describe(v any) string {
	if v == nil {
		return "<nil>"
	}
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprintf("%v", v)
}
