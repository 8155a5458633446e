// File: lixenwraith/typedenv/type.go
package typedenv

import (
	"fmt"
	"net"
	"net/url"
	"reflect"
	"strconv"
	"time"
)

// value fetches a field value, distinguishing undeclared and unassigned fields.
func (e *Env) value(name string) (any, error) {
	field, declared := e.schema.Lookup(name)
	if !declared {
		return nil, fieldError(ErrUnknownField, name, "", nil)
	}
	v, ok := e.Get(name)
	if !ok {
		return nil, fieldError(ErrNotLoaded, name, field.Type, nil)
	}
	return v, nil
}

// String retrieves a string value. Non-string values are formatted.
// A nil value yields the empty string.
func (e *Env) String(name string) (string, error) {
	val, err := e.value(name)
	if err != nil {
		return "", err
	}
	if val == nil {
		return "", nil
	}

	switch v := val.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case []byte:
		return string(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

// Int64 retrieves an integer value, converting from other numeric kinds.
func (e *Env) Int64(name string) (int64, error) {
	val, err := e.value(name)
	if err != nil {
		return 0, err
	}
	if val == nil {
		return 0, fmt.Errorf("value for %s is nil, cannot convert to int64", name)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > uint64(^uint64(0)>>1) {
			return 0, fmt.Errorf("cannot convert %d (type %T) to int64 for %s: overflow", u, val, name)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return int64(v.Float()), nil
	}

	return 0, fmt.Errorf("cannot convert type %T to int64 for %s", val, name)
}

// Int retrieves an integer value as int.
func (e *Env) Int(name string) (int, error) {
	i, err := e.Int64(name)
	return int(i), err
}

// Bool retrieves a boolean value.
func (e *Env) Bool(name string) (bool, error) {
	val, err := e.value(name)
	if err != nil {
		return false, err
	}
	if b, ok := val.(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("cannot convert type %T to bool for %s", val, name)
}

// Float64 retrieves a floating point value, converting from integers.
func (e *Env) Float64(name string) (float64, error) {
	val, err := e.value(name)
	if err != nil {
		return 0, err
	}

	switch v := val.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("cannot convert type %T to float64 for %s", val, name)
}

// Time retrieves a datetime value.
func (e *Env) Time(name string) (time.Time, error) {
	val, err := e.value(name)
	if err != nil {
		return time.Time{}, err
	}
	if t, ok := val.(time.Time); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("cannot convert type %T to time.Time for %s", val, name)
}

// Duration retrieves a duration value.
func (e *Env) Duration(name string) (time.Duration, error) {
	val, err := e.value(name)
	if err != nil {
		return 0, err
	}
	if d, ok := val.(time.Duration); ok {
		return d, nil
	}
	return 0, fmt.Errorf("cannot convert type %T to time.Duration for %s", val, name)
}

// Map retrieves a dictionary value.
func (e *Env) Map(name string) (map[string]any, error) {
	val, err := e.value(name)
	if err != nil {
		return nil, err
	}
	if m, ok := val.(map[string]any); ok || val == nil {
		return m, nil
	}
	return nil, fmt.Errorf("cannot convert type %T to map for %s", val, name)
}

// List retrieves a list value.
func (e *Env) List(name string) ([]any, error) {
	val, err := e.value(name)
	if err != nil {
		return nil, err
	}
	if l, ok := val.([]any); ok || val == nil {
		return l, nil
	}
	return nil, fmt.Errorf("cannot convert type %T to list for %s", val, name)
}

// URL retrieves a URL value.
func (e *Env) URL(name string) (*url.URL, error) {
	val, err := e.value(name)
	if err != nil {
		return nil, err
	}
	if u, ok := val.(*url.URL); ok || val == nil {
		return u, nil
	}
	return nil, fmt.Errorf("cannot convert type %T to *url.URL for %s", val, name)
}

// IP retrieves an IP address value.
func (e *Env) IP(name string) (net.IP, error) {
	val, err := e.value(name)
	if err != nil {
		return nil, err
	}
	if ip, ok := val.(net.IP); ok || val == nil {
		return ip, nil
	}
	return nil, fmt.Errorf("cannot convert type %T to net.IP for %s", val, name)
}
