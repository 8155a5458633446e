// FILE: lixenwraith/typedenv/validator.go
package typedenv

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Type identifies a conversion contract and is the lookup key into a Registry.
type Type string

// Built-in types
const (
	TypeInt      Type = "int"
	TypeString   Type = "string"
	TypeTime     Type = "datetime"
	TypeDate     Type = "date"
	TypeDuration Type = "duration"
	TypeDict     Type = "dict"
	TypeList     Type = "list"
	TypeBool     Type = "bool"
	TypeFloat    Type = "float"
	TypeURL      Type = "url"
	TypeIP       Type = "ip"
	TypeCIDR     Type = "cidr"
)

const optionalPrefix = "optional-"

// OptionalOf returns the optional variant of t.
func OptionalOf(t Type) Type {
	if t.IsOptional() {
		return t
	}
	return Type(optionalPrefix + string(t))
}

// IsOptional reports whether t names an optional variant.
func (t Type) IsOptional() bool {
	return strings.HasPrefix(string(t), optionalPrefix)
}

// Base strips the optional marker from t.
func (t Type) Base() Type {
	return Type(strings.TrimPrefix(string(t), optionalPrefix))
}

// RawValue is a value as read from a source. Present is false when the key
// exists without a resolvable string.
type RawValue struct {
	Value   string
	Present bool
}

// Raw returns a present RawValue.
func Raw(s string) RawValue {
	return RawValue{Value: s, Present: true}
}

// ConvertFunc converts a raw value into its typed form. A nil result with a
// nil error means the value is absent.
type ConvertFunc func(raw RawValue) (any, error)

// Size limits for network types
const (
	maxIPLength   = 45
	maxCIDRLength = 49
	maxURLLength  = 2048
)

// builtinValidators returns a fresh map of every built-in conversion.
func builtinValidators() map[Type]ConvertFunc {
	m := map[Type]ConvertFunc{
		TypeInt:      required(parseInt),
		TypeString:   required(func(s string) (any, error) { return s, nil }),
		TypeTime:     required(parseDatetime),
		TypeDate:     required(parseDatetime),
		TypeDuration: required(parseSeconds),
		TypeDict:     required(parseDict),
		TypeList:     required(parseList),
		TypeBool:     required(parseBool),
		TypeFloat:    required(parseFloat),
		TypeURL:      required(parseURL),
		TypeIP:       required(parseIP),
		TypeCIDR:     required(parseCIDR),
	}

	base := make([]Type, 0, len(m))
	for t := range m {
		base = append(base, t)
	}
	for _, t := range base {
		m[OptionalOf(t)] = nullable(m[t])
	}

	// A bad optional datetime is treated as unset rather than an error
	lenient := func(raw RawValue) (any, error) {
		v, err := m[TypeTime](raw)
		if err != nil {
			return nil, nil
		}
		return v, nil
	}
	m[OptionalOf(TypeTime)] = lenient
	m[OptionalOf(TypeDate)] = lenient

	return m
}

// required lifts a string parser into a ConvertFunc that rejects absent values.
func required(parse func(string) (any, error)) ConvertFunc {
	return func(raw RawValue) (any, error) {
		if !raw.Present {
			return nil, ErrNilValue
		}
		return parse(raw.Value)
	}
}

// nullable passes absent values through as nil and defers the rest to fn.
func nullable(fn ConvertFunc) ConvertFunc {
	return func(raw RawValue) (any, error) {
		if !raw.Present {
			return nil, nil
		}
		return fn(raw)
	}
}

func parseInt(s string) (any, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid integer %q: %w", s, err)
	}
	return i, nil
}

func parseFloat(s string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid float %q: %w", s, err)
	}
	return f, nil
}

// isoLayouts are tried in order. Layouts without a zone resolve in local time.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04-0700",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-0700",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04",
	"2006-01-02",
	"20060102",
}

// parseDatetime tries ISO-8601 first, then a Unix timestamp in seconds.
func parseDatetime(s string) (any, error) {
	t, isoErr := parseISO(s)
	if isoErr == nil {
		return t, nil
	}

	sec, unixErr := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if unixErr == nil {
		return time.Unix(sec, 0), nil
	}

	return nil, fmt.Errorf("invalid datetime %q: %w", s, errors.Join(isoErr, unixErr))
}

func parseISO(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range isoLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

func parseSeconds(s string) (any, error) {
	sec, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid duration seconds %q: %w", s, err)
	}
	return time.Duration(sec) * time.Second, nil
}

func parseDict(s string) (any, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, fmt.Errorf("invalid JSON object: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("invalid JSON object: got %q", s)
	}
	return m, nil
}

// parseList decodes a JSON array, falling back to a comma split.
func parseList(s string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err == nil {
		if list, ok := v.([]any); ok {
			return list, nil
		}
	}

	parts := strings.Split(s, ",")
	list := make([]any, len(parts))
	for i, p := range parts {
		list[i] = p
	}
	return list, nil
}

// parseBool accepts integers (non-zero is true), then "true"/"false" in any case.
func parseBool(s string) (any, error) {
	trimmed := strings.TrimSpace(s)
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return i != 0, nil
	}

	switch strings.ToLower(trimmed) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return nil, fmt.Errorf("value %q is not a boolean", s)
}

func parseURL(s string) (any, error) {
	if len(s) > maxURLLength {
		return nil, fmt.Errorf("URL too long: %d bytes", len(s))
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	return u, nil
}

func parseIP(s string) (any, error) {
	if len(s) > maxIPLength {
		return nil, fmt.Errorf("invalid IP length: %d", len(s))
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return nil, fmt.Errorf("invalid IP address: %s", s)
	}
	return ip, nil
}

func parseCIDR(s string) (any, error) {
	if len(s) > maxCIDRLength {
		return nil, fmt.Errorf("invalid CIDR length: %d", len(s))
	}
	_, ipnet, err := net.ParseCIDR(s)
	if err != nil {
		return nil, fmt.Errorf("invalid CIDR: %w", err)
	}
	return ipnet, nil
}
