package typedenv

import (
	"fmt"
	"net"
	"net/url"
	"reflect"
	"strings"
	"time"
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	urlType      = reflect.TypeOf(url.URL{})
	ipType       = reflect.TypeOf(net.IP{})
	ipNetType    = reflect.TypeOf(net.IPNet{})
)

// TypeTagName overrides the inferred field type, e.g. `envtype:"color"`.
const TypeTagName = "envtype"

// SchemaFromStruct derives a schema from the exported fields of a struct.
//
// The `env` tag names the variable (the Go field name is used when absent,
// "-" skips the field) and accepts an "optional" option. Pointer fields are
// optional. Non-zero field values become defaults and make the field
// optional, since a required field must always come from the source. Types
// are inferred from the Go type unless an `envtype` tag names one.
func SchemaFromStruct(structWithDefaults any) (*Schema, error) {
	v := reflect.ValueOf(structWithDefaults)

	// Handle pointer or direct struct value
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, fmt.Errorf("SchemaFromStruct requires a non-nil struct pointer or value")
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("SchemaFromStruct requires a struct or struct pointer, got %T", structWithDefaults)
	}

	schema := NewSchema()
	var errors []string
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get(TagName)
		if tag == "-" {
			continue // Skip this field
		}

		name := field.Name
		optional := false
		if tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] != "" {
				name = parts[0]
			}
			for _, opt := range parts[1:] {
				if strings.TrimSpace(opt) == "optional" {
					optional = true
				}
			}
		}

		fieldType := field.Type
		if fieldType.Kind() == reflect.Ptr {
			optional = true
			fieldType = fieldType.Elem()
		}

		declared := Type(field.Tag.Get(TypeTagName))
		if declared == "" {
			inferred, err := inferType(fieldType)
			if err != nil {
				errors = append(errors, fmt.Sprintf("field %s: %v", field.Name, err))
				continue
			}
			declared = inferred
		}

		f := Field{Name: name, Type: declared, Optional: optional}
		if !fieldValue.IsZero() {
			f.Default = defaultValue(fieldValue)
			f.HasDefault = true
			f.Optional = true
		}

		if err := schema.Declare(f); err != nil {
			errors = append(errors, fmt.Sprintf("field %s: %v", field.Name, err))
		}
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("%w: failed to declare %d field(s): %s", ErrInvalidSchema, len(errors), strings.Join(errors, "; "))
	}

	return schema, nil
}

// inferType maps a Go type to the built-in type producing compatible values.
func inferType(t reflect.Type) (Type, error) {
	switch t {
	case timeType:
		return TypeTime, nil
	case durationType:
		return TypeDuration, nil
	case urlType:
		return TypeURL, nil
	case ipType:
		return TypeIP, nil
	case ipNetType:
		return TypeCIDR, nil
	}

	switch t.Kind() {
	case reflect.String:
		return TypeString, nil
	case reflect.Bool:
		return TypeBool, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return TypeInt, nil
	case reflect.Float32, reflect.Float64:
		return TypeFloat, nil
	case reflect.Map:
		return TypeDict, nil
	case reflect.Slice, reflect.Array:
		return TypeList, nil
	case reflect.Struct:
		return "", fmt.Errorf("nested struct %s is not supported", t)
	}
	return "", fmt.Errorf("cannot infer type for %s, use the %s tag", t, TypeTagName)
}

// defaultValue converts a struct default into the representation the
// matching validator produces, so Get returns consistent types.
func defaultValue(v reflect.Value) any {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	switch v.Type() {
	case timeType, durationType, ipType:
		return v.Interface()
	case urlType:
		u := v.Interface().(url.URL)
		return &u
	case ipNetType:
		n := v.Interface().(net.IPNet)
		return &n
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return v.Bool()
	}
	return v.Interface()
}
