// FILE: lixenwraith/typedenv/decode.go
package typedenv

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// TagName is the struct tag used by Scan and SchemaFromStruct.
const TagName = "env"

// Scan decodes the loaded values into target, a non-nil pointer to a struct
// or map. Struct fields are matched by their `env` tag, or by name.
// Fields never assigned are left untouched.
func (e *Env) Scan(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be non-nil pointer, got %T", target)
	}

	e.mutex.RLock()
	data := make(map[string]any, len(e.values))
	for name, value := range e.values {
		data[name] = value
	}
	e.mutex.RUnlock()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          TagName,
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return fmt.Errorf("scan into %T failed: %w", target, err)
	}
	return nil
}

// decodeHook covers string values, such as those produced by a custom
// validator, landing in non-string struct fields.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		// Network types
		mapstructure.StringToIPHookFunc(),
		mapstructure.StringToIPNetHookFunc(),

		// Standard hooks
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	)
}
