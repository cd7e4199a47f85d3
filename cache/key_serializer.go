package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// KeySeparator delimits cache key segments.
const KeySeparator = "::"

// defaultKeySerializer derives keys from the operation name followed by each
// parameter in declaration order. Keys are stable across runs for the value
// kinds that occur in query parameters: strings, integers, booleans,
// pointers and slices thereof. Strings are lowercased so queries that differ
// only in case share an entry, matching the case-insensitive filter
// semantics.
type defaultKeySerializer struct{}

// NewDefaultKeySerializer creates the default key serializer.
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{}
}

func (s *defaultKeySerializer) SerializeKey(operation string, args ...any) string {
	if len(args) == 0 {
		return operation
	}

	parts := make([]string, 0, len(args)+1)
	parts = append(parts, operation)
	for _, arg := range args {
		parts = append(parts, s.serializeValue(arg))
	}
	return strings.Join(parts, KeySeparator)
}

func (s *defaultKeySerializer) serializeValue(v any) string {
	if v == nil {
		return "nil"
	}

	if str, ok := v.(string); ok {
		return strings.ToLower(str)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return "nil"
		}
		return s.serializeValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return "slice:nil"
		}
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = s.serializeValue(rv.Index(i).Interface())
		}
		return fmt.Sprintf("slice[%d]:{%s}", len(parts), strings.Join(parts, ","))
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return fmt.Sprintf("%v", v)
	}

	// Structs and anything else fall back to JSON, which is deterministic
	// for the exported-field value types used as query parameters.
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("fallback:%s", reflect.TypeOf(v).String())
	}
	return fmt.Sprintf("json:%s", data)
}
