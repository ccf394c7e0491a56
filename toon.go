// Package toon implements Tabular Object Oriented Notation: a compact,
// indentation-structured serialization format for the JSON data model
// (spec.md). It wraps internal/toon/codec's Value/Marshal/Unmarshal with
// a JSON bridge and reflection-based Go struct (de)serialization, the
// same two-layer shape the teacher used for its document formats: a
// small internal codec package plus a friendly root-level API.
package toon

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/madstone-tech/toon/internal/toon/codec"
)

// Re-export the option and error types callers need, so importers never
// have to reach into internal/toon/codec directly.
type (
	EncoderOption = codec.EncoderOption
	DecoderOption = codec.DecoderOption
	Delimiter     = codec.Delimiter
	KeyFoldMode   = codec.KeyFoldMode
	DecodeError   = codec.DecodeError
	ErrorKind     = codec.ErrorKind
	Value         = codec.Value
	Event         = codec.Event
)

const (
	DelimiterComma = codec.DelimiterComma
	DelimiterTab   = codec.DelimiterTab
	DelimiterPipe  = codec.DelimiterPipe
)

const (
	Off  = codec.Off
	Safe = codec.Safe
)

var (
	WithIndent        = codec.WithIndent
	WithDelimiter     = codec.WithDelimiter
	WithKeyFolding    = codec.WithKeyFolding
	WithFlattenDepth  = codec.WithFlattenDepth
	WithReplacer      = codec.WithReplacer
	WithLengthMarkers = codec.WithLengthMarkers
	WithDecoderIndent = codec.WithDecoderIndent
	WithStrict        = codec.WithStrict
	WithExpandPaths   = codec.WithExpandPaths
)

// Encode renders a JSON-compatible Go value (the result of
// json.Unmarshal into any, or a value built by hand from
// map[string]any/[]any/scalars) as TOON text.
func Encode(value any, opts ...EncoderOption) ([]byte, error) {
	v, err := valueFromAny(value)
	if err != nil {
		return nil, err
	}
	return codec.Marshal(v, opts...)
}

// Decode parses TOON text into a JSON-compatible Go value
// (map[string]any, []any, string, float64, bool, or nil), the same
// shape encoding/json produces when unmarshaling into any.
func Decode(src string, opts ...DecoderOption) (any, error) {
	v, err := codec.Unmarshal(src, opts...)
	if err != nil {
		return nil, err
	}
	return anyFromValue(v), nil
}

// TryDecode parses src and, on failure, returns the diagnostic instead
// of a Go error, for use by a linter or validator that wants structured
// Line/Column/Kind information. The underlying parser stops at the
// first structural problem it finds, so the returned slice currently
// holds at most one DecodeError, not every problem in the document.
func TryDecode(src string, opts ...DecoderOption) (any, []*DecodeError) {
	v, err := codec.Unmarshal(src, opts...)
	if err != nil {
		if de, ok := err.(*codec.DecodeError); ok {
			return nil, []*DecodeError{de}
		}
		return nil, []*DecodeError{{Cause: err.Error()}}
	}
	return anyFromValue(v), nil
}

// EncodeStreamEvents reduces a JSON-compatible Go value to the
// streaming event sequence described in spec.md §6, the boundary a
// streaming TOON writer sits behind.
func EncodeStreamEvents(value any) ([]Event, error) {
	v, err := valueFromAny(value)
	if err != nil {
		return nil, err
	}
	return codec.EventsOf(v), nil
}

// DecodeStreamSync parses TOON text and replays it as the same event
// sequence EncodeStreamEvents would produce from the decoded value.
func DecodeStreamSync(src string, opts ...DecoderOption) ([]Event, error) {
	v, err := codec.Unmarshal(src, opts...)
	if err != nil {
		return nil, err
	}
	return codec.EventsOf(v), nil
}

// ValueOfEvents rebuilds a JSON-compatible Go value from an event
// sequence, the inverse of EncodeStreamEvents.
func ValueOfEvents(events []Event) (any, error) {
	v, err := codec.ValueOfEvents(events)
	if err != nil {
		return nil, err
	}
	return anyFromValue(v), nil
}

// EventsToJSONText renders an event sequence directly as JSON text,
// skipping the intermediate Go value.
func EventsToJSONText(events []Event) (string, error) {
	return codec.EventsToJSONText(events)
}

// Marshal encodes a Go struct (or any value encoding/json can marshal)
// as TOON text by round-tripping it through JSON first, so struct tags,
// omitempty, and custom json.Marshalers behave exactly as they do for
// encoding/json callers.
func Marshal(v any, opts ...EncoderOption) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("toon: marshal to JSON: %w", err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("toon: re-decode JSON: %w", err)
	}
	return Encode(generic, opts...)
}

// Unmarshal decodes TOON text into v by converting the parsed document
// to JSON text and delegating to encoding/json.Unmarshal, so destination
// structs use ordinary `json` tags.
func Unmarshal(src string, v any, opts ...DecoderOption) error {
	value, err := codec.Unmarshal(src, opts...)
	if err != nil {
		return err
	}
	events := codec.EventsOf(value)
	jsonText, err := codec.EventsToJSONText(events)
	if err != nil {
		return fmt.Errorf("toon: re-encode JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(jsonText), v); err != nil {
		return fmt.Errorf("toon: decode into target: %w", err)
	}
	return nil
}

// valueFromAny converts a JSON-compatible Go value into a codec.Value.
// Accepted shapes mirror what encoding/json produces when unmarshaling
// into `any`: map[string]any, []any, string, float64 (also the other
// numeric kinds, for convenience), bool, and nil. A map's fields are
// taken in sorted key order, the order encoding/json writes map keys in.
func valueFromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return codec.Null(), nil
	case Value:
		return x, nil
	case bool:
		return codec.Bool(x), nil
	case string:
		return codec.String(x), nil
	case float64:
		return codec.Number(x), nil
	case float32:
		return codec.Number(float64(x)), nil
	case int:
		return codec.Number(float64(x)), nil
	case int64:
		return codec.Number(float64(x)), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]codec.Field, 0, len(x))
		for _, k := range keys {
			cv, err := valueFromAny(x[k])
			if err != nil {
				return Value{}, err
			}
			fields = append(fields, codec.Field{Key: k, Value: cv})
		}
		return codec.ObjectValue(codec.NewObject(fields...)), nil
	case []any:
		items := make([]Value, 0, len(x))
		for _, ev := range x {
			cv, err := valueFromAny(ev)
			if err != nil {
				return Value{}, err
			}
			items = append(items, cv)
		}
		return codec.ArrayFrom(items), nil
	default:
		// Fall back through JSON for any other concrete type (structs,
		// typed slices/maps, custom Marshalers).
		data, err := json.Marshal(x)
		if err != nil {
			return Value{}, fmt.Errorf("toon: unsupported value of type %T: %w", x, err)
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return Value{}, fmt.Errorf("toon: unsupported value of type %T: %w", x, err)
		}
		return valueFromAny(generic)
	}
}

// anyFromValue converts a codec.Value into the JSON-compatible Go shape
// encoding/json would have produced for the equivalent document.
func anyFromValue(v Value) any {
	switch v.Kind() {
	case codec.KindNull:
		return nil
	case codec.KindBool:
		return v.Bool()
	case codec.KindNumber:
		return v.Number()
	case codec.KindString:
		return v.String()
	case codec.KindArray:
		items := v.Array()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = anyFromValue(item)
		}
		return out
	case codec.KindObject:
		obj := v.Object()
		out := make(map[string]any, len(obj.Fields))
		for _, f := range obj.Fields {
			out[f.Key] = anyFromValue(f.Value)
		}
		return out
	default:
		return nil
	}
}
