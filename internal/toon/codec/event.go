package codec

// EventKind tags one step of the streaming event bridge (spec 6): a
// TOON document and a JSON document both reduce to the same sequence
// of these events, which is the boundary contract a streaming adapter
// sits behind.
type EventKind int

const (
	EventStartObject EventKind = iota
	EventEndObject
	EventStartArray
	EventEndArray
	EventKey
	EventPrimitive
)

func (k EventKind) String() string {
	switch k {
	case EventStartObject:
		return "StartObject"
	case EventEndObject:
		return "EndObject"
	case EventStartArray:
		return "StartArray"
	case EventEndArray:
		return "EndArray"
	case EventKey:
		return "Key"
	case EventPrimitive:
		return "Primitive"
	default:
		return "Unknown"
	}
}

// Event is one step of the bridge. Key carries the field name in Key
// and whether that name required quoting in WasQuoted (spec 4.1, 6);
// Primitive carries the scalar in Value.
type Event struct {
	Kind      EventKind
	Key       string
	WasQuoted bool
	Value     Value
}

// EventsOf reduces v to its event sequence in document order.
func EventsOf(v Value) []Event {
	var events []Event
	appendValueEvents(&events, v)
	return events
}

func appendValueEvents(events *[]Event, v Value) {
	switch v.Kind() {
	case KindObject:
		*events = append(*events, Event{Kind: EventStartObject})
		for _, f := range v.Object().Fields {
			*events = append(*events, Event{Kind: EventKey, Key: f.Key, WasQuoted: !IsBareIdentifier(f.Key)})
			appendValueEvents(events, f.Value)
		}
		*events = append(*events, Event{Kind: EventEndObject})
	case KindArray:
		*events = append(*events, Event{Kind: EventStartArray})
		for _, item := range v.Array() {
			appendValueEvents(events, item)
		}
		*events = append(*events, Event{Kind: EventEndArray})
	default:
		*events = append(*events, Event{Kind: EventPrimitive, Value: v})
	}
}

// ValueOfEvents replays an event sequence back into a Value, checking
// that every Start is matched by the corresponding End and that a Key
// is never seen outside an object scope (spec 6: StructureError on an
// unbalanced or out-of-place event stream).
func ValueOfEvents(events []Event) (Value, error) {
	pos := 0
	v, err := buildValue(events, &pos)
	if err != nil {
		return Value{}, err
	}
	if pos != len(events) {
		return Value{}, newDecodeError(StructureError, 0, 0, "trailing events after a complete value")
	}
	return v, nil
}

func buildValue(events []Event, pos *int) (Value, error) {
	if *pos >= len(events) {
		return Value{}, newDecodeError(StructureError, 0, 0, "unexpected end of event stream")
	}
	ev := events[*pos]
	switch ev.Kind {
	case EventPrimitive:
		*pos++
		return ev.Value, nil
	case EventStartArray:
		*pos++
		var items []Value
		for {
			if *pos >= len(events) {
				return Value{}, newDecodeError(StructureError, 0, 0, "unterminated array in event stream")
			}
			if events[*pos].Kind == EventEndArray {
				*pos++
				return ArrayFrom(items), nil
			}
			item, err := buildValue(events, pos)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
	case EventStartObject:
		*pos++
		var fields []Field
		for {
			if *pos >= len(events) {
				return Value{}, newDecodeError(StructureError, 0, 0, "unterminated object in event stream")
			}
			if events[*pos].Kind == EventEndObject {
				*pos++
				return ObjectValue(Object{Fields: fields}), nil
			}
			keyEv := events[*pos]
			if keyEv.Kind != EventKey {
				return Value{}, newDecodeError(StructureError, 0, 0, "expected a Key event inside an object")
			}
			*pos++
			fieldVal, err := buildValue(events, pos)
			if err != nil {
				return Value{}, err
			}
			fields = append(fields, Field{Key: keyEv.Key, Value: fieldVal})
		}
	default:
		return Value{}, newDecodeError(StructureError, 0, 0, "unexpected event kind at start of value")
	}
}

// EventsToJSONText renders an event sequence directly as JSON text,
// without reconstructing an intermediate Value tree — the shape a
// streaming sink would want (spec 6).
func EventsToJSONText(events []Event) (string, error) {
	var buf []byte
	pos := 0
	var err error
	buf, pos, err = writeJSONEvent(buf, events, pos)
	if err != nil {
		return "", err
	}
	if pos != len(events) {
		return "", newDecodeError(StructureError, 0, 0, "trailing events after a complete value")
	}
	return string(buf), nil
}

func writeJSONEvent(buf []byte, events []Event, pos int) ([]byte, int, error) {
	if pos >= len(events) {
		return buf, pos, newDecodeError(StructureError, 0, 0, "unexpected end of event stream")
	}
	ev := events[pos]
	switch ev.Kind {
	case EventPrimitive:
		return append(buf, scalarJSON(ev.Value)...), pos + 1, nil
	case EventStartArray:
		buf = append(buf, '[')
		pos++
		first := true
		for {
			if pos >= len(events) {
				return buf, pos, newDecodeError(StructureError, 0, 0, "unterminated array in event stream")
			}
			if events[pos].Kind == EventEndArray {
				return append(buf, ']'), pos + 1, nil
			}
			if !first {
				buf = append(buf, ',')
			}
			first = false
			var err error
			buf, pos, err = writeJSONEvent(buf, events, pos)
			if err != nil {
				return buf, pos, err
			}
		}
	case EventStartObject:
		buf = append(buf, '{')
		pos++
		first := true
		for {
			if pos >= len(events) {
				return buf, pos, newDecodeError(StructureError, 0, 0, "unterminated object in event stream")
			}
			if events[pos].Kind == EventEndObject {
				return append(buf, '}'), pos + 1, nil
			}
			if events[pos].Kind != EventKey {
				return buf, pos, newDecodeError(StructureError, 0, 0, "expected a Key event inside an object")
			}
			if !first {
				buf = append(buf, ',')
			}
			first = false
			buf = append(buf, QuoteString(events[pos].Key)...)
			buf = append(buf, ':')
			pos++
			var err error
			buf, pos, err = writeJSONEvent(buf, events, pos)
			if err != nil {
				return buf, pos, err
			}
		}
	default:
		return buf, pos, newDecodeError(StructureError, 0, 0, "unexpected event kind at start of value")
	}
}

func scalarJSON(v Value) string {
	switch v.Kind() {
	case KindNull:
		return "null"
	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case KindNumber:
		return FormatNumber(v.Number())
	case KindString:
		return QuoteString(v.String())
	default:
		return "null"
	}
}
