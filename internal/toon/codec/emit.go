package codec

import (
	"strconv"
	"strings"
)

// Marshal renders v into TOON text (spec 4.3). The encoder cannot fail
// on a well-formed Value; non-finite numbers never reach this stage
// because Number() already folds them to null at construction time.
func Marshal(v Value, opts ...EncoderOption) ([]byte, error) {
	cfg := DefaultEncodeOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Replacer != nil {
		v = cfg.Replacer(v)
	}
	if cfg.KeyFolding == Safe && v.Kind() == KindObject {
		v = ObjectValue(Fold(v.Object(), Safe, cfg.FlattenDepth))
	}
	st := &emitState{cfg: cfg}
	st.emitRoot(v)
	return []byte(strings.Join(st.lines, "\n")), nil
}

func MarshalString(v Value, opts ...EncoderOption) (string, error) {
	data, err := Marshal(v, opts...)
	return string(data), err
}

type emitState struct {
	cfg   EncodeOptions
	lines []string
}

func (s *emitState) emit(line string) { s.lines = append(s.lines, line) }

func (s *emitState) indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(" ", depth*s.cfg.Indent)
}

func (s *emitState) emitRoot(v Value) {
	switch v.Kind() {
	case KindObject:
		s.emitObjectFields(v.Object(), 0)
	case KindArray:
		s.emitArray("", v.Array(), 0, true)
	default:
		s.emit(s.scalarToken(v, false))
	}
}

func (s *emitState) scalarToken(v Value, inArray bool) string {
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
		str := v.String()
		if NeedsQuoting(str, s.cfg.Delimiter) {
			return QuoteString(str)
		}
		return str
	default:
		return "null"
	}
}

func (s *emitState) encodeKey(key string) string {
	if IsBareIdentifier(key) || (s.cfg.KeyFolding == Safe && IsBareKeyPath(key)) {
		return key
	}
	return QuoteString(key)
}

func (s *emitState) emitObjectFields(obj Object, depth int) {
	indent := s.indent(depth)
	for _, f := range obj.Fields {
		key := s.encodeKey(f.Key)
		switch f.Value.Kind() {
		case KindArray:
			s.emitArray(key, f.Value.Array(), depth, false)
		case KindObject:
			if f.Value.Object().IsEmpty() {
				s.emit(indent + key + ": {}")
				continue
			}
			s.emit(indent + key + ":")
			s.emitObjectFields(f.Value.Object(), depth+1)
		default:
			s.emit(indent + key + ": " + s.scalarToken(f.Value, false))
		}
	}
}

// header renders a KEY "[" LEN "]" ("{" COLS "}")? ":" token (spec 4.2).
// A non-default delimiter is declared once, inside the brackets right
// after the length, so the parser knows how to split both the inline
// column list and the rows/values that follow.
func (s *emitState) header(key string, length int, columns []string) string {
	var b strings.Builder
	b.WriteString(key)
	b.WriteByte('[')
	if s.cfg.LengthMarkers {
		b.WriteByte('#')
	}
	b.WriteString(strconv.Itoa(length))
	if s.cfg.Delimiter != DelimiterComma {
		b.WriteRune(s.cfg.Delimiter.Rune())
	}
	b.WriteByte(']')
	if len(columns) > 0 {
		b.WriteByte('{')
		for i, col := range columns {
			if i > 0 {
				b.WriteRune(s.cfg.Delimiter.Rune())
			}
			b.WriteString(s.encodeKey(col))
		}
		b.WriteByte('}')
	}
	b.WriteByte(':')
	return b.String()
}

// emitArray renders values at depth, keyed by key ("" for an anonymous
// array inside a list item). root indicates this is the document root.
func (s *emitState) emitArray(key string, values []Value, depth int, root bool) {
	indent := s.indent(depth)
	if len(values) == 0 {
		if key == "" {
			s.emit(indent + "[]")
		} else {
			s.emit(indent + key + ": []")
		}
		return
	}

	if IsScalarArray(values) {
		header := s.header(key, len(values), nil)
		tokens := make([]string, len(values))
		for i, v := range values {
			tokens[i] = s.scalarToken(v, true)
		}
		s.emit(indent + header + " " + strings.Join(tokens, string(s.cfg.Delimiter.Rune())))
		return
	}

	if columns, ok := DetectTabular(values); ok {
		header := s.header(key, len(values), columns)
		s.emit(indent + header)
		for _, row := range values {
			cells := RowCells(row.Object(), columns)
			tokens := make([]string, len(cells))
			for i, c := range cells {
				tokens[i] = s.scalarToken(c, true)
			}
			s.emit(s.indent(depth+1) + strings.Join(tokens, string(s.cfg.Delimiter.Rune())))
		}
		return
	}

	header := s.header(key, len(values), nil)
	s.emit(indent + header)
	for _, item := range values {
		s.emitListItem(item, depth+1)
	}
}

// emitListItem renders one element of a list-form array at depth. A
// scalar or an empty container stays on a single "- " line; any other
// object or array is unambiguous only if its own fields/elements start
// on their own lines, so it gets a bare "-" marker line followed by the
// full nested content at depth+1. Inlining part of a multi-field object
// onto the dash line itself would make that line's indentation lie
// about its nesting depth once the object has sibling fields, so list
// items never do that (spec 4.6, 8: decode(encode(v)) == v).
func (s *emitState) emitListItem(item Value, depth int) {
	indent := s.indent(depth)
	switch item.Kind() {
	case KindArray:
		if len(item.Array()) == 0 {
			s.emit(indent + "- []")
			return
		}
		s.emit(indent + "-")
		s.emitArray("", item.Array(), depth+1, false)
	case KindObject:
		if item.Object().IsEmpty() {
			s.emit(indent + "- {}")
			return
		}
		s.emit(indent + "-")
		s.emitObjectFields(item.Object(), depth+1)
	default:
		s.emit(indent + "- " + s.scalarToken(item, true))
	}
}
