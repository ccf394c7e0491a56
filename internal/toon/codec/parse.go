package codec

import "strings"

// parser walks a flat, depth-annotated line stream with a single
// cursor. Every production is a plain function call, so the native
// call stack — not an explicit frame slice — bounds nesting depth;
// since Go grows goroutine stacks on demand this comfortably covers
// the depths spec 9 requires without the bookkeeping of a hand-rolled
// stack machine.
type parser struct {
	lines []physLine
	pos   int
	opts  DecodeOptions
}

func (p *parser) peek() (physLine, bool) {
	if p.pos >= len(p.lines) {
		return physLine{}, false
	}
	return p.lines[p.pos], true
}

func (p *parser) next() physLine {
	l := p.lines[p.pos]
	p.pos++
	return l
}

// Unmarshal parses src into a Value (spec 4.6-4.7, 7). The root
// package's Decode and TryDecode both wrap it: Decode returns the error
// as is, and TryDecode returns it as a one-element DecodeError slice.
func Unmarshal(src string, opts ...DecoderOption) (Value, error) {
	cfg := DefaultDecodeOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Value{}, err
	}
	lines, err := preprocessLines(src, cfg.Indent, cfg.Strict)
	if err != nil {
		return Value{}, err
	}
	raw, err := parseTopLevel(lines, cfg)
	if err != nil {
		return Value{}, err
	}
	expanded, err := ExpandPaths(raw, cfg.ExpandPaths)
	if err != nil {
		return Value{}, err
	}
	return expanded.toValue(), nil
}

func parseTopLevel(lines []physLine, opts DecodeOptions) (rawValue, error) {
	if len(lines) == 0 {
		// emitRoot renders an empty object as no lines at all, so an
		// empty document is that value's only encoding, not null (null
		// always renders its own explicit "null" line).
		return rawObjectValue(nil), nil
	}
	if lines[0].depth != 0 {
		if opts.Strict {
			return rawValue{}, newDecodeError(IndentError, lines[0].num, 1, "root content must start at indentation level 0")
		}
		// Lenient mode measures every depth from the first line's level.
		base := lines[0].depth
		for i := range lines {
			if lines[i].depth < base {
				return rawValue{}, newDecodeError(IndentError, lines[i].num, 1, "dedent below the first line's indentation level")
			}
			lines[i].depth -= base
		}
	}
	p := &parser{lines: lines, opts: opts}
	first := lines[0]

	if first.text == "[]" {
		p.next()
		if rest, ok := p.peek(); ok {
			return rawValue{}, newDecodeError(StructureError, rest.num, 1, "unexpected trailing content")
		}
		return rawArrayValue(nil), nil
	}

	if strings.HasPrefix(first.text, "[") {
		p.next()
		v, err := p.parseArrayHeaderAndBody(first.text, 0, first.num)
		if err != nil {
			return rawValue{}, err
		}
		if rest, ok := p.peek(); ok {
			return rawValue{}, newDecodeError(StructureError, rest.num, 1, "unexpected trailing content")
		}
		return v, nil
	}

	if len(lines) == 1 && !isFieldHeadLine(first.text) {
		sv, err := parseScalarToken(first.text)
		if err != nil {
			return rawValue{}, withPosition(err, first.num, 1)
		}
		return sv, nil
	}

	fields, err := p.parseObjectFields(0)
	if err != nil {
		return rawValue{}, err
	}
	if rest, ok := p.peek(); ok {
		return rawValue{}, newDecodeError(StructureError, rest.num, 1, "unexpected trailing content")
	}
	return rawObjectValue(fields), nil
}

// parseObjectFields consumes every consecutive line at exactly depth as
// an object field, stopping at the first dedent, indent, or EOF.
func (p *parser) parseObjectFields(depth int) ([]rawField, error) {
	var fields []rawField
	seen := map[string]bool{}
	for {
		line, ok := p.peek()
		if !ok || line.depth != depth {
			break
		}
		key, quoted, rest, err := scanKey(line.text)
		if err != nil {
			return nil, withPosition(err, line.num, 1)
		}
		if rest == "" {
			return nil, newDecodeError(StructureError, line.num, 1, "expected ':' or '[' after key")
		}
		if seen[key] {
			return nil, newDecodeError(StructureError, line.num, 1, "duplicate key \""+key+"\"")
		}
		seen[key] = true
		p.next()

		if rest[0] == '[' {
			val, err := p.parseArrayHeaderAndBody(rest, depth, line.num)
			if err != nil {
				return nil, err
			}
			fields = append(fields, rawField{Key: key, Quoted: quoted, Value: val})
			continue
		}

		valText := strings.TrimPrefix(rest, ":")
		valText = strings.TrimPrefix(valText, " ")
		switch valText {
		case "":
			nested, err := p.parseNestedAfterColon(depth)
			if err != nil {
				return nil, err
			}
			fields = append(fields, rawField{Key: key, Quoted: quoted, Value: nested})
		case "{}":
			fields = append(fields, rawField{Key: key, Quoted: quoted, Value: rawObjectValue(nil)})
		case "[]":
			fields = append(fields, rawField{Key: key, Quoted: quoted, Value: rawArrayValue(nil)})
		default:
			sv, err := parseScalarToken(valText)
			if err != nil {
				return nil, withPosition(err, line.num, 1)
			}
			fields = append(fields, rawField{Key: key, Quoted: quoted, Value: sv})
		}
	}
	return fields, nil
}

// parseNestedAfterColon handles a bare "KEY:" with no inline value: the
// nested object is whatever consecutive lines follow at depth+1, or
// empty if none do.
func (p *parser) parseNestedAfterColon(depth int) (rawValue, error) {
	line, ok := p.peek()
	if !ok || line.depth <= depth {
		return rawObjectValue(nil), nil
	}
	if line.depth != depth+1 {
		return rawValue{}, newDecodeError(IndentError, line.num, 1, "unexpected indentation level")
	}
	fields, err := p.parseObjectFields(depth + 1)
	if err != nil {
		return rawValue{}, err
	}
	return rawObjectValue(fields), nil
}

// parseArrayHeaderAndBody parses the header at rest (already positioned
// at '[') and consumes whatever body the header implies: an inline
// scalar-array tail, length-bounded tabular rows, or length-bounded
// list items. depth is the header line's own depth.
func (p *parser) parseArrayHeaderAndBody(rest string, depth int, lineNum int) (rawValue, error) {
	length, delim, columns, tail, err := parseArrayHeaderTokens(rest)
	if err != nil {
		return rawValue{}, withPosition(err, lineNum, 1)
	}

	if length == 0 {
		return rawArrayValue(nil), nil
	}

	if tail != "" {
		toks := splitDelimited(tail, delim.Rune())
		if len(toks) != length {
			return rawValue{}, newDecodeError(StructureError, lineNum, 1, "array length does not match inline token count")
		}
		items := make([]rawValue, length)
		for i, t := range toks {
			sv, err := parseScalarToken(t)
			if err != nil {
				return rawValue{}, withPosition(err, lineNum, 1)
			}
			items[i] = sv
		}
		return rawArrayValue(items), nil
	}

	if len(columns) > 0 {
		items := make([]rawValue, 0, length)
		for i := 0; i < length; i++ {
			line, ok := p.peek()
			if !ok || line.depth != depth+1 {
				return rawValue{}, newDecodeError(StructureError, lineNum, 1, "expected tabular row")
			}
			p.next()
			toks := splitDelimited(line.text, delim.Rune())
			if len(toks) != len(columns) {
				return rawValue{}, newDecodeError(StructureError, line.num, 1, "row does not match column count")
			}
			rowFields := make([]rawField, len(columns))
			for ci, col := range columns {
				sv, err := parseScalarToken(toks[ci])
				if err != nil {
					return rawValue{}, withPosition(err, line.num, 1)
				}
				rowFields[ci] = rawField{Key: col, Value: sv}
			}
			items = append(items, rawObjectValue(rowFields))
		}
		return rawArrayValue(items), nil
	}

	items := make([]rawValue, 0, length)
	for i := 0; i < length; i++ {
		item, err := p.parseListItem(depth + 1)
		if err != nil {
			return rawValue{}, err
		}
		items = append(items, item)
	}
	return rawArrayValue(items), nil
}

// parseListItem consumes one "-"-marked list element at depth (spec
// 4.6). A bare "-" line hands its entire nested content — an object's
// fields or an anonymous array — to depth+1. A "- " line inlines a
// scalar, an empty container, or a single field whose own value closes
// on the same line (anything length-delimited or absent); any further
// sibling fields of that item are then read, unambiguously, at
// depth+1. A first field that opens its own unbounded nested object
// instead absorbs every depth+1 line as its own fields, which is why
// the encoder never produces that shape for multi-field items: there
// would be no way to tell where the nested object ends and a sibling
// field begins.
func (p *parser) parseListItem(depth int) (rawValue, error) {
	line, ok := p.peek()
	if !ok || line.depth != depth || !strings.HasPrefix(line.text, "-") {
		return rawValue{}, newDecodeError(StructureError, lineFor(line, ok), 1, "expected a list item")
	}
	p.next()
	content := line.text[1:]

	if content == "" {
		nl, ok := p.peek()
		if !ok || nl.depth != depth+1 {
			return rawValue{}, newDecodeError(StructureError, line.num, 1, "expected nested content after '-'")
		}
		if strings.HasPrefix(nl.text, "[") {
			p.next()
			return p.parseArrayHeaderAndBody(nl.text, depth+1, nl.num)
		}
		fields, err := p.parseObjectFields(depth + 1)
		if err != nil {
			return rawValue{}, err
		}
		return rawObjectValue(fields), nil
	}

	if !strings.HasPrefix(content, " ") {
		return rawValue{}, newDecodeError(StructureError, line.num, 1, "expected a space after '-'")
	}
	content = content[1:]

	switch content {
	case "{}":
		return rawObjectValue(nil), nil
	case "[]":
		return rawArrayValue(nil), nil
	}

	if !isFieldHeadLine(content) {
		sv, err := parseScalarToken(content)
		if err != nil {
			return rawValue{}, withPosition(err, line.num, 1)
		}
		return sv, nil
	}

	key, quoted, rest, err := scanKey(content)
	if err != nil {
		return rawValue{}, withPosition(err, line.num, 1)
	}
	var first rawField
	if rest[0] == '[' {
		val, err := p.parseArrayHeaderAndBody(rest, depth, line.num)
		if err != nil {
			return rawValue{}, err
		}
		first = rawField{Key: key, Quoted: quoted, Value: val}
	} else {
		valText := strings.TrimPrefix(rest, ":")
		valText = strings.TrimPrefix(valText, " ")
		switch valText {
		case "":
			nested, err := p.parseNestedAfterColon(depth)
			if err != nil {
				return rawValue{}, err
			}
			first = rawField{Key: key, Quoted: quoted, Value: nested}
		case "{}":
			first = rawField{Key: key, Quoted: quoted, Value: rawObjectValue(nil)}
		case "[]":
			first = rawField{Key: key, Quoted: quoted, Value: rawArrayValue(nil)}
		default:
			sv, err := parseScalarToken(valText)
			if err != nil {
				return rawValue{}, withPosition(err, line.num, 1)
			}
			first = rawField{Key: key, Quoted: quoted, Value: sv}
		}
	}

	fields := []rawField{first}
	more, err := p.parseObjectFields(depth + 1)
	if err != nil {
		return rawValue{}, err
	}
	fields = append(fields, more...)
	return rawObjectValue(fields), nil
}

func lineFor(l physLine, ok bool) int {
	if !ok {
		return 0
	}
	return l.num
}
