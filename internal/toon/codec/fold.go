package codec

import "strings"

// Fold collapses maximal single-child object chains into dotted key
// paths (spec 4.5, encode side). It returns a new Object; the input is
// never mutated. mode == Off is the identity transform. maxDepth <= 0
// means unlimited.
func Fold(obj Object, mode KeyFoldMode, maxDepth int) Object {
	if mode == Off {
		return obj
	}
	fields := make([]Field, 0, len(obj.Fields))
	for _, f := range obj.Fields {
		fields = append(fields, foldField(f, maxDepth))
	}
	return Object{Fields: fields}
}

func foldField(f Field, maxDepth int) Field {
	if f.Value.Kind() != KindObject || !IsBareIdentifier(f.Key) {
		return Field{Key: f.Key, Value: foldValue(f.Value, maxDepth)}
	}

	segments := []string{f.Key}
	cur := f.Value.Object()
	depth := 1
	for len(cur.Fields) == 1 && (maxDepth <= 0 || depth < maxDepth) {
		only := cur.Fields[0]
		if !IsBareIdentifier(only.Key) {
			break
		}
		if only.Value.Kind() != KindObject {
			segments = append(segments, only.Key)
			return Field{Key: strings.Join(segments, "."), Value: foldValue(only.Value, maxDepth)}
		}
		segments = append(segments, only.Key)
		cur = only.Value.Object()
		depth++
	}
	if len(segments) == 1 {
		return Field{Key: f.Key, Value: ObjectValue(Fold(cur, Safe, maxDepth))}
	}
	return Field{Key: strings.Join(segments, "."), Value: ObjectValue(Fold(cur, Safe, maxDepth))}
}

func foldValue(v Value, maxDepth int) Value {
	switch v.Kind() {
	case KindObject:
		return ObjectValue(Fold(v.Object(), Safe, maxDepth))
	case KindArray:
		items := make([]Value, len(v.Array()))
		for i, item := range v.Array() {
			items[i] = foldValue(item, maxDepth)
		}
		return ArrayFrom(items)
	default:
		return v
	}
}

// rawField is the parser's intermediate representation of an object
// field: it remembers whether the key token was written quoted, since
// path expansion treats a quoted dotted key as one literal segment
// (spec 4.5).
type rawField struct {
	Key    string
	Quoted bool
	Value  rawValue
}

// rawValue mirrors Value but is built incrementally by the parser
// before path expansion (if requested) runs over it.
type rawValue struct {
	kind   Kind
	b      bool
	n      float64
	s      string
	arr    []rawValue
	fields []rawField
}

func rawScalarNull() rawValue                  { return rawValue{kind: KindNull} }
func rawScalarBool(b bool) rawValue            { return rawValue{kind: KindBool, b: b} }
func rawScalarNumber(n float64) rawValue       { return rawValue{kind: KindNumber, n: n} }
func rawScalarString(s string) rawValue        { return rawValue{kind: KindString, s: s} }
func rawArrayValue(items []rawValue) rawValue  { return rawValue{kind: KindArray, arr: items} }
func rawObjectValue(fields []rawField) rawValue {
	return rawValue{kind: KindObject, fields: fields}
}

// ExpandPaths reverses Fold (spec 4.5, decode side). A key containing an
// unescaped '.' (i.e. not originally quoted) is split into segments and
// nested accordingly; it fails with PathConflict if two sibling entries
// would assert incompatible shapes at the same path.
func ExpandPaths(v rawValue, mode KeyFoldMode) (rawValue, error) {
	if mode == Off {
		return v, nil
	}
	switch v.kind {
	case KindObject:
		expandedChildren := make([]rawField, len(v.fields))
		for i, f := range v.fields {
			child, err := ExpandPaths(f.Value, mode)
			if err != nil {
				return rawValue{}, err
			}
			expandedChildren[i] = rawField{Key: f.Key, Quoted: f.Quoted, Value: child}
		}
		merged, err := mergePaths(expandedChildren)
		if err != nil {
			return rawValue{}, err
		}
		return rawObjectValue(merged), nil
	case KindArray:
		items := make([]rawValue, len(v.arr))
		for i, item := range v.arr {
			expanded, err := ExpandPaths(item, mode)
			if err != nil {
				return rawValue{}, err
			}
			items[i] = expanded
		}
		return rawArrayValue(items), nil
	default:
		return v, nil
	}
}

// mergePaths builds the nested object implied by a flat list of fields,
// some of whose keys may be dotted paths, detecting conflicting shapes.
func mergePaths(fields []rawField) ([]rawField, error) {
	type node struct {
		order    []string
		children map[string]*node
		leaf     *rawValue // set if this path segment terminates here
		isLeaf   bool
	}
	newNode := func() *node { return &node{children: map[string]*node{}} }
	root := newNode()

	insert := func(segments []string, val rawValue) error {
		cur := root
		for i, seg := range segments {
			last := i == len(segments)-1
			child, exists := cur.children[seg]
			if !exists {
				child = newNode()
				cur.children[seg] = child
				cur.order = append(cur.order, seg)
			}
			if last {
				if child.isLeaf {
					return newDecodeError(PathConflict, 0, 0, "conflicting values at path segment \""+seg+"\"")
				}
				if len(child.children) > 0 {
					return newDecodeError(PathConflict, 0, 0, "path \""+seg+"\" is both a scalar and a parent object")
				}
				child.isLeaf = true
				v := val
				child.leaf = &v
			} else {
				if child.isLeaf {
					return newDecodeError(PathConflict, 0, 0, "path \""+seg+"\" is both a scalar and a parent object")
				}
			}
			cur = child
		}
		return nil
	}

	for _, f := range fields {
		var segments []string
		if f.Quoted || !strings.Contains(f.Key, ".") {
			segments = []string{f.Key}
		} else {
			segments = strings.Split(f.Key, ".")
		}
		if err := insert(segments, f.Value); err != nil {
			return nil, err
		}
	}

	var build func(n *node) []rawField
	build = func(n *node) []rawField {
		out := make([]rawField, 0, len(n.order))
		for _, key := range n.order {
			child := n.children[key]
			if child.isLeaf {
				out = append(out, rawField{Key: key, Value: *child.leaf})
				continue
			}
			out = append(out, rawField{Key: key, Value: rawObjectValue(build(child))})
		}
		return out
	}
	return build(root), nil
}

// toValue converts a fully expanded rawValue into the public Value tree.
func (rv rawValue) toValue() Value {
	switch rv.kind {
	case KindNull:
		return Null()
	case KindBool:
		return Bool(rv.b)
	case KindNumber:
		return Number(rv.n)
	case KindString:
		return String(rv.s)
	case KindArray:
		items := make([]Value, len(rv.arr))
		for i, item := range rv.arr {
			items[i] = item.toValue()
		}
		return ArrayFrom(items)
	case KindObject:
		fields := make([]Field, len(rv.fields))
		for i, f := range rv.fields {
			fields[i] = Field{Key: f.Key, Value: f.Value.toValue()}
		}
		return ObjectValue(Object{Fields: fields})
	default:
		return Null()
	}
}
