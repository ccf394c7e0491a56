package codec

// DetectTabular implements the tabular-array analyzer (spec 4.4). An
// array qualifies as tabular iff it is non-empty, every element is an
// object, the first element has at least one key, the set of keys is identical across every element (order
// taken from the first element), and every column's value is a scalar
// in every row. It returns the column order and true when the array
// qualifies; otherwise it returns nil, false and the caller falls back
// to list form.
func DetectTabular(values []Value) (columns []string, ok bool) {
	if len(values) == 0 {
		return nil, false
	}
	first, isObj := firstObject(values[0])
	if !isObj || first.IsEmpty() {
		return nil, false
	}
	columns = make([]string, len(first.Fields))
	index := make(map[string]int, len(first.Fields))
	for i, f := range first.Fields {
		if !f.Value.IsScalar() {
			return nil, false
		}
		columns[i] = f.Key
		index[f.Key] = i
	}
	for _, row := range values[1:] {
		obj, isObj := firstObject(row)
		if !isObj || len(obj.Fields) != len(columns) {
			return nil, false
		}
		seen := make([]bool, len(columns))
		for _, f := range obj.Fields {
			pos, known := index[f.Key]
			if !known || !f.Value.IsScalar() {
				return nil, false
			}
			seen[pos] = true
		}
		for _, s := range seen {
			if !s {
				return nil, false
			}
		}
	}
	return columns, true
}

func firstObject(v Value) (Object, bool) {
	if v.Kind() != KindObject {
		return Object{}, false
	}
	return v.Object(), true
}

// IsScalarArray reports whether every element of values is a scalar
// (spec 4.4: scalar-array form applies regardless of uniformity).
func IsScalarArray(values []Value) bool {
	for _, v := range values {
		if !v.IsScalar() {
			return false
		}
	}
	return true
}

// RowCells returns obj's scalar values in the given column order. Every
// column is guaranteed present by DetectTabular's uniformity check, so
// this never needs a "missing cell" fallback.
func RowCells(obj Object, columns []string) []Value {
	cells := make([]Value, len(columns))
	for i, col := range columns {
		v, _ := obj.Get(col)
		cells[i] = v
	}
	return cells
}
