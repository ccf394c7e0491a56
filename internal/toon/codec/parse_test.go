package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip encodes v and decodes the result back, asserting the two
// values are equal (spec 8's round-trip property).
func roundTrip(t *testing.T, v Value, encOpts []EncoderOption, decOpts []DecoderOption) Value {
	t.Helper()
	text, err := MarshalString(v, encOpts...)
	require.NoError(t, err)
	got, err := Unmarshal(text, decOpts...)
	require.NoError(t, err)
	return got
}

func TestRoundTripScalarsAtRoot(t *testing.T) {
	values := []Value{
		Null(),
		Bool(true),
		Bool(false),
		Number(0),
		Number(-17),
		Number(3.5),
		String("hello"),
		String("hello world"),
	}
	for _, v := range values {
		got := roundTrip(t, v, nil, nil)
		assert.True(t, Equal(v, got), "round-trip mismatch for %#v -> %#v", v, got)
	}
}

func TestRoundTripEmptyObjectAtRoot(t *testing.T) {
	v := ObjectValue(NewObject())
	got := roundTrip(t, v, nil, nil)
	assert.True(t, Equal(v, got))
}

func TestRoundTripEmptyArrayAtRoot(t *testing.T) {
	v := Array()
	got := roundTrip(t, v, nil, nil)
	assert.True(t, Equal(v, got))
}

func TestRoundTripEmptyContainersAsFieldValues(t *testing.T) {
	v := ObjectValue(NewObject(
		Field{Key: "obj", Value: ObjectValue(NewObject())},
		Field{Key: "arr", Value: Array()},
	))
	got := roundTrip(t, v, nil, nil)
	assert.True(t, Equal(v, got))
}

func TestRoundTripEmptyContainersAsArrayElements(t *testing.T) {
	v := Array(ObjectValue(NewObject()), Array(), ObjectValue(NewObject()), Array())
	got := roundTrip(t, v, nil, nil)
	assert.True(t, Equal(v, got))
}

func TestRoundTripTabularArray(t *testing.T) {
	v := Array(row(1, "Alice"), row(2, "Bob"))
	got := roundTrip(t, v, nil, nil)
	assert.True(t, Equal(v, got))
}

func TestRoundTripListFormArray(t *testing.T) {
	a := ObjectValue(NewObject(Field{Key: "id", Value: Number(1)}))
	b := ObjectValue(NewObject(
		Field{Key: "id", Value: Number(2)},
		Field{Key: "extra", Value: String("x")},
	))
	v := Array(a, b)
	got := roundTrip(t, v, nil, nil)
	assert.True(t, Equal(v, got))
}

func TestRoundTripScalarArrayWithDelimiter(t *testing.T) {
	v := Array(Number(1), Number(2), Number(3))
	got := roundTrip(t, v, []EncoderOption{WithDelimiter(DelimiterPipe)}, nil)
	assert.True(t, Equal(v, got))
}

func TestRoundTripDeepNesting(t *testing.T) {
	const depth = 150
	v := Number(1)
	for i := 0; i < depth; i++ {
		v = ObjectValue(NewObject(Field{Key: "n", Value: v}))
	}
	got := roundTrip(t, v, nil, nil)
	assert.True(t, Equal(v, got))
}

func TestRoundTripLongString(t *testing.T) {
	v := String(strings.Repeat("x", 100*1024))
	got := roundTrip(t, v, nil, nil)
	assert.True(t, Equal(v, got))
}

func TestRoundTripLongKey(t *testing.T) {
	v := ObjectValue(NewObject(Field{Key: strings.Repeat("k", 500), Value: Number(1)}))
	got := roundTrip(t, v, nil, nil)
	assert.True(t, Equal(v, got))
}

func TestRoundTripUnicode(t *testing.T) {
	cases := []string{
		"emoji \U0001F600\U0001F389",
		"RTL \u05d0\u05d1\u05d2 text",
		"combining e\u0301\u0301 marks",
		"zwj family \U0001F468\u200D\U0001F469\u200D\U0001F467",
		"surrogate-pair \U0001D11E clef",
	}
	for _, s := range cases {
		v := String(s)
		got := roundTrip(t, v, nil, nil)
		assert.True(t, Equal(v, got), "unicode round-trip mismatch for %q", s)
	}
}

func TestRoundTripStringsContainingDelimiterAndPunctuation(t *testing.T) {
	cases := []string{
		"a,b,c",
		"a:b",
		"a[b]c",
		"a{b}c",
		"a#b",
		`a"b`,
		`a\b`,
	}
	for _, s := range cases {
		v := String(s)
		got := roundTrip(t, v, nil, nil)
		assert.True(t, Equal(v, got), "punctuation round-trip mismatch for %q", s)
	}
}

func TestStrictRejectsLeadingTab(t *testing.T) {
	_, err := Unmarshal("\ta: 1")
	require.Error(t, err)
	de, ok := err.(*DecodeError)
	require.True(t, ok)
	assert.Equal(t, IndentError, de.Kind)
}

func TestLenientAcceptsLeadingTab(t *testing.T) {
	_, err := Unmarshal("\ta: 1", WithStrict(false))
	assert.NoError(t, err)
}

func TestUnmarshalRejectsBlankLines(t *testing.T) {
	_, err := Unmarshal("a: 1\n\nb: 2")
	require.Error(t, err)
	de, ok := err.(*DecodeError)
	require.True(t, ok)
	assert.Equal(t, StructureError, de.Kind)
}

func TestUnmarshalRejectsDuplicateKeys(t *testing.T) {
	_, err := Unmarshal("a: 1\na: 2")
	require.Error(t, err)
}

func TestUnmarshalRejectsBadIndentWidth(t *testing.T) {
	_, err := Unmarshal("a:\n   b: 1")
	require.Error(t, err)
	de, ok := err.(*DecodeError)
	require.True(t, ok)
	assert.Equal(t, IndentError, de.Kind)
}

func TestUnmarshalRejectsTrailingContentAfterRootArray(t *testing.T) {
	_, err := Unmarshal("[1]: 1\nextra: 2")
	assert.Error(t, err)
}

func TestUnmarshalTabularRowCountMismatch(t *testing.T) {
	_, err := Unmarshal("[2]{id,name}:\n  1,Alice")
	assert.Error(t, err)
}

func TestUnmarshalInlineArrayLengthMismatch(t *testing.T) {
	_, err := Unmarshal("[3]: 1,2")
	assert.Error(t, err)
}

func TestUnmarshalNestedObjectWithoutInlineValue(t *testing.T) {
	v, err := Unmarshal("outer:\n  inner: 1")
	require.NoError(t, err)
	want := ObjectValue(NewObject(
		Field{Key: "outer", Value: ObjectValue(NewObject(
			Field{Key: "inner", Value: Number(1)},
		))},
	))
	assert.True(t, Equal(want, v))
}

func TestUnmarshalScalarArrayInline(t *testing.T) {
	v, err := Unmarshal("[3]: 1,2,3")
	require.NoError(t, err)
	assert.True(t, Equal(Array(Number(1), Number(2), Number(3)), v))
}

func TestDefaultDecodeOptionsValidate(t *testing.T) {
	assert.NoError(t, DefaultDecodeOptions().Validate())
	bad := DefaultDecodeOptions()
	bad.Indent = 0
	assert.Error(t, bad.Validate())
}
