package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldCollapsesSingleChildChains(t *testing.T) {
	obj := NewObject(Field{Key: "a", Value: ObjectValue(NewObject(
		Field{Key: "b", Value: ObjectValue(NewObject(
			Field{Key: "c", Value: Number(1)},
		))},
	))})
	folded := Fold(obj, Safe, 0)
	require.Len(t, folded.Fields, 1)
	assert.Equal(t, "a.b.c", folded.Fields[0].Key)
	assert.True(t, Equal(Number(1), folded.Fields[0].Value))
}

func TestFoldStopsAtBranchingObject(t *testing.T) {
	obj := NewObject(Field{Key: "a", Value: ObjectValue(NewObject(
		Field{Key: "x", Value: Number(1)},
		Field{Key: "y", Value: Number(2)},
	))})
	folded := Fold(obj, Safe, 0)
	require.Len(t, folded.Fields, 1)
	assert.Equal(t, "a", folded.Fields[0].Key)
}

func TestFoldRespectsMaxDepth(t *testing.T) {
	obj := NewObject(Field{Key: "a", Value: ObjectValue(NewObject(
		Field{Key: "b", Value: ObjectValue(NewObject(
			Field{Key: "c", Value: Number(1)},
		))},
	))})
	folded := Fold(obj, Safe, 1)
	require.Len(t, folded.Fields, 1)
	assert.Equal(t, "a", folded.Fields[0].Key)
}

func TestFoldOffIsIdentity(t *testing.T) {
	obj := NewObject(Field{Key: "a", Value: ObjectValue(NewObject(
		Field{Key: "b", Value: Number(1)},
	))})
	folded := Fold(obj, Off, 0)
	assert.True(t, Equal(ObjectValue(obj), ObjectValue(folded)))
}

func TestFoldDoesNotCollapseThroughQuotedLikeKeys(t *testing.T) {
	obj := NewObject(Field{Key: "a", Value: ObjectValue(NewObject(
		Field{Key: "has space", Value: Number(1)},
	))})
	folded := Fold(obj, Safe, 0)
	require.Len(t, folded.Fields, 1)
	assert.Equal(t, "a", folded.Fields[0].Key)
}

func TestFoldExpandInversionWhenNoKeyContainsDot(t *testing.T) {
	v := ObjectValue(NewObject(
		Field{Key: "a", Value: ObjectValue(NewObject(
			Field{Key: "b", Value: ObjectValue(NewObject(
				Field{Key: "c", Value: Number(1)},
			))},
		))},
		Field{Key: "top", Value: String("x")},
	))
	got := roundTrip(t, v, []EncoderOption{WithKeyFolding(Safe)}, []DecoderOption{WithExpandPaths(Safe)})
	assert.True(t, Equal(v, got))
}

func TestExpandPathsDetectsConflict(t *testing.T) {
	fields := []rawField{
		{Key: "a.b", Value: rawScalarNumber(1)},
		{Key: "a", Value: rawScalarNumber(2)},
	}
	_, err := mergePaths(fields)
	require.Error(t, err)
	de, ok := err.(*DecodeError)
	require.True(t, ok)
	assert.Equal(t, PathConflict, de.Kind)
}

func TestExpandPathsBuildsNestedObject(t *testing.T) {
	fields := []rawField{
		{Key: "a.b.c", Value: rawScalarNumber(1)},
		{Key: "a.b.d", Value: rawScalarNumber(2)},
	}
	merged, err := mergePaths(fields)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "a", merged[0].Key)
	inner := merged[0].Value.fields
	require.Len(t, inner, 1)
	assert.Equal(t, "b", inner[0].Key)
	leaf := inner[0].Value.fields
	require.Len(t, leaf, 2)
	assert.Equal(t, "c", leaf[0].Key)
	assert.Equal(t, "d", leaf[1].Key)
}

func TestExpandPathsTreatsQuotedDotKeyAsLiteral(t *testing.T) {
	fields := []rawField{
		{Key: "a.b", Quoted: true, Value: rawScalarNumber(1)},
	}
	merged, err := mergePaths(fields)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "a.b", merged[0].Key)
}

func TestExpandPathsOffIsIdentity(t *testing.T) {
	raw := rawObjectValue([]rawField{{Key: "a.b", Value: rawScalarNumber(1)}})
	got, err := ExpandPaths(raw, Off)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}
