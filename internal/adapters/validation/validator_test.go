package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_ValidText(t *testing.T) {
	v := NewValidator()
	errs, err := v.ValidateText(context.Background(), "doc.toon", "name: widget\ncount: 3\n")
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidator_MalformedText(t *testing.T) {
	v := NewValidator()
	errs, err := v.ValidateText(context.Background(), "doc.toon", "a:\n b: 1\n  c: 2")
	require.NoError(t, err)
	require.NotEmpty(t, errs)
	assert.Equal(t, "doc.toon", errs[0].Path)
	assert.NotZero(t, errs[0].Line)
}
