package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoderJSON(t *testing.T) {
	enc := NewEncoder()

	t.Run("encode simple struct", func(t *testing.T) {
		data := struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}{
			Name:  "test",
			Count: 42,
		}

		result, err := enc.EncodeJSON(data)
		require.NoError(t, err)
		assert.Equal(t, `{"name":"test","count":42}`, string(result))
	})

	t.Run("decode JSON", func(t *testing.T) {
		input := `{"name":"decoded","count":100}`
		var result struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}

		require.NoError(t, enc.DecodeJSON([]byte(input), &result))
		assert.Equal(t, "decoded", result.Name)
		assert.Equal(t, 100, result.Count)
	})
}

func TestEncoderTOON(t *testing.T) {
	enc := NewEncoder()

	type record struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		Count       int    `json:"count"`
	}

	t.Run("encode simple struct", func(t *testing.T) {
		data := record{Name: "widget", Description: "a small part", Count: 3}

		result, err := enc.EncodeTOON(data)
		require.NoError(t, err)
		assert.Contains(t, string(result), "name: widget")
		assert.Contains(t, string(result), "count: 3")
	})

	t.Run("round trips through TOON", func(t *testing.T) {
		data := record{Name: "widget", Description: "a small part", Count: 3}

		encoded, err := enc.EncodeTOON(data)
		require.NoError(t, err)

		var decoded record
		require.NoError(t, enc.DecodeTOON(encoded, &decoded))
		assert.Equal(t, data, decoded)
	})

	t.Run("tabular array of uniform records", func(t *testing.T) {
		type row struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		}
		data := struct {
			Rows []row `json:"rows"`
		}{
			Rows: []row{
				{ID: 1, Name: "alpha"},
				{ID: 2, Name: "beta"},
			},
		}

		encoded, err := enc.EncodeTOON(data)
		require.NoError(t, err)
		assert.Contains(t, string(encoded), "rows[2]{id,name}:")

		var decoded struct {
			Rows []row `json:"rows"`
		}
		require.NoError(t, enc.DecodeTOON(encoded, &decoded))
		assert.Equal(t, data.Rows, decoded.Rows)
	})

	t.Run("decode rejects malformed text", func(t *testing.T) {
		var out record
		err := enc.DecodeTOON([]byte("a:\n  b: 1\n b: 2"), &out)
		assert.Error(t, err)
	})
}

func TestNewEncoderWithOptions(t *testing.T) {
	enc := NewEncoderWithOptions(nil, nil)
	result, err := enc.EncodeTOON(map[string]any{"x": 1})
	require.NoError(t, err)
	assert.Contains(t, string(result), "x: 1")
}
