package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeedsQuoting(t *testing.T) {
	cases := []struct {
		name  string
		s     string
		delim Delimiter
		want  bool
	}{
		{"plain word", "alice", DelimiterComma, false},
		{"empty string", "", DelimiterComma, true},
		{"leading space", " alice", DelimiterComma, true},
		{"trailing space", "alice ", DelimiterComma, true},
		{"contains comma, comma delim", "a,b", DelimiterComma, true},
		{"contains comma, pipe delim", "a,b", DelimiterPipe, true},
		{"contains active delimiter, pipe", "a|b", DelimiterPipe, true},
		{"contains colon", "a:b", DelimiterComma, true},
		{"contains bracket", "a[b", DelimiterComma, true},
		{"contains brace", "a{b", DelimiterComma, true},
		{"contains hash", "a#b", DelimiterComma, true},
		{"contains quote", `a"b`, DelimiterComma, true},
		{"contains backslash", `a\b`, DelimiterComma, true},
		{"reserved true", "true", DelimiterComma, true},
		{"reserved false", "false", DelimiterComma, true},
		{"reserved null", "null", DelimiterComma, true},
		{"looks like a number", "42", DelimiterComma, true},
		{"looks like a negative number", "-1.5e3", DelimiterComma, true},
		{"not quite a number", "42abc", DelimiterComma, false},
		{"control rune", "a\tb", DelimiterComma, true},
		{"unicode word", "héllo", DelimiterComma, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, NeedsQuoting(c.s, c.delim))
		})
	}
}

func TestIsBareIdentifier(t *testing.T) {
	assert.True(t, IsBareIdentifier("name"))
	assert.True(t, IsBareIdentifier("_private"))
	assert.True(t, IsBareIdentifier("a1"))
	assert.False(t, IsBareIdentifier(""))
	assert.False(t, IsBareIdentifier("1abc"))
	assert.False(t, IsBareIdentifier("a-b"))
	assert.False(t, IsBareIdentifier("a.b"))
	assert.False(t, IsBareIdentifier("true"))
	assert.False(t, IsBareIdentifier("null"))
}

func TestIsBareKeyPath(t *testing.T) {
	assert.True(t, IsBareKeyPath("a"))
	assert.True(t, IsBareKeyPath("a.b.c"))
	assert.False(t, IsBareKeyPath(""))
	assert.False(t, IsBareKeyPath("a..b"))
	assert.False(t, IsBareKeyPath("a.1b"))
	assert.False(t, IsBareKeyPath("a.true"))
}

func TestQuoteUnquoteStringRoundTrip(t *testing.T) {
	cases := []string{
		"plain",
		"with \"quotes\" and \\backslash\\",
		"line\nbreak\ttab",
		"emoji \U0001F600 party",
		" control",
	}
	for _, s := range cases {
		quoted := QuoteString(s)
		require.True(t, len(quoted) >= 2 && quoted[0] == '"' && quoted[len(quoted)-1] == '"')
		unquoted, err := UnquoteString(quoted[1 : len(quoted)-1])
		require.NoError(t, err)
		assert.Equal(t, s, unquoted)
	}
}

func TestUnquoteStringEscapes(t *testing.T) {
	out, err := UnquoteString(`a\nb\tcé`)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\tcé", out)
}

func TestUnquoteStringRejectsBadEscapes(t *testing.T) {
	_, err := UnquoteString(`bad\q`)
	assert.Error(t, err)

	_, err = UnquoteString(`trailing\`)
	assert.Error(t, err)

	_, err = UnquoteString(`short\u12`)
	assert.Error(t, err)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "0", FormatNumber(-0.0))
	assert.Equal(t, "42", FormatNumber(42))
	assert.Equal(t, "-7", FormatNumber(-7))
	assert.Equal(t, "1.5", FormatNumber(1.5))
}

func TestScanNumber(t *testing.T) {
	cases := []struct {
		s    string
		want float64
		ok   bool
	}{
		{"0", 0, true},
		{"42", 42, true},
		{"-42", -42, true},
		{"3.14", 3.14, true},
		{"1e10", 1e10, true},
		{"-1.5e-3", -1.5e-3, true},
		{"", 0, false},
		{"+1", 0, false},
		{"01", 0, false},
		{"1.", 0, false},
		{".5", 0, false},
		{"0x1A", 0, false},
		{"1_000", 0, false},
		{"abc", 0, false},
	}
	for _, c := range cases {
		t.Run(c.s, func(t *testing.T) {
			got, ok := ScanNumber(c.s)
			require.Equal(t, c.ok, ok)
			if ok {
				assert.Equal(t, c.want, got)
			}
		})
	}
}

func TestDelimiterValid(t *testing.T) {
	assert.True(t, DelimiterComma.Valid())
	assert.True(t, DelimiterTab.Valid())
	assert.True(t, DelimiterPipe.Valid())
	assert.False(t, Delimiter(0).Valid())
	assert.False(t, Delimiter('\n').Valid())
}
