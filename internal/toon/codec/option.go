package codec

// KeyFoldMode selects whether key folding / path expansion is applied.
type KeyFoldMode int

const (
	Off KeyFoldMode = iota
	Safe
)

// EncodeOptions configures Marshal/MarshalString (spec 6).
type EncodeOptions struct {
	Indent        int
	Delimiter     Delimiter
	KeyFolding    KeyFoldMode
	FlattenDepth  int // 0 means unlimited
	Replacer      func(Value) Value
	LengthMarkers bool
}

// DefaultEncodeOptions returns the documented defaults: 2-space indent,
// comma delimiter, key folding off.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Indent:     2,
		Delimiter:  DelimiterComma,
		KeyFolding: Off,
	}
}

// EncoderOption mutates an EncodeOptions record.
type EncoderOption func(*EncodeOptions)

func WithIndent(spaces int) EncoderOption {
	return func(o *EncodeOptions) { o.Indent = spaces }
}

func WithDelimiter(d Delimiter) EncoderOption {
	return func(o *EncodeOptions) { o.Delimiter = d }
}

func WithKeyFolding(mode KeyFoldMode) EncoderOption {
	return func(o *EncodeOptions) { o.KeyFolding = mode }
}

func WithFlattenDepth(depth int) EncoderOption {
	return func(o *EncodeOptions) { o.FlattenDepth = depth }
}

func WithReplacer(fn func(Value) Value) EncoderOption {
	return func(o *EncodeOptions) { o.Replacer = fn }
}

func WithLengthMarkers(enabled bool) EncoderOption {
	return func(o *EncodeOptions) { o.LengthMarkers = enabled }
}

// Validate checks the InvalidOption error class (spec 7).
func (o EncodeOptions) Validate() error {
	if o.Indent <= 0 {
		return newDecodeError(InvalidOption, 0, 0, "indent must be positive")
	}
	if !o.Delimiter.Valid() {
		return newDecodeError(InvalidOption, 0, 0, "delimiter must be a single printable rune")
	}
	if o.FlattenDepth < 0 {
		return newDecodeError(InvalidOption, 0, 0, "flatten_depth must not be negative")
	}
	return nil
}

// DecodeOptions configures Decode/TryDecode (spec 6).
type DecodeOptions struct {
	Indent      int
	Strict      bool
	ExpandPaths KeyFoldMode
}

// DefaultDecodeOptions returns the documented defaults: expected 2-space
// indent, strict mode on, path expansion off.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		Indent:      2,
		Strict:      true,
		ExpandPaths: Off,
	}
}

// DecoderOption mutates a DecodeOptions record.
type DecoderOption func(*DecodeOptions)

func WithDecoderIndent(spaces int) DecoderOption {
	return func(o *DecodeOptions) { o.Indent = spaces }
}

func WithStrict(strict bool) DecoderOption {
	return func(o *DecodeOptions) { o.Strict = strict }
}

func WithExpandPaths(mode KeyFoldMode) DecoderOption {
	return func(o *DecodeOptions) { o.ExpandPaths = mode }
}

func (o DecodeOptions) Validate() error {
	if o.Indent <= 0 {
		return newDecodeError(InvalidOption, 0, 0, "indent must be positive")
	}
	return nil
}
