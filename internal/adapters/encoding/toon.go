// Package encoding provides serialization adapters for the toon CLI.
// It implements usecases.OutputEncoder for JSON and TOON, delegating
// TOON work to the root toon package rather than re-implementing the
// format here.
package encoding

import (
	"encoding/json"

	"github.com/madstone-tech/toon/internal/core/usecases"

	toonfmt "github.com/madstone-tech/toon"
)

// Ensure Encoder implements usecases.OutputEncoder interface.
var _ usecases.OutputEncoder = (*Encoder)(nil)

// Encoder provides JSON and TOON encoding/decoding on top of the
// configured house style (spec.md §6).
type Encoder struct {
	encoderOpts []toonfmt.EncoderOption
	decoderOpts []toonfmt.DecoderOption
}

// NewEncoder creates an Encoder using the documented TOON defaults.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// NewEncoderWithOptions creates an Encoder that applies the given house
// style to every EncodeTOON/DecodeTOON call, typically sourced from
// config.EncoderOptions/DecoderOptions.
func NewEncoderWithOptions(encoderOpts []toonfmt.EncoderOption, decoderOpts []toonfmt.DecoderOption) *Encoder {
	return &Encoder{encoderOpts: encoderOpts, decoderOpts: decoderOpts}
}

// EncodeJSON serializes a value to JSON bytes.
func (e *Encoder) EncodeJSON(value any) ([]byte, error) {
	return json.Marshal(value)
}

// DecodeJSON deserializes JSON bytes to a value.
func (e *Encoder) DecodeJSON(data []byte, value any) error {
	return json.Unmarshal(data, value)
}

// EncodeTOON serializes a value to TOON text using the configured
// house style.
func (e *Encoder) EncodeTOON(value any) ([]byte, error) {
	return toonfmt.Marshal(value, e.encoderOpts...)
}

// DecodeTOON deserializes TOON text into value using the configured
// house style.
func (e *Encoder) DecodeTOON(data []byte, value any) error {
	return toonfmt.Unmarshal(string(data), value, e.decoderOpts...)
}
