// Package validation implements usecases.Validator by running text
// through the TOON decoder and reporting whatever it collects, the way
// the teacher's validate command ran source files through its own
// parser rather than hand-rolling a second check.
package validation

import (
	"context"

	"github.com/madstone-tech/toon/internal/core/usecases"

	toonfmt "github.com/madstone-tech/toon"
)

// Ensure Validator implements usecases.Validator.
var _ usecases.Validator = (*Validator)(nil)

// Validator checks TOON text for structural and lexical errors.
type Validator struct {
	opts []toonfmt.DecoderOption
}

// NewValidator creates a Validator using the given decode house style.
func NewValidator(opts ...toonfmt.DecoderOption) *Validator {
	return &Validator{opts: opts}
}

// ValidateText runs try_decode over text and reports every diagnostic
// collected, tagged with path for display (spec.md §7).
func (v *Validator) ValidateText(ctx context.Context, path string, text string) ([]usecases.ValidationError, error) {
	_, decodeErrors := toonfmt.TryDecode(text, v.opts...)
	if len(decodeErrors) == 0 {
		return nil, nil
	}

	out := make([]usecases.ValidationError, 0, len(decodeErrors))
	for _, de := range decodeErrors {
		out = append(out, usecases.ValidationError{
			Code:    de.Kind.String(),
			Message: de.Cause,
			Path:    path,
			Line:    de.Line,
			Column:  de.Column,
		})
	}
	return out, nil
}
