package cmd

import (
	"context"
	"fmt"

	"github.com/madstone-tech/toon/internal/adapters/cli"
	"github.com/madstone-tech/toon/internal/adapters/config"
	"github.com/madstone-tech/toon/internal/adapters/validation"
	"github.com/madstone-tech/toon/internal/core/usecases"
)

// ValidateCommand checks one or more TOON files for structural and
// lexical errors without decoding them into a destination value.
type ValidateCommand struct {
	paths    []string
	exitCode bool
	cfg      *config.Config
}

// NewValidateCommand creates a new validate command.
func NewValidateCommand(paths []string, exitCode bool, cfg *config.Config) *ValidateCommand {
	return &ValidateCommand{paths: paths, exitCode: exitCode, cfg: cfg}
}

// Execute runs the validate command.
func (c *ValidateCommand) Execute(ctx context.Context) error {
	validator := validation.NewValidator(config.DecoderOptions(c.cfg)...)
	formatter := cli.NewReportFormatter()

	var all []usecases.ValidationError
	for _, path := range c.paths {
		data, err := readInput(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		errs, err := validator.ValidateText(ctx, path, string(data))
		if err != nil {
			return fmt.Errorf("failed to validate %s: %w", path, err)
		}
		all = append(all, errs...)
	}

	formatter.PrintValidationReport(all)

	if len(all) > 0 && c.exitCode {
		return fmt.Errorf("%d validation error(s)", len(all))
	}
	return nil
}
