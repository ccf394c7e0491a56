package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/madstone-tech/toon/internal/adapters/config"

	toonfmt "github.com/madstone-tech/toon"
)

// FmtCommand re-renders a TOON document using the resolved house style,
// optionally in place.
type FmtCommand struct {
	inputPath string
	write     bool
	cfg       *config.Config
}

// NewFmtCommand creates a new fmt command.
func NewFmtCommand(inputPath string, write bool, cfg *config.Config) *FmtCommand {
	return &FmtCommand{inputPath: inputPath, write: write, cfg: cfg}
}

// Execute runs the fmt command.
func (c *FmtCommand) Execute(ctx context.Context) error {
	data, err := readInput(c.inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	value, err := toonfmt.Decode(string(data), config.DecoderOptions(c.cfg)...)
	if err != nil {
		return fmt.Errorf("failed to parse TOON: %w", err)
	}

	formatted, err := toonfmt.Encode(value, config.EncoderOptions(c.cfg)...)
	if err != nil {
		return fmt.Errorf("failed to render TOON: %w", err)
	}

	if c.write {
		if c.inputPath == "" || c.inputPath == "-" {
			return fmt.Errorf("--write requires a file argument, not stdin")
		}
		return os.WriteFile(c.inputPath, append(formatted, '\n'), 0o644)
	}
	return writeOutput("-", formatted)
}
