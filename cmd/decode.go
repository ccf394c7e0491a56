package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/madstone-tech/toon/internal/adapters/config"

	toonfmt "github.com/madstone-tech/toon"
)

// DecodeCommand reads TOON from a file (or stdin) and writes its JSON
// rendering to a file (or stdout).
type DecodeCommand struct {
	inputPath  string
	outputPath string
	cfg        *config.Config
}

// NewDecodeCommand creates a new decode command.
func NewDecodeCommand(inputPath, outputPath string, cfg *config.Config) *DecodeCommand {
	return &DecodeCommand{inputPath: inputPath, outputPath: outputPath, cfg: cfg}
}

// Execute runs the decode command.
func (c *DecodeCommand) Execute(ctx context.Context) error {
	data, err := readInput(c.inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	value, err := toonfmt.Decode(string(data), config.DecoderOptions(c.cfg)...)
	if err != nil {
		return fmt.Errorf("failed to decode TOON: %w", err)
	}

	output, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render JSON: %w", err)
	}

	return writeOutput(c.outputPath, output)
}
