package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/madstone-tech/toon/internal/adapters/config"

	toonfmt "github.com/madstone-tech/toon"
)

// EncodeCommand reads JSON from a file (or stdin) and writes its TOON
// rendering to a file (or stdout).
type EncodeCommand struct {
	inputPath  string
	outputPath string
	cfg        *config.Config
}

// NewEncodeCommand creates a new encode command.
func NewEncodeCommand(inputPath, outputPath string, cfg *config.Config) *EncodeCommand {
	return &EncodeCommand{inputPath: inputPath, outputPath: outputPath, cfg: cfg}
}

// Execute runs the encode command.
func (c *EncodeCommand) Execute(ctx context.Context) error {
	data, err := readInput(c.inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	output, err := toonfmt.Encode(value, config.EncoderOptions(c.cfg)...)
	if err != nil {
		return fmt.Errorf("failed to encode TOON: %w", err)
	}

	return writeOutput(c.outputPath, output)
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
