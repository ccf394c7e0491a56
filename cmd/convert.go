package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/madstone-tech/toon/internal/adapters/cli"
	"github.com/madstone-tech/toon/internal/adapters/config"
	"github.com/madstone-tech/toon/internal/core/usecases"

	toonfmt "github.com/madstone-tech/toon"
)

// ConvertCommand batch-converts every file in a directory between JSON
// and TOON, matching input files by extension and writing siblings with
// the target extension.
type ConvertCommand struct {
	dir      string
	target   string // "toon" or "json"
	cfg      *config.Config
	progress usecases.ProgressReporter
}

// NewConvertCommand creates a new convert command.
func NewConvertCommand(dir, target string, cfg *config.Config) *ConvertCommand {
	return &ConvertCommand{dir: dir, target: target, cfg: cfg, progress: cli.NewProgressReporter()}
}

// Execute runs the convert command over every matching file in dir.
func (c *ConvertCommand) Execute(ctx context.Context) error {
	if c.target != "toon" && c.target != "json" {
		return fmt.Errorf("unsupported target format %q, want \"toon\" or \"json\"", c.target)
	}
	sourceExt := ".json"
	if c.target == "json" {
		sourceExt = ".toon"
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	var toConvert []os.DirEntry
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == sourceExt {
			toConvert = append(toConvert, entry)
		}
	}

	start := time.Now()
	stats := usecases.ConversionStats{Format: c.target}

	for i, entry := range toConvert {
		srcPath := filepath.Join(c.dir, entry.Name())
		dstPath := strings.TrimSuffix(srcPath, sourceExt) + "." + c.target

		c.progress.ReportProgress("convert", i+1, len(toConvert), entry.Name())
		n, err := c.convertOne(srcPath, dstPath)
		if err != nil {
			stats.FilesFailed++
			c.progress.ReportError(fmt.Errorf("%s: %w", srcPath, err))
			continue
		}
		stats.FilesConverted++
		stats.BytesWritten += n
	}

	stats.Duration = time.Since(start)
	cli.NewReportFormatter().PrintConversionReport(stats)

	if stats.FilesFailed > 0 {
		return fmt.Errorf("%d file(s) failed to convert", stats.FilesFailed)
	}
	return nil
}

func (c *ConvertCommand) convertOne(srcPath, dstPath string) (int64, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return 0, err
	}

	var output []byte
	if c.target == "toon" {
		var value any
		if err := json.Unmarshal(data, &value); err != nil {
			return 0, err
		}
		output, err = toonfmt.Encode(value, config.EncoderOptions(c.cfg)...)
		if err != nil {
			return 0, err
		}
	} else {
		value, err := toonfmt.Decode(string(data), config.DecoderOptions(c.cfg)...)
		if err != nil {
			return 0, err
		}
		output, err = json.MarshalIndent(value, "", "  ")
		if err != nil {
			return 0, err
		}
	}

	output = append(output, '\n')
	if err := os.WriteFile(dstPath, output, 0o644); err != nil {
		return 0, err
	}
	return int64(len(output)), nil
}
