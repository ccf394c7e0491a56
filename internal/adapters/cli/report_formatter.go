package cli

import (
	"fmt"
	"time"

	"github.com/madstone-tech/toon/internal/core/usecases"
	"github.com/madstone-tech/toon/internal/ui"
)

// Compile-time interface check
var _ usecases.ReportFormatter = (*ReportFormatter)(nil)

// ReportFormatter implements the usecases.ReportFormatter interface
// for CLI output formatting, rendering through ui.Output so reports
// share the same styling as the rest of the CLI.
type ReportFormatter struct {
	out *ui.Output
}

// NewReportFormatter creates a new ReportFormatter instance.
func NewReportFormatter() *ReportFormatter {
	return &ReportFormatter{out: ui.NewOutput()}
}

// PrintValidationReport prints validation errors to stdout.
func (f *ReportFormatter) PrintValidationReport(errors []usecases.ValidationError) {
	if len(errors) == 0 {
		f.out.Success("no validation errors found")
		return
	}

	for _, err := range errors {
		if err.Line > 0 {
			f.out.Error(fmt.Sprintf("[%s] %s:%d — %s", err.Code, err.Path, err.Line, err.Message))
		} else {
			f.out.Error(fmt.Sprintf("[%s] %s — %s", err.Code, err.Path, err.Message))
		}
	}

	f.out.Newline()
	f.out.Info(fmt.Sprintf("total errors: %d", len(errors)))
}

// PrintConversionReport prints batch conversion statistics to stdout.
func (f *ReportFormatter) PrintConversionReport(stats usecases.ConversionStats) {
	f.out.Title(fmt.Sprintf("conversion complete (%s)", stats.Format))
	f.out.KeyValue("files converted", fmt.Sprintf("%d", stats.FilesConverted))
	if stats.FilesFailed > 0 {
		f.out.Warning(fmt.Sprintf("files failed: %d", stats.FilesFailed))
	}
	f.out.KeyValue("bytes written", fmt.Sprintf("%d", stats.BytesWritten))
	f.out.KeyValue("duration", stats.Duration.Round(time.Millisecond).String())
}
