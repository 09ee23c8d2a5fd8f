package report

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatError reports a metric value the formatter cannot render: negative
// or non-finite numbers are malformed input, never silently rounded away.
type FormatError struct {
	Field string
	Value float64
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format %s: invalid value %v", e.Field, e.Value)
}

// Formatter renders the report's numeric cells with a fixed locale so that
// equivalent input always produces byte-identical output.
type Formatter struct {
	printer *message.Printer
}

func NewFormatter() *Formatter {
	return &Formatter{printer: message.NewPrinter(language.English)}
}

func (f *Formatter) check(field string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return &FormatError{Field: field, Value: v}
	}
	return nil
}

// Count renders an overview figure: integer with thousands separators,
// e.g. 71764.8 -> "71,765".
func (f *Formatter) Count(field string, v float64) (string, error) {
	if err := f.check(field, v); err != nil {
		return "", err
	}
	return f.printer.Sprintf("%.0f", v), nil
}

// Rate renders a detail-table throughput figure: one decimal place with
// thousands separators, e.g. 71764.8 -> "71,764.8".
func (f *Formatter) Rate(field string, v float64) (string, error) {
	if err := f.check(field, v); err != nil {
		return "", err
	}
	return f.printer.Sprintf("%.1f", v), nil
}

// Duration renders a latency figure in milliseconds with three decimal
// places, e.g. 0.0114 -> "0.011ms".
func (f *Formatter) Duration(field string, v float64) (string, error) {
	if err := f.check(field, v); err != nil {
		return "", err
	}
	return fmt.Sprintf("%.3fms", v), nil
}
