package report

import (
	"fmt"
	"strings"

	"github.com/DVNghiem/veloxloop-bench/internal/results"
)

// detailColumns is the fixed detail-table header. Golden reports depend on
// the exact text and order.
var detailColumns = []string{"Loop", "RPS", "Mean Latency", "99p Latency", "Min", "Max"}

// Renderer emits one markdown table at a time. It holds no state beyond the
// formatter, so a single renderer serves a whole report.
type Renderer struct {
	f *Formatter
}

func NewRenderer() *Renderer {
	return &Renderer{f: NewFormatter()}
}

// Overview renders the section summary: one column per configuration key in
// declared order, one row per declared loop, cell = integer-rounded RPS.
// A loop with no record for a key gets an empty cell; a loop with no record
// for any key gets no row at all.
func (r *Renderer) Overview(sec results.SectionResults, keys []string) (string, error) {
	var b strings.Builder

	writeRow(&b, append([]string{"Loop"}, keys...))
	writeSeparator(&b, len(keys)+1)

	for _, loop := range Loops {
		cells := []string{loop}
		present := false
		for _, key := range keys {
			rec, ok := sec[key][loop]
			if !ok {
				cells = append(cells, "")
				continue
			}
			cell, err := r.f.Count("rps", rec.RPS)
			if err != nil {
				return "", fmt.Errorf("key %s: loop %s: %w", key, loop, err)
			}
			cells = append(cells, cell)
			present = true
		}
		if !present {
			continue
		}
		writeRow(&b, cells)
	}

	return b.String(), nil
}

// Detail renders the full latency table for one configuration key: one row
// per declared loop that has a record, fixed six-column schema.
func (r *Renderer) Detail(kr results.KeyResults) (string, error) {
	var b strings.Builder

	writeRow(&b, detailColumns)
	writeSeparator(&b, len(detailColumns))

	for _, loop := range Loops {
		rec, ok := kr[loop]
		if !ok {
			continue
		}
		cells, err := r.detailCells(loop, rec)
		if err != nil {
			return "", fmt.Errorf("loop %s: %w", loop, err)
		}
		writeRow(&b, cells)
	}

	return b.String(), nil
}

func (r *Renderer) detailCells(loop string, rec results.Record) ([]string, error) {
	rps, err := r.f.Rate("rps", rec.RPS)
	if err != nil {
		return nil, err
	}
	cells := []string{loop, rps}
	for _, m := range []struct {
		field string
		value float64
	}{
		{"mean", rec.Mean},
		{"p99", rec.P99},
		{"min", rec.Min},
		{"max", rec.Max},
	} {
		cell, err := r.f.Duration(m.field, m.value)
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}
	return cells, nil
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |\n")
}

func writeSeparator(b *strings.Builder, n int) {
	b.WriteString("|")
	b.WriteString(strings.Repeat(" --- |", n))
	b.WriteString("\n")
}
