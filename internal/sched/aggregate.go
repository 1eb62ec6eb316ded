package sched

import (
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"unicode/utf8"
)

// Display selects how collected jobs are rendered. Construct it through
// NewDisplay so the variants stay consistent.
type Display struct {
	Totals         bool
	ShowProperties bool
	ShowContent    bool
}

// NewDisplay builds a display mode from the raw list flags. Totals wins:
// when totals are requested the per-job property and content flags are
// silently ignored, matching the original tool's behavior.
func NewDisplay(totals, showProperties, showContent bool) Display {
	if totals {
		return Display{Totals: true}
	}
	return Display{ShowProperties: showProperties, ShowContent: showContent}
}

// Aggregator turns the collected job stream into rendered output. In
// detail mode each record is written as it arrives, preserving broker
// reply order. In totals mode records only bump per-destination counters
// and nothing is written until Flush, so a failed collection never leaves
// a partial table behind.
type Aggregator struct {
	w       io.Writer
	display Display
	counts  map[string]int
}

func NewAggregator(w io.Writer, display Display) *Aggregator {
	return &Aggregator{
		w:       w,
		display: display,
		counts:  make(map[string]int),
	}
}

func (a *Aggregator) Record(ref JobRef) error {
	if a.display.Totals {
		a.counts[ref.Destination]++
		return nil
	}

	if _, err := fmt.Fprintf(a.w, "%s\t%s\n", ref.ID, ref.Destination); err != nil {
		return err
	}
	if a.display.ShowProperties {
		if _, err := fmt.Fprintln(a.w, "-- Properties"); err != nil {
			return err
		}
		for name, value := range ref.Properties {
			if _, err := fmt.Fprintf(a.w, "%s = %s\n", name, value); err != nil {
				return err
			}
		}
	}
	if a.display.ShowContent {
		if _, err := fmt.Fprintln(a.w, "-- Content"); err != nil {
			return err
		}
		if _, err := io.WriteString(a.w, hex.Dump(ref.Payload)); err != nil {
			return err
		}
	}
	if a.display.ShowProperties || a.display.ShowContent {
		if _, err := fmt.Fprintln(a.w, "--"); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(a.w); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes the totals table after the stream has fully drained. One
// line per destination in lexicographic order, names padded to the longest
// name, counts right-aligned. An empty stream writes nothing at all. In
// detail mode Flush is a no-op.
func (a *Aggregator) Flush() error {
	if !a.display.Totals || len(a.counts) == 0 {
		return nil
	}

	names := make([]string, 0, len(a.counts))
	width := 0
	for name := range a.counts {
		names = append(names, name)
		// fmt pads string verbs by rune count, so the width must be
		// measured in runes or non-ASCII names skew the column.
		if n := utf8.RuneCountInString(name); n > width {
			width = n
		}
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(a.w, "%-*s %10d\n", width, name, a.counts[name]); err != nil {
			return err
		}
	}
	return nil
}
