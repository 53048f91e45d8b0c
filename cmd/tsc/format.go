package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/funvibe/tsgo-core/internal/diag"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
	ansiDim    = "\x1b[2m"
)

// printDiagnostics writes one line per diagnostic in the shape
// `file:line:col - category TSxxxx: message`, colorizing the category
// label when color is enabled. Source positions are byte offsets, so
// each file's text is re-read once to translate Start into a 1-based
// line/column pair.
func printDiagnostics(w io.Writer, diags []diag.Diagnostic, color bool) {
	lineIndex := make(map[string][]int)
	for _, d := range diags {
		if _, ok := lineIndex[d.File]; ok {
			continue
		}
		lineIndex[d.File] = buildLineStarts(d.File)
	}

	for _, d := range diags {
		line, col := lineAndColumn(lineIndex[d.File], d.Start)
		label := categoryLabel(d.Category, color)
		fmt.Fprintf(w, "%s:%d:%d - %s TS%d: %s\n", d.File, line, col, label, d.Code, d.Message)
		printRelated(w, d.Related, color)
	}
}

func printRelated(w io.Writer, r *diag.RelatedInfo, color bool) {
	for cur := r; cur != nil; cur = cur.Next {
		prefix := "    "
		if color {
			fmt.Fprintf(w, "%s%s%s:%d: %s%s\n", ansiDim, prefix, cur.File, cur.Start, cur.Message, ansiReset)
		} else {
			fmt.Fprintf(w, "%s%s:%d: %s\n", prefix, cur.File, cur.Start, cur.Message)
		}
	}
}

func categoryLabel(cat diag.Category, color bool) string {
	name := cat.String()
	if !color {
		return name
	}
	switch cat {
	case diag.CategoryError:
		return ansiRed + name + ansiReset
	case diag.CategoryWarning:
		return ansiYellow + name + ansiReset
	default:
		return ansiCyan + name + ansiReset
	}
}

// buildLineStarts returns the byte offset each line begins at, used to
// binary-search a diagnostic's Start offset down to a line number.
// Returns nil if the file can no longer be read (best-effort: the
// diagnostic still prints, at line 1 with the raw byte offset plus one
// as its column).
func buildLineStarts(file string) []int {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil
	}
	starts := []int{0}
	for i, b := range data {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func lineAndColumn(starts []int, offset int) (line, col int) {
	if len(starts) == 0 {
		return 1, offset + 1
	}
	lo, hi := 0, len(starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1, offset - starts[lo] + 1
}

// printSummary reports how many files were checked, how many
// diagnostics of each category were found, and how long the run took —
// grounded on the teacher CLI's own "Compiled ... (N bytes, M modules)"
// closing lines.
func printSummary(w io.Writer, files []string, diags []diag.Diagnostic, elapsed time.Duration) {
	var errors, warnings int
	for _, d := range diags {
		switch d.Category {
		case diag.CategoryError:
			errors++
		case diag.CategoryWarning:
			warnings++
		}
	}
	fmt.Fprintf(w, "\nChecked %s file(s) in %s: %s error(s), %s warning(s)\n",
		humanize.Comma(int64(len(files))), elapsed.Round(time.Millisecond),
		humanize.Comma(int64(errors)), humanize.Comma(int64(warnings)))
}
