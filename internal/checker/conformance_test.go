package checker

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/funvibe/tsgo-core/internal/config"
	"github.com/funvibe/tsgo-core/internal/diag"
)

// TestConformanceFixtures runs every testdata/conformance/*.txtar archive
// through the checker and compares its rendered diagnostics against the
// archive's "want" file — one fixture per scenario, the same
// table-of-cases-as-archive shape golang.org/x/tools uses for its own
// analysis-pass test suites.
func TestConformanceFixtures(t *testing.T) {
	paths, err := filepath.Glob("testdata/conformance/*.txtar")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no conformance fixtures found under testdata/conformance")
	}

	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			archive, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatalf("parsing archive: %s", err)
			}
			input := archiveFile(archive, "input.ts")
			want := archiveFile(archive, "want")
			if input == nil {
				t.Fatal("archive is missing an input.ts file")
			}
			if want == nil {
				t.Fatal("archive is missing a want file")
			}

			c := New("input.ts", string(input.Data), config.Default())
			got := formatDiagnostics(c.Check().Diagnostics())
			if got != strings.TrimSpace(string(want.Data)) {
				t.Fatalf("diagnostics mismatch\n got: %q\nwant: %q", got, strings.TrimSpace(string(want.Data)))
			}
		})
	}
}

func archiveFile(a *txtar.Archive, name string) *txtar.File {
	for i := range a.Files {
		if a.Files[i].Name == name {
			return &a.Files[i]
		}
	}
	return nil
}

// formatDiagnostics renders diagnostics the way a fixture's "want" file
// spells them: one "TSxxxx category: message" line per diagnostic, in
// emission order. Byte offsets are intentionally left out — they're
// exercised by cmd/tsc's own line/column translation, not the façade.
func formatDiagnostics(diags []diag.Diagnostic) string {
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("TS%d %s: %s", d.Code, d.Category, d.Message)
	}
	return strings.Join(lines, "\n")
}
