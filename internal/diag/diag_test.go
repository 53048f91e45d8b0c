package diag

import (
	"strings"
	"testing"
)

func TestReportDedupesBySpanAndCode(t *testing.T) {
	s := NewSink("a.ts")
	if !s.Report(CategoryError, CodeCannotFindName, 10, 3, "foo") {
		t.Fatalf("first Report at a fresh (start, code) should succeed")
	}
	if s.Report(CategoryError, CodeCannotFindName, 10, 3, "foo") {
		t.Fatalf("second Report at the same (start, code) should be dropped")
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
}

func TestReportDistinctSpansBothKept(t *testing.T) {
	s := NewSink("a.ts")
	s.Report(CategoryError, CodeCannotFindName, 10, 3, "foo")
	s.Report(CategoryError, CodeCannotFindName, 20, 3, "bar")
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2 for diagnostics at distinct spans", s.Len())
	}
}

func TestOverrideReplacesInPlace(t *testing.T) {
	s := NewSink("a.ts")
	s.Report(CategoryError, CodeNotAssignable, 5, 4, "A", "B")
	s.Override(CategoryError, CodePropertyMissing, 5, 4, nil, "x", "A", "B")

	if s.Len() != 1 {
		t.Fatalf("Override at an occupied span should replace, not append: Len = %d", s.Len())
	}
	got := s.Diagnostics()[0]
	if got.Code != CodePropertyMissing {
		t.Fatalf("Override did not replace the diagnostic's code: got %d", got.Code)
	}
}

func TestOverrideAppendsWhenSpanFree(t *testing.T) {
	s := NewSink("a.ts")
	s.Override(CategoryError, CodePropertyMissing, 5, 4, nil, "x", "A", "B")
	if s.Len() != 1 {
		t.Fatalf("Override on an unoccupied span should append: Len = %d", s.Len())
	}
}

func TestHasCodeAtAndHasAnyAt(t *testing.T) {
	s := NewSink("a.ts")
	s.Report(CategoryError, CodeCannotFindName, 10, 3, "foo")

	if !s.HasCodeAt(10, CodeCannotFindName) {
		t.Fatalf("HasCodeAt should find the reported (start, code)")
	}
	if s.HasCodeAt(10, CodeNotAssignable) {
		t.Fatalf("HasCodeAt should not match a different code at the same start")
	}
	if !s.HasAnyAt(10) {
		t.Fatalf("HasAnyAt should find any diagnostic at start")
	}
	if s.HasAnyAt(99) {
		t.Fatalf("HasAnyAt should report false for an untouched start")
	}
}

func TestFormatMessagePlaceholderSubstitution(t *testing.T) {
	msg, ok := FormatMessage(CodeNotAssignable, "string", "number")
	if !ok {
		t.Fatalf("FormatMessage should recognize CodeNotAssignable")
	}
	want := "Type 'string' is not assignable to type 'number'."
	if msg != want {
		t.Fatalf("FormatMessage = %q, want %q", msg, want)
	}
}

func TestFormatMessageUnknownCode(t *testing.T) {
	if _, ok := FormatMessage(999999); ok {
		t.Fatalf("FormatMessage should report ok=false for an unregistered code")
	}
}

func TestReportFallsBackForUnknownCode(t *testing.T) {
	s := NewSink("a.ts")
	s.Report(CategoryError, 999999, 0, 1)
	msg := s.Diagnostics()[0].Message
	if !strings.Contains(msg, "999999") {
		t.Fatalf("Report should fall back to a generic message naming the unknown code, got %q", msg)
	}
}

func TestChainLinksInOrder(t *testing.T) {
	head := Chain(
		RelatedInfo{File: "a.ts", Start: 1, Message: "inner"},
		RelatedInfo{File: "a.ts", Start: 2, Message: "outer"},
	)
	if head == nil || head.Message != "inner" {
		t.Fatalf("Chain's head should be the first RelatedInfo")
	}
	if head.Next == nil || head.Next.Message != "outer" {
		t.Fatalf("Chain should link subsequent RelatedInfo via Next")
	}
	if head.Next.Next != nil {
		t.Fatalf("Chain's tail Next should be nil")
	}
}

func TestChainEmpty(t *testing.T) {
	if Chain() != nil {
		t.Fatalf("Chain() with no args should return nil")
	}
}

func TestReportWithRelatedAttachesChain(t *testing.T) {
	s := NewSink("a.ts")
	related := Chain(RelatedInfo{File: "a.ts", Start: 3, Message: "property 'x' is incompatible"})
	s.ReportWithRelated(CategoryError, CodeNotAssignable, 0, 1, related, "A", "B")

	got := s.Diagnostics()[0]
	if got.Related == nil || got.Related.Message != "property 'x' is incompatible" {
		t.Fatalf("ReportWithRelated should attach the elaboration chain")
	}
}

func TestMarshalJSONShape(t *testing.T) {
	s := NewSink("a.ts")
	related := Chain(RelatedInfo{File: "a.ts", Start: 3, Length: 1, Message: "nested"})
	s.ReportWithRelated(CategoryError, CodeNotAssignable, 0, 5, related, "A", "B")

	out, err := MarshalJSON(s.Diagnostics())
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	text := string(out)
	for _, want := range []string{`"file":"a.ts"`, `"code":2322`, `"category":"error"`, `"nested"`} {
		if !strings.Contains(text, want) {
			t.Fatalf("MarshalJSON output missing %q, got %s", want, text)
		}
	}
}

func TestMarshalJSONEmpty(t *testing.T) {
	out, err := MarshalJSON(nil)
	if err != nil {
		t.Fatalf("MarshalJSON(nil) failed: %v", err)
	}
	if strings.TrimSpace(string(out)) != "[]" {
		t.Fatalf("MarshalJSON(nil) = %s, want []", out)
	}
}

func TestCategoryString(t *testing.T) {
	cases := map[Category]string{
		CategoryError:      "error",
		CategoryWarning:    "warning",
		CategorySuggestion: "suggestion",
		CategoryMessage:    "message",
	}
	for cat, want := range cases {
		if got := cat.String(); got != want {
			t.Errorf("Category(%d).String() = %q, want %q", cat, got, want)
		}
	}
}
