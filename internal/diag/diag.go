// Package diag is the diagnostic output surface: records, the templated
// message table, span+code dedup, and elaboration chains (spec §6/§7).
package diag

import (
	"fmt"
	"strconv"
	"strings"
)

// Category classifies a Diagnostic for the CLI's display and for
// downstream tooling that filters on severity.
type Category uint8

const (
	CategoryError Category = iota
	CategoryWarning
	CategorySuggestion
	CategoryMessage
)

func (c Category) String() string {
	switch c {
	case CategoryError:
		return "error"
	case CategoryWarning:
		return "warning"
	case CategorySuggestion:
		return "suggestion"
	case CategoryMessage:
		return "message"
	default:
		return "unknown"
	}
}

// RelatedInfo is one link in a diagnostic's elaboration chain (spec
// §4.5 Elaboration): a secondary span with its own message, e.g.
// "types of property 'x' are incompatible" nested under a top-level
// TS2322.
type RelatedInfo struct {
	File    string
	Start   int
	Length  int
	Message string
	Next    *RelatedInfo
}

// Diagnostic is one reported problem, matching spec §6's wire shape
// `{file, start, length, category, code, message, related[]}`.
type Diagnostic struct {
	File     string
	Start    int
	Length   int
	Category Category
	Code     int
	Message  string
	Related  *RelatedInfo
}

// key is the span+code dedup key from spec §7: duplicate diagnostics at
// the same (start, code) are dropped, keeping the first (more specific
// diagnostics must be emitted before the generic one they supersede).
type key struct {
	start int
	code  int
}

// Sink collects diagnostics for one compilation unit, deduplicating by
// (start, code) and preserving emission order otherwise.
type Sink struct {
	file string
	seen map[key]int // key -> index into diags, for override-in-place
	diags []Diagnostic
}

// NewSink returns a Sink for the named file.
func NewSink(file string) *Sink {
	return &Sink{file: file, seen: make(map[key]int)}
}

// Report formats code's template against args and appends the
// resulting Diagnostic, unless a diagnostic already occupies (start,
// code) — spec §7's dedup rule. Returns whether it was actually added.
func (s *Sink) Report(category Category, code, start, length int, args ...any) bool {
	msg, ok := FormatMessage(code, args...)
	if !ok {
		msg = fmt.Sprintf("unknown diagnostic code %d", code)
	}
	return s.add(Diagnostic{
		File: s.file, Start: start, Length: length,
		Category: category, Code: code, Message: msg,
	})
}

// ReportWithRelated is Report plus an elaboration chain.
func (s *Sink) ReportWithRelated(category Category, code, start, length int, related *RelatedInfo, args ...any) bool {
	msg, ok := FormatMessage(code, args...)
	if !ok {
		msg = fmt.Sprintf("unknown diagnostic code %d", code)
	}
	return s.add(Diagnostic{
		File: s.file, Start: start, Length: length,
		Category: category, Code: code, Message: msg, Related: related,
	})
}

// Override replaces whatever diagnostic occupies (start, code), if any,
// with a more specific one — spec §7: "more specific ones ... override
// generic TS2322 at the same span." If nothing occupies the span it is
// added normally.
func (s *Sink) Override(category Category, code, start, length int, related *RelatedInfo, args ...any) {
	msg, ok := FormatMessage(code, args...)
	if !ok {
		msg = fmt.Sprintf("unknown diagnostic code %d", code)
	}
	d := Diagnostic{File: s.file, Start: start, Length: length, Category: category, Code: code, Message: msg, Related: related}
	if idx, ok := s.seen[key{start, code}]; ok {
		s.diags[idx] = d
		return
	}
	s.seen[key{start, code}] = len(s.diags)
	s.diags = append(s.diags, d)
}

func (s *Sink) add(d Diagnostic) bool {
	k := key{d.Start, d.Code}
	if _, dup := s.seen[k]; dup {
		return false
	}
	s.seen[k] = len(s.diags)
	s.diags = append(s.diags, d)
	return true
}

// HasCodeAt reports whether some diagnostic already occupies (start,
// code) — used by call sites implementing spec §7's cascade
// suppression ("must also check whether a more specific diagnostic was
// already emitted at the same span").
func (s *Sink) HasCodeAt(start, code int) bool {
	_, ok := s.seen[key{start, code}]
	return ok
}

// HasAnyAt reports whether any diagnostic has been emitted at start,
// regardless of code.
func (s *Sink) HasAnyAt(start int) bool {
	for k := range s.seen {
		if k.start == start {
			return true
		}
	}
	return false
}

// Diagnostics returns the accumulated diagnostics in emission order.
func (s *Sink) Diagnostics() []Diagnostic {
	return s.diags
}

// Len reports how many diagnostics have been recorded.
func (s *Sink) Len() int { return len(s.diags) }

// Chain builds a RelatedInfo list from innermost to outermost, i.e.
// Chain(a, b, c) links a -> b -> c via Next.
func Chain(infos ...RelatedInfo) *RelatedInfo {
	if len(infos) == 0 {
		return nil
	}
	head := &infos[0]
	cur := head
	for i := 1; i < len(infos); i++ {
		cur.Next = &infos[i]
		cur = cur.Next
	}
	return head
}

// FormatMessage substitutes {0}, {1}, ... placeholders in code's
// template with args (stringified via fmt.Sprint). ok is false for an
// unregistered code.
func FormatMessage(code int, args ...any) (string, bool) {
	tmpl, ok := messages[code]
	if !ok {
		return "", false
	}
	return substitutePlaceholders(tmpl, args), true
}

func substitutePlaceholders(tmpl string, args []any) string {
	var b strings.Builder
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] == '{' {
			if end := strings.IndexByte(tmpl[i:], '}'); end > 0 {
				idxStr := tmpl[i+1 : i+end]
				if n, err := strconv.Atoi(idxStr); err == nil && n >= 0 && n < len(args) {
					fmt.Fprint(&b, args[n])
					i += end
					continue
				}
			}
		}
		b.WriteByte(tmpl[i])
	}
	return b.String()
}
