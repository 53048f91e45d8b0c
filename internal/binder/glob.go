package binder

// matchAmbientModule reports whether specifier matches an ambient
// module pattern where `*` matches any run of characters, including
// `/` (spec §4.5 / original_source's symbol_resolver_utils.rs). This is
// deliberately not regexp: ambient patterns are a single `*` wildcard
// grammar, not general regular expressions, so a small dedicated
// matcher keeps the semantics exact and avoids pulling in regexp just
// for this one shape.
func matchAmbientModule(pattern, specifier string) bool {
	return wildcardMatch(pattern, specifier)
}

// wildcardMatch implements the classic two-pointer "*"-only wildcard
// matching algorithm: on a mismatch after a seen '*', retry by
// consuming one more character of s under that star instead of
// backtracking recursively.
func wildcardMatch(pattern, s string) bool {
	pi, si := 0, 0
	starIdx, starMatch := -1, 0

	for si < len(s) {
		switch {
		case pi < len(pattern) && pattern[pi] == '*':
			starIdx = pi
			starMatch = si
			pi++
		case pi < len(pattern) && pattern[pi] == s[si]:
			pi++
			si++
		case starIdx != -1:
			pi = starIdx + 1
			starMatch++
			si = starMatch
		default:
			return false
		}
	}

	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}
	return pi == len(pattern)
}
