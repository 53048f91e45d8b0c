package config

import "testing"

func TestApplyPragmasIndividualFlag(t *testing.T) {
	src := "// @strictNullChecks: true\nconst x: string | null = null;\n"
	opts := ApplyPragmas(Default(), src)
	if !opts.StrictNullChecks {
		t.Fatalf("expected strictNullChecks to be set from pragma")
	}
	if opts.NoImplicitAny {
		t.Fatalf("unrelated flag should stay at default")
	}
}

func TestApplyPragmasStrictFallback(t *testing.T) {
	src := "// @strict\nfunction f(x) { return x }\n"
	opts := ApplyPragmas(Default(), src)
	for _, got := range []bool{
		opts.NoImplicitAny, opts.StrictNullChecks, opts.StrictFunctionTypes,
		opts.StrictPropertyInitialization, opts.UseUnknownInCatchVariables, opts.NoImplicitThis,
	} {
		if !got {
			t.Fatalf("@strict should toggle the full fallback subset, got %+v", opts)
		}
	}
	if opts.NoUnusedLocals {
		t.Fatalf("@strict must not touch individually-read flags")
	}
}

func TestApplyPragmasExplicitOverridesStrict(t *testing.T) {
	src := "// @strict\n// @strictNullChecks: false\n"
	opts := ApplyPragmas(Default(), src)
	if opts.StrictNullChecks {
		t.Fatalf("a later explicit pragma should override the @strict fallback")
	}
	if !opts.NoImplicitAny {
		t.Fatalf("other @strict-subset flags should remain set")
	}
}

func TestApplyPragmasOnlyScansLeadingLines(t *testing.T) {
	var src string
	for i := 0; i < pragmaScanLines+5; i++ {
		src += "//\n"
	}
	src += "// @strict\n"
	opts := ApplyPragmas(Default(), src)
	if opts.NoImplicitAny {
		t.Fatalf("pragma past the scan window must be ignored")
	}
}

func TestApplyPragmasIgnoresMalformedValue(t *testing.T) {
	src := "// @strictNullChecks: maybe\n"
	opts := ApplyPragmas(Default(), src)
	if opts.StrictNullChecks {
		t.Fatalf("a non-boolean pragma value should be ignored, not crash")
	}
}

func TestToPolicyProjectsSubtypeFlags(t *testing.T) {
	opts := Default()
	opts.StrictNullChecks = true
	opts.AllowVoidReturn = true
	policy := opts.ToPolicy()
	if !policy.StrictNullChecks || !policy.AllowVoidReturn {
		t.Fatalf("ToPolicy did not carry over the set flags: %+v", policy)
	}
}
