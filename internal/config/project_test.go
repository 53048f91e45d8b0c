package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseProjectDefaults(t *testing.T) {
	p, err := ParseProject([]byte("strict: true\n"), "tsgo.yaml")
	if err != nil {
		t.Fatalf("ParseProject: %v", err)
	}
	if len(p.Include) == 0 {
		t.Fatalf("expected default Include globs to be filled in")
	}
	if p.MaxTemplateLiteralCombinations != 100_000 {
		t.Fatalf("expected default cardinality cap, got %d", p.MaxTemplateLiteralCombinations)
	}
	opts := p.BaseOptions()
	if !opts.StrictNullChecks || !opts.NoImplicitAny {
		t.Fatalf("strict: true should flip the fallback subset, got %+v", opts)
	}
}

func TestParseProjectRejectsNegativeCardinalityCap(t *testing.T) {
	_, err := ParseProject([]byte("maxTemplateLiteralCombinations: -1\n"), "tsgo.yaml")
	if err == nil {
		t.Fatalf("expected validation error for negative cap")
	}
}

func TestFindProjectWalksUp(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "tsgo.yaml"), []byte("strict: true\n"), 0o644); err != nil {
		t.Fatalf("seeding project file: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	found, err := FindProject(nested)
	if err != nil {
		t.Fatalf("FindProject: %v", err)
	}
	want := filepath.Join(root, "tsgo.yaml")
	if found != want {
		t.Fatalf("found %q, want %q", found, want)
	}
}

func TestFindProjectReturnsEmptyWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	found, err := FindProject(dir)
	if err != nil {
		t.Fatalf("FindProject: %v", err)
	}
	if found != "" {
		t.Fatalf("expected no project file to be found, got %q", found)
	}
}

func TestBaseOptionsNilProject(t *testing.T) {
	var p *Project
	opts := p.BaseOptions()
	if opts.MaxTemplateLiteralCombinations != 100_000 {
		t.Fatalf("nil project should fall back to Default()")
	}
}
