package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Project represents the top-level tsgo.yaml project file: the compiler
// options that apply to every file in the project before per-file
// pragmas are layered on top.
type Project struct {
	// Include lists the glob patterns of source files to check.
	// Defaults to every recognized source extension under the project root.
	// cmd/tsc's file discovery does not read it; it walks the paths given
	// on the command line instead.
	Include []string `yaml:"include,omitempty"`

	// Exclude lists glob patterns to skip even if matched by Include.
	// Like Include, it is parsed but not read by cmd/tsc's file discovery.
	Exclude []string `yaml:"exclude,omitempty"`

	Strict                        bool `yaml:"strict,omitempty"`
	NoImplicitAny                 bool `yaml:"noImplicitAny,omitempty"`
	StrictNullChecks              bool `yaml:"strictNullChecks,omitempty"`
	StrictFunctionTypes           bool `yaml:"strictFunctionTypes,omitempty"`
	StrictPropertyInitialization  bool `yaml:"strictPropertyInitialization,omitempty"`
	UseUnknownInCatchVariables    bool `yaml:"useUnknownInCatchVariables,omitempty"`
	NoImplicitThis                bool `yaml:"noImplicitThis,omitempty"`

	NoImplicitReturns   bool `yaml:"noImplicitReturns,omitempty"`
	NoImplicitOverride  bool `yaml:"noImplicitOverride,omitempty"`
	NoUnusedLocals      bool `yaml:"noUnusedLocals,omitempty"`
	NoUnusedParameters  bool `yaml:"noUnusedParameters,omitempty"`
	AlwaysStrict        bool `yaml:"alwaysStrict,omitempty"`
	AllowUnreachableCode bool `yaml:"allowUnreachableCode,omitempty"`

	ExactOptionalPropertyTypes bool `yaml:"exactOptionalPropertyTypes,omitempty"`
	NoUncheckedIndexedAccess   bool `yaml:"noUncheckedIndexedAccess,omitempty"`
	DisableMethodBivariance    bool `yaml:"disableMethodBivariance,omitempty"`
	AllowVoidReturn            bool `yaml:"allowVoidReturn,omitempty"`
	AllowBivariantRest         bool `yaml:"allowBivariantRest,omitempty"`
	AllowBivariantParamCount   bool `yaml:"allowBivariantParamCount,omitempty"`

	MaxTemplateLiteralCombinations int `yaml:"maxTemplateLiteralCombinations,omitempty"`
}

// LoadProject reads and parses a tsgo.yaml file.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file %s: %w", path, err)
	}
	return ParseProject(data, path)
}

// ParseProject parses tsgo.yaml content from bytes. path is used only for
// error messages.
func ParseProject(data []byte, path string) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := p.validate(path); err != nil {
		return nil, err
	}
	p.setDefaults()
	return &p, nil
}

// FindProject searches for tsgo.yaml starting from dir and walking up to
// parent directories, stopping at the filesystem root. Returns an empty
// path and nil error if none is found.
func FindProject(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range []string{"tsgo.yaml", "tsgo.yml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (p *Project) validate(path string) error {
	if p.MaxTemplateLiteralCombinations < 0 {
		return fmt.Errorf("%s: maxTemplateLiteralCombinations must not be negative", path)
	}
	return nil
}

func (p *Project) setDefaults() {
	if len(p.Include) == 0 {
		p.Include = []string{"**/*.ts", "**/*.tsx", "**/*.mts", "**/*.cts"}
	}
	if p.MaxTemplateLiteralCombinations == 0 {
		p.MaxTemplateLiteralCombinations = 100_000
	}
}

// toOptions mirrors ApplyPragmas's bare-@strict toggle: Strict turns on
// the same six-flag subset. Individual project-file fields for that
// subset can only add flags on top of it; a field set to false does not
// turn off a flag that Strict turned on.
func (p *Project) toOptions() Options {
	opts := Default()
	if p.Strict {
		opts.NoImplicitAny = true
		opts.StrictNullChecks = true
		opts.StrictFunctionTypes = true
		opts.StrictPropertyInitialization = true
		opts.UseUnknownInCatchVariables = true
		opts.NoImplicitThis = true
	}
	if p.NoImplicitAny {
		opts.NoImplicitAny = true
	}
	if p.StrictNullChecks {
		opts.StrictNullChecks = true
	}
	if p.StrictFunctionTypes {
		opts.StrictFunctionTypes = true
	}
	if p.StrictPropertyInitialization {
		opts.StrictPropertyInitialization = true
	}
	if p.UseUnknownInCatchVariables {
		opts.UseUnknownInCatchVariables = true
	}
	if p.NoImplicitThis {
		opts.NoImplicitThis = true
	}
	opts.NoImplicitReturns = p.NoImplicitReturns
	opts.NoImplicitOverride = p.NoImplicitOverride
	opts.NoUnusedLocals = p.NoUnusedLocals
	opts.NoUnusedParameters = p.NoUnusedParameters
	opts.AlwaysStrict = p.AlwaysStrict
	opts.AllowUnreachableCode = p.AllowUnreachableCode
	opts.ExactOptionalPropertyTypes = p.ExactOptionalPropertyTypes
	opts.NoUncheckedIndexedAccess = p.NoUncheckedIndexedAccess
	opts.DisableMethodBivariance = p.DisableMethodBivariance
	opts.AllowVoidReturn = p.AllowVoidReturn
	opts.AllowBivariantRest = p.AllowBivariantRest
	opts.AllowBivariantParamCount = p.AllowBivariantParamCount
	opts.MaxTemplateLiteralCombinations = p.MaxTemplateLiteralCombinations
	return opts
}

// BaseOptions returns the project-wide Options a per-file pragma scan
// then layers on top of via ApplyPragmas.
func (p *Project) BaseOptions() Options {
	if p == nil {
		return Default()
	}
	return p.toOptions()
}
