package config

import (
	"strconv"
	"strings"

	"github.com/funvibe/tsgo-core/internal/subtype"
)

// Options is the compiler's strictness configuration (spec §4.4's policy
// knobs plus the assignability-adjacent compiler options spec §4.5 scans
// for as file-comment pragmas).
type Options struct {
	// The @strict fallback subset: toggled together by a bare `@strict`
	// pragma, or individually by their own `@flag: value` pragma.
	NoImplicitAny                 bool
	StrictNullChecks              bool
	StrictFunctionTypes           bool
	StrictPropertyInitialization  bool
	UseUnknownInCatchVariables    bool
	NoImplicitThis                bool

	// Read individually only; @strict does not touch these.
	NoImplicitReturns   bool
	NoImplicitOverride  bool
	NoUnusedLocals      bool
	NoUnusedParameters  bool
	AlwaysStrict        bool
	AllowUnreachableCode bool

	// Subtype Checker policy knobs (spec §4.4), also pragma-overridable.
	ExactOptionalPropertyTypes bool
	NoUncheckedIndexedAccess   bool
	DisableMethodBivariance    bool
	AllowVoidReturn            bool
	AllowBivariantRest         bool
	AllowBivariantParamCount   bool

	// MaxTemplateLiteralCombinations caps the evaluator's template-literal
	// cross product (spec §9 Open Question; default matches the catalog's
	// 100k figure).
	MaxTemplateLiteralCombinations int
}

// Default returns the out-of-the-box Options: nothing strict, the
// evaluator's default cardinality ceiling.
func Default() Options {
	return Options{MaxTemplateLiteralCombinations: 100_000}
}

// ToPolicy projects the subtype-relevant subset of Options onto a
// subtype.Policy for the Subtype Checker.
func (o Options) ToPolicy() subtype.Policy {
	return subtype.Policy{
		StrictNullChecks:           o.StrictNullChecks,
		StrictFunctionTypes:        o.StrictFunctionTypes,
		ExactOptionalPropertyTypes: o.ExactOptionalPropertyTypes,
		NoUncheckedIndexedAccess:   o.NoUncheckedIndexedAccess,
		DisableMethodBivariance:    o.DisableMethodBivariance,
		AllowVoidReturn:            o.AllowVoidReturn,
		AllowBivariantRest:         o.AllowBivariantRest,
		AllowBivariantParamCount:   o.AllowBivariantParamCount,
	}
}

// strictFallbackFields are the flags a bare `@strict` pragma toggles.
var strictFallbackFields = []string{
	"noImplicitAny", "strictNullChecks", "strictFunctionTypes",
	"strictPropertyInitialization", "useUnknownInCatchVariables", "noImplicitThis",
}

// pragmaScanLines is how far into a file spec §4.5 looks for option
// pragmas.
const pragmaScanLines = 32

// ApplyPragmas scans the first pragmaScanLines lines of source for
// `// @flag: value` pragmas (case-insensitive key, `true`/`false` value
// with optional trailing `,`/`;`) and a bare `// @strict` toggle, and
// returns a copy of base with them applied.
func ApplyPragmas(base Options, source string) Options {
	opts := base
	lines := strings.SplitN(source, "\n", pragmaScanLines+1)
	if len(lines) > pragmaScanLines {
		lines = lines[:pragmaScanLines]
	}

	for _, line := range lines {
		key, value, ok := parsePragmaLine(line)
		if !ok {
			continue
		}
		if strings.EqualFold(key, "strict") {
			for _, f := range strictFallbackFields {
				setField(&opts, f, value)
			}
			continue
		}
		setField(&opts, key, value)
	}
	return opts
}

// parsePragmaLine recognizes `// @key: value` and bare `// @key` (which
// implies value true). Trailing `,`/`;` on the value are trimmed.
func parsePragmaLine(line string) (key string, value bool, ok bool) {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "//")
	trimmed = strings.TrimSpace(trimmed)
	if !strings.HasPrefix(trimmed, "@") {
		return "", false, false
	}
	trimmed = trimmed[1:]

	if idx := strings.IndexByte(trimmed, ':'); idx >= 0 {
		key = strings.TrimSpace(trimmed[:idx])
		raw := strings.TrimSpace(trimmed[idx+1:])
		raw = strings.TrimRight(raw, ",; \t")
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return "", false, false
		}
		return key, b, true
	}

	key = strings.TrimSpace(trimmed)
	if key == "" {
		return "", false, false
	}
	return key, true, true
}

func setField(opts *Options, name string, value bool) {
	switch strings.ToLower(name) {
	case "noimplicitany":
		opts.NoImplicitAny = value
	case "strictnullchecks":
		opts.StrictNullChecks = value
	case "strictfunctiontypes":
		opts.StrictFunctionTypes = value
	case "strictpropertyinitialization":
		opts.StrictPropertyInitialization = value
	case "useunknownincatchvariables":
		opts.UseUnknownInCatchVariables = value
	case "noimplicitthis":
		opts.NoImplicitThis = value
	case "noimplicitreturns":
		opts.NoImplicitReturns = value
	case "noimplicitoverride":
		opts.NoImplicitOverride = value
	case "nounusedlocals":
		opts.NoUnusedLocals = value
	case "nounusedparameters":
		opts.NoUnusedParameters = value
	case "alwaysstrict":
		opts.AlwaysStrict = value
	case "allowunreachablecode":
		opts.AllowUnreachableCode = value
	case "exactoptionalpropertytypes":
		opts.ExactOptionalPropertyTypes = value
	case "nouncheckedindexedaccess":
		opts.NoUncheckedIndexedAccess = value
	case "disablemethodbivariance":
		opts.DisableMethodBivariance = value
	case "allowvoidreturn":
		opts.AllowVoidReturn = value
	case "allowbivariantrest":
		opts.AllowBivariantRest = value
	case "allowbivariantparamcount":
		opts.AllowBivariantParamCount = value
	}
}
