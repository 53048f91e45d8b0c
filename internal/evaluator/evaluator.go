// Package evaluator reduces meta-types — conditional, mapped, index
// access, keyof, template literal, and the string-case intrinsics — to
// concrete types (spec §4.2).
package evaluator

import (
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/funvibe/tsgo-core/internal/types"
)

// maxDepth bounds the recursive evaluation walk.
const maxDepth = 50

// maxUnionDistribution caps how many members a single conditional
// distribution step may fan out over.
const maxUnionDistribution = 100

// DefaultMaxTemplateCombinations is the default cardinality ceiling for
// template-literal cross products (spec §4.2, Open Question in §9:
// configurable, default taken from the 100k figure in the catalog).
const DefaultMaxTemplateCombinations = 100_000

// InferResult is what a conditional's extends-clause match produces:
// whether check <: extends held, and if so, the bindings captured for
// any `infer X` variables inside extends.
type InferResult struct {
	Matched  bool
	Bindings map[string]types.TypeId
}

// ConditionalMatcher decides whether check is assignable to ext while
// collecting infer-variable bindings. It is implemented by
// internal/subtype and injected here to avoid an import cycle (the
// subtype checker also needs to ask the evaluator to reduce meta-types
// found mid-comparison).
type ConditionalMatcher func(check, ext types.TypeId, skipInfer bool) InferResult

// Substituter applies a set of bindings throughout a type. Implemented
// by internal/instantiate and injected for the same reason as
// ConditionalMatcher.
type Substituter func(id types.TypeId, bindings map[string]types.TypeId) types.TypeId

// Evaluator reduces meta-types to concrete forms, memoizing on TypeId
// and breaking cycles with a coinductive "currently evaluating" set.
type Evaluator struct {
	in    *types.Interner
	match ConditionalMatcher
	subst Substituter

	memo       map[types.TypeId]types.TypeId
	evaluating map[types.TypeId]bool
	depth      int
	poisoned   bool

	maxTemplateCombinations int
}

// New returns an Evaluator over in. Wire Match and Subst before calling
// Evaluate — the checker façade constructs the Evaluator, the Subtype
// Checker, and the Instantiator together and connects them.
func New(in *types.Interner) *Evaluator {
	return &Evaluator{
		in:                      in,
		memo:                    make(map[types.TypeId]types.TypeId),
		evaluating:              make(map[types.TypeId]bool),
		maxTemplateCombinations: DefaultMaxTemplateCombinations,
	}
}

// SetMatcher wires the subtype checker's conditional-match routine.
func (e *Evaluator) SetMatcher(m ConditionalMatcher) { e.match = m }

// SetSubstituter wires the instantiator's substitution routine.
func (e *Evaluator) SetSubstituter(s Substituter) { e.subst = s }

// SetMaxTemplateCombinations overrides the cardinality ceiling for
// template-literal expansion (config-driven, spec §9 Open Question).
func (e *Evaluator) SetMaxTemplateCombinations(n int) { e.maxTemplateCombinations = n }

// DepthExceeded reports whether any Evaluate call hit the depth or
// cardinality cap.
func (e *Evaluator) DepthExceeded() bool { return e.poisoned }

// Evaluate reduces id to a concrete type, memoizing the result.
func (e *Evaluator) Evaluate(id types.TypeId) types.TypeId {
	if id.IsIntrinsic() {
		return id
	}
	if cached, ok := e.memo[id]; ok {
		return cached
	}
	if e.evaluating[id] {
		// Coinductive cycle break: the type resolves to a placeholder
		// standing in for itself until the outer evaluation completes.
		return e.in.Recursive(id)
	}
	if e.depth >= maxDepth {
		e.poisoned = true
		return types.ErrorType
	}

	e.evaluating[id] = true
	e.depth++
	result := e.dispatch(id)
	e.depth--
	delete(e.evaluating, id)

	e.memo[id] = result
	return result
}

func (e *Evaluator) dispatch(id types.TypeId) types.TypeId {
	data, ok := e.in.Lookup(id)
	if !ok {
		return types.ErrorType
	}

	switch d := data.(type) {
	case types.Conditional:
		return e.evalConditional(id, d)
	case types.Mapped:
		return e.evalMapped(d)
	case types.IndexAccess:
		return e.evalIndexAccess(d)
	case types.KeyOf:
		return e.evalKeyOf(d)
	case types.TemplateLiteral:
		return e.evalTemplateLiteral(d)
	case types.StringIntrinsic:
		return e.evalStringIntrinsic(d)
	default:
		return id
	}
}

// evalConditional implements spec §4.2's conditional rule. Whether a
// conditional distributes at all is decided before it gets here: the
// checker's lowering sets IsDistributive only for a bare type-reference
// check, and the instantiator distributes a substituted union. When an
// IsDistributive conditional still reaches the evaluator with a union
// check type, it distributes over the members here (never yields
// never); otherwise only the match-and-branch step runs.
func (e *Evaluator) evalConditional(id types.TypeId, c types.Conditional) types.TypeId {
	if c.IsDistributive {
		if checkData, ok := e.in.Lookup(c.Check); ok {
			if union, isUnion := checkData.(types.Union); isUnion {
				if len(union.Members) > maxUnionDistribution {
					e.poisoned = true
					return types.ErrorType
				}
				results := make([]types.TypeId, 0, len(union.Members))
				for _, m := range union.Members {
					branch := e.in.Conditional(m, c.Extends, c.TrueBranch, c.FalseBranch, false)
					results = append(results, e.Evaluate(branch))
				}
				return e.in.Union(results)
			}
			if c.Check == types.Never {
				return types.Never
			}
		}
	}

	result := e.match(c.Check, c.Extends, false)
	if result.Matched {
		if e.subst != nil && len(result.Bindings) > 0 {
			return e.Evaluate(e.subst(c.TrueBranch, result.Bindings))
		}
		return e.Evaluate(c.TrueBranch)
	}
	return e.Evaluate(c.FalseBranch)
}

// evalMapped expands {[P in K]: V} into a concrete object when K
// reduces to a finite union of literal keys.
func (e *Evaluator) evalMapped(m types.Mapped) types.TypeId {
	keys, ok := e.finiteKeyUnion(e.Evaluate(m.Constraint))
	if !ok {
		return e.in.Mapped(m.Param, e.Evaluate(m.Constraint), m.NameType, m.Template, m.ReadonlyModifier, m.OptionalModifier)
	}

	props := make([]types.PropertyInfo, 0, len(keys))
	for _, key := range keys {
		keyName, optional := e.literalKeyName(key)

		var template types.TypeId
		if e.subst != nil {
			template = e.Evaluate(e.subst(m.Template, map[string]types.TypeId{m.Param: key}))
		} else {
			template = e.Evaluate(m.Template)
		}

		name := keyName
		if m.NameType != types.Invalid && e.subst != nil {
			remapped := e.Evaluate(e.subst(m.NameType, map[string]types.TypeId{m.Param: key}))
			if remapped == types.Never {
				continue // `as never` filters the key out
			}
			if remappedName, _, isKey := e.asLiteralNameById(remapped); isKey {
				name = remappedName
			}
		}

		props = append(props, types.PropertyInfo{
			Name:      name,
			ReadType:  template,
			WriteType: template,
			Optional:  applyModifier(optional, m.OptionalModifier),
			Readonly:  applyModifier(false, m.ReadonlyModifier),
		})
	}
	return e.in.Object(types.ObjectShape{Properties: props})
}

func applyModifier(current bool, op types.ModifierOp) bool {
	switch op {
	case types.ModifierAdd:
		return true
	case types.ModifierRemove:
		return false
	default:
		return current
	}
}

// finiteKeyUnion returns the member ids of id if it is a union (or
// singleton) of string/number/symbol literal types, else (nil, false).
func (e *Evaluator) finiteKeyUnion(id types.TypeId) ([]types.TypeId, bool) {
	data, ok := e.in.Lookup(id)
	if !ok {
		return nil, false
	}
	if union, isUnion := data.(types.Union); isUnion {
		for _, m := range union.Members {
			if _, _, isKey := e.asLiteralNameById(m); !isKey {
				return nil, false
			}
		}
		return union.Members, true
	}
	if _, _, isKey := e.asLiteralNameById(id); isKey {
		return []types.TypeId{id}, true
	}
	return nil, false
}

func (e *Evaluator) asLiteralNameById(id types.TypeId) (string, bool, bool) {
	data, ok := e.in.Lookup(id)
	if !ok {
		return "", false, false
	}
	return e.asLiteralName(data)
}

func (e *Evaluator) asLiteralName(data types.TypeData) (string, bool, bool) {
	lit, ok := data.(types.Literal)
	if !ok {
		return "", false, false
	}
	switch lit.ValueKind {
	case types.LiteralString:
		return lit.String, false, true
	case types.LiteralNumber:
		return formatNumberKey(lit.Number), false, true
	default:
		return "", false, false
	}
}

func (e *Evaluator) literalKeyName(id types.TypeId) (string, bool) {
	name, optional, _ := e.asLiteralNameById(id)
	return name, optional
}

func formatNumberKey(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// evalIndexAccess implements T[K] (spec §4.2). Symbolic operands stay
// symbolic; concrete operands resolve against T's shape, arrays/tuples
// resolve T[number] to the element/union-of-elements type.
func (e *Evaluator) evalIndexAccess(ia types.IndexAccess) types.TypeId {
	obj := e.Evaluate(ia.Object)
	index := e.Evaluate(ia.Index)

	if e.containsFreeParameter(obj) || e.containsFreeParameter(index) {
		return e.in.IndexAccess(obj, index)
	}

	objData, ok := e.in.Lookup(obj)
	if !ok {
		return types.ErrorType
	}

	if indexUnion, ok := e.in.Lookup(index); ok {
		if union, isUnion := indexUnion.(types.Union); isUnion {
			results := make([]types.TypeId, 0, len(union.Members))
			for _, m := range union.Members {
				results = append(results, e.evalIndexAccess(types.IndexAccess{Object: obj, Index: m}))
			}
			return e.in.Union(results)
		}
	}

	switch d := objData.(type) {
	case types.Array:
		if index == types.Number {
			return d.Element
		}
	case types.Tuple:
		if index == types.Number {
			elemTypes := make([]types.TypeId, len(d.Elements))
			for i, el := range d.Elements {
				elemTypes[i] = el.Type
			}
			return e.in.Union(elemTypes)
		}
		if n, ok := e.literalIndexInt(index); ok && n >= 0 && n < len(d.Elements) {
			return d.Elements[n].Type
		}
	case types.Object:
		if name, _, ok := e.asLiteralNameById(index); ok {
			if prop, ok := findProperty(d.Shape, name); ok {
				return prop.ReadType
			}
		}
	case types.ObjectWithIndex:
		if name, _, ok := e.asLiteralNameById(index); ok {
			if prop, ok := findProperty(d.Shape, name); ok {
				return prop.ReadType
			}
		}
		if index == types.String && d.StringIndex != types.Invalid {
			return d.StringIndex
		}
		if index == types.Number && d.NumberIndex != types.Invalid {
			return d.NumberIndex
		}
	}
	return types.ErrorType
}

func (e *Evaluator) literalIndexInt(id types.TypeId) (int, bool) {
	data, ok := e.in.Lookup(id)
	if !ok {
		return 0, false
	}
	lit, ok := data.(types.Literal)
	if !ok || lit.ValueKind != types.LiteralNumber {
		return 0, false
	}
	return int(lit.Number), true
}

func findProperty(shape types.ObjectShape, name string) (types.PropertyInfo, bool) {
	lo, hi := 0, len(shape.Properties)
	for lo < hi {
		mid := (lo + hi) / 2
		if shape.Properties[mid].Name < name {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(shape.Properties) && shape.Properties[lo].Name == name {
		return shape.Properties[lo], true
	}
	return types.PropertyInfo{}, false
}

// containsFreeParameter is a shallow check used only to decide whether
// an index access / keyof must stay symbolic; it does not walk deeply
// through every composite, matching the evaluator's "keep symbolic
// unless clearly concrete" posture rather than a full free-variable
// crawl (which belongs to the instantiator).
func (e *Evaluator) containsFreeParameter(id types.TypeId) bool {
	data, ok := e.in.Lookup(id)
	if !ok {
		return false
	}
	switch data.(type) {
	case types.TypeParameter, types.Infer:
		return true
	default:
		return false
	}
}

// evalKeyOf implements keyof (spec §4.2): objects yield a union of
// property-name literals, unions of operands become an intersection of
// keyofs (contravariance), intersections distribute, primitives map to
// their apparent-type key sets.
func (e *Evaluator) evalKeyOf(k types.KeyOf) types.TypeId {
	operand := e.Evaluate(k.Operand)
	data, ok := e.in.Lookup(operand)
	if !ok {
		return types.ErrorType
	}

	switch d := data.(type) {
	case types.Union:
		members := make([]types.TypeId, len(d.Members))
		for i, m := range d.Members {
			members[i] = e.Evaluate(e.in.KeyOf(m))
		}
		return e.in.Intersection(members)
	case types.Intersection:
		members := make([]types.TypeId, len(d.Members))
		for i, m := range d.Members {
			members[i] = e.Evaluate(e.in.KeyOf(m))
		}
		return e.in.Union(members)
	case types.Object:
		return e.keysOfShape(d.Shape)
	case types.ObjectWithIndex:
		keys := e.keysOfShapeIds(d.Shape)
		if d.StringIndex != types.Invalid {
			keys = append(keys, types.String)
		}
		if d.NumberIndex != types.Invalid {
			keys = append(keys, types.Number)
		}
		return e.in.Union(keys)
	case types.Array, types.Tuple:
		return e.in.Union([]types.TypeId{types.Number, e.apparentArrayKeys()})
	default:
		switch operand {
		case types.String:
			return e.apparentStringKeys()
		case types.Number:
			return e.apparentNumberKeys()
		default:
			return types.Never
		}
	}
}

func (e *Evaluator) keysOfShape(shape types.ObjectShape) types.TypeId {
	return e.in.Union(e.keysOfShapeIds(shape))
}

func (e *Evaluator) keysOfShapeIds(shape types.ObjectShape) []types.TypeId {
	keys := make([]types.TypeId, len(shape.Properties))
	for i, p := range shape.Properties {
		keys[i] = e.in.Literal(types.Literal{ValueKind: types.LiteralString, String: p.Name})
	}
	return keys
}

// apparentArrayKeys/apparentStringKeys/apparentNumberKeys stand in for
// the apparent-type member names a real checker would pull from the lib
// declarations (Array.prototype, String.prototype, Number.prototype).
// Without a lib-loading collaborator wired in, keyof on these
// primitives conservatively yields their numeric/length surface only.
func (e *Evaluator) apparentArrayKeys() types.TypeId {
	return e.in.Literal(types.Literal{ValueKind: types.LiteralString, String: "length"})
}

func (e *Evaluator) apparentStringKeys() types.TypeId {
	return e.in.Union([]types.TypeId{
		types.Number,
		e.in.Literal(types.Literal{ValueKind: types.LiteralString, String: "length"}),
	})
}

func (e *Evaluator) apparentNumberKeys() types.TypeId {
	return types.Never
}

// evalTemplateLiteral string-concatenates spans, cross-producting any
// span whose type evaluates to a union of string literals, under the
// cardinality ceiling (spec §4.2/§9).
func (e *Evaluator) evalTemplateLiteral(t types.TemplateLiteral) types.TypeId {
	prefixes := []string{""}
	for _, span := range t.Spans {
		if !span.HasType {
			for i := range prefixes {
				prefixes[i] += span.Text
			}
			continue
		}

		options, concrete := e.templateSpanOptions(e.Evaluate(span.Type))
		if !concrete {
			return e.in.TemplateLiteral(t.Spans)
		}

		next := make([]string, 0, len(prefixes)*len(options))
		for _, p := range prefixes {
			for _, o := range options {
				if len(next) >= e.maxTemplateCombinations {
					e.poisoned = true
					return types.ErrorType
				}
				next = append(next, p+o)
			}
		}
		prefixes = next
	}

	results := make([]types.TypeId, len(prefixes))
	for i, s := range prefixes {
		results[i] = e.in.Literal(types.Literal{ValueKind: types.LiteralString, String: s})
	}
	return e.in.Union(results)
}

// templateSpanOptions returns the literal string options a span can
// take, or (nil, false) if the span's type isn't fully resolved to
// literals (e.g. it is still `string` or a free parameter).
func (e *Evaluator) templateSpanOptions(id types.TypeId) ([]string, bool) {
	data, ok := e.in.Lookup(id)
	if !ok {
		return nil, false
	}
	switch d := data.(type) {
	case types.Literal:
		switch d.ValueKind {
		case types.LiteralString:
			return []string{d.String}, true
		case types.LiteralNumber:
			return []string{formatNumberKey(d.Number)}, true
		case types.LiteralBoolean:
			if d.Boolean {
				return []string{"true"}, true
			}
			return []string{"false"}, true
		}
		return nil, false
	case types.Union:
		var out []string
		for _, m := range d.Members {
			opts, ok := e.templateSpanOptions(m)
			if !ok {
				return nil, false
			}
			out = append(out, opts...)
		}
		return out, true
	default:
		return nil, false
	}
}

// evalStringIntrinsic applies Uppercase/Lowercase/Capitalize/
// Uncapitalize to every literal the argument evaluates to, distributing
// across a union.
func (e *Evaluator) evalStringIntrinsic(si types.StringIntrinsic) types.TypeId {
	arg := e.Evaluate(si.Arg)
	data, ok := e.in.Lookup(arg)
	if !ok {
		return types.ErrorType
	}

	if union, isUnion := data.(types.Union); isUnion {
		results := make([]types.TypeId, len(union.Members))
		for i, m := range union.Members {
			results[i] = e.Evaluate(e.in.StringIntrinsic(si.IntrinsicKind, m))
		}
		return e.in.Union(results)
	}

	lit, isLit := data.(types.Literal)
	if !isLit || lit.ValueKind != types.LiteralString {
		return arg // not a string literal: stays symbolic/unchanged
	}

	return e.in.Literal(types.Literal{ValueKind: types.LiteralString, String: applyCase(si.IntrinsicKind, lit.String)})
}

var upper = cases.Upper(language.Und)
var lower = cases.Lower(language.Und)

func applyCase(kind types.StringIntrinsicKind, s string) string {
	switch kind {
	case types.Uppercase:
		return upper.String(s)
	case types.Lowercase:
		return lower.String(s)
	case types.Capitalize:
		if s == "" {
			return s
		}
		return upper.String(s[:1]) + s[1:]
	case types.Uncapitalize:
		if s == "" {
			return s
		}
		return lower.String(s[:1]) + s[1:]
	default:
		return s
	}
}

