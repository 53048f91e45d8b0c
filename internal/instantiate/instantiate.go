// Package instantiate substitutes type parameters with type arguments
// throughout an interned type tree (spec §4.3).
package instantiate

import "github.com/funvibe/tsgo-core/internal/types"

// maxDepth bounds the recursive substitution walk; exceeding it poisons
// the result with types.ErrorType rather than diverging (spec §3.4).
const maxDepth = 50

// maxDistribution caps how many union members a distributive
// conditional may fan out over in one instantiation step.
const maxDistribution = 25

// Substitution maps a declared type parameter name to the TypeId it is
// bound to for the duration of one Instantiate call.
type Substitution map[string]types.TypeId

// Instantiator walks a type tree substituting Substitution into every
// unshadowed TypeParameter it finds. A single Instantiator is scoped to
// one substitution; build a new one (or call Instantiate again) for a
// different one.
type Instantiator struct {
	in       *types.Interner
	subst    Substitution
	this     types.TypeId // types.Invalid if no concrete `this` is bound
	shadowed []map[string]bool
	cache    map[types.TypeId]types.TypeId
	depth    int
	poisoned bool
}

// New returns an Instantiator over in, applying subst, with no concrete
// `this` binding. Use WithThis to bind one.
func New(in *types.Interner, subst Substitution) *Instantiator {
	return &Instantiator{in: in, subst: subst, this: types.Invalid, cache: make(map[types.TypeId]types.TypeId)}
}

// WithThis returns a copy of inst that rebinds ThisType to this during
// instantiation.
func (inst *Instantiator) WithThis(this types.TypeId) *Instantiator {
	clone := *inst
	clone.this = this
	clone.cache = make(map[types.TypeId]types.TypeId)
	return &clone
}

// FromArgs builds a Substitution for params bound to args positionally,
// supplying each parameter's declared default for any trailing params
// with no corresponding argument. Defaults are instantiated against the
// substitution built so far, left to right, so a later default may
// reference an earlier parameter (spec §4.3 from_args).
func FromArgs(in *types.Interner, params []types.TypeId, args []types.TypeId) Substitution {
	subst := make(Substitution, len(params))
	for i, paramId := range params {
		paramData, ok := in.Lookup(paramId)
		tp, isParam := paramData.(types.TypeParameter)
		if !ok || !isParam {
			continue
		}
		switch {
		case i < len(args):
			subst[tp.Name] = args[i]
		case tp.Default != types.Invalid:
			partial := New(in, subst)
			subst[tp.Name] = partial.Instantiate(tp.Default)
		case tp.Constraint != types.Invalid:
			subst[tp.Name] = tp.Constraint
		default:
			subst[tp.Name] = types.Unknown
		}
	}
	return subst
}

// Instantiate substitutes inst.subst throughout id and returns the
// resulting TypeId, which may be newly interned.
func (inst *Instantiator) Instantiate(id types.TypeId) types.TypeId {
	if id.IsIntrinsic() {
		return id
	}
	if cached, ok := inst.cache[id]; ok {
		return cached
	}
	if inst.depth >= maxDepth {
		inst.poisoned = true
		return types.ErrorType
	}
	inst.depth++
	defer func() { inst.depth-- }()

	result := inst.dispatch(id)
	inst.cache[id] = result
	return result
}

// DepthExceeded reports whether any Instantiate call on this
// Instantiator hit maxDepth.
func (inst *Instantiator) DepthExceeded() bool { return inst.poisoned }

func (inst *Instantiator) isShadowed(name string) bool {
	for _, frame := range inst.shadowed {
		if frame[name] {
			return true
		}
	}
	return false
}

// pushScope shadows names (a generic function/method/call signature's
// own type parameters) and runs the scope with an empty cache, so no
// entry substituted under the outer binding is reused inside it (spec
// §4.3's "snapshot + prune the visited cache" rule). The returned
// restore function pops the shadowing frame and reinstates the outer
// cache.
func (inst *Instantiator) pushScope(names []string) (restore func()) {
	frame := make(map[string]bool, len(names))
	pruned := make(map[types.TypeId]types.TypeId, len(inst.cache))
	for k, v := range inst.cache {
		pruned[k] = v
	}
	for _, n := range names {
		frame[n] = true
	}
	inst.shadowed = append(inst.shadowed, frame)
	savedCache := inst.cache
	inst.cache = make(map[types.TypeId]types.TypeId)

	return func() {
		inst.shadowed = inst.shadowed[:len(inst.shadowed)-1]
		inst.cache = savedCache
	}
}

func (inst *Instantiator) dispatch(id types.TypeId) types.TypeId {
	data, ok := inst.in.Lookup(id)
	if !ok {
		return types.ErrorType
	}

	switch d := data.(type) {
	case types.TypeParameter:
		if inst.isShadowed(d.Name) {
			return id
		}
		if replacement, ok := inst.subst[d.Name]; ok {
			return replacement
		}
		return id

	case types.ThisType:
		if inst.this != types.Invalid {
			return inst.this
		}
		return id

	case types.Union:
		return inst.instantiateUnion(d)

	case types.Intersection:
		members := make([]types.TypeId, len(d.Members))
		for i, m := range d.Members {
			members[i] = inst.Instantiate(m)
		}
		return inst.in.Intersection(members)

	case types.Array:
		return inst.in.Array(inst.Instantiate(d.Element))

	case types.Tuple:
		elems := make([]types.TupleElement, len(d.Elements))
		for i, e := range d.Elements {
			elems[i] = types.TupleElement{Type: inst.Instantiate(e.Type), Name: e.Name, Optional: e.Optional, Rest: e.Rest}
		}
		return inst.in.Tuple(elems)

	case types.Object:
		return inst.in.Object(inst.instantiateShape(d.Shape))

	case types.ObjectWithIndex:
		shape := inst.instantiateShape(d.Shape)
		return inst.in.ObjectWithIndex(shape, inst.instantiateOptional(d.StringIndex), inst.instantiateOptional(d.NumberIndex))

	case types.Function:
		return inst.in.Function(inst.instantiateSignature(d.Signature))

	case types.Callable:
		call := make([]types.CallSignature, len(d.CallSignatures))
		for i, s := range d.CallSignatures {
			call[i] = inst.instantiateSignature(s)
		}
		ctor := make([]types.CallSignature, len(d.ConstructSignatures))
		for i, s := range d.ConstructSignatures {
			ctor[i] = inst.instantiateSignature(s)
		}
		return inst.in.Callable(call, ctor, inst.instantiateShape(d.Shape), inst.instantiateOptional(d.StringIndex), inst.instantiateOptional(d.NumberIndex))

	case types.Conditional:
		return inst.instantiateConditional(d)

	case types.Mapped:
		return inst.instantiateMapped(d)

	case types.IndexAccess:
		obj := inst.Instantiate(d.Object)
		idx := inst.Instantiate(d.Index)
		if obj == d.Object && idx == d.Index {
			return id
		}
		return inst.in.IndexAccess(obj, idx)

	case types.KeyOf:
		operand := inst.Instantiate(d.Operand)
		if operand == d.Operand {
			return id
		}
		return inst.in.KeyOf(operand)

	case types.TemplateLiteral:
		spans := make([]types.TemplateSpan, len(d.Spans))
		changed := false
		for i, s := range d.Spans {
			if !s.HasType {
				spans[i] = s
				continue
			}
			newType := inst.Instantiate(s.Type)
			spans[i] = types.TemplateSpan{Type: newType, HasType: true}
			changed = changed || newType != s.Type
		}
		if !changed {
			return id
		}
		return inst.in.TemplateLiteral(spans)

	case types.StringIntrinsic:
		arg := inst.Instantiate(d.Arg)
		if arg == d.Arg {
			return id
		}
		return inst.in.StringIntrinsic(d.IntrinsicKind, arg)

	case types.Application:
		base := inst.Instantiate(d.Base)
		args := make([]types.TypeId, len(d.Args))
		for i, a := range d.Args {
			args[i] = inst.Instantiate(a)
		}
		return inst.in.Application(base, args)

	case types.NoInfer:
		inner := inst.Instantiate(d.Inner)
		if inner == d.Inner {
			return id
		}
		return inst.in.NoInfer(inner)

	default:
		return id
	}
}

func (inst *Instantiator) instantiateOptional(id types.TypeId) types.TypeId {
	if id == types.Invalid {
		return types.Invalid
	}
	return inst.Instantiate(id)
}

func (inst *Instantiator) instantiateShape(shape types.ObjectShape) types.ObjectShape {
	props := make([]types.PropertyInfo, len(shape.Properties))
	for i, p := range shape.Properties {
		props[i] = types.PropertyInfo{
			Name:       p.Name,
			ReadType:   inst.Instantiate(p.ReadType),
			WriteType:  inst.Instantiate(p.WriteType),
			Optional:   p.Optional,
			Readonly:   p.Readonly,
			IsMethod:   p.IsMethod,
			Visibility: p.Visibility,
			ParentId:   p.ParentId,
		}
	}
	return types.ObjectShape{Properties: props, Fresh: shape.Fresh, SymbolId: shape.SymbolId}
}

func (inst *Instantiator) instantiateSignature(sig types.CallSignature) types.CallSignature {
	var restore func()
	if len(sig.TypeParams) > 0 {
		names := make([]string, 0, len(sig.TypeParams))
		for _, tp := range sig.TypeParams {
			if data, ok := inst.in.Lookup(tp); ok {
				if p, ok := data.(types.TypeParameter); ok {
					names = append(names, p.Name)
				}
			}
		}
		restore = inst.pushScope(names)
		defer restore()
	}

	params := make([]types.ParamInfo, len(sig.Params))
	for i, p := range sig.Params {
		params[i] = types.ParamInfo{Name: p.Name, Type: inst.Instantiate(p.Type), Optional: p.Optional, Rest: p.Rest}
	}

	var predicate *types.TypePredicate
	if sig.Predicate != nil {
		pred := *sig.Predicate
		if pred.Type != types.Invalid {
			pred.Type = inst.Instantiate(pred.Type)
		}
		predicate = &pred
	}

	return types.CallSignature{
		TypeParams:    sig.TypeParams,
		Params:        params,
		ThisType:      inst.instantiateOptional(sig.ThisType),
		Return:        inst.Instantiate(sig.Return),
		Predicate:     predicate,
		IsConstructor: sig.IsConstructor,
		IsMethod:      sig.IsMethod,
	}
}

// instantiateUnion instantiates a plain union member by member and
// re-interns the result; it does no distribution of its own. Conditional
// distribution over a substituted union lives in instantiateConditional.
func (inst *Instantiator) instantiateUnion(u types.Union) types.TypeId {
	members := make([]types.TypeId, len(u.Members))
	for i, m := range u.Members {
		members[i] = inst.Instantiate(m)
	}
	return inst.in.Union(members)
}

// instantiateConditional applies spec §4.3's distributive conditional
// rule: if the check type is a naked, unshadowed type parameter and the
// substitution for it is a union, instantiate the conditional once per
// union member and union the results.
func (inst *Instantiator) instantiateConditional(c types.Conditional) types.TypeId {
	if c.IsDistributive {
		if tp, ok := inst.nakedUnshadowedParam(c.Check); ok {
			if bound, ok := inst.subst[tp.Name]; ok {
				if boundData, ok := inst.in.Lookup(bound); ok {
					if union, isUnion := boundData.(types.Union); isUnion {
						return inst.distributeConditional(c, tp.Name, union.Members)
					}
				}
				if bound == types.Never {
					return types.Never
				}
			}
		}
	}

	return inst.in.Conditional(
		inst.Instantiate(c.Check),
		inst.Instantiate(c.Extends),
		inst.Instantiate(c.TrueBranch),
		inst.Instantiate(c.FalseBranch),
		c.IsDistributive,
	)
}

func (inst *Instantiator) distributeConditional(c types.Conditional, paramName string, members []types.TypeId) types.TypeId {
	if len(members) > maxDistribution {
		inst.poisoned = true
		return types.ErrorType
	}
	results := make([]types.TypeId, 0, len(members))
	for _, m := range members {
		narrowed := New(inst.in, Substitution{paramName: m})
		narrowed.this = inst.this
		for k, v := range inst.subst {
			if k != paramName {
				narrowed.subst[k] = v
			}
		}
		results = append(results, narrowed.Instantiate(inst.in.Conditional(c.Check, c.Extends, c.TrueBranch, c.FalseBranch, c.IsDistributive)))
	}
	return inst.in.Union(results)
}

func (inst *Instantiator) nakedUnshadowedParam(id types.TypeId) (types.TypeParameter, bool) {
	data, ok := inst.in.Lookup(id)
	if !ok {
		return types.TypeParameter{}, false
	}
	tp, ok := data.(types.TypeParameter)
	if !ok || inst.isShadowed(tp.Name) {
		return types.TypeParameter{}, false
	}
	return tp, true
}

// instantiateMapped substitutes into a mapped type's constraint, name
// type and template (with its own key parameter shadowed) and re-interns
// the Mapped node; it does not expand it, which is left to the
// evaluator. If nothing changed, re-interning yields the original id.
func (inst *Instantiator) instantiateMapped(m types.Mapped) types.TypeId {
	constraint := inst.Instantiate(m.Constraint)
	nameType := inst.instantiateOptional(m.NameType)

	restore := inst.pushScope([]string{m.Param})
	template := inst.Instantiate(m.Template)
	restore()

	if constraint == m.Constraint && nameType == m.NameType && template == m.Template {
		return inst.in.Mapped(m.Param, m.Constraint, m.NameType, m.Template, m.ReadonlyModifier, m.OptionalModifier)
	}
	return inst.in.Mapped(m.Param, constraint, nameType, template, m.ReadonlyModifier, m.OptionalModifier)
}
