package checker

import (
	"github.com/funvibe/tsgo-core/internal/evaluator"
	"github.com/funvibe/tsgo-core/internal/types"
)

// matchConditional is the evaluator.ConditionalMatcher this façade wires
// into its Evaluator (evaluator.go's own doc comment says the façade is
// exactly the party responsible for building this). It structurally
// unifies ext against check, capturing a binding for every `infer X`
// position ext contains, then reports whether the non-infer remainder
// of ext is satisfied by check.
//
// With skipInfer set this degrades to an ordinary subtype query. The
// evaluator always passes false, so every conditional goes through
// matchInfer.
func (c *Checker) matchConditional(check, ext types.TypeId, skipInfer bool) evaluator.InferResult {
	if skipInfer {
		return evaluator.InferResult{Matched: c.sub.IsSubtypeBool(check, ext)}
	}
	bindings := make(map[string]types.TypeId)
	matched := c.matchInfer(check, ext, bindings)
	return evaluator.InferResult{Matched: matched, Bindings: bindings}
}

// matchInfer walks check and ext in lockstep. Wherever ext is an
// `infer X`, it binds X to the corresponding slice of check; everywhere
// else it requires the two sides to agree structurally (falling back to
// a plain subtype query once neither side has any infer positions left
// to discover). The walk is bounded by the shapes that internal/types
// can hand back from Lookup, so it terminates without its own depth
// counter — composite nesting is already capped by the interner having
// been built through the subtype/evaluator depth limits.
func (c *Checker) matchInfer(check, ext types.TypeId, bindings map[string]types.TypeId) bool {
	extData, ok := c.in.Lookup(ext)
	if !ok {
		return false
	}

	if inferVar, isInfer := extData.(types.Infer); isInfer {
		if existing, bound := bindings[inferVar.Name]; bound {
			// A repeated infer variable narrows to the union of every
			// position it appears in, mirroring how TypeScript resolves a
			// type variable inferred from more than one covariant site.
			bindings[inferVar.Name] = c.in.Union([]types.TypeId{existing, check})
		} else {
			bindings[inferVar.Name] = check
		}
		if inferVar.Constraint != types.Invalid {
			return c.sub.IsSubtypeBool(check, inferVar.Constraint)
		}
		return true
	}

	checkData, checkOk := c.in.Lookup(check)
	if !checkOk {
		return false
	}

	switch extD := extData.(type) {
	case types.Array:
		if checkD, isArr := checkData.(types.Array); isArr {
			return c.matchInfer(checkD.Element, extD.Element, bindings)
		}
		return c.sub.IsSubtypeBool(check, ext)

	case types.Tuple:
		if checkD, isTup := checkData.(types.Tuple); isTup && len(checkD.Elements) == len(extD.Elements) {
			ok := true
			for i, el := range extD.Elements {
				if !c.matchInfer(checkD.Elements[i].Type, el.Type, bindings) {
					ok = false
				}
			}
			return ok
		}
		return c.sub.IsSubtypeBool(check, ext)

	case types.Function:
		if checkD, isFn := checkData.(types.Function); isFn {
			return c.matchSignature(checkD.Signature, extD.Signature, bindings)
		}
		return c.sub.IsSubtypeBool(check, ext)

	case types.Object:
		if checkD, isObj := checkData.(types.Object); isObj {
			ok := true
			for _, extProp := range extD.Shape.Properties {
				checkProp, found := findMatchingProp(checkD.Shape.Properties, extProp.Name)
				if !found {
					ok = false
					continue
				}
				if !c.matchInfer(checkProp.ReadType, extProp.ReadType, bindings) {
					ok = false
				}
			}
			return ok
		}
		return c.sub.IsSubtypeBool(check, ext)

	default:
		return c.sub.IsSubtypeBool(check, ext)
	}
}

// matchSignature unifies a function's parameter and return positions,
// binding any infer variables they contain. Parameters are matched
// positionally rather than contravariantly — capturing a binding, not
// deciding assignability, is the only job here.
func (c *Checker) matchSignature(check, ext types.CallSignature, bindings map[string]types.TypeId) bool {
	ok := true
	for i, p := range ext.Params {
		if i >= len(check.Params) {
			ok = false
			continue
		}
		if !c.matchInfer(check.Params[i].Type, p.Type, bindings) {
			ok = false
		}
	}
	if !c.matchInfer(check.Return, ext.Return, bindings) {
		ok = false
	}
	return ok
}

func findMatchingProp(props []types.PropertyInfo, name string) (types.PropertyInfo, bool) {
	lo, hi := 0, len(props)
	for lo < hi {
		mid := (lo + hi) / 2
		if props[mid].Name < name {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(props) && props[lo].Name == name {
		return props[lo], true
	}
	return types.PropertyInfo{}, false
}
