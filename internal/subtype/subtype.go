// Package subtype decides structural assignability S <: T under a
// configurable strictness policy (spec §4.4).
package subtype

import "github.com/funvibe/tsgo-core/internal/types"

// maxDepth bounds the recursive comparison walk.
const maxDepth = 100

// Result is the three-valued outcome of a subtype query: a depth-capped
// partial failure must not widen silently to True.
type Result uint8

const (
	True Result = iota
	False
	DepthExceeded
)

func (r Result) Bool() bool { return r == True }

// Policy is the strictness configuration, overridable per file via
// comment pragmas (spec §6, internal/config).
type Policy struct {
	StrictNullChecks           bool
	StrictFunctionTypes        bool
	ExactOptionalPropertyTypes bool
	NoUncheckedIndexedAccess   bool
	DisableMethodBivariance    bool
	AllowVoidReturn            bool
	AllowBivariantRest         bool
	AllowBivariantParamCount   bool
}

// Evaluator reduces meta-types to concrete forms. Implemented by
// internal/evaluator and injected to avoid an import cycle (the
// evaluator itself asks the Checker to test conditional extends-clauses).
type Evaluator func(id types.TypeId) types.TypeId

type pair struct{ s, t types.TypeId }

// Checker decides S <: T, memoizing nothing across calls except the
// per-query visited-pair cache that breaks coinductive cycles.
type Checker struct {
	in     *types.Interner
	policy Policy
	eval   Evaluator

	visited map[pair]bool
	depth   int
}

// New returns a Checker over in under policy. Wire an evaluator with
// SetEvaluator before comparing meta-types.
func New(in *types.Interner, policy Policy) *Checker {
	return &Checker{in: in, policy: policy}
}

// SetEvaluator wires the meta-type reducer.
func (c *Checker) SetEvaluator(e Evaluator) { c.eval = e }

func (c *Checker) evaluate(id types.TypeId) types.TypeId {
	if c.eval == nil {
		return id
	}
	return c.eval(id)
}

// IsSubtype runs a fresh top-level query: S <: T.
func (c *Checker) IsSubtype(s, t types.TypeId) Result {
	c.visited = make(map[pair]bool)
	c.depth = 0
	return c.check(s, t)
}

// IsSubtypeBool is IsSubtype collapsed to a bool, for collaborators
// (e.g. the evaluator's injected conditional matcher) that only need a
// yes/no answer and treat DepthExceeded as a conservative false.
func (c *Checker) IsSubtypeBool(s, t types.TypeId) bool {
	return c.IsSubtype(s, t) == True
}

func (c *Checker) check(s, t types.TypeId) Result {
	if c.depth >= maxDepth {
		return DepthExceeded
	}

	p := pair{s, t}
	if c.visited[p] {
		return True // coinductive assumption
	}

	if s == t {
		return True
	}
	if t == types.Any || t == types.Unknown || s == types.Never || s == types.Any {
		return True
	}
	if s == types.ErrorType || t == types.ErrorType {
		return True
	}

	c.visited[p] = true
	c.depth++
	result := c.dispatch(s, t)
	c.depth--
	delete(c.visited, p)
	return result
}

func (c *Checker) dispatch(s, t types.TypeId) Result {
	if r, ok := c.checkUnionIntersection(s, t); ok {
		return r
	}

	sData, sOk := c.in.Lookup(s)
	tData, tOk := c.in.Lookup(t)
	if !sOk || !tOk {
		return False
	}

	if r, ok := c.checkLiteral(s, sData, t, tData); ok {
		return r
	}
	if r, ok := c.checkTemplateLiteral(s, t, tData); ok {
		return r
	}
	if r, ok := c.checkArrayTuple(s, sData, t, tData); ok {
		return r
	}
	if r, ok := c.checkObject(s, sData, t, tData); ok {
		return r
	}
	if r, ok := c.checkFunction(s, sData, t, tData); ok {
		return r
	}
	if r, ok := c.checkMeta(s, sData, t, tData); ok {
		return r
	}
	if r, ok := c.checkEnum(s, sData, t, tData); ok {
		return r
	}
	if r, ok := c.checkGenericFallback(s, sData, t); ok {
		return r
	}

	return c.checkPrimitiveWidening(s, t)
}

// checkUnionIntersection implements rule 4: distribution over union and
// intersection on either side.
func (c *Checker) checkUnionIntersection(s, t types.TypeId) (Result, bool) {
	if sData, ok := c.in.Lookup(s); ok {
		if u, isUnion := sData.(types.Union); isUnion {
			result := True
			for _, m := range u.Members {
				if r := c.check(m, t); r == DepthExceeded {
					return DepthExceeded, true
				} else if r != True {
					result = False
				}
			}
			return result, true
		}
		if x, isInter := sData.(types.Intersection); isInter {
			sawDepthExceeded := false
			for _, m := range x.Members {
				r := c.check(m, t)
				if r == True {
					return True, true
				}
				sawDepthExceeded = sawDepthExceeded || r == DepthExceeded
			}
			if sawDepthExceeded {
				return DepthExceeded, true
			}
			return False, true
		}
	}
	if tData, ok := c.in.Lookup(t); ok {
		if u, isUnion := tData.(types.Union); isUnion {
			sawDepthExceeded := false
			for _, m := range u.Members {
				r := c.check(s, m)
				if r == True {
					return True, true
				}
				sawDepthExceeded = sawDepthExceeded || r == DepthExceeded
			}
			if sawDepthExceeded {
				return DepthExceeded, true
			}
			return False, true
		}
		if x, isInter := tData.(types.Intersection); isInter {
			result := True
			for _, m := range x.Members {
				if r := c.check(s, m); r == DepthExceeded {
					return DepthExceeded, true
				} else if r != True {
					result = False
				}
			}
			return result, true
		}
	}
	return False, false
}

// checkPrimitiveWidening covers the intrinsic-to-intrinsic pairs not
// already settled by identity or top/bottom (e.g. true/false <: boolean
// is handled via checkLiteral's BaseIntrinsic path; this is the
// catch-all for remaining intrinsic combinations).
func (c *Checker) checkPrimitiveWidening(s, t types.TypeId) Result {
	if (s == types.BooleanTrue || s == types.BooleanFalse) && t == types.Boolean {
		return True
	}
	if !c.policy.StrictNullChecks {
		if s == types.Null || s == types.Undefined {
			return True
		}
	}
	if s == types.ObjectKeyword && t == types.ObjectKeyword {
		return True
	}
	return False
}

func boolResult(b bool) Result {
	if b {
		return True
	}
	return False
}
