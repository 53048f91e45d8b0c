package subtype

import "github.com/funvibe/tsgo-core/internal/types"

// checkLiteral implements rule 5: a literal is a subtype of its base
// primitive by domain, and of another literal only by identity (already
// settled by s == t in check, so only the widening direction remains
// here).
func (c *Checker) checkLiteral(s types.TypeId, sData types.TypeData, t types.TypeId, tData types.TypeData) (Result, bool) {
	sLit, sIsLit := sData.(types.Literal)
	if !sIsLit {
		return False, false
	}
	if _, tIsLit := tData.(types.Literal); tIsLit {
		return False, true // literal <: literal already handled by identity
	}
	return boolResult(sLit.BaseIntrinsic() == t), true
}

// checkTemplateLiteral implements rule 6: a concrete string literal
// pattern-matches against a template literal target, matching each text
// span verbatim and letting a type-interpolated span take any run of
// characters.
func (c *Checker) checkTemplateLiteral(s, t types.TypeId, tData types.TypeData) (Result, bool) {
	tmpl, isTmpl := tData.(types.TemplateLiteral)
	if !isTmpl {
		return False, false
	}
	sData, ok := c.in.Lookup(s)
	if !ok {
		return False, true
	}
	lit, isLit := sData.(types.Literal)
	if !isLit || lit.ValueKind != types.LiteralString {
		return False, true
	}
	return boolResult(matchesTemplatePattern(lit.String, tmpl.Spans)), true
}

// matchesTemplatePattern is a backtracking matcher: literal text spans
// must appear verbatim at the current cursor; a type-interpolated span
// (treated as `string`, since narrower per-span literal checking
// belongs to the evaluator's string-intrinsic resolution) may end at
// any occurrence of the next literal text span, each tried in turn.
func matchesTemplatePattern(value string, spans []types.TemplateSpan) bool {
	pos := 0
	for i, span := range spans {
		if !span.HasType {
			if pos+len(span.Text) > len(value) || value[pos:pos+len(span.Text)] != span.Text {
				return false
			}
			pos += len(span.Text)
			continue
		}
		if i == len(spans)-1 {
			return true // trailing interpolation consumes the rest
		}
		next := spans[i+1]
		if next.HasType {
			return true // ambiguous adjacency: accept (conservative)
		}
		for idx := indexAt(value, next.Text, pos); idx >= 0 && idx <= len(value); idx = indexAt(value, next.Text, idx+1) {
			if matchesTemplatePattern(value[idx:], spans[i+1:]) {
				return true
			}
		}
		return false
	}
	return pos == len(value)
}

func indexAt(s, sub string, from int) int {
	if sub == "" {
		return from
	}
	for i := from; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

// checkArrayTuple implements rules 7 and 8: covariant arrays, tuples
// compared positionally, and tuple/array widening in one direction.
func (c *Checker) checkArrayTuple(s types.TypeId, sData types.TypeData, t types.TypeId, tData types.TypeData) (Result, bool) {
	sArr, sIsArr := sData.(types.Array)
	tArr, tIsArr := tData.(types.Array)
	sTup, sIsTup := sData.(types.Tuple)
	tTup, tIsTup := tData.(types.Tuple)

	switch {
	case sIsArr && tIsArr:
		return c.check(sArr.Element, tArr.Element), true

	case sIsTup && tIsTup:
		return c.checkTupleTuple(sTup, tTup), true

	case sIsTup && tIsArr:
		elems := make([]types.TypeId, len(sTup.Elements))
		for i, e := range sTup.Elements {
			elems[i] = e.Type
		}
		widened := c.in.Union(elems)
		return boolResult(c.check(widened, tArr.Element) == True), true

	case sIsArr && tIsTup:
		// An array can only satisfy a tuple if its element type alone can
		// populate every required slot (conservative: reject optional slots
		// with no corresponding source guarantee, per spec §4.4 rule 8).
		for _, e := range tTup.Elements {
			if e.Optional || e.Rest {
				return False, true
			}
			if c.check(sArr.Element, e.Type) != True {
				return False, true
			}
		}
		return True, true
	}
	return False, false
}

func (c *Checker) checkTupleTuple(s, t types.Tuple) Result {
	si, ti := 0, 0
	for ti < len(t.Elements) {
		te := t.Elements[ti]
		if te.Rest {
			for si < len(s.Elements) {
				if r := c.check(s.Elements[si].Type, te.Type); r != True {
					return r
				}
				si++
			}
			ti++
			continue
		}
		if si >= len(s.Elements) {
			if te.Optional {
				ti++
				continue
			}
			return False
		}
		se := s.Elements[si]
		if se.Rest {
			if r := c.check(se.Type, te.Type); r != True {
				return r
			}
			si++
			continue
		}
		if !te.Optional && se.Optional {
			return False
		}
		if r := c.check(se.Type, te.Type); r != True {
			return r
		}
		si++
		ti++
	}
	return boolResult(si >= len(s.Elements))
}

// checkObject implements rule 9, the core of structural subtyping.
func (c *Checker) checkObject(s types.TypeId, sData types.TypeData, t types.TypeId, tData types.TypeData) (Result, bool) {
	tShape, tStringIdx, tNumberIdx, tIsObj := shapeOf(tData)
	if !tIsObj {
		return False, false
	}
	sShape, sStringIdx, sNumberIdx, sIsObj := shapeOf(sData)
	if !sIsObj {
		return False, false
	}

	if nominalMismatch(sShape, tShape) {
		return False, true
	}

	if isWeakType(tShape) && !sharesAnyMember(sShape, tShape) {
		return False, true
	}

	if sShape.Fresh && hasExcessProperty(sShape, tShape) {
		return False, true
	}

	for _, tp := range tShape.Properties {
		if tp.Visibility != types.Public {
			continue // nominal branding already checked above
		}
		sp, found := findProp(sShape, tp.Name)
		if !found {
			if tp.Optional {
				continue
			}
			if matched := c.matchesIndexSignature(tp, sStringIdx, sNumberIdx); matched {
				continue
			}
			return False, true
		}
		if r := c.check(sp.ReadType, tp.ReadType); r != True {
			return r, true
		}
		if !tp.Readonly {
			if r := c.check(tp.WriteType, sp.WriteType); r != True {
				return r, true
			}
		}
		if c.policy.ExactOptionalPropertyTypes {
			if tp.Optional && !sp.Optional && c.allowsUndefined(sp.ReadType) {
				return False, true
			}
		}
		if sp.Optional && !tp.Optional {
			return False, true
		}
	}

	if tStringIdx != types.Invalid {
		for _, sp := range sShape.Properties {
			if c.check(sp.ReadType, tStringIdx) != True {
				return False, true
			}
		}
		if sStringIdx != types.Invalid && c.check(sStringIdx, tStringIdx) != True {
			return False, true
		}
	}
	if tNumberIdx != types.Invalid {
		if sNumberIdx != types.Invalid && c.check(sNumberIdx, tNumberIdx) != True {
			return False, true
		}
	}

	return True, true
}

func shapeOf(data types.TypeData) (shape types.ObjectShape, stringIdx, numberIdx types.TypeId, ok bool) {
	switch d := data.(type) {
	case types.Object:
		return d.Shape, types.Invalid, types.Invalid, true
	case types.ObjectWithIndex:
		return d.Shape, d.StringIndex, d.NumberIndex, true
	case types.Callable:
		return d.Shape, d.StringIndex, d.NumberIndex, true
	default:
		return types.ObjectShape{}, types.Invalid, types.Invalid, false
	}
}

func findProp(shape types.ObjectShape, name string) (types.PropertyInfo, bool) {
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

// nominalMismatch implements the nominal check: if either shape brands
// a private/protected member, both must share the same owning symbol.
func nominalMismatch(s, t types.ObjectShape) bool {
	sBranded := shapeBranded(s)
	tBranded := shapeBranded(t)
	if !sBranded && !tBranded {
		return false
	}
	return s.SymbolId != t.SymbolId
}

func shapeBranded(shape types.ObjectShape) bool {
	for _, p := range shape.Properties {
		if p.Visibility != types.Public {
			return true
		}
	}
	return false
}

// isWeakType reports whether every property of shape is optional,
// triggering the weak-type overlap requirement.
func isWeakType(shape types.ObjectShape) bool {
	if len(shape.Properties) == 0 {
		return false
	}
	for _, p := range shape.Properties {
		if !p.Optional {
			return false
		}
	}
	return true
}

func sharesAnyMember(s, t types.ObjectShape) bool {
	names := make(map[string]bool, len(s.Properties))
	for _, p := range s.Properties {
		names[p.Name] = true
	}
	for _, p := range t.Properties {
		if names[p.Name] {
			return true
		}
	}
	return false
}

func hasExcessProperty(source, target types.ObjectShape) bool {
	allowed := make(map[string]bool, len(target.Properties))
	for _, p := range target.Properties {
		allowed[p.Name] = true
	}
	for _, p := range source.Properties {
		if !allowed[p.Name] {
			return true
		}
	}
	return false
}

func (c *Checker) matchesIndexSignature(tp types.PropertyInfo, sStringIdx, sNumberIdx types.TypeId) bool {
	if sStringIdx != types.Invalid && c.check(sStringIdx, tp.ReadType) == True {
		return true
	}
	if sNumberIdx != types.Invalid && c.check(sNumberIdx, tp.ReadType) == True {
		return true
	}
	return false
}

func (c *Checker) allowsUndefined(id types.TypeId) bool {
	if id == types.Undefined {
		return true
	}
	if data, ok := c.in.Lookup(id); ok {
		if u, isUnion := data.(types.Union); isUnion {
			for _, m := range u.Members {
				if m == types.Undefined {
					return true
				}
			}
		}
	}
	return false
}

// checkFunction implements rule 10.
func (c *Checker) checkFunction(s types.TypeId, sData types.TypeData, t types.TypeId, tData types.TypeData) (Result, bool) {
	tSigs, tIsCallable := signaturesOf(tData)
	if !tIsCallable {
		return False, false
	}
	sSigs, sIsCallable := signaturesOf(sData)
	if !sIsCallable {
		return False, false
	}

	for _, tSig := range tSigs {
		matched := false
		for _, sSig := range sSigs {
			if c.signatureAssignable(sSig, tSig) {
				matched = true
				break
			}
		}
		if !matched {
			return False, true
		}
	}
	return True, true
}

func signaturesOf(data types.TypeData) ([]types.CallSignature, bool) {
	switch d := data.(type) {
	case types.Function:
		return []types.CallSignature{d.Signature}, true
	case types.Callable:
		return d.CallSignatures, true
	default:
		return nil, false
	}
}

func (c *Checker) signatureAssignable(s, t types.CallSignature) bool {
	if s.IsConstructor != t.IsConstructor {
		return false
	}
	if s.Predicate != nil || t.Predicate != nil {
		if !c.predicatesCompatible(s.Predicate, t.Predicate) {
			return false
		}
	}

	if t.Return == types.Void && c.policy.AllowVoidReturn {
		// accept any source return
	} else if c.check(s.Return, t.Return) != True {
		return false
	}

	if s.ThisType != types.Invalid && t.ThisType != types.Invalid {
		if !c.paramCompatible(s.ThisType, t.ThisType, s.IsMethod && t.IsMethod) {
			return false
		}
	}

	if c.policy.AllowBivariantRest && isUniversalRest(s) {
		return true
	}

	return c.paramsAssignable(s, t)
}

func isUniversalRest(sig types.CallSignature) bool {
	return len(sig.Params) == 1 && sig.Params[0].Rest
}

func (c *Checker) paramsAssignable(s, t types.CallSignature) bool {
	required := func(params []types.ParamInfo) int {
		n := 0
		for _, p := range params {
			if !p.Optional && !p.Rest {
				n++
			}
		}
		return n
	}

	if !c.policy.AllowBivariantParamCount && required(s.Params) > len(t.Params) && !hasRest(t.Params) {
		return false
	}

	bivariant := s.IsMethod && t.IsMethod && !c.policy.DisableMethodBivariance

	for i := range t.Params {
		tp := t.Params[i]
		sp, ok := paramAt(s.Params, i)
		if !ok {
			if hasRest(s.Params) {
				sp, _ = paramAt(s.Params, len(s.Params)-1)
			} else {
				continue // target has more params than source requires (ok)
			}
		}
		if !c.paramCompatible(sp.Type, tp.Type, bivariant) {
			return false
		}
	}
	return true
}

func paramAt(params []types.ParamInfo, i int) (types.ParamInfo, bool) {
	if i < 0 || i >= len(params) {
		return types.ParamInfo{}, false
	}
	return params[i], true
}

func hasRest(params []types.ParamInfo) bool {
	for _, p := range params {
		if p.Rest {
			return true
		}
	}
	return false
}

// paramCompatible checks one parameter pair. Standalone function
// parameters are contravariant (target's param must accept source's
// declared type, i.e. t <: s); methods are bivariant when bivariant is
// true, accepting either direction.
func (c *Checker) paramCompatible(sType, tType types.TypeId, bivariant bool) bool {
	if c.check(tType, sType) == True {
		return true
	}
	if bivariant || !c.policy.StrictFunctionTypes {
		return c.check(sType, tType) == True
	}
	return false
}

func (c *Checker) predicatesCompatible(s, t *types.TypePredicate) bool {
	if s == nil || t == nil {
		return true // an unpredicated side satisfies a predicated one structurally
	}
	if s.Asserts != t.Asserts {
		return false
	}
	if s.Type == types.Invalid || t.Type == types.Invalid {
		return true
	}
	return c.check(s.Type, t.Type) == True
}

// checkMeta implements rule 11: reduce meta-types through the injected
// evaluator before comparing.
func (c *Checker) checkMeta(s types.TypeId, sData types.TypeData, t types.TypeId, tData types.TypeData) (Result, bool) {
	sReduced, sIsMeta := reduceIfMeta(c, s, sData)
	tReduced, tIsMeta := reduceIfMeta(c, t, tData)
	if !sIsMeta && !tIsMeta {
		return False, false
	}
	return boolResult(c.check(sReduced, tReduced) == True), true
}

func reduceIfMeta(c *Checker, id types.TypeId, data types.TypeData) (types.TypeId, bool) {
	switch data.(type) {
	case types.Conditional, types.Mapped, types.IndexAccess, types.KeyOf, types.StringIntrinsic:
		return c.evaluate(id), true
	default:
		return id, false
	}
}

// checkEnum implements rule 12.
func (c *Checker) checkEnum(s types.TypeId, sData types.TypeData, t types.TypeId, tData types.TypeData) (Result, bool) {
	sEnum, sIsEnum := sData.(types.Enum)
	tEnum, tIsEnum := tData.(types.Enum)

	switch {
	case sIsEnum && tIsEnum:
		return boolResult(sEnum.DefId == tEnum.DefId), true
	case sIsEnum && !sEnum.IsString:
		return boolResult(t == types.Number), true
	case tIsEnum && !tEnum.IsString:
		return boolResult(s == types.Number), true
	case sIsEnum || tIsEnum:
		return False, true
	}
	return False, false
}

// checkGenericFallback implements rule 13: an unsubstituted type
// parameter falls back to its declared constraint.
func (c *Checker) checkGenericFallback(s types.TypeId, sData types.TypeData, t types.TypeId) (Result, bool) {
	tp, ok := sData.(types.TypeParameter)
	if !ok {
		return False, false
	}
	if tp.Constraint == types.Invalid {
		return boolResult(t == types.Unknown || t == types.Any), true
	}
	return boolResult(c.check(tp.Constraint, t) == True), true
}
