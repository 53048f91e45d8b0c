package checker

import (
	"github.com/funvibe/tsgo-core/internal/diag"
	"github.com/funvibe/tsgo-core/internal/instantiate"
	"github.com/funvibe/tsgo-core/internal/parsetree"
	"github.com/funvibe/tsgo-core/internal/types"
)

// checkStatement dispatches on statement kind, declaring bindings and
// reporting diagnostics through c.sink. Kinds the reference reader
// never produces (classes, modules, imports — spec §7's binder/emitter
// boundary) have no case here; anything unrecognized is a silent no-op,
// matching lowerType's widen-rather-than-halt posture.
func (c *Checker) checkStatement(idx parsetree.NodeIndex) {
	switch c.arena.Kind(idx) {
	case parsetree.KindVariableStatement:
		c.checkVariableStatement(idx)
	case parsetree.KindFunctionDeclaration:
		c.checkFunctionDeclaration(idx)
	case parsetree.KindInterfaceDeclaration:
		c.checkInterfaceDeclaration(idx)
	case parsetree.KindTypeAliasDeclaration:
		d, _ := c.arena.GetTypeAlias(idx)
		c.lowerNamedType(c.arena.Text(d.Name))
	case parsetree.KindEnumDeclaration:
		d, _ := c.arena.GetEnum(idx)
		c.lowerNamedType(c.arena.Text(d.Name))
	case parsetree.KindExpressionStatement:
		c.inferExprType(c.expressionOf(idx))
	case parsetree.KindReturnStatement:
		// No-op here: checkFunctionDeclaration checks each top-level
		// return statement of a body against the declared return type
		// itself, right after dispatching it through this switch.
	case parsetree.KindIfStatement:
		c.checkIfStatement(idx)
	case parsetree.KindBlock:
		c.pushScope()
		for _, s := range c.arena.Children(idx) {
			c.checkStatement(s)
		}
		c.popScope()
	}
}

func (c *Checker) expressionOf(stmt parsetree.NodeIndex) parsetree.NodeIndex {
	kids := c.arena.Children(stmt)
	if len(kids) == 0 {
		return parsetree.InvalidNode
	}
	return kids[0]
}

// checkIfStatement's children are positional: condition, then-branch,
// and an optional else-branch (parseIfStatement links them in that
// order with no wrapping payload to name them by).
func (c *Checker) checkIfStatement(idx parsetree.NodeIndex) {
	kids := c.arena.Children(idx)
	if len(kids) == 0 {
		return
	}
	c.inferExprType(kids[0])
	for _, branch := range kids[1:] {
		c.checkStatement(branch)
	}
}

// checkVariableStatement lowers each declaration's annotation (if any),
// infers its initializer's type (if any), checks the initializer is
// assignable to the annotation, and binds the declared name in the
// current scope. A `let`/`var` with no annotation takes the widened
// type of its initializer (Rule 10, Literal Widening); `const` keeps
// the narrow literal form.
func (c *Checker) checkVariableStatement(idx parsetree.NodeIndex) {
	d, _ := c.arena.GetVariableStatement(idx)
	for _, declNode := range d.Declarations {
		decl, ok := c.arena.GetVariableDeclaration(declNode)
		if !ok {
			continue
		}
		name := c.arena.Text(decl.Name)

		var declared types.TypeId = types.Invalid
		if decl.Type != parsetree.InvalidNode {
			declared = c.lowerType(decl.Type)
		}

		var bound types.TypeId
		switch {
		case decl.Initializer != parsetree.InvalidNode:
			inferred := c.inferExprType(decl.Initializer)
			if declared != types.Invalid {
				if !c.checkExcessProperties(decl.Initializer, inferred, declared) {
					if !c.sub.IsSubtypeBool(inferred, declared) {
						c.reportNotAssignable(decl.Initializer, inferred, declared)
					}
				}
				bound = declared
			} else if decl.IsConst {
				bound = inferred
			} else {
				bound = c.widen(inferred)
			}
		case declared != types.Invalid:
			bound = declared
		default:
			if c.opts.NoImplicitAny {
				c.sink.Report(diag.CategoryError, diag.CodeImplicitAny, c.arena.Pos(decl.Name), c.arena.End(decl.Name)-c.arena.Pos(decl.Name), name)
			}
			bound = types.Any
		}
		c.declareValue(name, bound)
	}
}

// widen drops a fresh object literal's excess-property eligibility and
// a literal's narrow form to its base primitive, the way an
// uninitialized-annotation `let`/`var` binding does in real TypeScript.
func (c *Checker) widen(id types.TypeId) types.TypeId {
	data, ok := c.in.Lookup(id)
	if !ok {
		return id
	}
	if lit, isLit := data.(types.Literal); isLit {
		return lit.BaseIntrinsic()
	}
	if obj, isObj := data.(types.Object); isObj && obj.Shape.Fresh {
		obj.Shape.Fresh = false
		return c.in.Object(obj.Shape)
	}
	return id
}

// stripNullish drops Null/Undefined members for a non-null assertion
// (`expr!`) — a type-level no-op for anything else, matching how the
// operator only ever narrows, never widens.
func (c *Checker) stripNullish(id types.TypeId) types.TypeId {
	data, ok := c.in.Lookup(id)
	if !ok {
		return id
	}
	union, isUnion := data.(types.Union)
	if !isUnion {
		if id == types.Null || id == types.Undefined {
			return types.Never
		}
		return id
	}
	kept := make([]types.TypeId, 0, len(union.Members))
	for _, m := range union.Members {
		if m != types.Null && m != types.Undefined {
			kept = append(kept, m)
		}
	}
	return c.in.Union(kept)
}

// checkExcessProperties implements Rule 4's special-cased check: a
// *fresh* object literal assigned directly into a narrower declared
// object shape is rejected for any property the target doesn't know
// about, even though ordinary structural width subtyping would accept
// it. It reports one diagnostic per excess property and returns whether
// it reported any, so the caller can skip the (otherwise redundant, and
// in this case misleadingly permissive) general subtype check; when it
// returns false the caller still runs that general check.
func (c *Checker) checkExcessProperties(at parsetree.NodeIndex, inferred, declared types.TypeId) bool {
	data, ok := c.in.Lookup(inferred)
	if !ok {
		return false
	}
	obj, isFreshObj := data.(types.Object)
	if !isFreshObj || !obj.Shape.Fresh {
		return false
	}
	target := c.shapeOf(c.eval.Evaluate(declared))
	if len(target.Properties) == 0 {
		return false
	}
	length := c.arena.End(at) - c.arena.Pos(at)
	reported := false
	for _, p := range obj.Shape.Properties {
		if _, found := findMatchingProp(target.Properties, p.Name); !found {
			c.sink.Report(diag.CategoryError, diag.CodeExcessProperty, c.arena.Pos(at), length, p.Name, c.describeType(declared))
			reported = true
		}
	}
	return reported
}

func (c *Checker) reportNotAssignable(at parsetree.NodeIndex, src, dst types.TypeId) {
	c.sink.Report(diag.CategoryError, diag.CodeNotAssignable, c.arena.Pos(at), c.arena.End(at)-c.arena.Pos(at), c.describeType(src), c.describeType(dst))
}

// checkFunctionDeclaration builds the function's CallSignature, binds
// its name in the enclosing scope, then — in a fresh child scope with
// each parameter bound — checks every return statement's inferred type
// against the declared return type (when the function declares one).
func (c *Checker) checkFunctionDeclaration(idx parsetree.NodeIndex) {
	d, _ := c.arena.GetFunction(idx)
	typeParams := c.lowerTypeParamList(d.TypeParams)
	c.pushTypeParamScope(typeParams)
	defer c.popTypeParamScope()

	params := c.lowerParams(d.Params)

	declaredReturn := types.Invalid
	if d.ReturnType != parsetree.InvalidNode {
		declaredReturn = c.lowerType(d.ReturnType)
	}

	sig := types.CallSignature{TypeParams: typeParams, Params: params, Return: declaredReturn}
	if declaredReturn == types.Invalid {
		sig.Return = types.Any
	}
	fnType := c.in.Function(sig)
	if d.Name != parsetree.InvalidNode {
		c.declareValue(c.arena.Text(d.Name), fnType)
	}

	if d.Body == parsetree.InvalidNode {
		return
	}

	c.pushScope()
	for i, p := range d.Params {
		pd, ok := c.arena.GetParameter(p)
		if !ok {
			continue
		}
		if pd.Type == parsetree.InvalidNode && c.opts.NoImplicitAny {
			c.sink.Report(diag.CategoryError, diag.CodeImplicitAnyParam, c.arena.Pos(pd.Name), c.arena.End(pd.Name)-c.arena.Pos(pd.Name), c.arena.Text(pd.Name))
		}
		c.declareValue(c.arena.Text(pd.Name), params[i].Type)
	}

	for _, s := range c.arena.Children(d.Body) {
		c.checkStatement(s)
		if declaredReturn != types.Invalid && c.arena.Kind(s) == parsetree.KindReturnStatement {
			c.checkReturnStatement(s, declaredReturn)
		}
	}
	c.popScope()
}

func (c *Checker) checkReturnStatement(idx parsetree.NodeIndex, declaredReturn types.TypeId) {
	node := c.arena.Get(idx)
	exprIdx, _ := node.Payload.(parsetree.NodeIndex)
	if exprIdx == parsetree.InvalidNode {
		if declaredReturn != types.Void && !c.sub.IsSubtypeBool(types.Undefined, declaredReturn) {
			c.reportNotAssignable(idx, types.Void, declaredReturn)
		}
		return
	}
	inferred := c.inferExprType(exprIdx)
	if !c.sub.IsSubtypeBool(inferred, declaredReturn) {
		c.reportNotAssignable(exprIdx, inferred, declaredReturn)
	}
}

// checkInterfaceDeclaration forces the interface's shape to be lowered
// (surfacing any CannotFindName from an unresolved heritage reference)
// and binds its name into type space by resolving it eagerly.
func (c *Checker) checkInterfaceDeclaration(idx parsetree.NodeIndex) {
	d, _ := c.arena.GetInterface(idx)
	c.lowerNamedType(c.arena.Text(d.Name))
}

// inferExprType computes an expression's type, recording diagnostics
// for unresolved names, excess properties, and missing members along
// the way. It deliberately approximates a few things a full checker
// would do more precisely (array literal best-common-type inference,
// `as` expression overlap checking) — both are out of scope for this
// structural core (see DESIGN.md).
func (c *Checker) inferExprType(idx parsetree.NodeIndex) types.TypeId {
	if idx == parsetree.InvalidNode {
		return types.Any
	}

	switch c.arena.Kind(idx) {
	case parsetree.KindStringLiteral:
		d, _ := c.arena.GetStringLiteral(idx)
		return c.in.Literal(types.Literal{ValueKind: types.LiteralString, String: d.Value})
	case parsetree.KindNumericLiteral:
		d, _ := c.arena.GetNumericLiteral(idx)
		return c.in.Literal(types.Literal{ValueKind: types.LiteralNumber, Number: d.Value})
	case parsetree.KindTrueKeyword:
		return c.in.Literal(types.Literal{ValueKind: types.LiteralBoolean, Boolean: true})
	case parsetree.KindFalseKeyword:
		return c.in.Literal(types.Literal{ValueKind: types.LiteralBoolean, Boolean: false})
	case parsetree.KindNullKeyword:
		return types.Null
	case parsetree.KindUndefinedKeyword:
		return types.Undefined
	case parsetree.KindIdentifier:
		name := c.arena.Text(idx)
		if id, ok := c.lookupValue(name); ok {
			return id
		}
		length := c.arena.End(idx) - c.arena.Pos(idx)
		c.sink.Report(diag.CategoryError, diag.CodeCannotFindName, c.arena.Pos(idx), length, name)
		return types.ErrorType
	case parsetree.KindParenthesizedExpression:
		return c.inferExprType(firstChild(c.arena, idx))
	case parsetree.KindAsExpression:
		d, _ := c.arena.GetAsExpression(idx)
		c.inferExprType(d.Expression)
		return c.lowerType(d.Type)
	case parsetree.KindObjectLiteralExpression:
		return c.inferObjectLiteral(idx)
	case parsetree.KindArrayLiteralExpression:
		return c.inferArrayLiteral(idx)
	case parsetree.KindPropertyAccessExpression:
		return c.inferPropertyAccess(idx)
	case parsetree.KindCallExpression:
		return c.inferCallExpression(idx)
	case parsetree.KindConditionalExpression:
		d, _ := c.arena.GetConditionalExpression(idx)
		c.inferExprType(d.Condition)
		t := c.inferExprType(d.WhenTrue)
		f := c.inferExprType(d.WhenFalse)
		return c.in.Union([]types.TypeId{t, f})
	case parsetree.KindBinaryExpression, parsetree.KindAssignmentExpression:
		return c.inferBinaryExpression(idx)
	case parsetree.KindNonNullExpression:
		inner, _ := c.arena.Get(idx).Payload.(parsetree.NodeIndex)
		return c.stripNullish(c.inferExprType(inner))
	case parsetree.KindElementAccessExpression:
		d, _ := c.arena.Get(idx).Payload.(parsetree.ElementAccessExpressionData)
		c.inferExprType(d.Expression)
		c.inferExprType(d.Index)
		return types.Any
	default:
		return types.Any
	}
}

// inferObjectLiteral builds a fresh ObjectShape (Rule 4, excess-property
// eligibility) from the literal's property assignments.
func (c *Checker) inferObjectLiteral(idx parsetree.NodeIndex) types.TypeId {
	d, _ := c.arena.GetObjectLiteral(idx)
	props := make([]types.PropertyInfo, 0, len(d.Properties))
	for _, p := range d.Properties {
		pa, ok := c.arena.GetPropertyAssignment(p)
		if !ok {
			continue
		}
		t := c.inferExprType(pa.Value)
		props = append(props, types.PropertyInfo{Name: pa.Name, ReadType: t, WriteType: t})
	}
	return c.in.Object(types.ObjectShape{Properties: props, Fresh: true})
}

// inferArrayLiteral approximates best-common-type inference (Rule 32,
// not fully implemented — see internal/subtype's catalog) with a plain
// union of element types.
func (c *Checker) inferArrayLiteral(idx parsetree.NodeIndex) types.TypeId {
	d, _ := c.arena.GetArrayLiteral(idx)
	if len(d.Elements) == 0 {
		return c.in.Array(types.Any)
	}
	members := make([]types.TypeId, len(d.Elements))
	for i, e := range d.Elements {
		members[i] = c.widen(c.inferExprType(e))
	}
	return c.in.Array(c.in.Union(members))
}

func (c *Checker) inferPropertyAccess(idx parsetree.NodeIndex) types.TypeId {
	d, _ := c.arena.GetPropertyAccess(idx)
	objType := c.inferExprType(d.Expression)
	shape := c.shapeOf(c.eval.Evaluate(objType))
	for _, p := range shape.Properties {
		if p.Name == d.Name {
			return p.ReadType
		}
	}
	length := c.arena.End(idx) - c.arena.Pos(idx)
	c.sink.Report(diag.CategoryError, diag.CodePropertyNotExist, c.arena.Pos(idx), length, d.Name, c.describeType(objType))
	return types.ErrorType
}

// inferCallExpression resolves the callee to a Function/Callable type,
// checks argument count and per-argument assignability against the
// first matching signature, and returns its declared return type. A
// callee with its own type parameters is instantiated from the call's
// argument types with no explicit type arguments — spec §4.3's
// `from_args` positional inference, the same routine a generic type
// alias reference uses.
func (c *Checker) inferCallExpression(idx parsetree.NodeIndex) types.TypeId {
	d, _ := c.arena.GetCallExpression(idx)
	calleeType := c.eval.Evaluate(c.inferExprType(d.Callee))

	argTypes := make([]types.TypeId, len(d.Arguments))
	for i, a := range d.Arguments {
		argTypes[i] = c.inferExprType(a)
	}

	sig, ok := c.callSignatureOf(calleeType)
	if !ok {
		return types.Any
	}

	if len(sig.TypeParams) > 0 {
		// Positional inference against the declared parameter types: treat
		// each parameter's declared type as the "extends" slot to unify,
		// reusing the evaluator's infer matcher rather than a parallel
		// implementation.
		bindings := make(map[string]types.TypeId)
		for i, p := range sig.Params {
			if i < len(argTypes) {
				c.matchInfer(argTypes[i], p.Type, bindings)
			}
		}
		inst := instantiate.New(c.in, instantiate.Substitution(bindings))
		params := make([]types.ParamInfo, len(sig.Params))
		for i, p := range sig.Params {
			params[i] = types.ParamInfo{Name: p.Name, Type: inst.Instantiate(p.Type), Optional: p.Optional, Rest: p.Rest}
		}
		sig.Params = params
		sig.Return = inst.Instantiate(sig.Return)
	}

	c.checkArguments(idx, sig, argTypes)
	return sig.Return
}

func (c *Checker) checkArguments(call parsetree.NodeIndex, sig types.CallSignature, argTypes []types.TypeId) {
	required := 0
	for _, p := range sig.Params {
		if !p.Optional && !p.Rest {
			required++
		}
	}
	if len(argTypes) < required {
		length := c.arena.End(call) - c.arena.Pos(call)
		c.sink.Report(diag.CategoryError, diag.CodeArityMismatch, c.arena.Pos(call), length, len(argTypes), required)
		return
	}
	for i, p := range sig.Params {
		if p.Rest || i >= len(argTypes) {
			continue
		}
		if !c.sub.IsSubtypeBool(argTypes[i], p.Type) {
			c.sink.Report(diag.CategoryError, diag.CodeArityMismatch, c.arena.Pos(call), c.arena.End(call)-c.arena.Pos(call), c.describeType(argTypes[i]), c.describeType(p.Type))
		}
	}
}

func (c *Checker) callSignatureOf(id types.TypeId) (types.CallSignature, bool) {
	data, ok := c.in.Lookup(id)
	if !ok {
		return types.CallSignature{}, false
	}
	switch d := data.(type) {
	case types.Function:
		return d.Signature, true
	case types.Callable:
		if len(d.CallSignatures) > 0 {
			return d.CallSignatures[0], true
		}
	}
	return types.CallSignature{}, false
}

// inferBinaryExpression covers the handful of operators a structural
// checker core needs to drive assignment and literal-contextual typing
// tests; it is not a full operator-overload resolver (string
// concatenation vs numeric addition, comparison, equality, logical
// short-circuit, and bare assignment).
func (c *Checker) inferBinaryExpression(idx parsetree.NodeIndex) types.TypeId {
	d, _ := c.arena.GetBinaryExpression(idx)
	left := c.inferExprType(d.Left)
	right := c.inferExprType(d.Right)

	switch d.Operator {
	case "=":
		if !c.sub.IsSubtypeBool(right, left) {
			c.reportNotAssignable(d.Right, right, left)
		}
		return right
	case "+":
		if left == types.String || right == types.String {
			return types.String
		}
		return types.Number
	case "-", "*", "/", "%", "**":
		return types.Number
	case "==", "!=", "===", "!==", "<", ">", "<=", ">=", "&&", "||":
		return types.Boolean
	default:
		return types.Any
	}
}
