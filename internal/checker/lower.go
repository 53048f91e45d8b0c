package checker

import (
	"strconv"

	"github.com/funvibe/tsgo-core/internal/binder"
	"github.com/funvibe/tsgo-core/internal/diag"
	"github.com/funvibe/tsgo-core/internal/instantiate"
	"github.com/funvibe/tsgo-core/internal/parsetree"
	"github.com/funvibe/tsgo-core/internal/types"
)

// collectDecls registers every interface, type alias, and enum name
// declared at the top level of stmts before anything is lowered, so
// that a later declaration's name is already resolvable from an earlier
// one's body (spec §7's "declarations see the whole file").
func (c *Checker) collectDecls(stmts []parsetree.NodeIndex) {
	for _, s := range stmts {
		switch c.arena.Kind(s) {
		case parsetree.KindInterfaceDeclaration:
			d, _ := c.arena.GetInterface(s)
			c.decls[c.arena.Text(d.Name)] = declEntry{kind: parsetree.KindInterfaceDeclaration, node: s}
		case parsetree.KindTypeAliasDeclaration:
			d, _ := c.arena.GetTypeAlias(s)
			c.decls[c.arena.Text(d.Name)] = declEntry{kind: parsetree.KindTypeAliasDeclaration, node: s}
		case parsetree.KindEnumDeclaration:
			d, _ := c.arena.GetEnum(s)
			c.decls[c.arena.Text(d.Name)] = declEntry{kind: parsetree.KindEnumDeclaration, node: s}
		}
	}
}

// lowerType translates a type-annotation node into an interned TypeId.
// Unsupported or malformed nodes widen to types.Any rather than halting
// the rest of the lowering pass (spec §7's error-poisoning posture, Rule
// 11 of the unsoundness catalog).
func (c *Checker) lowerType(idx parsetree.NodeIndex) types.TypeId {
	if idx == parsetree.InvalidNode {
		return types.Any
	}

	switch c.arena.Kind(idx) {
	case parsetree.KindTypeReference:
		return c.lowerTypeReference(idx)
	case parsetree.KindUnionType:
		d, _ := c.arena.GetUnionType(idx)
		members := make([]types.TypeId, len(d.Types))
		for i, t := range d.Types {
			members[i] = c.lowerType(t)
		}
		return c.in.Union(members)
	case parsetree.KindIntersectionType:
		d, _ := c.arena.GetIntersectionType(idx)
		members := make([]types.TypeId, len(d.Types))
		for i, t := range d.Types {
			members[i] = c.lowerType(t)
		}
		return c.in.Intersection(members)
	case parsetree.KindArrayType:
		d, _ := c.arena.GetArrayType(idx)
		return c.in.Array(c.lowerType(d.Element))
	case parsetree.KindTupleType:
		return c.lowerTupleType(idx)
	case parsetree.KindFunctionType:
		return c.lowerFunctionType(idx)
	case parsetree.KindTypeLiteral:
		return c.lowerTypeLiteral(idx)
	case parsetree.KindConditionalType:
		return c.lowerConditionalType(idx)
	case parsetree.KindMappedType:
		return c.lowerMappedType(idx)
	case parsetree.KindIndexedAccessType:
		d, _ := c.arena.GetIndexedAccessType(idx)
		return c.in.IndexAccess(c.lowerType(d.Object), c.lowerType(d.Index))
	case parsetree.KindTypeOperator:
		return c.lowerTypeOperator(idx)
	case parsetree.KindTypeQuery:
		// A typeof query needs the binder to resolve a value symbol's
		// declared type; the reference binder in this repo doesn't carry
		// one, so this widens to Any rather than guessing.
		return types.Any
	case parsetree.KindTemplateLiteralType:
		return c.lowerTemplateLiteralType(idx)
	case parsetree.KindLiteralType:
		return c.lowerLiteralType(idx)
	case parsetree.KindParenthesizedType:
		return c.lowerType(firstChild(c.arena, idx))
	case parsetree.KindInferType:
		d, _ := c.arena.GetInferType(idx)
		tp, _ := c.arena.GetTypeParameter(d.TypeParam)
		constraint := types.Invalid
		if tp.Constraint != parsetree.InvalidNode {
			constraint = c.lowerType(tp.Constraint)
		}
		name := c.arena.Text(tp.Name)
		id := c.in.InferVar(types.Infer{Name: name, Constraint: constraint})
		// Makes the inferred variable resolvable by name from the
		// conditional's true branch, lowered under the same scope.
		c.registerInTypeParamScope(name, id)
		return id
	case parsetree.KindThisType:
		return c.in.ThisType()
	default:
		return types.Any
	}
}

// firstChild is a small helper for wrapper nodes (parenthesized types)
// that keep their inner node as their sole child rather than a named
// payload field.
func firstChild(a *parsetree.Arena, idx parsetree.NodeIndex) parsetree.NodeIndex {
	kids := a.Children(idx)
	if len(kids) == 0 {
		return parsetree.InvalidNode
	}
	return kids[0]
}

var keywordIntrinsics = map[string]types.TypeId{
	"string": types.String, "number": types.Number, "boolean": types.Boolean,
	"any": types.Any, "unknown": types.Unknown, "never": types.Never,
	"void": types.Void, "undefined": types.Undefined, "null": types.Null,
	"object": types.ObjectKeyword, "bigint": types.BigInt, "symbol": types.SymbolType,
	"Function": types.FunctionKeyword,
}

func (c *Checker) lowerTypeReference(idx parsetree.NodeIndex) types.TypeId {
	d, _ := c.arena.GetTypeReference(idx)
	if id, ok := c.lookupTypeParam(d.Name); ok {
		return id
	}
	if id, ok := keywordIntrinsics[d.Name]; ok {
		return id
	}

	base, ok := c.lowerNamedType(d.Name)
	if !ok {
		length := c.arena.End(idx) - c.arena.Pos(idx)
		c.sink.Report(diag.CategoryError, diag.CodeCannotFindName, c.arena.Pos(idx), length, d.Name)
		return types.Any
	}
	if len(d.TypeArgs) == 0 {
		return base
	}

	entry := c.decls[d.Name]
	params := c.declaredTypeParams(entry)
	args := make([]types.TypeId, len(d.TypeArgs))
	for i, a := range d.TypeArgs {
		args[i] = c.lowerType(a)
	}
	subst := instantiate.FromArgs(c.in, params, args)
	return instantiate.New(c.in, subst).Instantiate(base)
}

// declaredTypeParams returns the TypeParameter ids a named declaration
// introduced, in declaration order, or nil for a non-generic one.
func (c *Checker) declaredTypeParams(e declEntry) []types.TypeId {
	switch e.kind {
	case parsetree.KindInterfaceDeclaration:
		d, _ := c.arena.GetInterface(e.node)
		return c.lowerTypeParamList(d.TypeParams)
	case parsetree.KindTypeAliasDeclaration:
		d, _ := c.arena.GetTypeAlias(e.node)
		if d.TypeParams == parsetree.InvalidNode {
			return nil
		}
		return c.lowerTypeParamList([]parsetree.NodeIndex{d.TypeParams})
	default:
		return nil
	}
}

func (c *Checker) lowerTypeParamList(nodes []parsetree.NodeIndex) []types.TypeId {
	ids := make([]types.TypeId, 0, len(nodes))
	for _, n := range nodes {
		tp, ok := c.arena.GetTypeParameter(n)
		if !ok {
			continue
		}
		constraint, def := types.Invalid, types.Invalid
		if tp.Constraint != parsetree.InvalidNode {
			constraint = c.lowerType(tp.Constraint)
		}
		if tp.Default != parsetree.InvalidNode {
			def = c.lowerType(tp.Default)
		}
		ids = append(ids, c.in.TypeParam(types.TypeParameter{Name: c.arena.Text(tp.Name), Constraint: constraint, Default: def}))
	}
	return ids
}

// lowerNamedType resolves a user-declared interface/type-alias/enum
// name to its (possibly still-generic) TypeId, lowering its body lazily
// on first use and memoizing the result. A name currently being lowered
// (a recursive type) widens to Unknown rather than looping forever —
// the interner's content-addressed ids have no mutable back-patching
// slot the way a mutable AST-typed checker would use to tie the knot.
func (c *Checker) lowerNamedType(name string) (types.TypeId, bool) {
	if id, ok := c.typeCache[name]; ok {
		return id, true
	}
	entry, ok := c.decls[name]
	if !ok {
		return types.Invalid, false
	}
	if c.resolving[name] {
		return types.Unknown, true
	}
	c.resolving[name] = true
	defer delete(c.resolving, name)

	var id types.TypeId
	switch entry.kind {
	case parsetree.KindInterfaceDeclaration:
		id = c.lowerInterfaceBody(entry.node)
	case parsetree.KindTypeAliasDeclaration:
		id = c.lowerTypeAliasBody(entry.node)
	case parsetree.KindEnumDeclaration:
		id = c.lowerEnumBody(entry.node)
	default:
		id = types.Any
	}
	c.typeCache[name] = id
	return id, true
}

func (c *Checker) lowerTypeAliasBody(node parsetree.NodeIndex) types.TypeId {
	d, _ := c.arena.GetTypeAlias(node)
	var params []types.TypeId
	if d.TypeParams != parsetree.InvalidNode {
		params = c.lowerTypeParamList([]parsetree.NodeIndex{d.TypeParams})
	}
	c.pushTypeParamScope(params)
	defer c.popTypeParamScope()
	return c.lowerType(d.Type)
}

// lowerInterfaceBody builds the interface's own member shape, then
// folds in every `extends` base's members (own members win on a name
// collision) — interfaces are structural in this checker, so extension
// is member inheritance rather than a distinct type former.
func (c *Checker) lowerInterfaceBody(node parsetree.NodeIndex) types.TypeId {
	d, _ := c.arena.GetInterface(node)

	c.pushTypeParamScope(c.lowerTypeParamList(d.TypeParams))
	defer c.popTypeParamScope()

	props, stringIndex, numberIndex := c.lowerMembers(d.Members)

	// An interface's Heritage list holds its `extends` base types
	// directly as type nodes (interfaces have no `implements` clause to
	// disambiguate), so each entry lowers straight to the base's shape.
	for _, baseRef := range d.Heritage {
		base := c.lowerType(baseRef)
		props = mergeInherited(props, c.shapeOf(base))
	}

	if stringIndex != types.Invalid || numberIndex != types.Invalid {
		return c.in.ObjectWithIndex(types.ObjectShape{Properties: props}, orInvalid(stringIndex), orInvalid(numberIndex))
	}
	return c.in.Object(types.ObjectShape{Properties: props})
}

func orInvalid(id types.TypeId) types.TypeId {
	if id == types.Invalid {
		return types.Invalid
	}
	return id
}

// shapeOf returns the ObjectShape a TypeId names, or a zero shape if it
// isn't an object-like type (e.g. an unresolved base widened to Any).
func (c *Checker) shapeOf(id types.TypeId) types.ObjectShape {
	data, ok := c.in.Lookup(id)
	if !ok {
		return types.ObjectShape{}
	}
	switch d := data.(type) {
	case types.Object:
		return d.Shape
	case types.ObjectWithIndex:
		return d.Shape
	default:
		return types.ObjectShape{}
	}
}

// mergeInherited appends every base property absent from own (by name)
// to own, leaving own's declarations untouched where names collide.
func mergeInherited(own []types.PropertyInfo, base types.ObjectShape) []types.PropertyInfo {
	seen := make(map[string]bool, len(own))
	for _, p := range own {
		seen[p.Name] = true
	}
	for _, p := range base.Properties {
		if !seen[p.Name] {
			own = append(own, p)
			seen[p.Name] = true
		}
	}
	return own
}

func (c *Checker) lowerTypeLiteral(idx parsetree.NodeIndex) types.TypeId {
	d, _ := c.arena.GetTypeLiteral(idx)
	props, stringIndex, numberIndex := c.lowerMembers(d.Members)
	if stringIndex != types.Invalid || numberIndex != types.Invalid {
		return c.in.ObjectWithIndex(types.ObjectShape{Properties: props}, orInvalid(stringIndex), orInvalid(numberIndex))
	}
	return c.in.Object(types.ObjectShape{Properties: props})
}

// lowerMembers lowers an interface/type-literal's member list into a
// property list plus any string/number index signature it declares.
// Index results are types.Invalid, not a zero TypeId, when absent.
func (c *Checker) lowerMembers(members []parsetree.NodeIndex) ([]types.PropertyInfo, types.TypeId, types.TypeId) {
	var props []types.PropertyInfo
	stringIndex, numberIndex := types.Invalid, types.Invalid

	for _, m := range members {
		switch c.arena.Kind(m) {
		case parsetree.KindPropertySignature:
			p, _ := c.arena.GetPropertySignature(m)
			t := c.lowerType(p.Type)
			props = append(props, types.PropertyInfo{Name: p.Name, ReadType: t, WriteType: t, Optional: p.Optional, Readonly: p.Readonly})
		case parsetree.KindMethodSignature:
			p, _ := c.arena.GetMethodSignature(m)
			methodTypeParams := c.lowerTypeParamList(p.TypeParams)
			c.pushTypeParamScope(methodTypeParams)
			sig := types.CallSignature{
				TypeParams: methodTypeParams,
				Params:     c.lowerParams(p.Params),
				Return:     c.lowerType(p.ReturnType),
				IsMethod:   true,
			}
			c.popTypeParamScope()
			fn := c.in.Function(sig)
			props = append(props, types.PropertyInfo{Name: p.Name, ReadType: fn, WriteType: fn, Optional: p.Optional, IsMethod: true})
		case parsetree.KindIndexSignature:
			p, _ := c.arena.GetIndexSignature(m)
			keyType := c.lowerType(p.KeyType)
			valueType := c.lowerType(p.ValueType)
			if keyType == types.Number {
				numberIndex = valueType
			} else {
				stringIndex = valueType
			}
		}
	}
	return props, stringIndex, numberIndex
}

func (c *Checker) lowerParams(nodes []parsetree.NodeIndex) []types.ParamInfo {
	params := make([]types.ParamInfo, 0, len(nodes))
	for _, n := range nodes {
		p, ok := c.arena.GetParameter(n)
		if !ok {
			continue
		}
		t := c.lowerType(p.Type)
		if p.Type == parsetree.InvalidNode {
			t = types.Any
		}
		params = append(params, types.ParamInfo{Name: c.arena.Text(p.Name), Type: t, Optional: p.Optional || p.Initializer != parsetree.InvalidNode, Rest: p.IsRest})
	}
	return params
}

func (c *Checker) lowerFunctionType(idx parsetree.NodeIndex) types.TypeId {
	d, _ := c.arena.GetFunctionType(idx)
	return c.in.Function(types.CallSignature{Params: c.lowerParams(d.Params), Return: c.lowerType(d.ReturnType)})
}

func (c *Checker) lowerTupleType(idx parsetree.NodeIndex) types.TypeId {
	d, _ := c.arena.GetTupleType(idx)
	elems := make([]types.TupleElement, len(d.Elements))
	for i, e := range d.Elements {
		elems[i] = types.TupleElement{
			Type:     c.lowerType(e),
			Optional: i < len(d.Optional) && d.Optional[i],
			Rest:     i < len(d.Rest) && d.Rest[i],
		}
	}
	return c.in.Tuple(elems)
}

func (c *Checker) lowerConditionalType(idx parsetree.NodeIndex) types.TypeId {
	d, _ := c.arena.GetConditionalType(idx)
	check := c.lowerType(d.Check)
	distributive := isBareTypeReferenceToParam(c.arena, d.Check)

	// `infer X` in Extends only binds X for the True branch (TypeScript's
	// own scoping rule) — push a scratch scope so lowering Extends can
	// register each infer variable it encounters, then pop it before
	// lowering False.
	c.pushTypeParamScope(nil)
	extends := c.lowerType(d.Extends)
	trueBranch := c.lowerType(d.True)
	c.popTypeParamScope()

	falseBranch := c.lowerType(d.False)
	return c.in.Conditional(check, extends, trueBranch, falseBranch, distributive)
}

// isBareTypeReferenceToParam reports whether node is a plain
// TypeReference with no type arguments — the syntactic shape spec
// §4.2/Rule 40 requires for a conditional to distribute. Wrapping the
// check type in anything else (a tuple, a union of references) disables
// distribution, matching the catalog's naked-parameter rule.
func isBareTypeReferenceToParam(a *parsetree.Arena, node parsetree.NodeIndex) bool {
	if a.Kind(node) != parsetree.KindTypeReference {
		return false
	}
	d, _ := a.GetTypeReference(node)
	return len(d.TypeArgs) == 0
}

func (c *Checker) lowerMappedType(idx parsetree.NodeIndex) types.TypeId {
	d, _ := c.arena.GetMappedType(idx)
	tp, _ := c.arena.GetTypeParameter(d.TypeParam)
	param := c.arena.Text(tp.Name)
	constraint := c.lowerType(d.Constraint)

	// The loop variable (P in [P in K]) is in scope for both the name
	// remapping clause and the value template, so a reference like
	// `T[P]` resolves to the same TypeParameter the evaluator's
	// substituter later binds to each concrete key (spec §4.1.4).
	paramId := c.in.TypeParam(types.TypeParameter{Name: param, Constraint: constraint})
	c.pushTypeParamScope([]types.TypeId{paramId})

	nameType := types.Invalid
	if d.NameType != parsetree.InvalidNode {
		nameType = c.lowerType(d.NameType)
	}
	template := c.lowerType(d.Type)
	c.popTypeParamScope()

	return c.in.Mapped(param, constraint, nameType, template, modifierOp(d.Readonly), modifierOp(d.Optional))
}

func modifierOp(s string) types.ModifierOp {
	switch s {
	case "+":
		return types.ModifierAdd
	case "-":
		return types.ModifierRemove
	default:
		return types.ModifierPreserve
	}
}

func (c *Checker) lowerTypeOperator(idx parsetree.NodeIndex) types.TypeId {
	d, _ := c.arena.GetTypeOperator(idx)
	inner := c.lowerType(d.Type)
	switch d.Operator {
	case "keyof":
		return c.in.KeyOf(inner)
	case "readonly":
		return c.in.Readonly(inner)
	case "unique":
		return inner
	default:
		return inner
	}
}

func (c *Checker) lowerTemplateLiteralType(idx parsetree.NodeIndex) types.TypeId {
	d, _ := c.arena.GetTemplateLiteralType(idx)
	spans := make([]types.TemplateSpan, 0, len(d.Texts)+len(d.Types))
	for i, text := range d.Texts {
		if text != "" {
			spans = append(spans, types.TemplateSpan{Text: text})
		}
		if i < len(d.Types) {
			spans = append(spans, types.TemplateSpan{Type: c.lowerType(d.Types[i]), HasType: true})
		}
	}
	return c.in.TemplateLiteral(spans)
}

func (c *Checker) lowerLiteralType(idx parsetree.NodeIndex) types.TypeId {
	d, _ := c.arena.GetLiteralType(idx)
	switch d.Kind {
	case parsetree.KindStringLiteral:
		return c.in.Literal(types.Literal{ValueKind: types.LiteralString, String: d.Text})
	case parsetree.KindNumericLiteral:
		n, _ := strconv.ParseFloat(d.Text, 64)
		return c.in.Literal(types.Literal{ValueKind: types.LiteralNumber, Number: n})
	case parsetree.KindTrueKeyword:
		return c.in.Literal(types.Literal{ValueKind: types.LiteralBoolean, Boolean: true})
	case parsetree.KindFalseKeyword:
		return c.in.Literal(types.Literal{ValueKind: types.LiteralBoolean, Boolean: false})
	case parsetree.KindNullKeyword:
		return types.Null
	default:
		return types.Any
	}
}

// lowerEnumBody interns each member as a nominal Enum sharing one DefId
// (spec Rule 24, cross-enum incompatibility); numeric enums additionally
// interop with `number` per Rule 7, expressed here only by setting
// IsString false — the open/number-interop behavior itself lives in
// internal/subtype's checkEnum.
func (c *Checker) lowerEnumBody(node parsetree.NodeIndex) types.TypeId {
	d, _ := c.arena.GetEnum(node)
	defID := c.symbols.NewSymbol(c.arena.Text(d.Name), binder.FlagEnum)

	isString := false
	for _, m := range d.Members {
		md, ok := c.arena.GetEnumMember(m)
		if !ok || md.Initializer == parsetree.InvalidNode {
			continue
		}
		if c.arena.Kind(md.Initializer) == parsetree.KindStringLiteral {
			isString = true
		}
	}

	memberType := types.Number
	if isString {
		memberType = types.String
	}
	return c.in.Enum(types.Enum{DefId: types.SymbolId(defID), MemberType: memberType, IsString: isString})
}
