package parsetree

func (r *reader) parseType() (NodeIndex, error) {
	start := r.cur.pos
	checkType, err := r.parseUnionType()
	if err != nil {
		return InvalidNode, err
	}
	if !r.atKeyword("extends") {
		return checkType, nil
	}
	r.advance()
	extendsType, err := r.parseUnionType()
	if err != nil {
		return InvalidNode, err
	}
	if err := r.expectPunct("?"); err != nil {
		return InvalidNode, err
	}
	trueType, err := r.parseType()
	if err != nil {
		return InvalidNode, err
	}
	if err := r.expectPunct(":"); err != nil {
		return InvalidNode, err
	}
	falseType, err := r.parseType()
	if err != nil {
		return InvalidNode, err
	}
	node := r.ar.Add(Node{Kind: KindConditionalType, Pos: start, End: r.cur.pos, Parent: InvalidNode,
		Payload: ConditionalTypeData{Check: checkType, Extends: extendsType, True: trueType, False: falseType}})
	for _, c := range []NodeIndex{checkType, extendsType, trueType, falseType} {
		r.ar.SetParent(c, node)
	}
	return node, nil
}

func (r *reader) parseUnionType() (NodeIndex, error) {
	if r.atPunct("|") {
		r.advance()
	}
	start := r.cur.pos
	first, err := r.parseIntersectionType()
	if err != nil {
		return InvalidNode, err
	}
	members := []NodeIndex{first}
	for r.atPunct("|") {
		r.advance()
		m, err := r.parseIntersectionType()
		if err != nil {
			return InvalidNode, err
		}
		members = append(members, m)
	}
	if len(members) == 1 {
		return first, nil
	}
	node := r.ar.Add(Node{Kind: KindUnionType, Pos: start, End: r.cur.pos, Parent: InvalidNode, Payload: UnionTypeData{Types: members}})
	for _, m := range members {
		r.ar.SetParent(m, node)
	}
	return node, nil
}

func (r *reader) parseIntersectionType() (NodeIndex, error) {
	if r.atPunct("&") {
		r.advance()
	}
	start := r.cur.pos
	first, err := r.parsePostfixType()
	if err != nil {
		return InvalidNode, err
	}
	members := []NodeIndex{first}
	for r.atPunct("&") {
		r.advance()
		m, err := r.parsePostfixType()
		if err != nil {
			return InvalidNode, err
		}
		members = append(members, m)
	}
	if len(members) == 1 {
		return first, nil
	}
	node := r.ar.Add(Node{Kind: KindIntersectionType, Pos: start, End: r.cur.pos, Parent: InvalidNode, Payload: IntersectionTypeData{Types: members}})
	for _, m := range members {
		r.ar.SetParent(m, node)
	}
	return node, nil
}

func (r *reader) parsePostfixType() (NodeIndex, error) {
	start := r.cur.pos
	t, err := r.parsePrimaryType()
	if err != nil {
		return InvalidNode, err
	}
	for {
		if r.atPunct("[") {
			save := r.save()
			r.advance()
			if r.atPunct("]") {
				r.advance()
				element := t
				t = r.ar.Add(Node{Kind: KindArrayType, Pos: start, End: r.cur.pos, Parent: InvalidNode, Payload: ArrayTypeData{Element: element}})
				r.ar.SetParent(element, t)
				continue
			}
			idx, err := r.parseType()
			if err != nil {
				r.restore(save)
				break
			}
			if err := r.expectPunct("]"); err != nil {
				r.restore(save)
				break
			}
			newNode := r.ar.Add(Node{Kind: KindIndexedAccessType, Pos: start, End: r.cur.pos, Parent: InvalidNode,
				Payload: IndexedAccessTypeData{Object: t, Index: idx}})
			r.ar.SetParent(t, newNode)
			r.ar.SetParent(idx, newNode)
			t = newNode
			continue
		}
		break
	}
	return t, nil
}

func (r *reader) parsePrimaryType() (NodeIndex, error) {
	start := r.cur.pos

	switch {
	case r.atKeyword("keyof"):
		r.advance()
		inner, err := r.parsePostfixType()
		if err != nil {
			return InvalidNode, err
		}
		node := r.ar.Add(Node{Kind: KindTypeOperator, Pos: start, End: r.cur.pos, Parent: InvalidNode, Payload: TypeOperatorData{Operator: "keyof", Type: inner}})
		r.ar.SetParent(inner, node)
		return node, nil

	case r.atKeyword("readonly"):
		r.advance()
		inner, err := r.parsePostfixType()
		if err != nil {
			return InvalidNode, err
		}
		node := r.ar.Add(Node{Kind: KindTypeOperator, Pos: start, End: r.cur.pos, Parent: InvalidNode, Payload: TypeOperatorData{Operator: "readonly", Type: inner}})
		r.ar.SetParent(inner, node)
		return node, nil

	case r.atKeyword("unique"):
		r.advance()
		inner, err := r.parsePostfixType()
		if err != nil {
			return InvalidNode, err
		}
		node := r.ar.Add(Node{Kind: KindTypeOperator, Pos: start, End: r.cur.pos, Parent: InvalidNode, Payload: TypeOperatorData{Operator: "unique", Type: inner}})
		r.ar.SetParent(inner, node)
		return node, nil

	case r.atKeyword("typeof"):
		r.advance()
		text, _, _, err := r.expectIdentText()
		if err != nil {
			return InvalidNode, err
		}
		for r.atPunct(".") {
			r.advance()
			more, _, _, err := r.expectIdentText()
			if err != nil {
				return InvalidNode, err
			}
			text += "." + more
		}
		return r.ar.Add(Node{Kind: KindTypeQuery, Pos: start, End: r.cur.pos, Parent: InvalidNode, Payload: TypeQueryData{ExprName: text}}), nil

	case r.atKeyword("infer"):
		r.advance()
		text, pos, end, err := r.expectIdentText()
		if err != nil {
			return InvalidNode, err
		}
		nameNode := r.addIdentifier(text, pos, end)
		tp := r.ar.Add(Node{Kind: KindTypeParameter, Pos: start, End: r.cur.pos, Parent: InvalidNode, Payload: TypeParameterData{Name: nameNode, Constraint: InvalidNode, Default: InvalidNode}})
		r.ar.SetParent(nameNode, tp)
		node := r.ar.Add(Node{Kind: KindInferType, Pos: start, End: r.cur.pos, Parent: InvalidNode, Payload: InferTypeData{TypeParam: tp}})
		r.ar.SetParent(tp, node)
		return node, nil

	case r.atKeyword("this"):
		r.advance()
		return r.ar.Add(Node{Kind: KindThisType, Pos: start, End: r.cur.end, Parent: InvalidNode}), nil

	case r.cur.kind == tokString:
		text := r.cur.text
		r.advance()
		return r.ar.Add(Node{Kind: KindLiteralType, Pos: start, End: r.cur.pos, Parent: InvalidNode, Payload: LiteralTypeData{Kind: KindStringLiteral, Text: text}}), nil

	case r.cur.kind == tokNumber:
		text := r.cur.text
		r.advance()
		return r.ar.Add(Node{Kind: KindLiteralType, Pos: start, End: r.cur.pos, Parent: InvalidNode, Payload: LiteralTypeData{Kind: KindNumericLiteral, Text: text}}), nil

	case r.atKeyword("true") || r.atKeyword("false"):
		text := r.cur.text
		kind := KindFalseKeyword
		if text == "true" {
			kind = KindTrueKeyword
		}
		r.advance()
		return r.ar.Add(Node{Kind: KindLiteralType, Pos: start, End: r.cur.pos, Parent: InvalidNode, Payload: LiteralTypeData{Kind: kind, Text: text}}), nil

	case r.atPunct("("):
		return r.parseParenOrFunctionType(start)

	case r.atPunct("["):
		return r.parseTupleType(start)

	case r.atPunct("{"):
		return r.parseTypeLiteralOrMapped(start)

	case r.cur.kind == tokIdent || r.cur.kind == tokKeyword:
		return r.parseTypeReference(start)

	default:
		return InvalidNode, parseError("unexpected token in type position", r.cur)
	}
}

func (r *reader) parseTypeReference(start int) (NodeIndex, error) {
	name, _, _, err := r.expectIdentText()
	if err != nil {
		return InvalidNode, err
	}
	for r.atPunct(".") {
		r.advance()
		more, _, _, err := r.expectIdentText()
		if err != nil {
			return InvalidNode, err
		}
		name += "." + more
	}
	var typeArgs []NodeIndex
	if r.atPunct("<") {
		r.advance()
		for !r.atPunct(">") {
			arg, err := r.parseType()
			if err != nil {
				return InvalidNode, err
			}
			typeArgs = append(typeArgs, arg)
			if r.atPunct(",") {
				r.advance()
				continue
			}
			break
		}
		if err := r.expectPunct(">"); err != nil {
			return InvalidNode, err
		}
	}
	node := r.ar.Add(Node{Kind: KindTypeReference, Pos: start, End: r.cur.pos, Parent: InvalidNode, Payload: TypeReferenceData{Name: name, TypeArgs: typeArgs}})
	for _, a := range typeArgs {
		r.ar.SetParent(a, node)
	}
	return node, nil
}

func (r *reader) parseTupleType(start int) (NodeIndex, error) {
	r.advance() // "["
	var elements []NodeIndex
	var optional []bool
	var rest []bool
	for !r.atPunct("]") {
		isRest := false
		if r.atPunct("...") {
			isRest = true
			r.advance()
		}
		el, err := r.parseType()
		if err != nil {
			return InvalidNode, err
		}
		isOpt := false
		if r.atPunct("?") {
			isOpt = true
			r.advance()
		}
		elements = append(elements, el)
		optional = append(optional, isOpt)
		rest = append(rest, isRest)
		if r.atPunct(",") {
			r.advance()
			continue
		}
		break
	}
	if err := r.expectPunct("]"); err != nil {
		return InvalidNode, err
	}
	node := r.ar.Add(Node{Kind: KindTupleType, Pos: start, End: r.cur.pos, Parent: InvalidNode,
		Payload: TupleTypeData{Elements: elements, Optional: optional, Rest: rest}})
	for _, e := range elements {
		r.ar.SetParent(e, node)
	}
	return node, nil
}

// parseParenOrFunctionType disambiguates `(params) => Ret` from a
// parenthesized type by attempting the function-type parse first and
// rewinding on failure.
func (r *reader) parseParenOrFunctionType(start int) (NodeIndex, error) {
	save := r.save()
	if params, ok := r.tryParseFunctionTypeParams(); ok {
		if r.atPunct("=>") {
			r.advance()
			ret, err := r.parseType()
			if err == nil {
				node := r.ar.Add(Node{Kind: KindFunctionType, Pos: start, End: r.cur.pos, Parent: InvalidNode,
					Payload: FunctionTypeData{Params: params, ReturnType: ret}})
				for _, p := range params {
					r.ar.SetParent(p, node)
				}
				r.ar.SetParent(ret, node)
				return node, nil
			}
		}
	}
	r.restore(save)

	r.advance() // "("
	inner, err := r.parseType()
	if err != nil {
		return InvalidNode, err
	}
	if err := r.expectPunct(")"); err != nil {
		return InvalidNode, err
	}
	return inner, nil
}

func (r *reader) tryParseFunctionTypeParams() ([]NodeIndex, bool) {
	if !r.atPunct("(") {
		return nil, false
	}
	r.advance()
	var params []NodeIndex
	for !r.atPunct(")") {
		p, err := r.parseParameter()
		if err != nil {
			return nil, false
		}
		params = append(params, p)
		if r.atPunct(",") {
			r.advance()
			continue
		}
		break
	}
	if !r.atPunct(")") {
		return nil, false
	}
	r.advance()
	return params, true
}

// parseTypeLiteralOrMapped parses `{ ... }` as either a mapped type
// `{ [K in T]: V }` or an object type literal of property/method/index
// signatures.
func (r *reader) parseTypeLiteralOrMapped(start int) (NodeIndex, error) {
	save := r.save()
	r.advance() // "{"

	readonlyMod := ""
	if r.atPunct("+") || r.atPunct("-") {
		readonlyMod = r.cur.text
		r.advance()
	}
	if r.atKeyword("readonly") {
		readonlyMod += "readonly"
		r.advance()
	}

	if r.atPunct("[") {
		mapSave := r.save()
		r.advance()
		if text, _, _, err := r.expectIdentText(); err == nil {
			if r.atKeyword("in") {
				r.advance()
				constraint, err := r.parseType()
				if err == nil {
					nameType := InvalidNode
					if r.atKeyword("as") {
						r.advance()
						nameType, err = r.parseType()
					}
					if err == nil && r.expectPunct("]") == nil {
						optMod := ""
						if r.atPunct("+") || r.atPunct("-") {
							optMod = r.cur.text
							r.advance()
						}
						if r.atPunct("?") {
							optMod += "?"
							r.advance()
						}
						if r.expectPunct(":") == nil {
							valueType, err := r.parseType()
							if err == nil {
								if r.atPunct(";") {
									r.advance()
								}
								if err := r.expectPunct("}"); err == nil {
									tpNameNode := r.addIdentifier(text, 0, 0)
									tp := r.ar.Add(Node{Kind: KindTypeParameter, Parent: InvalidNode, Payload: TypeParameterData{Name: tpNameNode, Constraint: constraint, Default: InvalidNode}})
									r.ar.SetParent(tpNameNode, tp)
									r.ar.SetParent(constraint, tp)
									node := r.ar.Add(Node{Kind: KindMappedType, Pos: start, End: r.cur.pos, Parent: InvalidNode,
										Payload: MappedTypeData{TypeParam: tp, Constraint: constraint, NameType: nameType, Type: valueType, Optional: optMod, Readonly: readonlyMod}})
									r.ar.SetParent(tp, node)
									if nameType != InvalidNode {
										r.ar.SetParent(nameType, node)
									}
									r.ar.SetParent(valueType, node)
									return node, nil
								}
							}
						}
					}
				}
			}
		}
		r.restore(mapSave)
	}

	r.restore(save)
	members, err := r.parseMemberList()
	if err != nil {
		return InvalidNode, err
	}
	node := r.ar.Add(Node{Kind: KindTypeLiteral, Pos: start, End: r.cur.pos, Parent: InvalidNode, Payload: TypeLiteralData{Members: members}})
	for _, m := range members {
		r.ar.SetParent(m, node)
	}
	return node, nil
}

type parseErr struct {
	msg string
	t   tok
}

func (e *parseErr) Error() string { return e.msg }

func parseError(msg string, t tok) error { return &parseErr{msg: msg, t: t} }
