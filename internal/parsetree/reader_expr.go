package parsetree

// binaryPrecedence ranks binary operators; higher binds tighter.
var binaryPrecedence = map[string]int{
	"??": 1, "||": 1,
	"&&": 2,
	"|":  3, "^": 3, "&": 4,
	"==": 5, "!=": 5, "===": 5, "!==": 5,
	"<": 6, ">": 6, "<=": 6, ">=": 6,
	"+": 7, "-": 7,
	"*": 8, "/": 8, "%": 8,
}

func (r *reader) parseExpression() (NodeIndex, error) {
	return r.parseAssignExpression()
}

func (r *reader) parseAssignExpression() (NodeIndex, error) {
	start := r.cur.pos
	left, err := r.parseConditionalExpression()
	if err != nil {
		return InvalidNode, err
	}
	if r.atPunct("=") || r.atPunct("+=") || r.atPunct("-=") || r.atPunct("*=") || r.atPunct("/=") {
		op := r.cur.text
		r.advance()
		right, err := r.parseAssignExpression()
		if err != nil {
			return InvalidNode, err
		}
		node := r.ar.Add(Node{Kind: KindAssignmentExpression, Pos: start, End: r.cur.pos, Parent: InvalidNode,
			Payload: BinaryExpressionData{Left: left, Right: right, Operator: op}})
		r.ar.SetParent(left, node)
		r.ar.SetParent(right, node)
		return node, nil
	}
	return left, nil
}

func (r *reader) parseConditionalExpression() (NodeIndex, error) {
	start := r.cur.pos
	cond, err := r.parseBinaryExpression(0)
	if err != nil {
		return InvalidNode, err
	}
	if !r.atPunct("?") {
		return cond, nil
	}
	r.advance()
	whenTrue, err := r.parseAssignExpression()
	if err != nil {
		return InvalidNode, err
	}
	if err := r.expectPunct(":"); err != nil {
		return InvalidNode, err
	}
	whenFalse, err := r.parseAssignExpression()
	if err != nil {
		return InvalidNode, err
	}
	node := r.ar.Add(Node{Kind: KindConditionalExpression, Pos: start, End: r.cur.pos, Parent: InvalidNode,
		Payload: ConditionalExpressionData{Condition: cond, WhenTrue: whenTrue, WhenFalse: whenFalse}})
	r.ar.SetParent(cond, node)
	r.ar.SetParent(whenTrue, node)
	r.ar.SetParent(whenFalse, node)
	return node, nil
}

func (r *reader) parseBinaryExpression(minPrec int) (NodeIndex, error) {
	start := r.cur.pos
	left, err := r.parseUnaryExpression()
	if err != nil {
		return InvalidNode, err
	}
	for {
		if r.cur.kind != tokPunct {
			break
		}
		prec, ok := binaryPrecedence[r.cur.text]
		if !ok || prec < minPrec {
			break
		}
		op := r.cur.text
		r.advance()
		right, err := r.parseBinaryExpression(prec + 1)
		if err != nil {
			return InvalidNode, err
		}
		node := r.ar.Add(Node{Kind: KindBinaryExpression, Pos: start, End: r.cur.pos, Parent: InvalidNode,
			Payload: BinaryExpressionData{Left: left, Right: right, Operator: op}})
		r.ar.SetParent(left, node)
		r.ar.SetParent(right, node)
		left = node
	}
	return left, nil
}

func (r *reader) parseUnaryExpression() (NodeIndex, error) {
	if r.atPunct("!") || r.atPunct("-") || r.atPunct("+") || r.atPunct("~") || r.atKeyword("typeof") {
		r.advance()
		return r.parseUnaryExpression()
	}
	if r.atKeyword("new") {
		start := r.cur.pos
		r.advance()
		callee, err := r.parseMemberExpression()
		if err != nil {
			return InvalidNode, err
		}
		var args []NodeIndex
		if r.atPunct("(") {
			args, err = r.parseArguments()
			if err != nil {
				return InvalidNode, err
			}
		}
		node := r.ar.Add(Node{Kind: KindNewExpression, Pos: start, End: r.cur.pos, Parent: InvalidNode,
			Payload: NewExpressionData{Callee: callee, Arguments: args}})
		r.ar.SetParent(callee, node)
		for _, a := range args {
			r.ar.SetParent(a, node)
		}
		return node, nil
	}
	return r.parsePostfixExpression()
}

func (r *reader) parsePostfixExpression() (NodeIndex, error) {
	expr, err := r.parseCallOrMemberExpression()
	if err != nil {
		return InvalidNode, err
	}
	if r.atPunct("!") {
		start := r.ar.Nodes[expr].Pos
		r.advance()
		node := r.ar.Add(Node{Kind: KindNonNullExpression, Pos: start, End: r.cur.pos, Parent: InvalidNode, Payload: expr})
		r.ar.SetParent(expr, node)
		return node, nil
	}
	return expr, nil
}

func (r *reader) parseMemberExpression() (NodeIndex, error) {
	expr, err := r.parsePrimaryExpression()
	if err != nil {
		return InvalidNode, err
	}
	return r.parseMemberTail(expr)
}

func (r *reader) parseCallOrMemberExpression() (NodeIndex, error) {
	expr, err := r.parsePrimaryExpression()
	if err != nil {
		return InvalidNode, err
	}
	for {
		switch {
		case r.atPunct("."):
			start := r.ar.Nodes[expr].Pos
			r.advance()
			name, _, _, err := r.expectIdentText()
			if err != nil {
				return InvalidNode, err
			}
			node := r.ar.Add(Node{Kind: KindPropertyAccessExpression, Pos: start, End: r.cur.pos, Parent: InvalidNode,
				Payload: PropertyAccessExpressionData{Expression: expr, Name: name}})
			r.ar.SetParent(expr, node)
			expr = node
		case r.atPunct("["):
			start := r.ar.Nodes[expr].Pos
			r.advance()
			idx, err := r.parseExpression()
			if err != nil {
				return InvalidNode, err
			}
			if err := r.expectPunct("]"); err != nil {
				return InvalidNode, err
			}
			node := r.ar.Add(Node{Kind: KindElementAccessExpression, Pos: start, End: r.cur.pos, Parent: InvalidNode,
				Payload: ElementAccessExpressionData{Expression: expr, Index: idx}})
			r.ar.SetParent(expr, node)
			r.ar.SetParent(idx, node)
			expr = node
		case r.atPunct("("):
			start := r.ar.Nodes[expr].Pos
			args, err := r.parseArguments()
			if err != nil {
				return InvalidNode, err
			}
			node := r.ar.Add(Node{Kind: KindCallExpression, Pos: start, End: r.cur.pos, Parent: InvalidNode,
				Payload: CallExpressionData{Callee: expr, Arguments: args}})
			r.ar.SetParent(expr, node)
			for _, a := range args {
				r.ar.SetParent(a, node)
			}
			expr = node
		case r.atKeyword("as"):
			start := r.ar.Nodes[expr].Pos
			r.advance()
			t, err := r.parseType()
			if err != nil {
				return InvalidNode, err
			}
			node := r.ar.Add(Node{Kind: KindAsExpression, Pos: start, End: r.cur.pos, Parent: InvalidNode,
				Payload: AsExpressionData{Expression: expr, Type: t}})
			r.ar.SetParent(expr, node)
			r.ar.SetParent(t, node)
			expr = node
		default:
			return expr, nil
		}
	}
}

func (r *reader) parseMemberTail(expr NodeIndex) (NodeIndex, error) {
	for {
		switch {
		case r.atPunct("."):
			start := r.ar.Nodes[expr].Pos
			r.advance()
			name, _, _, err := r.expectIdentText()
			if err != nil {
				return InvalidNode, err
			}
			node := r.ar.Add(Node{Kind: KindPropertyAccessExpression, Pos: start, End: r.cur.pos, Parent: InvalidNode,
				Payload: PropertyAccessExpressionData{Expression: expr, Name: name}})
			r.ar.SetParent(expr, node)
			expr = node
		default:
			return expr, nil
		}
	}
}

func (r *reader) parseArguments() ([]NodeIndex, error) {
	if err := r.expectPunct("("); err != nil {
		return nil, err
	}
	var args []NodeIndex
	for !r.atPunct(")") {
		a, err := r.parseAssignExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if r.atPunct(",") {
			r.advance()
			continue
		}
		break
	}
	if err := r.expectPunct(")"); err != nil {
		return nil, err
	}
	return args, nil
}

func (r *reader) parsePrimaryExpression() (NodeIndex, error) {
	start := r.cur.pos
	switch {
	case r.cur.kind == tokString:
		text := r.cur.text
		r.advance()
		return r.ar.Add(Node{Kind: KindStringLiteral, Pos: start, End: r.cur.pos, Parent: InvalidNode, Payload: StringLiteralData{Value: text}}), nil

	case r.cur.kind == tokNumber:
		text := r.cur.text
		r.advance()
		return r.ar.Add(Node{Kind: KindNumericLiteral, Pos: start, End: r.cur.pos, Parent: InvalidNode,
			Payload: NumericLiteralData{Value: parseNumberLiteral(text), Text: text}}), nil

	case r.atKeyword("true"):
		r.advance()
		return r.ar.Add(Node{Kind: KindTrueKeyword, Pos: start, End: r.cur.pos, Parent: InvalidNode}), nil

	case r.atKeyword("false"):
		r.advance()
		return r.ar.Add(Node{Kind: KindFalseKeyword, Pos: start, End: r.cur.pos, Parent: InvalidNode}), nil

	case r.atKeyword("null"):
		r.advance()
		return r.ar.Add(Node{Kind: KindNullKeyword, Pos: start, End: r.cur.pos, Parent: InvalidNode}), nil

	case r.atKeyword("undefined"):
		r.advance()
		return r.ar.Add(Node{Kind: KindUndefinedKeyword, Pos: start, End: r.cur.pos, Parent: InvalidNode}), nil

	case r.atKeyword("this"):
		r.advance()
		return r.ar.Add(Node{Kind: KindThisType, Pos: start, End: r.cur.pos, Parent: InvalidNode}), nil

	case r.atPunct("("):
		r.advance()
		inner, err := r.parseExpression()
		if err != nil {
			return InvalidNode, err
		}
		if err := r.expectPunct(")"); err != nil {
			return InvalidNode, err
		}
		node := r.ar.Add(Node{Kind: KindParenthesizedExpression, Pos: start, End: r.cur.pos, Parent: InvalidNode})
		r.ar.SetParent(inner, node)
		return node, nil

	case r.atPunct("["):
		r.advance()
		var elements []NodeIndex
		for !r.atPunct("]") {
			e, err := r.parseAssignExpression()
			if err != nil {
				return InvalidNode, err
			}
			elements = append(elements, e)
			if r.atPunct(",") {
				r.advance()
				continue
			}
			break
		}
		if err := r.expectPunct("]"); err != nil {
			return InvalidNode, err
		}
		node := r.ar.Add(Node{Kind: KindArrayLiteralExpression, Pos: start, End: r.cur.pos, Parent: InvalidNode, Payload: ArrayLiteralExpressionData{Elements: elements}})
		for _, e := range elements {
			r.ar.SetParent(e, node)
		}
		return node, nil

	case r.atPunct("{"):
		return r.parseObjectLiteral(start)

	case r.cur.kind == tokIdent || r.cur.kind == tokKeyword:
		text, pos, end, err := r.expectIdentText()
		if err != nil {
			return InvalidNode, err
		}
		if r.atPunct("=>") {
			return r.parseArrowFromSingleParam(start, text, pos, end)
		}
		return r.addIdentifier(text, pos, end), nil

	default:
		return InvalidNode, parseError("unexpected token in expression position", r.cur)
	}
}

func (r *reader) parseArrowFromSingleParam(start int, text string, pos, end int) (NodeIndex, error) {
	nameNode := r.addIdentifier(text, pos, end)
	param := r.ar.Add(Node{Kind: KindParameter, Pos: pos, End: end, Parent: InvalidNode,
		Payload: ParameterData{Name: nameNode, Type: InvalidNode, Initializer: InvalidNode}})
	r.ar.SetParent(nameNode, param)

	r.advance() // "=>"
	body, err := r.parseArrowBody()
	if err != nil {
		return InvalidNode, err
	}
	node := r.ar.Add(Node{Kind: KindArrowFunction, Pos: start, End: r.cur.pos, Parent: InvalidNode,
		Payload: FunctionLikeData{Name: InvalidNode, Params: []NodeIndex{param}, ReturnType: InvalidNode, Body: body}})
	r.ar.SetParent(param, node)
	r.ar.SetParent(body, node)
	return node, nil
}

func (r *reader) parseArrowBody() (NodeIndex, error) {
	if r.atPunct("{") {
		return r.parseBlock()
	}
	return r.parseAssignExpression()
}

func (r *reader) parseObjectLiteral(start int) (NodeIndex, error) {
	r.advance() // "{"
	var props []NodeIndex
	for !r.atPunct("}") {
		pStart := r.cur.pos
		name, _, _, err := r.expectIdentText()
		if err != nil {
			return InvalidNode, err
		}
		value := InvalidNode
		if r.atPunct(":") {
			r.advance()
			value, err = r.parseAssignExpression()
			if err != nil {
				return InvalidNode, err
			}
		}
		p := r.ar.Add(Node{Kind: KindPropertyAssignment, Pos: pStart, End: r.cur.pos, Parent: InvalidNode, Payload: PropertyAssignmentData{Name: name, Value: value}})
		if value != InvalidNode {
			r.ar.SetParent(value, p)
		}
		props = append(props, p)
		if r.atPunct(",") {
			r.advance()
			continue
		}
		break
	}
	if err := r.expectPunct("}"); err != nil {
		return InvalidNode, err
	}
	node := r.ar.Add(Node{Kind: KindObjectLiteralExpression, Pos: start, End: r.cur.pos, Parent: InvalidNode, Payload: ObjectLiteralExpressionData{Properties: props}})
	for _, p := range props {
		r.ar.SetParent(p, node)
	}
	return node, nil
}
