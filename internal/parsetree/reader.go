package parsetree

import "fmt"

// reader is the small recursive-descent parser backing ParseSourceFile.
// It is deliberately not a general TypeScript parser (spec §1
// Non-goals): it covers interfaces, type aliases, enums, variable and
// function declarations, a useful subset of type syntax (unions,
// intersections, conditional, mapped, indexed access, tuples, function
// types, type operators), and enough expression syntax to exercise the
// checker's assignability call sites in tests. Template literal types
// are not parsed: a backtick type is read as a string literal type whose
// text is the raw source, backticks included.
type reader struct {
	lex *lexer
	cur tok
	ar  *Arena
}

type readerState struct {
	offset int
	cur    tok
}

func newReader(src string) *reader {
	r := &reader{lex: newLexer(src), ar: NewArena()}
	r.advance()
	return r
}

func (r *reader) save() readerState   { return readerState{offset: r.lex.offset, cur: r.cur} }
func (r *reader) restore(s readerState) { r.lex.offset = s.offset; r.cur = s.cur }

func (r *reader) advance() { r.cur = r.lex.next() }

func (r *reader) atPunct(text string) bool { return r.cur.kind == tokPunct && r.cur.text == text }
func (r *reader) atKeyword(text string) bool {
	return r.cur.kind == tokKeyword && r.cur.text == text
}
func (r *reader) atEOF() bool { return r.cur.kind == tokEOF }

func (r *reader) expectPunct(text string) error {
	if !r.atPunct(text) {
		return fmt.Errorf("parsetree: expected %q at offset %d, found %q", text, r.cur.pos, r.cur.text)
	}
	r.advance()
	return nil
}

func (r *reader) expectIdentText() (string, int, int, error) {
	if r.cur.kind != tokIdent && r.cur.kind != tokKeyword {
		return "", 0, 0, fmt.Errorf("parsetree: expected identifier at offset %d, found %q", r.cur.pos, r.cur.text)
	}
	text, pos, end := r.cur.text, r.cur.pos, r.cur.end
	r.advance()
	return text, pos, end, nil
}

func (r *reader) addIdentifier(text string, pos, end int) NodeIndex {
	return r.ar.Add(Node{Kind: KindIdentifier, Pos: pos, End: end, Parent: InvalidNode, Payload: IdentifierData{Text: text}})
}

// ParseSourceFile parses src into an Arena rooted at a KindSourceFile
// node. It returns the best-effort tree built so far alongside an error
// on malformed input — syntax errors are the parser collaborator's
// responsibility in a full pipeline (spec §7); this reference reader
// simply reports them rather than guaranteeing recovery.
func ParseSourceFile(src string) (*Arena, NodeIndex, error) {
	r := newReader(src)
	root := r.ar.Add(Node{Kind: KindSourceFile, Pos: 0, End: len(src), Parent: InvalidNode})

	var stmts []NodeIndex
	for !r.atEOF() {
		stmt, err := r.parseStatement()
		if err != nil {
			return r.ar, root, err
		}
		if stmt != InvalidNode {
			stmts = append(stmts, stmt)
		}
	}
	for _, s := range stmts {
		r.ar.SetParent(s, root)
	}
	return r.ar, root, nil
}

func (r *reader) parseStatement() (NodeIndex, error) {
	for r.atKeyword("export") || r.atKeyword("declare") {
		r.advance()
		if r.atKeyword("default") {
			r.advance()
		}
	}

	switch {
	case r.atKeyword("let") || r.atKeyword("const") || r.atKeyword("var"):
		return r.parseVariableStatement()
	case r.atKeyword("function"):
		return r.parseFunctionDeclaration()
	case r.atKeyword("interface"):
		return r.parseInterfaceDeclaration()
	case r.atKeyword("type"):
		return r.parseTypeAliasDeclaration()
	case r.atKeyword("enum"):
		return r.parseEnumDeclaration()
	case r.atKeyword("return"):
		return r.parseReturnStatement()
	case r.atKeyword("if"):
		return r.parseIfStatement()
	case r.atPunct("{"):
		return r.parseBlock()
	case r.atPunct(";"):
		r.advance()
		return InvalidNode, nil
	default:
		return r.parseExpressionStatement()
	}
}

func (r *reader) parseBlock() (NodeIndex, error) {
	start := r.cur.pos
	if err := r.expectPunct("{"); err != nil {
		return InvalidNode, err
	}
	var stmts []NodeIndex
	for !r.atPunct("}") && !r.atEOF() {
		s, err := r.parseStatement()
		if err != nil {
			return InvalidNode, err
		}
		if s != InvalidNode {
			stmts = append(stmts, s)
		}
	}
	end := r.cur.end
	if err := r.expectPunct("}"); err != nil {
		return InvalidNode, err
	}
	block := r.ar.Add(Node{Kind: KindBlock, Pos: start, End: end, Parent: InvalidNode})
	for _, s := range stmts {
		r.ar.SetParent(s, block)
	}
	return block, nil
}

func (r *reader) parseReturnStatement() (NodeIndex, error) {
	start := r.cur.pos
	r.advance()
	var expr NodeIndex = InvalidNode
	if !r.atPunct(";") && !r.atPunct("}") {
		e, err := r.parseExpression()
		if err != nil {
			return InvalidNode, err
		}
		expr = e
	}
	end := r.cur.pos
	if r.atPunct(";") {
		end = r.cur.end
		r.advance()
	}
	node := r.ar.Add(Node{Kind: KindReturnStatement, Pos: start, End: end, Parent: InvalidNode, Payload: expr})
	if expr != InvalidNode {
		r.ar.SetParent(expr, node)
	}
	return node, nil
}

func (r *reader) parseIfStatement() (NodeIndex, error) {
	start := r.cur.pos
	r.advance()
	if err := r.expectPunct("("); err != nil {
		return InvalidNode, err
	}
	cond, err := r.parseExpression()
	if err != nil {
		return InvalidNode, err
	}
	if err := r.expectPunct(")"); err != nil {
		return InvalidNode, err
	}
	then, err := r.parseStatement()
	if err != nil {
		return InvalidNode, err
	}
	node := r.ar.Add(Node{Kind: KindIfStatement, Pos: start, End: r.cur.pos, Parent: InvalidNode})
	r.ar.SetParent(cond, node)
	if then != InvalidNode {
		r.ar.SetParent(then, node)
	}
	if r.atKeyword("else") {
		r.advance()
		elseStmt, err := r.parseStatement()
		if err != nil {
			return InvalidNode, err
		}
		if elseStmt != InvalidNode {
			r.ar.SetParent(elseStmt, node)
		}
	}
	return node, nil
}

func (r *reader) parseVariableStatement() (NodeIndex, error) {
	start := r.cur.pos
	isConst := r.cur.text == "const"
	r.advance()

	var decls []NodeIndex
	for {
		decl, err := r.parseVariableDeclaration(isConst)
		if err != nil {
			return InvalidNode, err
		}
		decls = append(decls, decl)
		if r.atPunct(",") {
			r.advance()
			continue
		}
		break
	}
	end := r.cur.pos
	if r.atPunct(";") {
		end = r.cur.end
		r.advance()
	}
	stmt := r.ar.Add(Node{Kind: KindVariableStatement, Pos: start, End: end, Parent: InvalidNode, Payload: VariableStatementData{Declarations: decls}})
	for _, d := range decls {
		r.ar.SetParent(d, stmt)
	}
	return stmt, nil
}

func (r *reader) parseVariableDeclaration(isConst bool) (NodeIndex, error) {
	start := r.cur.pos
	text, pos, end, err := r.expectIdentText()
	if err != nil {
		return InvalidNode, err
	}
	nameNode := r.addIdentifier(text, pos, end)

	typeNode := InvalidNode
	if r.atPunct(":") {
		r.advance()
		typeNode, err = r.parseType()
		if err != nil {
			return InvalidNode, err
		}
	}

	initNode := InvalidNode
	if r.atPunct("=") {
		r.advance()
		initNode, err = r.parseAssignExpression()
		if err != nil {
			return InvalidNode, err
		}
	}

	decl := r.ar.Add(Node{Kind: KindVariableDeclaration, Pos: start, End: r.cur.pos, Parent: InvalidNode,
		Payload: VariableDeclarationData{Name: nameNode, Type: typeNode, Initializer: initNode, IsConst: isConst}})
	r.ar.SetParent(nameNode, decl)
	if typeNode != InvalidNode {
		r.ar.SetParent(typeNode, decl)
	}
	if initNode != InvalidNode {
		r.ar.SetParent(initNode, decl)
	}
	return decl, nil
}

func (r *reader) parseFunctionDeclaration() (NodeIndex, error) {
	start := r.cur.pos
	r.advance() // "function"

	nameNode := InvalidNode
	if r.cur.kind == tokIdent {
		text, pos, end, _ := r.expectIdentText()
		nameNode = r.addIdentifier(text, pos, end)
	}

	typeParams, err := r.parseOptionalTypeParameterList()
	if err != nil {
		return InvalidNode, err
	}

	params, err := r.parseParameterList()
	if err != nil {
		return InvalidNode, err
	}

	returnType := InvalidNode
	if r.atPunct(":") {
		r.advance()
		returnType, err = r.parseType()
		if err != nil {
			return InvalidNode, err
		}
	}

	body := InvalidNode
	if r.atPunct("{") {
		body, err = r.parseBlock()
		if err != nil {
			return InvalidNode, err
		}
	} else if r.atPunct(";") {
		r.advance()
	}

	fn := r.ar.Add(Node{Kind: KindFunctionDeclaration, Pos: start, End: r.cur.pos, Parent: InvalidNode,
		Payload: FunctionLikeData{Name: nameNode, TypeParams: typeParams, Params: params, ReturnType: returnType, Body: body}})
	if nameNode != InvalidNode {
		r.ar.SetParent(nameNode, fn)
	}
	for _, tp := range typeParams {
		r.ar.SetParent(tp, fn)
	}
	for _, p := range params {
		r.ar.SetParent(p, fn)
	}
	if returnType != InvalidNode {
		r.ar.SetParent(returnType, fn)
	}
	if body != InvalidNode {
		r.ar.SetParent(body, fn)
	}
	return fn, nil
}

func (r *reader) parseParameterList() ([]NodeIndex, error) {
	if err := r.expectPunct("("); err != nil {
		return nil, err
	}
	var params []NodeIndex
	for !r.atPunct(")") {
		p, err := r.parseParameter()
		if err != nil {
			return nil, err
		}
		params = append(params, p)
		if r.atPunct(",") {
			r.advance()
			continue
		}
		break
	}
	if err := r.expectPunct(")"); err != nil {
		return nil, err
	}
	return params, nil
}

func (r *reader) parseParameter() (NodeIndex, error) {
	start := r.cur.pos
	isRest := false
	if r.atPunct("...") {
		isRest = true
		r.advance()
	}
	for r.atKeyword("public") || r.atKeyword("private") || r.atKeyword("protected") || r.atKeyword("readonly") {
		r.advance()
	}
	text, pos, end, err := r.expectIdentText()
	if err != nil {
		return InvalidNode, err
	}
	nameNode := r.addIdentifier(text, pos, end)

	optional := false
	if r.atPunct("?") {
		optional = true
		r.advance()
	}

	typeNode := InvalidNode
	if r.atPunct(":") {
		r.advance()
		typeNode, err = r.parseType()
		if err != nil {
			return InvalidNode, err
		}
	}

	initNode := InvalidNode
	if r.atPunct("=") {
		r.advance()
		initNode, err = r.parseAssignExpression()
		if err != nil {
			return InvalidNode, err
		}
	}

	p := r.ar.Add(Node{Kind: KindParameter, Pos: start, End: r.cur.pos, Parent: InvalidNode,
		Payload: ParameterData{Name: nameNode, Type: typeNode, Optional: optional, IsRest: isRest, Initializer: initNode}})
	r.ar.SetParent(nameNode, p)
	if typeNode != InvalidNode {
		r.ar.SetParent(typeNode, p)
	}
	if initNode != InvalidNode {
		r.ar.SetParent(initNode, p)
	}
	return p, nil
}

func (r *reader) parseOptionalTypeParameterList() ([]NodeIndex, error) {
	if !r.atPunct("<") {
		return nil, nil
	}
	r.advance()
	var params []NodeIndex
	for !r.atPunct(">") {
		start := r.cur.pos
		text, pos, end, err := r.expectIdentText()
		if err != nil {
			return nil, err
		}
		nameNode := r.addIdentifier(text, pos, end)

		constraint := InvalidNode
		if r.atKeyword("extends") {
			r.advance()
			constraint, err = r.parseType()
			if err != nil {
				return nil, err
			}
		}
		def := InvalidNode
		if r.atPunct("=") {
			r.advance()
			def, err = r.parseType()
			if err != nil {
				return nil, err
			}
		}
		tp := r.ar.Add(Node{Kind: KindTypeParameter, Pos: start, End: r.cur.pos, Parent: InvalidNode,
			Payload: TypeParameterData{Name: nameNode, Constraint: constraint, Default: def}})
		r.ar.SetParent(nameNode, tp)
		if constraint != InvalidNode {
			r.ar.SetParent(constraint, tp)
		}
		if def != InvalidNode {
			r.ar.SetParent(def, tp)
		}
		params = append(params, tp)
		if r.atPunct(",") {
			r.advance()
			continue
		}
		break
	}
	if err := r.expectPunct(">"); err != nil {
		return nil, err
	}
	return params, nil
}

func (r *reader) parseInterfaceDeclaration() (NodeIndex, error) {
	start := r.cur.pos
	r.advance() // "interface"
	text, pos, end, err := r.expectIdentText()
	if err != nil {
		return InvalidNode, err
	}
	nameNode := r.addIdentifier(text, pos, end)

	typeParams, err := r.parseOptionalTypeParameterList()
	if err != nil {
		return InvalidNode, err
	}

	var heritage []NodeIndex
	if r.atKeyword("extends") {
		r.advance()
		for {
			t, err := r.parseType()
			if err != nil {
				return InvalidNode, err
			}
			heritage = append(heritage, t)
			if r.atPunct(",") {
				r.advance()
				continue
			}
			break
		}
	}

	members, err := r.parseMemberList()
	if err != nil {
		return InvalidNode, err
	}

	iface := r.ar.Add(Node{Kind: KindInterfaceDeclaration, Pos: start, End: r.cur.pos, Parent: InvalidNode,
		Payload: InterfaceDeclarationData{Name: nameNode, TypeParams: typeParams, Heritage: heritage, Members: members}})
	r.ar.SetParent(nameNode, iface)
	for _, tp := range typeParams {
		r.ar.SetParent(tp, iface)
	}
	for _, h := range heritage {
		r.ar.SetParent(h, iface)
	}
	for _, m := range members {
		r.ar.SetParent(m, iface)
	}
	return iface, nil
}

func (r *reader) parseMemberList() ([]NodeIndex, error) {
	if err := r.expectPunct("{"); err != nil {
		return nil, err
	}
	var members []NodeIndex
	for !r.atPunct("}") && !r.atEOF() {
		m, err := r.parseMember()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
		if r.atPunct(",") || r.atPunct(";") {
			r.advance()
		}
	}
	if err := r.expectPunct("}"); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *reader) parseMember() (NodeIndex, error) {
	start := r.cur.pos

	readonly := false
	if r.atKeyword("readonly") {
		readonly = true
		r.advance()
	}

	if r.atPunct("[") {
		save := r.save()
		r.advance()
		_, _, _, err := r.expectIdentText()
		if err == nil && r.atPunct(":") {
			r.advance()
			keyType, err := r.parseType()
			if err == nil {
				if err := r.expectPunct("]"); err == nil {
					if err := r.expectPunct(":"); err == nil {
						valType, err := r.parseType()
						if err == nil {
							node := r.ar.Add(Node{Kind: KindIndexSignature, Pos: start, End: r.cur.pos, Parent: InvalidNode,
								Payload: IndexSignatureData{KeyType: keyType, ValueType: valType, Readonly: readonly}})
							r.ar.SetParent(keyType, node)
							r.ar.SetParent(valType, node)
							return node, nil
						}
					}
				}
			}
		}
		r.restore(save)
	}

	name, _, _, err := r.expectIdentText()
	if err != nil {
		return InvalidNode, err
	}

	if r.atPunct("(") || r.atPunct("<") {
		typeParams, err := r.parseOptionalTypeParameterList()
		if err != nil {
			return InvalidNode, err
		}
		params, err := r.parseParameterList()
		if err != nil {
			return InvalidNode, err
		}
		optional := false
		returnType := InvalidNode
		if r.atPunct(":") {
			r.advance()
			returnType, err = r.parseType()
			if err != nil {
				return InvalidNode, err
			}
		}
		node := r.ar.Add(Node{Kind: KindMethodSignature, Pos: start, End: r.cur.pos, Parent: InvalidNode,
			Payload: MethodSignatureData{Name: name, TypeParams: typeParams, Params: params, ReturnType: returnType, Optional: optional}})
		for _, tp := range typeParams {
			r.ar.SetParent(tp, node)
		}
		for _, p := range params {
			r.ar.SetParent(p, node)
		}
		if returnType != InvalidNode {
			r.ar.SetParent(returnType, node)
		}
		return node, nil
	}

	optional := false
	if r.atPunct("?") {
		optional = true
		r.advance()
	}

	typeNode := InvalidNode
	if r.atPunct(":") {
		r.advance()
		typeNode, err = r.parseType()
		if err != nil {
			return InvalidNode, err
		}
	}

	node := r.ar.Add(Node{Kind: KindPropertySignature, Pos: start, End: r.cur.pos, Parent: InvalidNode,
		Payload: PropertySignatureData{Name: name, Type: typeNode, Optional: optional, Readonly: readonly}})
	if typeNode != InvalidNode {
		r.ar.SetParent(typeNode, node)
	}
	return node, nil
}

func (r *reader) parseTypeAliasDeclaration() (NodeIndex, error) {
	start := r.cur.pos
	r.advance() // "type"
	text, pos, end, err := r.expectIdentText()
	if err != nil {
		return InvalidNode, err
	}
	nameNode := r.addIdentifier(text, pos, end)

	typeParams := InvalidNode
	if r.atPunct("<") {
		list, err := r.parseOptionalTypeParameterList()
		if err != nil {
			return InvalidNode, err
		}
		if len(list) > 0 {
			typeParams = list[0] // only the first type parameter is kept; the rest are parsed and dropped
		}
	}

	if err := r.expectPunct("="); err != nil {
		return InvalidNode, err
	}
	typeNode, err := r.parseType()
	if err != nil {
		return InvalidNode, err
	}
	end2 := r.cur.pos
	if r.atPunct(";") {
		end2 = r.cur.end
		r.advance()
	}

	alias := r.ar.Add(Node{Kind: KindTypeAliasDeclaration, Pos: start, End: end2, Parent: InvalidNode,
		Payload: TypeAliasDeclarationData{Name: nameNode, TypeParams: typeParams, Type: typeNode}})
	r.ar.SetParent(nameNode, alias)
	r.ar.SetParent(typeNode, alias)
	return alias, nil
}

func (r *reader) parseEnumDeclaration() (NodeIndex, error) {
	start := r.cur.pos
	isConst := false
	if r.atKeyword("const") {
		isConst = true
		r.advance()
	}
	r.advance() // "enum"
	text, pos, end, err := r.expectIdentText()
	if err != nil {
		return InvalidNode, err
	}
	nameNode := r.addIdentifier(text, pos, end)

	if err := r.expectPunct("{"); err != nil {
		return InvalidNode, err
	}
	var members []NodeIndex
	for !r.atPunct("}") && !r.atEOF() {
		mStart := r.cur.pos
		memberName, _, _, err := r.expectIdentText()
		if err != nil {
			return InvalidNode, err
		}
		init := InvalidNode
		if r.atPunct("=") {
			r.advance()
			init, err = r.parseAssignExpression()
			if err != nil {
				return InvalidNode, err
			}
		}
		m := r.ar.Add(Node{Kind: KindEnumMember, Pos: mStart, End: r.cur.pos, Parent: InvalidNode,
			Payload: EnumMemberData{Name: memberName, Initializer: init}})
		if init != InvalidNode {
			r.ar.SetParent(init, m)
		}
		members = append(members, m)
		if r.atPunct(",") {
			r.advance()
		}
	}
	if err := r.expectPunct("}"); err != nil {
		return InvalidNode, err
	}

	en := r.ar.Add(Node{Kind: KindEnumDeclaration, Pos: start, End: r.cur.pos, Parent: InvalidNode,
		Payload: EnumDeclarationData{Name: nameNode, Members: members, IsConst: isConst}})
	r.ar.SetParent(nameNode, en)
	for _, m := range members {
		r.ar.SetParent(m, en)
	}
	return en, nil
}

func (r *reader) parseExpressionStatement() (NodeIndex, error) {
	start := r.cur.pos
	expr, err := r.parseExpression()
	if err != nil {
		return InvalidNode, err
	}
	end := r.cur.pos
	if r.atPunct(";") {
		end = r.cur.end
		r.advance()
	}
	stmt := r.ar.Add(Node{Kind: KindExpressionStatement, Pos: start, End: end, Parent: InvalidNode})
	r.ar.SetParent(expr, stmt)
	return stmt, nil
}
