package parsetree

// NodeIndex addresses a node in an Arena. The zero value is a real node
// (the first one added); InvalidNode is the explicit "no node" sentinel
// used in payload fields like an absent type annotation or initializer.
type NodeIndex int32

const InvalidNode NodeIndex = -1

// Node is one arena entry: common span/kind/navigation fields plus a
// per-kind Payload, mirroring internal/types' interned tagged union but
// over syntax nodes instead of types.
type Node struct {
	Kind     SyntaxKind
	Pos, End int
	Parent   NodeIndex
	Children []NodeIndex
	Payload  any
}

// Per-kind payloads. Only fields the checker façade and its tests
// actually need are modeled; this is a reference arena, not a
// byte-for-byte AST of the canonical compiler.
type (
	IdentifierData struct{ Text string }
	StringLiteralData struct{ Value string }
	NumericLiteralData struct {
		Value float64
		Text  string
	}

	VariableDeclarationData struct {
		Name        NodeIndex
		Type        NodeIndex // InvalidNode if no annotation
		Initializer NodeIndex
		IsConst     bool
	}
	VariableStatementData struct{ Declarations []NodeIndex }

	ParameterData struct {
		Name        NodeIndex
		Type        NodeIndex
		Optional    bool
		IsRest      bool
		Initializer NodeIndex
	}
	FunctionLikeData struct {
		Name       NodeIndex // InvalidNode for anonymous/arrow
		TypeParams []NodeIndex
		Params     []NodeIndex
		ReturnType NodeIndex
		Body       NodeIndex
	}

	InterfaceDeclarationData struct {
		Name       NodeIndex
		TypeParams []NodeIndex
		Heritage   []NodeIndex
		Members    []NodeIndex
	}
	PropertySignatureData struct {
		Name     string
		Type     NodeIndex
		Optional bool
		Readonly bool
	}
	MethodSignatureData struct {
		Name       string
		TypeParams []NodeIndex
		Params     []NodeIndex
		ReturnType NodeIndex
		Optional   bool
	}
	IndexSignatureData struct {
		KeyType   NodeIndex
		ValueType NodeIndex
		Readonly  bool
	}

	TypeAliasDeclarationData struct {
		Name       NodeIndex
		TypeParams NodeIndex
		Type       NodeIndex
	}
	TypeParameterData struct {
		Name       NodeIndex
		Constraint NodeIndex
		Default    NodeIndex
	}

	EnumDeclarationData struct {
		Name    NodeIndex
		Members []NodeIndex
		IsConst bool
	}
	EnumMemberData struct {
		Name        string
		Initializer NodeIndex
	}

	HeritageClauseData struct {
		IsExtends bool
		Types     []NodeIndex
	}

	TypeReferenceData struct {
		Name     string
		TypeArgs []NodeIndex
	}
	UnionTypeData struct{ Types []NodeIndex }
	IntersectionTypeData struct{ Types []NodeIndex }
	ArrayTypeData struct{ Element NodeIndex }
	TupleTypeData struct {
		Elements []NodeIndex
		Optional []bool
		Rest     []bool
	}
	FunctionTypeData struct {
		Params     []NodeIndex
		ReturnType NodeIndex
	}
	TypeLiteralData struct{ Members []NodeIndex }
	ConditionalTypeData struct {
		Check   NodeIndex
		Extends NodeIndex
		True    NodeIndex
		False   NodeIndex
	}
	MappedTypeData struct {
		TypeParam  NodeIndex
		Constraint NodeIndex
		NameType   NodeIndex
		Type       NodeIndex
		Optional   string // "", "+", "-"
		Readonly   string
	}
	IndexedAccessTypeData struct {
		Object NodeIndex
		Index  NodeIndex
	}
	TypeOperatorData struct {
		Operator string // "keyof" | "readonly" | "unique"
		Type     NodeIndex
	}
	TypeQueryData struct{ ExprName string }
	TemplateLiteralTypeData struct {
		Texts []string
		Types []NodeIndex
	}
	LiteralTypeData struct {
		Kind SyntaxKind
		Text string
	}
	InferTypeData struct{ TypeParam NodeIndex }

	CallExpressionData struct {
		Callee    NodeIndex
		TypeArgs  []NodeIndex
		Arguments []NodeIndex
	}
	NewExpressionData struct {
		Callee    NodeIndex
		Arguments []NodeIndex
	}
	PropertyAccessExpressionData struct {
		Expression NodeIndex
		Name       string
	}
	ElementAccessExpressionData struct {
		Expression NodeIndex
		Index      NodeIndex
	}
	BinaryExpressionData struct {
		Left, Right NodeIndex
		Operator    string
	}
	ConditionalExpressionData struct {
		Condition, WhenTrue, WhenFalse NodeIndex
	}
	ObjectLiteralExpressionData struct{ Properties []NodeIndex }
	PropertyAssignmentData struct {
		Name  string
		Value NodeIndex
	}
	ArrayLiteralExpressionData struct{ Elements []NodeIndex }
	AsExpressionData struct {
		Expression NodeIndex
		Type       NodeIndex
	}
)

// Arena owns the dense node slice. No index is reserved (InvalidNode
// is -1); ParseSourceFile adds the SourceFile node first, so it is
// node 0.
type Arena struct {
	Nodes []Node
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Add appends a node and returns its index.
func (a *Arena) Add(n Node) NodeIndex {
	idx := NodeIndex(len(a.Nodes))
	a.Nodes = append(a.Nodes, n)
	return idx
}

// Get returns the node at idx. Panics on an out-of-range index, matching
// the canonical compiler's arena which never hands out indices it
// didn't itself allocate.
func (a *Arena) Get(idx NodeIndex) Node {
	return a.Nodes[idx]
}

// Kind is a convenience accessor for Get(idx).Kind.
func (a *Arena) Kind(idx NodeIndex) SyntaxKind {
	return a.Nodes[idx].Kind
}

// Pos returns idx's start offset.
func (a *Arena) Pos(idx NodeIndex) int { return a.Nodes[idx].Pos }

// End returns idx's end offset.
func (a *Arena) End(idx NodeIndex) int { return a.Nodes[idx].End }

// Parent returns idx's parent, or InvalidNode at the root.
func (a *Arena) Parent(idx NodeIndex) NodeIndex { return a.Nodes[idx].Parent }

// Children returns idx's direct children in source order.
func (a *Arena) Children(idx NodeIndex) []NodeIndex { return a.Nodes[idx].Children }

// SetParent links child under parent and appends child to parent's
// child list. Call sites build children bottom-up then link top-down.
func (a *Arena) SetParent(child, parent NodeIndex) {
	a.Nodes[child].Parent = parent
	a.Nodes[parent].Children = append(a.Nodes[parent].Children, child)
}

// Text returns the identifier text at idx, or "" if idx is not an
// identifier.
func (a *Arena) Text(idx NodeIndex) string {
	if idx == InvalidNode {
		return ""
	}
	if id, ok := a.Nodes[idx].Payload.(IdentifierData); ok {
		return id.Text
	}
	return ""
}
