// Package parsetree is the parser collaborator's data contract (spec
// §6): an arena of nodes addressable by NodeIndex, per-kind accessors,
// parent/child navigation, and source-position spans. It also carries a
// small reference arena and recursive-descent reader for the subset of
// TypeScript syntax needed to drive real fixtures through the checker
// in tests and the CLI — not a general parser (spec §1 Non-goals).
package parsetree

// SyntaxKind is a closed enumeration of node kinds, partitioned the way
// spec §6 describes the canonical compiler's kind space (identifier,
// literal kinds, declarations, statements, expressions, types). This
// repo implements a small working subset; JSX kinds are out of scope.
type SyntaxKind int

const (
	KindUnknown SyntaxKind = iota

	// Tokens / leaves
	KindIdentifier
	KindStringLiteral
	KindNumericLiteral
	KindTrueKeyword
	KindFalseKeyword
	KindNullKeyword
	KindUndefinedKeyword

	// Statements
	KindSourceFile
	KindVariableStatement
	KindVariableDeclaration
	KindExpressionStatement
	KindReturnStatement
	KindBlock
	KindIfStatement

	// Declarations
	KindFunctionDeclaration
	KindParameter
	KindInterfaceDeclaration
	KindPropertySignature
	KindMethodSignature
	KindIndexSignature
	KindCallSignature
	KindTypeAliasDeclaration
	KindTypeParameter
	KindEnumDeclaration
	KindEnumMember
	KindClassDeclaration
	KindPropertyDeclaration
	KindMethodDeclaration
	KindConstructorDeclaration
	KindHeritageClause
	KindModuleDeclaration
	KindImportDeclaration
	KindExportDeclaration
	KindExportAssignment

	// Expressions
	KindCallExpression
	KindNewExpression
	KindPropertyAccessExpression
	KindElementAccessExpression
	KindBinaryExpression
	KindAssignmentExpression
	KindConditionalExpression
	KindArrowFunction
	KindFunctionExpression
	KindArrayLiteralExpression
	KindObjectLiteralExpression
	KindPropertyAssignment
	KindParenthesizedExpression
	KindAsExpression
	KindNonNullExpression
	KindTemplateExpression

	// Type nodes
	KindTypeReference
	KindUnionType
	KindIntersectionType
	KindArrayType
	KindTupleType
	KindFunctionType
	KindConstructorType
	KindTypeLiteral
	KindConditionalType
	KindMappedType
	KindIndexedAccessType
	KindTypeOperator // keyof / readonly / unique
	KindTypeQuery    // typeof
	KindTemplateLiteralType
	KindLiteralType
	KindParenthesizedType
	KindInferType
	KindThisType

	numSyntaxKinds
)

var kindNames = map[SyntaxKind]string{
	KindUnknown:                  "Unknown",
	KindIdentifier:               "Identifier",
	KindStringLiteral:            "StringLiteral",
	KindNumericLiteral:           "NumericLiteral",
	KindTrueKeyword:              "TrueKeyword",
	KindFalseKeyword:             "FalseKeyword",
	KindNullKeyword:              "NullKeyword",
	KindUndefinedKeyword:         "UndefinedKeyword",
	KindSourceFile:               "SourceFile",
	KindVariableStatement:        "VariableStatement",
	KindVariableDeclaration:      "VariableDeclaration",
	KindExpressionStatement:      "ExpressionStatement",
	KindReturnStatement:          "ReturnStatement",
	KindBlock:                    "Block",
	KindIfStatement:              "IfStatement",
	KindFunctionDeclaration:      "FunctionDeclaration",
	KindParameter:                "Parameter",
	KindInterfaceDeclaration:     "InterfaceDeclaration",
	KindPropertySignature:        "PropertySignature",
	KindMethodSignature:          "MethodSignature",
	KindIndexSignature:           "IndexSignature",
	KindCallSignature:            "CallSignature",
	KindTypeAliasDeclaration:     "TypeAliasDeclaration",
	KindTypeParameter:            "TypeParameter",
	KindEnumDeclaration:          "EnumDeclaration",
	KindEnumMember:               "EnumMember",
	KindClassDeclaration:         "ClassDeclaration",
	KindPropertyDeclaration:      "PropertyDeclaration",
	KindMethodDeclaration:        "MethodDeclaration",
	KindConstructorDeclaration:   "ConstructorDeclaration",
	KindHeritageClause:           "HeritageClause",
	KindModuleDeclaration:        "ModuleDeclaration",
	KindImportDeclaration:        "ImportDeclaration",
	KindExportDeclaration:        "ExportDeclaration",
	KindExportAssignment:         "ExportAssignment",
	KindCallExpression:           "CallExpression",
	KindNewExpression:            "NewExpression",
	KindPropertyAccessExpression: "PropertyAccessExpression",
	KindElementAccessExpression:  "ElementAccessExpression",
	KindBinaryExpression:         "BinaryExpression",
	KindAssignmentExpression:     "AssignmentExpression",
	KindConditionalExpression:    "ConditionalExpression",
	KindArrowFunction:            "ArrowFunction",
	KindFunctionExpression:       "FunctionExpression",
	KindArrayLiteralExpression:   "ArrayLiteralExpression",
	KindObjectLiteralExpression:  "ObjectLiteralExpression",
	KindPropertyAssignment:       "PropertyAssignment",
	KindParenthesizedExpression:  "ParenthesizedExpression",
	KindAsExpression:             "AsExpression",
	KindNonNullExpression:        "NonNullExpression",
	KindTemplateExpression:       "TemplateExpression",
	KindTypeReference:            "TypeReference",
	KindUnionType:                "UnionType",
	KindIntersectionType:         "IntersectionType",
	KindArrayType:                "ArrayType",
	KindTupleType:                "TupleType",
	KindFunctionType:             "FunctionType",
	KindConstructorType:          "ConstructorType",
	KindTypeLiteral:              "TypeLiteral",
	KindConditionalType:          "ConditionalType",
	KindMappedType:               "MappedType",
	KindIndexedAccessType:        "IndexedAccessType",
	KindTypeOperator:             "TypeOperator",
	KindTypeQuery:                "TypeQuery",
	KindTemplateLiteralType:      "TemplateLiteralType",
	KindLiteralType:              "LiteralType",
	KindParenthesizedType:        "ParenthesizedType",
	KindInferType:                "InferType",
	KindThisType:                 "ThisType",
}

func (k SyntaxKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Invalid"
}

// IsTypeNode reports whether k belongs to the type-syntax partition.
func (k SyntaxKind) IsTypeNode() bool {
	return k >= KindTypeReference && k < numSyntaxKinds
}

// IsDeclaration reports whether k introduces a named binding or type.
func (k SyntaxKind) IsDeclaration() bool {
	switch k {
	case KindVariableDeclaration, KindFunctionDeclaration, KindInterfaceDeclaration,
		KindTypeAliasDeclaration, KindEnumDeclaration, KindClassDeclaration,
		KindParameter, KindTypeParameter, KindEnumMember, KindPropertyDeclaration,
		KindMethodDeclaration, KindModuleDeclaration:
		return true
	default:
		return false
	}
}
