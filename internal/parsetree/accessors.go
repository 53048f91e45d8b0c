package parsetree

// Per-kind accessors (spec §6: `get_function`, `get_class`, ...).
// Each returns the variant payload, and false if idx's payload is not of
// that type, rather than panicking — callers are walking a tree of mixed
// node kinds and "wrong kind" is routine, not exceptional. The check is
// on the payload type, not the Kind: kinds that share a payload pass
// each other's accessor (GetFunction accepts an arrow function,
// GetBinaryExpression an assignment).

func (a *Arena) GetIdentifier(idx NodeIndex) (IdentifierData, bool) {
	d, ok := a.Nodes[idx].Payload.(IdentifierData)
	return d, ok
}

func (a *Arena) GetVariableDeclaration(idx NodeIndex) (VariableDeclarationData, bool) {
	d, ok := a.Nodes[idx].Payload.(VariableDeclarationData)
	return d, ok
}

func (a *Arena) GetVariableStatement(idx NodeIndex) (VariableStatementData, bool) {
	d, ok := a.Nodes[idx].Payload.(VariableStatementData)
	return d, ok
}

func (a *Arena) GetFunction(idx NodeIndex) (FunctionLikeData, bool) {
	d, ok := a.Nodes[idx].Payload.(FunctionLikeData)
	return d, ok
}

func (a *Arena) GetParameter(idx NodeIndex) (ParameterData, bool) {
	d, ok := a.Nodes[idx].Payload.(ParameterData)
	return d, ok
}

func (a *Arena) GetInterface(idx NodeIndex) (InterfaceDeclarationData, bool) {
	d, ok := a.Nodes[idx].Payload.(InterfaceDeclarationData)
	return d, ok
}

func (a *Arena) GetPropertySignature(idx NodeIndex) (PropertySignatureData, bool) {
	d, ok := a.Nodes[idx].Payload.(PropertySignatureData)
	return d, ok
}

func (a *Arena) GetMethodSignature(idx NodeIndex) (MethodSignatureData, bool) {
	d, ok := a.Nodes[idx].Payload.(MethodSignatureData)
	return d, ok
}

func (a *Arena) GetIndexSignature(idx NodeIndex) (IndexSignatureData, bool) {
	d, ok := a.Nodes[idx].Payload.(IndexSignatureData)
	return d, ok
}

func (a *Arena) GetTypeAlias(idx NodeIndex) (TypeAliasDeclarationData, bool) {
	d, ok := a.Nodes[idx].Payload.(TypeAliasDeclarationData)
	return d, ok
}

func (a *Arena) GetTypeParameter(idx NodeIndex) (TypeParameterData, bool) {
	d, ok := a.Nodes[idx].Payload.(TypeParameterData)
	return d, ok
}

func (a *Arena) GetEnum(idx NodeIndex) (EnumDeclarationData, bool) {
	d, ok := a.Nodes[idx].Payload.(EnumDeclarationData)
	return d, ok
}

func (a *Arena) GetEnumMember(idx NodeIndex) (EnumMemberData, bool) {
	d, ok := a.Nodes[idx].Payload.(EnumMemberData)
	return d, ok
}

func (a *Arena) GetHeritageClause(idx NodeIndex) (HeritageClauseData, bool) {
	d, ok := a.Nodes[idx].Payload.(HeritageClauseData)
	return d, ok
}

func (a *Arena) GetTypeReference(idx NodeIndex) (TypeReferenceData, bool) {
	d, ok := a.Nodes[idx].Payload.(TypeReferenceData)
	return d, ok
}

func (a *Arena) GetUnionType(idx NodeIndex) (UnionTypeData, bool) {
	d, ok := a.Nodes[idx].Payload.(UnionTypeData)
	return d, ok
}

func (a *Arena) GetIntersectionType(idx NodeIndex) (IntersectionTypeData, bool) {
	d, ok := a.Nodes[idx].Payload.(IntersectionTypeData)
	return d, ok
}

func (a *Arena) GetArrayType(idx NodeIndex) (ArrayTypeData, bool) {
	d, ok := a.Nodes[idx].Payload.(ArrayTypeData)
	return d, ok
}

func (a *Arena) GetTupleType(idx NodeIndex) (TupleTypeData, bool) {
	d, ok := a.Nodes[idx].Payload.(TupleTypeData)
	return d, ok
}

func (a *Arena) GetFunctionType(idx NodeIndex) (FunctionTypeData, bool) {
	d, ok := a.Nodes[idx].Payload.(FunctionTypeData)
	return d, ok
}

func (a *Arena) GetTypeLiteral(idx NodeIndex) (TypeLiteralData, bool) {
	d, ok := a.Nodes[idx].Payload.(TypeLiteralData)
	return d, ok
}

func (a *Arena) GetConditionalType(idx NodeIndex) (ConditionalTypeData, bool) {
	d, ok := a.Nodes[idx].Payload.(ConditionalTypeData)
	return d, ok
}

func (a *Arena) GetMappedType(idx NodeIndex) (MappedTypeData, bool) {
	d, ok := a.Nodes[idx].Payload.(MappedTypeData)
	return d, ok
}

func (a *Arena) GetIndexedAccessType(idx NodeIndex) (IndexedAccessTypeData, bool) {
	d, ok := a.Nodes[idx].Payload.(IndexedAccessTypeData)
	return d, ok
}

func (a *Arena) GetTypeOperator(idx NodeIndex) (TypeOperatorData, bool) {
	d, ok := a.Nodes[idx].Payload.(TypeOperatorData)
	return d, ok
}

func (a *Arena) GetTypeQuery(idx NodeIndex) (TypeQueryData, bool) {
	d, ok := a.Nodes[idx].Payload.(TypeQueryData)
	return d, ok
}

func (a *Arena) GetTemplateLiteralType(idx NodeIndex) (TemplateLiteralTypeData, bool) {
	d, ok := a.Nodes[idx].Payload.(TemplateLiteralTypeData)
	return d, ok
}

func (a *Arena) GetLiteralType(idx NodeIndex) (LiteralTypeData, bool) {
	d, ok := a.Nodes[idx].Payload.(LiteralTypeData)
	return d, ok
}

func (a *Arena) GetInferType(idx NodeIndex) (InferTypeData, bool) {
	d, ok := a.Nodes[idx].Payload.(InferTypeData)
	return d, ok
}

func (a *Arena) GetCallExpression(idx NodeIndex) (CallExpressionData, bool) {
	d, ok := a.Nodes[idx].Payload.(CallExpressionData)
	return d, ok
}

func (a *Arena) GetPropertyAccess(idx NodeIndex) (PropertyAccessExpressionData, bool) {
	d, ok := a.Nodes[idx].Payload.(PropertyAccessExpressionData)
	return d, ok
}

func (a *Arena) GetBinaryExpression(idx NodeIndex) (BinaryExpressionData, bool) {
	d, ok := a.Nodes[idx].Payload.(BinaryExpressionData)
	return d, ok
}

func (a *Arena) GetConditionalExpression(idx NodeIndex) (ConditionalExpressionData, bool) {
	d, ok := a.Nodes[idx].Payload.(ConditionalExpressionData)
	return d, ok
}

func (a *Arena) GetObjectLiteral(idx NodeIndex) (ObjectLiteralExpressionData, bool) {
	d, ok := a.Nodes[idx].Payload.(ObjectLiteralExpressionData)
	return d, ok
}

func (a *Arena) GetPropertyAssignment(idx NodeIndex) (PropertyAssignmentData, bool) {
	d, ok := a.Nodes[idx].Payload.(PropertyAssignmentData)
	return d, ok
}

func (a *Arena) GetArrayLiteral(idx NodeIndex) (ArrayLiteralExpressionData, bool) {
	d, ok := a.Nodes[idx].Payload.(ArrayLiteralExpressionData)
	return d, ok
}

func (a *Arena) GetAsExpression(idx NodeIndex) (AsExpressionData, bool) {
	d, ok := a.Nodes[idx].Payload.(AsExpressionData)
	return d, ok
}

func (a *Arena) GetStringLiteral(idx NodeIndex) (StringLiteralData, bool) {
	d, ok := a.Nodes[idx].Payload.(StringLiteralData)
	return d, ok
}

func (a *Arena) GetNumericLiteral(idx NodeIndex) (NumericLiteralData, bool) {
	d, ok := a.Nodes[idx].Payload.(NumericLiteralData)
	return d, ok
}
