package types

// SymbolId identifies a symbol owned by the binder collaborator. The
// interner treats it as an opaque nominal tag; only object/callable/enum
// shapes carry one, and only for branding (private/protected nominal
// checks, enum identity).
type SymbolId int32

// NoSymbol marks a shape with no owning declaration.
const NoSymbol SymbolId = -1

// Kind tags a TypeData variant. The set is closed. The interner folds
// Kind into each structural key; the checker façade and subtype checker
// dispatch with type assertions on the TypeData value, not on Kind.
type Kind uint8

const (
	KindIntrinsic Kind = iota
	KindLiteral
	KindTypeParameter
	KindInfer
	KindUnion
	KindIntersection
	KindArray
	KindTuple
	KindObject
	KindObjectWithIndex
	KindFunction
	KindCallable
	KindConditional
	KindMapped
	KindIndexAccess
	KindKeyOf
	KindTemplateLiteral
	KindStringIntrinsic
	KindApplication
	KindThisType
	KindNoInfer
	KindReadonly
	KindEnum
	KindLazy
	KindRecursive
	KindBoundParameter
	KindTypeQuery
	KindUniqueSymbol
	KindModuleNamespace
	KindError
)

// TypeData is the closed, interned shape of a type. Every variant is a
// distinct Go type implementing this interface; Interner.shapes is a
// dense []TypeData addressed by TypeId, so hot lookups never touch a
// hash map.
type TypeData interface {
	Kind() Kind
}

// Intrinsic names one of the fixed primitive singletons. In practice the
// interner never allocates one of these past construction time — they
// live at TypeId 0..firstUserId-1 — but the variant exists so
// Interner.Lookup has something to hand back for those ids.
type Intrinsic struct{ Name string }

func (Intrinsic) Kind() Kind { return KindIntrinsic }

// LiteralValueKind distinguishes the Go representation backing a Literal.
type LiteralValueKind uint8

const (
	LiteralString LiteralValueKind = iota
	LiteralNumber
	LiteralBoolean
	LiteralBigInt
)

// Literal is a value-level singleton type, e.g. the type of the
// expression "foo" or 42.
type Literal struct {
	ValueKind LiteralValueKind
	String    string  // valid when ValueKind == LiteralString
	Number    float64 // valid when ValueKind == LiteralNumber
	Boolean   bool    // valid when ValueKind == LiteralBoolean
	BigInt    string  // decimal text, valid when ValueKind == LiteralBigInt
}

func (Literal) Kind() Kind { return KindLiteral }

// BaseIntrinsic returns the TypeId of the primitive a literal widens to.
func (l Literal) BaseIntrinsic() TypeId {
	switch l.ValueKind {
	case LiteralString:
		return String
	case LiteralNumber:
		return Number
	case LiteralBoolean:
		if l.Boolean {
			return BooleanTrue
		}
		return BooleanFalse
	case LiteralBigInt:
		return BigInt
	default:
		return ErrorType
	}
}

// TypeParameter is a declared generic parameter, e.g. the T in
// interface Box<T extends string = "x"> { ... }.
type TypeParameter struct {
	Name       string
	Constraint TypeId // Invalid if absent
	Default    TypeId // Invalid if absent
	IsConst    bool
}

func (TypeParameter) Kind() Kind { return KindTypeParameter }

// Infer is an `infer X` variable appearing inside a conditional's
// extends-clause.
type Infer struct {
	Name       string
	Constraint TypeId // Invalid if absent (no `infer X extends ...`)
	Default    TypeId // Invalid if absent
}

func (Infer) Kind() Kind { return KindInfer }

// Union is a sorted, deduplicated list of member ids. Never has fewer
// than two members — Interner.Union unwraps singleton unions and reduces
// empty unions to Never before a Union ever reaches the table.
type Union struct{ Members []TypeId }

func (Union) Kind() Kind { return KindUnion }

// Intersection is a sorted, deduplicated list of conjunct ids. Never has
// fewer than two members for the same reason as Union.
type Intersection struct{ Members []TypeId }

func (Intersection) Kind() Kind { return KindIntersection }

// Array is a homogeneous array type, T[].
type Array struct{ Element TypeId }

func (Array) Kind() Kind { return KindArray }

// TupleElement is one slot of a Tuple.
type TupleElement struct {
	Type     TypeId
	Name     string // optional label, e.g. [first: string]
	Optional bool
	Rest     bool
}

// Tuple is a fixed-or-variable-arity positional type.
type Tuple struct{ Elements []TupleElement }

func (Tuple) Kind() Kind { return KindTuple }

// Visibility is the declared accessibility of a class member.
type Visibility uint8

const (
	Public Visibility = iota
	Protected
	Private
)

// PropertyInfo is one member of an ObjectShape. Read and write types are
// tracked separately so that split accessors (Design Note Rule 26) are
// representable: a getter contributes ReadType, a setter WriteType, and
// a plain data property sets both to the same id.
type PropertyInfo struct {
	Name       string
	ReadType   TypeId
	WriteType  TypeId
	Optional   bool
	Readonly   bool
	IsMethod   bool
	Visibility Visibility
	ParentId   SymbolId // owning nominal declaration, for private/protected branding
}

// IndexSignature is an index signature on an ObjectWithIndex or
// Callable shape.
type IndexSignature struct {
	KeyType TypeId // String, Number, or a template literal/symbol key type
	Value   TypeId
	Readonly bool
}

// ObjectShape is the sorted-by-name property list shared by Object,
// ObjectWithIndex, and Callable. Properties are kept sorted by Name so
// that structural matching is a two-pointer O(n+m) scan (spec §3.3).
type ObjectShape struct {
	Properties []PropertyInfo
	// Fresh marks an object literal whose excess-property check has not
	// yet been consumed (Design Note Rule 4). The checker façade's widen
	// clears it when the literal initializes an unannotated let/var
	// binding or is an element of an array literal; a subtype check does
	// not clear it, and instantiation copies it unchanged.
	Fresh bool
	// SymbolId brands shapes that carry a private/protected member for
	// nominal comparison (spec §4.4 rule 9, "Nominal check").
	SymbolId SymbolId
}

// Object is a plain structural object type with no index signature.
type Object struct{ Shape ObjectShape }

func (Object) Kind() Kind { return KindObject }

// ObjectWithIndex is an Object plus optional string/number index
// signatures.
type ObjectWithIndex struct {
	Shape        ObjectShape
	StringIndex  TypeId // Invalid if absent
	NumberIndex  TypeId // Invalid if absent
}

func (ObjectWithIndex) Kind() Kind { return KindObjectWithIndex }

// ParamInfo is one formal parameter of a CallSignature.
type ParamInfo struct {
	Name     string
	Type     TypeId
	Optional bool
	Rest     bool
}

// TypePredicate is the return-type annotation of a user-defined type
// guard (`param is T`) or assertion function (`asserts param is T`).
type TypePredicate struct {
	Asserts        bool
	Target         string // parameter name, or "this"
	Type           TypeId // Invalid for a bare `asserts param` with no narrowed type
	ParameterIndex int
}

// CallSignature is a single call or construct signature.
type CallSignature struct {
	TypeParams    []TypeId // TypeParameter ids, in declaration order
	Params        []ParamInfo
	ThisType      TypeId // Invalid if untyped
	Return        TypeId
	Predicate     *TypePredicate // nil if this signature has no predicate
	IsConstructor bool
	IsMethod      bool // governs bivariant parameter checking, spec Rule 2
}

// Function is a type with exactly one call or construct signature, e.g.
// (x: number) => string.
type Function struct{ Signature CallSignature }

func (Function) Kind() Kind { return KindFunction }

// Callable is a type with multiple call and/or construct overloads plus
// its own properties and index signatures, e.g.
// { (): T; (x: U): V; name: string }.
type Callable struct {
	CallSignatures      []CallSignature
	ConstructSignatures []CallSignature
	Shape               ObjectShape
	StringIndex         TypeId
	NumberIndex         TypeId
}

func (Callable) Kind() Kind { return KindCallable }

// Conditional is `check extends extends_ ? trueBranch : falseBranch`.
type Conditional struct {
	Check         TypeId
	Extends       TypeId
	TrueBranch    TypeId
	FalseBranch   TypeId
	IsDistributive bool
}

func (Conditional) Kind() Kind { return KindConditional }

// ModifierOp describes a +/-/none delta applied by a mapped type to the
// readonly or optional modifier of its source properties.
type ModifierOp uint8

const (
	ModifierPreserve ModifierOp = iota
	ModifierAdd
	ModifierRemove
)

// Mapped is `{ [P in K]: V }`, optionally remapped via `as NameType`.
type Mapped struct {
	Param             string // the P in [P in K]
	Constraint        TypeId // the K
	NameType          TypeId // Invalid if no `as` clause
	Template          TypeId // the V, referencing Param
	ReadonlyModifier  ModifierOp
	OptionalModifier  ModifierOp
}

func (Mapped) Kind() Kind { return KindMapped }

// IndexAccess is `T[K]`.
type IndexAccess struct {
	Object TypeId
	Index  TypeId
}

func (IndexAccess) Kind() Kind { return KindIndexAccess }

// KeyOf is `keyof T`.
type KeyOf struct{ Operand TypeId }

func (KeyOf) Kind() Kind { return KindKeyOf }

// TemplateSpan is one piece of a TemplateLiteral: either literal text or
// an interpolated type. HasType discriminates the two instead of a
// sentinel TypeId value, since TypeId's zero value (Any) is itself a
// legal interpolated type (`${any}` is valid TypeScript).
type TemplateSpan struct {
	Text    string // valid when !HasType
	Type    TypeId // valid when HasType
	HasType bool
}

// TemplateLiteral is a template literal type, e.g. `get${Capitalize<K>}`.
type TemplateLiteral struct{ Spans []TemplateSpan }

func (TemplateLiteral) Kind() Kind { return KindTemplateLiteral }

// StringIntrinsicKind selects one of the four built-in case transforms.
type StringIntrinsicKind uint8

const (
	Uppercase StringIntrinsicKind = iota
	Lowercase
	Capitalize
	Uncapitalize
)

// StringIntrinsic is `Uppercase<T>` and friends.
type StringIntrinsic struct {
	IntrinsicKind StringIntrinsicKind
	Arg           TypeId
}

func (StringIntrinsic) Kind() Kind { return KindStringIntrinsic }

// Application is a deferred generic application `base<args>` that has
// not yet been reduced by the instantiator.
type Application struct {
	Base TypeId
	Args []TypeId
}

func (Application) Kind() Kind { return KindApplication }

// ThisType is the polymorphic `this` type of a class.
type ThisType struct{}

func (ThisType) Kind() Kind { return KindThisType }

// NoInfer blocks inference variables inside Inner from being captured by
// a surrounding conditional's `infer` collection.
type NoInfer struct{ Inner TypeId }

func (NoInfer) Kind() Kind { return KindNoInfer }

// ReadonlyType is a marker wrapper, e.g. `readonly string[]`'s element
// wrapper form used outside array/tuple sugar.
type ReadonlyType struct{ Inner TypeId }

func (ReadonlyType) Kind() Kind { return KindReadonly }

// Enum pairs a nominal declaration identity with its structural member
// type (Design Note Rules 7, 34).
type Enum struct {
	DefId      SymbolId
	MemberType TypeId
	IsString   bool // string enums are strictly nominal; numeric enums interop with number
}

func (Enum) Kind() Kind { return KindEnum }

// Lazy, Recursive, BoundParameter, TypeQuery, UniqueSymbol, and
// ModuleNamespace are identity-carrying placeholders: each wraps a
// single id and exists purely so the kind tag disambiguates "this id
// names a not-yet-forced thing" from "this id names the thing itself".

type Lazy struct{ Target TypeId }

func (Lazy) Kind() Kind { return KindLazy }

type Recursive struct{ Target TypeId }

func (Recursive) Kind() Kind { return KindRecursive }

type BoundParameter struct{ Target TypeId }

func (BoundParameter) Kind() Kind { return KindBoundParameter }

type TypeQuery struct{ Target TypeId }

func (TypeQuery) Kind() Kind { return KindTypeQuery }

type UniqueSymbol struct{ Symbol SymbolId }

func (UniqueSymbol) Kind() Kind { return KindUniqueSymbol }

type ModuleNamespace struct{ Module SymbolId }

func (ModuleNamespace) Kind() Kind { return KindModuleNamespace }

// Error propagates assignability liberally in both directions to
// prevent cascading diagnostics (spec §7).
type Error struct{}

func (Error) Kind() Kind { return KindError }
