package types

import "fmt"

// Interner owns the one true mapping from TypeData to TypeId. It is the
// only mutable datum shared across the solver's components within a
// compilation unit (spec §5); mutation is serial, single-threaded.
type Interner struct {
	shapes []TypeData
	byKey  map[string]TypeId
}

// NewInterner returns an Interner pre-seeded with the sixteen intrinsic
// singletons at their reserved ids.
func NewInterner() *Interner {
	in := &Interner{
		shapes: make([]TypeData, firstUserId, 256),
		byKey:  make(map[string]TypeId, 256),
	}
	names := []string{
		"any", "unknown", "never", "void", "undefined", "null",
		"string", "number", "boolean", "bigint", "symbol", "object",
		"true", "false", "Function", "error",
	}
	for i, name := range names {
		in.shapes[i] = Intrinsic{Name: name}
	}
	return in
}

// Lookup returns the TypeData for id, or (nil, false) if id is out of
// range.
func (in *Interner) Lookup(id TypeId) (TypeData, bool) {
	if id < 0 || int(id) >= len(in.shapes) {
		return nil, false
	}
	return in.shapes[id], true
}

// MustLookup is Lookup without the ok form, for call sites that have
// already established id came from this Interner.
func (in *Interner) MustLookup(id TypeId) TypeData {
	d, ok := in.Lookup(id)
	if !ok {
		return Error{}
	}
	return d
}

// intern is the single allocation path: every composite constructor in
// this package funnels through it after normalizing its own shape.
// Structural dedup is keyed on a deterministic string signature — all
// composite TypeData fields are ids, strings, or bools, so Sprintf's
// %+v on the already-normalized (sorted, deduplicated) value is a safe,
// stable key.
func (in *Interner) intern(d TypeData) TypeId {
	key := signature(d)
	if id, ok := in.byKey[key]; ok {
		return id
	}
	id := TypeId(len(in.shapes))
	in.shapes = append(in.shapes, d)
	in.byKey[key] = id
	return id
}

func signature(d TypeData) string {
	return fmt.Sprintf("%d|%+v", d.Kind(), d)
}

// Array interns T[].
func (in *Interner) Array(element TypeId) TypeId {
	return in.intern(Array{Element: element})
}

// Tuple interns a fixed-or-variadic positional type.
func (in *Interner) Tuple(elements []TupleElement) TypeId {
	return in.intern(Tuple{Elements: elements})
}

// Object interns a plain structural object with no index signature.
func (in *Interner) Object(shape ObjectShape) TypeId {
	shape.Properties = sortedProperties(shape.Properties)
	return in.intern(Object{Shape: shape})
}

// ObjectWithIndex interns an object plus optional string/number index
// signatures.
func (in *Interner) ObjectWithIndex(shape ObjectShape, stringIndex, numberIndex TypeId) TypeId {
	shape.Properties = sortedProperties(shape.Properties)
	return in.intern(ObjectWithIndex{Shape: shape, StringIndex: stringIndex, NumberIndex: numberIndex})
}

// Function interns a single-signature function/constructor type.
func (in *Interner) Function(sig CallSignature) TypeId {
	return in.intern(Function{Signature: sig})
}

// Callable interns a multi-overload callable type.
func (in *Interner) Callable(call, construct []CallSignature, shape ObjectShape, stringIndex, numberIndex TypeId) TypeId {
	shape.Properties = sortedProperties(shape.Properties)
	return in.intern(Callable{
		CallSignatures:      call,
		ConstructSignatures: construct,
		Shape:               shape,
		StringIndex:         stringIndex,
		NumberIndex:         numberIndex,
	})
}

// Conditional interns `check extends ext ? t : f`.
func (in *Interner) Conditional(check, ext, t, f TypeId, distributive bool) TypeId {
	return in.intern(Conditional{Check: check, Extends: ext, TrueBranch: t, FalseBranch: f, IsDistributive: distributive})
}

// Mapped interns `{ [param in constraint]: template }`.
func (in *Interner) Mapped(param string, constraint, nameType, template TypeId, readonlyMod, optionalMod ModifierOp) TypeId {
	return in.intern(Mapped{
		Param:            param,
		Constraint:       constraint,
		NameType:         nameType,
		Template:         template,
		ReadonlyModifier: readonlyMod,
		OptionalModifier: optionalMod,
	})
}

// IndexAccess interns `object[index]`.
func (in *Interner) IndexAccess(object, index TypeId) TypeId {
	return in.intern(IndexAccess{Object: object, Index: index})
}

// KeyOf interns `keyof operand`.
func (in *Interner) KeyOf(operand TypeId) TypeId {
	return in.intern(KeyOf{Operand: operand})
}

// TemplateLiteral interns a template literal from its spans.
func (in *Interner) TemplateLiteral(spans []TemplateSpan) TypeId {
	return in.intern(TemplateLiteral{Spans: spans})
}

// StringIntrinsic interns `Uppercase<arg>` and friends.
func (in *Interner) StringIntrinsic(kind StringIntrinsicKind, arg TypeId) TypeId {
	return in.intern(StringIntrinsic{IntrinsicKind: kind, Arg: arg})
}

// Application interns a deferred generic application `base<args>`.
func (in *Interner) Application(base TypeId, args []TypeId) TypeId {
	return in.intern(Application{Base: base, Args: args})
}

// Literal interns a value-level singleton.
func (in *Interner) Literal(l Literal) TypeId {
	return in.intern(l)
}

// TypeParam interns a declared generic parameter.
func (in *Interner) TypeParam(p TypeParameter) TypeId {
	return in.intern(p)
}

// InferVar interns an `infer X` variable.
func (in *Interner) InferVar(v Infer) TypeId {
	return in.intern(v)
}

// Enum interns a nominal/structural enum pairing.
func (in *Interner) Enum(e Enum) TypeId {
	return in.intern(e)
}

// NoInfer interns a NoInfer(inner) wrapper.
func (in *Interner) NoInfer(inner TypeId) TypeId {
	return in.intern(NoInfer{Inner: inner})
}

// Readonly interns a ReadonlyType(inner) marker wrapper.
func (in *Interner) Readonly(inner TypeId) TypeId {
	return in.intern(ReadonlyType{Inner: inner})
}

// Recursive interns a placeholder standing in for target while target's
// own shape is still being computed, breaking a coinductive cycle.
func (in *Interner) Recursive(target TypeId) TypeId {
	return in.intern(Recursive{Target: target})
}

// ThisType interns the polymorphic `this` type singleton.
func (in *Interner) ThisType() TypeId {
	return in.intern(ThisType{})
}

func sortedProperties(props []PropertyInfo) []PropertyInfo {
	out := make([]PropertyInfo, len(props))
	copy(out, props)
	insertionSortProperties(out)
	return out
}

// insertionSortProperties sorts by Name. Property lists are typically
// small (tens of members), so insertion sort is cheap for them. It is
// stable: properties sharing a name keep their input order. Such
// duplicates are not merged; both entries stay in the shape, and
// findProp-style binary searches reach the first one.
func insertionSortProperties(props []PropertyInfo) {
	for i := 1; i < len(props); i++ {
		for j := i; j > 0 && props[j-1].Name > props[j].Name; j-- {
			props[j-1], props[j] = props[j], props[j-1]
		}
	}
}
