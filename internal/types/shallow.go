package types

// shallowSubtype decides S <: T using only direct TypeId identity for
// nested components plus a short whitelist of rules. It never calls
// intern or the full subtype checker (internal/subtype) — it exists
// solely to let normalization (flattening unions/intersections) drop
// redundant members without recursing into the checker, which would
// itself need a normalized interner to run. Breaking that cycle is the
// whole point of "shallow".
func (in *Interner) shallowSubtype(s, t TypeId) bool {
	if s == t {
		return true
	}
	if t == Any || t == Unknown || s == Never {
		return true
	}

	sd, sOk := in.Lookup(s)
	td, tOk := in.Lookup(t)
	if !sOk || !tOk {
		return false
	}

	// Literal -> primitive widening.
	if lit, ok := sd.(Literal); ok {
		if lit.BaseIntrinsic() == t {
			return true
		}
	}

	// true | false -> boolean is handled by union normalization calling
	// this after the fact, but a direct literal-boolean vs intrinsic
	// check is also a shallow win.
	if s == BooleanTrue || s == BooleanFalse {
		if t == Boolean {
			return true
		}
	}

	// Width subtyping between two Object shapes with identical property
	// TypeIds: S <: T iff every property of T appears in S with the same
	// id. This is "shallow" because it compares nested property types by
	// identity only, never recursing into the full subtype rules.
	if sObj, ok := sd.(Object); ok {
		if tObj, ok := td.(Object); ok {
			return shallowObjectWidens(sObj.Shape, tObj.Shape)
		}
	}

	// Nominal symbol match: two Enum members of the same DefId are
	// mutually shallow-subtypes.
	if sEnum, ok := sd.(Enum); ok {
		if tEnum, ok := td.(Enum); ok {
			return sEnum.DefId == tEnum.DefId
		}
	}

	return false
}

func shallowObjectWidens(s, t ObjectShape) bool {
	ti := 0
	for _, tp := range t.Properties {
		for ti < len(s.Properties) && s.Properties[ti].Name < tp.Name {
			ti++
		}
		if ti >= len(s.Properties) || s.Properties[ti].Name != tp.Name {
			return false
		}
		if s.Properties[ti].ReadType != tp.ReadType {
			return false
		}
	}
	return true
}
