package types

import "testing"

func TestUnionLaws(t *testing.T) {
	in := NewInterner()
	a := in.Object(ObjectShape{Properties: []PropertyInfo{{Name: "a", ReadType: Number, WriteType: Number}}})
	b := in.Object(ObjectShape{Properties: []PropertyInfo{{Name: "b", ReadType: String, WriteType: String}}})

	if got := in.Union([]TypeId{a}); got != a {
		t.Errorf("union([A]) = %v, want %v", got, a)
	}
	if got := in.Union([]TypeId{a, a, b}); got != in.Union([]TypeId{a, b}) {
		t.Errorf("union([A,A,B]) != union([A,B])")
	}
	if got := in.Union([]TypeId{a, Never}); got != a {
		t.Errorf("union([A, never]) = %v, want %v", got, a)
	}
	if got := in.Union([]TypeId{a, Any}); got != Any {
		t.Errorf("union([A, any]) = %v, want any", got)
	}
	if got := in.Union([]TypeId{BooleanTrue, BooleanFalse}); got != Boolean {
		t.Errorf("union([true,false]) = %v, want boolean", got)
	}

	lit := in.Literal(Literal{ValueKind: LiteralString, String: "x"})
	if got := in.Union([]TypeId{lit, String}); got != String {
		t.Errorf("union([lit, prim]) = %v, want %v", got, String)
	}
}

func TestIntersectionLaws(t *testing.T) {
	in := NewInterner()
	a := in.Object(ObjectShape{Properties: []PropertyInfo{{Name: "x", ReadType: String, WriteType: String}}})

	if got := in.Intersection([]TypeId{a, a}); got != a {
		t.Errorf("intersection([A,A]) = %v, want %v", got, a)
	}
	if got := in.Intersection([]TypeId{a, Unknown}); got != a {
		t.Errorf("intersection([A, unknown]) = %v, want %v", got, a)
	}
	if got := in.Intersection([]TypeId{a, Never}); got != Never {
		t.Errorf("intersection([A, never]) = %v, want never", got)
	}
	if got := in.Intersection([]TypeId{String, Number}); got != Never {
		t.Errorf("intersection([string, number]) = %v, want never", got)
	}

	nonEmpty := in.Object(ObjectShape{Properties: []PropertyInfo{{Name: "x", ReadType: String, WriteType: String}}})
	if got := in.Intersection([]TypeId{Null, nonEmpty}); got != Never {
		t.Errorf("intersection([null, {x: string}]) = %v, want never", got)
	}
}

func TestIdempotentInterning(t *testing.T) {
	in := NewInterner()
	id := in.Array(String)
	data, ok := in.Lookup(id)
	if !ok {
		t.Fatal("lookup failed")
	}
	again := in.intern(data)
	if again != id {
		t.Errorf("intern(lookup(id)) = %v, want %v", again, id)
	}
}

func TestDisjointDiscriminants(t *testing.T) {
	in := NewInterner()
	aLit := in.Literal(Literal{ValueKind: LiteralString, String: "a"})
	bLit := in.Literal(Literal{ValueKind: LiteralString, String: "b"})
	first := in.Object(ObjectShape{Properties: []PropertyInfo{{Name: "kind", ReadType: aLit, WriteType: aLit}}})
	second := in.Object(ObjectShape{Properties: []PropertyInfo{{Name: "kind", ReadType: bLit, WriteType: bLit}}})

	if got := in.Intersection([]TypeId{first, second}); got != Never {
		t.Errorf("intersection of disjoint discriminants = %v, want never", got)
	}
}

func TestDiscriminantPartitioning(t *testing.T) {
	in := NewInterner()
	members := make([]TypeId, 0, 20)
	for i := 0; i < 20; i++ {
		lit := in.Literal(Literal{ValueKind: LiteralNumber, Number: float64(i)})
		shape := ObjectShape{Properties: []PropertyInfo{
			{Name: "tag", ReadType: lit, WriteType: lit},
			{Name: "value", ReadType: String, WriteType: String},
		}}
		members = append(members, in.Object(shape))
	}
	u := in.Union(members)
	data, ok := in.Lookup(u)
	if !ok {
		t.Fatal("lookup failed")
	}
	union, isUnion := data.(Union)
	if !isUnion {
		t.Fatalf("expected a Union, got %T", data)
	}
	if len(union.Members) != 20 {
		t.Errorf("partitioned union kept %d members, want 20", len(union.Members))
	}
}
