package checker

import (
	"testing"

	"github.com/funvibe/tsgo-core/internal/config"
	"github.com/funvibe/tsgo-core/internal/diag"
	"github.com/funvibe/tsgo-core/internal/instantiate"
	"github.com/funvibe/tsgo-core/internal/types"
)

func hasCode(diags []diag.Diagnostic, code int) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestCannotFindName(t *testing.T) {
	c := New("t.ts", `let x = y;`, config.Default())
	diags := c.Check().Diagnostics()
	if !hasCode(diags, diag.CodeCannotFindName) {
		t.Fatalf("expected CodeCannotFindName, got %+v", diags)
	}
}

func TestVariableInitializerNotAssignable(t *testing.T) {
	c := New("t.ts", `let x: string = 1;`, config.Default())
	diags := c.Check().Diagnostics()
	if !hasCode(diags, diag.CodeNotAssignable) {
		t.Fatalf("expected CodeNotAssignable, got %+v", diags)
	}
}

func TestVariableInitializerAssignableNoDiagnostic(t *testing.T) {
	c := New("t.ts", `let x: number = 1;`, config.Default())
	diags := c.Check().Diagnostics()
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}
}

// TestExcessPropertyCheck exercises Design Note Rule 4: a fresh object
// literal assigned straight into a narrower-shaped variable is checked
// for excess properties. The same value routed through an intermediate
// binding (where widening clears Fresh) is covered by
// TestExcessPropertyThroughVariableIsNotFlagged.
func TestExcessPropertyCheck(t *testing.T) {
	src := `
interface Point { x: number; y: number; }
let p: Point = { x: 1, y: 2, z: 3 };
`
	c := New("t.ts", src, config.Default())
	diags := c.Check().Diagnostics()
	if !hasCode(diags, diag.CodeExcessProperty) && !hasCode(diags, diag.CodeNotAssignable) {
		t.Fatalf("expected an excess-property or assignability diagnostic, got %+v", diags)
	}
}

func TestExcessPropertyThroughVariableIsNotFlagged(t *testing.T) {
	src := `
interface Point { x: number; y: number; }
let raw = { x: 1, y: 2, z: 3 };
let p: Point = raw;
`
	c := New("t.ts", src, config.Default())
	diags := c.Check().Diagnostics()
	if hasCode(diags, diag.CodeExcessProperty) {
		t.Fatalf("widened object literal should not trigger excess-property check, got %+v", diags)
	}
}

// TestDisjointPrimitiveIntersection exercises Design Note Rule: a
// type alias combining two disjoint primitives reduces to never at
// intern time, asserted directly against the interned TypeId rather
// than through a diagnostic (the reduction happens in internal/types,
// not the checker).
func TestDisjointPrimitiveIntersection(t *testing.T) {
	c := New("t.ts", `type T = string & number;`, config.Default())
	c.Check()
	id, ok := c.lowerNamedType("T")
	if !ok {
		t.Fatal("expected T to resolve")
	}
	if id != types.Never {
		t.Fatalf("expected string & number to reduce to never, got %v", id)
	}
}

// TestDistributiveConditional exercises spec Rule 40: a conditional
// type with a bare type-parameter check distributes over a union
// substituted for that parameter.
func TestDistributiveConditional(t *testing.T) {
	src := `type Box<T> = T extends string ? "s" : "n";`
	c := New("t.ts", src, config.Default())
	c.Check()

	boxId, ok := c.lowerNamedType("Box")
	if !ok {
		t.Fatal("expected Box to resolve")
	}
	union := c.in.Union([]types.TypeId{types.String, types.Number})
	entry := c.decls["Box"]
	params := c.declaredTypeParams(entry)
	if len(params) != 1 {
		t.Fatalf("expected Box to have one type parameter, got %d", len(params))
	}
	paramData, ok := c.in.Lookup(params[0])
	if !ok {
		t.Fatal("expected Box's type parameter to resolve")
	}
	paramName := paramData.(types.TypeParameter).Name
	subst := instantiate.Substitution{paramName: union}
	instantiated := instantiate.New(c.in, subst).Instantiate(boxId)
	result := c.eval.Evaluate(instantiated)
	data, ok := c.in.Lookup(result)
	if !ok {
		t.Fatalf("expected a resolvable result, got invalid id")
	}
	if _, isUnion := data.(types.Union); !isUnion {
		t.Fatalf("expected distribution to produce a union, got %#v", data)
	}
}

// TestInferVariableVisibleInTrueBranch exercises the `infer` binding
// rule: a type variable introduced in a conditional's Extends clause
// must resolve by name inside the True branch.
func TestInferVariableVisibleInTrueBranch(t *testing.T) {
	src := `type Elem<T> = T extends (infer E)[] ? E : never;`
	c := New("t.ts", src, config.Default())
	diags := c.Check().Diagnostics()
	if hasCode(diags, diag.CodeCannotFindName) {
		t.Fatalf("expected infer variable E to resolve in the true branch, got %+v", diags)
	}

	elemId, ok := c.lowerNamedType("Elem")
	if !ok {
		t.Fatal("expected Elem to resolve")
	}
	entry := c.decls["Elem"]
	params := c.declaredTypeParams(entry)
	if len(params) != 1 {
		t.Fatalf("expected Elem to have one type parameter, got %d", len(params))
	}
	paramData, ok := c.in.Lookup(params[0])
	if !ok {
		t.Fatal("expected Elem's type parameter to resolve")
	}
	paramName := paramData.(types.TypeParameter).Name
	arr := c.in.Array(types.String)
	subst := instantiate.Substitution{paramName: arr}
	instantiated := instantiate.New(c.in, subst).Instantiate(elemId)
	result := c.eval.Evaluate(instantiated)
	if result != types.String {
		t.Fatalf("expected Elem<string[]> to evaluate to string, got %s", c.describeType(result))
	}
}

func TestMappedTypeOverUnion(t *testing.T) {
	src := `
type Keys = "a" | "b";
type Flags = { [K in Keys]: boolean };
`
	c := New("t.ts", src, config.Default())
	c.Check()
	id, ok := c.lowerNamedType("Flags")
	if !ok {
		t.Fatal("expected Flags to resolve")
	}
	result := c.eval.Evaluate(id)
	data, ok := c.in.Lookup(result)
	if !ok {
		t.Fatalf("expected resolvable mapped result")
	}
	obj, isObj := data.(types.Object)
	if !isObj {
		t.Fatalf("expected mapped type over a union to produce an object shape, got %#v", data)
	}
	if len(obj.Shape.Properties) != 2 {
		t.Fatalf("expected two properties (a, b), got %d", len(obj.Shape.Properties))
	}
}

func TestFunctionCallArityAndAssignability(t *testing.T) {
	src := `
function add(a: number, b: number): number {
	return a + b;
}
let r: string = add(1, 2);
`
	c := New("t.ts", src, config.Default())
	diags := c.Check().Diagnostics()
	if !hasCode(diags, diag.CodeNotAssignable) {
		t.Fatalf("expected number-to-string assignment to be flagged, got %+v", diags)
	}
}

func TestFunctionCallTooFewArguments(t *testing.T) {
	src := `
function add(a: number, b: number): number {
	return a + b;
}
add(1);
`
	c := New("t.ts", src, config.Default())
	diags := c.Check().Diagnostics()
	if !hasCode(diags, diag.CodeArityMismatch) {
		t.Fatalf("expected an arity diagnostic, got %+v", diags)
	}
}

func TestPropertyAccessOnKnownShape(t *testing.T) {
	src := `
interface Point { x: number; y: number; }
let p: Point = { x: 1, y: 2 };
let n: number = p.x;
`
	c := New("t.ts", src, config.Default())
	diags := c.Check().Diagnostics()
	if hasCode(diags, diag.CodePropertyNotExist) {
		t.Fatalf("p.x should resolve, got %+v", diags)
	}
	if hasCode(diags, diag.CodeNotAssignable) {
		t.Fatalf("unexpected assignability diagnostic: %+v", diags)
	}
}

func TestPropertyAccessOnMissingMember(t *testing.T) {
	src := `
interface Point { x: number; y: number; }
let p: Point = { x: 1, y: 2 };
let z = p.z;
`
	c := New("t.ts", src, config.Default())
	diags := c.Check().Diagnostics()
	if !hasCode(diags, diag.CodePropertyNotExist) {
		t.Fatalf("expected CodePropertyNotExist, got %+v", diags)
	}
}

// TestInterfaceHeritageInheritsMembers exercises member inheritance for
// `extends`: a derived interface structurally carries its base's
// properties even though this checker has no distinct nominal interface
// type former.
func TestInterfaceHeritageInheritsMembers(t *testing.T) {
	src := `
interface Animal { name: string; }
interface Dog extends Animal { bark: boolean; }
let d: Dog = { name: "Rex", bark: true };
`
	c := New("t.ts", src, config.Default())
	diags := c.Check().Diagnostics()
	if hasCode(diags, diag.CodeNotAssignable) || hasCode(diags, diag.CodeExcessProperty) {
		t.Fatalf("expected Dog's inherited shape to accept its own literal, got %+v", diags)
	}
}

func TestLiteralWideningForLet(t *testing.T) {
	src := `let s = "hi";`
	c := New("t.ts", src, config.Default())
	c.Check()
	id, ok := c.lookupValue("s")
	if !ok {
		t.Fatal("expected s to be bound")
	}
	if id != types.String {
		t.Fatalf("expected let to widen a string literal to string, got %v", c.describeType(id))
	}
}

func TestConstKeepsLiteralType(t *testing.T) {
	src := `const s = "hi";`
	c := New("t.ts", src, config.Default())
	c.Check()
	id, ok := c.lookupValue("s")
	if !ok {
		t.Fatal("expected s to be bound")
	}
	data, ok := c.in.Lookup(id)
	if !ok {
		t.Fatal("expected a resolvable literal type")
	}
	lit, isLit := data.(types.Literal)
	if !isLit || lit.String != "hi" {
		t.Fatalf("expected const to keep the narrow literal type, got %#v", data)
	}
}

func TestSyntaxErrorReportedThroughSink(t *testing.T) {
	c := New("t.ts", `let x: ;`, config.Default())
	diags := c.Sink().Diagnostics()
	if !hasCode(diags, diag.CodeSyntaxError) {
		t.Fatalf("expected a syntax error diagnostic, got %+v", diags)
	}
}
