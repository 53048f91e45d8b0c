package parsetree

import "testing"

func TestParseInterfaceAndVariable(t *testing.T) {
	src := `
interface Point {
  x: number;
  y: number;
  readonly label?: string;
}

const origin: Point = { x: 0, y: 0 };
`
	ar, root, err := ParseSourceFile(src)
	if err != nil {
		t.Fatalf("ParseSourceFile: %v", err)
	}
	children := ar.Children(root)
	if len(children) != 2 {
		t.Fatalf("expected 2 top-level statements, got %d", len(children))
	}

	iface, ok := ar.GetInterface(children[0])
	if !ok {
		t.Fatalf("expected first statement to be an interface declaration")
	}
	if ar.Text(iface.Name) != "Point" {
		t.Fatalf("expected interface name Point, got %q", ar.Text(iface.Name))
	}
	if len(iface.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(iface.Members))
	}

	label, ok := ar.GetPropertySignature(iface.Members[2])
	if !ok || !label.Readonly || !label.Optional || label.Name != "label" {
		t.Fatalf("expected readonly optional property 'label', got %+v ok=%v", label, ok)
	}

	varStmt, ok := ar.GetVariableStatement(children[1])
	if !ok || len(varStmt.Declarations) != 1 {
		t.Fatalf("expected one variable declaration")
	}
	decl, ok := ar.GetVariableDeclaration(varStmt.Declarations[0])
	if !ok || ar.Text(decl.Name) != "origin" {
		t.Fatalf("expected variable named origin, got %+v", decl)
	}
	ref, ok := ar.GetTypeReference(decl.Type)
	if !ok || ref.Name != "Point" {
		t.Fatalf("expected declared type Point, got %+v", ref)
	}
}

func TestParseUnionAndConditionalType(t *testing.T) {
	src := `type Id<T> = T extends string ? string : number | boolean;`
	ar, root, err := ParseSourceFile(src)
	if err != nil {
		t.Fatalf("ParseSourceFile: %v", err)
	}
	alias, ok := ar.GetTypeAlias(ar.Children(root)[0])
	if !ok {
		t.Fatalf("expected a type alias declaration")
	}
	cond, ok := ar.GetConditionalType(alias.Type)
	if !ok {
		t.Fatalf("expected a conditional type")
	}
	if _, ok := ar.GetUnionType(cond.False); !ok {
		t.Fatalf("expected the false branch to be a union type")
	}
}

func TestParseMappedType(t *testing.T) {
	src := `type Partial2<T> = { [K in keyof T]?: T[K] };`
	ar, root, err := ParseSourceFile(src)
	if err != nil {
		t.Fatalf("ParseSourceFile: %v", err)
	}
	alias, ok := ar.GetTypeAlias(ar.Children(root)[0])
	if !ok {
		t.Fatalf("expected a type alias declaration")
	}
	mapped, ok := ar.GetMappedType(alias.Type)
	if !ok {
		t.Fatalf("expected a mapped type, got kind %v", ar.Kind(alias.Type))
	}
	if mapped.Optional != "?" {
		t.Fatalf("expected optional modifier '?', got %q", mapped.Optional)
	}
	if _, ok := ar.GetIndexedAccessType(mapped.Type); !ok {
		t.Fatalf("expected the mapped value type to be an indexed access T[K]")
	}
}

func TestParseFunctionDeclarationWithBody(t *testing.T) {
	src := `
function add(a: number, b: number): number {
  return a + b;
}
`
	ar, root, err := ParseSourceFile(src)
	if err != nil {
		t.Fatalf("ParseSourceFile: %v", err)
	}
	fn, ok := ar.GetFunction(ar.Children(root)[0])
	if !ok {
		t.Fatalf("expected a function declaration")
	}
	if ar.Text(fn.Name) != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
	block := ar.Children(fn.Body)
	if len(block) != 1 || ar.Kind(block[0]) != KindReturnStatement {
		t.Fatalf("expected a single return statement in the body")
	}
}
