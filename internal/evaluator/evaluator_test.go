package evaluator

import (
	"testing"

	"github.com/funvibe/tsgo-core/internal/types"
)

func litStr(in *types.Interner, s string) types.TypeId {
	return in.Literal(types.Literal{ValueKind: types.LiteralString, String: s})
}

func TestEvaluateKeyOfObject(t *testing.T) {
	in := types.NewInterner()
	obj := in.Object(types.ObjectShape{Properties: []types.PropertyInfo{
		{Name: "a", ReadType: types.String, WriteType: types.String},
		{Name: "b", ReadType: types.Number, WriteType: types.Number},
	}})
	ev := New(in)

	got := ev.Evaluate(in.KeyOf(obj))
	want := in.Union([]types.TypeId{litStr(in, "a"), litStr(in, "b")})
	if got != want {
		t.Errorf("keyof {a,b} = %v, want %v", got, want)
	}
}

func TestEvaluateKeyOfUnionIsContravariant(t *testing.T) {
	in := types.NewInterner()
	a := in.Object(types.ObjectShape{Properties: []types.PropertyInfo{{Name: "a", ReadType: types.String, WriteType: types.String}}})
	b := in.Object(types.ObjectShape{Properties: []types.PropertyInfo{{Name: "b", ReadType: types.String, WriteType: types.String}}})
	ev := New(in)

	got := ev.Evaluate(in.KeyOf(in.Union([]types.TypeId{a, b})))
	if got != types.Never {
		t.Errorf("keyof (A|B) = %v, want never (disjoint key sets)", got)
	}
}

func TestEvaluateIndexAccessObject(t *testing.T) {
	in := types.NewInterner()
	obj := in.Object(types.ObjectShape{Properties: []types.PropertyInfo{
		{Name: "kind", ReadType: litStr(in, "circle"), WriteType: litStr(in, "circle")},
	}})
	ev := New(in)

	got := ev.Evaluate(in.IndexAccess(obj, litStr(in, "kind")))
	if got != litStr(in, "circle") {
		t.Errorf("obj[\"kind\"] = %v, want the literal type", got)
	}
}

func TestEvaluateIndexAccessTupleNumber(t *testing.T) {
	in := types.NewInterner()
	tup := in.Tuple([]types.TupleElement{{Type: types.String}, {Type: types.Number}})
	ev := New(in)

	got := ev.Evaluate(in.IndexAccess(tup, types.Number))
	want := in.Union([]types.TypeId{types.String, types.Number})
	if got != want {
		t.Errorf("tuple[number] = %v, want %v", got, want)
	}
}

func TestEvaluateMappedOverLiteralUnion(t *testing.T) {
	in := types.NewInterner()
	keys := in.Union([]types.TypeId{litStr(in, "a"), litStr(in, "b")})
	ev := New(in)
	ev.SetSubstituter(func(id types.TypeId, bindings map[string]types.TypeId) types.TypeId {
		// The template here ignores its parameter and always yields
		// `boolean`, which is enough to exercise expansion without
		// dragging in the instantiator.
		return types.Boolean
	})

	mapped := in.Mapped("K", keys, types.Invalid, types.Boolean, types.ModifierPreserve, types.ModifierPreserve)
	got := ev.Evaluate(mapped)

	data, ok := in.Lookup(got)
	if !ok {
		t.Fatal("lookup failed")
	}
	obj, isObj := data.(types.Object)
	if !isObj {
		t.Fatalf("expected Object, got %T", data)
	}
	if len(obj.Shape.Properties) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(obj.Shape.Properties))
	}
	for _, p := range obj.Shape.Properties {
		if p.ReadType != types.Boolean {
			t.Errorf("property %q has type %v, want boolean", p.Name, p.ReadType)
		}
	}
}

func TestEvaluateTemplateLiteralExpansion(t *testing.T) {
	in := types.NewInterner()
	ev := New(in)

	sizes := in.Union([]types.TypeId{litStr(in, "sm"), litStr(in, "lg")})
	tmpl := in.TemplateLiteral([]types.TemplateSpan{
		{Text: "icon-"},
		{Type: sizes, HasType: true},
	})

	got := ev.Evaluate(tmpl)
	want := in.Union([]types.TypeId{litStr(in, "icon-sm"), litStr(in, "icon-lg")})
	if got != want {
		t.Errorf("template expansion = %v, want %v", got, want)
	}
}

func TestEvaluateTemplateLiteralStaysSymbolicOverString(t *testing.T) {
	in := types.NewInterner()
	ev := New(in)

	tmpl := in.TemplateLiteral([]types.TemplateSpan{
		{Text: "id-"},
		{Type: types.String, HasType: true},
	})
	got := ev.Evaluate(tmpl)
	if got != tmpl {
		t.Errorf("template over bare string should stay symbolic, got %v want %v", got, tmpl)
	}
}

func TestEvaluateStringIntrinsics(t *testing.T) {
	in := types.NewInterner()
	ev := New(in)

	cases := []struct {
		kind types.StringIntrinsicKind
		in   string
		want string
	}{
		{types.Uppercase, "abc", "ABC"},
		{types.Lowercase, "ABC", "abc"},
		{types.Capitalize, "abc", "Abc"},
		{types.Uncapitalize, "ABC", "aBC"},
	}
	for _, c := range cases {
		got := ev.Evaluate(in.StringIntrinsic(c.kind, litStr(in, c.in)))
		want := litStr(in, c.want)
		if got != want {
			t.Errorf("intrinsic(%d, %q) = %v, want literal %q", c.kind, c.in, got, c.want)
		}
	}
}

func TestEvaluateConditionalUsesInjectedMatcher(t *testing.T) {
	in := types.NewInterner()
	ev := New(in)
	ev.SetMatcher(func(check, ext types.TypeId, skipInfer bool) InferResult {
		return InferResult{Matched: check == types.String}
	})

	cond := in.Conditional(types.String, types.String, litStr(in, "yes"), litStr(in, "no"), false)
	if got := ev.Evaluate(cond); got != litStr(in, "yes") {
		t.Errorf("matched conditional = %v, want the true branch", got)
	}

	cond2 := in.Conditional(types.Number, types.String, litStr(in, "yes"), litStr(in, "no"), false)
	if got := ev.Evaluate(cond2); got != litStr(in, "no") {
		t.Errorf("unmatched conditional = %v, want the false branch", got)
	}
}

func TestEvaluateDistributiveConditionalOverUnion(t *testing.T) {
	in := types.NewInterner()
	ev := New(in)
	ev.SetMatcher(func(check, ext types.TypeId, skipInfer bool) InferResult {
		return InferResult{Matched: check == types.String}
	})

	checkUnion := in.Union([]types.TypeId{types.String, types.Number})
	cond := in.Conditional(checkUnion, types.String, in.Array(types.String), types.Never, true)

	got := ev.Evaluate(cond)
	want := in.Array(types.String) // number branch reduces to never, absorbed by the union
	if got != want {
		t.Errorf("distributive conditional over (string|number) = %v, want %v", got, want)
	}
}

func TestEvaluateMemoizesResults(t *testing.T) {
	in := types.NewInterner()
	ev := New(in)
	calls := 0
	ev.SetMatcher(func(check, ext types.TypeId, skipInfer bool) InferResult {
		calls++
		return InferResult{Matched: true}
	})

	cond := in.Conditional(types.String, types.String, types.Number, types.Never, false)
	ev.Evaluate(cond)
	ev.Evaluate(cond)

	if calls != 1 {
		t.Errorf("matcher invoked %d times, want 1 (memoized)", calls)
	}
}
