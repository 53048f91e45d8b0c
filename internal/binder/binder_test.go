package binder

import "testing"

func TestDeclareAndLookupFileLocal(t *testing.T) {
	tbl := NewTable()
	id := tbl.NewSymbol("x", FlagBlockScopedVariable|FlagValue)
	tbl.DeclareFileLocal("a.ts", "x", id)

	got, ok := tbl.LookupFileLocal("a.ts", "x")
	if !ok || got != id {
		t.Fatalf("LookupFileLocal = (%v, %v), want (%v, true)", got, ok, id)
	}
	if _, ok := tbl.LookupFileLocal("a.ts", "y"); ok {
		t.Fatalf("LookupFileLocal found unbound name")
	}
}

func TestDeclareFileLocalFirstWriteWins(t *testing.T) {
	tbl := NewTable()
	first := tbl.NewSymbol("Foo", FlagInterface)
	second := tbl.NewSymbol("Foo", FlagInterface)
	tbl.DeclareFileLocal("a.ts", "Foo", first)
	tbl.DeclareFileLocal("a.ts", "Foo", second)

	got, _ := tbl.LookupFileLocal("a.ts", "Foo")
	if got != first {
		t.Fatalf("DeclareFileLocal overwrote existing binding: got %v, want %v", got, first)
	}
}

func TestResolveExportDirect(t *testing.T) {
	tbl := NewTable()
	id := tbl.NewSymbol("widget", FlagValue)
	tbl.Export("./widget", "widget", id)

	got, ok := tbl.ResolveExport("./widget", "widget")
	if !ok || got != id {
		t.Fatalf("ResolveExport = (%v, %v), want (%v, true)", got, ok, id)
	}
}

func TestResolveExportNamedReexport(t *testing.T) {
	tbl := NewTable()
	id := tbl.NewSymbol("widget", FlagValue)
	tbl.Export("./widget", "widget", id)
	tbl.AddReexport("./index", "widget", "widget", "./widget")

	got, ok := tbl.ResolveExport("./index", "widget")
	if !ok || got != id {
		t.Fatalf("ResolveExport via named reexport = (%v, %v), want (%v, true)", got, ok, id)
	}
}

func TestResolveExportWildcardReexport(t *testing.T) {
	tbl := NewTable()
	id := tbl.NewSymbol("widget", FlagValue)
	tbl.Export("./widget", "widget", id)
	tbl.AddWildcardReexport("./index", "./widget")

	got, ok := tbl.ResolveExport("./index", "widget")
	if !ok || got != id {
		t.Fatalf("ResolveExport via wildcard reexport = (%v, %v), want (%v, true)", got, ok, id)
	}
}

func TestResolveExportNamedTakesPriorityOverWildcard(t *testing.T) {
	tbl := NewTable()
	direct := tbl.NewSymbol("widget", FlagValue)
	shadowed := tbl.NewSymbol("widget", FlagValue)
	tbl.Export("./a", "widget", direct)
	tbl.Export("./b", "widget", shadowed)
	tbl.AddReexport("./index", "widget", "widget", "./a")
	tbl.AddWildcardReexport("./index", "./b")

	got, ok := tbl.ResolveExport("./index", "widget")
	if !ok || got != direct {
		t.Fatalf("named reexport should win over wildcard: got (%v, %v), want (%v, true)", got, ok, direct)
	}
}

func TestResolveExportCycleGuard(t *testing.T) {
	tbl := NewTable()
	tbl.AddWildcardReexport("./a", "./b")
	tbl.AddWildcardReexport("./b", "./a")

	if _, ok := tbl.ResolveExport("./a", "missing"); ok {
		t.Fatalf("ResolveExport should fail rather than loop forever on a reexport cycle")
	}
}

func TestExportEqualsPropagation(t *testing.T) {
	tbl := NewTable()
	method := tbl.NewSymbol("run", FlagFunction|FlagValue)
	ns := tbl.NewSymbol("widget", FlagValueModule)
	table := ExportTable{"run": method}
	ns2 := tbl.Symbol(ns)
	ns2.Members = &table
	tbl.SetExportEquals("./widget", ns)

	got, ok := tbl.ResolveExport("./widget", "run")
	if !ok || got != method {
		t.Fatalf("ResolveExport via export= = (%v, %v), want (%v, true)", got, ok, method)
	}
}

func TestAmbientModuleShorthandResolvesToAny(t *testing.T) {
	tbl := NewTable()
	tbl.DeclareAmbientModule("*.css", nil)

	exports, isAny, ok := tbl.ResolveModule("./button.css")
	if !ok || !isAny || exports != nil {
		t.Fatalf("ResolveModule(shorthand) = (%v, %v, %v), want (nil, true, true)", exports, isAny, ok)
	}
}

func TestAmbientModuleDeclaredWithExports(t *testing.T) {
	tbl := NewTable()
	id := tbl.NewSymbol("version", FlagValue)
	exports := ExportTable{"version": id}
	tbl.DeclareAmbientModule("my-lib/*", &exports)

	got, isAny, ok := tbl.ResolveModule("my-lib/utils")
	if !ok || isAny || got == nil {
		t.Fatalf("ResolveModule(declared) = (%v, %v, %v), want real export table", got, isAny, ok)
	}
	if (*got)["version"] != id {
		t.Fatalf("resolved ambient module export table missing expected symbol")
	}
}

func TestResolveModuleExactBeatsAmbient(t *testing.T) {
	tbl := NewTable()
	exact := tbl.NewSymbol("exact", FlagValue)
	ambient := tbl.NewSymbol("ambient", FlagValue)
	exactTable := ExportTable{"x": exact}
	ambientTable := ExportTable{"x": ambient}
	tbl.ModuleExports["my-lib/utils"] = &exactTable
	tbl.DeclareAmbientModule("my-lib/*", &ambientTable)

	got, _, ok := tbl.ResolveModule("my-lib/utils")
	if !ok || (*got)["x"] != exact {
		t.Fatalf("exact module match should win over ambient pattern")
	}
}

func TestGetSymbolWithLibsFallsBackToLib(t *testing.T) {
	ResetPrelude()
	tbl := NewTable()
	tbl.AddLib(GetPrelude())

	id, ok := tbl.GetSymbolWithLibs(globalLibModule, "Array")
	if !ok {
		t.Fatalf("GetSymbolWithLibs should resolve a prelude global")
	}
	sym := GetPrelude().Symbol(id)
	if sym == nil || sym.EscapedName != "Array" {
		t.Fatalf("resolved symbol is not the Array prelude global")
	}
}

func TestModuleAugmentationDoesNotShadowOwnExport(t *testing.T) {
	tbl := NewTable()
	own := tbl.NewSymbol("Foo", FlagInterface)
	augmenting := tbl.NewSymbol("Foo", FlagInterface)
	tbl.Export("./mod", "Foo", own)

	table := ExportTable{"Foo": augmenting}
	tbl.ApplyModuleAugmentation("./mod", &table)

	got, _ := tbl.ResolveExport("./mod", "Foo")
	if got != own {
		t.Fatalf("module augmentation should not shadow the module's own export")
	}
}

func TestModuleAugmentationAddsNewMember(t *testing.T) {
	tbl := NewTable()
	tbl.Export("./mod", "Foo", tbl.NewSymbol("Foo", FlagInterface))
	bar := tbl.NewSymbol("Bar", FlagInterface)
	table := ExportTable{"Bar": bar}
	tbl.ApplyModuleAugmentation("./mod", &table)

	got, ok := tbl.ResolveExport("./mod", "Bar")
	if !ok || got != bar {
		t.Fatalf("module augmentation should add a member absent from the module's own exports")
	}
}

func TestGlobalAugmentation(t *testing.T) {
	tbl := NewTable()
	id := tbl.NewSymbol("globalThing", FlagValue)
	table := ExportTable{"globalThing": id}
	tbl.ApplyGlobalAugmentation(&table)

	got := tbl.GlobalExports()
	if (*got)["globalThing"] != id {
		t.Fatalf("ApplyGlobalAugmentation did not populate the global export table")
	}
}

func TestMergeInterfaceDeclaration(t *testing.T) {
	tbl := NewTable()
	iface := tbl.Symbol(tbl.NewSymbol("Foo", FlagInterface))
	a := tbl.NewSymbol("a", FlagProperty)
	b := tbl.NewSymbol("b", FlagProperty)

	first := ExportTable{"a": a}
	MergeInterfaceDeclaration(iface, &first)
	second := ExportTable{"b": b, "a": tbl.NewSymbol("a_dup", FlagProperty)}
	MergeInterfaceDeclaration(iface, &second)

	if (*iface.Members)["a"] != a {
		t.Fatalf("MergeInterfaceDeclaration should keep the earlier declaration's member on collision")
	}
	if (*iface.Members)["b"] != b {
		t.Fatalf("MergeInterfaceDeclaration should add a member introduced by a later declaration")
	}
}

func TestMergeClassAndNamespace(t *testing.T) {
	tbl := NewTable()
	class := tbl.Symbol(tbl.NewSymbol("Foo", FlagClass))
	ns := tbl.Symbol(tbl.NewSymbol("Foo", FlagNamespaceModule))
	staticMember := tbl.NewSymbol("create", FlagFunction)
	exports := ExportTable{"create": staticMember}
	ns.Exports = &exports

	MergeClassAndNamespace(class, ns)

	if class.Members == nil || (*class.Members)["create"] != staticMember {
		t.Fatalf("MergeClassAndNamespace should fold the namespace's exports into the class's Members")
	}
}

func TestMergeClassAndNamespaceNoNamespaceExports(t *testing.T) {
	tbl := NewTable()
	class := tbl.Symbol(tbl.NewSymbol("Foo", FlagClass))
	ns := tbl.Symbol(tbl.NewSymbol("Foo", FlagNamespaceModule))

	MergeClassAndNamespace(class, ns)

	if class.Members != nil {
		t.Fatalf("MergeClassAndNamespace should be a no-op when the namespace has no exports")
	}
}

func TestWildcardMatchAcrossSlash(t *testing.T) {
	cases := []struct {
		pattern, specifier string
		want               bool
	}{
		{"*.css", "./button.css", true},
		{"*.css", "./dir/button.css", true},
		{"my-lib/*", "my-lib/utils", true},
		{"my-lib/*", "my-lib/deep/utils", true},
		{"*.css", "./button.scss", false},
		{"a*b*c", "aXbYc", true},
		{"a*b*c", "aXbY", false},
		{"literal", "literal", true},
		{"literal", "literally", false},
		{"*", "anything/at/all", true},
	}
	for _, c := range cases {
		if got := wildcardMatch(c.pattern, c.specifier); got != c.want {
			t.Errorf("wildcardMatch(%q, %q) = %v, want %v", c.pattern, c.specifier, got, c.want)
		}
	}
}

func TestSymbolFlagsHasAndAny(t *testing.T) {
	f := FlagClass | FlagAbstract
	if !f.Has(FlagClass | FlagAbstract) {
		t.Fatalf("Has should report true when every requested bit is set")
	}
	if f.Has(FlagClass | FlagInterface) {
		t.Fatalf("Has should report false when any requested bit is missing")
	}
	if !f.Any(FlagInterface | FlagAbstract) {
		t.Fatalf("Any should report true when at least one requested bit is set")
	}
	if f.Any(FlagInterface | FlagEnum) {
		t.Fatalf("Any should report false when no requested bit is set")
	}
}
