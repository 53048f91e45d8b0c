package binder

import "github.com/funvibe/tsgo-core/internal/parsetree"

// Reexport is one `export { name [as alias] } from "specifier"` edge.
type Reexport struct {
	LocalName  string
	ExportName string
	FromModule string
}

// globalModuleSpecifier is the distinguished key module_exports etc.
// use for `declare global { ... }` augmentation — not a real module
// specifier a source file could ever import.
const globalModuleSpecifier = "\x00global"

// Table is the binder collaborator's reference implementation: a
// per-compilation-unit symbol table plus the module graph spec §6
// describes (file_locals, module_exports, reexports,
// wildcard_reexports, shorthand_ambient_modules, declared_modules).
type Table struct {
	symbols []*Symbol

	// FileLocals is name -> SymbolId at file scope, per file path.
	FileLocals map[string]map[string]SymbolId

	// ModuleExports is module specifier -> that module's export table.
	ModuleExports map[string]*ExportTable

	// Reexports is importing-module -> the re-export edges it declares.
	Reexports map[string][]Reexport

	// WildcardReexports is importing-module -> the `export * from "m"`
	// source modules it re-exports everything from.
	WildcardReexports map[string][]string

	// ShorthandAmbientModules are `declare module "*.ext";` patterns —
	// a match resolves the whole module to `any`, no export table.
	ShorthandAmbientModules []string

	// DeclaredModules are `declare module "pattern" { ... }` patterns
	// with a real export table, keyed by the literal pattern text.
	DeclaredModules map[string]*ExportTable

	// ExportEquals is module specifier -> the symbol an `export = X`
	// statement names (spec §4.5's export= propagation).
	ExportEquals map[string]SymbolId

	libs []*Table
}

// NewTable returns an empty binder table for one compilation unit.
func NewTable() *Table {
	return &Table{
		FileLocals:        make(map[string]map[string]SymbolId),
		ModuleExports:     make(map[string]*ExportTable),
		Reexports:         make(map[string][]Reexport),
		WildcardReexports: make(map[string][]string),
		DeclaredModules:   make(map[string]*ExportTable),
		ExportEquals:      make(map[string]SymbolId),
	}
}

// SetExportEquals records `export = X` for module.
func (t *Table) SetExportEquals(module string, target SymbolId) {
	t.ExportEquals[module] = target
}

// ResolveExportEquals resolves name through module's `export = X`
// target: X's own members (and, when X is a class with a merged
// namespace sibling, that namespace's exports, already folded into X's
// Members by MergeClassAndNamespace) become the module's named
// imports. ok is false if module has no export= or name isn't a
// member of its target.
func (t *Table) ResolveExportEquals(module, name string) (SymbolId, bool) {
	target, ok := t.ExportEquals[module]
	if !ok {
		return InvalidSymbol, false
	}
	sym := t.Symbol(target)
	if sym == nil {
		return InvalidSymbol, false
	}
	if sym.Members != nil {
		if id, ok := (*sym.Members)[name]; ok {
			return id, true
		}
	}
	if sym.Exports != nil {
		if id, ok := (*sym.Exports)[name]; ok {
			return id, true
		}
	}
	return InvalidSymbol, false
}

// AddLib registers a library table consulted by GetSymbolWithLibs for
// names not found locally (spec §6's "resolution that consults merged
// lib files").
func (t *Table) AddLib(lib *Table) { t.libs = append(t.libs, lib) }

// NewSymbol allocates a fresh symbol and returns its id.
func (t *Table) NewSymbol(name string, flags Flags) SymbolId {
	id := SymbolId(len(t.symbols))
	t.symbols = append(t.symbols, &Symbol{EscapedName: name, Flags: flags, ValueDeclaration: parsetree.InvalidNode})
	return id
}

// Symbol returns the Symbol for id, or nil if id is out of range.
func (t *Table) Symbol(id SymbolId) *Symbol {
	if id < 0 || int(id) >= len(t.symbols) {
		return nil
	}
	return t.symbols[id]
}

// DeclareFileLocal binds name to id at file scope, merging onto an
// existing symbol of a mergeable kind (interface/namespace/function
// overload) rather than shadowing it — declaration merging (spec
// §4.5) is driven by the caller re-using the existing SymbolId and
// only appending a new Declarations entry; DeclareFileLocal itself
// just records the binding the first time a name is seen in a file.
func (t *Table) DeclareFileLocal(file, name string, id SymbolId) {
	scope, ok := t.FileLocals[file]
	if !ok {
		scope = make(map[string]SymbolId)
		t.FileLocals[file] = scope
	}
	if _, exists := scope[name]; !exists {
		scope[name] = id
	}
}

// LookupFileLocal resolves name at file scope.
func (t *Table) LookupFileLocal(file, name string) (SymbolId, bool) {
	scope, ok := t.FileLocals[file]
	if !ok {
		return InvalidSymbol, false
	}
	id, ok := scope[name]
	return id, ok
}

// exportTable returns (creating if absent) the export table for a
// module specifier.
func (t *Table) exportTable(specifier string) *ExportTable {
	et, ok := t.ModuleExports[specifier]
	if !ok {
		table := make(ExportTable)
		et = &table
		t.ModuleExports[specifier] = et
	}
	return et
}

// Export records name -> id as an export of specifier.
func (t *Table) Export(specifier, name string, id SymbolId) {
	(*t.exportTable(specifier))[name] = id
}

// DeclareAmbientModule registers `declare module "pattern" { ... }`
// with a concrete export table, or — when exports is nil — a shorthand
// ambient module resolving to `any`.
func (t *Table) DeclareAmbientModule(pattern string, exports *ExportTable) {
	if exports == nil {
		t.ShorthandAmbientModules = append(t.ShorthandAmbientModules, pattern)
		return
	}
	t.DeclaredModules[pattern] = exports
}

// ResolveModule finds the export table for specifier: an exact module
// match first, then a matching declared ambient pattern, then a
// matching shorthand ambient pattern (spec: `*` matches any segment
// including `/`). Declared patterns are scanned in map order, so which
// of several matching declared patterns wins is not defined. A
// shorthand ambient match returns a nil table with isAny and ok both
// true (no export table, the module is typed any).
func (t *Table) ResolveModule(specifier string) (exports *ExportTable, isAny bool, ok bool) {
	if et, found := t.ModuleExports[specifier]; found {
		return et, false, true
	}
	for pattern, et := range t.DeclaredModules {
		if matchAmbientModule(pattern, specifier) {
			return et, false, true
		}
	}
	for _, pattern := range t.ShorthandAmbientModules {
		if matchAmbientModule(pattern, specifier) {
			return nil, true, true
		}
	}
	return nil, false, false
}

// AddReexport records `export { local as exportName } from "from"`.
func (t *Table) AddReexport(module, local, exportName, from string) {
	t.Reexports[module] = append(t.Reexports[module], Reexport{LocalName: local, ExportName: exportName, FromModule: from})
}

// AddWildcardReexport records `export * from "from"` in module.
func (t *Table) AddWildcardReexport(module, from string) {
	t.WildcardReexports[module] = append(t.WildcardReexports[module], from)
}

// ResolveExport resolves name as an export of module, following named
// re-exports and then wildcard re-exports in declaration order — a
// named re-export takes priority over a wildcard one reaching the same
// name, matching the canonical compiler's ambiguity rules.
func (t *Table) ResolveExport(module, name string) (SymbolId, bool) {
	return t.resolveExport(module, name, make(map[string]bool))
}

func (t *Table) resolveExport(module, name string, visiting map[string]bool) (SymbolId, bool) {
	if visiting[module] {
		return InvalidSymbol, false
	}
	visiting[module] = true

	if et, ok := t.ModuleExports[module]; ok {
		if id, ok := (*et)[name]; ok {
			return id, true
		}
	}
	for _, re := range t.Reexports[module] {
		if re.ExportName == name {
			return t.resolveExport(re.FromModule, re.LocalName, visiting)
		}
	}
	for _, from := range t.WildcardReexports[module] {
		if id, ok := t.resolveExport(from, name, visiting); ok {
			return id, true
		}
	}
	if id, ok := t.ResolveExportEquals(module, name); ok {
		return id, true
	}
	return InvalidSymbol, false
}

// GetSymbolWithLibs resolves name in module, falling back to each
// registered lib table (spec §6) if not found locally — e.g. a global
// like `Array` resolved against the standard lib declarations.
func (t *Table) GetSymbolWithLibs(module, name string) (SymbolId, bool) {
	if id, ok := t.ResolveExport(module, name); ok {
		return id, true
	}
	for _, lib := range t.libs {
		if id, ok := lib.ResolveExport(module, name); ok {
			return id, true
		}
	}
	return InvalidSymbol, false
}
