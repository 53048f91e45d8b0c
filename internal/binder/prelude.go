package binder

import "sync"

// Singleton lib table holding the ambient globals every compilation
// unit resolves against (the `lib.d.ts` stand-in), grounded on the
// teacher's sync.Once prelude pattern (symbol_table_init.go).
var (
	preludeTable *Table
	preludeOnce  sync.Once
)

// GetPrelude returns the singleton global-lib Table, building it once.
// Every fresh Table should AddLib(GetPrelude()) so bare names like
// `Array`, `Promise`, and `Object` resolve without a source file ever
// declaring them.
func GetPrelude() *Table {
	preludeOnce.Do(func() {
		preludeTable = NewTable()
		preludeTable.initGlobals()
	})
	return preludeTable
}

// ResetPrelude rebuilds the singleton on next GetPrelude call. Tests
// that mutate the prelude lib (e.g. to stub a global) call this in
// cleanup to avoid cross-test leakage.
func ResetPrelude() {
	preludeOnce = sync.Once{}
	preludeTable = nil
}

// globalLibModule is the specifier GetPrelude's globals live under —
// the prelude has no real file, so its exports aren't reachable via
// any import specifier; GetSymbolWithLibs consults it directly by name
// through the distinguished global module record instead.
const globalLibModule = globalModuleSpecifier

func (t *Table) initGlobals() {
	for _, name := range []string{
		"Array", "Object", "Function", "String", "Number", "Boolean",
		"Promise", "Map", "Set", "WeakMap", "WeakSet", "RegExp", "Error",
		"Date", "Symbol", "Record", "Partial", "Readonly", "Pick", "Omit",
	} {
		id := t.NewSymbol(name, FlagType|FlagValue)
		t.Export(globalLibModule, name, id)
	}
}
