// Package binder is the binder collaborator's data contract (spec §6)
// plus a reference in-memory implementation: file locals, module
// exports, re-exports, ambient module wildcards, and symbol flags, so
// the checker façade has something real to drive in tests.
package binder

import "github.com/funvibe/tsgo-core/internal/parsetree"

// SymbolId identifies a Symbol within one Table. Ids are never reused
// within a Table's lifetime.
type SymbolId int

const InvalidSymbol SymbolId = -1

// Flags is the closed symbol-flag bitset from spec §6.
type Flags uint32

const (
	FlagValue Flags = 1 << iota
	FlagType
	FlagFunction
	FlagClass
	FlagInterface
	FlagEnum
	FlagRegularEnum
	FlagConstEnum
	FlagTypeAlias
	FlagValueModule
	FlagNamespaceModule
	FlagModule
	FlagAlias
	FlagMethod
	FlagProperty
	FlagConstructor
	FlagAccessor
	FlagAbstract
	FlagExportValue
	FlagEnumMember
	FlagBlockScopedVariable
	FlagTypeParameter
)

// Has reports whether f includes every bit in want.
func (f Flags) Has(want Flags) bool { return f&want == want }

// Any reports whether f includes any bit in want.
func (f Flags) Any(want Flags) bool { return f&want != 0 }

// Symbol is one bound name: its flags, every declaration site that
// contributes to it (declaration merging collapses several syntax
// nodes onto the same Symbol), and — for modules/namespaces/classes —
// its own export or member table.
type Symbol struct {
	EscapedName      string
	Flags            Flags
	Declarations     []parsetree.NodeIndex
	ValueDeclaration parsetree.NodeIndex
	Exports          *ExportTable // non-nil for VALUE_MODULE / NAMESPACE_MODULE symbols
	Members          *ExportTable // non-nil for CLASS / INTERFACE symbols
	IsExported       bool
	ImportModule     string // non-empty for ALIAS symbols created by an import
	IsTypeOnly       bool
}

// ExportTable maps an escaped name to the symbol it resolves to.
type ExportTable map[string]SymbolId
