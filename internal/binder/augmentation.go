package binder

// ApplyModuleAugmentation merges augmenting into the target module's
// export table. Per original_source's state_module_binding.rs, an
// augmentation is merged *after* the target module's own exports are
// populated — so an augmentation can add a member but never silently
// shadow one the module itself declares (the module's own export wins
// on a name collision).
func (t *Table) ApplyModuleAugmentation(targetModule string, augmenting *ExportTable) {
	target := t.exportTable(targetModule)
	for name, id := range *augmenting {
		if _, exists := (*target)[name]; !exists {
			(*target)[name] = id
		}
	}
}

// ApplyGlobalAugmentation merges a `declare global { ... }` block's
// declarations into the distinguished global module record.
func (t *Table) ApplyGlobalAugmentation(globals *ExportTable) {
	t.ApplyModuleAugmentation(globalModuleSpecifier, globals)
}

// GlobalExports returns the export table accumulated from every
// `declare global { ... }` augmentation seen so far.
func (t *Table) GlobalExports() *ExportTable {
	return t.exportTable(globalModuleSpecifier)
}

// MergeInterfaceDeclaration folds an additional interface declaration
// with the same name onto an existing INTERFACE symbol's Members table
// (declaration merging, spec §4.5): members from the later declaration
// are added; a name already present from an earlier declaration is left
// untouched. The symbol's Declarations list is not modified.
func MergeInterfaceDeclaration(existing *Symbol, newMembers *ExportTable) {
	if existing.Members == nil {
		table := make(ExportTable)
		existing.Members = &table
	}
	for name, id := range *newMembers {
		if _, exists := (*existing.Members)[name]; !exists {
			(*existing.Members)[name] = id
		}
	}
}

// MergeClassAndNamespace exposes a class symbol's companion namespace
// members as the class's static side: a `class Foo {}` plus
// `namespace Foo {}` pair merges the namespace's exports into the
// class symbol's Members table, matching the canonical compiler's
// merged-static-side behavior.
func MergeClassAndNamespace(class *Symbol, namespace *Symbol) {
	if namespace.Exports == nil {
		return
	}
	if class.Members == nil {
		table := make(ExportTable)
		class.Members = &table
	}
	for name, id := range *namespace.Exports {
		(*class.Members)[name] = id
	}
}
