// Package checker is the façade that drives the parse tree, the binder
// collaborator, the interned type graph, the meta-type evaluator, the
// generic instantiator, and the structural subtype checker together
// over one source file (spec §7). It owns the only mutable state that
// spans all of those collaborators for a compilation unit: the
// declaration table, the lexical scope stack, and the diagnostic sink.
package checker

import (
	"github.com/google/uuid"

	"github.com/funvibe/tsgo-core/internal/binder"
	"github.com/funvibe/tsgo-core/internal/config"
	"github.com/funvibe/tsgo-core/internal/diag"
	"github.com/funvibe/tsgo-core/internal/evaluator"
	"github.com/funvibe/tsgo-core/internal/instantiate"
	"github.com/funvibe/tsgo-core/internal/parsetree"
	"github.com/funvibe/tsgo-core/internal/subtype"
	"github.com/funvibe/tsgo-core/internal/types"
)

// declEntry records where a type-space name (interface, type alias, or
// enum) was declared, so lowering a TypeReference to that name can
// resolve it on demand instead of requiring declarations to appear
// before their uses.
type declEntry struct {
	kind parsetree.SyntaxKind
	node parsetree.NodeIndex
}

// Checker holds one compilation unit's state: the file being checked,
// its parsed tree, and the wired-together type-system collaborators.
type Checker struct {
	File      string
	SessionID uuid.UUID

	opts  config.Options
	arena *parsetree.Arena
	root  parsetree.NodeIndex

	in      *types.Interner
	symbols *binder.Table
	eval    *evaluator.Evaluator
	sub     *subtype.Checker
	sink    *diag.Sink

	decls     map[string]declEntry
	resolving map[string]bool
	typeCache map[string]types.TypeId

	scopes         []map[string]types.TypeId
	typeParamScopes []map[string]types.TypeId
}

// New parses src, applies its pragma overrides on top of base, and
// wires an Interner, Evaluator, Instantiator, and Subtype Checker
// together the way spec §7 describes: the façade is the only party
// that knows about all of them at once. A syntax error is reported
// through the returned Sink (spec §7's "errors propagate, they don't
// halt") rather than failing New outright, so callers can still inspect
// whatever partial tree the reader managed to build.
func New(file, src string, base config.Options) *Checker {
	opts := config.ApplyPragmas(base, src)

	arena, root, err := parsetree.ParseSourceFile(src)

	in := types.NewInterner()
	ev := evaluator.New(in)
	ev.SetMaxTemplateCombinations(opts.MaxTemplateLiteralCombinations)
	sc := subtype.New(in, opts.ToPolicy())
	sc.SetEvaluator(ev.Evaluate)

	tbl := binder.NewTable()
	tbl.AddLib(binder.GetPrelude())

	c := &Checker{
		File:      file,
		SessionID: uuid.New(),
		opts:      opts,
		arena:     arena,
		root:      root,
		in:        in,
		symbols:   tbl,
		eval:      ev,
		sub:       sc,
		sink:      diag.NewSink(file),
		decls:     make(map[string]declEntry),
		resolving: make(map[string]bool),
		typeCache: make(map[string]types.TypeId),
	}

	ev.SetMatcher(c.matchConditional)
	ev.SetSubstituter(func(id types.TypeId, bindings map[string]types.TypeId) types.TypeId {
		return instantiate.New(in, instantiate.Substitution(bindings)).Instantiate(id)
	})

	if err != nil {
		c.sink.Report(diag.CategoryError, diag.CodeSyntaxError, c.arena.Pos(root), 0, err.Error())
	}

	return c
}

// Interner exposes the compilation unit's type table, mainly for tests
// that want to assert on a lowered TypeId directly.
func (c *Checker) Interner() *types.Interner { return c.in }

// Sink returns the diagnostic sink accumulated so far.
func (c *Checker) Sink() *diag.Sink { return c.sink }

// Check runs the full pipeline over the parsed file: it declares every
// top-level type-space name first (so forward references resolve),
// then walks statements checking variable initializers, function
// bodies, and interface heritage, emitting diagnostics as it goes. It
// returns the Sink so callers don't have to thread it through.
func (c *Checker) Check() *diag.Sink {
	c.pushScope()
	defer c.popScope()

	stmts := c.arena.Children(c.root)
	c.collectDecls(stmts)
	for _, s := range stmts {
		c.checkStatement(s)
	}
	return c.sink
}

func (c *Checker) pushScope() { c.scopes = append(c.scopes, make(map[string]types.TypeId)) }
func (c *Checker) popScope()  { c.scopes = c.scopes[:len(c.scopes)-1] }

func (c *Checker) declareValue(name string, id types.TypeId) {
	c.scopes[len(c.scopes)-1][name] = id
}

func (c *Checker) lookupValue(name string) (types.TypeId, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if id, ok := c.scopes[i][name]; ok {
			return id, true
		}
	}
	return types.Invalid, false
}

// pushTypeParamScope brings a declaration's own type parameters into
// scope for type space name resolution while its body (a type alias's
// aliased type, an interface's members, a function's params/return/
// body) is being lowered — without this, `T` inside `Box<T> = T[]`
// would resolve as an unknown type name rather than the parameter.
func (c *Checker) pushTypeParamScope(params []types.TypeId) {
	scope := make(map[string]types.TypeId, len(params))
	for _, p := range params {
		if data, ok := c.in.Lookup(p); ok {
			if tp, isTP := data.(types.TypeParameter); isTP {
				scope[tp.Name] = p
			}
		}
	}
	c.typeParamScopes = append(c.typeParamScopes, scope)
}

func (c *Checker) popTypeParamScope() {
	c.typeParamScopes = c.typeParamScopes[:len(c.typeParamScopes)-1]
}

func (c *Checker) lookupTypeParam(name string) (types.TypeId, bool) {
	for i := len(c.typeParamScopes) - 1; i >= 0; i-- {
		if id, ok := c.typeParamScopes[i][name]; ok {
			return id, true
		}
	}
	return types.Invalid, false
}

// registerInTypeParamScope adds name directly into the innermost active
// scope. Used by an `infer X` site to make X resolvable by later
// TypeReferences within the same conditional's true branch, the one
// case where a type-space binding is introduced mid-expression rather
// than by a declaration's parameter list.
func (c *Checker) registerInTypeParamScope(name string, id types.TypeId) {
	if len(c.typeParamScopes) == 0 {
		return
	}
	c.typeParamScopes[len(c.typeParamScopes)-1][name] = id
}
