package checker

import (
	"sort"
	"strconv"
	"strings"

	"github.com/funvibe/tsgo-core/internal/types"
)

// describeMaxDepth bounds the renderer the same way the evaluator and
// subtype checker bound their own traversals — a diagnostic message is
// never worth an unbounded walk over a pathological type graph.
const describeMaxDepth = 12

var intrinsicNames = map[types.TypeId]string{
	types.Any: "any", types.Unknown: "unknown", types.Never: "never",
	types.Void: "void", types.Undefined: "undefined", types.Null: "null",
	types.String: "string", types.Number: "number", types.Boolean: "boolean",
	types.BigInt: "bigint", types.SymbolType: "symbol", types.ObjectKeyword: "object",
	types.BooleanTrue: "true", types.BooleanFalse: "false",
	types.FunctionKeyword: "Function", types.ErrorType: "error",
}

// describeType renders id as the kind of short type string TypeScript's
// own diagnostics quote — enough to disambiguate a mismatch, not a
// full pretty-printer.
func (c *Checker) describeType(id types.TypeId) string {
	return describeAt(c.in, id, 0)
}

func describeAt(in *types.Interner, id types.TypeId, depth int) string {
	if name, ok := intrinsicNames[id]; ok {
		return name
	}
	if depth >= describeMaxDepth {
		return "..."
	}
	data, ok := in.Lookup(id)
	if !ok {
		return "error"
	}

	switch d := data.(type) {
	case types.Literal:
		switch d.ValueKind {
		case types.LiteralString:
			return strconv.Quote(d.String)
		case types.LiteralNumber:
			return strconv.FormatFloat(d.Number, 'g', -1, 64)
		case types.LiteralBoolean:
			if d.Boolean {
				return "true"
			}
			return "false"
		case types.LiteralBigInt:
			return d.BigInt + "n"
		}
		return "literal"

	case types.Array:
		return describeAt(in, d.Element, depth+1) + "[]"

	case types.Tuple:
		parts := make([]string, len(d.Elements))
		for i, e := range d.Elements {
			s := describeAt(in, e.Type, depth+1)
			if e.Rest {
				s = "..." + s
			}
			if e.Optional {
				s += "?"
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, ", ") + "]"

	case types.Object, types.ObjectWithIndex:
		shape := shapeFromData(data)
		if len(shape.Properties) == 0 {
			return "{}"
		}
		names := make([]string, 0, len(shape.Properties))
		for _, p := range shape.Properties {
			names = append(names, p.Name)
		}
		sort.Strings(names)
		if len(names) > 3 {
			names = append(names[:3], "...")
		}
		return "{ " + strings.Join(names, "; ") + " }"

	case types.Function:
		return describeSignature(in, d.Signature, depth)

	case types.Callable:
		if len(d.CallSignatures) > 0 {
			return describeSignature(in, d.CallSignatures[0], depth)
		}
		return "{ ... }"

	case types.Union:
		return describeList(in, d.Members, " | ", depth)

	case types.Intersection:
		return describeList(in, d.Members, " & ", depth)

	case types.TypeParameter:
		return d.Name

	case types.Infer:
		return "infer " + d.Name

	case types.Enum:
		return "enum"

	case types.Conditional:
		return describeAt(in, d.Check, depth+1) + " extends " + describeAt(in, d.Extends, depth+1) +
			" ? " + describeAt(in, d.TrueBranch, depth+1) + " : " + describeAt(in, d.FalseBranch, depth+1)

	case types.Mapped:
		return "{ [" + d.Param + " in " + describeAt(in, d.Constraint, depth+1) + "]: " + describeAt(in, d.Template, depth+1) + " }"

	case types.IndexAccess:
		return describeAt(in, d.Object, depth+1) + "[" + describeAt(in, d.Index, depth+1) + "]"

	case types.KeyOf:
		return "keyof " + describeAt(in, d.Operand, depth+1)

	case types.TemplateLiteral:
		var b strings.Builder
		b.WriteByte('`')
		for _, span := range d.Spans {
			if span.HasType {
				b.WriteString("${")
				b.WriteString(describeAt(in, span.Type, depth+1))
				b.WriteByte('}')
			} else {
				b.WriteString(span.Text)
			}
		}
		b.WriteByte('`')
		return b.String()

	case types.ReadonlyType:
		return "readonly " + describeAt(in, d.Inner, depth+1)

	case types.NoInfer:
		return describeAt(in, d.Inner, depth+1)

	case types.ThisType:
		return "this"

	case types.Recursive:
		return describeAt(in, d.Target, depth+1)

	case types.Error:
		return "error"

	default:
		return "unknown"
	}
}

func shapeFromData(data types.TypeData) types.ObjectShape {
	switch d := data.(type) {
	case types.Object:
		return d.Shape
	case types.ObjectWithIndex:
		return d.Shape
	default:
		return types.ObjectShape{}
	}
}

func describeList(in *types.Interner, members []types.TypeId, sep string, depth int) string {
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = describeAt(in, m, depth+1)
	}
	return strings.Join(parts, sep)
}

func describeSignature(in *types.Interner, sig types.CallSignature, depth int) string {
	params := make([]string, len(sig.Params))
	for i, p := range sig.Params {
		s := p.Name + ": " + describeAt(in, p.Type, depth+1)
		if p.Optional {
			s = p.Name + "?: " + describeAt(in, p.Type, depth+1)
		}
		if p.Rest {
			s = "..." + s
		}
		params[i] = s
	}
	return "(" + strings.Join(params, ", ") + ") => " + describeAt(in, sig.Return, depth+1)
}
