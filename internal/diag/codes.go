package diag

// Diagnostic codes, taken from the canonical compiler's registry (spec
// §6). Only a subset of the registry is listed, and internal/checker
// emits only some of the codes listed here.
const (
	CodeCannotFindName          = 2304
	CodeModuleNotFound          = 2307
	CodeModuleHasNoExport       = 2305
	CodeModuleHasNoDefaultExport = 2694
	CodeNotAssignable           = 2322
	CodePropertyNotExist        = 2339
	CodePropertyMissing         = 2741
	CodeIndexSignatureMissing   = 2329
	CodePropertyIncompatible    = 2326
	CodePrivateMismatch         = 2325
	CodeOptionalMismatch        = 2412
	CodeTypesOfPropertyIncompatible = 2328
	CodeArityMismatch           = 2345
	CodeStrictPropertyInit      = 2564
	CodeImplicitAny             = 7005
	CodeImplicitAnyParam        = 7006
	CodeNoImplicitReturns       = 7030
	CodeNoUnusedLocal           = 6133
	CodeNoUnusedParameter       = 6138
	CodeRecursionDepthExceeded  = 2321
	CodeExcessiveComplexity     = 2590
	CodeExcessProperty          = 2353
	CodeSyntaxError             = 1002
)

// messages is the templated message table keyed by numeric code. `{0}`,
// `{1}`, ... placeholders are substituted by FormatMessage.
var messages = map[int]string{
	CodeCannotFindName:          "Cannot find name '{0}'.",
	CodeModuleNotFound:          "Cannot find module '{0}' or its corresponding type declarations.",
	CodeModuleHasNoExport:       "Module '{0}' has no exported member '{1}'.",
	CodeModuleHasNoDefaultExport: "Module '{0}' has no default export.",
	CodeNotAssignable:           "Type '{0}' is not assignable to type '{1}'.",
	CodePropertyNotExist:        "Property '{0}' does not exist on type '{1}'.",
	CodePropertyMissing:         "Property '{0}' is missing in type '{1}' but required in type '{2}'.",
	CodeIndexSignatureMissing:   "Index signature for type '{0}' is missing in type '{1}'.",
	CodePropertyIncompatible:    "Types of property '{0}' are incompatible.",
	CodePrivateMismatch:         "Property '{0}' is private in type '{1}' but not in type '{2}'.",
	CodeOptionalMismatch:        "Type '{0}' has an optional property '{1}' that is not present on type '{2}'.",
	CodeTypesOfPropertyIncompatible: "Types of property '{0}' are incompatible.",
	CodeArityMismatch:           "Argument of type '{0}' is not assignable to parameter of type '{1}'.",
	CodeStrictPropertyInit:      "Property '{0}' has no initializer and is not definitely assigned in the constructor.",
	CodeImplicitAny:             "Variable '{0}' implicitly has an 'any' type.",
	CodeImplicitAnyParam:        "Parameter '{0}' implicitly has an 'any' type.",
	CodeNoImplicitReturns:       "Not all code paths return a value.",
	CodeNoUnusedLocal:           "'{0}' is declared but its value is never read.",
	CodeNoUnusedParameter:       "'{0}' is declared but its value is never read.",
	CodeRecursionDepthExceeded:  "Type instantiation is excessively deep and possibly infinite.",
	CodeExcessiveComplexity:     "Expression produces a union type that is too complex to represent.",
	CodeExcessProperty:          "Object literal may only specify known properties, and '{0}' does not exist in type '{1}'.",
	CodeSyntaxError:             "Syntax error: {0}.",
}
