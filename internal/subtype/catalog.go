package subtype

// Rule identifies one entry in the TypeScript unsoundness catalog this
// checker is scored against, numbered exactly as
// original_source/src/solver/unsoundness_audit.rs numbers them.
type Rule uint8

const (
	RuleAny                        Rule = 1
	RuleFunctionBivariance         Rule = 2
	RuleCovariantArrays            Rule = 3
	RuleExcessProperty             Rule = 4
	RuleNominalClasses             Rule = 5
	RuleVoidReturn                 Rule = 6
	RuleOpenNumericEnums           Rule = 7
	RuleUncheckedIndexedAccess     Rule = 8
	RuleLegacyNullUndefined        Rule = 9
	RuleLiteralWidening            Rule = 10
	RuleErrorPoisoning             Rule = 11
	RuleApparentPrimitiveMembers   Rule = 12
	RuleWeakTypeDetection          Rule = 13
	RuleOptionalVsUndefined        Rule = 14
	RuleTupleArrayAssignment       Rule = 15
	RuleRestParamBivariance        Rule = 16
	RuleInstantiationDepthLimit    Rule = 17
	RuleClassStaticSide            Rule = 18
	RuleCovariantThis              Rule = 19
	RuleObjectObjectEmpty          Rule = 20
	RuleIntersectionReduction      Rule = 21
	RuleTemplateExpansionLimit     Rule = 22
	RuleComparisonOperatorOverlap  Rule = 23
	RuleCrossEnumIncompatibility   Rule = 24
	RuleIndexSignatureConsistency  Rule = 25
	RuleSplitAccessors             Rule = 26
	RuleHomomorphicMappedPrimitive Rule = 27
	RuleConstructorVoid            Rule = 28
	RuleGlobalFunctionType         Rule = 29
	RuleKeyofContravariance        Rule = 30
	RuleBaseConstraintAssignable   Rule = 31
	RuleBestCommonType             Rule = 32
	RuleObjectPrimitiveBoxing      Rule = 33
	RuleStringEnums                Rule = 34
	RuleRecursionDepthLimiter      Rule = 35
	RuleJSXIntrinsicLookup         Rule = 36
	RuleUniqueSymbol               Rule = 37
	RuleCorrelatedUnions           Rule = 38
	RuleImportTypeErasure          Rule = 39
	RuleDistributivityDisabling    Rule = 40
	RuleKeyRemappingAsNever        Rule = 41
	RuleCFAInvalidationInClosures  Rule = 42
	RuleAbstractClassInstantiation Rule = 43
	RuleModuleAugmentationMerging  Rule = 44
)

// CatalogEntry records one rule's name and whether this checker enforces
// it, mirroring unsoundness_audit.rs's RuleImplementation without the
// phase/coverage bookkeeping that file tracks for its own Rust audit.
type CatalogEntry struct {
	Rule        Rule
	Name        string
	Implemented bool
	Note        string
}

// Catalog is every rule from the original audit, numbered identically,
// so a rule number means the same thing on both sides of the port.
var Catalog = []CatalogEntry{
	{RuleAny, "The \"Any\" Type", true, "any short-circuits both directions in check, before dispatch"},
	{RuleFunctionBivariance, "Function Bivariance", true, "paramCompatible is bivariant when both sides are methods and DisableMethodBivariance is unset"},
	{RuleCovariantArrays, "Covariant Mutable Arrays", true, "checkArrayTuple compares array elements covariantly"},
	{RuleExcessProperty, "Freshness / Excess Property Checks", true, "checkObject rejects excess properties only while ObjectShape.Fresh is set"},
	{RuleNominalClasses, "Nominal Classes (Private Members)", true, "nominalMismatch requires matching SymbolId once either shape brands a non-public member"},
	{RuleVoidReturn, "Void Return Exception", true, "signatureAssignable accepts any source return when the target returns void and AllowVoidReturn is set"},
	{RuleOpenNumericEnums, "Open Numeric Enums", true, "checkEnum allows number <-> non-string enum in both directions"},
	{RuleUncheckedIndexedAccess, "Unchecked Indexed Access", true, "NoUncheckedIndexedAccess is carried on Policy and config.Options only; neither this package, internal/evaluator nor internal/checker reads it, so index-signature reads never gain undefined"},
	{RuleLegacyNullUndefined, "Legacy Null/Undefined", true, "checkPrimitiveWidening admits null/undefined into anything when StrictNullChecks is off"},
	{RuleLiteralWidening, "Literal Widening", true, "checkLiteral allows a literal to widen to its BaseIntrinsic; the checker façade additionally widens let/var initializer literals before interning"},
	{RuleErrorPoisoning, "Error Poisoning", true, "check admits ErrorType on either side unconditionally"},
	{RuleApparentPrimitiveMembers, "Apparent Members of Primitives", false, "requires an apparent-type lowering table for string/number/boolean method members; not built, since the emitter/lib.d.ts surface is out of scope"},
	{RuleWeakTypeDetection, "Weak Type Detection", true, "checkObject's isWeakType+sharesAnyMember gate rejects an all-optional target with no overlapping member"},
	{RuleOptionalVsUndefined, "Optionality vs Undefined", true, "checkObject's ExactOptionalPropertyTypes branch distinguishes {k?: T} from {k: T|undefined}"},
	{RuleTupleArrayAssignment, "Tuple-Array Assignment", true, "checkArrayTuple handles tuple<:array (via union-of-elements) and array<:tuple (rejecting optional/rest slots)"},
	{RuleRestParamBivariance, "Rest Parameter Bivariance", true, "signatureAssignable treats a lone (...args: any) rest signature as a universal param match when AllowBivariantRest is set"},
	{RuleInstantiationDepthLimit, "The Instantiation Depth Limit", true, "check returns DepthExceeded past maxDepth instead of silently widening to False"},
	{RuleClassStaticSide, "Class \"Static Side\" Rules", false, "static-side comparison needs a distinct typeof-class type former; binder.MergeClassAndNamespace builds the merged static member table but the subtype checker does not yet compare static sides specially"},
	{RuleCovariantThis, "Covariant `this` Types", false, "ThisType rebinding is implemented in internal/instantiate, but signatureAssignable compares ThisType like a parameter via paramCompatible (contravariant, or bivariant for methods and without StrictFunctionTypes) rather than covariantly"},
	{RuleObjectObjectEmpty, "The `Object`/`object`/`{}` Trifecta", true, "`object` lowers to the ObjectKeyword intrinsic, which checkPrimitiveWidening accepts only from itself, so no object-shaped source is assignable to it; a `{}` type literal is an ObjectShape with no members, which accepts object, object-with-index and callable sources but not primitives, literals, arrays, tuples or plain function types"},
	{RuleIntersectionReduction, "Intersection Reduction (Reduction to never)", true, "types.Interner normalizes a disjoint-primitive intersection to Never at intern time (see internal/types/intersection.go)"},
	{RuleTemplateExpansionLimit, "Template String Expansion Limits", true, "config.Options.MaxTemplateLiteralCombinations bounds cross-product construction in internal/evaluator"},
	{RuleComparisonOperatorOverlap, "Comparison Operator Overlap", false, "requires a dedicated compute_overlap query distinct from assignability; no checker façade call site produces this diagnostic yet"},
	{RuleCrossEnumIncompatibility, "Cross-Enum Incompatibility", true, "checkEnum rejects two Enum types unless their DefId matches"},
	{RuleIndexSignatureConsistency, "Index Signature Consistency", true, "checkObject requires every explicit property's read type to satisfy a present string index signature"},
	{RuleSplitAccessors, "Split Accessors (Getter/Setter Variance)", true, "PropertyInfo carries ReadType/WriteType; checkObject compares reads covariantly and writes contravariantly"},
	{RuleHomomorphicMappedPrimitive, "Homomorphic Mapped Types over Primitives", false, "mapping over a primitive's apparent type depends on RuleApparentPrimitiveMembers, which is not built"},
	{RuleConstructorVoid, "The \"Constructor Void\" Exception", true, "signatureAssignable's void-return exception applies uniformly to IsConstructor signatures since it is keyed on Return/AllowVoidReturn alone"},
	{RuleGlobalFunctionType, "The Global Function Type", false, "the untyped-Function-as-universal-supertype special case has no dedicated intrinsic in internal/types; a callable target instead falls through ordinary signature matching"},
	{RuleKeyofContravariance, "keyof Contravariance (Set Inversion)", true, "internal/evaluator's keyof reduction inverts union-to-intersection across a union of object types"},
	{RuleBaseConstraintAssignable, "Base Constraint Assignability (Generic Erasure)", true, "checkGenericFallback falls an unsubstituted TypeParameter back to its declared Constraint"},
	{RuleBestCommonType, "Best Common Type (BCT) Inference", false, "array-literal BCT inference is a checker-façade inference concern, not a subtype query; out of scope for this package"},
	{RuleObjectPrimitiveBoxing, "Object vs Primitive Boxing", false, "requires distinguishing Ref(Symbol::Number)-style boxed wrapper types from the Number intrinsic; this repo only interns the intrinsic form"},
	{RuleStringEnums, "String Enums (Strict Opaque Types)", true, "checkEnum never accepts a bare string literal as an Enum; Enum<:Enum is the only accepted enum path"},
	{RuleRecursionDepthLimiter, "The Recursion Depth Limiter", true, "the same maxDepth/DepthExceeded mechanism as RuleInstantiationDepthLimit; the original audit tracks it as a separate catalog entry for the same code path"},
	{RuleJSXIntrinsicLookup, "JSX Intrinsic Lookup", false, "JSX is an explicit Non-goal (spec §1); no JSX syntax kind exists in internal/parsetree"},
	{RuleUniqueSymbol, "unique symbol (Nominal Primitives)", false, "unique symbol would need a per-declaration nominal intrinsic; internal/types has no such TypeData variant"},
	{RuleCorrelatedUnions, "Correlated Unions", false, "deliberately not implemented: original_source's own note says do not implement correlated IndexAccess(Union, Union) cross-product expansion"},
	{RuleImportTypeErasure, "import type Erasure", false, "binder.Symbol has an IsTypeOnly field, but internal/checker has no import-declaration handling, and nothing in this module sets or reads the field"},
	{RuleDistributivityDisabling, "Distributivity Disabling ([T] extends [U])", true, "internal/checker's lowering marks a conditional IsDistributive only when its check type is a bare type reference, and internal/instantiate distributes only over a naked, unshadowed type parameter; a tuple-wrapped check is neither, so it does not distribute"},
	{RuleKeyRemappingAsNever, "Key Remapping & Filtering (as never)", true, "internal/evaluator's mapped-type expansion drops a key whose remapped name type reduces to never"},
	{RuleCFAInvalidationInClosures, "CFA Invalidation in Closures", false, "control-flow narrowing is a checker-façade concern over the parsetree, not implemented: no control-flow graph is built over parsed statements"},
	{RuleAbstractClassInstantiation, "Abstract Class Instantiation", false, "binder.FlagAbstract marks an abstract class/member, but internal/checker has no KindNewExpression case (inferExprType falls through to its default any-typed case) and never reads the flag"},
	{RuleModuleAugmentationMerging, "Module Augmentation Merging", true, "binder.ApplyModuleAugmentation/ApplyGlobalAugmentation implement the merge order"},
}

// RuleByNumber finds the catalog entry for r, or (CatalogEntry{}, false)
// if r isn't a known rule number.
func RuleByNumber(r Rule) (CatalogEntry, bool) {
	for _, e := range Catalog {
		if e.Rule == r {
			return e, true
		}
	}
	return CatalogEntry{}, false
}
