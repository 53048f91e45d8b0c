package types

import "sort"

// maxDistributionProduct caps how many combinations intersection-over-
// union distribution may produce before giving up and leaving the
// intersection un-distributed (spec §4.1.2/§3.4).
const maxDistributionProduct = 25

var disjointPrimitives = map[TypeId]bool{
	String: true, Number: true, Boolean: true, BigInt: true, SymbolType: true,
}

// Intersection interns a flattened, deduplicated, reduced intersection
// of conjuncts, applying spec §4.1.2 in sequence.
func (in *Interner) Intersection(members []TypeId) TypeId {
	flat := in.flattenIntersection(members)
	flat = dedupeIds(flat)

	if len(flat) == 0 {
		return Unknown
	}

	for _, m := range flat {
		if m == Never {
			return Never
		}
	}
	flat = removeId(flat, Unknown)
	if len(flat) == 0 {
		return Unknown
	}
	if len(flat) == 1 {
		return flat[0]
	}

	if in.hasDisjointPrimitives(flat) {
		return Never
	}
	if in.hasNullWithNonEmptyObject(flat) {
		return Never
	}
	if in.hasDisjointDiscriminants(flat) {
		return Never
	}

	if distributed, ok := in.distributeOverUnion(flat); ok {
		return distributed
	}

	flat = in.removeRedundantSupertypes(flat)
	if len(flat) == 1 {
		return flat[0]
	}

	sort.Slice(flat, func(i, j int) bool { return flat[i] < flat[j] })
	return in.intern(Intersection{Members: flat})
}

func (in *Interner) flattenIntersection(members []TypeId) []TypeId {
	out := make([]TypeId, 0, len(members))
	for _, m := range members {
		if d, ok := in.Lookup(m); ok {
			if x, ok := d.(Intersection); ok {
				out = append(out, in.flattenIntersection(x.Members)...)
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

func removeId(ids []TypeId, target TypeId) []TypeId {
	out := ids[:0:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

func (in *Interner) hasDisjointPrimitives(members []TypeId) bool {
	seen := TypeId(Invalid)
	for _, m := range members {
		if disjointPrimitives[m] {
			if seen != Invalid && seen != m {
				return true
			}
			seen = m
		}
	}
	return false
}

func (in *Interner) hasNullWithNonEmptyObject(members []TypeId) bool {
	hasNullish := false
	hasNonEmptyObject := false
	for _, m := range members {
		if m == Null || m == Undefined {
			hasNullish = true
		}
		if d, ok := in.Lookup(m); ok {
			if obj, ok := d.(Object); ok && len(obj.Shape.Properties) > 0 {
				hasNonEmptyObject = true
			}
		}
	}
	return hasNullish && hasNonEmptyObject
}

// hasDisjointDiscriminants detects two Object members that share a
// common property name but carry disjoint literal values for it, e.g.
// `{kind: "a"} & {kind: "b"}`.
func (in *Interner) hasDisjointDiscriminants(members []TypeId) bool {
	objects := make([]ObjectShape, 0, len(members))
	for _, m := range members {
		if d, ok := in.Lookup(m); ok {
			if obj, ok := d.(Object); ok {
				objects = append(objects, obj.Shape)
			}
		}
	}
	for i := 0; i < len(objects); i++ {
		for j := i + 1; j < len(objects); j++ {
			if in.shapesDisagreeOnSharedProperty(objects[i], objects[j]) {
				return true
			}
		}
	}
	return false
}

func (in *Interner) shapesDisagreeOnSharedProperty(a, b ObjectShape) bool {
	bByName := make(map[string]TypeId, len(b.Properties))
	for _, p := range b.Properties {
		bByName[p.Name] = p.ReadType
	}
	for _, p := range a.Properties {
		bType, ok := bByName[p.Name]
		if !ok || bType == p.ReadType {
			continue
		}
		aLit, aOk := in.Lookup(p.ReadType)
		bLit, bOk := in.Lookup(bType)
		if !aOk || !bOk {
			continue
		}
		_, aIsLit := aLit.(Literal)
		_, bIsLit := bLit.(Literal)
		if aIsLit && bIsLit {
			return true
		}
	}
	return false
}

// distributeOverUnion expands `A & (B | C)` to `(A & B) | (A & C)` when
// exactly one member is a Union and the resulting product stays within
// maxDistributionProduct.
func (in *Interner) distributeOverUnion(members []TypeId) (TypeId, bool) {
	unionIdx := -1
	for i, m := range members {
		if d, ok := in.Lookup(m); ok {
			if _, isUnion := d.(Union); isUnion {
				if unionIdx != -1 {
					// More than one union member: distributing both would
					// multiply the product further; bail to the plain
					// intersection form rather than risk the cap.
					return Invalid, false
				}
				unionIdx = i
			}
		}
	}
	if unionIdx == -1 {
		return Invalid, false
	}
	unionData := in.MustLookup(members[unionIdx]).(Union)
	if len(unionData.Members) > maxDistributionProduct {
		return Invalid, false
	}

	results := make([]TypeId, 0, len(unionData.Members))
	for _, um := range unionData.Members {
		combo := make([]TypeId, 0, len(members))
		for i, m := range members {
			if i == unionIdx {
				combo = append(combo, um)
			} else {
				combo = append(combo, m)
			}
		}
		results = append(results, in.Intersection(combo))
	}
	return in.Union(results), true
}

func (in *Interner) removeRedundantSupertypes(members []TypeId) []TypeId {
	keep := make([]bool, len(members))
	for i := range members {
		keep[i] = true
	}
	for i := range members {
		if !keep[i] {
			continue
		}
		for j := range members {
			if i == j || !keep[j] {
				continue
			}
			if members[i] == members[j] {
				continue
			}
			// member i is redundant if member j is a subtype of it (j
			// already implies i).
			if in.shallowSubtype(members[j], members[i]) {
				keep[i] = false
				break
			}
		}
	}
	out := make([]TypeId, 0, len(members))
	for i, k := range keep {
		if k {
			out = append(out, members[i])
		}
	}
	return out
}
