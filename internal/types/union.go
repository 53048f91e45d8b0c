package types

import "sort"

// discriminantPartitionThreshold is the member count above which Union
// switches from a pairwise O(n^2) redundancy scan to discriminant
// partitioning (spec §4.1 "Partitioning optimization").
const discriminantPartitionThreshold = 16

// discriminantMinCoverage is the fraction of object members a candidate
// discriminant property must appear in to be chosen.
const discriminantMinCoverage = 0.5

// Union interns a flattened, deduplicated, reduced union of members,
// applying every normalization rule from spec §4.1.1 in sequence.
func (in *Interner) Union(members []TypeId) TypeId {
	flat := in.flattenUnion(members)
	flat = in.absorbLiteralsIntoPrimitives(flat)
	flat = in.collapseBooleanPair(flat)
	flat = dedupeIds(flat)

	if len(flat) == 0 {
		return Never
	}
	if len(flat) == 1 {
		return flat[0]
	}

	for _, m := range flat {
		if m == Any {
			return Any
		}
	}

	flat = in.removeRedundantSubtypes(flat)
	if len(flat) == 1 {
		return flat[0]
	}

	sort.Slice(flat, func(i, j int) bool { return flat[i] < flat[j] })
	return in.intern(Union{Members: flat})
}

func (in *Interner) flattenUnion(members []TypeId) []TypeId {
	out := make([]TypeId, 0, len(members))
	for _, m := range members {
		if d, ok := in.Lookup(m); ok {
			if u, ok := d.(Union); ok {
				out = append(out, in.flattenUnion(u.Members)...)
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

// absorbLiteralsIntoPrimitives drops a literal member when its base
// primitive is also present, e.g. `"a" | string -> string`.
func (in *Interner) absorbLiteralsIntoPrimitives(members []TypeId) []TypeId {
	primitives := make(map[TypeId]bool)
	for _, m := range members {
		if lit, ok := in.Lookup(m); ok {
			if _, isLit := lit.(Literal); !isLit {
				primitives[m] = true
			}
		}
	}
	out := make([]TypeId, 0, len(members))
	for _, m := range members {
		if lit, ok := in.Lookup(m); ok {
			if l, isLit := lit.(Literal); isLit && primitives[l.BaseIntrinsic()] {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

// collapseBooleanPair turns `true | false` into `boolean`.
func (in *Interner) collapseBooleanPair(members []TypeId) []TypeId {
	hasTrue, hasFalse := false, false
	for _, m := range members {
		if m == BooleanTrue {
			hasTrue = true
		}
		if m == BooleanFalse {
			hasFalse = true
		}
	}
	if !hasTrue || !hasFalse {
		return members
	}
	out := make([]TypeId, 0, len(members))
	out = append(out, Boolean)
	for _, m := range members {
		if m != BooleanTrue && m != BooleanFalse {
			out = append(out, m)
		}
	}
	return out
}

func dedupeIds(ids []TypeId) []TypeId {
	seen := make(map[TypeId]bool, len(ids))
	out := make([]TypeId, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// removeRedundantSubtypes drops any member that is a shallow-subtype of
// a distinct surviving member, e.g. `1 | number -> number`. Above
// discriminantPartitionThreshold members it partitions by a shared
// discriminant property first and reduces each partition on its own;
// the final pass still compares all survivors pairwise, so the scan
// stays quadratic in the number of survivors.
func (in *Interner) removeRedundantSubtypes(members []TypeId) []TypeId {
	if len(members) > discriminantPartitionThreshold {
		if disc, ok := in.findDiscriminant(members); ok {
			return in.partitionedReduce(members, disc)
		}
	}
	return in.pairwiseReduce(members)
}

func (in *Interner) pairwiseReduce(members []TypeId) []TypeId {
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
			if in.shallowSubtype(members[i], members[j]) {
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

// findDiscriminant picks a property name appearing in at least half of
// the object members of a large union, for use as a partition key.
func (in *Interner) findDiscriminant(members []TypeId) (string, bool) {
	counts := make(map[string]int)
	objectCount := 0
	for _, m := range members {
		d, ok := in.Lookup(m)
		if !ok {
			continue
		}
		obj, ok := d.(Object)
		if !ok {
			continue
		}
		objectCount++
		for _, p := range obj.Shape.Properties {
			counts[p.Name]++
		}
	}
	if objectCount == 0 {
		return "", false
	}
	best, bestCount := "", 0
	for name, c := range counts {
		if c > bestCount {
			best, bestCount = name, c
		}
	}
	if float64(bestCount)/float64(objectCount) < discriminantMinCoverage {
		return "", false
	}
	return best, true
}

// partitionedReduce groups members by the interned value of their
// discriminant property (non-object members and objects lacking the
// property fall into a single "fallback" bucket), reduces each bucket
// with the pairwise scan, then runs the pairwise scan once more over the
// bucket results and the fallback together.
func (in *Interner) partitionedReduce(members []TypeId, discriminant string) []TypeId {
	buckets := make(map[TypeId][]TypeId)
	var fallback []TypeId
	for _, m := range members {
		d, ok := in.Lookup(m)
		obj, isObj := d.(Object)
		if !ok || !isObj {
			fallback = append(fallback, m)
			continue
		}
		key := Invalid
		for _, p := range obj.Shape.Properties {
			if p.Name == discriminant {
				key = p.ReadType
				break
			}
		}
		if key == Invalid {
			fallback = append(fallback, m)
			continue
		}
		buckets[key] = append(buckets[key], m)
	}

	var out []TypeId
	for _, bucket := range buckets {
		out = append(out, in.pairwiseReduce(bucket)...)
	}
	out = append(out, fallback...)
	return in.pairwiseReduce(out)
}
