package traversal

// PolicyForRoot derives the policy for a root-type resource discovered while
// processing a resource under the given policy. It returns false when roots
// should not be queued at all: documentOnly stops discovery entirely and
// documentAndChildren propagates only to non-root children.
//
// Deep traversal pushes one level further only. Roots reached via deepDeep
// are queued at deepShallow; everything else collapses to shallow, so depth
// never propagates unbounded through roots.
func PolicyForRoot(policy Value) (Value, bool) {
	switch policy.Processing {
	case ProcessDocumentOnly, ProcessDocumentAndChildren:
		return Value{}, false
	}
	next := policy
	if policy.Transitivity == TransitivityDeepDeep {
		next.Transitivity = TransitivityDeepShallow
	} else {
		next.Transitivity = TransitivityShallow
	}
	return next, true
}

// PolicyForChild derives the policy for a non-root child resource. It
// returns false only for documentOnly. Children inherit the current depth
// as-is, except maximal depth collapses to deepShallow one level down.
func PolicyForChild(policy Value) (Value, bool) {
	if policy.Processing == ProcessDocumentOnly {
		return Value{}, false
	}
	next := policy
	if policy.Transitivity == TransitivityDeepDeep {
		next.Transitivity = TransitivityDeepShallow
	}
	return next, true
}
