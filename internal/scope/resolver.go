package scope

import "strings"

// resolveSteps derive lookup keys from a test identifier, tried in order.
// Each step works on the original identifier, not on the previous step's
// output. An empty key means the step does not apply to this identifier.
//
// A test identifier usually has one of these shapes:
//
//	tests/test_beta.py::test_beta0
//	tests/test_delta.py::Delta1::test_delta0
//	tests/test_gamma.py::test_gamma0[param]
//
// so the chain tries the exact identifier, then the identifier without its
// parametrization suffix, then its class, then its file.
var resolveSteps = []func(id string) string{
	func(id string) string { return id },
	stripParams,
	func(id string) string { return stripTail(id, 1) },
	func(id string) string { return stripTail(id, 2) },
}

// Resolve determines the scope key for a test identifier. It is total and
// deterministic: every identifier resolves to a non-empty key. Identifiers
// that match nothing in the table become their own singleton scope, which
// distributes them to whichever node gets there first. Note this means
// sibling parametrizations of an unmapped test stay in separate scopes.
func (m *Mapping) Resolve(id string) string {
	for _, step := range resolveSteps {
		key := step(id)
		if key == "" {
			continue
		}
		if scope, ok := m.scopes[key]; ok && scope != "" {
			return scope
		}
	}
	return id
}

// stripParams removes the parametrization suffix, i.e. everything from the
// first "[" onward.
func stripParams(id string) string {
	i := strings.Index(id, "[")
	if i < 0 {
		return ""
	}
	return id[:i]
}

// stripTail removes the last n "::"-delimited segments.
func stripTail(id string, n int) string {
	parts := strings.Split(id, "::")
	if len(parts) <= n {
		return ""
	}
	return strings.Join(parts[:len(parts)-n], "::")
}
