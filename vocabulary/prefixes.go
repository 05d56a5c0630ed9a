package vocabulary

import (
	"fmt"
	"strings"
)

// Prefixes is an ordered prefix→namespace table. Binding order is preserved
// so expansion and serialization stay deterministic across runs. Expanding a
// compact identifier with an unregistered prefix leaves the value untouched
// and records a warning, once per prefix; silent pass-through tends to hide
// configuration typos.
type Prefixes struct {
	bindings map[string]string
	order    []string
	warned   map[string]bool
	warnings []string
}

// NewPrefixes returns an empty prefix table.
func NewPrefixes() *Prefixes {
	return &Prefixes{
		bindings: make(map[string]string),
		warned:   make(map[string]bool),
	}
}

// Bind registers a namespace under a short prefix. Rebinding an existing
// prefix replaces its namespace but keeps its original position.
func (p *Prefixes) Bind(prefix, namespace string) {
	if _, ok := p.bindings[prefix]; !ok {
		p.order = append(p.order, prefix)
	}
	p.bindings[prefix] = namespace
}

// Lookup returns the namespace bound to prefix.
func (p *Prefixes) Lookup(prefix string) (string, bool) {
	ns, ok := p.bindings[prefix]
	return ns, ok
}

// Expand resolves a compact identifier of the form prefix:local against the
// table. Values without a colon are already absolute and come back unchanged,
// as do absolute IRIs (://). An unregistered prefix passes through unchanged
// and is recorded on the warning list.
func (p *Prefixes) Expand(curie string) string {
	prefix, local, ok := strings.Cut(curie, ":")
	if !ok {
		return curie
	}
	if ns, bound := p.bindings[prefix]; bound {
		return ns + local
	}
	if !strings.HasPrefix(local, "//") {
		p.warn(prefix, curie)
	}
	return curie
}

// ExpandAll expands every compact identifier in values.
func (p *Prefixes) ExpandAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = p.Expand(v)
	}
	return out
}

// Each calls fn for every binding in registration order.
func (p *Prefixes) Each(fn func(prefix, namespace string)) {
	for _, prefix := range p.order {
		fn(prefix, p.bindings[prefix])
	}
}

// Len returns the number of registered prefixes.
func (p *Prefixes) Len() int {
	return len(p.order)
}

// Warnings returns the expansion warnings collected so far.
func (p *Prefixes) Warnings() []string {
	return p.warnings
}

func (p *Prefixes) warn(prefix, curie string) {
	if p.warned[prefix] {
		return
	}
	p.warned[prefix] = true
	p.warnings = append(p.warnings, fmt.Sprintf("unknown prefix %q in %q, value kept as written", prefix, curie))
}
