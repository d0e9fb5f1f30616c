package gen

import "slices"

// IndexModule is the name of the aggregated module.
const IndexModule = "index"

// Graph is the in-memory registry of generated modules. Modules are
// enumerated in insertion order; re-adding a name replaces the module in
// place. A Graph is not safe for concurrent mutation.
type Graph struct {
	order   []string
	modules map[string]*Module
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{modules: make(map[string]*Module)}
}

// Add registers m, replacing any module with the same name.
func (g *Graph) Add(m *Module) {
	if _, ok := g.modules[m.Name]; !ok {
		g.order = append(g.order, m.Name)
	}
	g.modules[m.Name] = m
}

// Remove deletes the module called name. It reports whether it existed.
func (g *Graph) Remove(name string) bool {
	if _, ok := g.modules[name]; !ok {
		return false
	}
	delete(g.modules, name)
	g.order = slices.DeleteFunc(g.order, func(n string) bool { return n == name })
	return true
}

// Module returns the module called name, or nil.
func (g *Graph) Module(name string) *Module {
	return g.modules[name]
}

// Names returns the module names in insertion order.
func (g *Graph) Names() []string {
	return slices.Clone(g.order)
}

// Modules returns the modules in insertion order.
func (g *Graph) Modules() []*Module {
	ms := make([]*Module, 0, len(g.order))
	for _, n := range g.order {
		ms = append(ms, g.modules[n])
	}
	return ms
}

// Entities returns the modules synthesized from content types, in
// insertion order.
func (g *Graph) Entities() []*Module {
	var ms []*Module
	for _, n := range g.order {
		if m := g.modules[n]; m.Entity != "" && n != IndexModule {
			ms = append(ms, m)
		}
	}
	return ms
}

// Len returns the number of modules.
func (g *Graph) Len() int {
	return len(g.order)
}
