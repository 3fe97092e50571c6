package feeder

import "fmt"

// dependencyGraph orders stages so that every stage runs after the stages it
// depends on. Registration order is preserved among independent stages, which
// keeps runs and tests deterministic.
type dependencyGraph struct {
	names []string
	deps  map[string][]string
}

func newDependencyGraph() *dependencyGraph {
	return &dependencyGraph{deps: make(map[string][]string)}
}

func (g *dependencyGraph) add(name string, deps ...string) {
	if _, exists := g.deps[name]; !exists {
		g.names = append(g.names, name)
	}
	g.deps[name] = deps
}

func (g *dependencyGraph) insertionOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(name string) error {
		if temp[name] {
			return fmt.Errorf("circular dependency detected involving stage: %s", name)
		}
		if visited[name] {
			return nil
		}

		temp[name] = true
		for _, dep := range g.deps[name] {
			if dep == name {
				continue
			}
			if _, known := g.deps[dep]; !known {
				return fmt.Errorf("stage %s depends on unknown stage %s", name, dep)
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		temp[name] = false

		visited[name] = true
		order = append(order, name)
		return nil
	}

	for _, name := range g.names {
		if !visited[name] {
			if err := visit(name); err != nil {
				return nil, err
			}
		}
	}

	return order, nil
}
