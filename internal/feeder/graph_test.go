package feeder

import (
	"strings"
	"testing"
)

func TestInsertionOrderRespectsDependencies(t *testing.T) {
	g := newDependencyGraph()
	g.add("address")
	g.add("pizzeria", "address")
	g.add("member", "address", "pizzeria")
	g.add("user_account", "member")
	g.add("taken_order", "member", "address", "pizzeria")

	order, err := g.insertionOrder()
	if err != nil {
		t.Fatalf("insertionOrder failed: %v", err)
	}

	index := make(map[string]int)
	for i, name := range order {
		index[name] = i
	}
	deps := map[string][]string{
		"pizzeria":     {"address"},
		"member":       {"address", "pizzeria"},
		"user_account": {"member"},
		"taken_order":  {"member", "address", "pizzeria"},
	}
	for name, wants := range deps {
		for _, dep := range wants {
			if index[dep] >= index[name] {
				t.Errorf("Expected %s before %s, got order %v", dep, name, order)
			}
		}
	}
}

func TestInsertionOrderPreservesRegistrationOrder(t *testing.T) {
	g := newDependencyGraph()
	g.add("recipe")
	g.add("product")
	g.add("keyword")

	order, err := g.insertionOrder()
	if err != nil {
		t.Fatalf("insertionOrder failed: %v", err)
	}
	if strings.Join(order, ",") != "recipe,product,keyword" {
		t.Errorf("Expected registration order for independent stages, got %v", order)
	}
}

func TestInsertionOrderDetectsCycle(t *testing.T) {
	g := newDependencyGraph()
	g.add("member", "user_account")
	g.add("user_account", "member")

	if _, err := g.insertionOrder(); err == nil {
		t.Error("Expected an error for a circular dependency")
	}
}

func TestInsertionOrderRejectsUnknownDependency(t *testing.T) {
	g := newDependencyGraph()
	g.add("bill", "taken_order")

	if _, err := g.insertionOrder(); err == nil {
		t.Error("Expected an error for a dependency on an unknown stage")
	}
}

func TestFeederStagesFormValidGraph(t *testing.T) {
	f := New(newFakeDB(), NewGenerator(1), 5)

	g := newDependencyGraph()
	for _, s := range f.stages() {
		g.add(s.name, s.deps...)
	}
	order, err := g.insertionOrder()
	if err != nil {
		t.Fatalf("Feeder stage graph is invalid: %v", err)
	}
	if len(order) != len(f.stages()) {
		t.Errorf("Expected %d stages in order, got %d", len(f.stages()), len(order))
	}
}
