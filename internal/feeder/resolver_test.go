package feeder

import (
	"context"
	"errors"
	"testing"
)

func TestResolverRunsExactlyOnce(t *testing.T) {
	db := newFakeDB()
	r := NewResolver(db)
	pool := NewPool()
	gen := NewGenerator(1)

	if r.Linked() {
		t.Fatal("Expected resolver to start unlinked")
	}
	if err := r.Link(context.Background(), pool, gen); err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	if !r.Linked() {
		t.Fatal("Expected resolver to be linked after Link")
	}

	if err := r.Link(context.Background(), pool, gen); !errors.Is(err, ErrAlreadyLinked) {
		t.Errorf("Expected ErrAlreadyLinked on second Link, got %v", err)
	}
}

func TestResolverRequiresRolesForStaff(t *testing.T) {
	db := newFakeDB()
	r := NewResolver(db)
	pool := NewPool()
	pool.StaffMemberIDs = []int64{1, 2}

	err := r.Link(context.Background(), pool, NewGenerator(1))
	if !errors.Is(err, ErrInsufficientInput) {
		t.Errorf("Expected ErrInsufficientInput with staff but no roles, got %v", err)
	}
	if r.Linked() {
		t.Error("Expected resolver to stay unlinked after a failed Link")
	}
}
