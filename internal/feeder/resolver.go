package feeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/ocpizza/feeder/internal/database"
)

// ErrAlreadyLinked reports a second Link call on the same resolver; the
// transition runs exactly once per population pass.
var ErrAlreadyLinked = errors.New("members already linked")

// Resolver closes the circular foreign keys left open during phase 1. Members
// are inserted with user_account_id and role_id null (unlinked); once the
// user_account and role stages have run, Link moves them to the linked state
// with one UPDATE per member.
type Resolver struct {
	db     database.Adapter
	linked bool
}

func NewResolver(db database.Adapter) *Resolver {
	return &Resolver{db: db}
}

func (r *Resolver) Linked() bool {
	return r.linked
}

// Link attaches each member's user account, then assigns a uniformly random
// role to every staff member. Non-staff members never receive a role.
func (r *Resolver) Link(ctx context.Context, pool *Pool, gen *Generator) error {
	if r.linked {
		return ErrAlreadyLinked
	}

	for memberID, accountID := range pool.UserAccounts {
		err := r.db.Update(ctx, "member",
			map[string]any{"user_account_id": accountID},
			map[string]any{"id": memberID},
		)
		if err != nil {
			return fmt.Errorf("failed to attach user account %d to member %d: %w", accountID, memberID, err)
		}
	}

	if len(pool.StaffMemberIDs) > 0 && len(pool.RoleIDs) == 0 {
		return fmt.Errorf("link members: no role ids for %d staff members: %w", len(pool.StaffMemberIDs), ErrInsufficientInput)
	}
	for _, memberID := range pool.StaffMemberIDs {
		err := r.db.Update(ctx, "member",
			map[string]any{"role_id": gen.PickID(pool.RoleIDs)},
			map[string]any{"id": memberID},
		)
		if err != nil {
			return fmt.Errorf("failed to assign role to member %d: %w", memberID, err)
		}
	}

	r.linked = true
	return nil
}
