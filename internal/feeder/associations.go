package feeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/ocpizza/feeder/internal/database"
)

type association struct {
	table  string
	sample func() map[string]any
}

// associations lists the five many-to-many relations with their tuple
// samplers. Samplers draw uniformly with replacement from the pool.
func (f *Feeder) associations() []association {
	return []association{
		{
			table: "has_permission_to",
			sample: func() map[string]any {
				return map[string]any{
					"role_id":       f.gen.PickID(f.pool.RoleIDs),
					"permission_id": f.gen.PickID(f.pool.PermissionIDs),
				}
			},
		},
		{
			table: "contains_item",
			sample: func() map[string]any {
				return map[string]any{
					"order_id":       f.gen.PickID(f.pool.TakenOrderIDs),
					"item_id":        f.gen.PickID(f.pool.CatalogItemIDs),
					"quantity":       f.gen.Quantity(1, 10),
					"unit_price_ati": f.gen.Amount(5, 80),
				}
			},
		},
		{
			table: "requires_product",
			sample: func() map[string]any {
				return map[string]any{
					"recipe_id":   f.gen.PickID(f.pool.RecipeIDs()),
					"product_id":  f.gen.PickID(f.pool.ProductIDs),
					"gram_amount": f.gen.Quantity(1, 1000),
				}
			},
		},
		{
			table: "has_product_in_stock",
			sample: func() map[string]any {
				return map[string]any{
					"pizzeria_id": f.gen.PickID(f.pool.PizzeriaIDs),
					"product_id":  f.gen.PickID(f.pool.ProductIDs),
					"quantity":    f.gen.Quantity(1, 100),
				}
			},
		},
		{
			table: "has_keyword",
			sample: func() map[string]any {
				return map[string]any{
					"item_id":    f.gen.PickID(f.pool.CatalogItemIDs),
					"keyword_id": f.gen.PickID(f.pool.KeywordIDs),
				}
			},
		},
	}
}

// populateAssociations makes exactly size insertion attempts per relation.
// Attempts that collide on the composite key are discarded, not retried, so a
// relation ends up with between 0 and size rows. Any other error is fatal.
func (f *Feeder) populateAssociations(ctx context.Context) error {
	for _, assoc := range f.associations() {
		for i := 0; i < f.size; i++ {
			err := f.db.Insert(ctx, assoc.table, assoc.sample())
			if err != nil && !errors.Is(err, database.ErrConflict) {
				return fmt.Errorf("failed to populate %s: %w", assoc.table, err)
			}
		}
	}
	return nil
}
