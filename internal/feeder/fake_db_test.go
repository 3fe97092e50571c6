package feeder

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ocpizza/feeder/internal/database"
)

// compositeKeys lists the natural key columns of the association tables; the
// fake gateway raises a conflict when a key repeats, like the real schema.
var compositeKeys = map[string][]string{
	"has_permission_to":    {"role_id", "permission_id"},
	"contains_item":        {"order_id", "item_id"},
	"has_product_in_stock": {"pizzeria_id", "product_id"},
	"requires_product":     {"recipe_id", "product_id"},
	"has_keyword":          {"item_id", "keyword_id"},
}

// fakeDB is an in-memory database.Adapter. It assigns sequential ids,
// remembers every inserted row, and can be told to fail on a given table.
type fakeDB struct {
	nextID    int64
	rows      map[string][]map[string]any
	seen      map[string]map[string]bool
	failTable string
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		rows: make(map[string][]map[string]any),
		seen: make(map[string]map[string]bool),
	}
}

func (d *fakeDB) Connect(ctx context.Context, url string) error { return nil }
func (d *fakeDB) Close() error                                  { return nil }
func (d *fakeDB) Ping(ctx context.Context) error                { return nil }

func (d *fakeDB) InsertReturningID(ctx context.Context, table string, row map[string]any) (int64, error) {
	if table == d.failTable {
		return 0, fmt.Errorf("connection lost")
	}
	d.nextID++
	stored := copyRow(row)
	stored["id"] = d.nextID
	d.rows[table] = append(d.rows[table], stored)
	return d.nextID, nil
}

func (d *fakeDB) Insert(ctx context.Context, table string, row map[string]any) error {
	if table == d.failTable {
		return fmt.Errorf("connection lost")
	}
	if cols, ok := compositeKeys[table]; ok {
		key := rowKey(row, cols)
		if d.seen[table] == nil {
			d.seen[table] = make(map[string]bool)
		}
		if d.seen[table][key] {
			return fmt.Errorf("duplicate key %s in %s: %w", key, table, database.ErrConflict)
		}
		d.seen[table][key] = true
	}
	d.rows[table] = append(d.rows[table], copyRow(row))
	return nil
}

func (d *fakeDB) Update(ctx context.Context, table string, set, where map[string]any) error {
	if table == d.failTable {
		return fmt.Errorf("connection lost")
	}
	for _, row := range d.rows[table] {
		matches := true
		for col, want := range where {
			if row[col] != want {
				matches = false
				break
			}
		}
		if matches {
			for col, val := range set {
				row[col] = val
			}
		}
	}
	return nil
}

func (d *fakeDB) count(table string) int {
	return len(d.rows[table])
}

func (d *fakeDB) ids(table string) map[int64]bool {
	out := make(map[int64]bool)
	for _, row := range d.rows[table] {
		out[row["id"].(int64)] = true
	}
	return out
}

func copyRow(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

func rowKey(row map[string]any, cols []string) string {
	sorted := append([]string(nil), cols...)
	sort.Strings(sorted)
	parts := make([]string, 0, len(sorted))
	for _, col := range sorted {
		parts = append(parts, fmt.Sprintf("%s=%v", col, row[col]))
	}
	return strings.Join(parts, ",")
}
