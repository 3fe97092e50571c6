package feeder

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/ocpizza/feeder/internal/database"
)

// Feeder runs one population pass: every table in foreign-key dependency
// order, then the phase-2 member updates, then the association tables. Any
// gateway error other than a tolerated association conflict aborts the run;
// rows already committed stay in place.
type Feeder struct {
	db       database.Adapter
	gen      *Generator
	pool     *Pool
	resolver *Resolver
	size     int
}

type stage struct {
	name  string
	label string
	deps  []string
	run   func(ctx context.Context) error
}

func New(db database.Adapter, gen *Generator, size int) *Feeder {
	return &Feeder{
		db:       db,
		gen:      gen,
		pool:     NewPool(),
		resolver: NewResolver(db),
		size:     size,
	}
}

// Pool exposes the identifiers captured so far.
func (f *Feeder) Pool() *Pool {
	return f.pool
}

func (f *Feeder) Populate(ctx context.Context) error {
	start := time.Now()
	color.Cyan("START")

	stages := f.stages()
	graph := newDependencyGraph()
	for _, s := range stages {
		graph.add(s.name, s.deps...)
	}
	order, err := graph.insertionOrder()
	if err != nil {
		return fmt.Errorf("failed to build insertion order: %w", err)
	}

	byName := make(map[string]stage, len(stages))
	for _, s := range stages {
		byName[s.name] = s
	}

	for _, name := range order {
		s := byName[name]
		color.Cyan("INSERTING %s", s.label)
		if err := s.run(ctx); err != nil {
			return fmt.Errorf("failed to populate %s: %w", s.name, err)
		}
	}

	color.Cyan("UPDATING MEMBERS USER ACCOUNTS AND ROLES")
	if err := f.resolver.Link(ctx, f.pool, f.gen); err != nil {
		return err
	}

	color.Cyan("POPULATING ASSOCIATIVE ENTITIES")
	if err := f.populateAssociations(ctx); err != nil {
		return err
	}

	color.Green("END (%.2f sec.)", time.Since(start).Seconds())
	return nil
}

// stages declares the per-table population steps and their foreign-key
// dependencies. The member↔user_account and member↔role cycles are absent
// here: those back-references stay null until the resolver runs.
func (f *Feeder) stages() []stage {
	return []stage{
		{name: "address", label: "ADDRESSES", run: f.insertAddresses},
		{name: "pizzeria", label: "PIZZERIAS", deps: []string{"address"}, run: f.insertPizzerias},
		{name: "member", label: "MEMBERS", deps: []string{"address", "pizzeria"}, run: f.insertMembers},
		{name: "user_account", label: "USER ACCOUNTS", deps: []string{"member"}, run: f.insertUserAccounts},
		{name: "recipe", label: "RECIPES", run: f.insertRecipes},
		{name: "product", label: "PRODUCTS", run: f.insertProducts},
		{name: "catalog_item", label: "CATALOG ITEMS", deps: []string{"recipe"}, run: f.insertCatalogItems},
		{name: "order_status", label: "ORDER STATUS", run: f.insertOrderStatuses},
		{name: "taken_order", label: "TAKEN ORDERS", deps: []string{"member", "address", "pizzeria", "order_status"}, run: f.insertTakenOrders},
		{name: "bill", label: "BILLS", deps: []string{"taken_order"}, run: f.insertBills},
		{name: "keyword", label: "KEYWORDS", run: f.insertKeywords},
		{name: "permission", label: "PERMISSIONS", run: f.insertPermissions},
		{name: "role", label: "ROLES", run: f.insertRoles},
	}
}

func (f *Feeder) insertAddresses(ctx context.Context) error {
	for _, address := range f.gen.Addresses(f.size) {
		id, err := f.db.InsertReturningID(ctx, "address", address.Row())
		if err != nil {
			return err
		}
		f.pool.AddressIDs = append(f.pool.AddressIDs, id)
	}
	return nil
}

func (f *Feeder) insertPizzerias(ctx context.Context) error {
	for _, pizzeria := range f.gen.Pizzerias(f.pool.AddressIDs) {
		id, err := f.db.InsertReturningID(ctx, "pizzeria", pizzeria.Row())
		if err != nil {
			return err
		}
		f.pool.PizzeriaIDs = append(f.pool.PizzeriaIDs, id)
	}
	return nil
}

func (f *Feeder) insertMembers(ctx context.Context) error {
	members, err := f.gen.Members(f.pool.AddressIDs, f.pool.PizzeriaIDs, f.size)
	if err != nil {
		return err
	}
	for _, member := range members {
		id, err := f.db.InsertReturningID(ctx, "member", member.Row())
		if err != nil {
			return err
		}
		f.pool.MemberIDs = append(f.pool.MemberIDs, id)
		if member.IsStaff() {
			f.pool.StaffMemberIDs = append(f.pool.StaffMemberIDs, id)
		}
	}
	return nil
}

func (f *Feeder) insertUserAccounts(ctx context.Context) error {
	accounts, err := f.gen.UserAccounts(f.pool.MemberIDs, f.size)
	if err != nil {
		return err
	}
	for _, account := range accounts {
		id, err := f.db.InsertReturningID(ctx, "user_account", account.Row())
		if err != nil {
			return err
		}
		f.pool.UserAccounts[account.MemberID] = id
	}
	return nil
}

func (f *Feeder) insertRecipes(ctx context.Context) error {
	for _, recipe := range f.gen.Recipes() {
		id, err := f.db.InsertReturningID(ctx, "recipe", recipe.Row())
		if err != nil {
			return err
		}
		f.pool.Recipes = append(f.pool.Recipes, RecipeRef{Name: recipe.Name, ID: id})
	}
	return nil
}

func (f *Feeder) insertProducts(ctx context.Context) error {
	for _, product := range f.gen.Products() {
		id, err := f.db.InsertReturningID(ctx, "product", product.Row())
		if err != nil {
			return err
		}
		f.pool.ProductIDs = append(f.pool.ProductIDs, id)
	}
	return nil
}

func (f *Feeder) insertCatalogItems(ctx context.Context) error {
	for _, item := range f.gen.CatalogItems(f.pool.Recipes) {
		id, err := f.db.InsertReturningID(ctx, "catalog_item", item.Row())
		if err != nil {
			return err
		}
		f.pool.CatalogItemIDs = append(f.pool.CatalogItemIDs, id)
	}
	return nil
}

func (f *Feeder) insertOrderStatuses(ctx context.Context) error {
	for _, status := range f.gen.OrderStatuses() {
		id, err := f.db.InsertReturningID(ctx, "order_status", status.Row())
		if err != nil {
			return err
		}
		f.pool.OrderStatusIDs = append(f.pool.OrderStatusIDs, id)
	}
	return nil
}

func (f *Feeder) insertTakenOrders(ctx context.Context) error {
	orders, err := f.gen.TakenOrders(
		f.pool.MemberIDs, f.pool.AddressIDs,
		f.pool.PizzeriaIDs, f.pool.OrderStatusIDs, f.size,
	)
	if err != nil {
		return err
	}
	for _, order := range orders {
		id, err := f.db.InsertReturningID(ctx, "taken_order", order.Row())
		if err != nil {
			return err
		}
		f.pool.TakenOrderIDs = append(f.pool.TakenOrderIDs, id)
	}
	return nil
}

func (f *Feeder) insertBills(ctx context.Context) error {
	bills, err := f.gen.Bills(f.pool.TakenOrderIDs, f.size)
	if err != nil {
		return err
	}
	for _, bill := range bills {
		if _, err := f.db.InsertReturningID(ctx, "bill", bill.Row()); err != nil {
			return err
		}
	}
	return nil
}

func (f *Feeder) insertKeywords(ctx context.Context) error {
	for _, keyword := range f.gen.Keywords() {
		id, err := f.db.InsertReturningID(ctx, "keyword", keyword.Row())
		if err != nil {
			return err
		}
		f.pool.KeywordIDs = append(f.pool.KeywordIDs, id)
	}
	return nil
}

func (f *Feeder) insertPermissions(ctx context.Context) error {
	for _, permission := range f.gen.Permissions() {
		id, err := f.db.InsertReturningID(ctx, "permission", permission.Row())
		if err != nil {
			return err
		}
		f.pool.PermissionIDs = append(f.pool.PermissionIDs, id)
	}
	return nil
}

func (f *Feeder) insertRoles(ctx context.Context) error {
	for _, role := range f.gen.Roles() {
		id, err := f.db.InsertReturningID(ctx, "role", role.Row())
		if err != nil {
			return err
		}
		f.pool.RoleIDs = append(f.pool.RoleIDs, id)
	}
	return nil
}
