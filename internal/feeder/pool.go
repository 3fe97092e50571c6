package feeder

// RecipeRef pairs a recipe name with its assigned id; the catalog-item stage
// joins on it 1:1.
type RecipeRef struct {
	Name string
	ID   int64
}

// Pool collects the identifiers assigned by the store during one run. It is
// created empty, appended to as stages complete, and discarded with the run;
// it never carries state across runs. Later stages read only from it, so a
// dependency's ids are always captured before a dependent generator sees
// them.
type Pool struct {
	AddressIDs     []int64
	PizzeriaIDs    []int64
	MemberIDs      []int64
	ProductIDs     []int64
	CatalogItemIDs []int64
	OrderStatusIDs []int64
	TakenOrderIDs  []int64
	KeywordIDs     []int64
	PermissionIDs  []int64
	RoleIDs        []int64

	Recipes []RecipeRef

	// StaffMemberIDs holds the members inserted with a pizzeria affiliation,
	// captured at generation time so phase 2 never has to re-scan the table
	// (which would sweep in rows from earlier runs).
	StaffMemberIDs []int64

	// UserAccounts maps member id to account id for the phase-2 update.
	UserAccounts map[int64]int64
}

func NewPool() *Pool {
	return &Pool{UserAccounts: make(map[int64]int64)}
}

func (p *Pool) RecipeIDs() []int64 {
	ids := make([]int64, 0, len(p.Recipes))
	for _, r := range p.Recipes {
		ids = append(ids, r.ID)
	}
	return ids
}
