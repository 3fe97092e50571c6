package feeder

import "time"

// Each entity maps itself to a column→value row via Row(); rows feed the
// gateway's parameterized statements, so fields are always bound by name.

type Address struct {
	StreetName string
	HomeNumber string
	ZipCode    string
	Country    string
}

func (a Address) Row() map[string]any {
	return map[string]any{
		"street_name": a.StreetName,
		"home_number": a.HomeNumber,
		"zip_code":    a.ZipCode,
		"country":     a.Country,
	}
}

type Pizzeria struct {
	Name      string
	PhoneNB   string
	AddressID *int64
}

func (p Pizzeria) Row() map[string]any {
	return map[string]any{
		"name":       p.Name,
		"phone_nb":   p.PhoneNB,
		"address_id": nullable(p.AddressID),
	}
}

type Member struct {
	Name              string
	Firstname         string
	WorksAtPizzeriaID *int64
	UserAccountID     *int64 // filled in phase 2
	AddressID         int64
}

func (m Member) Row() map[string]any {
	return map[string]any{
		"name":                 m.Name,
		"firstname":            m.Firstname,
		"works_at_pizzeria_id": nullable(m.WorksAtPizzeriaID),
		"user_account_id":      nullable(m.UserAccountID),
		"address_id":           m.AddressID,
	}
}

// IsStaff reports whether the member works at a pizzeria. Only staff members
// receive a role in phase 2.
func (m Member) IsStaff() bool {
	return m.WorksAtPizzeriaID != nil
}

type UserAccount struct {
	Email     string
	PhoneNB   string
	MemberID  int64
	HashedPwd string
}

func (u UserAccount) Row() map[string]any {
	return map[string]any{
		"email":      u.Email,
		"phone_nb":   u.PhoneNB,
		"member_id":  u.MemberID,
		"hashed_pwd": u.HashedPwd,
	}
}

type Recipe struct {
	Name        string
	Description string
	IsPublic    bool
}

func (r Recipe) Row() map[string]any {
	return map[string]any{
		"name":        r.Name,
		"description": r.Description,
		"is_public":   r.IsPublic,
	}
}

type Product struct {
	Name         string
	Barcode      string
	GramWeight   int
	UnitPriceATI float64
}

func (p Product) Row() map[string]any {
	return map[string]any{
		"name":           p.Name,
		"barcode":        p.Barcode,
		"gram_weight":    p.GramWeight,
		"unit_price_ati": p.UnitPriceATI,
	}
}

// CatalogParent is the parent of a catalog item: either a recipe or a
// product, never both, never neither. The sealed two-variant union makes the
// invariant structural.
type CatalogParent interface {
	parentIDs() (recipeID, productID any)
}

type RecipeLink struct{ ID int64 }

func (r RecipeLink) parentIDs() (any, any) { return r.ID, nil }

type ProductLink struct{ ID int64 }

func (p ProductLink) parentIDs() (any, any) { return nil, p.ID }

type CatalogItem struct {
	Name         string
	Description  string
	PictureFile  string
	UnitPriceATI float64
	IsAvailable  bool
	IsDisplayed  bool
	Parent       CatalogParent
}

func (c CatalogItem) Row() map[string]any {
	recipeID, productID := c.Parent.parentIDs()
	return map[string]any{
		"name":           c.Name,
		"description":    c.Description,
		"picture_file":   c.PictureFile,
		"unit_price_ati": c.UnitPriceATI,
		"is_available":   c.IsAvailable,
		"is_displayed":   c.IsDisplayed,
		"recipe_id":      recipeID,
		"product_id":     productID,
	}
}

type OrderStatus struct {
	Label string
}

func (o OrderStatus) Row() map[string]any {
	return map[string]any{"label": o.Label}
}

type TakenOrder struct {
	MemberID   int64
	AddressID  int64
	PizzeriaID int64
	StatusID   int64
	IsPaid     bool
	BillID     *int64
}

func (t TakenOrder) Row() map[string]any {
	return map[string]any{
		"member_id":   t.MemberID,
		"address_id":  t.AddressID,
		"pizzeria_id": t.PizzeriaID,
		"status_id":   t.StatusID,
		"is_paid":     t.IsPaid,
		"bill_id":     nullable(t.BillID),
	}
}

type Bill struct {
	EmissionDate   time.Time
	TotalAmountATI float64
	OrderID        int64
}

func (b Bill) Row() map[string]any {
	return map[string]any{
		"emission_date":   b.EmissionDate,
		"total_amout_ati": b.TotalAmountATI,
		"order_id":        b.OrderID,
	}
}

type Keyword struct {
	Name string
}

func (k Keyword) Row() map[string]any {
	return map[string]any{"name": k.Name}
}

type Permission struct {
	Label string
}

func (p Permission) Row() map[string]any {
	return map[string]any{"label": p.Label}
}

type Role struct {
	Name string
}

func (r Role) Row() map[string]any {
	return map[string]any{"name": r.Name}
}

// nullable converts an optional id to an untyped nil for NULL binding.
func nullable(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
