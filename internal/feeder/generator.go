package feeder

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
)

// ErrInsufficientInput reports that a generator was asked for more rows than
// its foreign-key pool supports. It is raised before any row of the stage is
// inserted.
var ErrInsufficientInput = errors.New("not enough identifiers for requested batch size")

// Fixed catalogs. Entities with a hard-coded list always produce exactly one
// row per name, regardless of batch size.
var pizzeriaNames = []string{
	"OC Pizza #1", "OC Pizza bis", "The Best of OC Pizza",
	"OC Pizza Original", "OC Pizza's",
}

var productNames = []string{
	"farine de blé", "tomate pelée", "pulpe de tomate",
	"mozzarella", "ananas", "parmesan", "viande hachée de boeuf",
	"saumon", "fromage de chèvre", "artichaut", "poivron",
	"thon", "oignon", "ail", "pâte", "oeuf", "mélange fruits de mer",
	"jambon", "jambon sec", "chorizo", "truffe", "petit pois",
	"viande de boeuf", "moule", "palourde", "coque",
	"farine d'épeautre", "langoustine", "écrevisse", "crevette rose",
	"crevette grise", "olive", "roquette", "basilic", "champignon",
}

var recipeNames = []string{
	"Spaghetti bolognaise", "Pizza regina", "Pizza calzone",
	"Pizza quatre saisons", "Pizza de la mer", "Ravioles au crabe",
	"Tagliatelle au saumon", "Pizza Margarita", "Pizza hawaïenne",
	"Pâtes à la carbonara", "Risotto à la truffe", "Minestrone",
	"Linguine aux fruits de mer", "Pâtes au pesto", "Lasagne",
	"Lasagne végétarienne", "Raviolis quatre fromages",
	"Escalope à la milanaise", "Carpaccio de boeuf",
	"Pizza chèvre miel", "Pizza végétarienne", "Pizza napolitaine",
}

var orderStatusLabels = []string{
	"Panier", "En cours", "En attente", "Terminée",
}

var keywordNames = []string{
	"pizza", "pâtes", "végétarien", "poisson", "viande",
	"champignon", "spaghetti", "macaroni", "tagliatelle",
	"fromage", "chèvre", "artichaut", "parmesan", "gruyère",
	"tomate", "poivron", "thon", "saumon", "carbonara",
	"moule", "palourde", "crevette", "langoustine", "écrevisse",
	"porc", "boeuf", "poulet", "volaille", "oignon", "ail",
	"napolitain", "truffe", "veau", "pesto", "riz",
}

var permissionLabels = []string{
	"Modifier compte", "Créer compte", "Créer commande",
	"Consulter commande tierse", "Modifier compte tiers",
}

var roleNames = []string{
	"Client", "Gestionnaire", "Pizzaïolo", "Livreur",
	"Opérateur de commande",
}

var (
	streetPattern = regexp.MustCompile(`^(\d+),?\s*(.*)$`)
	nonDigit      = regexp.MustCompile(`\D`)
)

// Generator produces fake entity records. It owns its randomness so runs are
// reproducible under a fixed seed and safe in parallel tests.
type Generator struct {
	faker *gofakeit.Faker
	rand  *rand.Rand
}

// NewGenerator returns a generator seeded with seed; 0 seeds from the clock.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		faker: gofakeit.New(seed),
		rand:  rand.New(rand.NewSource(seed)),
	}
}

func (g *Generator) Addresses(size int) []Address {
	addresses := make([]Address, 0, size)
	for i := 0; i < size; i++ {
		home, street := g.splitStreet(g.faker.Street())
		addresses = append(addresses, Address{
			StreetName: street,
			HomeNumber: home,
			ZipCode:    strings.ReplaceAll(g.faker.Zip(), " ", ""),
			Country:    "France",
		})
	}
	return addresses
}

// splitStreet parses a one-line street as "<number>, <street>". When the line
// does not match, a house number is synthesized instead of failing.
func (g *Generator) splitStreet(line string) (home, street string) {
	if m := streetPattern.FindStringSubmatch(line); m != nil {
		return m[1], strings.TrimSpace(m[2])
	}
	return strconv.Itoa(g.faker.Number(1, 999)), strings.TrimSpace(line)
}

// Pizzerias yields the five OC Pizza stores. When fewer than five address ids
// are supplied, the slots are padded with nulls and shuffled, so some stores
// end up without an address rather than the run failing.
func (g *Generator) Pizzerias(addressIDs []int64) []Pizzeria {
	slots := make([]*int64, 0, len(addressIDs)+len(pizzeriaNames))
	for _, id := range addressIDs {
		v := id
		slots = append(slots, &v)
	}
	if len(slots) < len(pizzeriaNames) {
		for i := 0; i < len(pizzeriaNames); i++ {
			slots = append(slots, nil)
		}
		g.rand.Shuffle(len(slots), func(i, j int) {
			slots[i], slots[j] = slots[j], slots[i]
		})
	}

	pizzerias := make([]Pizzeria, 0, len(pizzeriaNames))
	for i, name := range pizzeriaNames {
		pizzerias = append(pizzerias, Pizzeria{
			Name:      name,
			PhoneNB:   g.localPhone(),
			AddressID: slots[i],
		})
	}
	return pizzerias
}

// Members assigns each member a distinct address. Staff affiliation is drawn
// from a pizzeria-id list where every entry was coin-flipped to null, so
// roughly half the samples land on no store; user_account_id and role_id stay
// null until phase 2.
func (g *Generator) Members(addressIDs, pizzeriaIDs []int64, size int) ([]Member, error) {
	if len(addressIDs) < size {
		return nil, fmt.Errorf("members: %d address ids for %d rows: %w", len(addressIDs), size, ErrInsufficientInput)
	}

	staffSlots := make([]*int64, len(pizzeriaIDs))
	for i, id := range pizzeriaIDs {
		if g.faker.Bool() {
			v := id
			staffSlots[i] = &v
		}
	}
	addresses := g.shuffled(addressIDs)

	members := make([]Member, 0, size)
	for i := 0; i < size; i++ {
		var worksAt *int64
		if len(staffSlots) > 0 {
			worksAt = staffSlots[g.rand.Intn(len(staffSlots))]
		}
		members = append(members, Member{
			Name:              g.faker.LastName(),
			Firstname:         g.faker.FirstName(),
			WorksAtPizzeriaID: worksAt,
			AddressID:         addresses[i],
		})
	}
	return members, nil
}

// UserAccounts builds one account per distinct member (1:1).
func (g *Generator) UserAccounts(memberIDs []int64, size int) ([]UserAccount, error) {
	if len(memberIDs) < size {
		return nil, fmt.Errorf("user accounts: %d member ids for %d rows: %w", len(memberIDs), size, ErrInsufficientInput)
	}

	members := g.shuffled(memberIDs)
	accounts := make([]UserAccount, 0, size)
	for i := 0; i < size; i++ {
		hash, err := bcrypt.GenerateFromPassword(
			[]byte(g.faker.Password(true, true, true, true, false, 15)),
			bcrypt.DefaultCost,
		)
		if err != nil {
			return nil, fmt.Errorf("user accounts: hash password: %w", err)
		}
		accounts = append(accounts, UserAccount{
			Email:     g.faker.Email(),
			PhoneNB:   g.localPhone(),
			MemberID:  members[i],
			HashedPwd: string(hash),
		})
	}
	return accounts, nil
}

func (g *Generator) Recipes() []Recipe {
	recipes := make([]Recipe, 0, len(recipeNames))
	for _, name := range recipeNames {
		recipes = append(recipes, Recipe{
			Name:        name,
			Description: g.faker.Paragraph(1, 3, 12, " "),
			IsPublic:    g.faker.Bool(),
		})
	}
	return recipes
}

func (g *Generator) Products() []Product {
	products := make([]Product, 0, len(productNames))
	for _, name := range productNames {
		products = append(products, Product{
			Name:         name,
			Barcode:      g.ean13(),
			GramWeight:   g.faker.Number(20, 2000) * 5,
			UnitPriceATI: g.faker.Price(1, 100),
		})
	}
	return products
}

// CatalogItems creates one recipe-linked item per recipe, in recipe order.
func (g *Generator) CatalogItems(recipes []RecipeRef) []CatalogItem {
	items := make([]CatalogItem, 0, len(recipes))
	for _, recipe := range recipes {
		items = append(items, CatalogItem{
			Name:         recipe.Name,
			Description:  g.faker.Sentence(10),
			PictureFile:  g.faker.Word() + ".jpg",
			UnitPriceATI: g.faker.Price(1, 100),
			IsAvailable:  g.faker.Bool(),
			IsDisplayed:  g.faker.Bool(),
			Parent:       RecipeLink{ID: recipe.ID},
		})
	}
	return items
}

func (g *Generator) OrderStatuses() []OrderStatus {
	statuses := make([]OrderStatus, 0, len(orderStatusLabels))
	for _, label := range orderStatusLabels {
		statuses = append(statuses, OrderStatus{Label: label})
	}
	return statuses
}

// TakenOrders samples member, address, pizzeria and status with replacement.
func (g *Generator) TakenOrders(memberIDs, addressIDs, pizzeriaIDs, statusIDs []int64, size int) ([]TakenOrder, error) {
	if len(memberIDs) < size {
		return nil, fmt.Errorf("taken orders: %d member ids for %d rows: %w", len(memberIDs), size, ErrInsufficientInput)
	}
	if len(addressIDs) < size {
		return nil, fmt.Errorf("taken orders: %d address ids for %d rows: %w", len(addressIDs), size, ErrInsufficientInput)
	}

	orders := make([]TakenOrder, 0, size)
	for i := 0; i < size; i++ {
		orders = append(orders, TakenOrder{
			MemberID:   g.PickID(memberIDs),
			AddressID:  g.PickID(addressIDs),
			PizzeriaID: g.PickID(pizzeriaIDs),
			StatusID:   g.PickID(statusIDs),
			IsPaid:     g.faker.Bool(),
		})
	}
	return orders, nil
}

// Bills attaches one bill per distinct order (1:1), emitted within the last
// decade.
func (g *Generator) Bills(orderIDs []int64, size int) ([]Bill, error) {
	if len(orderIDs) < size {
		return nil, fmt.Errorf("bills: %d order ids for %d rows: %w", len(orderIDs), size, ErrInsufficientInput)
	}

	now := time.Now()
	bills := make([]Bill, 0, size)
	for i := 0; i < size; i++ {
		bills = append(bills, Bill{
			EmissionDate:   g.faker.DateRange(now.AddDate(-10, 0, 0), now),
			TotalAmountATI: g.faker.Price(1, 100),
			OrderID:        orderIDs[i],
		})
	}
	return bills, nil
}

func (g *Generator) Keywords() []Keyword {
	keywords := make([]Keyword, 0, len(keywordNames))
	for _, name := range keywordNames {
		keywords = append(keywords, Keyword{Name: name})
	}
	return keywords
}

func (g *Generator) Permissions() []Permission {
	permissions := make([]Permission, 0, len(permissionLabels))
	for _, label := range permissionLabels {
		permissions = append(permissions, Permission{Label: label})
	}
	return permissions
}

func (g *Generator) Roles() []Role {
	roles := make([]Role, 0, len(roleNames))
	for _, name := range roleNames {
		roles = append(roles, Role{Name: name})
	}
	return roles
}

// PickID returns a uniformly random element of ids.
func (g *Generator) PickID(ids []int64) int64 {
	return ids[g.rand.Intn(len(ids))]
}

// Quantity returns a uniformly random integer in [min, max].
func (g *Generator) Quantity(min, max int) int {
	return g.faker.Number(min, max)
}

// Amount returns a two-decimal price in [min, max].
func (g *Generator) Amount(min, max float64) float64 {
	return g.faker.Price(min, max)
}

// localPhone strips a fake phone number down to digits and left-pads it with
// 0 to the local ten-digit format.
func (g *Generator) localPhone() string {
	phone := nonDigit.ReplaceAllString(g.faker.Phone(), "")
	phone = strings.TrimPrefix(phone, "33")
	for len(phone) < 10 {
		phone = "0" + phone
	}
	return phone
}

// ean13 builds a random EAN-13 barcode with a valid check digit.
func (g *Generator) ean13() string {
	base := g.faker.DigitN(12)
	return base + ean13CheckDigit(base)
}

func ean13CheckDigit(digits string) string {
	sum := 0
	for i, r := range digits {
		d := int(r - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return strconv.Itoa((10 - sum%10) % 10)
}

// shuffled returns a shuffled copy, never mutating the caller's pool.
func (g *Generator) shuffled(ids []int64) []int64 {
	out := append([]int64(nil), ids...)
	g.rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
