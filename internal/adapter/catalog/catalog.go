package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/niksmo/shop-assistant/internal/core/domain"
	"github.com/niksmo/shop-assistant/internal/core/port"
)

var _ port.Catalog = (*Catalog)(nil)

var ErrNotFound = errors.New("product not found")

//go:embed seed/angular.json seed/react.json
var seedFS embed.FS

type (
	seedProduct struct {
		ID            string            `json:"id"`
		Name          string            `json:"name"`
		Description   string            `json:"description"`
		CategoryIDs   []string          `json:"category_ids"`
		Images        []string          `json:"images"`
		Price         float64           `json:"price"`
		DiscountPrice float64           `json:"discount_price"`
		Availability  string            `json:"availability"`
		Parameters    []seedParameter   `json:"parameters"`
		CreatedAt     string            `json:"created_at"`
	}

	seedParameter struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}

	seedCategory struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Order int    `json:"order"`
	}

	seedFile struct {
		Categories []seedCategory `json:"categories"`
		Products   []seedProduct  `json:"products"`
	}
)

type storefront struct {
	categories []domain.Category
	products   []domain.Product
}

// A Catalog holds the immutable seed storefronts and answers
// filter/sort/page queries over them. Safe for concurrent use.
type Catalog struct {
	variants map[domain.Variant]storefront
}

func New() (Catalog, error) {
	const op = "catalog.New"

	seeds := map[domain.Variant]string{
		domain.VariantAngular: "seed/angular.json",
		domain.VariantReact:   "seed/react.json",
	}

	variants := make(map[domain.Variant]storefront, len(seeds))
	for v, path := range seeds {
		sf, err := loadStorefront(path)
		if err != nil {
			return Catalog{}, fmt.Errorf("%s: %w", op, err)
		}
		variants[v] = sf
	}
	return Catalog{variants}, nil
}

func loadStorefront(path string) (storefront, error) {
	b, err := seedFS.ReadFile(path)
	if err != nil {
		return storefront{}, err
	}

	var f seedFile
	if err := json.Unmarshal(b, &f); err != nil {
		return storefront{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var sf storefront
	for _, c := range f.Categories {
		sf.categories = append(sf.categories, domain.Category(c))
	}
	for _, p := range f.Products {
		sf.products = append(sf.products, toDomain(p))
	}
	return sf, nil
}

func toDomain(p seedProduct) domain.Product {
	dp := domain.Product{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		CategoryIDs:   p.CategoryIDs,
		Images:        p.Images,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		Availability:  domain.Availability(p.Availability),
		CreatedAt:     p.CreatedAt,
	}
	for _, param := range p.Parameters {
		dp.Parameters = append(dp.Parameters, domain.ProductParameter(param))
	}
	return dp
}

func (c Catalog) Categories(v domain.Variant) []domain.Category {
	sf := c.variants[v]
	out := make([]domain.Category, len(sf.categories))
	copy(out, sf.categories)
	return out
}

// Query returns the products satisfying every supplied predicate,
// in seed order unless a price sort is requested.
func (c Catalog) Query(v domain.Variant, q domain.ProductQuery) []domain.Product {
	sf := c.variants[v]

	out := make([]domain.Product, 0, len(sf.products))
	for _, p := range sf.products {
		if matches(p, q) {
			out = append(out, p)
		}
	}

	switch q.SortBy {
	case domain.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case domain.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	}

	if q.Page > 0 && q.PageSize > 0 {
		out = paginate(out, q.Page, q.PageSize)
	}
	return out
}

func matches(p domain.Product, q domain.ProductQuery) bool {
	if q.CategoryID != "" && !containsString(p.CategoryIDs, q.CategoryID) {
		return false
	}
	if q.Name != "" &&
		!strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Name)) {
		return false
	}
	if q.FromPrice != 0 && p.Price < q.FromPrice {
		return false
	}
	if q.ToPrice != 0 && p.Price > q.ToPrice {
		return false
	}
	if len(q.BatchIDs) != 0 && !containsString(q.BatchIDs, p.ID) {
		return false
	}
	return true
}

func paginate(ps []domain.Product, page, pageSize int) []domain.Product {
	start := (page - 1) * pageSize
	if start >= len(ps) {
		return nil
	}
	end := start + pageSize
	if end > len(ps) {
		end = len(ps)
	}
	return ps[start:end]
}

func (c Catalog) FindByID(v domain.Variant, id string) (domain.Product, error) {
	const op = "Catalog.FindByID"

	for _, p := range c.variants[v].products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("%s: %q: %w", op, id, ErrNotFound)
}

// Recommended returns a uniform random sample of at most n products.
func (c Catalog) Recommended(v domain.Variant, n int) []domain.Product {
	sf := c.variants[v]
	if n > len(sf.products) {
		n = len(sf.products)
	}

	out := make([]domain.Product, 0, n)
	for _, i := range rand.Perm(len(sf.products))[:n] {
		out = append(out, sf.products[i])
	}
	return out
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
