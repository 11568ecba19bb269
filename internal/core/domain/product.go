package domain

import "errors"

// A Variant selects one of the parallel storefront catalogs.
type Variant string

const (
	VariantAngular Variant = "angular"
	VariantReact   Variant = "react"
)

const DefaultVariant = VariantAngular

var ErrUnknownVariant = errors.New("unknown storefront variant")

// ParseVariant reports whether s names a known storefront variant.
func ParseVariant(s string) (Variant, bool) {
	switch Variant(s) {
	case VariantAngular:
		return VariantAngular, true
	case VariantReact:
		return VariantReact, true
	}
	return "", false
}

type Availability string

const (
	AvailabilityNormal Availability = "normal"
	AvailabilityLow    Availability = "low"
	AvailabilityNone   Availability = "none"
)

type (
	Product struct {
		ID            string
		Name          string
		Description   string
		CategoryIDs   []string
		Images        []string
		Price         float64
		DiscountPrice float64
		Availability  Availability
		Parameters    []ProductParameter
		CreatedAt     string
	}

	ProductParameter struct {
		Name  string
		Value string
	}

	Category struct {
		ID    string
		Name  string
		Order int
	}
)

type SortOrder string

const (
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

// A ProductQuery carries the optional, conjunctive catalog filters.
// Zero values mean "not supplied"; pagination applies only when both
// Page and PageSize are set.
type ProductQuery struct {
	CategoryID string
	Name       string
	FromPrice  float64
	ToPrice    float64
	BatchIDs   []string
	SortBy     SortOrder
	Page       int
	PageSize   int
}
