package catalog

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyQuery = errors.New("empty search query")
	ErrNoCriteria = errors.New("no product name or type given")
	ErrNoMatch    = errors.New("no matching products found")
	ErrNotFound   = errors.New("product not found")
)

// Product is one row of the flooring catalog. Money values are per square foot.
type Product struct {
	Name               string
	Category           string
	PricePerArea       decimal.Decimal
	InstallCostPerArea decimal.Decimal
}

// Pricing holds the minimum order rule: below Threshold square feet the total
// is raised to at least MinimumCharge.
type Pricing struct {
	MinimumCharge decimal.Decimal
	Threshold     decimal.Decimal
}

// DefaultPricing is a $250 minimum on orders under 1000 sq ft.
func DefaultPricing() Pricing {
	return Pricing{
		MinimumCharge: decimal.NewFromInt(250),
		Threshold:     decimal.NewFromInt(1000),
	}
}

// CostBreakdown is an estimate at full precision; rounding is left to display.
type CostBreakdown struct {
	ProductName    string
	Area           decimal.Decimal
	MaterialCost   decimal.Decimal
	InstallCost    decimal.Decimal
	TotalCost      decimal.Decimal
	MinimumApplied bool
}

// Option configures a Catalog in New.
type Option func(*Catalog)

func WithPricing(p Pricing) Option {
	return func(c *Catalog) { c.pricing = p }
}

// Catalog is read-only after New; it is safe to share.
type Catalog struct {
	products []Product
	pricing  Pricing
}

func New(products []Product, opts ...Option) *Catalog {
	c := &Catalog{
		products: append([]Product(nil), products...),
		pricing:  DefaultPricing(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// All returns every product in load order.
func (c *Catalog) All() []Product {
	return append([]Product(nil), c.products...)
}

func (c *Catalog) Len() int { return len(c.products) }

func (c *Catalog) Pricing() Pricing { return c.pricing }

// FindByName matches substring against product names, ignoring case.
func (c *Catalog) FindByName(substring string) ([]Product, error) {
	return c.find(substring, func(p Product) string { return p.Name })
}

// FindByCategory matches substring against product categories, ignoring case.
func (c *Catalog) FindByCategory(substring string) ([]Product, error) {
	return c.find(substring, func(p Product) string { return p.Category })
}

func (c *Catalog) find(substring string, field func(Product) string) ([]Product, error) {
	needle := strings.ToLower(strings.TrimSpace(substring))
	if needle == "" {
		return nil, ErrEmptyQuery
	}
	var out []Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(field(p)), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Lookup searches by name when nameFilter is set, otherwise by category.
// It returns ErrNoCriteria when both filters are blank and ErrNoMatch when
// the chosen search finds nothing.
func (c *Catalog) Lookup(nameFilter, categoryFilter string) ([]Product, error) {
	var (
		found []Product
		err   error
	)
	switch {
	case strings.TrimSpace(nameFilter) != "":
		found, err = c.FindByName(nameFilter)
	case strings.TrimSpace(categoryFilter) != "":
		found, err = c.FindByCategory(categoryFilter)
	default:
		return nil, ErrNoCriteria
	}
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrNoMatch
	}
	return found, nil
}

// EstimateCost prices area square feet of the first product whose name
// contains nameSubstring. Several matches are not an error: the earliest row
// in the catalog wins.
func (c *Catalog) EstimateCost(nameSubstring string, area decimal.Decimal) (CostBreakdown, error) {
	found, err := c.FindByName(nameSubstring)
	if err != nil {
		return CostBreakdown{}, errors.Wrap(err, "estimate cost")
	}
	if len(found) == 0 {
		return CostBreakdown{}, errors.Wrapf(ErrNotFound, "estimate cost for %q", nameSubstring)
	}
	p := found[0]

	material := p.PricePerArea.Mul(area)
	install := p.InstallCostPerArea.Mul(area)
	total := material.Add(install)
	applied := false
	if area.LessThan(c.pricing.Threshold) && total.LessThan(c.pricing.MinimumCharge) {
		total = c.pricing.MinimumCharge
		applied = true
	}

	return CostBreakdown{
		ProductName:    p.Name,
		Area:           area,
		MaterialCost:   material,
		InstallCost:    install,
		TotalCost:      total,
		MinimumApplied: applied,
	}, nil
}
