package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ProductKind tags the two product variants in the catalog.
type ProductKind string

const (
	KindPlain      ProductKind = "plain"
	KindDiscounted ProductKind = "discounted"
)

// ExpiryLayout is the day.month.year format discount expiry dates use.
const ExpiryLayout = "02.01.2006"

// Product represents a catalog entry. A discounted product carries a
// discount amount and an expiry date on top of the base price; for plain
// products those fields are zero values and ignored.
type Product struct {
	ID         uint            `gorm:"primaryKey" json:"-"`
	Name       string          `gorm:"uniqueIndex;not null" json:"name"`
	Kind       ProductKind     `gorm:"not null;default:plain" json:"kind"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Discount   decimal.Decimal `gorm:"type:decimal(10,2)" json:"discount"`
	ValidUntil string          `json:"valid_until"`
}

func (p *Product) TableName() string {
	return "products"
}

// NewProduct validates and builds a plain catalog product.
func NewProduct(v *Validation, name string, price decimal.Decimal) (*Product, error) {
	name, err := v.ProductName(name)
	if err != nil {
		return nil, err
	}
	if err := v.Price(price); err != nil {
		return nil, err
	}
	return &Product{Name: name, Kind: KindPlain, Price: price}, nil
}

// NewDiscountProduct validates and builds a discounted product. The expiry
// string is stored verbatim: format errors surface only at price
// resolution, where a malformed date degrades to the base price.
func NewDiscountProduct(v *Validation, name string, price, discount decimal.Decimal, validUntil string) (*Product, error) {
	name, err := v.ProductName(name)
	if err != nil {
		return nil, err
	}
	if err := v.Price(price); err != nil {
		return nil, err
	}
	if err := v.Discount(discount); err != nil {
		return nil, err
	}
	return &Product{
		Name:       name,
		Kind:       KindDiscounted,
		Price:      price,
		Discount:   discount,
		ValidUntil: validUntil,
	}, nil
}

// PriceAt resolves the effective price at the given moment. Plain products
// always resolve to the base price. Discounted products resolve to
// max(price-discount, 0) while the expiry date has not passed; an
// unparsable expiry or a date already behind us yields the base price.
// The result is never negative.
func (p *Product) PriceAt(now time.Time) decimal.Decimal {
	if p.Kind != KindDiscounted {
		return p.Price
	}
	expiry, err := time.Parse(ExpiryLayout, p.ValidUntil)
	if err != nil {
		return p.Price
	}
	// The discount still applies on the expiry day itself, so compare
	// whole dates rather than instants.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if today.After(expiry) {
		return p.Price
	}
	discounted := p.Price.Sub(p.Discount)
	if discounted.IsNegative() {
		return decimal.Zero
	}
	return discounted
}

// String renders the base price and, for discounted products, the discount
// amount and the expiry string verbatim. The resolved price is deliberately
// not part of the rendering.
func (p *Product) String() string {
	if p.Kind == KindDiscounted {
		return fmt.Sprintf("%s (Price: %s, Discount: %s, Valid until: %s)",
			p.Name, p.Price, p.Discount, p.ValidUntil)
	}
	return fmt.Sprintf("%s (Price: %s)", p.Name, p.Price)
}

// Equal compares by value; prices compare as decimal values, not by
// representation.
func (p *Product) Equal(o *Product) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.Name == o.Name &&
		p.Kind == o.Kind &&
		p.Price.Equal(o.Price) &&
		p.Discount.Equal(o.Discount) &&
		p.ValidUntil == o.ValidUntil
}
