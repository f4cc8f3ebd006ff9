package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Buyer is an actor with a cash balance accumulating purchased products.
// The balance never goes negative: a purchase either succeeds atomically
// (product appended, price deducted) or leaves the buyer untouched.
type Buyer struct {
	ID    uint            `gorm:"primaryKey" json:"-"`
	Name  string          `gorm:"uniqueIndex;not null" json:"name"`
	Money decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"money"`

	bag []*Product
}

func (b *Buyer) TableName() string {
	return "buyers"
}

// NewBuyer validates and builds a buyer with an empty bag.
func NewBuyer(v *Validation, name string, money decimal.Decimal) (*Buyer, error) {
	name, err := v.BuyerName(name)
	if err != nil {
		return nil, err
	}
	if err := v.Money(money); err != nil {
		return nil, err
	}
	return &Buyer{Name: name, Money: money}, nil
}

// Buy attempts to purchase the product at its price resolved for the given
// moment. The price is resolved exactly once so the affordability check and
// the deduction cannot disagree across a discount expiry boundary.
// Insufficient funds is a normal outcome, not an error.
func (b *Buyer) Buy(p *Product, now time.Time) Outcome {
	price := p.PriceAt(now)
	if b.Money.LessThan(price) {
		return Outcome{Kind: OutcomeCannotAfford, Buyer: b.Name, Product: p.Name, Price: price}
	}
	b.bag = append(b.bag, p)
	b.Money = b.Money.Sub(price)
	return Outcome{Kind: OutcomeBought, Buyer: b.Name, Product: p.Name, Price: price}
}

// Bag returns the purchased products in purchase order. The returned slice
// is a copy; the bag itself is append-only and owned by the buyer.
func (b *Buyer) Bag() []*Product {
	out := make([]*Product, len(b.bag))
	copy(out, b.bag)
	return out
}

// String renders the buyer's purchase history line for the final report.
func (b *Buyer) String() string {
	if len(b.bag) == 0 {
		return b.Name + " - Nothing purchased"
	}
	names := make([]string, len(b.bag))
	for i, p := range b.bag {
		names[i] = p.Name
	}
	return b.Name + " - " + strings.Join(names, ", ")
}

// Equal compares name, balance, and full bag contents.
func (b *Buyer) Equal(o *Buyer) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.Name != o.Name || !b.Money.Equal(o.Money) || len(b.bag) != len(o.bag) {
		return false
	}
	for i := range b.bag {
		if !b.bag[i].Equal(o.bag[i]) {
			return false
		}
	}
	return true
}
