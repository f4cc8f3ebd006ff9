package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Purchase is a ledger row recording the price actually charged at the
// moment of a successful purchase. Discounted products may settle at a
// different price later the same run, so the charged price is stored here
// rather than derived from the catalog.
type Purchase struct {
	ID          uint            `gorm:"primaryKey"`
	BuyerName   string          `gorm:"index;not null"`
	ProductName string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time
}

func (p *Purchase) TableName() string {
	return "purchases"
}

type PurchasesRepository struct {
	db *gorm.DB
}

func NewPurchasesRepository(db *gorm.DB) *PurchasesRepository {
	return &PurchasesRepository{
		db: db,
	}
}

func (r *PurchasesRepository) Create(buyerName, productName string, price decimal.Decimal) error {
	return r.db.Create(&Purchase{
		BuyerName:   buyerName,
		ProductName: productName,
		Price:       price,
	}).Error
}

func (r *PurchasesRepository) ListByBuyer(name string) ([]Purchase, error) {
	var purchases []Purchase
	if err := r.db.
		Where("buyer_name = ?", name).
		Order("id").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// TotalSpent sums the charged prices across a buyer's ledger rows.
func (r *PurchasesRepository) TotalSpent(name string) (decimal.Decimal, error) {
	purchases, err := r.ListByBuyer(name)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range purchases {
		total = total.Add(p.Price)
	}
	return total, nil
}
