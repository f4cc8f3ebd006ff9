package models

import "gorm.io/gorm"

// Migrate creates or updates the schema for all market tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Product{}, &Buyer{}, &Purchase{})
}

// MarketStore bundles the three repositories behind the write-through
// interface the purchase engine persists into.
type MarketStore struct {
	products  *ProductsRepository
	buyers    *BuyersRepository
	purchases *PurchasesRepository
}

func NewMarketStore(db *gorm.DB) *MarketStore {
	return &MarketStore{
		products:  NewProductsRepository(db),
		buyers:    NewBuyersRepository(db),
		purchases: NewPurchasesRepository(db),
	}
}

func (s *MarketStore) Products() *ProductsRepository {
	return s.products
}

func (s *MarketStore) Buyers() *BuyersRepository {
	return s.buyers
}

func (s *MarketStore) Purchases() *PurchasesRepository {
	return s.purchases
}

func (s *MarketStore) SaveBuyer(b *Buyer) error {
	return s.buyers.Upsert(b)
}

func (s *MarketStore) SaveProduct(p *Product) error {
	return s.products.Upsert(p)
}

// RecordPurchase appends a ledger row. The engine follows up with
// SaveBuyer to persist the deducted balance.
func (s *MarketStore) RecordPurchase(o Outcome) error {
	return s.purchases.Create(o.Buyer, o.Product, o.Price)
}
