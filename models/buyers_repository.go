package models

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrBuyerNotFound is returned when a buyer is not found.
var ErrBuyerNotFound = errors.New("buyer not found")

type BuyersRepository struct {
	db *gorm.DB
}

func NewBuyersRepository(db *gorm.DB) *BuyersRepository {
	return &BuyersRepository{
		db: db,
	}
}

func (r *BuyersRepository) GetAllBuyers() ([]Buyer, error) {
	var buyers []Buyer
	if err := r.db.Order("id").Find(&buyers).Error; err != nil {
		return nil, err
	}
	return buyers, nil
}

func (r *BuyersRepository) GetByName(name string) (*Buyer, error) {
	var buyer Buyer
	if err := r.db.
		Where("name = ?", name).
		First(&buyer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBuyerNotFound
		}
		return nil, err
	}
	return &buyer, nil
}

// Upsert inserts the buyer or overwrites the balance of an existing row
// with the same name.
func (r *BuyersRepository) Upsert(b *Buyer) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"money"}),
	}).Create(b).Error
}

func (r *BuyersRepository) UpdateMoney(name string, money decimal.Decimal) error {
	res := r.db.Model(&Buyer{}).Where("name = ?", name).Update("money", money)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBuyerNotFound
	}
	return nil
}
