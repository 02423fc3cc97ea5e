package specification

import (
	"gorm.io/gorm"
)

// ByHandle filters products by their URL handle
type ByHandle struct {
	Handle string
}

func (s ByHandle) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("handle = ?", s.Handle)
}

// TitleLike is a case-insensitive partial title match
type TitleLike struct {
	Title string
}

func (s TitleLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title ILIKE ?", "%"+s.Title+"%")
}

// ByOrderNumber filters orders by their storefront-facing number
type ByOrderNumber struct {
	OrderNumber string
}

func (s ByOrderNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("order_number = ?", s.OrderNumber)
}
