package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Order struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	OrderNumber string         `gorm:"type:varchar(64);not null;index"`
	Email       string         `gorm:"type:varchar(255);index"`
	Status      string         `gorm:"type:varchar(50);not null"`
	TrackingURL string         `gorm:"type:text"`
	Total       string         `gorm:"type:varchar(32)"`
	LineItems   datatypes.JSON `gorm:"type:jsonb"` // [{product_id, quantity, price}]
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderLineItem is a flattened projection of order line items kept in its own
// table so best-selling can be computed with a plain SUM/GROUP BY.
type OrderLineItem struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderId   uuid.UUID `gorm:"type:uuid;not null;index"`
	StoreId   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductId uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (OrderLineItem) TableName() string {
	return "order_line_items"
}
