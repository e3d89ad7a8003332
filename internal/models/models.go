package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	FirstName    string    `gorm:"not null"                 json:"first_name"`
	LastName     string    `gorm:"not null"                 json:"last_name"`
	Phone        *string   `json:"phone"`
	IsAdmin      bool      `gorm:"not null;default:false"   json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Pancake struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"     json:"id"`
	Name        string          `gorm:"not null"                     json:"name"`
	Description string          `gorm:"not null"                     json:"description"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"  json:"base_price"`
	Ingredients string          `gorm:"not null"                     json:"ingredients"`
	ImageURL    *string         `json:"image_url"`
	IsAvailable bool            `gorm:"not null;default:true"        json:"is_available"`
	Sizes       []Size          `gorm:"constraint:OnDelete:CASCADE"  json:"sizes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type Size struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	PancakeID       uint            `gorm:"index;not null"              json:"pancake_id"`
	Name            string          `gorm:"not null"                    json:"name"`
	PriceMultiplier decimal.Decimal `gorm:"type:decimal(3,2);not null"  json:"price_multiplier"`
	CreatedAt       time.Time       `json:"created_at"`
}

type Topping struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name        string          `gorm:"not null"                    json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(8,2);not null"  json:"price"`
	IsAvailable bool            `gorm:"not null;default:true"       json:"is_available"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Order struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"     json:"id"`
	UserID      uint            `gorm:"index;not null"               json:"user_id"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"  json:"total_amount"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Notes       *string         `json:"notes"`
	Items       []OrderItem     `gorm:"constraint:OnDelete:CASCADE"  json:"items,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// UnitPrice and the topping prices below are snapshots taken at order time,
// later catalog edits must not change a placed order.
type OrderItem struct {
	ID        uint               `gorm:"primaryKey;autoIncrement"     json:"id"`
	OrderID   uint               `gorm:"index;not null"               json:"order_id"`
	PancakeID uint               `gorm:"not null"                     json:"pancake_id"`
	SizeID    *uint              `json:"size_id"`
	Quantity  uint               `gorm:"not null;check:quantity>0"    json:"quantity"`
	UnitPrice decimal.Decimal    `gorm:"type:decimal(10,2);not null"  json:"unit_price"`
	Toppings  []OrderItemTopping `gorm:"constraint:OnDelete:CASCADE"  json:"toppings,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

type OrderItemTopping struct {
	ID           uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderItemID  uint            `gorm:"index;not null"              json:"order_item_id"`
	ToppingID    uint            `gorm:"not null"                    json:"topping_id"`
	ToppingPrice decimal.Decimal `gorm:"type:decimal(8,2);not null"  json:"topping_price"`
	CreatedAt    time.Time       `json:"created_at"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}
