package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusRequested OrderStatus = "requested"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// 3値のどれか
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusRequested, OrderStatusApproved, OrderStatusCanceled:
		return true
	default:
		return false
	}
}

// 出張申請（pedido）
type Order struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64          `gorm:"not null;index" json:"user_id"`
	RequestorName string         `gorm:"column:requestor_name;type:varchar(255);not null" json:"requestor_name"`
	Destination   string         `gorm:"type:varchar(255);not null" json:"destination"`
	DepartureDate time.Time      `gorm:"column:departure_date;type:date;not null" json:"departure_date"`
	ReturnDate    time.Time      `gorm:"column:return_date;type:date;not null" json:"return_date"`
	Status        OrderStatus    `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt     time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;autoUpdateTime" json:"-"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
