package repository

import (
	"errors"
	"time"
)

var ErrObjectNotFound = errors.New("not found")

type ProductRequest struct {
	ID          string    `db:"id"`
	FarmerID    string    `db:"farmer_id"`
	ProductName string    `db:"product_name"`
	Category    string    `db:"category"`
	Quantity    int       `db:"quantity"`
	Price       float64   `db:"price"`
	Description string    `db:"description"`
	Status      string    `db:"status"`
	Notes       *string   `db:"notes"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type Order struct {
	ID                string     `db:"id"`
	CustomerID        string     `db:"customer_id"`
	TotalAmount       float64    `db:"total_amount"`
	Status            string     `db:"status"`
	EstimatedDelivery *time.Time `db:"estimated_delivery"`
	Notes             *string    `db:"notes"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

type OrderItem struct {
	ID          int64   `db:"id"`
	OrderID     string  `db:"order_id"`
	ProductID   string  `db:"product_id"`
	ProductName string  `db:"product_name"`
	Quantity    int     `db:"quantity"`
	Price       float64 `db:"price"`
	FarmerID    string  `db:"farmer_id"`
}

type FarmerOrder struct {
	ID          string     `db:"id"`
	OrderID     string     `db:"order_id"`
	FarmerID    string     `db:"farmer_id"`
	Status      string     `db:"status"`
	ConfirmedAt *time.Time `db:"confirmed_at"`
	ShippedAt   *time.Time `db:"shipped_at"`
	DeliveredAt *time.Time `db:"delivered_at"`
	Notes       *string    `db:"notes"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

type ProductAvailability struct {
	ID          string    `db:"id"`
	FarmerID    string    `db:"farmer_id"`
	ProductID   string    `db:"product_id"`
	ProductName string    `db:"product_name"`
	Quantity    int       `db:"quantity"`
	Price       float64   `db:"price"`
	HarvestDate time.Time `db:"harvest_date"`
	ExpiryDate  time.Time `db:"expiry_date"`
	Status      string    `db:"status"`
	Notes       *string   `db:"notes"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// HistoryEntry is one row of the shared status-change log. EntityType names
// the workflow the entry belongs to: request, order, farmer_order or
// availability.
type HistoryEntry struct {
	ID         int64     `db:"id"`
	EntityType string    `db:"entity_type"`
	EntityID   string    `db:"entity_id"`
	Status     string    `db:"status"`
	ChangedAt  time.Time `db:"changed_at"`
}
