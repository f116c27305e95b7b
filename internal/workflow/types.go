package workflow

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

type FarmerOrderStatus string

const (
	FarmerOrderPending   FarmerOrderStatus = "pending"
	FarmerOrderConfirmed FarmerOrderStatus = "confirmed"
	FarmerOrderPacked    FarmerOrderStatus = "packed"
	FarmerOrderShipped   FarmerOrderStatus = "shipped"
	FarmerOrderDelivered FarmerOrderStatus = "delivered"
)

type AvailabilityStatus string

const (
	Available  AvailabilityStatus = "available"
	LowStock   AvailabilityStatus = "low_stock"
	OutOfStock AvailabilityStatus = "out_of_stock"
)

// AvailabilityStatusFor derives the stock status from the quantity on hand.
// It is recomputed on every quantity change, never stored independently.
func AvailabilityStatusFor(quantity int) AvailabilityStatus {
	switch {
	case quantity > 10:
		return Available
	case quantity > 0:
		return LowStock
	default:
		return OutOfStock
	}
}

type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	FarmerID    string  `json:"farmer_id"`
}

type ProductRequest struct {
	ID          string        `json:"id"`
	FarmerID    string        `json:"farmer_id"`
	ProductName string        `json:"product_name"`
	Category    string        `json:"category"`
	Quantity    int           `json:"quantity"`
	Price       float64       `json:"price"`
	Description string        `json:"description,omitempty"`
	Status      RequestStatus `json:"status"`
	Notes       string        `json:"notes,omitempty"`
	CreatedDate time.Time     `json:"created_date"`
}

type Order struct {
	ID                string      `json:"id"`
	CustomerID        string      `json:"customer_id"`
	Items             []OrderItem `json:"items"`
	TotalAmount       float64     `json:"total_amount"`
	Status            OrderStatus `json:"status"`
	EstimatedDelivery *time.Time  `json:"estimated_delivery,omitempty"`
	Notes             string      `json:"notes,omitempty"`
	CreatedDate       time.Time   `json:"created_date"`
	UpdatedDate       time.Time   `json:"updated_date"`
}

type FarmerOrder struct {
	ID            string            `json:"id"`
	OrderID       string            `json:"order_id"`
	FarmerID      string            `json:"farmer_id"`
	Items         []OrderItem       `json:"items"`
	Status        FarmerOrderStatus `json:"status"`
	ConfirmedDate *time.Time        `json:"confirmed_date,omitempty"`
	ShippedDate   *time.Time        `json:"shipped_date,omitempty"`
	DeliveredDate *time.Time        `json:"delivered_date,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	CreatedDate   time.Time         `json:"created_date"`
}

type ProductAvailability struct {
	ID          string             `json:"id"`
	FarmerID    string             `json:"farmer_id"`
	ProductID   string             `json:"product_id"`
	ProductName string             `json:"product_name"`
	Quantity    int                `json:"quantity"`
	Price       float64            `json:"price"`
	HarvestDate time.Time          `json:"harvest_date"`
	ExpiryDate  time.Time          `json:"expiry_date"`
	Status      AvailabilityStatus `json:"status"`
	Notes       string             `json:"notes,omitempty"`
	CreatedDate time.Time          `json:"created_date"`
}

func (r ProductRequest) RecordID() string      { return r.ID }
func (o Order) RecordID() string               { return o.ID }
func (f FarmerOrder) RecordID() string         { return f.ID }
func (a ProductAvailability) RecordID() string { return a.ID }
