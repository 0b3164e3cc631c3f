package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Confirmed bool      `json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Item struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Rate         decimal.Decimal `json:"rate"`
	CategoryID   int             `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	OwnerID      int             `json:"owner_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Bill is the running tab of one table. Total, Offer, Tax and NetAmount are
// derived from the orders and the discount; see Recalculate.
type Bill struct {
	ID        int             `json:"id"`
	TableNo   int             `json:"table_no"`
	OwnerID   int             `json:"owner_id"`
	IsSettled bool            `json:"is_settled"`
	Total     decimal.Decimal `json:"total"`
	Discount  decimal.Decimal `json:"discount"`
	Offer     decimal.Decimal `json:"offer"`
	Tax       decimal.Decimal `json:"tax"`
	NetAmount decimal.Decimal `json:"net_amount"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Orders    []Order         `json:"orders"`
}

// Order is one line of a bill, keyed by (BillID, ItemID, OwnerID).
type Order struct {
	BillID   int             `json:"bill_id"`
	ItemID   int             `json:"item_id"`
	OwnerID  int             `json:"owner_id"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
	ItemName string          `json:"item_name,omitempty"`
	ItemRate decimal.Decimal `json:"item_rate"`
}

type Notification struct {
	Type      string    `json:"type"`
	To        string    `json:"to"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}
