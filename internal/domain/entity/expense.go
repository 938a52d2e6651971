package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense gasto de una tienda; se resta del ingreso para derivar la utilidad.
type Expense struct {
	ID        string
	StoreID   string
	Category  string
	Amount    decimal.Decimal
	Notes     string
	Date      time.Time
	CreatedBy string
	CreatedAt time.Time
}
