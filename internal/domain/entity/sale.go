package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Sale relevantes para reportes.
const (
	SaleStatusCompleted = "completed"
	SaleStatusCancelled = "cancelled"
)

// Sale es la unidad base sobre la que reducen reportes y finanzas.
// En esta capa es de solo lectura: las ventas las escribe el punto de venta.
type Sale struct {
	ID       string
	StoreID  string
	SellerID string
	Status   string
	Total    decimal.Decimal
	Date     time.Time
	Items    []SaleItem
}

// SaleItem línea de venta (para agrupaciones por producto).
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	SKU         string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
