package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de InventorySession. Una sesión activa pasa a completed o cancelled
// y nunca sale de un estado terminal.
const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
)

// InventorySession es un conteo físico de inventario sobre una tienda.
// A lo sumo una sesión activa por tienda; el invariante se garantiza en la
// capa de datos con un índice único parcial, no con read-then-insert.
type InventorySession struct {
	ID          string
	StoreID     string
	Status      string
	CreatedBy   string
	CreatedAt   time.Time
	CompletedAt *time.Time
	Items       []InventoryItem
}

// IsTerminal indica si la sesión ya no admite transiciones.
func (s *InventorySession) IsTerminal() bool {
	return s.Status == SessionStatusCompleted || s.Status == SessionStatusCancelled
}

// InventoryItem es una línea de conteo dentro de una sesión.
// ExpectedQty se captura del stock vigente al abrir la sesión;
// CountedQty es nil hasta que alguien cuenta el artículo.
type InventoryItem struct {
	ID          string
	SessionID   string
	ProductID   string
	ProductName string
	SKU         string
	ExpectedQty decimal.Decimal
	CountedQty  *decimal.Decimal
	Difference  decimal.Decimal // siempre CountedQty - ExpectedQty una vez contado
	IsAdjusted  bool            // true cuando el conteo ya se escribió al stock
}

// SetCounted registra la cantidad contada y deriva Difference.
// Es el único camino para fijar CountedQty: mantiene el invariante
// Difference == CountedQty - ExpectedQty.
func (it *InventoryItem) SetCounted(qty decimal.Decimal) {
	it.CountedQty = &qty
	it.Difference = qty.Sub(it.ExpectedQty)
}
