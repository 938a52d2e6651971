package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Return. pending -> approved | rejected; los estados terminales
// no transicionan entre sí ni de vuelta a pending.
const (
	ReturnStatusPending  = "pending"
	ReturnStatusApproved = "approved"
	ReturnStatusRejected = "rejected"
)

// Return es una devolución de venta con sus líneas.
type Return struct {
	ID          string
	SaleID      string
	StoreID     string
	ProcessedBy string // usuario que registró la devolución
	Status      string
	Reason      string
	TotalAmount decimal.Decimal
	Items       []ReturnItem
	CreatedAt   time.Time
	ResolvedAt  *time.Time
}

// CanTransitionTo valida la máquina de estados de la devolución.
func (r *Return) CanTransitionTo(status string) bool {
	if r.Status != ReturnStatusPending {
		return false
	}
	return status == ReturnStatusApproved || status == ReturnStatusRejected
}

// ReturnItem línea de devolución.
type ReturnItem struct {
	ID        string
	ReturnID  string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}
