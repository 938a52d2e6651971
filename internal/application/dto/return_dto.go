package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnItemRequest línea de devolución.
type ReturnItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateReturnRequest alta de una devolución sobre una venta.
type CreateReturnRequest struct {
	SaleID string              `json:"sale_id"`
	Reason string              `json:"reason"`
	Items  []ReturnItemRequest `json:"items"`
}

// ReturnItemResponse línea de devolución persistida.
type ReturnItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// ReturnResponse devolución con sus líneas.
type ReturnResponse struct {
	ID          string               `json:"id"`
	SaleID      string               `json:"sale_id"`
	StoreID     string               `json:"store_id"`
	ProcessedBy string               `json:"processed_by"`
	Status      string               `json:"status"`
	Reason      string               `json:"reason,omitempty"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
	Items       []ReturnItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	ResolvedAt  *time.Time           `json:"resolved_at"`
	Message     string               `json:"message,omitempty"`
}

// ReturnListResponse listado paginado.
type ReturnListResponse struct {
	Items []ReturnResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
