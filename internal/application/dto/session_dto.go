package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSessionRequest apertura de una sesión de conteo sobre una tienda.
type CreateSessionRequest struct {
	StoreID string `json:"store_id"`
}

// UpdateCountRequest registro de la cantidad contada de un artículo.
type UpdateCountRequest struct {
	CountedQty decimal.Decimal `json:"counted_qty"`
}

// SessionItemResponse artículo de la sesión con sus derivados.
type SessionItemResponse struct {
	ID          string           `json:"id"`
	ProductID   string           `json:"product_id"`
	ProductName string           `json:"product_name"`
	SKU         string           `json:"sku"`
	ExpectedQty decimal.Decimal  `json:"expected_qty"`
	CountedQty  *decimal.Decimal `json:"counted_qty"`
	Difference  decimal.Decimal  `json:"difference"`
	IsAdjusted  bool             `json:"is_adjusted"`
}

// SessionResponse sesión de inventario con métricas derivadas.
// Accuracy es nil mientras ningún artículo contado tenga precisión definida.
type SessionResponse struct {
	ID          string                `json:"id"`
	StoreID     string                `json:"store_id"`
	Status      string                `json:"status"`
	CreatedBy   string                `json:"created_by"`
	CreatedAt   time.Time             `json:"created_at"`
	CompletedAt *time.Time            `json:"completed_at"`
	Items       []SessionItemResponse `json:"items,omitempty"`
	Accuracy    *decimal.Decimal      `json:"accuracy,omitempty"`
	Message     string                `json:"message,omitempty"`
}

// SessionListResponse listado paginado.
type SessionListResponse struct {
	Items []SessionResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
