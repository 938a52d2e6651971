package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemResponse línea de venta.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID       string             `json:"id"`
	StoreID  string             `json:"store_id"`
	SellerID string             `json:"seller_id"`
	Status   string             `json:"status"`
	Total    decimal.Decimal    `json:"total"`
	Date     time.Time          `json:"date"`
	Items    []SaleItemResponse `json:"items,omitempty"`
}

// SaleListResponse listado paginado.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
