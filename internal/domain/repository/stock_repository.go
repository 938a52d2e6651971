package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StockLine stock vigente de un producto en una tienda, base del sembrado
// de artículos al abrir una sesión de inventario.
type StockLine struct {
	ProductID   string
	ProductName string
	SKU         string
	Quantity    decimal.Decimal
}

// StockRepository define el puerto sobre el stock autoritativo (DIP).
type StockRepository interface {
	// ListByStore snapshot del stock de la tienda (cantidad esperada).
	ListByStore(ctx context.Context, storeID string) ([]StockLine, error)

	// SetQuantity escribe la cantidad contada de vuelta al stock (ajuste).
	SetQuantity(ctx context.Context, storeID, productID string, qty decimal.Decimal) error
}
