package entity

import "time"

// Store representa una tienda/punto de venta.
// Creación y borrado son exclusivos del admin; el manager puede editar
// (no borrar) las tiendas que tiene asignadas.
type Store struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Email     string
	IsActive  bool
	ManagerID string // opcional: usuario manager responsable
	CreatedAt time.Time
	UpdatedAt time.Time
}
