// Package scope resuelve el contexto de acceso por rol: qué tiendas y qué
// registros propios puede leer/escribir un usuario. Todo consulta y toda
// mutación del sistema recibe un AccessContext explícito; nunca se lee el
// perfil de un estado ambiente.
package scope

import (
	"github.com/yacouba/Boutique-api/internal/domain/entity"
)

// AccessContext es el contexto de acceso derivado del perfil autenticado.
// Es un valor inmutable: se construye una vez por petición y se pasa a
// repositorios y casos de uso.
type AccessContext struct {
	UserID   string
	Role     entity.Role
	StoreIDs []string
}

// Resolve deriva el contexto de acceso desde un usuario autenticado.
// Con user nil (perfil ausente) el default es cerrado: rol seller sin
// tiendas asignadas, es decir sin acceso a ningún dato por tienda.
func Resolve(user *entity.User) AccessContext {
	if user == nil {
		return AccessContext{Role: entity.RoleSeller}
	}
	return AccessContext{
		UserID:   user.ID,
		Role:     user.Role,
		StoreIDs: user.StoreIDs,
	}
}

// FromClaims construye el contexto desde los claims del JWT.
// Un rol desconocido degrada a seller sin tiendas (default cerrado).
func FromClaims(userID, role string, storeIDs []string) AccessContext {
	r := entity.Role(role)
	if !r.Valid() {
		return AccessContext{UserID: userID, Role: entity.RoleSeller}
	}
	return AccessContext{UserID: userID, Role: r, StoreIDs: storeIDs}
}

// IsAdmin / IsManager / IsSeller azúcar para las tablas de presentación.
func (c AccessContext) IsAdmin() bool   { return c.Role == entity.RoleAdmin }
func (c AccessContext) IsManager() bool { return c.Role == entity.RoleManager }
func (c AccessContext) IsSeller() bool  { return c.Role == entity.RoleSeller }

// CanAccessStore indica si el usuario puede leer datos de la tienda.
// Admin: siempre. Manager/seller: solo tiendas asignadas.
func (c AccessContext) CanAccessStore(storeID string) bool {
	if c.IsAdmin() {
		return true
	}
	for _, id := range c.StoreIDs {
		if id == storeID {
			return true
		}
	}
	return false
}

// CanWriteStore indica si el usuario puede mutar la entidad Store.
// Admin: siempre. Manager: solo tiendas asignadas. Seller: nunca.
func (c AccessContext) CanWriteStore(storeID string) bool {
	if c.IsAdmin() {
		return true
	}
	if c.IsManager() {
		return c.CanAccessStore(storeID)
	}
	return false
}

// OwnsRecord indica si un registro con dueño (processed_by, seller_id,
// created_by) pertenece al usuario. Para seller las entidades propias se
// filtran además por este predicado.
func (c AccessContext) OwnsRecord(ownerID string) bool {
	return c.UserID != "" && c.UserID == ownerID
}

// Filter es el filtro de alcance que los repositorios traducen a SQL.
// StoreIDs nil significa sin restricción (admin); vacío no nil significa
// "ninguna tienda" y debe producir cero filas. OwnerID no vacío añade la
// restricción de dueño para entidades propias del seller.
type Filter struct {
	StoreIDs []string
	OwnerID  string
}

// QueryFilter construye el filtro de lectura para una entidad por tienda.
// ownerScoped indica que la entidad tiene dueño (ventas, devoluciones) y que
// para un seller debe restringirse además a sus propios registros.
func (c AccessContext) QueryFilter(ownerScoped bool) Filter {
	if c.IsAdmin() {
		return Filter{}
	}
	f := Filter{StoreIDs: c.StoreIDs}
	if f.StoreIDs == nil {
		f.StoreIDs = []string{}
	}
	if ownerScoped && c.IsSeller() {
		f.OwnerID = c.UserID
	}
	return f
}

// Unrestricted indica que el filtro no limita por tienda (admin).
func (f Filter) Unrestricted() bool { return f.StoreIDs == nil }
