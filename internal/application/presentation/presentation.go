// Package presentation define la configuración de interfaz por rol:
// títulos, acciones rápidas, filtros visibles y topes de devolución.
// Agregar un rol nuevo exige declarar aquí su entrada completa.
package presentation

import (
	"github.com/shopspring/decimal"

	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/pkg/config"
)

// Copy configuración de presentación de un rol. ReturnCap en cero
// significa sin tope.
type Copy struct {
	Title          string          `json:"title"`
	Subtitle       string          `json:"subtitle"`
	QuickActions   []string        `json:"quick_actions"`
	VisibleFilters []string        `json:"visible_filters"`
	ReturnCap      decimal.Decimal `json:"return_cap"`
}

// Table resuelve la configuración de presentación por rol, con los
// topes de devolución inyectados desde la configuración.
type Table struct {
	caps config.CapsConfig
}

func NewTable(caps config.CapsConfig) *Table {
	return &Table{caps: caps}
}

// For devuelve la configuración del rol. Un rol desconocido recibe la
// vista del vendedor, la más restringida.
func (t *Table) For(role entity.Role) Copy {
	switch role {
	case entity.RoleAdmin:
		return Copy{
			Title:          "Tableau de bord",
			Subtitle:       "Toutes les boutiques",
			QuickActions:   []string{"create_store", "create_user", "view_finance", "export_reports"},
			VisibleFilters: []string{"store", "seller", "period", "status"},
			ReturnCap:      decimal.Zero,
		}
	case entity.RoleManager:
		return Copy{
			Title:          "Ma boutique",
			Subtitle:       "Gestion quotidienne",
			QuickActions:   []string{"start_inventory", "approve_return", "add_expense"},
			VisibleFilters: []string{"seller", "period", "status"},
			ReturnCap:      t.caps.ManagerReturnCap,
		}
	default:
		return Copy{
			Title:          "Mes ventes",
			Subtitle:       "Activité du jour",
			QuickActions:   []string{"new_sale", "new_return"},
			VisibleFilters: []string{"period"},
			ReturnCap:      t.caps.SellerReturnCap,
		}
	}
}

// ReturnCapFor tope de devolución del rol; cero = sin tope.
func (t *Table) ReturnCapFor(role entity.Role) decimal.Decimal {
	return t.For(role).ReturnCap
}

// Confirmation mensaje de confirmación fraseado según el rol del actor.
// Las claves de acción son estables; el texto es de cara al usuario.
func Confirmation(role entity.Role, action string) string {
	msgs, ok := confirmations[action]
	if !ok {
		return "Opération effectuée"
	}
	if m, ok := msgs[role]; ok {
		return m
	}
	return msgs[entity.RoleSeller]
}

var confirmations = map[string]map[entity.Role]string{
	"session_created": {
		entity.RoleAdmin:   "Session d'inventaire ouverte",
		entity.RoleManager: "Session d'inventaire ouverte pour votre boutique",
		entity.RoleSeller:  "Session d'inventaire ouverte",
	},
	"session_completed": {
		entity.RoleAdmin:   "Session d'inventaire clôturée",
		entity.RoleManager: "Session clôturée, écarts enregistrés",
		entity.RoleSeller:  "Session clôturée",
	},
	"session_cancelled": {
		entity.RoleAdmin:   "Session d'inventaire annulée",
		entity.RoleManager: "Session annulée, aucun ajustement appliqué",
		entity.RoleSeller:  "Session annulée",
	},
	"count_updated": {
		entity.RoleAdmin:   "Comptage enregistré",
		entity.RoleManager: "Comptage enregistré",
		entity.RoleSeller:  "Comptage enregistré",
	},
	"stock_adjusted": {
		entity.RoleAdmin:   "Stock ajusté au comptage",
		entity.RoleManager: "Stock de votre boutique ajusté au comptage",
		entity.RoleSeller:  "Stock ajusté",
	},
	"return_created": {
		entity.RoleAdmin:   "Retour enregistré et approuvé",
		entity.RoleManager: "Retour enregistré, en attente de validation",
		entity.RoleSeller:  "Votre retour a été soumis pour validation",
	},
	"return_approved": {
		entity.RoleAdmin:   "Retour approuvé",
		entity.RoleManager: "Retour approuvé",
		entity.RoleSeller:  "Retour approuvé",
	},
	"return_rejected": {
		entity.RoleAdmin:   "Retour rejeté",
		entity.RoleManager: "Retour rejeté",
		entity.RoleSeller:  "Retour rejeté",
	},
	"store_created": {
		entity.RoleAdmin:   "Boutique créée",
		entity.RoleManager: "Boutique créée",
		entity.RoleSeller:  "Boutique créée",
	},
	"store_updated": {
		entity.RoleAdmin:   "Boutique mise à jour",
		entity.RoleManager: "Votre boutique a été mise à jour",
		entity.RoleSeller:  "Boutique mise à jour",
	},
	"expense_added": {
		entity.RoleAdmin:   "Dépense enregistrée",
		entity.RoleManager: "Dépense enregistrée pour votre boutique",
		entity.RoleSeller:  "Dépense enregistrée",
	},
	"user_created": {
		entity.RoleAdmin:   "Utilisateur créé",
		entity.RoleManager: "Utilisateur créé",
		entity.RoleSeller:  "Utilisateur créé",
	},
}
