package presentation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yacouba/Boutique-api/internal/application/presentation"
	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/pkg/config"
)

func newTable() *presentation.Table {
	return presentation.NewTable(config.CapsConfig{
		SellerReturnCap:  decimal.NewFromInt(50000),
		ManagerReturnCap: decimal.NewFromInt(200000),
	})
}

func TestFor_CadaRolTieneEntradaCompleta(t *testing.T) {
	table := newTable()
	for _, role := range []entity.Role{entity.RoleAdmin, entity.RoleManager, entity.RoleSeller} {
		c := table.For(role)
		assert.NotEmpty(t, c.Title, string(role))
		assert.NotEmpty(t, c.Subtitle, string(role))
		assert.NotEmpty(t, c.QuickActions, string(role))
		assert.NotEmpty(t, c.VisibleFilters, string(role))
	}
}

func TestFor_TopesInyectadosDesdeConfig(t *testing.T) {
	table := newTable()

	assert.True(t, table.For(entity.RoleSeller).ReturnCap.Equal(decimal.NewFromInt(50000)))
	assert.True(t, table.For(entity.RoleManager).ReturnCap.Equal(decimal.NewFromInt(200000)))
	assert.True(t, table.For(entity.RoleAdmin).ReturnCap.IsZero(), "cero significa sin tope")
}

func TestFor_RolDesconocidoRecibeVistaSeller(t *testing.T) {
	table := newTable()

	c := table.For(entity.Role("superuser"))

	assert.Equal(t, table.For(entity.RoleSeller), c)
}

func TestConfirmation_FraseadaPorRol(t *testing.T) {
	seller := presentation.Confirmation(entity.RoleSeller, "return_created")
	admin := presentation.Confirmation(entity.RoleAdmin, "return_created")

	assert.NotEqual(t, seller, admin, "el mismo evento se frasea distinto según el rol")
	assert.Contains(t, seller, "validation", "el seller ve que su retour espera validación")
}

func TestConfirmation_AccionDesconocidaTieneFallback(t *testing.T) {
	assert.NotEmpty(t, presentation.Confirmation(entity.RoleAdmin, "nope"))
}
