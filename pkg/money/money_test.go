package money_test

import (
	"strings"
	"testing"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/yacouba/Boutique-api/pkg/money"
)

// soloDigitos quita símbolo de moneda y separadores de miles, que varían
// según los datos de locale.
func soloDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestFormatXOF_RedondeaSinSubunidades(t *testing.T) {
	out := money.FormatXOF(decimal.RequireFromString("1500.60"))

	assert.Equal(t, "1501", soloDigitos(out))
}

func TestFormatXOF_MontoGrandeSinPerderPrecision(t *testing.T) {
	// 2^53 + 1 no es representable en float64; el formateo debe mostrar
	// el monto exacto dígito a dígito.
	out := money.FormatXOF(decimal.RequireFromString("9007199254740993"))

	assert.Equal(t, "9007199254740993", soloDigitos(out))
}

func TestFormatXOF_NoEstaVacio(t *testing.T) {
	assert.NotEmpty(t, money.FormatXOF(decimal.Zero))
}
