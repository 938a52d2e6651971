// Package money formatea montos XOF para presentación.
// Los montos se almacenan siempre como decimal sin formato; el formateo
// es exclusivamente de salida (nunca se persiste un monto formateado).
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.French)

// FormatXOF devuelve el monto con formato de moneda para el franco CFA,
// ej: 1 500 000 F CFA. El XOF no tiene subunidades: se redondea a entero
// y viaja al formateador como int64, sin pasar por float.
func FormatXOF(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	unit, _ := currency.ParseISO("XOF")
	return printer.Sprintf("%v", currency.Symbol(unit.Amount(rounded.IntPart())))
}
